package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/fsdevblog/lucky-ten/pkg/uow"
	"github.com/shopspring/decimal"
)

const DefaultStartingBalance = "100.00"

type WalletService struct {
	walletRepo      WalletRepository
	startingBalance decimal.Decimal
}

func NewWalletService(u uow.UOW, startingBalance decimal.Decimal) (*WalletService, error) {
	walletRepo, err := uow.GetRepositoryAs[WalletRepository](u, uow.RepositoryName(repoargs.WalletRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if startingBalance.IsNegative() {
		return nil, fmt.Errorf("wallet service: negative starting balance %s", startingBalance.String())
	}
	return &WalletService{
		walletRepo:      walletRepo,
		startingBalance: startingBalance,
	}, nil
}

func (s *WalletService) GetBalance(ctx context.Context, userID int64) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting balance of user %d: %w", userID, err)
	}
	return wallet, nil
}

type AdjustWalletArgs struct {
	UserID    int64
	Amount    decimal.Decimal
	Direction domain.DirectionType
}

// Adjust ручная корректировка баланса администратором. Списание, уводящее баланс в минус, отклоняется
// с ошибкой domain.ErrInsufficientFunds.
func (s *WalletService) Adjust(ctx context.Context, args AdjustWalletArgs) (*domain.Wallet, error) {
	if err := validateAmount(args.Amount); err != nil {
		return nil, err
	}

	var delta decimal.Decimal
	switch args.Direction {
	case domain.DirectionCredit:
		delta = args.Amount
	case domain.DirectionDebit:
		delta = args.Amount.Neg()
	default:
		return nil, domain.NewValidationError("direction", "must be credit or debit")
	}

	wallet, err := s.walletRepo.AdjustBalance(ctx, args.UserID, delta)
	if err != nil {
		return nil, fmt.Errorf("adjusting wallet of user %d: %w", args.UserID, err)
	}
	return wallet, nil
}

// Open открывает кошелек со стартовым балансом в рамках транзакции tx.
func (s *WalletService) Open(ctx context.Context, tx uow.TX, userID int64) (*domain.Wallet, error) {
	walletRepo, err := uow.GetAs[WalletRepository](tx, uow.RepositoryName(repoargs.WalletRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	wallet, err := walletRepo.Create(ctx, repoargs.CreateWallet{
		UserID:         userID,
		InitialBalance: s.startingBalance,
	})
	if err != nil {
		return nil, fmt.Errorf("opening wallet of user %d: %w", userID, err)
	}
	return wallet, nil
}
