package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/metrics"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/fsdevblog/lucky-ten/pkg/uow"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	EventBetPlaced = "bet.placed"

	DefaultBetsLimit uint = 50
	amountPrecision       = 2
)

type BetService struct {
	uow       uow.UOW
	betRepo   BetRepository
	roundRepo RoundRepository
	publisher EventPublisher
	l         *logrus.Entry
}

func NewBetService(u uow.UOW, publisher EventPublisher, l *logrus.Logger) (*BetService, error) {
	betRepo, err := uow.GetRepositoryAs[BetRepository](u, uow.RepositoryName(repoargs.BetRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	roundRepo, err := uow.GetRepositoryAs[RoundRepository](u, uow.RepositoryName(repoargs.RoundRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &BetService{
		uow:       u,
		betRepo:   betRepo,
		roundRepo: roundRepo,
		publisher: publisher,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "bet",
		}),
	}, nil
}

type PlaceBetArgs struct {
	UserID  int64
	RoundID int64
	Number  int
	Amount  decimal.Decimal
}

// PlaceBet принимает ставку в раунде.
//
// Алгоритм работы:
//  1. Проверяет число и сумму ставки, без обращения к хранилищу.
//  2. В одной транзакции: блокирует раунд на чтение и проверяет, что он активен, время не вышло и результат
//     еще не зафиксирован, затем списывает сумму с кошелька и сохраняет ставку.
//  3. Любая ошибка откатывает транзакцию целиком, списание без ставки невозможно.
//
// Возвращает domain.ValidationError, domain.ErrRecordNotFound, domain.ErrRoundClosed,
// domain.ErrInsufficientFunds или domain.ErrDuplicateBet.
func (s *BetService) PlaceBet(ctx context.Context, args PlaceBetArgs, now time.Time) (*domain.Bet, error) {
	started := time.Now()
	bet, err := s.placeBet(ctx, args, now)
	if err != nil {
		metrics.RecordBet(string(domain.KindOf(err)), started)
		return nil, err
	}
	metrics.RecordBet(metrics.ResultSuccess, started)

	s.l.WithFields(logrus.Fields{
		"betID":   bet.ID,
		"userID":  bet.UserID,
		"roundID": bet.RoundID,
		"number":  bet.Number,
		"amount":  bet.Amount.String(),
	}).Debug("bet placed")
	publish(ctx, s.publisher, s.l, EventBetPlaced, bet)
	return bet, nil
}

// PlaceBetInActiveRound принимает ставку в текущем активном раунде. Если активного раунда нет,
// возвращает domain.ErrRoundClosed.
func (s *BetService) PlaceBetInActiveRound(
	ctx context.Context,
	userID int64,
	number int,
	amount decimal.Decimal,
	now time.Time,
) (*domain.Bet, error) {
	if err := validateBet(number, amount); err != nil {
		return nil, err
	}
	round, err := s.roundRepo.FindActive(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("placing bet: no active round: %w", domain.ErrRoundClosed)
		}
		return nil, fmt.Errorf("placing bet: %w", err)
	}
	return s.PlaceBet(ctx, PlaceBetArgs{
		UserID:  userID,
		RoundID: round.ID,
		Number:  number,
		Amount:  amount,
	}, now)
}

func (s *BetService) placeBet(ctx context.Context, args PlaceBetArgs, now time.Time) (*domain.Bet, error) {
	if err := validateBet(args.Number, args.Amount); err != nil {
		return nil, err
	}

	var bet *domain.Bet
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		if err := ensureRoundOpen(c, tx, args.RoundID, now); err != nil {
			return err
		}

		// ставка вставляется до списания: повторная ставка в раунде отклоняется как дубль
		// независимо от баланса, при нехватке средств вставка откатывается вместе с транзакцией
		betRepo, err := uow.GetAs[BetRepository](tx, uow.RepositoryName(repoargs.BetRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		bet, err = betRepo.Create(c, repoargs.CreateBet{
			CreatedAt: now,
			UserID:    args.UserID,
			RoundID:   args.RoundID,
			Number:    args.Number,
			Amount:    args.Amount,
		})
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateKey) {
				return fmt.Errorf("user %d in round %d: %w", args.UserID, args.RoundID, domain.ErrDuplicateBet)
			}
			return err //nolint:wrapcheck
		}

		walletRepo, err := uow.GetAs[WalletRepository](tx, uow.RepositoryName(repoargs.WalletRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		if _, err = walletRepo.AdjustBalance(c, args.UserID, args.Amount.Neg()); err != nil {
			return err //nolint:wrapcheck
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("placing bet: %w", txErr)
	}
	return bet, nil
}

// ensureRoundOpen проверяет внутри транзакции, что раунд принимает ставки. Разделяемая блокировка раунда
// не дает расчету зафиксировать результат, пока ставка не закоммичена.
func ensureRoundOpen(ctx context.Context, tx uow.TX, roundID int64, now time.Time) error {
	roundRepo, err := uow.GetAs[RoundRepository](tx, uow.RepositoryName(repoargs.RoundRepoName))
	if err != nil {
		return err //nolint:wrapcheck
	}
	round, err := roundRepo.LockForShare(ctx, roundID)
	if err != nil {
		return err //nolint:wrapcheck
	}
	if !round.AcceptsBets(now) {
		return fmt.Errorf("round %d: %w", roundID, domain.ErrRoundClosed)
	}

	resultRepo, err := uow.GetAs[ResultRepository](tx, uow.RepositoryName(repoargs.ResultRepoName))
	if err != nil {
		return err //nolint:wrapcheck
	}
	_, err = resultRepo.FindByRoundID(ctx, roundID)
	switch {
	case err == nil:
		return fmt.Errorf("round %d has result: %w", roundID, domain.ErrRoundClosed)
	case errors.Is(err, domain.ErrRecordNotFound):
		return nil
	default:
		return err //nolint:wrapcheck
	}
}

// ListUserBets возвращает ставки пользователя, новые первыми.
func (s *BetService) ListUserBets(ctx context.Context, userID int64, limit uint) ([]domain.Bet, error) {
	if limit == 0 {
		limit = DefaultBetsLimit
	}
	bets, err := s.betRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing bets of user %d: %w", userID, err)
	}
	return bets, nil
}

// ListPendingBets возвращает нерассчитанные ставки всех раундов.
func (s *BetService) ListPendingBets(ctx context.Context, limit uint) ([]domain.Bet, error) {
	if limit == 0 {
		limit = DefaultBetsLimit
	}
	bets, err := s.betRepo.ListPending(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing pending bets: %w", err)
	}
	return bets, nil
}

func validateBet(number int, amount decimal.Decimal) error {
	if !domain.IsValidNumber(number) {
		return domain.NewValidationError("number",
			fmt.Sprintf("must be between %d and %d", domain.MinNumber, domain.MaxNumber))
	}
	return validateAmount(amount)
}

// validateAmount проверяет, что сумма положительная и содержит не более двух знаков после запятой.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.NewValidationError("amount", "must be greater than zero")
	}
	if !amount.Equal(amount.Round(amountPrecision)) {
		return domain.NewValidationError("amount", "must have at most two decimal places")
	}
	return nil
}
