package pgrepo

import (
	"context"
	"fmt"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/fsdevblog/lucky-ten/pkg/uow"
	"github.com/shopspring/decimal"
)

const walletColumns = `user_id, created_at, updated_at, balance`

type WalletRepository struct {
	conn uow.DBTX
}

func NewWalletRepository(conn uow.DBTX) *WalletRepository {
	return &WalletRepository{conn: conn}
}

// Create открывает кошелек пользователя. Повторное открытие - domain.ErrDuplicateKey.
func (w *WalletRepository) Create(ctx context.Context, args repoargs.CreateWallet) (*domain.Wallet, error) {
	row := w.conn.QueryRow(ctx,
		`INSERT INTO wallets (user_id, balance) VALUES ($1, $2) RETURNING `+walletColumns,
		args.UserID, args.InitialBalance,
	)
	wallet, err := scanWallet(row)
	if err != nil {
		return nil, convertErr(err, "creating wallet for user %d", args.UserID)
	}
	return wallet, nil
}

func (w *WalletRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Wallet, error) {
	row := w.conn.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE user_id = $1`, userID)
	wallet, err := scanWallet(row)
	if err != nil {
		return nil, convertErr(err, "getting wallet of user %d", userID)
	}
	return wallet, nil
}

// AdjustBalance атомарно изменяет баланс на delta с проверкой нижней границы (0) в одном запросе.
// Возвращает domain.ErrInsufficientFunds если баланс ушел бы в минус, domain.ErrRecordNotFound если
// кошелька нет.
func (w *WalletRepository) AdjustBalance(
	ctx context.Context,
	userID int64,
	delta decimal.Decimal,
) (*domain.Wallet, error) {
	row := w.conn.QueryRow(ctx,
		`UPDATE wallets SET balance = balance + $2, updated_at = now()
		 WHERE user_id = $1 AND balance + $2 >= 0
		 RETURNING `+walletColumns,
		userID, delta,
	)
	wallet, err := scanWallet(row)
	if err == nil {
		return wallet, nil
	}

	convErr := convertErr(err, "adjusting balance of user %d by %s", userID, delta.String())
	if !isNotFound(convErr) {
		return nil, convErr
	}

	// Строка не обновилась: либо кошелька нет, либо не хватает средств.
	var exists bool
	if existsErr := w.conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM wallets WHERE user_id = $1)`, userID,
	).Scan(&exists); existsErr != nil {
		return nil, convertErr(existsErr, "checking wallet of user %d", userID)
	}
	if !exists {
		return nil, convErr
	}
	return nil, fmt.Errorf("[repository/adjusting balance of user %d] %w", userID, domain.ErrInsufficientFunds)
}

func scanWallet(row rowScanner) (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := row.Scan(&wallet.UserID, &wallet.CreatedAt, &wallet.UpdatedAt, &wallet.Balance); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &wallet, nil
}
