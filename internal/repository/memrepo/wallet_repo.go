package memrepo

import (
	"context"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/shopspring/decimal"
)

type WalletRepository struct {
	v view
}

func (w *WalletRepository) Create(_ context.Context, args repoargs.CreateWallet) (*domain.Wallet, error) {
	var created domain.Wallet
	err := w.v.write(func(d *data) error {
		if _, ok := d.wallets[args.UserID]; ok {
			return wrapErr(domain.ErrDuplicateKey, "creating wallet for user %d", args.UserID)
		}
		if args.InitialBalance.IsNegative() {
			return wrapErr(domain.ErrInsufficientFunds, "creating wallet for user %d", args.UserID)
		}
		now := time.Now()
		created = domain.Wallet{
			UserID:    args.UserID,
			CreatedAt: now,
			UpdatedAt: now,
			Balance:   args.InitialBalance,
		}
		d.wallets[args.UserID] = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (w *WalletRepository) GetByUserID(_ context.Context, userID int64) (*domain.Wallet, error) {
	var found domain.Wallet
	err := w.v.read(func(d *data) error {
		wallet, ok := d.wallets[userID]
		if !ok {
			return notFound("getting wallet of user %d", userID)
		}
		found = wallet
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// AdjustBalance изменяет баланс на delta, если результат не уходит ниже нуля.
func (w *WalletRepository) AdjustBalance(
	_ context.Context,
	userID int64,
	delta decimal.Decimal,
) (*domain.Wallet, error) {
	var updated domain.Wallet
	err := w.v.write(func(d *data) error {
		wallet, ok := d.wallets[userID]
		if !ok {
			return notFound("adjusting balance of user %d by %s", userID, delta.String())
		}
		next := wallet.Balance.Add(delta)
		if next.IsNegative() {
			return wrapErr(domain.ErrInsufficientFunds, "adjusting balance of user %d", userID)
		}
		wallet.Balance = next
		wallet.UpdatedAt = time.Now()
		d.wallets[userID] = wallet
		updated = wallet
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
