package service

import (
	"context"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type UserRepository interface {
	CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

type WalletRepository interface {
	Create(ctx context.Context, args repoargs.CreateWallet) (*domain.Wallet, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Wallet, error)
	AdjustBalance(ctx context.Context, userID int64, delta decimal.Decimal) (*domain.Wallet, error)
}

type RoundRepository interface {
	CreateActive(ctx context.Context, args repoargs.CreateRound) (*domain.Round, error)
	FindActive(ctx context.Context) (*domain.Round, error)
	FindByID(ctx context.Context, id int64) (*domain.Round, error)
	LockForShare(ctx context.Context, id int64) (*domain.Round, error)
	LockForUpdate(ctx context.Context, id int64) (*domain.Round, error)
	Complete(ctx context.Context, id int64, completedAt time.Time) (*domain.Round, error)
	ListActiveWithResult(ctx context.Context, limit uint) ([]domain.Round, error)
}

type BetRepository interface {
	Create(ctx context.Context, args repoargs.CreateBet) (*domain.Bet, error)
	ListPendingByRound(ctx context.Context, roundID int64) ([]domain.Bet, error)
	ListPending(ctx context.Context, limit uint) ([]domain.Bet, error)
	ListByUser(ctx context.Context, userID int64, limit uint) ([]domain.Bet, error)
	MarkSettled(ctx context.Context, args repoargs.MarkBetSettled) (*domain.Bet, error)
	SumAmountByUser(ctx context.Context, status domain.BetStatusType) ([]repoargs.UserAmountSum, error)
}

type ResultRepository interface {
	Create(ctx context.Context, args repoargs.CreateResult) (*domain.Result, error)
	FindByRoundID(ctx context.Context, roundID int64) (*domain.Result, error)
	ListLatest(ctx context.Context, limit uint) ([]domain.Result, error)
}

// RoundCacher кэш активного раунда и последних результатов. Используется только для чтения таймера и
// ленты результатов, прием ставок всегда читает хранилище.
type RoundCacher interface {
	GetActive(ctx context.Context) (*domain.Round, error)
	SetActive(ctx context.Context, round *domain.Round) error
	GetLatestResults(ctx context.Context) ([]domain.Result, error)
	SetLatestResults(ctx context.Context, results []domain.Result) error
	Invalidate(ctx context.Context) error
}

// EventPublisher публикует доменные события после коммита.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}
