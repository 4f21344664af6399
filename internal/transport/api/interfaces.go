package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/service"
)

// UserServicer интерфейс исключительно для моков.
type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
}

type RoundServicer interface {
	Timer(ctx context.Context, now time.Time) (*service.RoundTimer, error)
	LatestResults(ctx context.Context, limit uint) ([]domain.Result, error)
}

type BetServicer interface {
	PlaceBetInActiveRound(
		ctx context.Context,
		userID int64,
		number int,
		amount decimal.Decimal,
		now time.Time,
	) (*domain.Bet, error)
	ListUserBets(ctx context.Context, userID int64, limit uint) ([]domain.Bet, error)
	ListPendingBets(ctx context.Context, limit uint) ([]domain.Bet, error)
}

type WalletServicer interface {
	GetBalance(ctx context.Context, userID int64) (*domain.Wallet, error)
	Adjust(ctx context.Context, args service.AdjustWalletArgs) (*domain.Wallet, error)
}

type SettlementServicer interface {
	SettleRound(ctx context.Context, roundID int64, winningNumber int, now time.Time) (*service.SettlementReport, error)
	ResumeSettlement(ctx context.Context, roundID int64, now time.Time) (*service.SettlementReport, error)
	SettleActiveRound(ctx context.Context, winningNumber int, now time.Time) (*service.SettlementReport, error)
	AutoSettleActiveRound(ctx context.Context, now time.Time) (*service.SettlementReport, error)
}

type LeaderboardServicer interface {
	ComputeLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
}
