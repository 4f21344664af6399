package autodraw

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/service"
)

type RoundServicer interface {
	GetOrCreateActiveRound(ctx context.Context, now time.Time) (*domain.Round, error)
}

type SettlementServicer interface {
	UnfinishedRounds(ctx context.Context, limit uint) ([]domain.Round, error)
	ResumeSettlement(ctx context.Context, roundID int64, now time.Time) (*service.SettlementReport, error)
	AutoSettleRound(ctx context.Context, roundID int64, now time.Time) (*service.SettlementReport, error)
}
