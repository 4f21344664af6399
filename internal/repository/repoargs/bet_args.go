package repoargs

import (
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateBet struct {
	CreatedAt time.Time
	UserID    int64
	RoundID   int64
	Number    int
	Amount    decimal.Decimal
}

// MarkBetSettled условное обновление статуса ставки. Применяется только к ставке в статусе PENDING.
type MarkBetSettled struct {
	SettledAt time.Time
	BetID     int64
	Status    domain.BetStatusType
}

// UserAmountSum сумма ставок пользователя, сгруппированная по статусу.
type UserAmountSum struct {
	UserID int64
	Amount decimal.Decimal
}
