package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string
	Password  string
	Role      RoleType
}

type Wallet struct {
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Balance   decimal.Decimal
}

type Round struct {
	ID          int64
	CreatedAt   time.Time
	EndTime     time.Time
	CompletedAt *time.Time
	Status      RoundStatusType
}

// TimeRemaining возвращает время до окончания приема ставок. Никогда не бывает отрицательным.
func (r *Round) TimeRemaining(now time.Time) time.Duration {
	left := r.EndTime.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// AcceptsBets сообщает, открыт ли раунд для ставок в момент now.
func (r *Round) AcceptsBets(now time.Time) bool {
	return r.Status == RoundStatusActive && r.EndTime.After(now)
}

type Bet struct {
	ID        int64
	CreatedAt time.Time
	SettledAt *time.Time
	UserID    int64
	RoundID   int64
	Number    int
	Amount    decimal.Decimal
	Status    BetStatusType
}

type Result struct {
	ID            int64
	CreatedAt     time.Time
	RoundID       int64
	WinningNumber int
}

type LeaderboardEntry struct {
	UserID        int64
	TotalWinnings decimal.Decimal
}
