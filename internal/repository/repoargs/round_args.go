package repoargs

import "time"

type CreateRound struct {
	CreatedAt time.Time
	EndTime   time.Time
}

type CreateResult struct {
	CreatedAt     time.Time
	RoundID       int64
	WinningNumber int
}
