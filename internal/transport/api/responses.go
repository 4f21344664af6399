package api

import (
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/service"
	"github.com/shopspring/decimal"
)

type UserResponse struct {
	ID        int64           `json:"id"`
	Username  string          `json:"login"`
	Role      domain.RoleType `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type BetResponse struct {
	ID        int64                `json:"id"`
	UserID    int64                `json:"userId"`
	RoundID   int64                `json:"roundId"`
	Number    int                  `json:"number"`
	Amount    decimal.Decimal      `json:"amount"`
	Status    domain.BetStatusType `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	SettledAt *time.Time           `json:"settledAt,omitempty"`
}

func newBetResponse(b *domain.Bet) BetResponse {
	return BetResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		RoundID:   b.RoundID,
		Number:    b.Number,
		Amount:    b.Amount,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		SettledAt: b.SettledAt,
	}
}

func newBetsResponse(bets []domain.Bet) []BetResponse {
	resp := make([]BetResponse, 0, len(bets))
	for i := range bets {
		resp = append(resp, newBetResponse(&bets[i]))
	}
	return resp
}

type WalletResponse struct {
	UserID    int64           `json:"userId"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func newWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{UserID: w.UserID, Balance: w.Balance, UpdatedAt: w.UpdatedAt}
}

type TimerResponse struct {
	RoundID          int64     `json:"roundId"`
	EndTime          time.Time `json:"endTime"`
	SecondsRemaining int64     `json:"secondsRemaining"`
	AcceptsBets      bool      `json:"acceptsBets"`
}

type ResultResponse struct {
	RoundID       int64     `json:"roundId"`
	WinningNumber int       `json:"winningNumber"`
	CreatedAt     time.Time `json:"createdAt"`
}

type LeaderboardEntryResponse struct {
	UserID        int64           `json:"userId"`
	TotalWinnings decimal.Decimal `json:"totalWinnings"`
}

type BetFailureResponse struct {
	BetID  int64  `json:"betId"`
	UserID int64  `json:"userId"`
	Error  string `json:"error"`
}

type SettlementResponse struct {
	RoundID       int64                `json:"roundId"`
	WinningNumber int                  `json:"winningNumber"`
	Won           int                  `json:"won"`
	Lost          int                  `json:"lost"`
	Skipped       int                  `json:"skipped"`
	TotalPayout   decimal.Decimal      `json:"totalPayout"`
	Completed     bool                 `json:"completed"`
	Failed        []BetFailureResponse `json:"failed,omitempty"`
}

func newSettlementResponse(r *service.SettlementReport) SettlementResponse {
	resp := SettlementResponse{
		RoundID:       r.RoundID,
		WinningNumber: r.WinningNumber,
		Won:           r.Won,
		Lost:          r.Lost,
		Skipped:       r.Skipped,
		TotalPayout:   r.TotalPayout,
		Completed:     r.Completed,
	}
	for _, f := range r.Failed {
		resp.Failed = append(resp.Failed, BetFailureResponse{BetID: f.BetID, UserID: f.UserID, Error: f.Err.Error()})
	}
	return resp
}
