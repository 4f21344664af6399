package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AdminHandler struct {
	betService         BetServicer
	walletService      WalletServicer
	settlementService  SettlementServicer
	leaderboardService LeaderboardServicer
}

type AdminHandlerArgs struct {
	BetService         BetServicer
	WalletService      WalletServicer
	SettlementService  SettlementServicer
	LeaderboardService LeaderboardServicer
}

func NewAdminHandler(args AdminHandlerArgs) *AdminHandler {
	return &AdminHandler{
		betService:         args.BetService,
		walletService:      args.WalletService,
		settlementService:  args.SettlementService,
		leaderboardService: args.LeaderboardService,
	}
}

// PendingBets GET RouteGroup + AdminBetsRoute. Нерассчитанные ставки всех раундов.
func (h *AdminHandler) PendingBets(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	bets, err := h.betService.ListPendingBets(ctx, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBetsResponse(bets))
}

type SettleParams struct {
	WinningNumber int `binding:"required,bet_number" json:"winningNumber"`
}

// SettleActive POST RouteGroup + AdminResultRoute. Фиксирует выигрышное число текущего раунда и рассчитывает его.
func (h *AdminHandler) SettleActive(c *gin.Context) {
	var params SettleParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultSettlementTimeout)
	defer cancel()

	report, err := h.settlementService.SettleActiveRound(ctx, params.WinningNumber, time.Now())
	respondSettlement(c, report, err)
}

// AutoSettle POST RouteGroup + AdminAutoResultRoute. Рассчитывает текущий раунд со случайным числом.
func (h *AdminHandler) AutoSettle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultSettlementTimeout)
	defer cancel()

	report, err := h.settlementService.AutoSettleActiveRound(ctx, time.Now())
	respondSettlement(c, report, err)
}

// SettleRound POST RouteGroup + AdminSettleRoundRoute. Рассчитывает раунд по id.
func (h *AdminHandler) SettleRound(c *gin.Context) {
	roundID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var params SettleParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultSettlementTimeout)
	defer cancel()

	report, err := h.settlementService.SettleRound(ctx, roundID, params.WinningNumber, time.Now())
	respondSettlement(c, report, err)
}

// ResumeRound POST RouteGroup + AdminResumeRoundRoute. Дорасчитывает раунд с уже зафиксированным результатом.
func (h *AdminHandler) ResumeRound(c *gin.Context) {
	roundID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultSettlementTimeout)
	defer cancel()

	report, err := h.settlementService.ResumeSettlement(ctx, roundID, time.Now())
	respondSettlement(c, report, err)
}

// respondSettlement отдает отчет расчета. Частичный расчет не ошибка клиента: раунд будет дорасчитан,
// поэтому отчет отдается со статусом 202.
func respondSettlement(c *gin.Context, report *service.SettlementReport, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, newSettlementResponse(report))
	case errors.Is(err, domain.ErrPartialSettlement) && report != nil:
		_ = c.Error(err)
		c.JSON(http.StatusAccepted, gin.H{
			"report": newSettlementResponse(report),
			"kind":   domain.KindPartialSettlement,
		})
	default:
		abortWithError(c, err)
	}
}

// Leaderboard GET RouteGroup + AdminLeaderboardRoute. Суммарные выигрыши по юзерам.
func (h *AdminHandler) Leaderboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	entries, err := h.leaderboardService.ComputeLeaderboard(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, LeaderboardEntryResponse{UserID: e.UserID, TotalWinnings: e.TotalWinnings})
	}
	c.JSON(http.StatusOK, resp)
}

type AdjustWalletParams struct {
	UserID    int64                `binding:"required,gt=0"                json:"userId"`
	Amount    decimal.Decimal      `json:"amount"`
	Direction domain.DirectionType `binding:"required,oneof=credit debit" json:"direction"`
}

// AdjustWallet POST RouteGroup + AdminWalletRoute. Ручное пополнение или списание баланса юзера.
func (h *AdminHandler) AdjustWallet(c *gin.Context) {
	var params AdjustWalletParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	wallet, err := h.walletService.Adjust(ctx, service.AdjustWalletArgs{
		UserID:    params.UserID,
		Amount:    params.Amount,
		Direction: params.Direction,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newWalletResponse(wallet))
}
