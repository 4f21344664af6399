package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type RoundHandler struct {
	roundService RoundServicer
}

func NewRoundHandler(roundService RoundServicer) *RoundHandler {
	return &RoundHandler{roundService: roundService}
}

// Timer GET RouteGroup + RoundTimerRoute. Таймер текущего раунда, раунд создается при необходимости.
func (h *RoundHandler) Timer(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	timer, err := h.roundService.Timer(ctx, time.Now())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, TimerResponse{
		RoundID:          timer.RoundID,
		EndTime:          timer.EndTime,
		SecondsRemaining: timer.SecondsRemaining,
		AcceptsBets:      timer.AcceptsBets,
	})
}

// LatestResults GET RouteGroup + LatestResultsRoute. Последние результаты раундов, новые первыми.
func (h *RoundHandler) LatestResults(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	results, err := h.roundService.LatestResults(ctx, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]ResultResponse, 0, len(results))
	for _, r := range results {
		resp = append(resp, ResultResponse{RoundID: r.RoundID, WinningNumber: r.WinningNumber, CreatedAt: r.CreatedAt})
	}
	c.JSON(http.StatusOK, resp)
}
