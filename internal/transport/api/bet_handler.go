package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BetHandler struct {
	betService BetServicer
}

func NewBetHandler(betService BetServicer) *BetHandler {
	return &BetHandler{betService: betService}
}

type PlaceBetParams struct {
	Number int             `binding:"required,bet_number" json:"number"`
	Amount decimal.Decimal `json:"amount"`
}

// Create POST RouteGroup + BetsRoute. Ставка текущего юзера в активном раунде.
func (h *BetHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params PlaceBetParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	bet, err := h.betService.PlaceBetInActiveRound(ctx, userID, params.Number, params.Amount, time.Now())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newBetResponse(bet))
}

// Index GET RouteGroup + BetsRoute. Ставки текущего юзера, новые первыми.
func (h *BetHandler) Index(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	bets, err := h.betService.ListUserBets(ctx, userID, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBetsResponse(bets))
}
