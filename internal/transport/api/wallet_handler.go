package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	walletService WalletServicer
}

func NewWalletHandler(walletService WalletServicer) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// Index GET RouteGroup + WalletRoute. Баланс текущего юзера.
func (h *WalletHandler) Index(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	wallet, err := h.walletService.GetBalance(ctx, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newWalletResponse(wallet))
}
