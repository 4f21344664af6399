package middlewares

import (
	"errors"
	"net/http"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/gin-gonic/gin"
)

func statusErrorText(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not found"
	case http.StatusUnprocessableEntity:
		return "unprocessable entity"
	case http.StatusConflict:
		return "conflict"
	case http.StatusServiceUnavailable:
		return "service unavailable"
	default:
		return "internal server error"
	}
}

// StatusForKind возвращает http статус для типа доменной ошибки.
func StatusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindRoundClosed, domain.KindDuplicateBet, domain.KindAlreadySettled,
		domain.KindInvalidTransition, domain.KindConflict:
		return http.StatusConflict
	case domain.KindInsufficientFunds:
		return http.StatusPaymentRequired
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindStoreUnavailable, domain.KindStoreConflict:
		// временные ошибки хранилища, запрос можно повторить без изменений
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Errors отдает клиенту первую ошибку из контекста в виде {"error": msg, "kind": KIND}. Статус берется
// из типа ошибки, если обработчик не выставил его сам. Ответы, уже записанные обработчиком, не трогает.
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// обрабатываем только первую ошибку
		firstErr := c.Errors[0]
		kind := domain.KindOf(firstErr.Err)

		status := c.Writer.Status()
		if status == http.StatusOK {
			status = StatusForKind(kind)
		}

		c.AbortWithStatusJSON(status, gin.H{
			"error": publicMessage(firstErr, kind, status),
			"kind":  kind,
		})
	}
}

// publicMessage скрывает текст внутренних ошибок и ошибок хранилища.
func publicMessage(ginErr *gin.Error, kind domain.ErrorKind, status int) string {
	if ginErr.IsType(gin.ErrorTypePublic) {
		return ginErr.Error()
	}
	var valErr *domain.ValidationError
	if errors.As(ginErr.Err, &valErr) {
		return valErr.Error()
	}
	switch kind {
	case domain.KindInternal, domain.KindStoreUnavailable, domain.KindStoreConflict:
		return statusErrorText(status)
	case domain.KindRoundClosed, domain.KindDuplicateBet, domain.KindInsufficientFunds,
		domain.KindAlreadySettled, domain.KindInvalidTransition, domain.KindPartialSettlement:
		return ginErr.Error()
	default:
		return statusErrorText(status)
	}
}
