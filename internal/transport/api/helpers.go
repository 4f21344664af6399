package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const maxListLimit uint = 500

// abortWithError прерывает запрос, ответ сформирует middlewares.Errors по типу ошибки.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// publicError ошибка с текстом для клиента. Тип ошибки определяется по обернутой ошибке.
type publicError struct {
	msg string
	err error
}

func (e *publicError) Error() string { return e.msg }
func (e *publicError) Unwrap() error { return e.err }

func abortWithPublicError(c *gin.Context, msg string, err error) {
	_ = c.Error(&publicError{msg: msg, err: err}).SetType(gin.ErrorTypePublic)
	c.Abort()
}

// bindJSON разбирает тело запроса. Ошибки валидации отдаются со статусом 422, ошибки разбора JSON
// со статусом 400, обе с типом VALIDATION.
func bindJSON(c *gin.Context, params any) bool {
	bindErr := c.ShouldBindJSON(params)
	if bindErr == nil {
		return true
	}

	var valErrs validator.ValidationErrors
	if errors.As(bindErr, &valErrs) && len(valErrs) > 0 {
		fieldErr := valErrs[0]
		abortWithError(c, domain.NewValidationError(fieldErr.Field(), "failed on "+fieldErr.Tag()))
		return false
	}
	c.Status(http.StatusBadRequest)
	_ = c.Error(fmt.Errorf("%w: %s", domain.NewValidationError("body", "malformed request body"), bindErr.Error())).
		SetType(gin.ErrorTypeBind)
	c.Abort()
	return false
}

// queryLimit читает необязательный параметр limit. 0 означает лимит по умолчанию сервиса.
func queryLimit(c *gin.Context) (uint, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || uint(limit) > maxListLimit {
		abortWithError(c, domain.NewValidationError("limit",
			fmt.Sprintf("must be an integer between 0 and %d", maxListLimit)))
		return 0, false
	}
	return uint(limit), true
}

// pathID читает положительный id из параметра маршрута.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, domain.NewValidationError(name, "must be a positive integer"))
		return 0, false
	}
	return id, true
}

func currentUserID(c *gin.Context) (int64, bool) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		abortWithError(c, errors.New("current user is missing in context"))
		return 0, false
	}
	return userID, true
}
