package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")

	ErrStoreUnavailable = errors.New("store unavailable")
	ErrStoreConflict    = errors.New("store conflict")

	ErrValidation        = errors.New("validation error")
	ErrRoundClosed       = errors.New("round closed")
	ErrDuplicateBet      = errors.New("bet already placed in this round")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadySettled    = errors.New("round already settled")
	ErrInvalidTransition = errors.New("invalid round status transition")
	ErrPartialSettlement = errors.New("round settled partially")
	ErrForbidden         = errors.New("forbidden")
)

// ValidationError ошибка входных данных. Всегда распознается как ErrValidation через errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ErrorKind машиночитаемый тип ошибки, отдаваемый клиентам.
type ErrorKind string

const (
	KindValidation        ErrorKind = "VALIDATION"
	KindRoundClosed       ErrorKind = "ROUND_CLOSED"
	KindDuplicateBet      ErrorKind = "DUPLICATE_BET"
	KindInsufficientFunds ErrorKind = "INSUFFICIENT_FUNDS"
	KindAlreadySettled    ErrorKind = "ALREADY_SETTLED"
	KindInvalidTransition ErrorKind = "INVALID_TRANSITION"
	KindPartialSettlement ErrorKind = "PARTIAL_SETTLEMENT"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindConflict          ErrorKind = "CONFLICT"
	KindUnauthorized      ErrorKind = "UNAUTHORIZED"
	KindForbidden         ErrorKind = "FORBIDDEN"
	KindStoreUnavailable  ErrorKind = "STORE_UNAVAILABLE"
	KindStoreConflict     ErrorKind = "STORE_CONFLICT"
	KindInternal          ErrorKind = "INTERNAL"
)

var kinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrValidation, KindValidation},
	{ErrRoundClosed, KindRoundClosed},
	{ErrDuplicateBet, KindDuplicateBet},
	{ErrInsufficientFunds, KindInsufficientFunds},
	{ErrAlreadySettled, KindAlreadySettled},
	{ErrInvalidTransition, KindInvalidTransition},
	{ErrPartialSettlement, KindPartialSettlement},
	{ErrRecordNotFound, KindNotFound},
	{ErrDuplicateKey, KindConflict},
	{ErrPasswordMissMatch, KindUnauthorized},
	{ErrForbidden, KindForbidden},
	{ErrStoreUnavailable, KindStoreUnavailable},
	{ErrStoreConflict, KindStoreConflict},
}

// KindOf возвращает тип ошибки. Для nil возвращается пустая строка, для неизвестных ошибок - KindInternal.
// Порядок проверки важен: бизнес-ошибки оборачивают ошибки хранилища, а не наоборот.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// IsTransient сообщает, можно ли безопасно повторить операцию без изменений.
func IsTransient(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrStoreConflict)
}
