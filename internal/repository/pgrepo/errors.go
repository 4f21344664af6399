package pgrepo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode      = "23505"
	serializationFailureCode = "40001"
	deadlockDetectedCode     = "40P01"
	lockNotAvailableCode     = "55P03"
)

// convertErr преобразует ошибку к стандартному виду для слоя репозитория.
// Добавляет форматированное сообщение контекста, тип ошибки и оригинальное сообщение.
// Особенности:
//   - Для ошибок отсутствия данных (pgx.ErrNoRows) возвращает ErrRecordNotFound из domain.
//   - Нарушение уникального индекса (uniqueViolationCode) - ErrDuplicateKey.
//   - Конфликты сериализации и дедлоки - ErrStoreConflict, операцию можно повторить целиком.
//   - Таймауты и ошибки соединения, после которых запрос точно не был выполнен, - ErrStoreUnavailable.
//   - Все остальные ошибки возвращаются как ErrUnknown с оригинальным сообщением.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}

	errType := domain.ErrUnknown

	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		switch pgErr.Code {
		case uniqueViolationCode:
			errType = domain.ErrDuplicateKey
		case serializationFailureCode, deadlockDetectedCode, lockNotAvailableCode:
			errType = domain.ErrStoreConflict
		}
	case pgconn.Timeout(err), pgconn.SafeToRetry(err):
		errType = domain.ErrStoreUnavailable
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrRecordNotFound)
}
