package memrepo

import (
	"fmt"

	"github.com/fsdevblog/lucky-ten/internal/domain"
)

// wrapErr оформляет ошибку так же, как это делает репозиторий postgres.
func wrapErr(errType error, format string, formatArgs ...any) error {
	return fmt.Errorf("[repository/%s] %w", fmt.Sprintf(format, formatArgs...), errType)
}

func notFound(format string, formatArgs ...any) error {
	return wrapErr(domain.ErrRecordNotFound, format, formatArgs...)
}
