package pgrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/fsdevblog/lucky-ten/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const roundColumns = `id, created_at, end_time, completed_at, status`

type RoundRepository struct {
	conn uow.DBTX
}

func NewRoundRepository(conn uow.DBTX) *RoundRepository {
	return &RoundRepository{conn: conn}
}

// CreateActive создает новый активный раунд. Частичный уникальный индекс допускает только один активный раунд,
// поэтому при гонке проигравший получает domain.ErrDuplicateKey.
func (r *RoundRepository) CreateActive(ctx context.Context, args repoargs.CreateRound) (*domain.Round, error) {
	row := r.conn.QueryRow(ctx,
		`INSERT INTO rounds (status, created_at, end_time) VALUES ($1, $2, $3)
		 ON CONFLICT DO NOTHING
		 RETURNING `+roundColumns,
		string(domain.RoundStatusActive), args.CreatedAt, args.EndTime,
	)
	round, err := scanRound(row)
	if err != nil {
		convErr := convertErr(err, "creating active round")
		if isNotFound(convErr) {
			return nil, fmt.Errorf("[repository/creating active round] %w", domain.ErrDuplicateKey)
		}
		return nil, convErr
	}
	return round, nil
}

// FindActive возвращает текущий активный раунд или domain.ErrRecordNotFound.
func (r *RoundRepository) FindActive(ctx context.Context) (*domain.Round, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+roundColumns+` FROM rounds WHERE status = $1`, string(domain.RoundStatusActive),
	)
	round, err := scanRound(row)
	if err != nil {
		return nil, convertErr(err, "finding active round")
	}
	return round, nil
}

func (r *RoundRepository) FindByID(ctx context.Context, id int64) (*domain.Round, error) {
	return r.findByID(ctx, id, "")
}

// LockForShare читает раунд с разделяемой блокировкой. Используется при приеме ставки: несколько ставок
// принимаются параллельно, а фиксация результата ждет их завершения.
func (r *RoundRepository) LockForShare(ctx context.Context, id int64) (*domain.Round, error) {
	return r.findByID(ctx, id, " FOR SHARE")
}

// LockForUpdate читает раунд с эксклюзивной блокировкой. Используется при фиксации результата.
func (r *RoundRepository) LockForUpdate(ctx context.Context, id int64) (*domain.Round, error) {
	return r.findByID(ctx, id, " FOR UPDATE")
}

// Complete переводит раунд из ACTIVE в COMPLETED условным апдейтом.
// Возвращает domain.ErrInvalidTransition если раунд уже завершен и domain.ErrRecordNotFound если его нет.
func (r *RoundRepository) Complete(ctx context.Context, id int64, completedAt time.Time) (*domain.Round, error) {
	row := r.conn.QueryRow(ctx,
		`UPDATE rounds SET status = $2, completed_at = $3
		 WHERE id = $1 AND status = $4
		 RETURNING `+roundColumns,
		id, string(domain.RoundStatusCompleted), completedAt, string(domain.RoundStatusActive),
	)
	round, err := scanRound(row)
	if err == nil {
		return round, nil
	}
	convErr := convertErr(err, "completing round %d", id)
	if !isNotFound(convErr) {
		return nil, convErr
	}

	if _, findErr := r.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, fmt.Errorf("[repository/completing round %d] %w", id, domain.ErrInvalidTransition)
}

// ListActiveWithResult возвращает раунды, у которых результат уже зафиксирован, но расчет не закончен.
func (r *RoundRepository) ListActiveWithResult(ctx context.Context, limit uint) ([]domain.Round, error) {
	lim, err := safeConvertUintToInt32(limit)
	if err != nil {
		return nil, fmt.Errorf("[repository/listing unfinished rounds] %w: %s", domain.ErrUnknown, err.Error())
	}
	rows, err := r.conn.Query(ctx,
		`SELECT r.id, r.created_at, r.end_time, r.completed_at, r.status
		 FROM rounds r
		 JOIN results res ON res.round_id = r.id
		 WHERE r.status = $1
		 ORDER BY r.id
		 LIMIT $2`,
		string(domain.RoundStatusActive), lim,
	)
	if err != nil {
		return nil, convertErr(err, "listing unfinished rounds")
	}
	rounds, err := collectRows(rows, scanRound)
	if err != nil {
		return nil, convertErr(err, "listing unfinished rounds")
	}
	return rounds, nil
}

func (r *RoundRepository) findByID(ctx context.Context, id int64, lock string) (*domain.Round, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+roundColumns+` FROM rounds WHERE id = $1`+lock, id)
	round, err := scanRound(row)
	if err != nil {
		return nil, convertErr(err, "finding round %d", id)
	}
	return round, nil
}

func scanRound(row rowScanner) (*domain.Round, error) {
	var round domain.Round
	var status string
	if err := row.Scan(&round.ID, &round.CreatedAt, &round.EndTime, &round.CompletedAt, &status); err != nil {
		return nil, err //nolint:wrapcheck
	}
	round.Status = domain.RoundStatusType(status)
	return &round, nil
}

// collectRows вычитывает все строки через scan и закрывает rows.
func collectRows[T any](rows pgx.Rows, scan func(rowScanner) (*T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return out, nil
}
