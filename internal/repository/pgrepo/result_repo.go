package pgrepo

import (
	"context"
	"fmt"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/fsdevblog/lucky-ten/pkg/uow"
)

const resultColumns = `id, created_at, round_id, winning_number`

type ResultRepository struct {
	conn uow.DBTX
}

func NewResultRepository(conn uow.DBTX) *ResultRepository {
	return &ResultRepository{conn: conn}
}

// Create фиксирует результат раунда. Уникальный индекс по round_id гарантирует единственный результат,
// повторная фиксация возвращает domain.ErrDuplicateKey.
func (r *ResultRepository) Create(ctx context.Context, args repoargs.CreateResult) (*domain.Result, error) {
	row := r.conn.QueryRow(ctx,
		`INSERT INTO results (created_at, round_id, winning_number) VALUES ($1, $2, $3) RETURNING `+resultColumns,
		args.CreatedAt, args.RoundID, args.WinningNumber,
	)
	res, err := scanResult(row)
	if err != nil {
		return nil, convertErr(err, "creating result for round %d", args.RoundID)
	}
	return res, nil
}

func (r *ResultRepository) FindByRoundID(ctx context.Context, roundID int64) (*domain.Result, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+resultColumns+` FROM results WHERE round_id = $1`, roundID)
	res, err := scanResult(row)
	if err != nil {
		return nil, convertErr(err, "finding result of round %d", roundID)
	}
	return res, nil
}

// ListLatest возвращает последние результаты, новые первыми.
func (r *ResultRepository) ListLatest(ctx context.Context, limit uint) ([]domain.Result, error) {
	lim, err := safeConvertUintToInt32(limit)
	if err != nil {
		return nil, fmt.Errorf("[repository/listing latest results] %w: %s", domain.ErrUnknown, err.Error())
	}
	rows, err := r.conn.Query(ctx, `SELECT `+resultColumns+` FROM results ORDER BY id DESC LIMIT $1`, lim)
	if err != nil {
		return nil, convertErr(err, "listing latest results")
	}
	results, err := collectRows(rows, scanResult)
	if err != nil {
		return nil, convertErr(err, "listing latest results")
	}
	return results, nil
}

func scanResult(row rowScanner) (*domain.Result, error) {
	var res domain.Result
	var number int16
	if err := row.Scan(&res.ID, &res.CreatedAt, &res.RoundID, &number); err != nil {
		return nil, err //nolint:wrapcheck
	}
	res.WinningNumber = int(number)
	return &res, nil
}
