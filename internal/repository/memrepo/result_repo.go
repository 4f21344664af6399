package memrepo

import (
	"context"
	"sort"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
)

type ResultRepository struct {
	v view
}

func (r *ResultRepository) Create(_ context.Context, args repoargs.CreateResult) (*domain.Result, error) {
	var created domain.Result
	err := r.v.write(func(d *data) error {
		if _, ok := d.results[args.RoundID]; ok {
			return wrapErr(domain.ErrDuplicateKey, "creating result for round %d", args.RoundID)
		}
		if _, ok := d.rounds[args.RoundID]; !ok {
			return wrapErr(domain.ErrUnknown, "creating result for missing round %d", args.RoundID)
		}
		d.lastResultID++
		created = domain.Result{
			ID:            d.lastResultID,
			CreatedAt:     args.CreatedAt,
			RoundID:       args.RoundID,
			WinningNumber: args.WinningNumber,
		}
		d.results[args.RoundID] = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *ResultRepository) FindByRoundID(_ context.Context, roundID int64) (*domain.Result, error) {
	var found domain.Result
	err := r.v.read(func(d *data) error {
		res, ok := d.results[roundID]
		if !ok {
			return notFound("finding result of round %d", roundID)
		}
		found = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *ResultRepository) ListLatest(_ context.Context, limit uint) ([]domain.Result, error) {
	var results []domain.Result
	err := r.v.read(func(d *data) error {
		for _, res := range d.results {
			results = append(results, res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID > results[j].ID })
	return truncate(results, limit), nil
}
