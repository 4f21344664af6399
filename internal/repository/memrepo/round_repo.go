package memrepo

import (
	"context"
	"sort"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
)

type RoundRepository struct {
	v view
}

// CreateActive создает активный раунд, если активного раунда еще нет, иначе domain.ErrDuplicateKey.
func (r *RoundRepository) CreateActive(_ context.Context, args repoargs.CreateRound) (*domain.Round, error) {
	var created domain.Round
	err := r.v.write(func(d *data) error {
		if _, ok := activeRound(d); ok {
			return wrapErr(domain.ErrDuplicateKey, "creating active round")
		}
		d.lastRoundID++
		created = domain.Round{
			ID:        d.lastRoundID,
			CreatedAt: args.CreatedAt,
			EndTime:   args.EndTime,
			Status:    domain.RoundStatusActive,
		}
		d.rounds[created.ID] = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *RoundRepository) FindActive(_ context.Context) (*domain.Round, error) {
	var found domain.Round
	err := r.v.read(func(d *data) error {
		round, ok := activeRound(d)
		if !ok {
			return notFound("finding active round")
		}
		found = round
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *RoundRepository) FindByID(_ context.Context, id int64) (*domain.Round, error) {
	var found domain.Round
	err := r.v.read(func(d *data) error {
		round, ok := d.rounds[id]
		if !ok {
			return notFound("finding round %d", id)
		}
		found = round
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// LockForShare в памяти транзакции и так сериализованы, поэтому это обычное чтение.
func (r *RoundRepository) LockForShare(ctx context.Context, id int64) (*domain.Round, error) {
	return r.FindByID(ctx, id)
}

func (r *RoundRepository) LockForUpdate(ctx context.Context, id int64) (*domain.Round, error) {
	return r.FindByID(ctx, id)
}

func (r *RoundRepository) Complete(_ context.Context, id int64, completedAt time.Time) (*domain.Round, error) {
	var updated domain.Round
	err := r.v.write(func(d *data) error {
		round, ok := d.rounds[id]
		if !ok {
			return notFound("completing round %d", id)
		}
		next, trErr := domain.NextRoundStatus(round.Status)
		if trErr != nil {
			return wrapErr(trErr, "completing round %d", id)
		}
		round.Status = next
		round.CompletedAt = &completedAt
		d.rounds[id] = round
		updated = round
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *RoundRepository) ListActiveWithResult(_ context.Context, limit uint) ([]domain.Round, error) {
	var rounds []domain.Round
	err := r.v.read(func(d *data) error {
		for _, round := range d.rounds {
			if round.Status != domain.RoundStatusActive {
				continue
			}
			if _, ok := d.results[round.ID]; ok {
				rounds = append(rounds, round)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].ID < rounds[j].ID })
	return truncate(rounds, limit), nil
}

func activeRound(d *data) (domain.Round, bool) {
	for _, round := range d.rounds {
		if round.Status == domain.RoundStatusActive {
			return round, true
		}
	}
	return domain.Round{}, false
}

func truncate[T any](items []T, limit uint) []T {
	if uint(len(items)) > limit {
		return items[:limit]
	}
	return items
}
