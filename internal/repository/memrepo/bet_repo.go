package memrepo

import (
	"context"
	"sort"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/shopspring/decimal"
)

type BetRepository struct {
	v view
}

func (b *BetRepository) Create(_ context.Context, args repoargs.CreateBet) (*domain.Bet, error) {
	var created domain.Bet
	err := b.v.write(func(d *data) error {
		key := betKey{userID: args.UserID, roundID: args.RoundID}
		if _, ok := d.betKeys[key]; ok {
			return wrapErr(domain.ErrDuplicateKey, "creating bet of user %d in round %d", args.UserID, args.RoundID)
		}
		if _, ok := d.rounds[args.RoundID]; !ok {
			return wrapErr(domain.ErrUnknown, "creating bet in missing round %d", args.RoundID)
		}
		d.lastBetID++
		created = domain.Bet{
			ID:        d.lastBetID,
			CreatedAt: args.CreatedAt,
			UserID:    args.UserID,
			RoundID:   args.RoundID,
			Number:    args.Number,
			Amount:    args.Amount,
			Status:    domain.BetStatusPending,
		}
		d.bets[created.ID] = created
		d.betKeys[key] = created.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (b *BetRepository) ListPendingByRound(_ context.Context, roundID int64) ([]domain.Bet, error) {
	return b.filter(func(bet domain.Bet) bool {
		return bet.RoundID == roundID && bet.Status == domain.BetStatusPending
	}, false)
}

func (b *BetRepository) ListPending(_ context.Context, limit uint) ([]domain.Bet, error) {
	bets, err := b.filter(func(bet domain.Bet) bool {
		return bet.Status == domain.BetStatusPending
	}, false)
	if err != nil {
		return nil, err
	}
	return truncate(bets, limit), nil
}

func (b *BetRepository) ListByUser(_ context.Context, userID int64, limit uint) ([]domain.Bet, error) {
	bets, err := b.filter(func(bet domain.Bet) bool {
		return bet.UserID == userID
	}, true)
	if err != nil {
		return nil, err
	}
	return truncate(bets, limit), nil
}

// MarkSettled переводит ставку из PENDING в итоговый статус. Для уже рассчитанной ставки
// возвращает domain.ErrRecordNotFound.
func (b *BetRepository) MarkSettled(_ context.Context, args repoargs.MarkBetSettled) (*domain.Bet, error) {
	var updated domain.Bet
	err := b.v.write(func(d *data) error {
		bet, ok := d.bets[args.BetID]
		if !ok || bet.Status != domain.BetStatusPending {
			return notFound("marking bet %d as %s", args.BetID, args.Status)
		}
		settledAt := args.SettledAt
		bet.Status = args.Status
		bet.SettledAt = &settledAt
		d.bets[bet.ID] = bet
		updated = bet
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (b *BetRepository) SumAmountByUser(
	_ context.Context,
	status domain.BetStatusType,
) ([]repoargs.UserAmountSum, error) {
	sums := make(map[int64]decimal.Decimal)
	err := b.v.read(func(d *data) error {
		for _, bet := range d.bets {
			if bet.Status == status {
				sums[bet.UserID] = sums[bet.UserID].Add(bet.Amount)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repoargs.UserAmountSum, 0, len(sums))
	for userID, amount := range sums {
		out = append(out, repoargs.UserAmountSum{UserID: userID, Amount: amount})
	}
	return out, nil
}

func (b *BetRepository) filter(match func(domain.Bet) bool, newestFirst bool) ([]domain.Bet, error) {
	var bets []domain.Bet
	err := b.v.read(func(d *data) error {
		for _, bet := range d.bets {
			if match(bet) {
				bets = append(bets, bet)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(bets, func(i, j int) bool {
		if newestFirst {
			return bets[i].ID > bets[j].ID
		}
		return bets[i].ID < bets[j].ID
	})
	return bets, nil
}
