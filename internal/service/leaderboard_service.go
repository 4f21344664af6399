package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/fsdevblog/lucky-ten/pkg/uow"
	"github.com/shopspring/decimal"
)

type LeaderboardService struct {
	uow        uow.UOW
	multiplier decimal.Decimal
}

func NewLeaderboardService(u uow.UOW, multiplier decimal.Decimal) *LeaderboardService {
	return &LeaderboardService{uow: u, multiplier: payoutMultiplier(multiplier)}
}

// ComputeLeaderboard суммирует выигрыши пользователей по ставкам в статусе WON. Сортировка по сумме по убыванию,
// при равенстве по id пользователя по возрастанию. Ставки, рассчитываемые в этот момент, могут не попасть
// в результат.
func (s *LeaderboardService) ComputeLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	var sums []repoargs.UserAmountSum
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		betRepo, err := uow.GetAs[BetRepository](tx, uow.RepositoryName(repoargs.BetRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		sums, err = betRepo.SumAmountByUser(c, domain.BetStatusWon)
		return err //nolint:wrapcheck
	}, uow.ReadOnly())
	if txErr != nil {
		return nil, fmt.Errorf("computing leaderboard: %w", txErr)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(sums))
	for _, sum := range sums {
		entries = append(entries, domain.LeaderboardEntry{
			UserID:        sum.UserID,
			TotalWinnings: sum.Amount.Mul(s.multiplier),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if cmp := entries[i].TotalWinnings.Cmp(entries[j].TotalWinnings); cmp != 0 {
			return cmp > 0
		}
		return entries[i].UserID < entries[j].UserID
	})
	return entries, nil
}
