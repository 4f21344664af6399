package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/fsdevblog/lucky-ten/pkg/uow"
	"github.com/sirupsen/logrus"
)

const (
	DefaultRoundDuration            = 5 * time.Minute
	DefaultLatestResultsLimit  uint = 20
	createActiveRoundAttempts       = 3
)

type RoundService struct {
	uow           uow.UOW
	roundRepo     RoundRepository
	resultRepo    ResultRepository
	roundDuration time.Duration
	cache         RoundCacher
	l             *logrus.Entry
}

func NewRoundService(u uow.UOW, roundDuration time.Duration, l *logrus.Logger) (*RoundService, error) {
	roundRepo, err := uow.GetRepositoryAs[RoundRepository](u, uow.RepositoryName(repoargs.RoundRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	resultRepo, err := uow.GetRepositoryAs[ResultRepository](u, uow.RepositoryName(repoargs.ResultRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if roundDuration <= 0 {
		roundDuration = DefaultRoundDuration
	}
	return &RoundService{
		uow:           u,
		roundRepo:     roundRepo,
		resultRepo:    resultRepo,
		roundDuration: roundDuration,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "round",
		}),
	}, nil
}

// SetCache подключает кэш таймера и ленты результатов. nil отключает кэш.
func (s *RoundService) SetCache(cache RoundCacher) *RoundService {
	s.cache = cache
	return s
}

// GetOrCreateActiveRound возвращает активный раунд или создает новый с окончанием now + длительность раунда.
//
// Алгоритм работы:
//  1. Ищет активный раунд в хранилище.
//  2. Если его нет, пытается создать. Единственность активного раунда гарантирует хранилище.
//  3. Если создать не удалось из-за domain.ErrDuplicateKey, значит раунд создал параллельный запрос,
//     перечитываем его.
//
// Раунд с истекшим временем возвращается как есть до тех пор, пока его не рассчитают.
func (s *RoundService) GetOrCreateActiveRound(ctx context.Context, now time.Time) (*domain.Round, error) {
	var lastErr error
	for range createActiveRoundAttempts {
		round, err := s.roundRepo.FindActive(ctx)
		if err == nil {
			return round, nil
		}
		if !errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("getting active round: %w", err)
		}

		created, createErr := s.roundRepo.CreateActive(ctx, repoargs.CreateRound{
			CreatedAt: now,
			EndTime:   now.Add(s.roundDuration),
		})
		if createErr == nil {
			s.l.WithFields(logrus.Fields{
				"roundID": created.ID,
				"endTime": created.EndTime,
			}).Info("round created")
			s.forgetCached(ctx)
			return created, nil
		}
		if !errors.Is(createErr, domain.ErrDuplicateKey) {
			return nil, fmt.Errorf("creating active round: %w", createErr)
		}
		lastErr = createErr
	}
	return nil, fmt.Errorf("creating active round: %w", lastErr)
}

// TimeRemaining возвращает max(0, endTime - now).
func (s *RoundService) TimeRemaining(round *domain.Round, now time.Time) time.Duration {
	return round.TimeRemaining(now)
}

// Close завершает раунд. Возвращает domain.ErrInvalidTransition если раунд уже завершен и
// domain.ErrRecordNotFound если раунда нет.
func (s *RoundService) Close(ctx context.Context, roundID int64, now time.Time) error {
	if _, err := s.roundRepo.Complete(ctx, roundID, now); err != nil {
		return fmt.Errorf("closing round %d: %w", roundID, err)
	}
	s.forgetCached(ctx)
	return nil
}

type RoundTimer struct {
	RoundID          int64
	EndTime          time.Time
	SecondsRemaining int64
	AcceptsBets      bool
}

// Timer возвращает таймер текущего раунда, при необходимости создавая раунд.
// Кэш используется только если закэшированный раунд еще принимает ставки.
func (s *RoundService) Timer(ctx context.Context, now time.Time) (*RoundTimer, error) {
	round := s.cachedActive(ctx, now)
	if round == nil {
		var err error
		round, err = s.GetOrCreateActiveRound(ctx, now)
		if err != nil {
			return nil, fmt.Errorf("round timer: %w", err)
		}
		s.cacheActive(ctx, round, now)
	}

	return &RoundTimer{
		RoundID:          round.ID,
		EndTime:          round.EndTime,
		SecondsRemaining: int64(round.TimeRemaining(now) / time.Second),
		AcceptsBets:      round.AcceptsBets(now),
	}, nil
}

// LatestResults возвращает последние результаты, новые первыми. limit = 0 означает DefaultLatestResultsLimit.
func (s *RoundService) LatestResults(ctx context.Context, limit uint) ([]domain.Result, error) {
	if limit == 0 {
		limit = DefaultLatestResultsLimit
	}
	cacheable := limit == DefaultLatestResultsLimit && s.cache != nil

	if cacheable {
		cached, err := s.cache.GetLatestResults(ctx)
		if err != nil {
			s.l.WithError(err).Warn("read latest results from cache")
		} else if cached != nil {
			return cached, nil
		}
	}

	results, err := s.resultRepo.ListLatest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing latest results: %w", err)
	}

	if cacheable {
		if setErr := s.cache.SetLatestResults(ctx, results); setErr != nil {
			s.l.WithError(setErr).Warn("write latest results to cache")
		}
	}
	return results, nil
}

func (s *RoundService) cachedActive(ctx context.Context, now time.Time) *domain.Round {
	if s.cache == nil {
		return nil
	}
	round, err := s.cache.GetActive(ctx)
	if err != nil {
		s.l.WithError(err).Warn("read active round from cache")
		return nil
	}
	if round == nil || !round.AcceptsBets(now) {
		return nil
	}
	return round
}

func (s *RoundService) cacheActive(ctx context.Context, round *domain.Round, now time.Time) {
	if s.cache == nil || !round.AcceptsBets(now) {
		return
	}
	if err := s.cache.SetActive(ctx, round); err != nil {
		s.l.WithError(err).Warn("write active round to cache")
	}
}

// forgetCached сбрасывает кэш после смены раунда или появления нового результата.
func (s *RoundService) forgetCached(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.l.WithError(err).Warn("invalidate round cache")
	}
}
