package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/metrics"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/fsdevblog/lucky-ten/pkg/uow"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	EventRoundSettled = "round.settled"

	DefaultPayoutMultiplier = 9
)

type BetFailure struct {
	BetID  int64
	UserID int64
	Err    error
}

// SettlementReport итог расчета раунда. Completed = true только если раунд переведен в COMPLETED.
type SettlementReport struct {
	RoundID       int64
	WinningNumber int
	Won           int
	Lost          int
	Skipped       int
	TotalPayout   decimal.Decimal
	Failed        []BetFailure
	Completed     bool
}

type betOutcome int

const (
	outcomeSkipped betOutcome = iota
	outcomeWon
	outcomeLost
)

type SettlementService struct {
	uow        uow.UOW
	roundRepo  RoundRepository
	betRepo    BetRepository
	resultRepo ResultRepository
	rounds     *RoundService
	multiplier decimal.Decimal
	publisher  EventPublisher
	draw       func() int
	l          *logrus.Entry
}

func NewSettlementService(
	u uow.UOW,
	rounds *RoundService,
	multiplier decimal.Decimal,
	publisher EventPublisher,
	l *logrus.Logger,
) (*SettlementService, error) {
	roundRepo, err := uow.GetRepositoryAs[RoundRepository](u, uow.RepositoryName(repoargs.RoundRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	betRepo, err := uow.GetRepositoryAs[BetRepository](u, uow.RepositoryName(repoargs.BetRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	resultRepo, err := uow.GetRepositoryAs[ResultRepository](u, uow.RepositoryName(repoargs.ResultRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &SettlementService{
		uow:        u,
		roundRepo:  roundRepo,
		betRepo:    betRepo,
		resultRepo: resultRepo,
		rounds:     rounds,
		multiplier: payoutMultiplier(multiplier),
		publisher:  publisher,
		draw:       randomNumber,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "settlement",
		}),
	}, nil
}

// SetDraw подменяет генератор выигрышного числа для автоматического розыгрыша.
func (s *SettlementService) SetDraw(draw func() int) *SettlementService {
	s.draw = draw
	return s
}

// SettleRound рассчитывает раунд с выигрышным числом winningNumber.
//
// Алгоритм работы:
//  1. В одной транзакции блокирует раунд и фиксирует результат. Уникальность результата по раунду делает эту
//     вставку точкой сериализации: из параллельных вызовов успешен только один, остальные получают
//     domain.ErrAlreadySettled.
//  2. Читает все ставки раунда в статусе PENDING и рассчитывает каждую в отдельной транзакции: условный перевод
//     статуса и, для выигрыша, начисление amount * multiplier. Ошибка одной ставки не прерывает расчет остальных.
//  3. Если все ставки рассчитаны, завершает раунд. Иначе раунд остается активным с зафиксированным результатом
//     и возвращается domain.ErrPartialSettlement вместе с отчетом, дорасчет выполняет ResumeSettlement.
func (s *SettlementService) SettleRound(
	ctx context.Context,
	roundID int64,
	winningNumber int,
	now time.Time,
) (*SettlementReport, error) {
	started := time.Now()
	report, err := s.settleRound(ctx, roundID, winningNumber, now)
	recordSettlement(err, started)
	return report, err
}

func (s *SettlementService) settleRound(
	ctx context.Context,
	roundID int64,
	winningNumber int,
	now time.Time,
) (*SettlementReport, error) {
	if !domain.IsValidNumber(winningNumber) {
		return nil, domain.NewValidationError("winningNumber",
			fmt.Sprintf("must be between %d and %d", domain.MinNumber, domain.MaxNumber))
	}

	result, err := s.recordResult(ctx, roundID, winningNumber, now)
	if err != nil {
		return nil, fmt.Errorf("settling round %d: %w", roundID, err)
	}
	s.rounds.forgetCached(ctx)
	s.l.WithFields(logrus.Fields{
		"roundID":       roundID,
		"winningNumber": winningNumber,
	}).Info("result recorded")

	return s.settleAndClose(ctx, result, now)
}

// ResumeSettlement дорасчитывает раунд с уже зафиксированным результатом. Уже рассчитанные ставки
// пропускаются, поэтому повторный вызов эквивалентен одному.
// Возвращает domain.ErrRecordNotFound если раунда или результата нет и domain.ErrAlreadySettled
// если раунд уже завершен.
func (s *SettlementService) ResumeSettlement(
	ctx context.Context,
	roundID int64,
	now time.Time,
) (*SettlementReport, error) {
	started := time.Now()
	report, err := s.resumeSettlement(ctx, roundID, now)
	recordSettlement(err, started)
	return report, err
}

func (s *SettlementService) resumeSettlement(
	ctx context.Context,
	roundID int64,
	now time.Time,
) (*SettlementReport, error) {
	round, err := s.roundRepo.FindByID(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("resuming settlement of round %d: %w", roundID, err)
	}
	if round.Status == domain.RoundStatusCompleted {
		return nil, fmt.Errorf("resuming settlement of round %d: %w", roundID, domain.ErrAlreadySettled)
	}
	result, err := s.resultRepo.FindByRoundID(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("resuming settlement of round %d: %w", roundID, err)
	}

	s.l.WithField("roundID", roundID).Info("resuming settlement")
	return s.settleAndClose(ctx, result, now)
}

// SettleActiveRound рассчитывает текущий активный раунд. Если активного раунда нет,
// возвращает domain.ErrRecordNotFound.
func (s *SettlementService) SettleActiveRound(
	ctx context.Context,
	winningNumber int,
	now time.Time,
) (*SettlementReport, error) {
	if !domain.IsValidNumber(winningNumber) {
		return nil, domain.NewValidationError("winningNumber",
			fmt.Sprintf("must be between %d and %d", domain.MinNumber, domain.MaxNumber))
	}
	round, err := s.roundRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("settling active round: %w", err)
	}
	return s.SettleRound(ctx, round.ID, winningNumber, now)
}

// AutoSettleActiveRound рассчитывает текущий активный раунд со случайным выигрышным числом.
func (s *SettlementService) AutoSettleActiveRound(ctx context.Context, now time.Time) (*SettlementReport, error) {
	return s.SettleActiveRound(ctx, s.draw(), now)
}

// AutoSettleRound рассчитывает раунд roundID со случайным выигрышным числом. Завершенный раунд
// не рассчитывается повторно: возвращается domain.ErrAlreadySettled.
func (s *SettlementService) AutoSettleRound(
	ctx context.Context,
	roundID int64,
	now time.Time,
) (*SettlementReport, error) {
	return s.SettleRound(ctx, roundID, s.draw(), now)
}

// UnfinishedRounds возвращает активные раунды с зафиксированным результатом, которым нужен дорасчет.
func (s *SettlementService) UnfinishedRounds(ctx context.Context, limit uint) ([]domain.Round, error) {
	rounds, err := s.roundRepo.ListActiveWithResult(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing unfinished rounds: %w", err)
	}
	return rounds, nil
}

// recordResult первый шаг расчета: проверка раунда и фиксация результата в одной транзакции.
func (s *SettlementService) recordResult(
	ctx context.Context,
	roundID int64,
	winningNumber int,
	now time.Time,
) (*domain.Result, error) {
	var result *domain.Result
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		roundRepo, err := uow.GetAs[RoundRepository](tx, uow.RepositoryName(repoargs.RoundRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		round, err := roundRepo.LockForUpdate(c, roundID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if round.Status == domain.RoundStatusCompleted {
			return domain.ErrAlreadySettled
		}

		resultRepo, err := uow.GetAs[ResultRepository](tx, uow.RepositoryName(repoargs.ResultRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		result, err = resultRepo.Create(c, repoargs.CreateResult{
			CreatedAt:     now,
			RoundID:       roundID,
			WinningNumber: winningNumber,
		})
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateKey) {
				return domain.ErrAlreadySettled
			}
			return err //nolint:wrapcheck
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr //nolint:wrapcheck
	}
	return result, nil
}

// settleAndClose второй и третий шаги расчета: проход по ставкам и завершение раунда.
func (s *SettlementService) settleAndClose(
	ctx context.Context,
	result *domain.Result,
	now time.Time,
) (*SettlementReport, error) {
	report, err := s.settleBets(ctx, result, now)
	if err != nil {
		return nil, fmt.Errorf("settling bets of round %d: %w", result.RoundID, err)
	}

	l := s.l.WithFields(logrus.Fields{
		"roundID": report.RoundID,
		"won":     report.Won,
		"lost":    report.Lost,
		"skipped": report.Skipped,
		"failed":  len(report.Failed),
		"payout":  report.TotalPayout.String(),
	})

	if len(report.Failed) > 0 {
		l.Warn("round settled partially")
		return report, fmt.Errorf("settling round %d: %d bets failed: %w",
			report.RoundID, len(report.Failed), domain.ErrPartialSettlement)
	}

	if closeErr := s.rounds.Close(ctx, report.RoundID, now); closeErr != nil {
		// раунд уже завершил параллельный дорасчет
		if !errors.Is(closeErr, domain.ErrInvalidTransition) {
			return report, fmt.Errorf("settling round %d: %w", report.RoundID, closeErr)
		}
	}
	report.Completed = true
	l.Info("round settled")

	publish(ctx, s.publisher, s.l, EventRoundSettled, report)
	return report, nil
}

// settleBets рассчитывает все ставки раунда в статусе PENDING.
func (s *SettlementService) settleBets(
	ctx context.Context,
	result *domain.Result,
	now time.Time,
) (*SettlementReport, error) {
	bets, err := s.betRepo.ListPendingByRound(ctx, result.RoundID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	report := &SettlementReport{
		RoundID:       result.RoundID,
		WinningNumber: result.WinningNumber,
		TotalPayout:   decimal.Zero,
	}
	for _, bet := range bets {
		outcome, payout, betErr := s.settleBet(ctx, bet, result.WinningNumber, now)
		if betErr != nil {
			s.l.WithError(betErr).WithFields(logrus.Fields{
				"roundID": bet.RoundID,
				"betID":   bet.ID,
				"userID":  bet.UserID,
			}).Error("settle bet")
			report.Failed = append(report.Failed, BetFailure{BetID: bet.ID, UserID: bet.UserID, Err: betErr})
			metrics.RecordSettledBet("failed")
			continue
		}

		switch outcome {
		case outcomeWon:
			report.Won++
			report.TotalPayout = report.TotalPayout.Add(payout)
			metrics.RecordSettledBet("won")
			metrics.AddPayout(payout)
		case outcomeLost:
			report.Lost++
			metrics.RecordSettledBet("lost")
		case outcomeSkipped:
			report.Skipped++
			metrics.RecordSettledBet("skipped")
		}
	}
	return report, nil
}

// settleBet рассчитывает одну ставку в отдельной транзакции. Условный перевод статуса гарантирует, что ставка
// будет рассчитана и оплачена не более одного раза, даже при параллельном дорасчете.
func (s *SettlementService) settleBet(
	ctx context.Context,
	bet domain.Bet,
	winningNumber int,
	now time.Time,
) (betOutcome, decimal.Decimal, error) {
	status := domain.BetStatusLost
	if bet.Number == winningNumber {
		status = domain.BetStatusWon
	}

	outcome := outcomeSkipped
	payout := decimal.Zero
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		betRepo, err := uow.GetAs[BetRepository](tx, uow.RepositoryName(repoargs.BetRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		settled, err := betRepo.MarkSettled(c, repoargs.MarkBetSettled{
			SettledAt: now,
			BetID:     bet.ID,
			Status:    status,
		})
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				// ставка уже рассчитана
				return nil
			}
			return err //nolint:wrapcheck
		}

		if settled.Status == domain.BetStatusLost {
			outcome = outcomeLost
			return nil
		}

		walletRepo, err := uow.GetAs[WalletRepository](tx, uow.RepositoryName(repoargs.WalletRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		payout = settled.Amount.Mul(s.multiplier)
		if _, err = walletRepo.AdjustBalance(c, settled.UserID, payout); err != nil {
			return err //nolint:wrapcheck
		}
		outcome = outcomeWon
		return nil
	})
	if txErr != nil {
		return outcomeSkipped, decimal.Zero, fmt.Errorf("settling bet %d: %w", bet.ID, txErr)
	}
	return outcome, payout, nil
}

func recordSettlement(err error, started time.Time) {
	if err != nil {
		metrics.RecordSettlement(string(domain.KindOf(err)), started)
		return
	}
	metrics.RecordSettlement(metrics.ResultSuccess, started)
}
