// Package autodraw автоматически разыгрывает истекшие раунды и дорасчитывает прерванные.
package autodraw

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	defaultServiceTimeout      = 10 * time.Second
	defaultInterval            = 5 * time.Second
	defaultRepairLimit    uint = 10
	defaultRepairWorkers  uint = 4
)

// Processor периодически выполняет три шага: дорасчет, розыгрыш и запуск следующего раунда.
type Processor struct {
	rounds        RoundServicer
	settlement    SettlementServicer
	l             *logrus.Entry
	interval      time.Duration
	repairLimit   uint
	repairWorkers uint
	autoSettle    bool
	now           func() time.Time
}

// New создает новый экземпляр процессора розыгрышей.
func New(rounds RoundServicer, settlement SettlementServicer, l *logrus.Logger) *Processor {
	loggerEntry := l.WithFields(logrus.Fields{
		"component": "autodraw",
		"module":    "processor",
	})

	return &Processor{
		rounds:        rounds,
		settlement:    settlement,
		l:             loggerEntry,
		interval:      defaultInterval,
		repairLimit:   defaultRepairLimit,
		repairWorkers: defaultRepairWorkers,
		autoSettle:    true,
		now:           time.Now,
	}
}

// SetInterval устанавливает паузу между итерациями.
func (p *Processor) SetInterval(interval time.Duration) *Processor {
	if interval > 0 {
		p.interval = interval
	}
	return p
}

// SetRepairLimit устанавливает кол-во раундов, дорасчитываемых за одну итерацию.
func (p *Processor) SetRepairLimit(limit uint) *Processor {
	p.repairLimit = limit
	return p
}

// SetRepairWorkers устанавливает кол-во воркеров дорасчета.
func (p *Processor) SetRepairWorkers(workers uint) *Processor {
	if workers > 0 {
		p.repairWorkers = workers
	}
	return p
}

// SetAutoSettle включает или выключает розыгрыш истекших раундов. При выключенном розыгрыше
// раунды рассчитывает только администратор.
func (p *Processor) SetAutoSettle(enabled bool) *Processor {
	p.autoSettle = enabled
	return p
}

// Run запускает обработку в цикле до отмены контекста.
//
// Алгоритм работы:
//  1. Дорасчет: запрашивает активные раунды с зафиксированным результатом и дорасчитывает их
//     параллельно, кол-во воркеров настраивается через SetRepairWorkers.
//  2. Розыгрыш: если время активного раунда истекло и розыгрыш включен, рассчитывает его со случайным числом.
//  3. Запуск: гарантирует наличие активного раунда, чтобы следующий начинался сразу.
func (p *Processor) Run(ctx context.Context) {
	p.l.WithFields(logrus.Fields{
		"interval":    p.interval,
		"repairLimit": p.repairLimit,
		"autoSettle":  p.autoSettle,
	}).Info("Starting")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.process(ctx); err != nil {
			p.l.WithError(err).Error("process error")
		}
		select {
		case <-ctx.Done():
			p.l.Info("Got stop signal, exiting...")
			return
		case <-ticker.C:
		}
	}
}

// process выполняет одну итерацию. Ошибка дорасчета не мешает розыгрышу текущего раунда.
func (p *Processor) process(ctx context.Context) error {
	repairErr := p.repair(ctx)

	if err := p.draw(ctx); err != nil {
		return errors.Join(repairErr, err)
	}
	return repairErr
}

// repair дорасчитывает прерванные раунды.
func (p *Processor) repair(ctx context.Context) error {
	if p.repairLimit == 0 {
		return nil
	}
	listCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	rounds, err := p.settlement.UnfinishedRounds(listCtx, p.repairLimit)
	cancel()
	if err != nil {
		return fmt.Errorf("repair: %w", err)
	}
	if len(rounds) == 0 {
		return nil
	}

	for _, result := range p.runWorkers(ctx, rounds) {
		l := p.l.WithFields(logrus.Fields{
			"worker":  result.WorkerID,
			"roundID": result.RoundID,
		})
		switch {
		case result.Error == nil:
			l.WithField("won", result.Report.Won).Info("round repaired")
		case errors.Is(result.Error, domain.ErrAlreadySettled):
			l.Debug("round already settled")
		default:
			l.WithError(result.Error).Warn("round repair failed")
		}
	}
	return nil
}

// workerResult результат дорасчета одного раунда.
type workerResult struct {
	WorkerID uint
	RoundID  int64
	Report   *service.SettlementReport
	Error    error
}

// runWorkers запускает воркеров дорасчета и ожидает конца их работы (fan-out/fan-in).
func (p *Processor) runWorkers(ctx context.Context, rounds []domain.Round) []workerResult {
	var taskCh = make(chan int64, len(rounds))
	for _, round := range rounds {
		taskCh <- round.ID
	}
	close(taskCh)

	workers := min(p.repairWorkers, uint(len(rounds)))

	wg := new(sync.WaitGroup)
	wg.Add(int(workers)) // nolint:gosec

	var resultCh = make(chan workerResult, len(rounds))
	for i := range workers {
		go p.worker(ctx, wg, i+1, taskCh, resultCh)
	}
	wg.Wait()
	close(resultCh)

	var results = make([]workerResult, 0, len(rounds))
	for result := range resultCh {
		results = append(results, result)
	}
	return results
}

func (p *Processor) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	workerID uint,
	taskCh <-chan int64,
	resultCh chan<- workerResult,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case roundID, ok := <-taskCh:
			if !ok {
				return
			}
			reqCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
			report, err := p.settlement.ResumeSettlement(reqCtx, roundID, p.now())
			cancel()
			resultCh <- workerResult{WorkerID: workerID, RoundID: roundID, Report: report, Error: err}
		}
	}
}

// draw разыгрывает истекший раунд и запускает следующий.
func (p *Processor) draw(ctx context.Context) error {
	reqCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	now := p.now()
	round, err := p.rounds.GetOrCreateActiveRound(reqCtx, now)
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	if !p.autoSettle || round.AcceptsBets(now) {
		return nil
	}

	// рассчитывается именно проверенный раунд: к этому моменту активным может быть уже следующий
	report, err := p.settlement.AutoSettleRound(reqCtx, round.ID, now)
	switch {
	case err == nil:
		p.l.WithFields(logrus.Fields{
			"roundID":       report.RoundID,
			"winningNumber": report.WinningNumber,
			"won":           report.Won,
			"lost":          report.Lost,
			"payout":        report.TotalPayout,
		}).Info("round drawn")
	case errors.Is(err, domain.ErrAlreadySettled), errors.Is(err, domain.ErrRecordNotFound):
		// раунд рассчитал администратор между чтением и розыгрышем
		p.l.WithField("roundID", round.ID).Debug("round settled concurrently")
	case errors.Is(err, domain.ErrPartialSettlement):
		// раунд останется активным с результатом, его подхватит дорасчет
		p.l.WithError(err).WithField("roundID", round.ID).Warn("round settled partially")
		return nil
	default:
		return fmt.Errorf("draw round %d: %w", round.ID, err)
	}

	if _, err = p.rounds.GetOrCreateActiveRound(reqCtx, p.now()); err != nil {
		return fmt.Errorf("draw: starting next round: %w", err)
	}
	return nil
}
