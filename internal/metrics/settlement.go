package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var (
	settlementTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "luckyten_settlements_total",
			Help: "Total round settlements by result",
		},
		[]string{"result"},
	)

	settlementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "luckyten_settlement_duration_ms",
			Help:    "Round settlement duration in milliseconds",
			Buckets: prometheus.ExponentialBuckets(5, 2, 12),
		},
		[]string{"result"},
	)

	settledBetTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "luckyten_settled_bets_total",
			Help: "Bets processed by the settlement engine by outcome",
		},
		[]string{"outcome"},
	)

	payoutTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "luckyten_payout_total",
			Help: "Total amount credited to winners",
		},
	)
)

// RecordSettlement учитывает вызов расчета раунда.
func RecordSettlement(result string, started time.Time) {
	res := normalize(result)
	settlementTotal.WithLabelValues(res).Inc()
	settlementDuration.WithLabelValues(res).Observe(float64(time.Since(started).Milliseconds()))
}

// RecordSettledBet outcome: won, lost, skipped, failed.
func RecordSettledBet(outcome string) {
	settledBetTotal.WithLabelValues(normalize(outcome)).Inc()
}

func AddPayout(amount decimal.Decimal) {
	payoutTotal.Add(amount.InexactFloat64())
}
