// Package metrics бизнес метрики prometheus. Все счетчики регистрируются в реестре по умолчанию
// и отдаются через /metrics.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const ResultSuccess = "success"

var (
	betTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "luckyten_bet_requests_total",
			Help: "Total bet placements by result",
		},
		[]string{"result"},
	)

	betDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "luckyten_bet_request_duration_ms",
			Help:    "Bet placement duration in milliseconds",
			Buckets: prometheus.ExponentialBuckets(5, 2, 10),
		},
		[]string{"result"},
	)
)

// RecordBet учитывает попытку ставки. result - ResultSuccess или тип ошибки (domain.ErrorKind).
func RecordBet(result string, started time.Time) {
	res := normalize(result)
	betTotal.WithLabelValues(res).Inc()
	betDuration.WithLabelValues(res).Observe(float64(time.Since(started).Milliseconds()))
}

func normalize(result string) string {
	res := strings.ToLower(strings.TrimSpace(result))
	if res == "" {
		return "unknown"
	}
	return res
}
