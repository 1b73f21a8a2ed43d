package tutor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stageExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutor_stage_executions_total",
			Help: "Total number of stage executions",
		},
		[]string{"stage", "status"}, // status: success, error
	)

	stageDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tutor_stage_duration_seconds",
			Help:    "Stage execution duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"stage"},
	)

	routeDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutor_route_decisions_total",
			Help: "Total number of router decisions by selected stage",
		},
		[]string{"route"},
	)

	turnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutor_turns_total",
			Help: "Total number of conversation turns",
		},
		[]string{"status"}, // status: success, error
	)
)

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func observeStage(stage string, err error, duration time.Duration) {
	stageExecutionsTotal.WithLabelValues(stage, statusOf(err)).Inc()
	stageDurationSeconds.WithLabelValues(stage).Observe(duration.Seconds())
}

func observeRoute(route string) {
	routeDecisionsTotal.WithLabelValues(route).Inc()
}

func observeTurn(err error) {
	turnsTotal.WithLabelValues(statusOf(err)).Inc()
}
