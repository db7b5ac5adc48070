package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"gas_balance/internal/balance"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gas_balance_runs_total",
		Help: "Completed scenario runs by solver status.",
	}, []string{"status"})

	solveSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gas_balance_solve_seconds",
		Help: "Wall-clock solver time of the last completed run.",
	})

	unservedTWh = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gas_balance_unserved_twh",
		Help: "Unserved energy per stream in the last completed run.",
	}, []string{"stream"})

	finalSocTWh = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gas_balance_final_soc_twh",
		Help: "Storage fill level at the end of the horizon in the last completed run.",
	})
)

// metricsRecorder mirrors run summaries into the Prometheus registry.
type metricsRecorder struct{}

func (metricsRecorder) OnStage(balance.StageEvent) {}

func (metricsRecorder) OnSummary(s balance.Summary) {
	runsTotal.WithLabelValues(s.Status).Inc()
	solveSeconds.Set(s.SolveSeconds)
	finalSocTWh.Set(s.FinalSoc)
	for _, row := range append(append([]balance.StreamSummary{}, s.Demand...), s.Supply...) {
		unservedTWh.WithLabelValues(string(row.Stream)).Set(row.Unserved)
	}
}

// fanout delivers every run event to each callback in order.
type fanout []balance.Callback

func (f fanout) OnStage(e balance.StageEvent) {
	for _, cb := range f {
		cb.OnStage(e)
	}
}

func (f fanout) OnSummary(s balance.Summary) {
	for _, cb := range f {
		cb.OnSummary(s)
	}
}
