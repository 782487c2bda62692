package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/CptQuak/taxi/cleaner/stage"
)

const namespace = "yellow_taxi_cleaner"

// PipelineMetrics counters of the cleaning runs. All collectors are safe for concurrent use.
type PipelineMetrics struct {
	rowsIn      *prometheus.CounterVec
	rowsDropped *prometheus.CounterVec
	reasons     *prometheus.CounterVec
	runs        *prometheus.CounterVec
	runDuration prometheus.Gauge
}

// NewPipelineMetrics creates the collectors and registers them in registerer
func NewPipelineMetrics(registerer prometheus.Registerer) *PipelineMetrics {
	pm := &PipelineMetrics{
		rowsIn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_rows_in_total",
			Help:      "Rows received by each cleaning stage.",
		}, []string{"stage"}),
		rowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_rows_dropped_total",
			Help:      "Rows removed by each cleaning stage.",
		}, []string{"stage"}),
		reasons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_reasons_total",
			Help:      "Violated constraints, filled columns or undefined boroughs, by stage and reason.",
		}, []string{"stage", "reason"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Cleaning runs by final status.",
		}, []string{"status"}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Duration of the last cleaning run.",
		}),
	}

	registerer.MustRegister(pm.rowsIn, pm.rowsDropped, pm.reasons, pm.runs, pm.runDuration)
	return pm
}

// ObserveStage adds the counts of a stage report
func (pm *PipelineMetrics) ObserveStage(report *stage.Report) {
	stageName := string(report.Stage)
	pm.rowsIn.WithLabelValues(stageName).Add(float64(report.RowsIn))
	pm.rowsDropped.WithLabelValues(stageName).Add(float64(report.Dropped()))
	for reason, count := range report.Reasons {
		pm.reasons.WithLabelValues(stageName, reason).Add(float64(count))
	}
}

// ObserveRun records the status and duration of a run
func (pm *PipelineMetrics) ObserveRun(duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	pm.runs.WithLabelValues(status).Inc()
	pm.runDuration.Set(duration.Seconds())
}

// WriteTextfile writes the gathered metrics in the text format, for the node exporter textfile collector
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("error writing metrics to %s: %w", path, err)
	}
	return nil
}
