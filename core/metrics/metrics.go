// Package metrics defines the observability events emitted by scoring and
// optimization passes and the sink interfaces that record them.
package metrics

import "time"

// ScoreEvent is one driver's result within a scoring pass.
type ScoreEvent struct {
	RunID    string
	DriverID string
	Score    float64
	Rank     int
	Time     time.Time
}

// ProfileEvent records that a behavioral profile was learned.
type ProfileEvent struct {
	RunID     string
	DriverID  string
	TripCount int
	Time      time.Time
}

// OptimizationEvent records the recommendation for one driver.
type OptimizationEvent struct {
	RunID                   string
	DriverID                string
	BestScenario            string
	ProjectedWeeklyEarnings float64
	ImprovementPct          float64
	Time                    time.Time
}

// MetricsSink records pass events for observability purposes.
type MetricsSink interface {
	RecordScores(events []ScoreEvent) error
	RecordProfile(ev ProfileEvent) error
	RecordOptimization(ev OptimizationEvent) error
}

// Config defines metrics exposition settings.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
}

// SetDefaults applies the exposition defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = ":9090"
	}
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordScores([]ScoreEvent) error            { return nil }
func (NopSink) RecordProfile(ProfileEvent) error           { return nil }
func (NopSink) RecordOptimization(OptimizationEvent) error { return nil }
