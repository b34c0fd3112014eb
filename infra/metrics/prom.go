package metrics

import (
	coremetrics "github.com/fleetmind/driverguide/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records scoring and optimization events in Prometheus metrics.
type PromSink struct {
	scored        prometheus.Counter
	profiles      prometheus.Counter
	optimizations *prometheus.CounterVec
	scoreHist     prometheus.Histogram
	earningsHist  prometheus.Histogram
}

// NewPromSink registers the pass metrics on the default Prometheus
// registerer. The exposition server is started separately on
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	scored := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "drivers_scored_total",
		Help: "Total number of drivers scored",
	})
	profiles := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "driver_profiles_learned_total",
		Help: "Total number of behavioral profiles learned",
	})
	optimizations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_optimizations_total",
		Help: "Total number of schedule optimizations by recommended scenario",
	}, []string{"best_scenario"})
	scoreHist := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "driver_priority_score",
		Help:    "Distribution of overall priority scores",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})
	earningsHist := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "projected_weekly_earnings",
		Help:    "Distribution of projected weekly earnings for recommended scenarios",
		Buckets: prometheus.ExponentialBuckets(50, 2, 8),
	})

	if err := reg.Register(scored); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			scored = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(profiles); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			profiles = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(optimizations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			optimizations = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(scoreHist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			scoreHist = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(earningsHist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			earningsHist = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		scored:        scored,
		profiles:      profiles,
		optimizations: optimizations,
		scoreHist:     scoreHist,
		earningsHist:  earningsHist,
	}, nil
}

// RecordScores counts scored drivers and observes their priority scores.
func (s *PromSink) RecordScores(events []coremetrics.ScoreEvent) error {
	for _, ev := range events {
		s.scored.Inc()
		s.scoreHist.Observe(ev.Score)
	}
	return nil
}

// RecordProfile counts learned profiles.
func (s *PromSink) RecordProfile(coremetrics.ProfileEvent) error {
	s.profiles.Inc()
	return nil
}

// RecordOptimization counts recommendations and observes projected earnings.
func (s *PromSink) RecordOptimization(ev coremetrics.OptimizationEvent) error {
	s.optimizations.WithLabelValues(ev.BestScenario).Inc()
	s.earningsHist.Observe(ev.ProjectedWeeklyEarnings)
	return nil
}
