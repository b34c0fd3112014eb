// Package app wires the dataset, engines, metrics and event bus into the
// guidance service.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleetmind/driverguide/config"
	coredataset "github.com/fleetmind/driverguide/core/dataset"
	coremetrics "github.com/fleetmind/driverguide/core/metrics"
	"github.com/fleetmind/driverguide/core/priority"
	"github.com/fleetmind/driverguide/core/twin"
	"github.com/fleetmind/driverguide/infra/dataset"
	"github.com/fleetmind/driverguide/infra/logger"
	"github.com/fleetmind/driverguide/infra/metrics"
	"github.com/fleetmind/driverguide/internal/eventbus"
)

// ScoresComputed is published after a scoring pass.
type ScoresComputed struct {
	RunID  string
	Scores []priority.PriorityScore
}

// OptimizationComputed is published for each driver optimized in a twin pass.
type OptimizationComputed struct {
	RunID   string
	Outcome twin.OptimizationOutcome
}

// Service orchestrates scoring and schedule-optimization passes over a
// frozen dataset snapshot.
type Service struct {
	cfg    *config.Config
	snap   *coredataset.Snapshot
	scorer *priority.Scorer
	twin   *twin.Twin
	sink   coremetrics.MetricsSink
	log    logger.Logger

	// Scores and Outcomes fan results out to in-process subscribers.
	Scores   *eventbus.Bus[ScoresComputed]
	Outcomes *eventbus.Bus[OptimizationComputed]
}

// New loads the dataset snapshot and builds the engines from configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	snap, err := dataset.LoadSnapshot(cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	scorer, err := priority.NewScorer(cfg.Priority)
	if err != nil {
		return nil, err
	}
	tw, err := twin.New(snap, cfg.Twin)
	if err != nil {
		return nil, err
	}

	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if cfg.Metrics.PrometheusEnabled {
		sink, err = metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
	}

	return &Service{
		cfg:      cfg,
		snap:     snap,
		scorer:   scorer,
		twin:     tw,
		sink:     sink,
		log:      logg,
		Scores:   eventbus.New[ScoresComputed](),
		Outcomes: eventbus.New[OptimizationComputed](),
	}, nil
}

// Snapshot returns the loaded dataset snapshot.
func (s *Service) Snapshot() *coredataset.Snapshot { return s.snap }

// Scorer returns the configured priority scorer.
func (s *Service) Scorer() *priority.Scorer { return s.scorer }

// Twin returns the configured behavioral twin.
func (s *Service) Twin() *twin.Twin { return s.twin }

// RankDrivers aggregates stats as of ref and ranks every known driver.
func (s *Service) RankDrivers(ref time.Time) []priority.PriorityScore {
	runID := uuid.NewString()
	stats := s.snap.Stats(ref, s.cfg.Priority.ActivenessWindowDays)
	scores := s.scorer.RankAll(stats)

	events := make([]coremetrics.ScoreEvent, len(scores))
	now := time.Now()
	for i, sc := range scores {
		events[i] = coremetrics.ScoreEvent{
			RunID:    runID,
			DriverID: sc.DriverID,
			Score:    sc.OverallPriorityScore,
			Rank:     sc.Rank,
			Time:     now,
		}
	}
	if err := s.sink.RecordScores(events); err != nil {
		s.log.Warnf("record scores: %v", err)
	}
	s.Scores.Publish(ScoresComputed{RunID: runID, Scores: scores})
	s.log.Infof("scored %d drivers (run %s)", len(scores), runID)
	return scores
}

// OptimizeSchedules learns a profile and simulates schedules for each driver.
// Drivers are independent, so the pass fans out across workers. Drivers
// without trip history are skipped with a warning; outcomes keep the input
// order.
func (s *Service) OptimizeSchedules(ctx context.Context, driverIDs []string) ([]twin.OptimizationOutcome, error) {
	runID := uuid.NewString()
	if len(driverIDs) == 0 {
		driverIDs = s.snap.DriverIDs()
	}

	results := make([]*twin.OptimizationOutcome, len(driverIDs))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := s.cfg.Workers
	if workers > len(driverIDs) {
		workers = len(driverIDs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				s.optimizeOne(runID, driverIDs[i], results, i)
			}
		}()
	}

	var err error
loop:
	for i := range driverIDs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break loop
		}
	}
	close(jobs)
	wg.Wait()
	if err != nil {
		return nil, err
	}

	outcomes := make([]twin.OptimizationOutcome, 0, len(driverIDs))
	for _, r := range results {
		if r != nil {
			outcomes = append(outcomes, *r)
		}
	}
	s.log.Infof("optimized %d/%d drivers (run %s)", len(outcomes), len(driverIDs), runID)
	return outcomes, nil
}

func (s *Service) optimizeOne(runID, driverID string, results []*twin.OptimizationOutcome, idx int) {
	profile, err := s.twin.Learn(driverID)
	if err != nil {
		if errors.Is(err, twin.ErrNoData) {
			s.log.Warnf("skipping %s: %v", driverID, err)
			return
		}
		s.log.Errorf("learn %s: %v", driverID, err)
		return
	}
	if err := s.sink.RecordProfile(coremetrics.ProfileEvent{
		RunID:     runID,
		DriverID:  driverID,
		TripCount: len(s.snap.Trips(driverID)),
		Time:      time.Now(),
	}); err != nil {
		s.log.Warnf("record profile: %v", err)
	}

	outcome := s.twin.Simulate(profile)
	results[idx] = &outcome

	best, err := lookupScenario(outcome, outcome.BestScenario)
	if err != nil {
		s.log.Errorf("outcome for %s: %v", driverID, err)
		return
	}
	if err := s.sink.RecordOptimization(coremetrics.OptimizationEvent{
		RunID:                   runID,
		DriverID:                driverID,
		BestScenario:            outcome.BestScenario,
		ProjectedWeeklyEarnings: best.ProjectedWeeklyEarnings,
		ImprovementPct:          best.ImprovementPct,
		Time:                    time.Now(),
	}); err != nil {
		s.log.Warnf("record optimization: %v", err)
	}
	s.Outcomes.Publish(OptimizationComputed{RunID: runID, Outcome: outcome})
}

func lookupScenario(o twin.OptimizationOutcome, name string) (twin.ScenarioResult, error) {
	for _, sc := range o.Scenarios {
		if sc.ScenarioName == name {
			return sc, nil
		}
	}
	return twin.ScenarioResult{}, fmt.Errorf("scenario %s missing from outcome", name)
}

// ServeMetrics exposes the Prometheus endpoint until the context is canceled.
// It returns immediately when Prometheus is disabled.
func (s *Service) ServeMetrics(ctx context.Context) error {
	if !s.cfg.Metrics.PrometheusEnabled {
		return nil
	}
	return metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort)
}

// Close releases the event buses.
func (s *Service) Close() error {
	s.Scores.Close()
	s.Outcomes.Close()
	return nil
}
