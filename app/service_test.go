package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fleetmind/driverguide/config"
	infradataset "github.com/fleetmind/driverguide/infra/dataset"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	drivers := writeFixture(t, dir, "drivers.csv",
		"driver_id,rating,completed_trips,acceptance_rate,cancellation_rate,safety_incidents\n"+
			"d1,4.8,350,0.95,0.03,0\n"+
			"d2,4.1,40,0.80,0.12,2\n")
	trips := writeFixture(t, dir, "trips.csv",
		"driver_id,start_time,end_time,fare_amount,net_earnings,pickup_zone_id\n"+
			"d1,2024-06-03 09:00:00,2024-06-03 09:45:00,20.00,16.00,zone-a\n"+
			"d1,2024-06-03 17:00:00,2024-06-03 17:40:00,24.00,19.00,zone-b\n"+
			"d1,2024-06-04 09:10:00,2024-06-04 09:55:00,21.00,17.00,zone-a\n"+
			"d1,2024-06-05 18:00:00,2024-06-05 18:50:00,26.00,21.00,zone-a\n")
	surge := writeFixture(t, dir, "surge.csv",
		"hour_of_day,surge_multiplier\n"+
			"9,1.1\n"+
			"17,1.7\n"+
			"18,2.0\n")

	cfg := &config.Config{Dataset: infradataset.Config{
		DriversPath: drivers,
		TripsPath:   trips,
		SurgePath:   surge,
	}}
	cfg.SetDefaults()

	svc, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, svc.Close()) })
	return svc
}

func TestServiceRankDrivers(t *testing.T) {
	svc := newTestService(t)
	sub := svc.Scores.Subscribe()

	ref := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	scores := svc.RankDrivers(ref)
	require.Len(t, scores, 2)
	require.Equal(t, 1, scores[0].Rank)
	require.Equal(t, "d1", scores[0].DriverID)
	require.Greater(t, scores[0].OverallPriorityScore, scores[1].OverallPriorityScore)

	select {
	case ev := <-sub:
		require.NotEmpty(t, ev.RunID)
		require.Len(t, ev.Scores, 2)
	case <-time.After(time.Second):
		t.Fatalf("scores event not published")
	}
}

func TestServiceOptimizeSchedules(t *testing.T) {
	svc := newTestService(t)
	sub := svc.Outcomes.Subscribe()

	outcomes, err := svc.OptimizeSchedules(context.Background(), nil)
	require.NoError(t, err)
	// d2 has no trip history and is skipped.
	require.Len(t, outcomes, 1)
	require.Equal(t, "d1", outcomes[0].DriverID)
	require.Len(t, outcomes[0].Scenarios, 5)
	require.NotEmpty(t, outcomes[0].BestScenario)

	select {
	case ev := <-sub:
		require.Equal(t, "d1", ev.Outcome.DriverID)
	case <-time.After(time.Second):
		t.Fatalf("outcome event not published")
	}
}

func TestServiceOptimizeExplicitDrivers(t *testing.T) {
	svc := newTestService(t)
	outcomes, err := svc.OptimizeSchedules(context.Background(), []string{"d1", "ghost"})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.Equal(t, "d1", outcomes[0].DriverID)
}

func TestServiceRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	drivers := writeFixture(t, dir, "drivers.csv",
		"driver_id,rating,completed_trips,acceptance_rate,cancellation_rate,safety_incidents\n"+
			"d1,4.8,350,0.95,0.03,0\n")
	trips := writeFixture(t, dir, "trips.csv",
		"driver_id,start_time,end_time,fare_amount,net_earnings,pickup_zone_id\n")

	// Sections defaulted individually but Workers left at zero: construction
	// must fail instead of the twin pass stalling with no workers.
	cfg := &config.Config{Dataset: infradataset.Config{
		DriversPath: drivers,
		TripsPath:   trips,
	}}
	cfg.Priority.SetDefaults()
	cfg.Twin.SetDefaults()
	_, err := New(cfg)
	require.ErrorContains(t, err, "workers")

	// Invalid section settings fail the same way.
	cfg.Workers = 4
	cfg.Priority.Weights.Rating = 0.9
	_, err = New(cfg)
	require.ErrorContains(t, err, "weights")
}

func TestServiceAccessors(t *testing.T) {
	svc := newTestService(t)
	require.NotNil(t, svc.Snapshot())
	require.NotNil(t, svc.Scorer())
	require.NotNil(t, svc.Twin())
	require.Equal(t, []string{"d1", "d2"}, svc.Snapshot().DriverIDs())
}
