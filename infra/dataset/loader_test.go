package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSnapshot(t *testing.T) {
	dir := t.TempDir()
	drivers := writeTable(t, dir, "drivers.csv",
		"driver_id,rating,completed_trips,acceptance_rate,cancellation_rate,safety_incidents\n"+
			"d1,4.8,350,0.95,0.03,0\n"+
			"d2,4.1,40,0.80,0.12,2\n")
	trips := writeTable(t, dir, "trips.csv",
		"driver_id,start_time,end_time,fare_amount,net_earnings,pickup_zone_id\n"+
			"d1,2024-06-03 09:00:00,2024-06-03 09:30:00,15.00,12.00,zone-a\n"+
			"d1,2024-06-03T17:15:00Z,2024-06-03T18:00:00Z,22.50,18.00,zone-b\n")
	earnings := writeTable(t, dir, "earnings.csv",
		"driver_id,date,total_net_earnings,trips_count,rides_duration_minutes\n"+
			"d1,2024-06-03,130.50,8,310\n")
	incentives := writeTable(t, dir, "incentives.csv",
		"driver_id,week,achieved\n"+
			"d1,2024-W23,true\n"+
			"d1,2024-W24,no\n")
	surge := writeTable(t, dir, "surge.csv",
		"hour_of_day,surge_multiplier\n"+
			"17,1.8\n"+
			"18,2.1\n")

	snap, err := LoadSnapshot(Config{
		DriversPath:    drivers,
		TripsPath:      trips,
		EarningsPath:   earnings,
		IncentivesPath: incentives,
		SurgePath:      surge,
	})
	require.NoError(t, err)

	require.Equal(t, []string{"d1", "d2"}, snap.DriverIDs())

	d1, ok := snap.Driver("d1")
	require.True(t, ok)
	require.Equal(t, 4.8, d1.Rating)
	require.Equal(t, 350, d1.CompletedTrips)

	tr := snap.Trips("d1")
	require.Len(t, tr, 2)
	require.Equal(t, 9, tr[0].StartHour())
	require.Equal(t, "zone-b", tr[1].PickupZoneID)
	require.Equal(t, 30.0, tr[0].DurationMinutes())

	require.Len(t, snap.Earnings("d1"), 1)
	require.Equal(t, 130.50, snap.Earnings("d1")[0].TotalNetEarnings)

	inc := snap.Incentives("d1")
	require.Len(t, inc, 2)
	require.True(t, inc[0].Achieved)
	require.False(t, inc[1].Achieved)

	require.Equal(t, 1.8, snap.SurgeMultiplier(17))
	require.False(t, snap.HasSurge(3))
}

func TestLoadSnapshotOptionalTables(t *testing.T) {
	dir := t.TempDir()
	drivers := writeTable(t, dir, "drivers.csv",
		"driver_id,rating,completed_trips,acceptance_rate,cancellation_rate,safety_incidents\n"+
			"d1,4.8,350,0.95,0.03,0\n")
	trips := writeTable(t, dir, "trips.csv",
		"driver_id,start_time,end_time,fare_amount,net_earnings,pickup_zone_id\n")

	snap, err := LoadSnapshot(Config{DriversPath: drivers, TripsPath: trips})
	require.NoError(t, err)
	require.Empty(t, snap.Trips("d1"))
	require.Equal(t, 1.0, snap.SurgeMultiplier(17))
}

func TestLoadSnapshotConfigValidation(t *testing.T) {
	_, err := LoadSnapshot(Config{TripsPath: "trips.csv"})
	require.Error(t, err)
	_, err = LoadSnapshot(Config{DriversPath: "drivers.csv"})
	require.Error(t, err)
}

func TestLoadDriversBadRows(t *testing.T) {
	dir := t.TempDir()

	missing := writeTable(t, dir, "missing.csv",
		"driver_id,rating\n"+
			"d1,4.8\n")
	_, err := LoadDrivers(missing)
	require.ErrorContains(t, err, "missing column")

	badRating := writeTable(t, dir, "bad_rating.csv",
		"driver_id,rating,completed_trips,acceptance_rate,cancellation_rate,safety_incidents\n"+
			"d1,abc,10,0.9,0.1,0\n")
	_, err = LoadDrivers(badRating)
	require.ErrorContains(t, err, "line 2")

	outOfRange := writeTable(t, dir, "range.csv",
		"driver_id,rating,completed_trips,acceptance_rate,cancellation_rate,safety_incidents\n"+
			"d1,5.7,10,0.9,0.1,0\n")
	_, err = LoadDrivers(outOfRange)
	require.ErrorContains(t, err, "rating")
}

func TestLoadTripsBadTime(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, "trips.csv",
		"driver_id,start_time,end_time,fare_amount,net_earnings,pickup_zone_id\n"+
			"d1,yesterday,2024-06-03 10:00:00,10,8,zone-a\n")
	_, err := LoadTrips(path)
	require.ErrorContains(t, err, "unsupported time")
}

func TestLoadHourlySurgeValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, "surge.csv",
		"hour_of_day,surge_multiplier\n"+
			"24,1.5\n")
	_, err := LoadHourlySurge(path)
	require.ErrorContains(t, err, "hour_of_day")
}

func TestReadTableMissingFile(t *testing.T) {
	_, err := LoadDrivers(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}
