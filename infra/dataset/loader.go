// Package dataset loads the historical tables from CSV files and builds the
// frozen snapshot consumed by the core. Loading happens once, before any
// scoring or simulation; the core itself never touches the filesystem.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	coredataset "github.com/fleetmind/driverguide/core/dataset"
	"github.com/fleetmind/driverguide/core/model"
)

// Config lists the input table locations. Incentive and surge tables are
// optional; the core falls back to documented defaults without them.
type Config struct {
	DriversPath    string `json:"drivers_path"`
	TripsPath      string `json:"trips_path"`
	EarningsPath   string `json:"earnings_path"`
	IncentivesPath string `json:"incentives_path"`
	SurgePath      string `json:"surge_path"`
}

// Validate checks that the mandatory tables are configured.
func (c Config) Validate() error {
	if c.DriversPath == "" {
		return fmt.Errorf("drivers_path is required")
	}
	if c.TripsPath == "" {
		return fmt.Errorf("trips_path is required")
	}
	return nil
}

// LoadSnapshot reads every configured table and builds the snapshot.
func LoadSnapshot(cfg Config) (*coredataset.Snapshot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("dataset config: %w", err)
	}
	drivers, err := LoadDrivers(cfg.DriversPath)
	if err != nil {
		return nil, err
	}
	trips, err := LoadTrips(cfg.TripsPath)
	if err != nil {
		return nil, err
	}
	var earnings []model.DailyEarning
	if cfg.EarningsPath != "" {
		if earnings, err = LoadDailyEarnings(cfg.EarningsPath); err != nil {
			return nil, err
		}
	}
	var incentives []model.WeeklyIncentive
	if cfg.IncentivesPath != "" {
		if incentives, err = LoadWeeklyIncentives(cfg.IncentivesPath); err != nil {
			return nil, err
		}
	}
	var surge []model.HourlySurge
	if cfg.SurgePath != "" {
		if surge, err = LoadHourlySurge(cfg.SurgePath); err != nil {
			return nil, err
		}
	}
	return coredataset.New(drivers, trips, earnings, incentives, surge), nil
}

// LoadDrivers reads the driver table.
func LoadDrivers(path string) ([]model.DriverRecord, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	out := make([]model.DriverRecord, 0, len(rows))
	for _, row := range rows {
		rec := model.DriverRecord{
			DriverID:         row.str("driver_id"),
			Rating:           row.float("rating"),
			CompletedTrips:   row.int("completed_trips"),
			AcceptanceRate:   row.float("acceptance_rate"),
			CancellationRate: row.float("cancellation_rate"),
			SafetyIncidents:  row.int("safety_incidents"),
		}
		if row.err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, row.line, row.err)
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, row.line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// LoadTrips reads the trip table.
func LoadTrips(path string) ([]model.TripRecord, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	out := make([]model.TripRecord, 0, len(rows))
	for _, row := range rows {
		rec := model.TripRecord{
			DriverID:     row.str("driver_id"),
			StartTime:    row.time("start_time"),
			EndTime:      row.time("end_time"),
			FareAmount:   row.float("fare_amount"),
			NetEarnings:  row.float("net_earnings"),
			PickupZoneID: row.str("pickup_zone_id"),
		}
		if row.err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, row.line, row.err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// LoadDailyEarnings reads the daily earnings table.
func LoadDailyEarnings(path string) ([]model.DailyEarning, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	out := make([]model.DailyEarning, 0, len(rows))
	for _, row := range rows {
		rec := model.DailyEarning{
			DriverID:             row.str("driver_id"),
			Date:                 row.time("date"),
			TotalNetEarnings:     row.float("total_net_earnings"),
			TripsCount:           row.int("trips_count"),
			RidesDurationMinutes: row.float("rides_duration_minutes"),
		}
		if row.err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, row.line, row.err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// LoadWeeklyIncentives reads the weekly incentive table.
func LoadWeeklyIncentives(path string) ([]model.WeeklyIncentive, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	out := make([]model.WeeklyIncentive, 0, len(rows))
	for _, row := range rows {
		rec := model.WeeklyIncentive{
			DriverID: row.str("driver_id"),
			Week:     row.str("week"),
			Achieved: row.bool("achieved"),
		}
		if row.err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, row.line, row.err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// LoadHourlySurge reads the hourly surge table.
func LoadHourlySurge(path string) ([]model.HourlySurge, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	out := make([]model.HourlySurge, 0, len(rows))
	for _, row := range rows {
		rec := model.HourlySurge{
			Hour:       row.int("hour_of_day"),
			Multiplier: row.float("surge_multiplier"),
		}
		if row.err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, row.line, row.err)
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, row.line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

type tableRow struct {
	cols map[string]string
	line int
	err  error
}

func (r *tableRow) str(name string) string {
	v, ok := r.cols[name]
	if !ok && r.err == nil {
		r.err = fmt.Errorf("missing column %q", name)
	}
	return v
}

func (r *tableRow) float(name string) float64 {
	s := r.str(name)
	if r.err != nil || s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("column %q: %w", name, err)
	}
	return v
}

func (r *tableRow) int(name string) int {
	s := r.str(name)
	if r.err != nil || s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("column %q: %w", name, err)
	}
	return v
}

func (r *tableRow) bool(name string) bool {
	s := strings.ToLower(r.str(name))
	return s == "true" || s == "1" || s == "yes"
}

func (r *tableRow) time(name string) time.Time {
	s := r.str(name)
	if r.err != nil || s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if r.err == nil {
		r.err = fmt.Errorf("column %q: unsupported time %q", name, s)
	}
	return time.Time{}
}

func readTable(path string) ([]*tableRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: missing header row", path)
	}
	header := records[0]
	rows := make([]*tableRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		cols := make(map[string]string, len(header))
		for j, name := range header {
			if j < len(rec) {
				cols[strings.TrimSpace(name)] = strings.TrimSpace(rec[j])
			}
		}
		rows = append(rows, &tableRow{cols: cols, line: i + 2})
	}
	return rows, nil
}
