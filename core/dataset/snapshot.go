// Package dataset provides an immutable, indexed view over the loaded
// historical tables. A Snapshot is built once from already-loaded records and
// is safe for concurrent reads; the core performs no I/O of its own.
package dataset

import (
	"sort"
	"time"

	"github.com/fleetmind/driverguide/core/model"
)

// Snapshot is a frozen view of the historical dataset indexed by driver.
type Snapshot struct {
	drivers    map[string]model.DriverRecord
	trips      map[string][]model.TripRecord
	earnings   map[string][]model.DailyEarning
	incentives map[string][]model.WeeklyIncentive
	surge      map[int]surgeAgg
	ids        []string
}

type surgeAgg struct {
	sum   float64
	count int
}

// New builds a Snapshot from the loaded tables. The input slices are copied
// into per-driver indexes; callers may discard them afterwards.
func New(
	drivers []model.DriverRecord,
	trips []model.TripRecord,
	earnings []model.DailyEarning,
	incentives []model.WeeklyIncentive,
	surge []model.HourlySurge,
) *Snapshot {
	s := &Snapshot{
		drivers:    make(map[string]model.DriverRecord, len(drivers)),
		trips:      make(map[string][]model.TripRecord),
		earnings:   make(map[string][]model.DailyEarning),
		incentives: make(map[string][]model.WeeklyIncentive),
		surge:      make(map[int]surgeAgg, 24),
	}
	for _, d := range drivers {
		if _, ok := s.drivers[d.DriverID]; !ok {
			s.ids = append(s.ids, d.DriverID)
		}
		s.drivers[d.DriverID] = d
	}
	for _, t := range trips {
		s.trips[t.DriverID] = append(s.trips[t.DriverID], t)
	}
	for _, e := range earnings {
		s.earnings[e.DriverID] = append(s.earnings[e.DriverID], e)
	}
	for _, in := range incentives {
		s.incentives[in.DriverID] = append(s.incentives[in.DriverID], in)
	}
	for _, h := range surge {
		agg := s.surge[h.Hour]
		agg.sum += h.Multiplier
		agg.count++
		s.surge[h.Hour] = agg
	}
	sort.Strings(s.ids)
	return s
}

// DriverIDs returns the known driver identifiers in sorted order.
func (s *Snapshot) DriverIDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Driver returns the base record for the given driver.
func (s *Snapshot) Driver(id string) (model.DriverRecord, bool) {
	d, ok := s.drivers[id]
	return d, ok
}

// Trips returns the trip history for the given driver.
func (s *Snapshot) Trips(id string) []model.TripRecord { return s.trips[id] }

// Earnings returns the daily earnings rows for the given driver.
func (s *Snapshot) Earnings(id string) []model.DailyEarning { return s.earnings[id] }

// Incentives returns the weekly incentive rows for the given driver.
func (s *Snapshot) Incentives(id string) []model.WeeklyIncentive { return s.incentives[id] }

// SurgeMultiplier returns the mean surge multiplier observed for the hour.
// Hours absent from the surge table fall back to a neutral 1.0.
func (s *Snapshot) SurgeMultiplier(hour int) float64 {
	m, ok := s.surgeMultiplier(hour)
	if !ok {
		return 1.0
	}
	return m
}

// HasSurge reports whether the surge table covers the given hour.
func (s *Snapshot) HasSurge(hour int) bool {
	_, ok := s.surge[hour]
	return ok
}

func (s *Snapshot) surgeMultiplier(hour int) (float64, bool) {
	agg, ok := s.surge[hour]
	if !ok || agg.count == 0 {
		return 0, false
	}
	return agg.sum / float64(agg.count), true
}

// Stats derives the scoring aggregates for every known driver. Recent
// activeness is the fraction of distinct active days within the trailing
// window ending at ref.
func (s *Snapshot) Stats(ref time.Time, windowDays int) []model.DriverStats {
	out := make([]model.DriverStats, 0, len(s.ids))
	for _, id := range s.ids {
		d := s.drivers[id]
		out = append(out, model.DriverStats{
			DriverID:         id,
			RawRating:        d.Rating,
			CompletedTrips:   d.CompletedTrips,
			AcceptanceRate:   d.AcceptanceRate,
			CancellationRate: d.CancellationRate,
			RecentActiveness: s.activeness(id, ref, windowDays),
			SafetyIncidents:  d.SafetyIncidents,
		})
	}
	return out
}

func (s *Snapshot) activeness(id string, ref time.Time, windowDays int) float64 {
	if windowDays <= 0 {
		return 0
	}
	cutoff := ref.AddDate(0, 0, -windowDays)
	days := make(map[time.Time]struct{})
	for _, t := range s.trips[id] {
		if t.StartTime.Before(cutoff) || t.StartTime.After(ref) {
			continue
		}
		days[t.StartDate()] = struct{}{}
	}
	frac := float64(len(days)) / float64(windowDays)
	if frac > 1 {
		frac = 1
	}
	return frac
}
