// Package twin learns a per-driver behavioral profile from trip history and
// simulates alternative weekly schedules to project earnings. All operations
// are pure functions over a frozen dataset snapshot: learning or simulating
// for different drivers may run concurrently without coordination.
package twin

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/fleetmind/driverguide/core/dataset"
	"github.com/fleetmind/driverguide/core/model"
)

// Twin builds behavioral profiles and schedule projections from a dataset
// snapshot.
type Twin struct {
	snap *dataset.Snapshot
	cfg  Config
}

// New validates the configuration and returns a Twin bound to the snapshot.
func New(snap *dataset.Snapshot, cfg Config) (*Twin, error) {
	if snap == nil {
		return nil, fmt.Errorf("twin: snapshot is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("twin config: %w", err)
	}
	return &Twin{snap: snap, cfg: cfg}, nil
}

// Learn derives the behavioral profile for the driver. It returns ErrNoData
// when the driver has no trip history; imperfect records (zero-duration
// trips, missing surge hours) are absorbed with documented fallbacks instead
// of failing.
func (t *Twin) Learn(driverID string) (DriverProfile, error) {
	trips := t.snap.Trips(driverID)
	if len(trips) == 0 {
		return DriverProfile{}, fmt.Errorf("driver %s: %w", driverID, ErrNoData)
	}

	return DriverProfile{
		DriverID:                driverID,
		PreferredHours:          preferredHours(trips, t.cfg.PreferredHourCount),
		PeakDays:                peakDays(trips, t.cfg.PeakDayCount),
		AvgEarningsPerHour:      avgEarningsPerHour(trips),
		SurgeResponsiveness:     t.surgeResponsiveness(trips),
		FatigueThresholdHours:   t.fatigueThreshold(trips),
		PreferredZones:          preferredZones(trips, t.cfg.PreferredZoneCount),
		IncentiveCompletionRate: incentiveRate(t.snap.Incentives(driverID)),
		ConsistencyScore:        consistencyScore(trips),
	}, nil
}

// preferredHours returns the top k start hours by trip count, ties broken by
// the lower hour of day.
func preferredHours(trips []model.TripRecord, k int) []int {
	var counts [24]int
	for _, tr := range trips {
		counts[tr.StartHour()]++
	}
	hours := make([]int, 0, 24)
	for h := 0; h < 24; h++ {
		if counts[h] > 0 {
			hours = append(hours, h)
		}
	}
	sort.SliceStable(hours, func(i, j int) bool {
		return counts[hours[i]] > counts[hours[j]]
	})
	if len(hours) > k {
		hours = hours[:k]
	}
	return hours
}

// peakDays returns the top k weekday names by trip count, ties broken by the
// earlier day of the week.
func peakDays(trips []model.TripRecord, k int) []string {
	counts := make(map[string]int, 7)
	for _, tr := range trips {
		counts[tr.StartDay()]++
	}
	days := make([]string, 0, 7)
	for _, d := range weekDays {
		if counts[d] > 0 {
			days = append(days, d)
		}
	}
	sort.SliceStable(days, func(i, j int) bool {
		return counts[days[i]] > counts[days[j]]
	})
	if len(days) > k {
		days = days[:k]
	}
	return days
}

// avgEarningsPerHour averages the per-trip hourly rate. Trips with a
// non-positive duration are excluded as corrupt rather than failing the pass.
func avgEarningsPerHour(trips []model.TripRecord) float64 {
	var sum float64
	var n int
	for _, tr := range trips {
		if rate, ok := tr.EarningsPerHour(); ok {
			sum += rate
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// surgeResponsiveness correlates the driver's hourly trip counts with the
// hourly surge multiplier. Hours without surge coverage are skipped; fewer
// than two joined hours or a zero-variance series yield 0 instead of NaN.
func (t *Twin) surgeResponsiveness(trips []model.TripRecord) float64 {
	var counts [24]int
	for _, tr := range trips {
		counts[tr.StartHour()]++
	}
	var activity, surge []float64
	for h := 0; h < 24; h++ {
		if counts[h] == 0 || !t.snap.HasSurge(h) {
			continue
		}
		activity = append(activity, float64(counts[h]))
		surge = append(surge, t.snap.SurgeMultiplier(h))
	}
	if len(activity) < 2 {
		return 0
	}
	corr := stat.Correlation(activity, surge, nil)
	if math.IsNaN(corr) {
		return 0
	}
	return corr
}

type dayAgg struct {
	minHour   int
	maxHour   int
	firstSeen bool
	rateSum   float64
	rateN     int
	trips     int
}

func groupByDay(trips []model.TripRecord) map[time.Time]*dayAgg {
	days := make(map[time.Time]*dayAgg)
	for _, tr := range trips {
		key := tr.StartDate()
		agg, ok := days[key]
		if !ok {
			agg = &dayAgg{}
			days[key] = agg
		}
		h := tr.StartHour()
		if !agg.firstSeen || h < agg.minHour {
			agg.minHour = h
		}
		if !agg.firstSeen || h > agg.maxHour {
			agg.maxHour = h
		}
		agg.firstSeen = true
		agg.trips++
		if rate, ok := tr.EarningsPerHour(); ok {
			agg.rateSum += rate
			agg.rateN++
		}
	}
	return days
}

func sortedDayKeys(days map[time.Time]*dayAgg) []time.Time {
	keys := make([]time.Time, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}

// fatigueThreshold estimates the daily working span beyond which efficiency
// drops. A meaningful negative span/efficiency correlation over enough days
// sets the threshold to the configured quantile of the daily span; otherwise
// the default applies.
func (t *Twin) fatigueThreshold(trips []model.TripRecord) int {
	days := groupByDay(trips)
	var spans, effs []float64
	for _, key := range sortedDayKeys(days) {
		agg := days[key]
		if agg.rateN == 0 {
			// No trip on this day has a usable duration.
			continue
		}
		spans = append(spans, float64(agg.maxHour-agg.minHour+1))
		effs = append(effs, agg.rateSum/float64(agg.rateN))
	}
	if len(spans) < t.cfg.FatigueMinDays {
		return t.cfg.DefaultFatigueHours
	}
	corr := stat.Correlation(spans, effs, nil)
	if math.IsNaN(corr) || corr >= t.cfg.FatigueCorrThreshold {
		return t.cfg.DefaultFatigueHours
	}
	sort.Float64s(spans)
	// LinInterp interpolates the empirical CDF at p*n between adjacent order
	// statistics, then the value is truncated toward zero. For untied spans
	// this reads up to one index below conventions that interpolate at
	// p*(n-1).
	threshold := int(stat.Quantile(t.cfg.FatigueQuantile, stat.LinInterp, spans, nil))
	if threshold < 1 {
		threshold = 1
	}
	return threshold
}

// preferredZones returns the top k pickup zones by trip count, ties broken by
// zone identifier.
func preferredZones(trips []model.TripRecord, k int) []string {
	counts := make(map[string]int)
	for _, tr := range trips {
		if tr.PickupZoneID != "" {
			counts[tr.PickupZoneID]++
		}
	}
	zones := make([]string, 0, len(counts))
	for z := range counts {
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool {
		if counts[zones[i]] != counts[zones[j]] {
			return counts[zones[i]] > counts[zones[j]]
		}
		return zones[i] < zones[j]
	})
	if len(zones) > k {
		zones = zones[:k]
	}
	return zones
}

// incentiveRate is the fraction of weekly incentives achieved, 0 without data.
func incentiveRate(incentives []model.WeeklyIncentive) float64 {
	if len(incentives) == 0 {
		return 0
	}
	achieved := 0
	for _, in := range incentives {
		if in.Achieved {
			achieved++
		}
	}
	return float64(achieved) / float64(len(incentives))
}

// consistencyScore combines the spread of daily first-trip hours with the
// variation of daily trip counts into 1/(1+std+cv). A single working day
// carries no spread and scores 1.
func consistencyScore(trips []model.TripRecord) float64 {
	days := groupByDay(trips)
	keys := sortedDayKeys(days)
	if len(keys) < 2 {
		return 1
	}
	firstHours := make([]float64, 0, len(keys))
	counts := make([]float64, 0, len(keys))
	for _, key := range keys {
		firstHours = append(firstHours, float64(days[key].minHour))
		counts = append(counts, float64(days[key].trips))
	}
	startStd := stat.StdDev(firstHours, nil)
	mean := stat.Mean(counts, nil)
	cv := 1.0
	if mean > 0 {
		cv = stat.StdDev(counts, nil) / mean
	}
	return math.Min(1/(1+startStd+cv), 1)
}
