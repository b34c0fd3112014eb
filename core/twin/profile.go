package twin

import (
	"fmt"
	"sort"
	"strings"
)

// Days of the week in canonical order, used for deterministic tie-breaks and
// schedule iteration.
var weekDays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var weekIndex = func() map[string]int {
	m := make(map[string]int, len(weekDays))
	for i, d := range weekDays {
		m[d] = i
	}
	return m
}()

// DriverProfile is the behavioral pattern learned from a driver's history.
// It is built once per call and never mutated afterwards.
type DriverProfile struct {
	DriverID string `json:"driver_id"`
	// PreferredHours lists up to PreferredHourCount start hours, most active
	// first.
	PreferredHours []int `json:"preferred_hours"`
	// PeakDays lists up to PeakDayCount weekday names, most active first.
	PeakDays           []string `json:"peak_days"`
	AvgEarningsPerHour float64  `json:"avg_earnings_per_hour"`
	// SurgeResponsiveness is the correlation between the driver's hourly
	// activity and the hourly surge multiplier, in [-1,1].
	SurgeResponsiveness float64 `json:"surge_responsiveness"`
	// FatigueThresholdHours is the daily working span beyond which efficiency
	// drops for this driver.
	FatigueThresholdHours int `json:"fatigue_threshold_hours"`
	// PreferredZones lists up to PreferredZoneCount pickup zones by trip count.
	PreferredZones          []string `json:"preferred_zones"`
	IncentiveCompletionRate float64  `json:"incentive_completion_rate"`
	// ConsistencyScore approaches 1 for drivers with regular start times and
	// stable daily ride counts.
	ConsistencyScore float64 `json:"consistency_score"`
}

// Schedule maps weekday names to the hour-of-day slots worked on that day.
type Schedule map[string][]int

// TotalHours returns the number of scheduled hour slots across the week.
func (s Schedule) TotalHours() int {
	total := 0
	for _, hours := range s {
		total += len(hours)
	}
	return total
}

// Hours returns the distinct hour slots used anywhere in the schedule.
func (s Schedule) Hours() map[int]struct{} {
	set := make(map[int]struct{})
	for _, hours := range s {
		for _, h := range hours {
			set[h] = struct{}{}
		}
	}
	return set
}

// Days returns the schedule's weekday names in canonical week order.
func (s Schedule) Days() []string {
	out := make([]string, 0, len(s))
	for day := range s {
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return weekIndex[out[i]] < weekIndex[out[j]] })
	return out
}

// FormatHours renders hour slots as compact clock ranges, e.g.
// "9:00-12:00, 17:00-19:00".
func FormatHours(hours []int) string {
	if len(hours) == 0 {
		return "no hours"
	}
	sorted := append([]int(nil), hours...)
	sort.Ints(sorted)

	var parts []string
	start, end := sorted[0], sorted[0]
	for _, h := range sorted[1:] {
		if h == end+1 {
			end = h
			continue
		}
		parts = append(parts, fmt.Sprintf("%d:00-%d:00", start, end+1))
		start, end = h, h
	}
	parts = append(parts, fmt.Sprintf("%d:00-%d:00", start, end+1))
	return strings.Join(parts, ", ")
}
