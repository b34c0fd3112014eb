// Package export serializes scoring and optimization results for consuming
// services. Field names follow the wire contract of the core packages.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/fleetmind/driverguide/core/priority"
	"github.com/fleetmind/driverguide/core/twin"
)

// WriteScoresJSON writes the ranked priority scores to w as JSON.
func WriteScoresJSON(w io.Writer, scores []priority.PriorityScore) error {
	enc := json.NewEncoder(w)
	return enc.Encode(scores)
}

// WriteScoresCSV writes the ranked priority scores to w as CSV.
func WriteScoresCSV(w io.Writer, scores []priority.PriorityScore) error {
	cw := csv.NewWriter(w)
	header := []string{
		"rank", "driver_id", "raw_rating", "experience_adjusted_rating",
		"experience_boost", "acceptance_rate", "cancellation_reliability",
		"recent_activeness", "safety_score", "overall_priority_score",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range scores {
		rec := []string{
			strconv.Itoa(s.Rank),
			s.DriverID,
			formatFloat(s.RawRating),
			formatFloat(s.ExperienceAdjustedRating),
			formatFloat(s.ExperienceBoost),
			formatFloat(s.AcceptanceRate),
			formatFloat(s.CancellationReliability),
			formatFloat(s.RecentActiveness),
			formatFloat(s.SafetyScore),
			formatFloat(s.OverallPriorityScore),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteOutcomesJSON writes the optimization outcomes to w as JSON.
func WriteOutcomesJSON(w io.Writer, outcomes []twin.OptimizationOutcome) error {
	enc := json.NewEncoder(w)
	return enc.Encode(outcomes)
}

// WriteOutcomesCSV writes one row per scenario projection to w as CSV.
func WriteOutcomesCSV(w io.Writer, outcomes []twin.OptimizationOutcome) error {
	cw := csv.NewWriter(w)
	header := []string{
		"driver_id", "scenario_name", "projected_weekly_earnings",
		"improvement_pct", "feasibility_score", "recommended", "schedule",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, o := range outcomes {
		for _, s := range o.Scenarios {
			rec := []string{
				o.DriverID,
				s.ScenarioName,
				formatFloat(s.ProjectedWeeklyEarnings),
				formatFloat(s.ImprovementPct),
				formatFloat(s.FeasibilityScore),
				strconv.FormatBool(s.ScenarioName == o.BestScenario),
				formatSchedule(s.Schedule),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatSchedule renders a weekly schedule as "Monday 9:00-12:00; ..." with
// days in canonical week order.
func formatSchedule(s twin.Schedule) string {
	parts := make([]string, 0, len(s))
	for _, day := range s.Days() {
		parts = append(parts, day+" "+twin.FormatHours(s[day]))
	}
	return strings.Join(parts, "; ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
