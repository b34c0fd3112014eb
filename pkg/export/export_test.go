package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fleetmind/driverguide/core/priority"
	"github.com/fleetmind/driverguide/core/twin"
)

func sampleScores() []priority.PriorityScore {
	return []priority.PriorityScore{
		{DriverID: "d1", RawRating: 4.8, ExperienceAdjustedRating: 4.75, ExperienceBoost: 0.9, AcceptanceRate: 0.95, CancellationReliability: 0.97, RecentActiveness: 0.8, SafetyScore: 1, OverallPriorityScore: 0.91, Rank: 1},
		{DriverID: "d2", RawRating: 3.9, ExperienceAdjustedRating: 4.1, ExperienceBoost: 0.4, AcceptanceRate: 0.7, CancellationReliability: 0.85, RecentActiveness: 0.3, SafetyScore: 0.8, OverallPriorityScore: 0.62, Rank: 2},
	}
}

func TestWriteScoresJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteScoresJSON(&buf, sampleScores()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var decoded []priority.PriorityScore
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 2 || decoded[0].DriverID != "d1" || decoded[0].Rank != 1 {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
	if !strings.Contains(buf.String(), `"overall_priority_score"`) {
		t.Fatalf("wire field names missing: %s", buf.String())
	}
}

func TestWriteScoresCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteScoresCSV(&buf, sampleScores()); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "rank" || rows[0][1] != "driver_id" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "1" || rows[1][1] != "d1" || rows[1][9] != "0.91" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
}

func TestWriteOutcomesCSV(t *testing.T) {
	outcomes := []twin.OptimizationOutcome{{
		DriverID: "d1",
		Scenarios: []twin.ScenarioResult{
			{ScenarioName: "current_pattern", ProjectedWeeklyEarnings: 500, ImprovementPct: 0, FeasibilityScore: 1,
				Schedule: twin.Schedule{"Monday": {9, 10, 11}}},
			{ScenarioName: "surge_optimizer", ProjectedWeeklyEarnings: 650, ImprovementPct: 30, FeasibilityScore: 0.8,
				Schedule: twin.Schedule{"Saturday": {17, 18, 19, 20, 21, 22}, "Friday": {17, 18, 19, 20, 21, 22}}},
		},
		BestScenario: "surge_optimizer",
	}}
	var buf bytes.Buffer
	if err := WriteOutcomesCSV(&buf, outcomes); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus one row per scenario, got %d", len(rows))
	}
	if rows[1][5] != "false" || rows[2][5] != "true" {
		t.Fatalf("recommended flag wrong: %v / %v", rows[1], rows[2])
	}
	if rows[2][1] != "surge_optimizer" || rows[2][2] != "650" {
		t.Fatalf("unexpected scenario row: %v", rows[2])
	}
	if rows[1][6] != "Monday 9:00-12:00" {
		t.Fatalf("schedule column %q, want compact clock ranges", rows[1][6])
	}
	if rows[2][6] != "Friday 17:00-23:00; Saturday 17:00-23:00" {
		t.Fatalf("schedule column %q, want canonical day order", rows[2][6])
	}
}

func TestWriteOutcomesJSON(t *testing.T) {
	outcomes := []twin.OptimizationOutcome{{
		DriverID:     "d1",
		BestScenario: "current_pattern",
		Scenarios: []twin.ScenarioResult{
			{ScenarioName: "current_pattern", Schedule: twin.Schedule{"Monday": {9, 10}}},
		},
	}}
	var buf bytes.Buffer
	if err := WriteOutcomesJSON(&buf, outcomes); err != nil {
		t.Fatalf("write: %v", err)
	}
	var decoded []twin.OptimizationOutcome
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded[0].BestScenario != "current_pattern" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
	if got := decoded[0].Scenarios[0].Schedule["Monday"]; len(got) != 2 {
		t.Fatalf("schedule lost in round trip: %v", got)
	}
}
