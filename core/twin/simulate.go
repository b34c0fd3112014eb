package twin

import "math"

// BaselinePerformance extrapolates the driver's observed daily averages to a
// week. The flat x7 projection is a deliberate modeling simplification, not a
// forecast: weekday variation is ignored.
type BaselinePerformance struct {
	WeeklyEarnings float64 `json:"weekly_earnings"`
	WeeklyHours    float64 `json:"weekly_hours"`
	WeeklyRides    float64 `json:"weekly_rides"`
}

// ScenarioResult is the projection for one candidate schedule.
type ScenarioResult struct {
	ScenarioName            string   `json:"scenario_name"`
	Schedule                Schedule `json:"schedule"`
	ProjectedWeeklyEarnings float64  `json:"projected_weekly_earnings"`
	// ImprovementPct is relative to the baseline weekly earnings; 0 when no
	// baseline exists.
	ImprovementPct   float64 `json:"improvement_pct"`
	FeasibilityScore float64 `json:"feasibility_score"`
}

// OptimizationOutcome carries the baseline, every scenario projection and the
// recommended scenario maximizing projected earnings x feasibility.
type OptimizationOutcome struct {
	DriverID     string              `json:"driver_id"`
	Baseline     BaselinePerformance `json:"baseline"`
	Scenarios    []ScenarioResult    `json:"scenarios"`
	BestScenario string              `json:"best_scenario"`
}

// Simulate projects every catalogue scenario for the profile and selects the
// one maximizing projected weekly earnings x feasibility. The computation is
// deterministic: identical profiles yield identical outcomes.
func (t *Twin) Simulate(p DriverProfile) OptimizationOutcome {
	baseline := t.baseline(p.DriverID)

	results := make([]ScenarioResult, 0, len(ScenarioKinds))
	bestIdx := 0
	bestObjective := math.Inf(-1)
	for i, kind := range ScenarioKinds {
		sched := kind.Schedule(p)
		projected := t.projectEarnings(p, sched)
		feasibility := t.feasibility(p, sched)

		improvement := 0.0
		if baseline.WeeklyEarnings > 0 {
			improvement = (projected - baseline.WeeklyEarnings) / baseline.WeeklyEarnings * 100
		}
		results = append(results, ScenarioResult{
			ScenarioName:            kind.String(),
			Schedule:                sched,
			ProjectedWeeklyEarnings: projected,
			ImprovementPct:          improvement,
			FeasibilityScore:        feasibility,
		})

		if objective := projected * feasibility; objective > bestObjective {
			bestObjective = objective
			bestIdx = i
		}
	}

	return OptimizationOutcome{
		DriverID:     p.DriverID,
		Baseline:     baseline,
		Scenarios:    results,
		BestScenario: results[bestIdx].ScenarioName,
	}
}

func (t *Twin) baseline(driverID string) BaselinePerformance {
	rows := t.snap.Earnings(driverID)
	if len(rows) == 0 {
		return BaselinePerformance{}
	}
	var earnings, minutes, rides float64
	for _, r := range rows {
		earnings += r.TotalNetEarnings
		minutes += r.RidesDurationMinutes
		rides += float64(r.TripsCount)
	}
	n := float64(len(rows))
	return BaselinePerformance{
		WeeklyEarnings: earnings / n * 7,
		WeeklyHours:    minutes / n * 7 / 60,
		WeeklyRides:    rides / n * 7,
	}
}

// projectEarnings sums hourly earnings over the schedule. The surge bonus is
// derived from the unpenalized base rate; fatigue reduces the base rate on
// days scheduled past the driver's threshold, clamped so a long day never
// turns earnings negative.
func (t *Twin) projectEarnings(p DriverProfile, sched Schedule) float64 {
	peak := make(map[string]bool, len(p.PeakDays))
	for _, d := range p.PeakDays {
		peak[d] = true
	}

	total := 0.0
	for _, day := range sched.Days() {
		hours := sched[day]
		base := p.AvgEarningsPerHour
		if daily := len(hours); daily > p.FatigueThresholdHours {
			mult := 1 - t.cfg.FatiguePenaltyRate*float64(daily-p.FatigueThresholdHours)
			if mult < 0 {
				mult = 0
			}
			base *= mult
		}
		if peak[day] {
			base *= t.cfg.PeakDayBonus
		}
		for _, h := range hours {
			bonus := p.AvgEarningsPerHour * (t.snap.SurgeMultiplier(h) - 1) * p.SurgeResponsiveness
			total += base + bonus
		}
	}
	return total
}

// feasibility scores how compatible a schedule is with the driver's observed
// pattern: preferred-hour overlap plus a consistency bonus minus an overwork
// penalty, clamped to [0,1].
func (t *Twin) feasibility(p DriverProfile, sched Schedule) float64 {
	match := 0.0
	if len(p.PreferredHours) > 0 {
		scheduled := sched.Hours()
		overlap := 0
		for _, h := range p.PreferredHours {
			if _, ok := scheduled[h]; ok {
				overlap++
			}
		}
		match = float64(overlap) / float64(len(p.PreferredHours))
	}

	overwork := (float64(sched.TotalHours()) - float64(p.FatigueThresholdHours*len(sched))) / t.cfg.OverworkDivisor
	if overwork < 0 {
		overwork = 0
	}

	f := match + t.cfg.ConsistencyWeight*p.ConsistencyScore - overwork
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
