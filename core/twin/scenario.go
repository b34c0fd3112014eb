package twin

// ScenarioKind identifies one of the fixed candidate weekly plans. New kinds
// are added here together with a generation rule; the simulation logic itself
// never changes per kind.
type ScenarioKind int

const (
	// ScenarioCurrentPattern keeps the driver's observed peak days and hours.
	ScenarioCurrentPattern ScenarioKind = iota
	// ScenarioEarlyBird shifts the usual hours two hours earlier.
	ScenarioEarlyBird
	// ScenarioSurgeOptimizer concentrates on evening surge windows on Friday
	// and Saturday.
	ScenarioSurgeOptimizer
	// ScenarioConsistentGrind works fixed commuter blocks Monday to Friday.
	ScenarioConsistentGrind
	// ScenarioWeekendWarrior concentrates the week into Friday to Sunday.
	ScenarioWeekendWarrior
)

// ScenarioKinds fixes the catalogue and its evaluation order. Ties on the
// selection objective resolve to the earlier kind in this list.
var ScenarioKinds = []ScenarioKind{
	ScenarioCurrentPattern,
	ScenarioEarlyBird,
	ScenarioSurgeOptimizer,
	ScenarioConsistentGrind,
	ScenarioWeekendWarrior,
}

// String returns the scenario's wire name.
func (k ScenarioKind) String() string {
	switch k {
	case ScenarioCurrentPattern:
		return "current_pattern"
	case ScenarioEarlyBird:
		return "early_bird"
	case ScenarioSurgeOptimizer:
		return "surge_optimizer"
	case ScenarioConsistentGrind:
		return "consistent_grind"
	case ScenarioWeekendWarrior:
		return "weekend_warrior"
	default:
		return "unknown"
	}
}

// Schedule generates the candidate weekly plan for the profile.
func (k ScenarioKind) Schedule(p DriverProfile) Schedule {
	switch k {
	case ScenarioCurrentPattern:
		sched := Schedule{}
		for _, day := range p.PeakDays {
			sched[day] = firstN(p.PreferredHours, 4)
		}
		return sched
	case ScenarioEarlyBird:
		sched := Schedule{}
		for _, day := range p.PeakDays {
			shifted := make([]int, 0, 4)
			for _, h := range firstN(p.PreferredHours, 4) {
				if h-2 >= 0 {
					shifted = append(shifted, h-2)
				}
			}
			sched[day] = shifted
		}
		return sched
	case ScenarioSurgeOptimizer:
		sched := Schedule{}
		for _, day := range p.PeakDays {
			sched[day] = firstN(p.PreferredHours, 4)
		}
		for _, day := range []string{"Friday", "Saturday"} {
			sched[day] = []int{17, 18, 19, 20, 21, 22}
		}
		return sched
	case ScenarioConsistentGrind:
		sched := Schedule{}
		for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"} {
			sched[day] = []int{9, 10, 11, 16, 17, 18}
		}
		return sched
	case ScenarioWeekendWarrior:
		return Schedule{
			"Friday":   {16, 17, 18, 19, 20, 21, 22},
			"Saturday": {12, 13, 14, 18, 19, 20, 21, 22},
			"Sunday":   {12, 13, 14, 17, 18, 19},
		}
	default:
		return Schedule{}
	}
}

func firstN(hours []int, n int) []int {
	if n > len(hours) {
		n = len(hours)
	}
	out := make([]int, n)
	copy(out, hours[:n])
	return out
}
