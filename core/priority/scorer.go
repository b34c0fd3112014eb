// Package priority ranks drivers with an Experience-Aware Rating and a
// weighted combination of reliability and engagement factors. Scores are pure
// functions of a single driver's aggregates; no cross-driver normalization is
// applied, so scoring many drivers in parallel is safe.
package priority

import (
	"fmt"
	"math"
	"sort"

	"github.com/fleetmind/driverguide/core/model"
)

// PriorityScore is the scoring output for one driver. Rank is only populated
// by RankAll after a full stable sort of the input collection.
type PriorityScore struct {
	DriverID                 string  `json:"driver_id"`
	RawRating                float64 `json:"raw_rating"`
	ExperienceAdjustedRating float64 `json:"experience_adjusted_rating"`
	ExperienceBoost          float64 `json:"experience_boost"`
	AcceptanceRate           float64 `json:"acceptance_rate"`
	CancellationReliability  float64 `json:"cancellation_reliability"`
	RecentActiveness         float64 `json:"recent_activeness"`
	SafetyScore              float64 `json:"safety_score"`
	OverallPriorityScore     float64 `json:"overall_priority_score"`
	Rank                     int     `json:"rank"`
}

// Scorer computes priority scores from immutable configuration.
type Scorer struct {
	cfg Config
}

// NewScorer validates the configuration and returns a Scorer. Invalid
// configuration fails here, never during scoring.
func NewScorer(cfg Config) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("priority config: %w", err)
	}
	return &Scorer{cfg: cfg}, nil
}

// Config returns the scorer's configuration.
func (s *Scorer) Config() Config { return s.cfg }

// ExperienceAwareRating shrinks a raw rating toward the platform average.
// EAR = (m*a + n*r) / (m+n): with no trips the rating collapses to the prior,
// with many trips it converges to the raw rating. A negative trip count is
// treated as zero.
func (s *Scorer) ExperienceAwareRating(rawRating float64, completedTrips int) float64 {
	a := s.cfg.PlatformAvgRating
	m := s.cfg.EquivalentPriorTrips
	n := float64(completedTrips)
	if n < 0 {
		n = 0
	}
	return (m*a + n*rawRating) / (m + n)
}

// ExperienceBoost rewards trip volume with diminishing returns:
// E(n) = min(ln(1+n)/ln(1+N95), 1). E(0) is 0 and invalid negative counts
// clamp to 0.
func (s *Scorer) ExperienceBoost(completedTrips int) float64 {
	if completedTrips <= 0 {
		return 0
	}
	boost := math.Log(1+float64(completedTrips)) / math.Log(1+float64(s.cfg.N95Trips))
	return math.Min(boost, 1)
}

// Score computes the priority score for one driver. Rank is left at zero;
// it is only meaningful relative to a ranked collection.
func (s *Scorer) Score(st model.DriverStats) PriorityScore {
	ear := s.ExperienceAwareRating(st.RawRating, st.CompletedTrips)
	boost := s.ExperienceBoost(st.CompletedTrips)

	acceptance := clamp01(st.AcceptanceRate)
	cancelRel := clamp01(1 - st.CancellationRate)
	activeness := clamp01(st.RecentActiveness)
	safety := clamp01(1 - float64(st.SafetyIncidents)/float64(s.cfg.MaxIncidents))

	earNorm := (ear - 1) / 4
	w := s.cfg.Weights
	overall := w.Rating*earNorm +
		w.Acceptance*acceptance +
		w.Cancellation*cancelRel +
		w.Activeness*activeness +
		w.Safety*safety +
		w.ExperienceBoost*boost

	return PriorityScore{
		DriverID:                 st.DriverID,
		RawRating:                st.RawRating,
		ExperienceAdjustedRating: ear,
		ExperienceBoost:          boost,
		AcceptanceRate:           acceptance,
		CancellationReliability:  cancelRel,
		RecentActiveness:         activeness,
		SafetyScore:              safety,
		OverallPriorityScore:     clamp01(overall),
	}
}

// RankAll scores every driver and assigns contiguous 1-based ranks by
// descending overall score. The sort is stable: ties keep their input order,
// making the ranking deterministic.
func (s *Scorer) RankAll(stats []model.DriverStats) []PriorityScore {
	scores := make([]PriorityScore, len(stats))
	for i, st := range stats {
		scores[i] = s.Score(st)
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].OverallPriorityScore > scores[j].OverallPriorityScore
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}
	return scores
}

// TopN returns the n best-ranked drivers.
func (s *Scorer) TopN(stats []model.DriverStats, n int) []PriorityScore {
	ranked := s.RankAll(stats)
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// Lookup finds a driver's score in an already-ranked collection. It returns
// ErrNotFound when the driver is absent.
func Lookup(scores []PriorityScore, driverID string) (PriorityScore, error) {
	for _, sc := range scores {
		if sc.DriverID == driverID {
			return sc, nil
		}
	}
	return PriorityScore{}, fmt.Errorf("driver %s: %w", driverID, ErrNotFound)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
