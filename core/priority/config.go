package priority

import (
	"fmt"
	"math"
)

// Weights control the contribution of each factor to the overall priority
// score. They must sum to 1.
type Weights struct {
	Rating          float64 `json:"rating"`
	Acceptance      float64 `json:"acceptance"`
	Cancellation    float64 `json:"cancellation"`
	Activeness      float64 `json:"activeness"`
	Safety          float64 `json:"safety"`
	ExperienceBoost float64 `json:"experience_boost"`
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Rating + w.Acceptance + w.Cancellation + w.Activeness + w.Safety + w.ExperienceBoost
}

// Config defines scoring parameters. The zero value is not usable; call
// SetDefaults or supply every field.
type Config struct {
	// PlatformAvgRating is the global rating prior drivers are shrunk toward.
	PlatformAvgRating float64 `json:"platform_avg_rating"`
	// EquivalentPriorTrips is the shrinkage strength: the number of trips the
	// prior is worth.
	EquivalentPriorTrips float64 `json:"equivalent_prior_trips"`
	// N95Trips is the trip count yielding ~95% of the maximum experience credit.
	N95Trips int `json:"n95_trips"`
	// MaxIncidents normalizes safety incidents into the safety score.
	MaxIncidents int `json:"max_incidents"`
	// ActivenessWindowDays is the trailing window used when aggregating
	// recent activeness from trip history.
	ActivenessWindowDays int     `json:"activeness_window_days"`
	Weights              Weights `json:"weights"`
}

// SetDefaults applies the platform defaults.
func (c *Config) SetDefaults() {
	if c.PlatformAvgRating == 0 {
		c.PlatformAvgRating = 4.7
	}
	if c.EquivalentPriorTrips == 0 {
		c.EquivalentPriorTrips = 20
	}
	if c.N95Trips == 0 {
		c.N95Trips = 500
	}
	if c.MaxIncidents == 0 {
		c.MaxIncidents = 10
	}
	if c.ActivenessWindowDays == 0 {
		c.ActivenessWindowDays = 30
	}
	if c.Weights == (Weights{}) {
		c.Weights = Weights{
			Rating:          0.35,
			Acceptance:      0.15,
			Cancellation:    0.15,
			Activeness:      0.15,
			Safety:          0.10,
			ExperienceBoost: 0.10,
		}
	}
}

// Validate checks the configuration. It is called at construction so invalid
// settings never surface mid-computation.
func (c Config) Validate() error {
	if c.PlatformAvgRating < 1 || c.PlatformAvgRating > 5 {
		return fmt.Errorf("platform_avg_rating must be in [1,5], got %v", c.PlatformAvgRating)
	}
	if c.EquivalentPriorTrips <= 0 {
		return fmt.Errorf("equivalent_prior_trips must be positive, got %v", c.EquivalentPriorTrips)
	}
	if c.N95Trips <= 0 {
		return fmt.Errorf("n95_trips must be positive, got %d", c.N95Trips)
	}
	if c.MaxIncidents <= 0 {
		return fmt.Errorf("max_incidents must be positive, got %d", c.MaxIncidents)
	}
	if c.ActivenessWindowDays <= 0 {
		return fmt.Errorf("activeness_window_days must be positive, got %d", c.ActivenessWindowDays)
	}
	if sum := c.Weights.Sum(); math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("weights must sum to 1, got %v", sum)
	}
	return nil
}
