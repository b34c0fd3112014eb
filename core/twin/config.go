package twin

import "fmt"

// Config holds the behavioral-twin tuning parameters. The fatigue heuristic
// constants are calibration values carried over from observation, not derived;
// they are kept configurable so tests and operators can revisit them.
type Config struct {
	// FatigueCorrThreshold is the span/efficiency correlation below which a
	// fatigue effect is assumed.
	FatigueCorrThreshold float64 `json:"fatigue_corr_threshold"`
	// FatigueMinDays is the minimum number of distinct working days required
	// before the fatigue correlation is trusted.
	FatigueMinDays int `json:"fatigue_min_days"`
	// FatigueQuantile selects the daily-span quantile used as the threshold
	// when a fatigue effect is detected.
	FatigueQuantile float64 `json:"fatigue_quantile"`
	// DefaultFatigueHours is assumed when no fatigue effect is detected.
	DefaultFatigueHours int `json:"default_fatigue_hours"`
	// FatiguePenaltyRate scales the earnings penalty per hour worked past
	// the fatigue threshold.
	FatiguePenaltyRate float64 `json:"fatigue_penalty_rate"`
	// PeakDayBonus multiplies base earnings on the driver's peak days.
	PeakDayBonus float64 `json:"peak_day_bonus"`
	// ConsistencyWeight scales the consistency contribution to feasibility.
	ConsistencyWeight float64 `json:"consistency_weight"`
	// OverworkDivisor softens the overwork penalty in the feasibility score.
	OverworkDivisor float64 `json:"overwork_divisor"`

	// PreferredHourCount, PeakDayCount and PreferredZoneCount bound the
	// learned profile lists.
	PreferredHourCount int `json:"preferred_hour_count"`
	PeakDayCount       int `json:"peak_day_count"`
	PreferredZoneCount int `json:"preferred_zone_count"`
}

// SetDefaults applies the calibration defaults.
func (c *Config) SetDefaults() {
	if c.FatigueCorrThreshold == 0 {
		c.FatigueCorrThreshold = -0.3
	}
	if c.FatigueMinDays == 0 {
		c.FatigueMinDays = 6
	}
	if c.FatigueQuantile == 0 {
		c.FatigueQuantile = 0.7
	}
	if c.DefaultFatigueHours == 0 {
		c.DefaultFatigueHours = 8
	}
	if c.FatiguePenaltyRate == 0 {
		c.FatiguePenaltyRate = 0.1
	}
	if c.PeakDayBonus == 0 {
		c.PeakDayBonus = 1.1
	}
	if c.ConsistencyWeight == 0 {
		c.ConsistencyWeight = 0.2
	}
	if c.OverworkDivisor == 0 {
		c.OverworkDivisor = 10
	}
	if c.PreferredHourCount == 0 {
		c.PreferredHourCount = 8
	}
	if c.PeakDayCount == 0 {
		c.PeakDayCount = 3
	}
	if c.PreferredZoneCount == 0 {
		c.PreferredZoneCount = 5
	}
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if c.FatigueCorrThreshold < -1 || c.FatigueCorrThreshold > 0 {
		return fmt.Errorf("fatigue_corr_threshold must be in [-1,0], got %v", c.FatigueCorrThreshold)
	}
	if c.FatigueMinDays < 2 {
		return fmt.Errorf("fatigue_min_days must be at least 2, got %d", c.FatigueMinDays)
	}
	if c.FatigueQuantile <= 0 || c.FatigueQuantile >= 1 {
		return fmt.Errorf("fatigue_quantile must be in (0,1), got %v", c.FatigueQuantile)
	}
	if c.DefaultFatigueHours <= 0 {
		return fmt.Errorf("default_fatigue_hours must be positive, got %d", c.DefaultFatigueHours)
	}
	if c.FatiguePenaltyRate < 0 {
		return fmt.Errorf("fatigue_penalty_rate must not be negative, got %v", c.FatiguePenaltyRate)
	}
	if c.PeakDayBonus < 1 {
		return fmt.Errorf("peak_day_bonus must be at least 1, got %v", c.PeakDayBonus)
	}
	if c.ConsistencyWeight < 0 {
		return fmt.Errorf("consistency_weight must not be negative, got %v", c.ConsistencyWeight)
	}
	if c.OverworkDivisor <= 0 {
		return fmt.Errorf("overwork_divisor must be positive, got %v", c.OverworkDivisor)
	}
	if c.PreferredHourCount <= 0 || c.PeakDayCount <= 0 || c.PreferredZoneCount <= 0 {
		return fmt.Errorf("profile list bounds must be positive")
	}
	return nil
}
