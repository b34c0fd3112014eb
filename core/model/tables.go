package model

import (
	"fmt"
	"time"
)

// DailyEarning aggregates a driver's activity for one calendar day.
type DailyEarning struct {
	DriverID             string    `json:"driver_id"`
	Date                 time.Time `json:"date"`
	TotalNetEarnings     float64   `json:"total_net_earnings"`
	TripsCount           int       `json:"trips_count"`
	RidesDurationMinutes float64   `json:"rides_duration_minutes"`
}

// WeeklyIncentive records whether a driver achieved a weekly incentive target.
type WeeklyIncentive struct {
	DriverID string `json:"driver_id"`
	Week     string `json:"week"`
	Achieved bool   `json:"achieved"`
}

// HourlySurge is the observed surge multiplier for one hour of day.
type HourlySurge struct {
	Hour       int     `json:"hour_of_day"`
	Multiplier float64 `json:"surge_multiplier"`
}

// Validate checks the surge entry bounds.
func (s HourlySurge) Validate() error {
	if s.Hour < 0 || s.Hour > 23 {
		return fmt.Errorf("hour_of_day must be in [0,23], got %d", s.Hour)
	}
	if s.Multiplier < 0 {
		return fmt.Errorf("surge_multiplier must not be negative")
	}
	return nil
}
