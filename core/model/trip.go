package model

import (
	"fmt"
	"time"
)

// TripRecord represents one completed ride as loaded from the trip table.
// Records are immutable once loaded; the core never mutates them.
type TripRecord struct {
	DriverID     string    `json:"driver_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	FareAmount   float64   `json:"fare_amount"`
	NetEarnings  float64   `json:"net_earnings"`
	PickupZoneID string    `json:"pickup_zone_id"`
}

// Validate checks that the trip record is structurally sound.
func (t TripRecord) Validate() error {
	if t.DriverID == "" {
		return fmt.Errorf("driver_id is required")
	}
	if !t.EndTime.After(t.StartTime) {
		return fmt.Errorf("end_time must be after start_time")
	}
	if t.FareAmount < 0 {
		return fmt.Errorf("fare_amount must not be negative")
	}
	return nil
}

// DurationMinutes returns the trip duration in minutes. The value may be
// zero or negative for corrupt timestamps; callers filter such trips.
func (t TripRecord) DurationMinutes() float64 {
	return t.EndTime.Sub(t.StartTime).Minutes()
}

// EarningsPerHour returns the hourly net earnings rate for the trip. The
// second return value is false when the duration is zero or negative and no
// rate can be derived.
func (t TripRecord) EarningsPerHour() (float64, bool) {
	mins := t.DurationMinutes()
	if mins <= 0 {
		return 0, false
	}
	return t.NetEarnings * 60 / mins, true
}

// StartHour returns the hour of day (0-23) at which the trip started.
func (t TripRecord) StartHour() int { return t.StartTime.Hour() }

// StartDay returns the weekday name of the trip start, e.g. "Monday".
func (t TripRecord) StartDay() string { return t.StartTime.Weekday().String() }

// StartDate returns the trip start truncated to its calendar day.
func (t TripRecord) StartDate() time.Time {
	y, m, d := t.StartTime.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.StartTime.Location())
}
