package model

import "fmt"

// DriverRecord holds per-driver base attributes from the driver table.
type DriverRecord struct {
	DriverID         string  `json:"driver_id"`
	Rating           float64 `json:"rating"`
	CompletedTrips   int     `json:"completed_trips"`
	AcceptanceRate   float64 `json:"acceptance_rate"`
	CancellationRate float64 `json:"cancellation_rate"`
	SafetyIncidents  int     `json:"safety_incidents"`
}

// Validate checks that the driver record is structurally sound.
func (d DriverRecord) Validate() error {
	if d.DriverID == "" {
		return fmt.Errorf("driver_id is required")
	}
	if d.Rating < 1 || d.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %v", d.Rating)
	}
	if d.CompletedTrips < 0 {
		return fmt.Errorf("completed_trips must not be negative")
	}
	if d.SafetyIncidents < 0 {
		return fmt.Errorf("safety_incidents must not be negative")
	}
	return nil
}

// DriverStats is the aggregate input to the priority scorer, computed fresh
// on each scoring pass from the driver table and trip history.
type DriverStats struct {
	DriverID         string  `json:"driver_id"`
	RawRating        float64 `json:"raw_rating"`
	CompletedTrips   int     `json:"completed_trips"`
	AcceptanceRate   float64 `json:"acceptance_rate"`
	CancellationRate float64 `json:"cancellation_rate"`
	RecentActiveness float64 `json:"recent_activeness"`
	SafetyIncidents  int     `json:"safety_incidents"`
}
