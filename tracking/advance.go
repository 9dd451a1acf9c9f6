package tracking

import (
	"fmt"
	"math"
	"time"

	"technician-tracker/geo"
	"technician-tracker/models"
)

const (
	// StepFraction is how much of the remaining distance one tick covers.
	StepFraction = 0.1
	// ArrivalMiles is the distance under which the technician has arrived.
	ArrivalMiles = 0.1
	// AverageSpeedMPH is the constant speed behind every ETA.
	AverageSpeedMPH = 30.0
	// DefaultInterval is the wall-clock period between ticks.
	DefaultInterval = 3 * time.Second
)

// Update is what the simulator publishes after starting a session and after
// every tick.
type Update struct {
	ServiceID     string          `json:"service_id"`
	SessionID     string          `json:"session_id"`
	StartedAt     time.Time       `json:"started_at"`
	Tick          int             `json:"tick"`
	Technician    models.GeoPoint `json:"technician"`
	Customer      models.GeoPoint `json:"customer"`
	Geohash       string          `json:"geohash"`
	DistanceMiles float64         `json:"distance_miles"`
	ETAMinutes    int             `json:"eta_minutes"`
	Status        models.Status   `json:"status"`
	At            time.Time       `json:"at"`
}

func (u Update) Arrived() bool {
	return u.Status == models.StatusArrived
}

// ETAMinutes converts a distance in miles into whole minutes at AverageSpeedMPH.
func ETAMinutes(distanceMiles float64) int {
	return int(math.Round(distanceMiles / AverageSpeedMPH * 60))
}

func FormatDistance(distanceMiles float64) string {
	return fmt.Sprintf("%.1f mi", distanceMiles)
}

func FormatETA(minutes int) string {
	return fmt.Sprintf("%d min", minutes)
}

// Snapshot reports the session's current distance and ETA without moving it.
func Snapshot(s *models.TrackingSession) Update {
	distance := geo.Haversine(s.Technician, s.Customer)
	eta := ETAMinutes(distance)
	if s.Arrived() {
		eta = 0
	}
	return Update{
		ServiceID:     s.ServiceID,
		SessionID:     s.ID,
		StartedAt:     s.StartedAt,
		Tick:          s.Ticks,
		Technician:    s.Technician,
		Customer:      s.Customer,
		Geohash:       geo.Geohash(s.Technician, geo.CellPrecision),
		DistanceMiles: distance,
		ETAMinutes:    eta,
		Status:        s.Status,
		At:            time.Now(),
	}
}

// Advance performs one tick on s. An arrived session is left untouched and
// its final snapshot is returned.
func Advance(s *models.TrackingSession) Update {
	if s.Arrived() {
		return Snapshot(s)
	}
	s.Technician = geo.Interpolate(s.Technician, s.Customer, StepFraction)
	s.Ticks++
	if geo.Haversine(s.Technician, s.Customer) < ArrivalMiles {
		s.Status = models.StatusArrived
	}
	return Snapshot(s)
}
