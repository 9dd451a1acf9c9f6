package models

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusEnRoute Status = "En Route"
	StatusArrived Status = "Arrived"
)

type TrackingSession struct {
	ID         string    `json:"id"`
	ServiceID  string    `json:"service_id"`
	Technician GeoPoint  `json:"technician"`
	Customer   GeoPoint  `json:"customer"` // fixed for the life of the session
	Status     Status    `json:"status"`
	Ticks      int       `json:"ticks"`
	StartedAt  time.Time `json:"started_at"`
}

// NewTrackingSession starts a session at the record's technician location.
func NewTrackingSession(rec *ServiceRecord) *TrackingSession {
	return &TrackingSession{
		ID:         uuid.NewString(),
		ServiceID:  rec.ServiceID,
		Technician: rec.Technician.Location,
		Customer:   rec.Customer,
		Status:     StatusEnRoute,
		StartedAt:  time.Now(),
	}
}

func (s *TrackingSession) Arrived() bool {
	return s.Status == StatusArrived
}
