package tracking

import (
	"context"
	"errors"
	"strings"
	"sync"

	"technician-tracker/models"
)

var ErrServiceNotFound = errors.New("service not found")

// Directory resolves service identifiers to service records.
type Directory interface {
	Lookup(ctx context.Context, serviceID string) (*models.ServiceRecord, error)
}

// DemoServiceID is the identifier the static directory always knows.
const DemoServiceID = "DEMO-001"

// DemoRecords is the built-in demo table.
func DemoRecords() []models.ServiceRecord {
	return []models.ServiceRecord{
		{
			ServiceID:     DemoServiceID,
			DisplayID:     "GHZ-2025-001",
			ServiceType:   "Network Security Setup",
			ScheduledTime: "2:00 PM",
			Status:        models.StatusEnRoute,
			Technician: models.Technician{
				Name:     "Avery Delpit",
				Title:    "Lead Technician",
				Location: models.GeoPoint{Lat: 35.0527, Lng: -78.8784},
				Credentials: []models.Credential{
					{Icon: "shield-check", Text: "94F Veteran", Color: "green"},
					{Icon: "award", Text: "Secret Clearance", Color: "blue"},
					{Icon: "graduation-cap", Text: "CompTIA Security+", Color: "green"},
					{Icon: "cpu", Text: "Network+", Color: "blue"},
					{Icon: "lock", Text: "CMMC Certified", Color: "green"},
				},
			},
			Customer: models.GeoPoint{Lat: 35.0827, Lng: -78.9184},
		},
	}
}

// StaticDirectory is an in-memory Directory. Lookups return copies so a
// session never mutates the table.
type StaticDirectory struct {
	mu      sync.RWMutex
	records map[string]models.ServiceRecord
}

func NewStaticDirectory(records ...models.ServiceRecord) *StaticDirectory {
	d := &StaticDirectory{records: make(map[string]models.ServiceRecord, len(records))}
	for _, rec := range records {
		d.Add(rec)
	}
	return d
}

func (d *StaticDirectory) Add(rec models.ServiceRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records[rec.ServiceID] = rec
}

func (d *StaticDirectory) Lookup(_ context.Context, serviceID string) (*models.ServiceRecord, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	rec, ok := d.records[strings.TrimSpace(serviceID)]
	if !ok {
		return nil, ErrServiceNotFound
	}
	rec.Technician.Credentials = append([]models.Credential(nil), rec.Technician.Credentials...)
	return &rec, nil
}
