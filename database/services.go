package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"technician-tracker/models"
	"technician-tracker/tracking"
)

// ServiceDirectory is a tracking.Directory backed by the services table.
type ServiceDirectory struct {
	db *sql.DB
}

func NewServiceDirectory(db *sql.DB) *ServiceDirectory {
	return &ServiceDirectory{db: db}
}

const selectService = `SELECT service_id, display_id, service_type, scheduled_time, status,
	technician_name, technician_title, technician_latitude, technician_longitude,
	credentials, customer_latitude, customer_longitude
	FROM services WHERE service_id=$1`

func (d *ServiceDirectory) Lookup(ctx context.Context, serviceID string) (*models.ServiceRecord, error) {
	var (
		rec         models.ServiceRecord
		status      string
		credentials []string
	)
	err := d.db.QueryRowContext(ctx, selectService, serviceID).Scan(
		&rec.ServiceID,
		&rec.DisplayID,
		&rec.ServiceType,
		&rec.ScheduledTime,
		&status,
		&rec.Technician.Name,
		&rec.Technician.Title,
		&rec.Technician.Location.Lat,
		&rec.Technician.Location.Lng,
		pq.Array(&credentials),
		&rec.Customer.Lat,
		&rec.Customer.Lng,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tracking.ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	rec.Status = models.Status(status)
	rec.Technician.Credentials = parseCredentials(credentials)
	return &rec, nil
}

// Credentials are stored as "icon|text|color" strings.
func parseCredentials(raw []string) []models.Credential {
	out := make([]models.Credential, 0, len(raw))
	for _, s := range raw {
		parts := append(strings.SplitN(s, "|", 3), "", "")
		out = append(out, models.Credential{Icon: parts[0], Text: parts[1], Color: parts[2]})
	}
	return out
}
