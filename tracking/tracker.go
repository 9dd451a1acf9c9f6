package tracking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"technician-tracker/models"
)

var ErrEmptyServiceID = errors.New("please enter a service ID")

// Tracker resolves service identifiers and hands sessions to the simulator.
type Tracker struct {
	directory Directory
	simulator *Simulator
}

func NewTracker(directory Directory, simulator *Simulator) *Tracker {
	return &Tracker{directory: directory, simulator: simulator}
}

// Track looks up serviceID and, on success, replaces the active session with a
// new one for it. A failed lookup leaves the current session running.
func (t *Tracker) Track(ctx context.Context, serviceID string) (*models.ServiceRecord, Update, error) {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return nil, Update{}, ErrEmptyServiceID
	}
	rec, err := t.directory.Lookup(ctx, serviceID)
	if err != nil {
		return nil, Update{}, fmt.Errorf("lookup %q: %w", serviceID, err)
	}
	// The ticking goroutine outlives the request that started it.
	u := t.simulator.Start(context.WithoutCancel(ctx), models.NewTrackingSession(rec))
	return rec, u, nil
}

func (t *Tracker) Stop() {
	t.simulator.Stop()
}

func (t *Tracker) Session() (models.TrackingSession, bool) {
	return t.simulator.Session()
}
