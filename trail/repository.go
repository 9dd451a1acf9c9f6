package trail

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"technician-tracker/models"
	"technician-tracker/tracking"
)

// Repository stores the positions a technician passed through.
type Repository interface {
	Append(ctx context.Context, p *models.TrailPoint) error
	// FindByService returns every session's points for serviceID, one
	// session after another, each in tick order.
	FindByService(ctx context.Context, serviceID string) ([]*models.TrailPoint, error)
}

type inMemoryRepository struct {
	points map[string][]*models.TrailPoint
	mutex  sync.RWMutex
}

func NewInMemoryRepository() Repository {
	return &inMemoryRepository{points: make(map[string][]*models.TrailPoint)}
}

func (r *inMemoryRepository) Append(_ context.Context, p *models.TrailPoint) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.points[p.ServiceID] = append(r.points[p.ServiceID], p)
	return nil
}

func (r *inMemoryRepository) FindByService(_ context.Context, serviceID string) ([]*models.TrailPoint, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	// Sessions keep the order they were first recorded in.
	var order []string
	bySession := make(map[string][]*models.TrailPoint)
	for _, p := range r.points[serviceID] {
		if _, ok := bySession[p.SessionID]; !ok {
			order = append(order, p.SessionID)
		}
		bySession[p.SessionID] = append(bySession[p.SessionID], p)
	}

	result := make([]*models.TrailPoint, 0, len(r.points[serviceID]))
	for _, id := range order {
		points := bySession[id]
		sort.SliceStable(points, func(i, j int) bool { return points[i].Tick < points[j].Tick })
		result = append(result, points...)
	}
	return result, nil
}

// Recorder is a tracking.UISink that appends every update to a Repository.
type Recorder struct {
	repo    Repository
	timeout time.Duration
}

func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo, timeout: 5 * time.Second}
}

func (r *Recorder) Publish(u tracking.Update) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.repo.Append(ctx, PointFromUpdate(u)); err != nil {
		log.Printf("[%s] Failed to record trail point %d: %v", u.ServiceID, u.Tick, err)
	}
}

func PointFromUpdate(u tracking.Update) *models.TrailPoint {
	return &models.TrailPoint{
		ServiceID:     u.ServiceID,
		SessionID:     u.SessionID,
		SessionStart:  u.StartedAt,
		Tick:          u.Tick,
		Position:      u.Technician,
		Geohash:       u.Geohash,
		DistanceMiles: u.DistanceMiles,
		ETAMinutes:    u.ETAMinutes,
		Status:        u.Status,
		RecordedAt:    u.At,
	}
}
