package tracking

import (
	"log"
	"sync"
	"time"

	"technician-tracker/geo"
	"technician-tracker/models"
)

type MarkerID string

const (
	TechnicianMarker MarkerID = "technician"
	CustomerMarker   MarkerID = "customer"
)

// ViewportPadding is the pixel padding hosts should apply when fitting bounds.
const ViewportPadding = 50

// RenderSurface is the map the simulator draws on.
type RenderSurface interface {
	PlaceMarker(id MarkerID, p models.GeoPoint)
	MoveMarker(id MarkerID, p models.GeoPoint)
	DrawLine(from, to models.GeoPoint)
	FitBounds(points ...models.GeoPoint)
}

// UISink receives every Update for display. Implementations must not call
// back into the Simulator.
type UISink interface {
	Publish(u Update)
}

// Sinks fans an update out to every sink in order.
type Sinks []UISink

func (s Sinks) Publish(u Update) {
	for _, sink := range s {
		sink.Publish(u)
	}
}

// MapSnapshot is the JSON view of a MapView.
type MapSnapshot struct {
	Markers  map[MarkerID]models.GeoPoint `json:"markers"`
	Line     []models.GeoPoint            `json:"line,omitempty"`
	Viewport *geo.Box                     `json:"viewport,omitempty"`
	Padding  int                          `json:"padding"`
	Updated  time.Time                    `json:"updated"`
}

// MapView is an in-memory RenderSurface that browser clients poll.
type MapView struct {
	mu       sync.RWMutex
	markers  map[MarkerID]models.GeoPoint
	line     []models.GeoPoint
	viewport *geo.Box
	updated  time.Time
}

func NewMapView() *MapView {
	return &MapView{markers: make(map[MarkerID]models.GeoPoint)}
}

func (m *MapView) PlaceMarker(id MarkerID, p models.GeoPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markers[id] = p
	m.updated = time.Now()
}

// MoveMarker places the marker if it is not on the map yet.
func (m *MapView) MoveMarker(id MarkerID, p models.GeoPoint) {
	m.PlaceMarker(id, p)
}

func (m *MapView) DrawLine(from, to models.GeoPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.line = []models.GeoPoint{from, to}
	m.updated = time.Now()
}

func (m *MapView) FitBounds(points ...models.GeoPoint) {
	box, err := geo.Bounds(points...)
	if err != nil {
		log.Printf("Skipping viewport fit: %v", err)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewport = &box
	m.updated = time.Now()
}

func (m *MapView) Snapshot() MapSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	markers := make(map[MarkerID]models.GeoPoint, len(m.markers))
	for id, p := range m.markers {
		markers[id] = p
	}
	snap := MapSnapshot{
		Markers: markers,
		Line:    append([]models.GeoPoint(nil), m.line...),
		Padding: ViewportPadding,
		Updated: m.updated,
	}
	if m.viewport != nil {
		box := *m.viewport
		snap.Viewport = &box
	}
	return snap
}

// StatusLabels is the display form of the latest Update.
type StatusLabels struct {
	ServiceID string        `json:"service_id"`
	Distance  string        `json:"distance"`
	ETA       string        `json:"eta"`
	Status    models.Status `json:"status"`
	Update    Update        `json:"update"`
}

// StatusBoard keeps the latest Update for the status labels.
type StatusBoard struct {
	mu     sync.RWMutex
	latest *Update
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{}
}

func (b *StatusBoard) Publish(u Update) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.latest = &u
}

// Labels returns the formatted labels, or false before anything was published.
func (b *StatusBoard) Labels() (StatusLabels, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.latest == nil {
		return StatusLabels{}, false
	}
	u := *b.latest
	return StatusLabels{
		ServiceID: u.ServiceID,
		Distance:  FormatDistance(u.DistanceMiles),
		ETA:       FormatETA(u.ETAMinutes),
		Status:    u.Status,
		Update:    u,
	}, true
}
