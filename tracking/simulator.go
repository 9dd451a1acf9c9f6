package tracking

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"technician-tracker/models"
)

type Option func(*Simulator)

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(s *Simulator) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithTicker replaces the wall-clock ticker, mainly for tests.
func WithTicker(f TickerFactory) Option {
	return func(s *Simulator) {
		if f != nil {
			s.newTicker = f
		}
	}
}

// Simulator drives a single tracking session at a time.
type Simulator struct {
	surface   RenderSurface
	sink      UISink
	interval  time.Duration
	newTicker TickerFactory

	mu      sync.Mutex
	session *models.TrackingSession
	cancel  context.CancelFunc
	gen     atomic.Uint64 // written under mu

	// pubMu serializes sink calls, which run outside mu.
	pubMu   sync.Mutex
	pubGen  uint64
	pubTick int
}

func NewSimulator(surface RenderSurface, sink UISink, opts ...Option) *Simulator {
	s := &Simulator{
		surface:   surface,
		sink:      sink,
		interval:  DefaultInterval,
		newTicker: newWallTicker,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start replaces any active session with session, draws it and begins
// ticking. The returned Update is the initial distance and ETA.
func (s *Simulator) Start(ctx context.Context, session *models.TrackingSession) Update {
	s.mu.Lock()
	s.stopLocked()
	gen := s.gen.Add(1)
	s.session = session

	s.surface.PlaceMarker(TechnicianMarker, session.Technician)
	s.surface.PlaceMarker(CustomerMarker, session.Customer)
	s.surface.FitBounds(session.Technician, session.Customer)
	s.surface.DrawLine(session.Technician, session.Customer)

	u := Snapshot(session)
	log.Printf("[%s] Tracking started: %s away, ETA %s",
		session.ServiceID, FormatDistance(u.DistanceMiles), FormatETA(u.ETAMinutes))

	if !session.Arrived() {
		runCtx, cancel := context.WithCancel(ctx)
		s.cancel = cancel
		go s.run(runCtx, gen, s.newTicker(s.interval))
	}
	s.mu.Unlock()

	s.publish(gen, u)
	return u
}

// Stop cancels ticking for the active session, if any.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Tick advances the active session by one step. It returns false when there
// is no session or the session has already arrived.
func (s *Simulator) Tick() (Update, bool) {
	s.mu.Lock()
	gen := s.gen.Load()
	u, ok := s.tickLocked()
	s.mu.Unlock()

	if ok {
		s.publish(gen, u)
	}
	return u, ok
}

// Session returns a copy of the active session.
func (s *Simulator) Session() (models.TrackingSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return models.TrackingSession{}, false
	}
	return *s.session, true
}

func (s *Simulator) run(ctx context.Context, gen uint64, ticker Ticker) {
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if !s.step(gen) {
				return
			}
		}
	}
}

// step ticks the session started in generation gen and reports whether the
// timer should keep running.
func (s *Simulator) step(gen uint64) bool {
	s.mu.Lock()
	if gen != s.gen.Load() {
		s.mu.Unlock()
		return false
	}
	u, ok := s.tickLocked()
	s.mu.Unlock()

	if !ok {
		return false
	}
	s.publish(gen, u)
	return !u.Arrived()
}

// publish hands u to the sink unless a newer session has started or a later
// tick of the same session was already published.
func (s *Simulator) publish(gen uint64, u Update) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	if gen != s.gen.Load() || (gen == s.pubGen && u.Tick <= s.pubTick) {
		return
	}
	s.pubGen, s.pubTick = gen, u.Tick
	s.sink.Publish(u)
}

func (s *Simulator) tickLocked() (Update, bool) {
	if s.session == nil || s.session.Arrived() {
		return Update{}, false
	}
	u := Advance(s.session)
	s.surface.MoveMarker(TechnicianMarker, u.Technician)
	s.surface.DrawLine(u.Technician, u.Customer)
	if u.Arrived() {
		log.Printf("[%s] Technician arrived after %d ticks", u.ServiceID, u.Tick)
		s.stopLocked()
	}
	return u, true
}

func (s *Simulator) stopLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
