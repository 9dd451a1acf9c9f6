package tracking

import (
	"context"
	"testing"
	"time"

	"technician-tracker/models"
)

func newTestSimulator() (*Simulator, *fakeClock, *recordingSink, *MapView) {
	clock := newFakeClock()
	sink := newRecordingSink()
	view := NewMapView()
	sim := NewSimulator(view, sink, WithTicker(clock.NewTicker))
	return sim, clock, sink, view
}

func TestStartDrawsAndPublishesInitialUpdate(t *testing.T) {
	sim, clock, sink, view := newTestSimulator()
	defer sim.Stop()

	u := sim.Start(context.Background(), demoSession("DEMO-001"))
	clock.next(t)

	if u.Tick != 0 || u.ETAMinutes != 6 {
		t.Errorf("expected tick 0 and ETA 6, got tick %d ETA %d", u.Tick, u.ETAMinutes)
	}
	if got := sink.wait(t); got.ServiceID != "DEMO-001" {
		t.Errorf("expected initial update for DEMO-001, got %q", got.ServiceID)
	}

	snap := view.Snapshot()
	if snap.Markers[TechnicianMarker] != u.Technician || snap.Markers[CustomerMarker] != u.Customer {
		t.Errorf("unexpected markers %v", snap.Markers)
	}
	if len(snap.Line) != 2 {
		t.Fatalf("expected a two-point line, got %v", snap.Line)
	}
	if snap.Viewport == nil || !snap.Viewport.Contains(u.Technician) || !snap.Viewport.Contains(u.Customer) {
		t.Errorf("expected viewport around both markers, got %+v", snap.Viewport)
	}
}

func TestTimerTicksUntilArrival(t *testing.T) {
	sim, clock, sink, view := newTestSimulator()
	defer sim.Stop()

	sim.Start(context.Background(), demoSession("DEMO-001"))
	sink.wait(t)
	tk := clock.next(t)

	var u Update
	for i := 0; i < 100; i++ {
		tk.fire()
		u = sink.wait(t)
		if view.Snapshot().Markers[TechnicianMarker] != u.Technician {
			t.Fatalf("tick %d: marker not moved", u.Tick)
		}
		if u.Arrived() {
			break
		}
	}
	if !u.Arrived() || u.ETAMinutes != 0 {
		t.Fatalf("expected arrival with ETA 0, got %s ETA %d", u.Status, u.ETAMinutes)
	}
	waitStopped(t, tk)

	s, ok := sim.Session()
	if !ok || s.Status != models.StatusArrived {
		t.Errorf("expected arrived session, got %+v", s)
	}
	if _, ok := sim.Tick(); ok {
		t.Error("expected no tick after arrival")
	}
	if after, _ := sim.Session(); after.Technician != s.Technician {
		t.Errorf("expected position to stay at %v, got %v", s.Technician, after.Technician)
	}
}

func TestStartCancelsPreviousSession(t *testing.T) {
	sim, clock, sink, _ := newTestSimulator()
	defer sim.Stop()
	ctx := context.Background()

	sim.Start(ctx, demoSession("FIRST"))
	sink.wait(t)
	first := clock.next(t)
	first.fire()
	if u := sink.wait(t); u.ServiceID != "FIRST" || u.Tick != 1 {
		t.Fatalf("expected FIRST tick 1, got %s tick %d", u.ServiceID, u.Tick)
	}

	sim.Start(ctx, demoSession("SECOND"))
	if u := sink.wait(t); u.ServiceID != "SECOND" || u.Tick != 0 {
		t.Fatalf("expected SECOND initial update, got %s tick %d", u.ServiceID, u.Tick)
	}
	second := clock.next(t)
	waitStopped(t, first)
	switched := len(sink.all())

	first.fire()
	second.fire()
	if u := sink.wait(t); u.ServiceID != "SECOND" || u.Tick != 1 {
		t.Fatalf("expected SECOND tick 1, got %s tick %d", u.ServiceID, u.Tick)
	}
	for _, u := range sink.all()[switched:] {
		if u.ServiceID != "SECOND" {
			t.Errorf("update from replaced session after switching: %+v", u)
		}
	}
}

func TestStopHaltsTicking(t *testing.T) {
	sim, clock, sink, _ := newTestSimulator()

	sim.Start(context.Background(), demoSession("DEMO-001"))
	sink.wait(t)
	tk := clock.next(t)

	sim.Stop()
	waitStopped(t, tk)

	s, ok := sim.Session()
	if !ok || s.Ticks != 0 {
		t.Errorf("expected untouched session after stop, got %+v", s)
	}
}

func TestTickWithoutSession(t *testing.T) {
	sim, _, _, _ := newTestSimulator()
	if _, ok := sim.Tick(); ok {
		t.Error("expected no tick without a session")
	}
	if _, ok := sim.Session(); ok {
		t.Error("expected no session")
	}
}

func TestSlowSinkDoesNotHoldSession(t *testing.T) {
	clock := newFakeClock()
	sink := newBlockingSink()
	sim := NewSimulator(NewMapView(), sink, WithTicker(clock.NewTicker))
	defer sim.Stop()

	started := make(chan Update, 1)
	go func() { started <- sim.Start(context.Background(), demoSession("DEMO-001")) }()

	select {
	case <-sink.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the initial publish")
	}

	done := make(chan models.TrackingSession, 1)
	go func() {
		s, _ := sim.Session()
		sim.Stop()
		done <- s
	}()
	select {
	case s := <-done:
		if s.ServiceID != "DEMO-001" {
			t.Errorf("expected DEMO-001 session, got %+v", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Session and Stop blocked behind a publishing sink")
	}

	close(sink.release)
	select {
	case u := <-started:
		if u.Tick != 0 {
			t.Errorf("expected initial update, got tick %d", u.Tick)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after the sink was released")
	}
}
