package tracking

import (
	"sync"
	"testing"
	"time"

	"technician-tracker/models"
)

type fakeTicker struct {
	ch      chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }

func (f *fakeTicker) Stop() { f.once.Do(func() { close(f.stopped) }) }

func (f *fakeTicker) fire() { f.ch <- time.Now() }

type fakeClock struct {
	made chan *fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{made: make(chan *fakeTicker, 8)}
}

func (c *fakeClock) NewTicker(time.Duration) Ticker {
	t := &fakeTicker{ch: make(chan time.Time, 1), stopped: make(chan struct{})}
	c.made <- t
	return t
}

func (c *fakeClock) next(t *testing.T) *fakeTicker {
	t.Helper()
	select {
	case tk := <-c.made:
		return tk
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a ticker")
		return nil
	}
}

type recordingSink struct {
	mu      sync.Mutex
	updates []Update
	ch      chan Update
}

func newRecordingSink() *recordingSink {
	return &recordingSink{ch: make(chan Update, 256)}
}

func (r *recordingSink) Publish(u Update) {
	r.mu.Lock()
	r.updates = append(r.updates, u)
	r.mu.Unlock()
	select {
	case r.ch <- u:
	default:
	}
}

func (r *recordingSink) all() []Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Update(nil), r.updates...)
}

func (r *recordingSink) wait(t *testing.T) Update {
	t.Helper()
	select {
	case u := <-r.ch:
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an update")
		return Update{}
	}
}

func waitStopped(t *testing.T, tk *fakeTicker) {
	t.Helper()
	select {
	case <-tk.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the ticker to stop")
	}
}

func demoSession(id string) *models.TrackingSession {
	recs := DemoRecords()
	rec := recs[0]
	rec.ServiceID = id
	return models.NewTrackingSession(&rec)
}

// blockingSink holds every Publish call until release is closed.
type blockingSink struct {
	entered chan Update
	release chan struct{}
}

func newBlockingSink() *blockingSink {
	return &blockingSink{entered: make(chan Update, 16), release: make(chan struct{})}
}

func (b *blockingSink) Publish(u Update) {
	b.entered <- u
	<-b.release
}
