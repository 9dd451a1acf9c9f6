package trail

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"technician-tracker/models"
)

// newTestMongo connects to MONGO_URI (default mongodb://localhost:27017),
// skips the test when no server answers and drops the database afterwards.
func newTestMongo(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(500*time.Millisecond))
	if err != nil {
		t.Skipf("MongoDB not available at %s: %v", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		t.Skipf("MongoDB not available at %s: %v", uri, err)
	}

	db := client.Database("trail_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		db.Drop(context.Background())
		client.Disconnect(context.Background())
	})
	return db
}

func TestMongoRepositoryOrdersSessions(t *testing.T) {
	repo := NewMongoRepository(newTestMongo(t))
	ctx := context.Background()
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	earlier := time.Date(2025, 3, 14, 14, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Minute)
	points := []*models.TrailPoint{
		{ServiceID: "DEMO-001", SessionID: "b", SessionStart: later, Tick: 1},
		{ServiceID: "DEMO-001", SessionID: "a", SessionStart: earlier, Tick: 1},
		{ServiceID: "DEMO-001", SessionID: "b", SessionStart: later, Tick: 0},
		{ServiceID: "DEMO-001", SessionID: "a", SessionStart: earlier, Tick: 0},
		{ServiceID: "OTHER", SessionID: "c", SessionStart: earlier, Tick: 0},
	}
	for _, p := range points {
		if err := repo.Append(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, err := repo.FindByService(ctx, "DEMO-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []struct {
		session string
		tick    int
	}{{"a", 0}, {"a", 1}, {"b", 0}, {"b", 1}}
	if len(got) != len(expected) {
		t.Fatalf("expected %d points, got %d", len(expected), len(got))
	}
	for i, e := range expected {
		if got[i].SessionID != e.session || got[i].Tick != e.tick {
			t.Errorf("point %d: expected session %s tick %d, got %s tick %d",
				i, e.session, e.tick, got[i].SessionID, got[i].Tick)
		}
	}
	if !got[2].SessionStart.Equal(later) {
		t.Errorf("expected session start %v, got %v", later, got[2].SessionStart)
	}
}
