package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"technician-tracker/gate"
	"technician-tracker/models"
)

// VisitorTTL bounds how long an entered visitor stays authorized.
const VisitorTTL = 30 * 24 * time.Hour

// VisitorStore keeps gate visitors in Redis hashes keyed visitor:<id>.
type VisitorStore struct {
	rdb *redis.Client
}

func NewVisitorStore(rdb *redis.Client) *VisitorStore {
	return &VisitorStore{rdb: rdb}
}

func visitorKey(id string) string {
	return fmt.Sprintf("visitor:%s", id)
}

func (s *VisitorStore) Load(ctx context.Context, id string) (*models.Visitor, error) {
	fields, err := s.rdb.HGetAll(ctx, visitorKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, gate.ErrVisitorNotFound
	}
	authorized, _ := strconv.ParseBool(fields["authorized"])
	entered, _ := time.Parse(time.RFC3339, fields["entered_at"])
	return &models.Visitor{
		ID:         id,
		Name:       fields["name"],
		Authorized: authorized,
		EnteredAt:  entered,
	}, nil
}

func (s *VisitorStore) Save(ctx context.Context, v *models.Visitor) error {
	key := visitorKey(v.ID)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"name", v.Name,
			"authorized", strconv.FormatBool(v.Authorized),
			"entered_at", v.EnteredAt.UTC().Format(time.RFC3339),
		)
		pipe.Expire(ctx, key, VisitorTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save visitor %s: %w", v.ID, err)
	}
	return nil
}
