package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"technician-tracker/tracking"
)

// StatusPublisher is a tracking.UISink that mirrors every update into Redis:
// the latest one under tracking:<id>:latest and a message on channel
// tracking:<id> for live subscribers.
type StatusPublisher struct {
	rdb     *redis.Client
	ttl     time.Duration
	timeout time.Duration
}

func NewStatusPublisher(rdb *redis.Client) *StatusPublisher {
	return &StatusPublisher{rdb: rdb, ttl: time.Hour, timeout: 2 * time.Second}
}

func StatusChannel(serviceID string) string {
	return fmt.Sprintf("tracking:%s", serviceID)
}

func latestKey(serviceID string) string {
	return fmt.Sprintf("tracking:%s:latest", serviceID)
}

func (p *StatusPublisher) Publish(u tracking.Update) {
	payload, err := json.Marshal(u)
	if err != nil {
		log.Printf("[%s] Failed to encode update: %v", u.ServiceID, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.rdb.Set(ctx, latestKey(u.ServiceID), payload, p.ttl).Err(); err != nil {
		log.Printf("[%s] Failed to store latest update: %v", u.ServiceID, err)
		return
	}
	if err := p.rdb.Publish(ctx, StatusChannel(u.ServiceID), payload).Err(); err != nil {
		log.Printf("[%s] Failed to publish update: %v", u.ServiceID, err)
	}
}

