package gate

import (
	"context"
	"sync"

	"technician-tracker/models"
)

type MemoryStore struct {
	visitors map[string]models.Visitor
	mutex    sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{visitors: make(map[string]models.Visitor)}
}

func (s *MemoryStore) Load(_ context.Context, id string) (*models.Visitor, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	v, ok := s.visitors[id]
	if !ok {
		return nil, ErrVisitorNotFound
	}
	return &v, nil
}

func (s *MemoryStore) Save(_ context.Context, v *models.Visitor) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.visitors[v.ID] = *v
	return nil
}
