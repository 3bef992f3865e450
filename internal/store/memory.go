package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ramadhan-companion/functions/internal/models"
)

// MemoryNotificationStore keeps notifications in process. Used for local
// development and tests.
type MemoryNotificationStore struct {
	notifications map[string]models.Notification
	mutex         sync.RWMutex
}

// NewMemoryNotificationStore creates an empty store
func NewMemoryNotificationStore() *MemoryNotificationStore {
	return &MemoryNotificationStore{
		notifications: make(map[string]models.Notification),
	}
}

// Insert adds or replaces a notification
func (s *MemoryNotificationStore) Insert(n models.Notification) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.notifications[n.ID] = n
}

// Get returns a notification by id
func (s *MemoryNotificationStore) Get(id string) (models.Notification, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	n, ok := s.notifications[id]
	return n, ok
}

// Len returns the number of stored notifications
func (s *MemoryNotificationStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.notifications)
}

// FindOlderThan returns ids with timestamp strictly before cutoff, sorted
func (s *MemoryNotificationStore) FindOlderThan(ctx context.Context, cutoff time.Time) ([]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	matched := make([]string, 0)
	for id, n := range s.notifications {
		if n.Timestamp.Before(cutoff) {
			matched = append(matched, id)
		}
	}
	sort.Strings(matched)

	ids := make([]interface{}, 0, len(matched))
	for _, id := range matched {
		ids = append(ids, id)
	}
	return ids, nil
}

// DeleteBatch removes all ids under a single lock
func (s *MemoryNotificationStore) DeleteBatch(ctx context.Context, ids []interface{}) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	var deleted int64
	for _, raw := range ids {
		id, ok := raw.(string)
		if !ok {
			continue
		}
		if _, exists := s.notifications[id]; exists {
			delete(s.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}
