package store

import (
	"context"
	"testing"
	"time"

	"github.com/ramadhan-companion/functions/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreFindOlderThan(t *testing.T) {
	s := NewMemoryNotificationStore()
	cutoff := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	s.Insert(models.Notification{ID: "b", Timestamp: cutoff.Add(-time.Hour)})
	s.Insert(models.Notification{ID: "a", Timestamp: cutoff.Add(-48 * time.Hour)})
	s.Insert(models.Notification{ID: "edge", Timestamp: cutoff})
	s.Insert(models.Notification{ID: "new", Timestamp: cutoff.Add(time.Hour)})

	ids, err := s.FindOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", "b"}, ids)
}

func TestMemoryStoreDeleteBatch(t *testing.T) {
	s := NewMemoryNotificationStore()
	s.Insert(models.Notification{ID: "a"})
	s.Insert(models.Notification{ID: "b"})

	deleted, err := s.DeleteBatch(context.Background(), []interface{}{"a", "missing", 42})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Equal(t, 1, s.Len())

	_, ok := s.Get("a")
	assert.False(t, ok)
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	s := NewMemoryNotificationStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FindOlderThan(ctx, time.Now())
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.DeleteBatch(ctx, []interface{}{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}
