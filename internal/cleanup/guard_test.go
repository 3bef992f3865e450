package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ramadhan-companion/functions/internal/patterns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	stubStore
	finds int
}

func (s *countingStore) FindOlderThan(ctx context.Context, cutoff time.Time) ([]interface{}, error) {
	s.finds++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.stubStore.FindOlderThan(ctx, cutoff)
}

func TestGuardedStorePassesResultsThrough(t *testing.T) {
	s := &countingStore{stubStore: stubStore{ids: []interface{}{"a", "b"}}}
	guarded := NewGuardedStore(s, patterns.NewCircuitBreaker("guard-pass", "test"))

	result, err := NewJob(guarded, DefaultRetention).Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Deleted)
	assert.Equal(t, [][]interface{}{{"a", "b"}}, s.deleted)
}

func TestGuardedStoreOpensAfterRepeatedStoreFailures(t *testing.T) {
	boom := errors.New("connection refused")
	s := &countingStore{stubStore: stubStore{findErr: boom}}
	guarded := NewGuardedStore(s, patterns.NewCircuitBreaker("guard-open", "test"))

	for i := 0; i < 5; i++ {
		_, err := guarded.FindOlderThan(context.Background(), now)
		assert.ErrorIs(t, err, boom)
	}

	_, err := NewJob(guarded, DefaultRetention).Run(context.Background(), now)
	assert.ErrorIs(t, err, patterns.ErrCircuitOpen)
	assert.Equal(t, 5, s.finds)
}

func TestGuardedStoreIgnoresCallerCancellation(t *testing.T) {
	s := &countingStore{stubStore: stubStore{ids: []interface{}{"a"}}}
	cb := patterns.NewCircuitBreaker("guard-cancel", "test")
	guarded := NewGuardedStore(s, cb)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 10; i++ {
		_, err := guarded.FindOlderThan(ctx, now)
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, "closed", cb.GetState())

	ids, err := guarded.FindOlderThan(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a"}, ids)
	assert.Equal(t, 11, s.finds)
}
