package cleanup

import (
	"context"
	"time"

	"github.com/ramadhan-companion/functions/internal/patterns"
)

// GuardedStore routes store calls through a circuit breaker so an unreachable
// database fails runs fast instead of tying up the trigger.
type GuardedStore struct {
	store   Store
	circuit *patterns.CircuitBreakerWrapper
}

// NewGuardedStore wraps store with circuit
func NewGuardedStore(store Store, circuit *patterns.CircuitBreakerWrapper) *GuardedStore {
	return &GuardedStore{store: store, circuit: circuit}
}

// callResult carries an error that must not count against the breaker
type callResult struct {
	value interface{}
	err   error
}

// execute runs fn through the breaker. Errors caused by the caller's own
// context ending are returned without being recorded as store failures.
func (g *GuardedStore) execute(ctx context.Context, fn func() (interface{}, error)) (interface{}, error) {
	out, err := g.circuit.Execute(func() (interface{}, error) {
		value, err := fn()
		if err != nil && ctx.Err() != nil {
			return callResult{value: value, err: err}, nil
		}
		return callResult{value: value}, err
	})
	if err != nil {
		return nil, err
	}
	res := out.(callResult)
	return res.value, res.err
}

// FindOlderThan implements Store
func (g *GuardedStore) FindOlderThan(ctx context.Context, cutoff time.Time) ([]interface{}, error) {
	out, err := g.execute(ctx, func() (interface{}, error) {
		return g.store.FindOlderThan(ctx, cutoff)
	})
	ids, _ := out.([]interface{})
	return ids, err
}

// DeleteBatch implements Store
func (g *GuardedStore) DeleteBatch(ctx context.Context, ids []interface{}) (int64, error) {
	out, err := g.execute(ctx, func() (interface{}, error) {
		return g.store.DeleteBatch(ctx, ids)
	})
	deleted, _ := out.(int64)
	return deleted, err
}
