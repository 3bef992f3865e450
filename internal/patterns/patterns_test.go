package patterns

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkheadRejectsWhenFull(t *testing.T) {
	b := NewBulkhead(1, 0, "cleanup", "test")

	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = b.Execute(func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	err := b.Execute(func() error { return nil })
	assert.ErrorIs(t, err, ErrBulkheadFull)

	close(release)
	wg.Wait()

	assert.NoError(t, b.Execute(func() error { return nil }))
}

func TestBulkheadWaitsForSlot(t *testing.T) {
	b := NewBulkhead(1, time.Second, "cleanup", "test")

	started := make(chan struct{})
	go func() {
		_ = b.Execute(func() error {
			close(started)
			time.Sleep(20 * time.Millisecond)
			return nil
		})
	}()
	<-started

	assert.NoError(t, b.Execute(func() error { return nil }))
}

func TestBulkheadPassesThroughError(t *testing.T) {
	b := NewBulkhead(2, 0, "cleanup", "test")
	boom := errors.New("boom")
	assert.ErrorIs(t, b.Execute(func() error { return boom }), boom)
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker("ChipTest", "test")
	boom := errors.New("boom")

	for i := 0; i < 5; i++ {
		_, err := cb.Execute(func() (interface{}, error) { return nil, boom })
		require.ErrorIs(t, err, boom)
	}

	assert.Equal(t, gobreaker.StateOpen.String(), cb.GetState())
	assert.Equal(t, 1, cb.GetStateValue())

	called := false
	_, err := cb.Execute(func() (interface{}, error) {
		called = true
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestFormatError(t *testing.T) {
	assert.ErrorIs(t, FormatError(gobreaker.ErrOpenState), ErrCircuitOpen)
	assert.ErrorIs(t, FormatError(gobreaker.ErrTooManyRequests), ErrCircuitOpen)
	assert.Nil(t, FormatError(nil))
}
