package patterns

import (
	"errors"
	"fmt"
	"time"

	"github.com/ramadhan-companion/functions/internal/metrics"
)

// ErrBulkheadFull is returned when no slot frees up within the wait period
var ErrBulkheadFull = errors.New("bulkhead full")

// Bulkhead limits how many executions of a job may run at once
type Bulkhead struct {
	semaphore chan struct{}
	wait      time.Duration
	name      string
	service   string
}

// NewBulkhead creates a bulkhead with the given capacity. Callers wait up to
// wait for a slot; zero rejects immediately when full.
func NewBulkhead(size int, wait time.Duration, name, service string) *Bulkhead {
	return &Bulkhead{
		semaphore: make(chan struct{}, size),
		wait:      wait,
		name:      name,
		service:   service,
	}
}

// Execute runs a function within the bulkhead's resource limits
func (b *Bulkhead) Execute(fn func() error) error {
	select {
	case b.semaphore <- struct{}{}:
		return b.run(fn)
	default:
	}

	if b.wait <= 0 {
		return b.reject()
	}

	timer := time.NewTimer(b.wait)
	defer timer.Stop()

	select {
	case b.semaphore <- struct{}{}:
		return b.run(fn)
	case <-timer.C:
		return b.reject()
	}
}

func (b *Bulkhead) run(fn func() error) error {
	metrics.BulkheadActiveRequests.WithLabelValues(b.service, b.name).Inc()
	defer func() {
		<-b.semaphore
		metrics.BulkheadActiveRequests.WithLabelValues(b.service, b.name).Dec()
	}()

	return fn()
}

func (b *Bulkhead) reject() error {
	metrics.BulkheadRejectedRequests.WithLabelValues(b.service, b.name).Inc()
	return fmt.Errorf("bulkhead %s: %w", b.name, ErrBulkheadFull)
}
