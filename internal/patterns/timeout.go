package patterns

import (
	"context"
	"time"
)

// WithTimeout derives a context bounded by duration
func WithTimeout(parent context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, duration)
}

// ProviderTimeout is the default timeout for payment provider calls
const ProviderTimeout = 10 * time.Second

// CleanupTimeout bounds a single notification cleanup run
const CleanupTimeout = 2 * time.Minute
