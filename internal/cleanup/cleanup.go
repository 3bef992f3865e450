// Package cleanup removes notification documents that have outlived the
// retention window.
package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ramadhan-companion/functions/internal/metrics"
	"github.com/ramadhan-companion/functions/internal/models"
	log "github.com/sirupsen/logrus"
)

// DefaultRetention keeps a week of notifications
const DefaultRetention = 7 * 24 * time.Hour

// Store is the document store the job queries and deletes from. Ids are
// opaque to the job and passed back to DeleteBatch unchanged.
type Store interface {
	FindOlderThan(ctx context.Context, cutoff time.Time) ([]interface{}, error)
	DeleteBatch(ctx context.Context, ids []interface{}) (int64, error)
}

// Job deletes notifications older than Retention
type Job struct {
	store     Store
	retention time.Duration
}

// NewJob creates a cleanup job. A non-positive retention uses DefaultRetention.
func NewJob(store Store, retention time.Duration) *Job {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Job{store: store, retention: retention}
}

// Cutoff returns the instant before which documents are expired
func Cutoff(now time.Time, retention time.Duration) time.Time {
	return now.Add(-retention)
}

// Run performs one cleanup pass relative to now. An empty match is a no-op.
func (j *Job) Run(ctx context.Context, now time.Time) (models.CleanupResult, error) {
	result := models.CleanupResult{
		RunID:  uuid.New().String(),
		Cutoff: Cutoff(now, j.retention),
	}
	logger := log.WithFields(log.Fields{
		"run_id": result.RunID,
		"cutoff": result.Cutoff.Format(time.RFC3339),
	})

	ids, err := j.store.FindOlderThan(ctx, result.Cutoff)
	if err != nil {
		metrics.CleanupRuns.WithLabelValues(models.CleanupStatusFailed).Inc()
		logger.WithError(err).Error("Failed to query old notifications")
		return result, fmt.Errorf("query old notifications: %w", err)
	}

	if len(ids) == 0 {
		metrics.CleanupRuns.WithLabelValues(models.CleanupStatusNoop).Inc()
		logger.Info("No old notifications to delete")
		return result, nil
	}

	deleted, err := j.store.DeleteBatch(ctx, ids)
	if err != nil {
		metrics.CleanupRuns.WithLabelValues(models.CleanupStatusFailed).Inc()
		logger.WithError(err).Error("Failed to delete old notifications")
		return result, fmt.Errorf("delete old notifications: %w", err)
	}

	result.Deleted = deleted
	metrics.CleanupRuns.WithLabelValues(models.CleanupStatusCompleted).Inc()
	metrics.NotificationsDeleted.Add(float64(deleted))
	logger.WithField("deleted", deleted).Info("Deleted old notifications")

	return result, nil
}
