package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ramadhan-companion/functions/internal/metrics"
	"github.com/ramadhan-companion/functions/internal/models"
	"github.com/ramadhan-companion/functions/internal/patterns"
	log "github.com/sirupsen/logrus"
)

// CleanupRunner is implemented by *cleanup.Job
type CleanupRunner interface {
	Run(ctx context.Context, now time.Time) (models.CleanupResult, error)
}

// CleanupHandler triggers cleanup runs, one at a time
type CleanupHandler struct {
	runner   CleanupRunner
	bulkhead *patterns.Bulkhead
	now      func() time.Time
}

// NewCleanupHandler serializes runs through a single-slot bulkhead
func NewCleanupHandler(runner CleanupRunner) *CleanupHandler {
	return &CleanupHandler{
		runner:   runner,
		bulkhead: patterns.NewBulkhead(1, 0, "notification-cleanup", "cleanup-service"),
		now:      time.Now,
	}
}

// Run handles POST /cleanup/run
func (h *CleanupHandler) Run(c *gin.Context) {
	var result models.CleanupResult

	err := h.bulkhead.Execute(func() error {
		ctx, cancel := patterns.WithTimeout(c.Request.Context(), patterns.CleanupTimeout)
		defer cancel()

		var runErr error
		result, runErr = h.runner.Run(ctx, h.now())
		return runErr
	})

	if errors.Is(err, patterns.ErrBulkheadFull) {
		metrics.CleanupRuns.WithLabelValues(models.CleanupStatusRejected).Inc()
		c.JSON(http.StatusConflict, gin.H{
			"status":  models.CleanupStatusRejected,
			"message": "Cleanup already running",
		})
		return
	}

	if err != nil {
		log.WithField("request_id", requestID(c)).WithError(err).Error("Cleanup run failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  models.CleanupStatusFailed,
			"message": "Cleanup failed",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
