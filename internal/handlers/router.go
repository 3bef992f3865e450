package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ramadhan-companion/functions/internal/metrics"
)

// RequestIDHeader carries the per-request id
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID reuses an incoming X-Request-ID or assigns a new uuid
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// newRouter builds the common engine: recovery, metrics, health, /metrics
func newRouter(serviceName string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())

	// Add Prometheus middleware
	router.Use(metrics.PrometheusMiddleware(serviceName))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	})

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// NewDonationRouter serves the donation relay
func NewDonationRouter(sender DonationSender) *gin.Engine {
	router := newRouter("donation-service")
	h := &DonationHandler{sender: sender}
	router.POST("/donation/send", h.SendDonation)
	return router
}

// NewCleanupRouter serves the scheduled cleanup trigger
func NewCleanupRouter(h *CleanupHandler) *gin.Engine {
	router := newRouter("cleanup-service")
	router.POST("/cleanup/run", h.Run)
	return router
}
