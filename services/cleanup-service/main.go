package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ramadhan-companion/functions/internal/cleanup"
	"github.com/ramadhan-companion/functions/internal/config"
	"github.com/ramadhan-companion/functions/internal/handlers"
	"github.com/ramadhan-companion/functions/internal/patterns"
	"github.com/ramadhan-companion/functions/internal/store"
	log "github.com/sirupsen/logrus"
)

var cfg config.Config

func init() {
	// Initialize logger
	log.SetFormatter(&log.JSONFormatter{})

	cfg = config.Load()
	log.SetLevel(cfg.ParseLogLevel())
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	notifications, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	guarded := cleanup.NewGuardedStore(notifications, patterns.NewCircuitBreaker("NotificationStore", "cleanup-service"))
	job := cleanup.NewJob(guarded, cfg.Notifications.Retention)

	// CronJob mode: one pass, then exit
	if cfg.RunOnce {
		ctx, cancel := patterns.WithTimeout(context.Background(), patterns.CleanupTimeout)
		defer cancel()

		result, err := job.Run(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("cleanup run failed: %w", err)
		}
		log.WithFields(log.Fields{
			"run_id":  result.RunID,
			"deleted": result.Deleted,
		}).Info("Cleanup run finished")
		return nil
	}

	if cfg.ParseLogLevel() < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.NewCleanupRouter(handlers.NewCleanupHandler(job))

	log.WithFields(log.Fields{
		"addr":       cfg.HTTPAddr,
		"store":      cfg.Notifications.Store,
		"collection": cfg.Notifications.Collection,
		"retention":  cfg.Notifications.Retention.String(),
	}).Info("Cleanup Service starting")

	if err := router.Run(cfg.HTTPAddr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func openStore() (cleanup.Store, func(), error) {
	if cfg.Notifications.Store == config.StoreMemory {
		log.Warn("Using in-memory notification store")
		return store.NewMemoryNotificationStore(), func() {}, nil
	}

	client, err := store.Connect(context.Background(), cfg.Mongo)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open notification store: %w", err)
	}

	mongoStore := store.NewMongoNotificationStore(client, cfg)
	return mongoStore, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoStore.Close(ctx); err != nil {
			log.Warn("Failed to disconnect from MongoDB: ", err)
		}
	}, nil
}
