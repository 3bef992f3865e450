package main

import (
	"github.com/gin-gonic/gin"
	"github.com/ramadhan-companion/functions/internal/config"
	"github.com/ramadhan-companion/functions/internal/handlers"
	"github.com/ramadhan-companion/functions/internal/relay"
	"github.com/ramadhan-companion/functions/internal/signature"
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
	// Missing provider credentials are fatal
	if err := cfg.ValidateChip(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	signer, err := signature.NewSigner(cfg.Chip.APIKey, cfg.Chip.APISecret)
	if err != nil {
		log.Fatal("Failed to create signer: ", err)
	}

	if cfg.ParseLogLevel() < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.NewDonationRouter(relay.New(cfg.Chip, signer))

	log.WithFields(log.Fields{
		"addr":     cfg.HTTPAddr,
		"chip_api": cfg.Chip.BaseURL,
	}).Info("Donation Service starting")

	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
