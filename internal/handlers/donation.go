package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ramadhan-companion/functions/internal/models"
	"github.com/ramadhan-companion/functions/internal/relay"
	log "github.com/sirupsen/logrus"
)

// DonationSender is implemented by *relay.Relay
type DonationSender interface {
	SendDonation(ctx context.Context, req models.DonationRequest) (*models.DonationResult, error)
}

// ErrorBody is the JSON shape of a failed call
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail names the error kind and a caller-safe message
type ErrorDetail struct {
	Kind    relay.Kind `json:"kind"`
	Message string     `json:"message"`
}

// invalidRequestMessage is returned for bodies that do not decode
const invalidRequestMessage = "Invalid donation request"

// DonationHandler exposes the relay over HTTP
type DonationHandler struct {
	sender DonationSender
}

// SendDonation handles POST /donation/send
func (h *DonationHandler) SendDonation(c *gin.Context) {
	var req models.DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.WithField("request_id", requestID(c)).WithError(err).Warn("Failed to decode donation request")
		c.JSON(http.StatusBadRequest, ErrorBody{Error: ErrorDetail{
			Kind:    relay.KindInvalidArgument,
			Message: invalidRequestMessage,
		}})
		return
	}

	logger := log.WithFields(log.Fields{
		"request_id": requestID(c),
		"reference":  req.Reference,
	})

	result, err := h.sender.SendDonation(c.Request.Context(), req)
	if err != nil {
		var relayErr *relay.Error
		if !errors.As(err, &relayErr) {
			relayErr = &relay.Error{Kind: relay.KindInternal, Message: relay.FallbackMessage, Err: err}
		}
		logger.WithField("kind", relayErr.Kind).Warn("Donation relay failed")
		c.JSON(relayErr.HTTPStatus(), ErrorBody{Error: ErrorDetail{
			Kind:    relayErr.Kind,
			Message: relayErr.Message,
		}})
		return
	}

	logger.Info("Donation relayed")
	c.JSON(http.StatusOK, result)
}
