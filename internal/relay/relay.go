// Package relay forwards validated donation requests to the CHIP payment API
// and normalizes its responses.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/ramadhan-companion/functions/internal/config"
	"github.com/ramadhan-companion/functions/internal/metrics"
	"github.com/ramadhan-companion/functions/internal/models"
	"github.com/ramadhan-companion/functions/internal/patterns"
	"github.com/ramadhan-companion/functions/internal/signature"
	log "github.com/sirupsen/logrus"
)

const sendInstructionPath = "/send-instruction"

// Outcome labels for metrics.DonationsTotal
const (
	outcomeSent     = "sent"
	outcomeInvalid  = "invalid"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// Relay is safe for concurrent use. It holds no per-call state.
type Relay struct {
	client   *resty.Client
	signer   *signature.Signer
	validate *validator.Validate
}

// New creates a relay for the configured provider
func New(cfg config.ChipConfig, signer *signature.Signer) *Relay {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = patterns.ProviderTimeout
	}

	return &Relay{
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(timeout).
			SetRetryCount(0), // Exactly one attempt per donation
		signer:   signer,
		validate: newValidator(),
	}
}

// SendDonation validates req, signs and posts a send instruction, and maps the
// provider's answer. Errors are always *Error.
func (r *Relay) SendDonation(ctx context.Context, req models.DonationRequest) (*models.DonationResult, error) {
	if verr := validateRequest(r.validate, &req); verr != nil {
		metrics.DonationsTotal.WithLabelValues(outcomeInvalid).Inc()
		log.WithFields(log.Fields{
			"reference": req.Reference,
			"reason":    verr.Message,
		}).Warn("Rejected donation request")
		return nil, verr
	}

	body := models.SendInstructionRequest{
		BankAccountID: req.BankAccountID,
		Amount:        *req.Amount,
		Email:         req.Email,
		Description:   fmt.Sprintf("Donation to %s", req.OrganizationName),
		Reference:     req.Reference,
	}

	resp, err := r.post(ctx, body)
	if err != nil {
		return nil, r.failure(req, resp, err)
	}

	if !resp.IsSuccess() {
		return nil, r.failure(req, resp, fmt.Errorf("provider returned status %d", resp.StatusCode()))
	}

	metrics.DonationsTotal.WithLabelValues(outcomeSent).Inc()
	metrics.DonationAmount.Observe(body.Amount)

	log.WithFields(log.Fields{
		"reference":    req.Reference,
		"organization": req.OrganizationName,
		"amount":       body.Amount,
	}).Info("Donation sent successfully")

	return &models.DonationResult{
		Success:          true,
		Message:          models.DonationSentMessage,
		ProviderResponse: decodePayload(resp.Body()),
	}, nil
}

// post issues the single outbound call for one donation
func (r *Relay) post(ctx context.Context, body models.SendInstructionRequest) (*resty.Response, error) {
	start := time.Now()
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeaders(r.signer.Headers().Map()).
		SetBody(body).
		Post(sendInstructionPath)

	status := "error"
	if resp != nil && resp.StatusCode() != 0 {
		status = strconv.Itoa(resp.StatusCode())
	}
	metrics.ProviderRequestDuration.WithLabelValues(sendInstructionPath, status).Observe(time.Since(start).Seconds())

	if err != nil {
		return resp, fmt.Errorf("HTTP error: %w", err)
	}
	return resp, nil
}

func (r *Relay) failure(req models.DonationRequest, resp *resty.Response, cause error) *Error {
	fields := log.Fields{
		"reference": req.Reference,
		"error":     cause.Error(),
	}

	if resp == nil || resp.StatusCode() == 0 {
		metrics.DonationsTotal.WithLabelValues(outcomeFailed).Inc()
		log.WithFields(fields).Error("CHIP API Error")
		return internal(FallbackMessage, cause)
	}

	fields["status"] = resp.StatusCode()
	fields["provider_response"] = resp.String()
	metrics.DonationsTotal.WithLabelValues(outcomeRejected).Inc()
	log.WithFields(fields).Error("CHIP API Error")

	return internal(providerMessage(resp.Body()), cause)
}

// providerMessage extracts a non-empty string "message" from an error body
func providerMessage(body []byte) string {
	var perr models.ProviderError
	if err := json.Unmarshal(body, &perr); err != nil {
		return ""
	}
	return perr.Message
}

// decodePayload passes the provider body through untyped. Non-JSON bodies are
// returned as text.
func decodePayload(body []byte) interface{} {
	if len(body) == 0 {
		return nil
	}
	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return string(body)
	}
	return payload
}
