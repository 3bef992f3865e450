// Package signature builds the time-bound authentication headers required by
// the CHIP payment API.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"
)

// Header names sent to the provider
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderEpoch         = "x-epoch"
	HeaderChecksum      = "x-checksum"
)

// ErrMissingCredentials is returned when the API key or secret is empty
var ErrMissingCredentials = errors.New("signature: api key and secret are required")

// SignedHeaders is the header set for a single outbound call
type SignedHeaders struct {
	Authorization string
	Epoch         int64
	Checksum      string
}

// Map returns the headers keyed by their wire names
func (h SignedHeaders) Map() map[string]string {
	return map[string]string{
		HeaderAuthorization: h.Authorization,
		HeaderContentType:   "application/json",
		HeaderEpoch:         strconv.FormatInt(h.Epoch, 10),
		HeaderChecksum:      h.Checksum,
	}
}

// Signer derives SignedHeaders from a static API key and a shared secret
type Signer struct {
	apiKey string
	secret []byte
}

// NewSigner creates a signer, failing fast when credentials are missing
func NewSigner(apiKey, apiSecret string) (*Signer, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, ErrMissingCredentials
	}
	return &Signer{apiKey: apiKey, secret: []byte(apiSecret)}, nil
}

// Headers signs the current second. Never cache the result.
func (s *Signer) Headers() SignedHeaders {
	return s.HeadersAt(time.Now())
}

// HeadersAt signs the given instant, truncated to whole seconds
func (s *Signer) HeadersAt(t time.Time) SignedHeaders {
	epoch := t.Unix()
	return SignedHeaders{
		Authorization: "Bearer " + s.apiKey,
		Epoch:         epoch,
		Checksum:      s.Checksum(epoch),
	}
}

// Checksum returns hex(HMAC-SHA256(secret, decimal epoch))
func (s *Signer) Checksum(epoch int64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(strconv.FormatInt(epoch, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
