package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// DonationRequest is the payload sent by the app to relay a donation
type DonationRequest struct {
	Amount           *float64  `json:"amount" validate:"required,gt=0"`
	OrganizationName string    `json:"organizationName" validate:"required"`
	BankAccountID    AccountID `json:"bankAccountId" validate:"required"`
	Email            string    `json:"email" validate:"required"`
	Reference        string    `json:"reference" validate:"required"`
}

// SendInstructionRequest is the body posted to the provider's send-instruction endpoint
type SendInstructionRequest struct {
	BankAccountID AccountID `json:"bank_account_id"`
	Amount        float64   `json:"amount"`
	Email         string    `json:"email"`
	Description   string    `json:"description"`
	Reference     string    `json:"reference"`
}

// DonationResult is returned to the app after the provider accepts the instruction
type DonationResult struct {
	Success          bool        `json:"success"`
	Message          string      `json:"message"`
	ProviderResponse interface{} `json:"providerResponse"`
}

// ProviderError is the subset of a provider error body we surface
type ProviderError struct {
	Message string `json:"message"`
}

// DonationSentMessage is the success message returned to callers
const DonationSentMessage = "Donation sent successfully"

// AccountID is a bank account identifier that may arrive as a JSON number or
// string. It is re-encoded in the form it arrived in.
type AccountID struct {
	value   string
	numeric bool
}

// NumericAccountID returns an AccountID that encodes as a JSON number
func NumericAccountID(id int64) AccountID {
	return AccountID{value: strconv.FormatInt(id, 10), numeric: true}
}

// String returns the identifier text
func (a AccountID) String() string {
	return a.value
}

// IsZero reports whether the identifier is empty
func (a AccountID) IsZero() bool {
	return a.value == ""
}

// UnmarshalJSON accepts numbers and strings
func (a *AccountID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = AccountID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AccountID{value: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("bankAccountId must be a number or string: %w", err)
	}
	*a = AccountID{value: n.String(), numeric: true}
	return nil
}

// MarshalJSON writes the identifier back in its original JSON form
func (a AccountID) MarshalJSON() ([]byte, error) {
	if a.value == "" {
		return []byte("null"), nil
	}
	if a.numeric {
		return []byte(a.value), nil
	}
	return json.Marshal(a.value)
}
