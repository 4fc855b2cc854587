// Package sms exposes a minimal interface for sending SMS messages through
// the relay gateway and checking that the gateway is reachable.
package sms

import (
	"context"
	"fmt"
)

// Provider error codes the dispatcher classifies on. These are the
// provider's own codes, passed through the gateway verbatim.
const (
	// CodeTrialUnverified: a trial account may only message numbers that
	// have completed caller-ID verification.
	CodeTrialUnverified = 21608

	// CodeDailyLimitExceeded: the account's daily message quota is spent.
	CodeDailyLimitExceeded = 14101
)

// SendResult is the provider's acknowledgement of an accepted message.
type SendResult struct {
	// SID is the provider-assigned message identifier.
	SID string
	// Raw is the verbatim response body, kept for diagnostics.
	Raw string
}

// ProviderError is a structured provider rejection forwarded by the gateway:
// a non-2xx (or error-bodied 2xx) response carrying the provider's error
// code and message.
type ProviderError struct {
	StatusCode int
	Code       int
	Message    string
	MoreInfo   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %d (http %d): %s", e.Code, e.StatusCode, e.Message)
}

// Client is the contract for the relay gateway.
type Client interface {
	// Send submits one SMS through the gateway. It returns a *ProviderError
	// when the provider rejected the message with a structured error, or a
	// plain error for transport failures (timeout, connection refused,
	// malformed response).
	Send(ctx context.Context, to, from, body string) (*SendResult, error)

	// Health checks whether the gateway is reachable.
	Health(ctx context.Context) error
}
