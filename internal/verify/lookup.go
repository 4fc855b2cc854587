package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrRateLimited is returned by a lookup when the upstream service answered
// 429. The cache treats it differently from other failures: it keeps the
// previous snapshot and does not touch the fetch timestamp.
var ErrRateLimited = errors.New("verification lookup rate limited")

// LookupClient lists the phone numbers the account is currently allowed to
// message.
type LookupClient interface {
	List(ctx context.Context) ([]string, error)
}

// DefaultProviderBaseURL is the provider API root used when none is configured.
const DefaultProviderBaseURL = "https://api.twilio.com"

// TwilioLookup fetches the account's verified outgoing caller IDs straight
// from the provider with basic auth.
type TwilioLookup struct {
	baseURL    string
	accountSID string
	authToken  string
	httpClient *http.Client
}

// NewTwilioLookup creates a lookup client. An empty baseURL falls back to
// the provider's public API root; tests point it at a local server.
func NewTwilioLookup(baseURL, accountSID, authToken string) *TwilioLookup {
	if baseURL == "" {
		baseURL = DefaultProviderBaseURL
	}
	return &TwilioLookup{
		baseURL:    baseURL,
		accountSID: accountSID,
		authToken:  authToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// callerIDList mirrors the provider's OutgoingCallerIds listing body.
type callerIDList struct {
	OutgoingCallerIDs []struct {
		PhoneNumber string `json:"phone_number"`
	} `json:"outgoing_caller_ids"`
}

// List implements LookupClient against the provider's outgoing-caller-id
// listing. A 429 maps to ErrRateLimited so the cache can apply its
// fallback policy.
func (c *TwilioLookup) List(ctx context.Context) ([]string, error) {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/OutgoingCallerIds.json", c.baseURL, c.accountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("lookup: failed to create request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("lookup: non-2xx status: %d", resp.StatusCode)
	}

	rawBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("lookup: failed to read response: %w", err)
	}

	var parsed callerIDList
	if err := json.Unmarshal(rawBytes, &parsed); err != nil {
		return nil, fmt.Errorf("lookup: failed to parse response: %w", err)
	}

	numbers := make([]string, 0, len(parsed.OutgoingCallerIDs))
	for _, entry := range parsed.OutgoingCallerIDs {
		numbers = append(numbers, entry.PhoneNumber)
	}
	return numbers, nil
}

var _ LookupClient = (*TwilioLookup)(nil)
