package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultSendTimeout bounds a single gateway send request.
const DefaultSendTimeout = 10 * time.Second

// GatewayClient sends messages through the relay gateway: a server-side
// endpoint that holds provider credentials and forwards form-urlencoded
// send requests to the provider.
type GatewayClient struct {
	endpoint    string
	sendTimeout time.Duration
	httpClient  *http.Client
}

// NewGatewayClient creates a gateway client for the given endpoint. A
// timeout of zero falls back to DefaultSendTimeout.
func NewGatewayClient(endpoint string, sendTimeout time.Duration) *GatewayClient {
	if sendTimeout <= 0 {
		sendTimeout = DefaultSendTimeout
	}
	return &GatewayClient{
		endpoint:    endpoint,
		sendTimeout: sendTimeout,
		httpClient: &http.Client{
			Timeout: sendTimeout,
		},
	}
}

// withTimeout wraps the context with a timeout if it doesn't already have one.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		// Already has a deadline; no need to wrap again.
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// successBody is the provider's 2xx response, forwarded verbatim.
type successBody struct {
	SID string `json:"sid"`
}

// errorBody is the provider's error response, forwarded verbatim.
type errorBody struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
}

// Send implements Client.Send by posting a form-urlencoded payload to the
// gateway. A single attempt, no retries; timeouts surface as plain errors.
func (c *GatewayClient) Send(ctx context.Context, to, from, body string) (*SendResult, error) {
	ctx, cancel := withTimeout(ctx, c.sendTimeout)
	defer cancel()

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", from)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Proxy-Source", "dispatch-api")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("gateway request timeout or canceled: %w", err)
		}
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	rawBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}
	raw := string(rawBytes)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		if jsonErr := json.Unmarshal(rawBytes, &eb); jsonErr == nil && eb.Code != 0 {
			return nil, &ProviderError{
				StatusCode: resp.StatusCode,
				Code:       eb.Code,
				Message:    eb.Message,
				MoreInfo:   eb.MoreInfo,
			}
		}
		return nil, fmt.Errorf("gateway returned non-2xx status %d: %s", resp.StatusCode, strings.TrimSpace(raw))
	}

	var parsed successBody
	if err := json.Unmarshal(rawBytes, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}

	if parsed.SID == "" {
		// Some provider rejections come back 2xx with an error body.
		var eb errorBody
		if jsonErr := json.Unmarshal(rawBytes, &eb); jsonErr == nil && eb.Code != 0 {
			return nil, &ProviderError{
				StatusCode: resp.StatusCode,
				Code:       eb.Code,
				Message:    eb.Message,
				MoreInfo:   eb.MoreInfo,
			}
		}
		return nil, fmt.Errorf("gateway response missing message sid")
	}

	return &SendResult{SID: parsed.SID, Raw: raw}, nil
}

// Health implements Client.Health with a lightweight OPTIONS request: the
// gateway answers preflight without touching the provider.
func (c *GatewayClient) Health(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodOptions, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("health: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("health: request timeout or canceled: %w", err)
		}
		return fmt.Errorf("health: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health: non-2xx status: %d", resp.StatusCode)
	}

	return nil
}

// compile-time check: GatewayClient satisfies the Client interface.
var _ Client = (*GatewayClient)(nil)
