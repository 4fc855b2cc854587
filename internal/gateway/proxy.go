// Package gateway implements the relay gateway: the server-side component
// that holds provider credentials and forwards browser send requests to the
// provider. Credentials never leave this process; status codes and bodies
// pass through verbatim in both directions.
package gateway

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// DefaultUpstreamBaseURL is the provider API root used when none is configured.
const DefaultUpstreamBaseURL = "https://api.twilio.com"

// Proxy forwards send requests to the provider's Messages endpoint.
type Proxy struct {
	upstreamBase string
	accountSID   string
	authToken    string
	httpClient   *http.Client
}

// NewProxy creates a relay proxy for the given account. An empty
// upstreamBase falls back to the provider's public API root.
func NewProxy(upstreamBase, accountSID, authToken string) *Proxy {
	if upstreamBase == "" {
		upstreamBase = DefaultUpstreamBaseURL
	}
	return &Proxy{
		upstreamBase: upstreamBase,
		accountSID:   accountSID,
		authToken:    authToken,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ServeHTTP answers CORS preflight, rejects everything but POST/OPTIONS
// with 405, and forwards POSTs to the provider verbatim.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		p.writeCORS(w)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,X-Proxy-Source")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)

	case http.MethodPost:
		p.forward(w, r)

	default:
		p.writeCORS(w)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprint(w, `{"error":"Method not allowed"}`)
	}
}

// forward relays the form body to the provider with basic auth and copies
// the provider's status and body back untouched.
func (p *Proxy) forward(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		p.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", p.upstreamBase, p.accountSID)

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		p.writeError(w, http.StatusInternalServerError, "failed to build upstream request")
		return
	}
	req.SetBasicAuth(p.accountSID, p.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Printf("[Gateway] Upstream request failed: %v", err)
		p.writeError(w, http.StatusBadGateway, "failed to reach provider")
		return
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		p.writeError(w, http.StatusBadGateway, "failed to read provider response")
		return
	}

	// Pass the provider's answer through verbatim: success and error bodies
	// alike, with the provider's own status code.
	p.writeCORS(w)
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	w.Write(respBody)

	if resp.StatusCode >= 400 {
		log.Printf("[Gateway] Provider rejected request: status=%d", resp.StatusCode)
	}
}

func (p *Proxy) writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

func (p *Proxy) writeError(w http.ResponseWriter, status int, msg string) {
	p.writeCORS(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":true,"message":%q}`, msg)
}
