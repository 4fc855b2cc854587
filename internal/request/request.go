package request

// SendMessageRequest is the JSON body for dispatching an SMS.
// Body is optional: when omitted or blank, a fresh OTP message is generated.
type SendMessageRequest struct {
	ContactID string `json:"contactId"`
	Body      string `json:"body,omitempty"`
}

// DeleteMessagesRequest names the dispatch-record ids to remove.
type DeleteMessagesRequest struct {
	IDs []string `json:"ids"`
}

// PollerRequest represents the JSON body for poller control.
type PollerRequest struct {
	// Action controls the background verification poller. Allowed values:
	// - "start": start refreshing the verified-number cache
	// - "stop":  stop refreshing
	Action string `json:"action"`
}
