package response

import (
	"time"

	"github.com/otpware/dispatch/internal/domain/contact"
	"github.com/otpware/dispatch/internal/domain/dispatch"
)

type WelcomePayload struct {
	Message string `json:"message"`
}

type HealthPayload struct {
	Status string `json:"status"`
}

type WelcomeResponse struct {
	Success   bool           `json:"success"`
	Data      WelcomePayload `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type HealthResponse struct {
	Success   bool          `json:"success"`
	Data      HealthPayload `json:"data"`
	Timestamp string        `json:"timestamp"`
}

type PollerControlPayload struct {
	Message string `json:"message"`
}

type PollerControlResponse struct {
	Success   bool                 `json:"success"`
	Data      PollerControlPayload `json:"data"`
	Timestamp string               `json:"timestamp"`
}

// DispatchRecordDTO is the public-facing representation of a dispatch
// record used in API responses. It decouples the wire format from the
// domain entity and plays nicely with Swagger.
type DispatchRecordDTO struct {
	ID                string   `json:"id"`
	ContactName       string   `json:"contactName"`
	PhoneNumber       string   `json:"phoneNumber"`
	Body              string   `json:"body"`
	Timestamp         string   `json:"timestamp"`
	Status            string   `json:"status"`
	ProviderMessageID string   `json:"providerMessageId,omitempty"`
	Error             string   `json:"error,omitempty"`
	VerificationSteps []string `json:"verificationSteps,omitempty"`
}

type MessagesPayload struct {
	Items []DispatchRecordDTO `json:"items"`
	Total int                 `json:"total"`
}

type MessagesResponse struct {
	Success   bool            `json:"success"`
	Data      MessagesPayload `json:"data"`
	Timestamp string          `json:"timestamp"`
}

type DispatchRecordResponse struct {
	Success   bool              `json:"success"`
	Data      DispatchRecordDTO `json:"data"`
	Timestamp string            `json:"timestamp"`
}

type ContactDTO struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

type ContactsPayload struct {
	Items []ContactDTO `json:"items"`
	Total int          `json:"total"`
}

type ContactsResponse struct {
	Success   bool            `json:"success"`
	Data      ContactsPayload `json:"data"`
	Timestamp string          `json:"timestamp"`
}

type ContactResponse struct {
	Success   bool       `json:"success"`
	Data      ContactDTO `json:"data"`
	Timestamp string     `json:"timestamp"`
}

// FromDomainRecord converts a domain dispatch record into its DTO.
func FromDomainRecord(r *dispatch.Record) DispatchRecordDTO {
	return DispatchRecordDTO{
		ID:                r.ID.String(),
		ContactName:       r.ContactName,
		PhoneNumber:       r.PhoneNumber,
		Body:              r.Body,
		Timestamp:         r.Timestamp.Format(time.RFC3339),
		Status:            string(r.Status),
		ProviderMessageID: r.ProviderMessageID,
		Error:             r.Error,
		VerificationSteps: r.VerificationSteps,
	}
}

// FromDomainRecords converts domain dispatch records into DTOs
// for use in HTTP responses.
func FromDomainRecords(records []*dispatch.Record) []DispatchRecordDTO {
	out := make([]DispatchRecordDTO, len(records))
	for i, r := range records {
		out[i] = FromDomainRecord(r)
	}
	return out
}

// FromDomainContacts converts domain contacts into DTOs.
func FromDomainContacts(contacts []*contact.Contact) []ContactDTO {
	out := make([]ContactDTO, len(contacts))
	for i, c := range contacts {
		out[i] = ContactDTO{
			ID:          c.ID.String(),
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			PhoneNumber: c.PhoneNumber,
		}
	}
	return out
}
