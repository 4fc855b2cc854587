package dispatchgorm

import (
	"strings"

	"github.com/otpware/dispatch/internal/domain/dispatch"
)

// stepSeparator joins the ordered verification steps into one text column.
// Steps never contain newlines, so the join is lossless.
const stepSeparator = "\n"

// toDomain maps a GORM RecordModel to a domain-level Record.
func toDomain(m *RecordModel) *dispatch.Record {
	var steps []string
	if m.VerificationSteps != "" {
		steps = strings.Split(m.VerificationSteps, stepSeparator)
	}

	return &dispatch.Record{
		ID:                m.ID,
		ContactName:       m.ContactName,
		PhoneNumber:       m.PhoneNumber,
		Body:              m.Body,
		Timestamp:         m.Timestamp,
		Status:            dispatch.Status(m.Status),
		ProviderMessageID: m.ProviderMessageID,
		Error:             m.Error,
		VerificationSteps: steps,
	}
}

// toDomainMany maps a slice of RecordModel to a slice of domain Records.
func toDomainMany(models []RecordModel) []*dispatch.Record {
	out := make([]*dispatch.Record, len(models))
	for i := range models {
		out[i] = toDomain(&models[i])
	}
	return out
}

// fromDomain maps a domain-level Record to a GORM RecordModel.
func fromDomain(r *dispatch.Record) *RecordModel {
	return &RecordModel{
		ID:                r.ID,
		ContactName:       r.ContactName,
		PhoneNumber:       r.PhoneNumber,
		Body:              r.Body,
		Timestamp:         r.Timestamp,
		Status:            string(r.Status),
		ProviderMessageID: r.ProviderMessageID,
		Error:             r.Error,
		VerificationSteps: strings.Join(r.VerificationSteps, stepSeparator),
	}
}
