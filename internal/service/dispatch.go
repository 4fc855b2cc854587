package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/otpware/dispatch/internal/cache"
	"github.com/otpware/dispatch/internal/domain/contact"
	"github.com/otpware/dispatch/internal/domain/dispatch"
	"github.com/otpware/dispatch/internal/phone"
	"github.com/otpware/dispatch/internal/sms"
)

// Eligibility answers whether a canonical number is currently cleared to
// receive messages. Implemented by the verify cache; substitutable with a
// fake in tests.
type Eligibility interface {
	IsEligible(ctx context.Context, e164 string) bool
}

// DispatchService orchestrates a send attempt: normalize, check
// eligibility, call the gateway, classify the outcome, and persist exactly
// one record per invocation.
type DispatchService interface {
	// Send attempts one SMS to the contact. Every invocation that passes
	// the empty-body precondition produces exactly one persisted record,
	// whatever the outcome. There are no retries.
	Send(ctx context.Context, c *contact.Contact, body string) (*dispatch.Record, error)

	// History returns the dispatch log, newest first.
	History(ctx context.Context) ([]*dispatch.Record, error)

	// Delete removes the records with the given ids and returns the rest.
	Delete(ctx context.Context, ids []uuid.UUID) ([]*dispatch.Record, error)

	// Clear empties the dispatch log.
	Clear(ctx context.Context) error
}

type dispatchService struct {
	store       dispatch.Store
	gateway     sms.Client
	eligibility Eligibility
	normalizer  phone.Normalizer
	cache       cache.Cache // optional sent-SID mirror
	fromNumber  string
}

// NewDispatchService creates a dispatcher with the given collaborators.
// cache may be nil; it only backs the best-effort sent-SID mirror.
func NewDispatchService(
	store dispatch.Store,
	gateway sms.Client,
	eligibility Eligibility,
	normalizer phone.Normalizer,
	c cache.Cache,
	fromNumber string,
) DispatchService {
	return &dispatchService{
		store:       store,
		gateway:     gateway,
		eligibility: eligibility,
		normalizer:  normalizer,
		cache:       c,
		fromNumber:  fromNumber,
	}
}

func (s *dispatchService) Send(ctx context.Context, c *contact.Contact, body string) (*dispatch.Record, error) {
	// Caller-side precondition: an empty body is rejected before any record
	// is made or any network touched.
	if strings.TrimSpace(body) == "" {
		return nil, dispatch.ErrEmptyBody
	}

	rec, err := dispatch.NewRecord(c.FullName(), c.PhoneNumber, body)
	if err != nil {
		return nil, err
	}

	e164 := s.normalizer.Normalize(c.PhoneNumber)

	// The cache gates the send path: an unverified number never reaches
	// the gateway.
	if !s.eligibility.IsEligible(ctx, e164) {
		rec.MarkVerificationNeeded(e164, fmt.Sprintf("%s is not verified in Twilio", e164))
		return s.persist(ctx, rec)
	}

	// One attempt, bounded by the gateway client's timeout. No retries.
	res, sendErr := s.gateway.Send(ctx, e164, s.fromNumber, body)

	switch {
	case sendErr == nil:
		rec.MarkSent(res.SID)
		s.mirrorSent(ctx, rec)

	default:
		var perr *sms.ProviderError
		if errors.As(sendErr, &perr) {
			switch perr.Code {
			case sms.CodeTrialUnverified:
				// The provider is the authority of record; the cache can
				// be stale.
				rec.MarkVerificationNeeded(e164,
					"Trial account can only send to verified numbers. Please verify this number in Twilio.")

			case sms.CodeDailyLimitExceeded:
				rec.MarkLimitExceeded(limitExceededMessage(time.Now()))

			default:
				rec.MarkFailed(perr.Message)
			}
		} else {
			rec.MarkFailed(sendErr.Error())
		}
	}

	return s.persist(ctx, rec)
}

func (s *dispatchService) History(ctx context.Context) ([]*dispatch.Record, error) {
	return s.store.All(ctx)
}

func (s *dispatchService) Delete(ctx context.Context, ids []uuid.UUID) ([]*dispatch.Record, error) {
	return s.store.DeleteByIDs(ctx, ids)
}

func (s *dispatchService) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// persist appends the classified record. The record is returned even when
// persistence fails so the caller still sees the classified outcome.
func (s *dispatchService) persist(ctx context.Context, rec *dispatch.Record) (*dispatch.Record, error) {
	if err := s.store.Append(ctx, rec); err != nil {
		log.Printf("[Dispatch] Failed to persist record %s: %v", rec.ID, err)
		return rec, fmt.Errorf("persist dispatch record: %w", err)
	}
	return rec, nil
}

// mirrorSent caches the sent timestamp keyed by provider SID, best-effort.
func (s *dispatchService) mirrorSent(ctx context.Context, rec *dispatch.Record) {
	if s.cache == nil || rec.ProviderMessageID == "" {
		return
	}

	key := cache.SentMessages.Key(rec.ProviderMessageID)
	sentAt := rec.Timestamp.Format(time.RFC3339)
	if err := s.cache.Set(ctx, key, sentAt, 24*time.Hour); err != nil {
		log.Printf("[Dispatch] Failed to cache sent SID %s: %v", rec.ProviderMessageID, err)
	}
}

// providerLocation is the provider's reference time zone for daily quotas.
const providerLocation = "America/Los_Angeles"

// limitExceededMessage renders the next local-midnight quota reset in the
// provider's reference time zone.
func limitExceededMessage(now time.Time) string {
	loc, err := time.LoadLocation(providerLocation)
	if err != nil {
		loc = time.UTC
	}

	local := now.In(loc)
	reset := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)

	return fmt.Sprintf("Daily limit exceeded. Resets at %s PT. Upgrade at twilio.com/console/upgrade",
		reset.Format("3:04 PM"))
}
