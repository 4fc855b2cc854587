package verify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTwilioLookup_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC123" || pass != "secret" {
			t.Errorf("missing or wrong basic auth: %q/%q", user, pass)
		}
		if r.URL.Path != "/2010-04-01/Accounts/AC123/OutgoingCallerIds.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"outgoing_caller_ids":[{"phone_number":"+919876543210"},{"phone_number":"+15005550006"}]}`))
	}))
	defer srv.Close()

	c := NewTwilioLookup(srv.URL, "AC123", "secret")

	numbers, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(numbers) != 2 || numbers[0] != "+919876543210" {
		t.Fatalf("unexpected numbers: %v", numbers)
	}
}

func TestTwilioLookup_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewTwilioLookup(srv.URL, "AC123", "secret")

	_, err := c.List(context.Background())
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestTwilioLookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewTwilioLookup(srv.URL, "AC123", "secret")

	_, err := c.List(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrRateLimited) {
		t.Fatal("5xx must not map to ErrRateLimited")
	}
}
