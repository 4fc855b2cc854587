package otp

import (
	"strings"
	"testing"
)

func TestNewCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := NewCode()
		if len(code) != CodeLength {
			t.Fatalf("expected %d digits, got %q", CodeLength, code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit %q in code %q", r, code)
			}
		}
		if code[0] == '0' {
			t.Fatalf("code %q starts with zero", code)
		}
	}
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage()
	if !strings.HasPrefix(msg, "Hi, Your OTP is: ") {
		t.Fatalf("unexpected message prefix: %q", msg)
	}
	if !strings.HasSuffix(msg, ". This code will expire in 10 minutes.") {
		t.Fatalf("unexpected message suffix: %q", msg)
	}
}
