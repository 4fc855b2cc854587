package phone

import "testing"

func TestNormalize(t *testing.T) {
	n := NewNormalizer("91")

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already international", "+919876543210", "+919876543210"},
		{"plus passes through unchanged", "+1 (555) 010-0000", "+1 (555) 010-0000"},
		{"leading zero stripped", "09876543210", "+919876543210"},
		{"multiple leading zeros stripped", "009876543210", "+919876543210"},
		{"country code already present", "919876543210", "+919876543210"},
		{"bare subscriber number", "9876543210", "+919876543210"},
		{"surrounding whitespace trimmed", "  09876543210 ", "+919876543210"},
		{"malformed input passes through best-effort", "abc", "+91abc"},
		{"empty input", "", "+91"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := n.Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer("91")

	inputs := []string{"09876543210", "9876543210", "919876543210", "+919876543210", "0091987", "x"}
	for _, in := range inputs {
		once := n.Normalize(in)
		twice := n.Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNewNormalizer_DefaultCode(t *testing.T) {
	n := NewNormalizer("")
	if got := n.Normalize("9876543210"); got != "+919876543210" {
		t.Fatalf("expected default country code 91, got %q", got)
	}
}
