// Package phone normalizes operator-entered phone numbers into a canonical
// international form for dialing and display.
package phone

import "strings"

// DefaultCountryCode is used when no country code is configured.
const DefaultCountryCode = "91"

// Normalizer maps raw contact input to a single canonical form: a leading
// "+", a country calling code, then the subscriber digits.
type Normalizer struct {
	countryCode string
}

// NewNormalizer creates a normalizer with the given default country calling
// code (digits only, no "+"). An empty code falls back to the default.
func NewNormalizer(countryCode string) Normalizer {
	countryCode = strings.TrimSpace(countryCode)
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	return Normalizer{countryCode: countryCode}
}

// Normalize converts a raw number into international form. Input that
// already carries a "+" prefix is passed through unchanged. Otherwise
// leading zeros are stripped, the default country code is prepended unless
// the digits already start with it, and a "+" is prefixed.
//
// Normalize is pure and total: malformed input is passed through
// best-effort rather than rejected, and the function is idempotent once a
// number is in international form.
func (n Normalizer) Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "+") {
		return raw
	}

	s := strings.TrimLeft(raw, "0")
	if !strings.HasPrefix(s, n.countryCode) {
		s = n.countryCode + s
	}
	return "+" + s
}
