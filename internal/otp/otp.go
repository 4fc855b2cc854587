// Package otp generates one-time-passcode message bodies.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeLength is the number of digits in a generated passcode.
const CodeLength = 6

// NewCode returns a random six-digit passcode as a string. The first digit
// is never zero so the code always displays at full length.
func NewCode() string {
	// 100000..999999
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken.
		panic(fmt.Sprintf("otp: read random: %v", err))
	}
	return fmt.Sprintf("%d", n.Int64()+100000)
}

// NewMessage wraps a fresh passcode in the standard message text.
func NewMessage() string {
	return fmt.Sprintf("Hi, Your OTP is: %s. This code will expire in 10 minutes.", NewCode())
}
