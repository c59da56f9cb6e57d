package model

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const tokenPrefix = "domain-verify-"

// NewVerificationToken produces the secret a domain owner must publish as a
// TXT record to prove control. 16 bytes of cryptographic randomness,
// hex-encoded, with a stable prefix so the record is recognizable when
// debugging a customer's zone.
func NewVerificationToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate verification token: %w", err)
	}
	return tokenPrefix + hex.EncodeToString(b), nil
}
