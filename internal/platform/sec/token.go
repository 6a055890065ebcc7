// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a URL-safe random token of the given byte length.
func GenerateSecureToken(length int) (string, error) {
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// GenerateOTP returns a zero-padded numeric one-time code of the given digit
// count, sourced from crypto/rand.
//
// # Usage
//
// Used by the password-reset flow; the code is short-lived and attempt-capped
// on the Redis side, which is what makes the small keyspace acceptable.
func GenerateOTP(digits int) (string, error) {
	var raw [8]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", fmt.Errorf("sec: failed to generate OTP: %w", err)
	}

	modulus := uint64(1)
	for i := 0; i < digits; i++ {
		modulus *= 10
	}

	code := binary.BigEndian.Uint64(raw[:]) % modulus
	return fmt.Sprintf("%0*d", digits, code), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// Refresh tokens are stored hashed so a database leak does not yield
// usable session credentials.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
