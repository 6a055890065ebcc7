// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a session/refresh token remains valid.
	// Long-lived (30 days) to provide a good user experience.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32

	// ResetOTPDigits is the length of the numeric password reset code.
	ResetOTPDigits = 6

	// ResetOTPTTL is the duration a password reset code remains usable.
	// Short-lived (10 minutes) because the code travels over email.
	ResetOTPTTL = 10 * time.Minute

	// ResetOTPMaxAttempts caps failed verification attempts per code before
	// it is burned, which keeps the 6-digit keyspace safe from brute force.
	ResetOTPMaxAttempts = 5

	// ResetTicketTTL is the duration a verified reset ticket remains valid.
	// The ticket bridges the gap between code verification and the actual
	// password change form.
	ResetTicketTTL = 15 * time.Minute

	// ResetTicketLength is the byte length of the random reset ticket.
	ResetTicketLength = 32
)
