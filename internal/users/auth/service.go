// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

/*
Package auth implements the core identity and access management (IAM) system.

It handles everything from shopper registration and secure password hashing to
session lifecycle management via JWT and Refresh tokens, plus the OTP-based
password recovery flow (codes stored in Redis).

Architecture:

  - Service: Orchestrates business logic (Register, Login, OTP recovery).
  - Repository: Abstracted interfaces for Postgres (Users, Sessions) and Redis (OTP).
  - Security: Leverages Bcrypt hashing and HMAC-signed JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/veloura/veloura/internal/platform/apperr"
	"github.com/veloura/veloura/internal/platform/sec"
	"github.com/veloura/veloura/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - email: The email of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID int64, email, role string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	otpRepository     OTPRepository
	tokenProvider     TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	otpRepo OTPRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		otpRepository:     otpRepo,
		tokenProvider:     tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new shopper.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Phone       string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Deep-enrollment of a new shopper, handling password hashing and
default role assignment.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. The ID is assigned by the database.
	user := &User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
		Phone:        input.Phone,
		Role:         sec.RoleCustomer,
		Status:       StatusActive,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues security tokens.

Description: Verifies identity, performs constant-time password comparison,
and initializes a new session with rotated security tokens.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: Unauthorized, Forbidden (locked account), or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	// Look up the account by email
	user, err := service.userRepository.FindByEmail(context, input.Email)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Locked accounts keep their password valid but cannot establish sessions
	if user.Status == StatusLocked {
		return nil, apperr.Forbidden("Account is locked")
	}

	// Generate short-lived Access Token
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Generate long-lived Refresh Token
	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Create and persist the tracking session
	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuidv7.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: input.UserAgent,
		IPAddress: input.IPAddress,
		ExpiresAt: expiresAt,
		IsRevoked: false,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

/*
Logout permanently revokes the user's active session.

Description: Ensures that a tracked refresh token can never be used again.
Logging out an unknown or already revoked token succeeds silently.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {

	// Hash the refresh token
	tokenHash := sec.HashToken(refreshToken)

	// Find the session by token hash
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)

	// If (err != nil) session is already gone or invalid, we consider logout successful (idempotent operation).
	if err != nil {
		return nil
	}

	// If (err == nil) Revoke the session
	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
RefreshSession implements the Refresh Token Rotation mechanism.

Description: Verifies the existing refresh token, revokes it to prevent reuse
(replay attack mitigation), and issues a fresh pair of rotated tokens.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: New session credentials
  - err: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {

	// Hash the incoming refresh token to look it up
	tokenHash := sec.HashToken(refreshToken)
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)

	// If (err != nil) the token is either expired, already revoked, or completely invalid.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: Revoke the old session to prevent replay attacks
	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	// Fetch the user associated with this session
	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	// Locked accounts cannot rotate their way back in
	if user.Status == StatusLocked {
		return nil, apperr.Forbidden("Account is locked")
	}

	// Generate a fresh Access Token
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	// Generate a fresh Refresh Token for the rotation
	newRefreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_secure_token_failed: %w", err)
	}

	// Persist the new session
	expiresAt := time.Now().Add(RefreshTokenTTL)
	newSession := &Session{
		ID:        uuidv7.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(newRefreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
		IsRevoked: false,
	}

	if err := service.sessionRepository.Create(context, newSession); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          newRefreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Password Recovery

/*
RequestPasswordOTP initiates the forgot-password flow.

Description: Generates a numeric one-time code and stores its hash in Redis
keyed by the account email. The code itself is handed to the mailer.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: The generated code (empty when the email is unknown)
  - err: Generation errors
*/
func (service *Service) RequestPasswordOTP(context context.Context, email string) (string, error) {
	// Look up user.
	// NOTE: We don't return NOT_FOUND if the email doesn't exist to prevent user enumeration.
	_, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return "", nil
	}

	// Generate the numeric one-time code
	code, err := sec.GenerateOTP(ResetOTPDigits)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_otp_failed: %w", err)
	}

	// Save the hashed code to Redis. Replaces any earlier code for this email.
	if err := service.otpRepository.SetCode(context, email, sec.HashToken(code), ResetOTPTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_otp_failed: %w", err)
	}

	// TODO: Hand the code to the transactional mailer once it is deployed
	return code, nil
}

/*
VerifyResetCode exchanges a valid one-time code for a reset ticket.

Description: Compares the submitted code against the stored hash. Wrong
guesses are counted and the code burns out after ResetOTPMaxAttempts. A
successful match consumes the code and issues a short-lived reset ticket.

Parameters:
  - context: context.Context
  - email: string
  - code: string

Returns:
  - string: Reset ticket usable with [Service.ResetPassword]
  - err: Unauthorized on wrong or burned codes
*/
func (service *Service) VerifyResetCode(context context.Context, email, code string) (string, error) {

	// Retrieve the stored code hash
	storedHash, err := service.otpRepository.GetCode(context, email)
	if err != nil {
		return "", apperr.Unauthorized("Reset code is invalid or expired")
	}

	// Constant-time comparison of the submitted code's hash
	if subtle.ConstantTimeCompare([]byte(sec.HashToken(code)), []byte(storedHash)) != 1 {
		attempts, _ := service.otpRepository.IncrementAttempts(context, email)
		if attempts >= ResetOTPMaxAttempts {
			_ = service.otpRepository.DeleteCode(context, email)
		}
		return "", apperr.Unauthorized("Reset code is invalid or expired")
	}

	// The code matched. Resolve the account and consume the code.
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return "", apperr.Unauthorized("Reset code is invalid or expired")
	}
	_ = service.otpRepository.DeleteCode(context, email)

	// Issue the reset ticket that authorizes the actual password change
	ticket, err := sec.GenerateSecureToken(ResetTicketLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_ticket_failed: %w", err)
	}

	if err := service.otpRepository.SetTicket(context, ticket, user.ID, ResetTicketTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_ticket_failed: %w", err)
	}

	return ticket, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the reset ticket, hashes the new password, updates the
DB, and revokes all active sessions for security cleanup.

Parameters:
  - context: context.Context
  - ticket: string
  - newPassword: string

Returns:
  - err: Validation or update failures
*/
func (service *Service) ResetPassword(context context.Context, ticket, newPassword string) error {

	// Resolve the userID bound to the reset ticket
	userID, err := service.otpRepository.GetTicket(context, ticket)
	if err != nil {
		return apperr.Unauthorized("Reset ticket is invalid or expired")
	}

	// Hash the new password securely
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	// Update the user's password in persistent storage
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	// Security Cleanup: Revoke EVERY active session for this user
	_ = service.sessionRepository.RevokeAll(context, userID)

	// Consume the used ticket
	_ = service.otpRepository.DeleteTicket(context, ticket)

	return nil
}

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password and then rotates all OTHER refresh sessions
to ensure high security across devices.

Parameters:
  - context: context.Context
  - userID: int64
  - currentPassword: string
  - newPassword: string
  - currentRefreshToken: string

Returns:
  - err: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID int64, currentPassword, newPassword, currentRefreshToken string) error {

	// Fetch user by ID
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	// Hash the brand new password
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	// Update the database with the new hash
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	// Security Side Effect: Revoke all other sessions to force re-login on other devices
	tokenHash := sec.HashToken(currentRefreshToken)
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)
	if err == nil {
		_ = service.sessionRepository.RevokeOthers(context, userID, session.ID)
	}

	return nil
}
