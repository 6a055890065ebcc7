// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloura/veloura/internal/platform/apperr"
	"github.com/veloura/veloura/internal/platform/sec"
)

// # Test Fakes

type fakeUserRepo struct {
	byEmail map[string]*User
	byID    map[int64]*User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*User{}, byID: map[int64]*User{}, nextID: 1}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User not found")
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User not found with this email")
}

func (r *fakeUserRepo) Create(_ context.Context, user *User) error {
	user.ID = r.nextID
	r.nextID++
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *User) error { return nil }

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID int64, newHash string) error {
	if u, ok := r.byID[userID]; ok {
		u.PasswordHash = newHash
	}
	return nil
}

func (r *fakeUserRepo) SetStatus(_ context.Context, userID int64, status AccountStatus) error {
	if u, ok := r.byID[userID]; ok {
		u.Status = status
	}
	return nil
}

func (r *fakeUserRepo) SoftDelete(_ context.Context, id int64) error { return nil }

type fakeSessionRepo struct {
	byTokenHash map[string]*Session
	revoked     map[string]bool
	revokedAll  []int64
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byTokenHash: map[string]*Session{}, revoked: map[string]bool{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *Session) error {
	r.byTokenHash[session.TokenHash] = session
	return nil
}

func (r *fakeSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*Session, error) {
	s, ok := r.byTokenHash[tokenHash]
	if !ok || r.revoked[s.ID] {
		return nil, apperr.NotFound("Session not found or expired")
	}
	return s, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, sessionID string) error {
	r.revoked[sessionID] = true
	return nil
}

func (r *fakeSessionRepo) RevokeAll(_ context.Context, userID int64) error {
	r.revokedAll = append(r.revokedAll, userID)
	for _, s := range r.byTokenHash {
		if s.UserID == userID {
			r.revoked[s.ID] = true
		}
	}
	return nil
}

func (r *fakeSessionRepo) RevokeOthers(_ context.Context, userID int64, currentSessionID string) error {
	for _, s := range r.byTokenHash {
		if s.UserID == userID && s.ID != currentSessionID {
			r.revoked[s.ID] = true
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) error { return nil }

type fakeOTPRepo struct {
	codes    map[string]string
	attempts map[string]int64
	tickets  map[string]int64
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{codes: map[string]string{}, attempts: map[string]int64{}, tickets: map[string]int64{}}
}

func (r *fakeOTPRepo) SetCode(_ context.Context, email, codeHash string, _ time.Duration) error {
	r.codes[email] = codeHash
	delete(r.attempts, email)
	return nil
}

func (r *fakeOTPRepo) GetCode(_ context.Context, email string) (string, error) {
	if h, ok := r.codes[email]; ok {
		return h, nil
	}
	return "", apperr.NotFound("Reset code is invalid or expired")
}

func (r *fakeOTPRepo) IncrementAttempts(_ context.Context, email string) (int64, error) {
	r.attempts[email]++
	return r.attempts[email], nil
}

func (r *fakeOTPRepo) DeleteCode(_ context.Context, email string) error {
	delete(r.codes, email)
	delete(r.attempts, email)
	return nil
}

func (r *fakeOTPRepo) SetTicket(_ context.Context, ticket string, userID int64, _ time.Duration) error {
	r.tickets[ticket] = userID
	return nil
}

func (r *fakeOTPRepo) GetTicket(_ context.Context, ticket string) (int64, error) {
	if id, ok := r.tickets[ticket]; ok {
		return id, nil
	}
	return 0, apperr.NotFound("Reset ticket is invalid or expired")
}

func (r *fakeOTPRepo) DeleteTicket(_ context.Context, ticket string) error {
	delete(r.tickets, ticket)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID int64, email, role string, _ time.Duration) (string, error) {
	return "signed-token", nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeSessionRepo, *fakeOTPRepo) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	otp := newFakeOTPRepo()
	return NewService(users, sessions, otp, fakeTokenProvider{}), users, sessions, otp
}

func seedUser(t *testing.T, users *fakeUserRepo, email, password string, status AccountStatus) *User {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	user := &User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  "Test Shopper",
		Role:         sec.RoleCustomer,
		Status:       status,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

// # Registration

func TestRegister(t *testing.T) {
	service, users, _, _ := newTestService()
	ctx := context.Background()

	created, err := service.Register(ctx, RegisterInput{
		Email:       "amelie@example.com",
		Password:    "correct horse",
		DisplayName: "Amelie",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, sec.RoleCustomer, created.Role)
	assert.Equal(t, StatusActive, created.Status)
	assert.NotEqual(t, "correct horse", created.PasswordHash)

	// Same email again must conflict
	_, err = service.Register(ctx, RegisterInput{
		Email:       "amelie@example.com",
		Password:    "another",
		DisplayName: "Clone",
	})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.HTTPStatus)
	assert.Len(t, users.byEmail, 1)
}

// # Login

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		password   string
		status     AccountStatus
		loginEmail string
		loginPass  string
		wantStatus int
	}{
		{
			name:       "valid credentials",
			email:      "shopper@example.com",
			password:   "secret-password",
			status:     StatusActive,
			loginEmail: "shopper@example.com",
			loginPass:  "secret-password",
			wantStatus: 0,
		},
		{
			name:       "wrong password",
			email:      "shopper@example.com",
			password:   "secret-password",
			status:     StatusActive,
			loginEmail: "shopper@example.com",
			loginPass:  "wrong",
			wantStatus: 401,
		},
		{
			name:       "unknown email",
			email:      "shopper@example.com",
			password:   "secret-password",
			status:     StatusActive,
			loginEmail: "ghost@example.com",
			loginPass:  "secret-password",
			wantStatus: 401,
		},
		{
			name:       "locked account",
			email:      "shopper@example.com",
			password:   "secret-password",
			status:     StatusLocked,
			loginEmail: "shopper@example.com",
			loginPass:  "secret-password",
			wantStatus: 403,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, users, sessions, _ := newTestService()
			seedUser(t, users, tt.email, tt.password, tt.status)

			session, err := service.Login(context.Background(), LoginInput{
				Email:    tt.loginEmail,
				Password: tt.loginPass,
			})

			if tt.wantStatus != 0 {
				require.Error(t, err)
				appErr := apperr.As(err)
				require.NotNil(t, appErr)
				assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "signed-token", session.AccessToken)
			assert.NotEmpty(t, session.RefreshToken)
			assert.Len(t, sessions.byTokenHash, 1)

			// The stored hash must not equal the raw refresh token
			_, rawStored := sessions.byTokenHash[session.RefreshToken]
			assert.False(t, rawStored)
		})
	}
}

// # Logout

func TestLogoutIsIdempotent(t *testing.T) {
	service, users, sessions, _ := newTestService()
	seedUser(t, users, "shopper@example.com", "secret-password", StatusActive)

	session, err := service.Login(context.Background(), LoginInput{
		Email:    "shopper@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	// First logout revokes the session
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Len(t, sessions.revoked, 1)

	// Second logout with the same token still succeeds
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))

	// Logging out a token that never existed also succeeds
	require.NoError(t, service.Logout(context.Background(), "never-issued"))
}

// # Session Rotation

func TestRefreshSessionRotatesTokens(t *testing.T) {
	service, users, sessions, _ := newTestService()
	seedUser(t, users, "shopper@example.com", "secret-password", StatusActive)

	first, err := service.Login(context.Background(), LoginInput{
		Email:    "shopper@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	second, err := service.RefreshSession(context.Background(), first.RefreshToken, "ua", "ip")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The old token must be unusable after rotation
	_, err = service.RefreshSession(context.Background(), first.RefreshToken, "ua", "ip")
	require.Error(t, err)

	_ = sessions
}

// # Password Recovery

func TestPasswordOTPFlow(t *testing.T) {
	service, users, sessions, otp := newTestService()
	user := seedUser(t, users, "shopper@example.com", "old-password", StatusActive)

	// Request a code
	code, err := service.RequestPasswordOTP(context.Background(), "shopper@example.com")
	require.NoError(t, err)
	require.Len(t, code, ResetOTPDigits)

	// Unknown email yields no code and no error
	ghost, err := service.RequestPasswordOTP(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, ghost)

	// Verify the code and receive a ticket
	ticket, err := service.VerifyResetCode(context.Background(), "shopper@example.com", code)
	require.NoError(t, err)
	require.NotEmpty(t, ticket)

	// The code is consumed after a successful verification
	_, err = service.VerifyResetCode(context.Background(), "shopper@example.com", code)
	require.Error(t, err)

	// Reset with the ticket
	require.NoError(t, service.ResetPassword(context.Background(), ticket, "new-password"))
	assert.Contains(t, sessions.revokedAll, user.ID)
	assert.Empty(t, otp.tickets)

	// The new password works, the old does not
	_, err = service.Login(context.Background(), LoginInput{Email: "shopper@example.com", Password: "new-password"})
	require.NoError(t, err)
	_, err = service.Login(context.Background(), LoginInput{Email: "shopper@example.com", Password: "old-password"})
	require.Error(t, err)
}

func TestVerifyResetCodeBurnsAfterMaxAttempts(t *testing.T) {
	service, users, _, otp := newTestService()
	seedUser(t, users, "shopper@example.com", "secret-password", StatusActive)

	code, err := service.RequestPasswordOTP(context.Background(), "shopper@example.com")
	require.NoError(t, err)

	// Exhaust the attempt budget with wrong guesses
	for i := 0; i < ResetOTPMaxAttempts; i++ {
		_, err := service.VerifyResetCode(context.Background(), "shopper@example.com", "000000")
		require.Error(t, err)
	}

	// The correct code no longer works because the code burned out
	_, err = service.VerifyResetCode(context.Background(), "shopper@example.com", code)
	require.Error(t, err)
	assert.Empty(t, otp.codes)
}

// # Password Change

func TestChangePassword(t *testing.T) {
	service, users, _, _ := newTestService()
	user := seedUser(t, users, "shopper@example.com", "current-pass", StatusActive)

	session, err := service.Login(context.Background(), LoginInput{
		Email:    "shopper@example.com",
		Password: "current-pass",
	})
	require.NoError(t, err)

	// Wrong current password is rejected
	err = service.ChangePassword(context.Background(), user.ID, "nope", "next-pass", session.RefreshToken)
	require.Error(t, err)

	// Correct current password succeeds
	err = service.ChangePassword(context.Background(), user.ID, "current-pass", "next-pass", session.RefreshToken)
	require.NoError(t, err)

	_, err = service.Login(context.Background(), LoginInput{Email: "shopper@example.com", Password: "next-pass"})
	require.NoError(t, err)
}
