// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package restclient

import (
	"context"
	"net/http"

	"github.com/veloura/veloura/internal/console/session"
)

// Credentials is a login or registration payload.
type Credentials struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// loginData is the data block of a successful login response.
type loginData struct {
	AccessToken string       `json:"access_token"`
	User        session.User `json:"user"`
}

/*
Login authenticates against the backend and installs the returned access
token on the client.

Parameters:
  - context: request context
  - email: account email
  - password: account password

Returns:
  - session.User: the backend's user record, copied verbatim
  - error: authentication or transport failure
*/
func (client *Client) Login(context context.Context, email, password string) (session.User, error) {
	var data loginData
	err := client.post(context, "/api/v1/auth/login", Credentials{Email: email, Password: password}, &data)
	if err != nil {
		return session.User{}, err
	}
	client.SetToken(data.AccessToken)
	return data.User, nil
}

// Register creates a new account. The caller still logs in afterwards.
func (client *Client) Register(context context.Context, credentials Credentials) (session.User, error) {
	var user session.User
	err := client.post(context, "/api/v1/auth/register", credentials, &user)
	return user, err
}

// Logout invalidates the backend session and drops the local token. The
// token is dropped even when the backend call fails, a console stuck
// logged in is worse than a lingering backend session.
func (client *Client) Logout(context context.Context) error {
	err := client.post(context, "/api/v1/auth/logout", nil, nil)
	client.SetToken("")
	return err
}

// # Password reset flow

// SendResetCode asks the backend to mail a one-time code.
func (client *Client) SendResetCode(context context.Context, email string) error {
	body := map[string]string{"email": email}
	return client.post(context, "/api/v1/auth/password/forgot", body, nil)
}

// VerifyResetCode exchanges the mailed code for a reset ticket.
func (client *Client) VerifyResetCode(context context.Context, email, code string) (string, error) {
	body := map[string]string{"email": email, "code": code}
	var data struct {
		Ticket string `json:"ticket"`
	}
	err := client.post(context, "/api/v1/auth/password/verify-code", body, &data)
	return data.Ticket, err
}

// ResetPassword sets a new password using a verified ticket.
func (client *Client) ResetPassword(context context.Context, ticket, password string) error {
	body := map[string]string{"ticket": ticket, "password": password}
	return client.post(context, "/api/v1/auth/password/reset", body, nil)
}

// # Profile

// ProfileUpdate is a partial profile edit. Nil fields are left unchanged.
type ProfileUpdate struct {
	DisplayName *string `json:"display_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
}

// UpdateProfile edits the authenticated user's own profile.
func (client *Client) UpdateProfile(context context.Context, update ProfileUpdate) (session.User, error) {
	var user session.User
	_, err := client.do(context, http.MethodPatch, "/api/v1/me", update, &user)
	return user, err
}
