// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

/*
Package restclient wraps the Veloura platform API for the admin console.

One typed method per backend operation. Every failure comes back as a
plain human-readable error: the console renders messages, it does not
branch on error codes.
*/
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const requestTimeout = 15 * time.Second

// ErrUnavailable is returned when the API cannot be reached at all.
var ErrUnavailable = errors.New("the Veloura API could not be reached, please try again")

// Meta is the pagination block on list responses.
type Meta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// envelope matches the API's uniform response wrapper.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  *Meta           `json:"meta"`
	Error string          `json:"error"`
}

// Client is the shared HTTP core behind every resource wrapper. A bearer
// token, once set by a successful login, is injected on all requests.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

/*
New creates an API client.

Parameters:
  - baseURL: API root including scheme, e.g. "http://localhost:8080"

Returns:
  - *Client: the initialized client, unauthenticated
*/
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// SetToken installs the bearer token used on subsequent requests. An
// empty token clears authentication.
func (client *Client) SetToken(token string) {
	client.mu.Lock()
	client.token = token
	client.mu.Unlock()
}

// # Request core

/*
do executes one API call and decodes the response envelope.

Parameters:
  - context: request context
  - method: HTTP method
  - path: path under the API root, e.g. "/api/v1/products"
  - body: request payload, JSON-encoded when non-nil
  - out: destination for the envelope's data field, may be nil

Returns:
  - *Meta: pagination metadata when the response carries it
  - error: human-readable failure
*/
func (client *Client) do(context context.Context, method, path string, body any, out any) (*Meta, error) {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(context, method, client.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	client.mu.RLock()
	token := client.token
	client.mu.RUnlock()
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := client.http.Do(request)
	if err != nil {
		return nil, ErrUnavailable
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, 4<<20))
	if err != nil {
		return nil, ErrUnavailable
	}

	if response.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var wrapped envelope
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		if response.StatusCode >= 400 {
			return nil, fmt.Errorf("the server returned an unexpected error (status %d)", response.StatusCode)
		}
		return nil, fmt.Errorf("the server returned an unreadable response")
	}

	if response.StatusCode >= 400 {
		if wrapped.Error != "" {
			return nil, errors.New(wrapped.Error)
		}
		return nil, fmt.Errorf("the server rejected the request (status %d)", response.StatusCode)
	}

	if out != nil && len(wrapped.Data) > 0 {
		if err := json.Unmarshal(wrapped.Data, out); err != nil {
			return nil, fmt.Errorf("the server returned an unreadable response")
		}
	}

	return wrapped.Meta, nil
}

func (client *Client) get(context context.Context, path string, out any) (*Meta, error) {
	return client.do(context, http.MethodGet, path, nil, out)
}

func (client *Client) post(context context.Context, path string, body, out any) error {
	_, err := client.do(context, http.MethodPost, path, body, out)
	return err
}

func (client *Client) patch(context context.Context, path string, body, out any) error {
	_, err := client.do(context, http.MethodPatch, path, body, out)
	return err
}

func (client *Client) delete(context context.Context, path string) error {
	_, err := client.do(context, http.MethodDelete, path, nil, nil)
	return err
}
