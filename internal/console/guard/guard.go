// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

/*
Package guard gates the admin console's protected routes on the session
store's role flag.

The guard is a pure function of the current session snapshot: while the
store is still loading it refuses to decide either way, once loaded it
either serves the wrapped handler or redirects to the login view.
*/
package guard

import (
	"net/http"

	"github.com/veloura/veloura/internal/console/session"
)

// retryAfterSeconds is sent while the session store is still resolving,
// so clients wait out the startup window instead of seeing a flash of
// unauthenticated content.
const retryAfterSeconds = "1"

/*
RequireAdmin wraps a handler so only an admin session reaches it.

Decision table, evaluated fresh on every request:
  - loading: 503 with Retry-After, no auth decision is made yet
  - not admin: 303 redirect to loginURL
  - admin: serve the wrapped handler unchanged

Parameters:
  - store: the session store to consult
  - loginURL: where non-admin requests are redirected

Returns:
  - func(http.Handler) http.Handler: chi-compatible middleware
*/
func RequireAdmin(store *session.Store, loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			snapshot := store.Snapshot()

			if snapshot.IsLoading {
				writer.Header().Set("Retry-After", retryAfterSeconds)
				http.Error(writer, "session store is initializing", http.StatusServiceUnavailable)
				return
			}

			if !snapshot.IsAdmin {
				http.Redirect(writer, request, loginURL, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
