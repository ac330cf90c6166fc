package testutil

import (
	"net/http"
	"time"

	"consentd/pkg/requestcontext"
)

// WithUserID adds an authenticated subject to the request context, as the
// auth middleware would.
func WithUserID(req *http.Request, userID string) *http.Request {
	return req.WithContext(requestcontext.WithUserID(req.Context(), userID))
}

// WithRequestTime pins the request-scoped clock.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
