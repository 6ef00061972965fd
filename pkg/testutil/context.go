package testutil

import (
	"context"
	"net/http"

	id "github.com/pewpola/dao-condominium/pkg/domain"
	"github.com/pewpola/dao-condominium/pkg/requestcontext"
)

// WithCaller adds a caller identity to the request context.
// This simulates what the auth middleware would do for authenticated requests.
// If the identity does not parse, it will not be added to the context.
func WithCaller(req *http.Request, identity string) *http.Request {
	if caller, err := id.ParseIdentity(identity); err == nil {
		return req.WithContext(requestcontext.WithCaller(req.Context(), caller))
	}
	return req
}

// WithRequestID adds a request ID to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
