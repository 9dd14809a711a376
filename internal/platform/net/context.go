// Package net holds transport-neutral request helpers
package net

import (
	"context"

	"robots/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// HeaderRequestID is the header used to accept and echo request ids
const HeaderRequestID = "X-Request-ID"

// WithRequest annotates ctx with the request id for chi and for request scoped logs
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	// chi RequestIDKey so chimw.GetReqID keeps working for chi middlewares
	ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	return logger.WithRequest(ctx, reqID)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }
