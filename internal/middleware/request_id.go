// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

// Package middleware holds the HTTP middleware shared by every route.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/openlms/lti-ags-service/pkg/constants"
	"github.com/openlms/lti-ags-service/pkg/log"
)

type requestIDKey struct{}

// RequestID returns the request ID carried by the context, if any.
func RequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return requestID
	}
	return ""
}

// RequestIDMiddleware creates a middleware that adds a request ID to the context
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Try to get request ID from header first
			requestID := r.Header.Get(constants.RequestIDHeader)

			// If no request ID in header, generate a new one
			if requestID == "" {
				requestID = uuid.New().String()
			}

			// Add request ID to response header
			w.Header().Set(constants.RequestIDHeader, requestID)

			// Add request ID to context
			ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)

			// Attach the request ID to the context-aware logger so every
			// log line for this request carries it.
			ctx = log.AppendCtx(ctx, slog.String(constants.RequestIDHeader, requestID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
