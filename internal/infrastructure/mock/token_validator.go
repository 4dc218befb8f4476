// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

// Package mock provides in-process fakes shared by tests and local
// development wiring.
package mock

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/openlms/lti-ags-service/internal/domain/port"
	"github.com/openlms/lti-ags-service/pkg/scope"
)

// TokenValidator is a fake access-token validator granting a fixed
// scope set, or failing with a fixed error.
type TokenValidator struct {
	Scopes []scope.Scope
	Err    error
}

// Validate returns the configured scope set or error, ignoring the
// request entirely.
func (v *TokenValidator) Validate(ctx context.Context, r *http.Request) ([]scope.Scope, error) {
	if v.Err != nil {
		return nil, v.Err
	}
	return v.Scopes, nil
}

// NewTokenValidator creates a validator granting the given scopes.
func NewTokenValidator(scopes ...scope.Scope) *TokenValidator {
	return &TokenValidator{Scopes: scopes}
}

// NewTokenValidatorFromEnv creates a validator granting the
// space-separated scope URNs in JWT_AUTH_DISABLED_MOCK_SCOPES, used to
// run the service without a JWKS endpoint.
func NewTokenValidatorFromEnv() port.TokenValidator {
	var scopes []scope.Scope
	for _, raw := range strings.Fields(os.Getenv("JWT_AUTH_DISABLED_MOCK_SCOPES")) {
		scopes = append(scopes, scope.Scope(raw))
	}
	return &TokenValidator{Scopes: scopes}
}
