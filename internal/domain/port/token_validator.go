// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"
	"net/http"

	"github.com/openlms/lti-ags-service/pkg/scope"
)

// TokenValidator validates the access token of an inbound request and
// extracts the granted AGS scopes. A validation failure is an
// authentication fault (errors.Authentication), distinct from the
// authorization fault the scope voter produces.
type TokenValidator interface {
	Validate(ctx context.Context, r *http.Request) ([]scope.Scope, error)
}
