// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

// Package auth validates the OAuth 2 access tokens platforms issue for
// grade services calls, backed by the platform's JWKS endpoint.
package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/openlms/lti-ags-service/pkg/constants"
	"github.com/openlms/lti-ags-service/pkg/errors"
	"github.com/openlms/lti-ags-service/pkg/scope"
)

const (
	// RS256 is the signature algorithm LTI access tokens are issued with.
	signatureAlgorithm = validator.RS256
	defaultIssuer      = "https://platform.example"
	defaultAudience    = "lti-ags-service"
	defaultJWKSURL     = "https://platform.example/.well-known/jwks"

	bearerPrefix = "Bearer "
)

// Factory for custom JWT claims target.
var customClaims = func() validator.CustomClaims {
	return &AccessTokenClaims{}
}

// AccessTokenClaims contains the extra claims parsed from an access
// token. Scope is the space-separated grade services scope URNs.
type AccessTokenClaims struct {
	Scope string `json:"scope"`
}

// Validate provides additional middleware validation of any claims
// defined in AccessTokenClaims. A token without scopes is still valid;
// it just authorizes nothing.
func (c *AccessTokenClaims) Validate(ctx context.Context) error {
	return nil
}

// Config holds the configuration parameters for access token validation.
type Config struct {
	// JWKSURL is the URL to the JSON Web Key Set endpoint.
	JWKSURL string
	// Issuer is the expected token issuer.
	Issuer string
	// Audience is the intended audience for the access token.
	Audience string
}

// JWTValidator validates bearer access tokens against the platform's
// published signing keys.
type JWTValidator struct {
	validator *validator.Validator
	config    Config
}

// NewJWTValidator creates an access token validator for the given
// platform configuration.
func NewJWTValidator(config Config) (*JWTValidator, error) {
	jwksURLStr := config.JWKSURL
	if jwksURLStr == "" {
		jwksURLStr = defaultJWKSURL
	}
	issuerStr := config.Issuer
	if issuerStr == "" {
		issuerStr = defaultIssuer
	}
	audience := config.Audience
	if audience == "" {
		audience = defaultAudience
	}

	jwksURL, err := url.Parse(jwksURLStr)
	if err != nil {
		return nil, errors.NewValidation("invalid JWKS URL", err)
	}
	issuer, err := url.Parse(issuerStr)
	if err != nil {
		return nil, errors.NewValidation("invalid issuer URL", err)
	}
	provider := jwks.NewCachingProvider(issuer, 5*time.Minute, jwks.WithCustomJWKSURI(jwksURL))

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		signatureAlgorithm,
		issuer.String(),
		[]string{audience},
		validator.WithCustomClaims(customClaims),
		validator.WithAllowedClockSkew(5*time.Second),
	)
	if err != nil {
		return nil, errors.NewUnexpected("failed to set up the access token validator", err)
	}

	return &JWTValidator{
		validator: jwtValidator,
		config:    config,
	}, nil
}

// Validate extracts the bearer token from the request and returns the
// scope URNs the token grants.
func (j *JWTValidator) Validate(ctx context.Context, r *http.Request) ([]scope.Scope, error) {
	header := r.Header.Get(constants.AuthorizationHeader)
	if header == "" {
		return nil, errors.NewAuthentication("missing bearer access token")
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, errors.NewAuthentication("authorization header is not a bearer token")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))

	parsedJWT, err := j.validator.ValidateToken(ctx, token)
	if err != nil {
		// Drop nested causes so key material or upstream endpoints never
		// leak into the response body.
		message := err.Error()
		if idx := strings.Index(message, ":"); idx != -1 {
			message = message[:idx]
		}
		return nil, errors.NewAuthentication(message)
	}

	claims, ok := parsedJWT.(*validator.ValidatedClaims)
	if !ok {
		// This should never happen.
		return nil, errors.NewAuthentication("failed to get validated authorization claims")
	}
	tokenClaims, ok := claims.CustomClaims.(*AccessTokenClaims)
	if !ok {
		// This should never happen.
		return nil, errors.NewAuthentication("failed to get custom authorization claims")
	}

	var scopes []scope.Scope
	for _, raw := range strings.Fields(tokenClaims.Scope) {
		scopes = append(scopes, scope.Scope(raw))
	}
	return scopes, nil
}
