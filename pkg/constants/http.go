// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package constants

const (
	// RequestIDHeader is the header name for the request ID
	RequestIDHeader = "X-REQUEST-ID"

	// LinkHeader carries the next-page relation link on collection responses.
	LinkHeader = "Link"

	// ContentTypeHeader names the media type of a request or response body.
	ContentTypeHeader = "Content-Type"

	// AcceptHeader names the media type a read operation expects back.
	AcceptHeader = "Accept"

	// AuthorizationHeader carries the bearer access token.
	AuthorizationHeader = "Authorization"
)
