// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// Validation represents a validation error in the application, including
// malformed URLs and unparsable request payloads.
type Validation struct {
	base
}

// Error returns the error message for Validation.
func (v Validation) Error() string {
	return v.error()
}

// NewValidation creates a new Validation error with the provided message.
func NewValidation(message string, err ...error) Validation {
	return Validation{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// NotFound represents an addressed resource that the repository does not know.
type NotFound struct {
	base
}

// Error returns the error message for NotFound.
func (nf NotFound) Error() string {
	return nf.error()
}

// NewNotFound creates a new NotFound error with the provided message.
func NewNotFound(message string, err ...error) NotFound {
	return NotFound{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Authentication represents a rejected access token: the bearer token is
// missing, expired or otherwise invalid.
type Authentication struct {
	base
}

// Error returns the error message for Authentication.
func (a Authentication) Error() string {
	return a.error()
}

// NewAuthentication creates a new Authentication error with the provided message.
func NewAuthentication(message string, err ...error) Authentication {
	return Authentication{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Authorization represents a valid token that lacks the scope required for
// the attempted operation.
type Authorization struct {
	base
}

// Error returns the error message for Authorization.
func (a Authorization) Error() string {
	return a.error()
}

// NewAuthorization creates a new Authorization error with the provided message.
func NewAuthorization(message string, err ...error) Authorization {
	return Authorization{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// MethodNotAllowed represents an HTTP method outside a handler's allowed set.
type MethodNotAllowed struct {
	base
}

// Error returns the error message for MethodNotAllowed.
func (m MethodNotAllowed) Error() string {
	return m.error()
}

// NewMethodNotAllowed creates a new MethodNotAllowed error with the provided message.
func NewMethodNotAllowed(message string, err ...error) MethodNotAllowed {
	return MethodNotAllowed{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// NotAcceptable represents a Content-Type or Accept header that does not
// match the fixed media type of the addressed resource.
type NotAcceptable struct {
	base
}

// Error returns the error message for NotAcceptable.
func (na NotAcceptable) Error() string {
	return na.error()
}

// NewNotAcceptable creates a new NotAcceptable error with the provided message.
func NewNotAcceptable(message string, err ...error) NotAcceptable {
	return NotAcceptable{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Precondition represents a client-side fault detected before any network
// call is made, such as a missing line item URL.
type Precondition struct {
	base
}

// Error returns the error message for Precondition.
func (p Precondition) Error() string {
	return p.error()
}

// NewPrecondition creates a new Precondition error with the provided message.
func NewPrecondition(message string, err ...error) Precondition {
	return Precondition{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Transport wraps any failure coming out of an injected transport or
// repository collaborator. The message names the failed operation.
type Transport struct {
	base
}

// Error returns the error message for Transport.
func (t Transport) Error() string {
	return t.error()
}

// NewTransport creates a new Transport error with the provided message.
func NewTransport(message string, err ...error) Transport {
	return Transport{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}
