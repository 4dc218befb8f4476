// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

// Package handler implements the server side of the AGS wire contract.
// Every handler runs the same ordered pipeline and short-circuits at the
// first failure: method check, media type check, token validation, scope
// check, then the repository call.
package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/openlms/lti-ags-service/internal/domain/port"
	"github.com/openlms/lti-ags-service/pkg/constants"
	"github.com/openlms/lti-ags-service/pkg/errors"
	"github.com/openlms/lti-ags-service/pkg/paging"
	"github.com/openlms/lti-ags-service/pkg/scope"
)

// Dispatch routes one URL pattern to per-method handlers. An unmapped
// method yields a 405 whose body enumerates the accepted methods.
func Dispatch(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for method, h := range routes {
			if strings.EqualFold(r.Method, method) {
				h.ServeHTTP(w, r)
				return
			}
		}

		methods := make([]string, 0, len(routes))
		for method := range routes {
			methods = append(methods, method)
		}
		sort.Strings(methods)

		w.Header().Set("Allow", strings.Join(methods, ", "))
		writeError(w, http.StatusMethodNotAllowed,
			fmt.Sprintf("method %s not allowed, accepted methods: %s", r.Method, strings.Join(methods, ", ")))
	})
}

// checkMethod enforces a handler's allowed-method set, case-insensitively.
func checkMethod(w http.ResponseWriter, r *http.Request, allowed ...string) bool {
	for _, method := range allowed {
		if strings.EqualFold(r.Method, method) {
			return true
		}
	}

	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed,
		fmt.Sprintf("method %s not allowed, accepted methods: %s", r.Method, strings.Join(allowed, ", ")))
	return false
}

// checkContentType enforces the fixed media type of a request payload.
func checkContentType(w http.ResponseWriter, r *http.Request, mediaType constants.MediaType) bool {
	contentType := r.Header.Get(constants.ContentTypeHeader)
	if mediaTypeMatches(contentType, mediaType) {
		return true
	}
	writeError(w, http.StatusNotAcceptable,
		fmt.Sprintf("content type %q not acceptable, expected %s", contentType, mediaType))
	return false
}

// checkAccept enforces the fixed media type of a read operation. An
// absent Accept header and the catch-all are treated as acceptable.
func checkAccept(w http.ResponseWriter, r *http.Request, mediaType constants.MediaType) bool {
	accept := r.Header.Get(constants.AcceptHeader)
	if accept == "" || strings.Contains(accept, "*/*") || mediaTypeMatches(accept, mediaType) {
		return true
	}
	writeError(w, http.StatusNotAcceptable,
		fmt.Sprintf("accept header %q not acceptable, expected %s", accept, mediaType))
	return false
}

func mediaTypeMatches(header string, mediaType constants.MediaType) bool {
	value, _, _ := strings.Cut(header, ";")
	return strings.EqualFold(strings.TrimSpace(value), mediaType.String())
}

// authorize validates the bearer token and then asks the scope voter
// whether the operation is permitted. An invalid token is an
// authentication fault (401); a valid token without the needed scope is
// an authorization fault (403).
func authorize(w http.ResponseWriter, r *http.Request, validator port.TokenValidator, allowed func([]scope.Scope) bool, required string) bool {
	granted, err := validator.Validate(r.Context(), r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return false
	}

	if !allowed(granted) {
		writeError(w, http.StatusForbidden, "only allowed for scope "+required)
		return false
	}

	return true
}

// requestURL reconstructs the full inbound request URL, query included.
// The pagination protocol rewrites this URL for the next-page link.
func requestURL(r *http.Request) string {
	u := *r.URL
	u.Scheme = "http"
	if r.TLS != nil {
		u.Scheme = "https"
	}
	u.Host = r.Host
	return u.String()
}

// resourceBaseURL is requestURL without query and fragment; resource
// identifiers are composed from it.
func resourceBaseURL(r *http.Request) string {
	u := *r.URL
	u.Scheme = "http"
	if r.TLS != nil {
		u.Scheme = "https"
	}
	u.Host = r.Host
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// setNextLink emits the Link header for a collection response when the
// producer reported a further page. No header is written otherwise.
func setNextLink(w http.ResponseWriter, r *http.Request, hasNext bool, cursor paging.Cursor) error {
	if !hasNext {
		return nil
	}

	nextURL, err := paging.NextPageURL(requestURL(r), cursor)
	if err != nil {
		return err
	}

	w.Header().Set(constants.LinkHeader, paging.FormatNextLink(nextURL))
	return nil
}

// writeBody emits a serialized payload with its media type and length.
func writeBody(w http.ResponseWriter, status int, mediaType constants.MediaType, body []byte) {
	w.Header().Set(constants.ContentTypeHeader, mediaType.String())
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeError emits a plain-text failure body.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set(constants.ContentTypeHeader, "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(message)))
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// respondRepositoryError maps a repository failure onto the uniform
// response shape. Unexpected causes become a safe 500 while the real
// error goes to the log.
func respondRepositoryError(r *http.Request, w http.ResponseWriter, err error) {
	switch err.(type) {
	case errors.NotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Validation:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
