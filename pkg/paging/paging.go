// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

// Package paging implements the AGS pagination cursor protocol: a
// limit/offset pair read from a request URL, advanced by one page, and
// carried between peers inside a `Link: <url>; rel="next"` header.
package paging

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/openlms/lti-ags-service/pkg/constants"
	"github.com/openlms/lti-ags-service/pkg/errors"
	"github.com/openlms/lti-ags-service/pkg/urlbuilder"
)

// Cursor is the limit/offset pair of a collection request. Both fields
// are optional: a nil Limit means no page cap, a nil Offset means zero.
// An explicit limit of zero means a zero-item page.
type Cursor struct {
	Limit  *int
	Offset *int
}

// ParseCursor reads the limit and offset query parameters from a request
// URL. Negative or non-numeric values are rejected.
func ParseCursor(requestURL string) (Cursor, error) {
	u, err := url.Parse(requestURL)
	if err != nil {
		return Cursor{}, errors.NewValidation(fmt.Sprintf("malformed URL %q", requestURL), err)
	}

	return ParseCursorValues(u.Query())
}

// ParseCursorValues reads the cursor from already-parsed query values.
func ParseCursorValues(values url.Values) (Cursor, error) {
	var cursor Cursor

	if raw := values.Get(constants.QueryLimit); raw != "" {
		limit, err := parseNonNegative(constants.QueryLimit, raw)
		if err != nil {
			return Cursor{}, err
		}
		cursor.Limit = &limit
	}

	if raw := values.Get(constants.QueryOffset); raw != "" {
		offset, err := parseNonNegative(constants.QueryOffset, raw)
		if err != nil {
			return Cursor{}, err
		}
		cursor.Offset = &offset
	}

	return cursor, nil
}

// NextOffset computes the offset of the following page: limit plus
// offset, each treated as zero when absent.
func (c Cursor) NextOffset() int {
	next := 0
	if c.Limit != nil {
		next += *c.Limit
	}
	if c.Offset != nil {
		next += *c.Offset
	}
	return next
}

// NextPageURL rewrites only the offset query parameter of requestURL to
// the cursor's next offset. Every other component of the URL is echoed
// unchanged.
func NextPageURL(requestURL string, c Cursor) (string, error) {
	return urlbuilder.Build(requestURL, "", urlbuilder.Param{
		Key:   constants.QueryOffset,
		Value: strconv.Itoa(c.NextOffset()),
	})
}

// FormatNextLink renders the Link header value advertising nextURL as
// the next page of the collection.
func FormatNextLink(nextURL string) string {
	return fmt.Sprintf("<%s>; rel=\"next\"", nextURL)
}

// RelationLinkURL extracts the bare URL from a Link header value. The
// parse is permissive: it takes everything between the first "<" and the
// first following ">", tolerating whitespace around the angle brackets
// and a missing "; rel=..." suffix. It returns false when no <...>
// pattern is present.
func RelationLinkURL(linkValue string) (string, bool) {
	open := strings.Index(linkValue, "<")
	if open == -1 {
		return "", false
	}
	end := strings.Index(linkValue[open+1:], ">")
	if end == -1 {
		return "", false
	}
	return strings.TrimSpace(linkValue[open+1 : open+1+end]), true
}

func parseNonNegative(name, raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidation(fmt.Sprintf("invalid %s parameter %q", name, raw), err)
	}
	if value < 0 {
		return 0, errors.NewValidation(fmt.Sprintf("%s parameter must not be negative, got %d", name, value))
	}
	return value, nil
}
