// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func TestParseCursor(t *testing.T) {
	tests := []struct {
		name        string
		requestURL  string
		expected    Cursor
		expectError bool
	}{
		{
			name:       "both parameters present",
			requestURL: "https://h/line-items?limit=1&offset=1",
			expected:   Cursor{Limit: intPtr(1), Offset: intPtr(1)},
		},
		{
			name:       "absent parameters stay nil",
			requestURL: "https://h/line-items?tag=quiz",
			expected:   Cursor{},
		},
		{
			name:       "explicit zero limit is kept distinct from absent",
			requestURL: "https://h/line-items?limit=0",
			expected:   Cursor{Limit: intPtr(0)},
		},
		{
			name:        "negative offset is rejected",
			requestURL:  "https://h/line-items?offset=-1",
			expectError: true,
		},
		{
			name:        "non-numeric limit is rejected",
			requestURL:  "https://h/line-items?limit=ten",
			expectError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCursor(tc.requestURL)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestNextOffset(t *testing.T) {
	assert.Equal(t, 2, Cursor{Limit: intPtr(1), Offset: intPtr(1)}.NextOffset())
	assert.Equal(t, 5, Cursor{Limit: intPtr(5)}.NextOffset())
	assert.Equal(t, 3, Cursor{Offset: intPtr(3)}.NextOffset())
	assert.Equal(t, 0, Cursor{}.NextOffset())
	// A zero limit yields the same offset again; callers flag this case.
	assert.Equal(t, 4, Cursor{Limit: intPtr(0), Offset: intPtr(4)}.NextOffset())
}

func TestNextPageURL(t *testing.T) {
	tests := []struct {
		name       string
		requestURL string
		cursor     Cursor
		expected   string
	}{
		{
			name:       "offset is rewritten in place",
			requestURL: "https://h/ctx/line-items?limit=1&offset=1",
			cursor:     Cursor{Limit: intPtr(1), Offset: intPtr(1)},
			expected:   "https://h/ctx/line-items?limit=1&offset=2",
		},
		{
			name:       "missing offset is appended",
			requestURL: "https://h/ctx/line-items?limit=5",
			cursor:     Cursor{Limit: intPtr(5)},
			expected:   "https://h/ctx/line-items?limit=5&offset=5",
		},
		{
			name:       "other query parameters and fragment are echoed",
			requestURL: "https://h/ctx/line-items?tag=quiz&limit=2&offset=4#top",
			cursor:     Cursor{Limit: intPtr(2), Offset: intPtr(4)},
			expected:   "https://h/ctx/line-items?tag=quiz&limit=2&offset=6#top",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextPageURL(tc.requestURL, tc.cursor)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFormatNextLink(t *testing.T) {
	assert.Equal(t,
		`<https://h/line-items?limit=1&offset=2>; rel="next"`,
		FormatNextLink("https://h/line-items?limit=1&offset=2"),
	)
}

func TestRelationLinkURL(t *testing.T) {
	tests := []struct {
		name      string
		linkValue string
		expected  string
		present   bool
	}{
		{
			name:      "canonical header value",
			linkValue: `<http://example.com/x>; rel="next"`,
			expected:  "http://example.com/x",
			present:   true,
		},
		{
			name:      "leading whitespace",
			linkValue: ` <http://example.com/x>; rel="next"`,
			expected:  "http://example.com/x",
			present:   true,
		},
		{
			name:      "whitespace before the separator",
			linkValue: `<http://example.com/x> ; rel="next"`,
			expected:  "http://example.com/x",
			present:   true,
		},
		{
			name:      "bare URL without relation suffix",
			linkValue: `<http://example.com/x>`,
			expected:  "http://example.com/x",
			present:   true,
		},
		{
			name:      "empty value reports absent",
			linkValue: "",
			present:   false,
		},
		{
			name:      "missing closing bracket reports absent",
			linkValue: `<http://example.com/x; rel="next"`,
			present:   false,
		},
		{
			name:      "no angle brackets reports absent",
			linkValue: `http://example.com/x; rel="next"`,
			present:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := RelationLinkURL(tc.linkValue)
			assert.Equal(t, tc.present, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}
