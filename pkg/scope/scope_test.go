// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionsFor(t *testing.T) {
	tests := []struct {
		name     string
		granted  []Scope
		expected Permissions
	}{
		{
			name:     "empty set grants nothing",
			granted:  nil,
			expected: Permissions{},
		},
		{
			name:    "score scope only grants score write",
			granted: []Scope{Score},
			expected: Permissions{
				CanWriteScore: true,
			},
		},
		{
			name:    "lineitem grants read and write of line items",
			granted: []Scope{LineItem},
			expected: Permissions{
				CanReadLineItem:  true,
				CanWriteLineItem: true,
			},
		},
		{
			name:    "lineitem.readonly grants read only",
			granted: []Scope{LineItemReadOnly},
			expected: Permissions{
				CanReadLineItem: true,
			},
		},
		{
			name:    "result.readonly grants result read only",
			granted: []Scope{ResultReadOnly},
			expected: Permissions{
				CanReadResult: true,
			},
		},
		{
			name:    "full set grants everything",
			granted: []Scope{LineItem, LineItemReadOnly, Score, ResultReadOnly},
			expected: Permissions{
				CanReadLineItem:  true,
				CanWriteLineItem: true,
				CanWriteScore:    true,
				CanReadResult:    true,
			},
		},
		{
			name:     "unknown scopes grant nothing",
			granted:  []Scope{"https://purl.imsglobal.org/spec/lti-nrps/scope/contextmembership.readonly"},
			expected: Permissions{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PermissionsFor(tc.granted))
		})
	}
}

func TestPredicatesMatchRecord(t *testing.T) {
	granted := []Scope{LineItemReadOnly, Score}

	perms := PermissionsFor(granted)

	assert.Equal(t, perms.CanReadLineItem, CanReadLineItem(granted))
	assert.Equal(t, perms.CanWriteLineItem, CanWriteLineItem(granted))
	assert.Equal(t, perms.CanWriteScore, CanWriteScore(granted))
	assert.Equal(t, perms.CanReadResult, CanReadResult(granted))
}
