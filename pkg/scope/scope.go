// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

// Package scope models the OAuth2 scope vocabulary of the AGS
// specification and derives operation capabilities from a granted set.
package scope

// Scope is an AGS authorization scope URN.
type Scope string

const (
	// LineItem grants full read/write access to line items.
	LineItem Scope = "https://purl.imsglobal.org/spec/lti-ags/scope/lineitem"
	// LineItemReadOnly grants read-only access to line items.
	LineItemReadOnly Scope = "https://purl.imsglobal.org/spec/lti-ags/scope/lineitem.readonly"
	// Score grants the right to publish scores.
	Score Scope = "https://purl.imsglobal.org/spec/lti-ags/scope/score"
	// ResultReadOnly grants read access to results.
	ResultReadOnly Scope = "https://purl.imsglobal.org/spec/lti-ags/scope/result.readonly"
)

// String returns the scope URN.
func (s Scope) String() string {
	return string(s)
}

// Permissions is the capability record derived from a granted scope set.
// The four capabilities are independent; no scope implies another.
type Permissions struct {
	CanReadLineItem  bool
	CanWriteLineItem bool
	CanWriteScore    bool
	CanReadResult    bool
}

// PermissionsFor classifies a granted scope set into a capability record.
// It is total: any input, including an empty set, yields a valid record.
func PermissionsFor(granted []Scope) Permissions {
	return Permissions{
		CanReadLineItem:  CanReadLineItem(granted),
		CanWriteLineItem: CanWriteLineItem(granted),
		CanWriteScore:    CanWriteScore(granted),
		CanReadResult:    CanReadResult(granted),
	}
}

// CanReadLineItem reports whether the granted set allows reading line items.
func CanReadLineItem(granted []Scope) bool {
	return contains(granted, LineItem) || contains(granted, LineItemReadOnly)
}

// CanWriteLineItem reports whether the granted set allows creating,
// updating or deleting line items.
func CanWriteLineItem(granted []Scope) bool {
	return contains(granted, LineItem)
}

// CanWriteScore reports whether the granted set allows publishing scores.
func CanWriteScore(granted []Scope) bool {
	return contains(granted, Score)
}

// CanReadResult reports whether the granted set allows listing results.
func CanReadResult(granted []Scope) bool {
	return contains(granted, ResultReadOnly)
}

func contains(granted []Scope, s Scope) bool {
	for _, g := range granted {
		if g == s {
			return true
		}
	}
	return false
}
