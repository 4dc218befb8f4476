// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package model

// LineItemFilters narrows a line item listing. Nil fields are not
// applied; set fields combine as AND.
type LineItemFilters struct {
	ResourceID     *string
	ResourceLinkID *string
	Tag            *string
}

// ResultFilters narrows a result listing.
type ResultFilters struct {
	UserID *string
}
