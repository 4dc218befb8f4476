// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package constants

// Query parameters recognized by AGS list operations. All optional and
// AND-combined when several are present.
const (
	QueryResourceID     = "resource_id"
	QueryResourceLinkID = "resource_link_id"
	QueryTag            = "tag"
	QueryUserID         = "user_id"
	QueryLimit          = "limit"
	QueryOffset         = "offset"
)
