// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package constants

// MediaType is a fixed IMS media type used by the AGS wire contract.
type MediaType string

const (
	// MediaTypeLineItem is the media type of a single line item envelope.
	MediaTypeLineItem MediaType = "application/vnd.ims.lis.v2.lineitem+json"
	// MediaTypeLineItemContainer is the media type of a line item collection.
	MediaTypeLineItemContainer MediaType = "application/vnd.ims.lis.v2.lineitemcontainer+json"
	// MediaTypeScore is the media type of a score publication.
	MediaTypeScore MediaType = "application/vnd.ims.lis.v1.score+json"
	// MediaTypeResultContainer is the media type of a result collection.
	MediaTypeResultContainer MediaType = "application/vnd.ims.lis.v2.resultcontainer+json"
)

// String returns the media type as a plain header value.
func (m MediaType) String() string {
	return string(m)
}
