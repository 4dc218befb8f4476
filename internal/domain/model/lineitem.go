// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

// Package model holds the AGS resource envelopes exchanged between a
// platform and a tool: line items, scores and results, plus the ordered
// collections the pagination protocol transfers them in.
package model

import (
	"encoding/json"
	"time"
)

// LineItem is a gradable column definition: label, maximum score, open
// and close dates, and the tags tying it to tool resources.
type LineItem struct {
	// ID is the canonical URL of the line item; empty until persisted.
	ID             string
	Label          string
	ScoreMaximum   float64
	StartDateTime  *time.Time
	EndDateTime    *time.Time
	Tag            string
	ResourceID     string
	ResourceLinkID string
	// SubmissionReview advertises how a platform reviewer can open the
	// learner submission behind this column.
	SubmissionReview *SubmissionReview
	// Extra carries unknown JSON members round-trip.
	Extra ExtraFields
}

// SubmissionReview describes the review launch attached to a line item.
type SubmissionReview struct {
	ReviewableStatus []string          `json:"reviewableStatus,omitempty"`
	Label            string            `json:"label,omitempty"`
	URL              string            `json:"url,omitempty"`
	Custom           map[string]string `json:"custom,omitempty"`
}

// Identifier returns the collection key of the line item.
func (li *LineItem) Identifier() string {
	return li.ID
}

// MarshalJSON renders the fixed AGS line item envelope followed by the
// extra members; fixed fields win on key collision.
func (li *LineItem) MarshalJSON() ([]byte, error) {
	w := newEnvelopeWriter()
	w.optional("id", li.ID, li.ID != "")
	w.field("scoreMaximum", li.ScoreMaximum)
	w.field("label", li.Label)
	w.optional("resourceId", li.ResourceID, li.ResourceID != "")
	w.optional("resourceLinkId", li.ResourceLinkID, li.ResourceLinkID != "")
	w.optional("tag", li.Tag, li.Tag != "")
	w.optional("startDateTime", li.StartDateTime, li.StartDateTime != nil)
	w.optional("endDateTime", li.EndDateTime, li.EndDateTime != nil)
	w.optional("submissionReview", li.SubmissionReview, li.SubmissionReview != nil)
	w.extras(li.Extra)
	return w.bytes()
}

// UnmarshalJSON fills the fixed fields and captures every unknown member
// into Extra, preserving document order.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	*li = LineItem{}

	return decodeEnvelope(data, func(key string, dec *json.Decoder) (bool, error) {
		switch key {
		case "id":
			return true, dec.Decode(&li.ID)
		case "scoreMaximum":
			return true, dec.Decode(&li.ScoreMaximum)
		case "label":
			return true, dec.Decode(&li.Label)
		case "resourceId":
			return true, dec.Decode(&li.ResourceID)
		case "resourceLinkId":
			return true, dec.Decode(&li.ResourceLinkID)
		case "tag":
			return true, dec.Decode(&li.Tag)
		case "startDateTime":
			return true, dec.Decode(&li.StartDateTime)
		case "endDateTime":
			return true, dec.Decode(&li.EndDateTime)
		case "submissionReview":
			return true, dec.Decode(&li.SubmissionReview)
		}
		return false, nil
	}, &li.Extra)
}
