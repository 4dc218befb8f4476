// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package model

import "encoding/json"

// Result is the platform's resolved outcome for one user on a line item.
type Result struct {
	// ID is the canonical URL of the result.
	ID string
	// ScoreOf is the URL of the line item the result belongs to.
	ScoreOf       string
	UserID        string
	ResultScore   *float64
	ResultMaximum *float64
	Comment       string
	Extra         ExtraFields
}

// Identifier returns the collection key of the result.
func (r *Result) Identifier() string {
	return r.ID
}

// MarshalJSON renders the fixed AGS result envelope followed by the
// extra members; fixed fields win on key collision.
func (r *Result) MarshalJSON() ([]byte, error) {
	w := newEnvelopeWriter()
	w.field("id", r.ID)
	w.field("scoreOf", r.ScoreOf)
	w.field("userId", r.UserID)
	w.optional("resultScore", r.ResultScore, r.ResultScore != nil)
	w.optional("resultMaximum", r.ResultMaximum, r.ResultMaximum != nil)
	w.optional("comment", r.Comment, r.Comment != "")
	w.extras(r.Extra)
	return w.bytes()
}

// UnmarshalJSON fills the fixed fields and captures unknown members into
// Extra, preserving document order.
func (r *Result) UnmarshalJSON(data []byte) error {
	*r = Result{}

	return decodeEnvelope(data, func(key string, dec *json.Decoder) (bool, error) {
		switch key {
		case "id":
			return true, dec.Decode(&r.ID)
		case "scoreOf":
			return true, dec.Decode(&r.ScoreOf)
		case "userId":
			return true, dec.Decode(&r.UserID)
		case "resultScore":
			return true, dec.Decode(&r.ResultScore)
		case "resultMaximum":
			return true, dec.Decode(&r.ResultMaximum)
		case "comment":
			return true, dec.Decode(&r.Comment)
		}
		return false, nil
	}, &r.Extra)
}
