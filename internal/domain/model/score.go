// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"
	"time"
)

// ActivityProgress reports how far the learner is through the activity.
type ActivityProgress string

const (
	ActivityInitialized ActivityProgress = "Initialized"
	ActivityStarted     ActivityProgress = "Started"
	ActivityInProgress  ActivityProgress = "InProgress"
	ActivitySubmitted   ActivityProgress = "Submitted"
	ActivityCompleted   ActivityProgress = "Completed"
)

// GradingProgress reports how far the platform is through grading.
type GradingProgress string

const (
	GradingFullyGraded   GradingProgress = "FullyGraded"
	GradingPending       GradingProgress = "Pending"
	GradingPendingManual GradingProgress = "PendingManual"
	GradingFailed        GradingProgress = "Failed"
	GradingNotReady      GradingProgress = "NotReady"
)

// Score is a grading event published by a tool for one user against a
// line item.
type Score struct {
	UserID           string
	ActivityProgress ActivityProgress
	GradingProgress  GradingProgress
	ScoreGiven       *float64
	ScoreMaximum     *float64
	Comment          string
	Timestamp        time.Time
	Extra            ExtraFields
}

// ScoreOptions names the defaulted fields of a new score. Zero values
// fall back to the documented defaults:
//
//	ActivityProgress  ActivityCompleted
//	GradingProgress   GradingFullyGraded
//	Timestamp         time.Now()
type ScoreOptions struct {
	ActivityProgress ActivityProgress
	GradingProgress  GradingProgress
	Timestamp        time.Time
}

// NewScore builds a score for userID, applying the ScoreOptions default
// table for any option left at its zero value.
func NewScore(userID string, opts ScoreOptions) *Score {
	if opts.ActivityProgress == "" {
		opts.ActivityProgress = ActivityCompleted
	}
	if opts.GradingProgress == "" {
		opts.GradingProgress = GradingFullyGraded
	}
	if opts.Timestamp.IsZero() {
		opts.Timestamp = time.Now()
	}

	return &Score{
		UserID:           userID,
		ActivityProgress: opts.ActivityProgress,
		GradingProgress:  opts.GradingProgress,
		Timestamp:        opts.Timestamp,
	}
}

// MarshalJSON renders the fixed AGS score envelope followed by the extra
// members; fixed fields win on key collision.
func (s *Score) MarshalJSON() ([]byte, error) {
	w := newEnvelopeWriter()
	w.field("userId", s.UserID)
	w.optional("scoreGiven", s.ScoreGiven, s.ScoreGiven != nil)
	w.optional("scoreMaximum", s.ScoreMaximum, s.ScoreMaximum != nil)
	w.optional("comment", s.Comment, s.Comment != "")
	w.field("timestamp", s.Timestamp)
	w.field("activityProgress", s.ActivityProgress)
	w.field("gradingProgress", s.GradingProgress)
	w.extras(s.Extra)
	return w.bytes()
}

// UnmarshalJSON fills the fixed fields and captures unknown members into
// Extra, preserving document order.
func (s *Score) UnmarshalJSON(data []byte) error {
	*s = Score{}

	return decodeEnvelope(data, func(key string, dec *json.Decoder) (bool, error) {
		switch key {
		case "userId":
			return true, dec.Decode(&s.UserID)
		case "scoreGiven":
			return true, dec.Decode(&s.ScoreGiven)
		case "scoreMaximum":
			return true, dec.Decode(&s.ScoreMaximum)
		case "comment":
			return true, dec.Decode(&s.Comment)
		case "timestamp":
			return true, dec.Decode(&s.Timestamp)
		case "activityProgress":
			return true, dec.Decode(&s.ActivityProgress)
		case "gradingProgress":
			return true, dec.Decode(&s.GradingProgress)
		}
		return false, nil
	}, &s.Extra)
}
