// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

// Package nats publishes grading events to a NATS message broker so
// downstream consumers (gradebooks, analytics) can react to scores
// without polling the results endpoint.
package nats

import (
	"time"
)

// ScorePublishedSubject is the subject grading events are published on.
const ScorePublishedSubject = "lti.ags.score.published"

// Config represents NATS configuration
type Config struct {
	// URL is the NATS server URL
	URL string `json:"url"`
	// Timeout is the request timeout duration
	Timeout time.Duration `json:"timeout"`
	// MaxReconnect is the maximum number of reconnection attempts
	MaxReconnect int `json:"max_reconnect"`
	// ReconnectWait is the time to wait between reconnection attempts
	ReconnectWait time.Duration `json:"reconnect_wait"`
}

// ScorePublishedEvent is the payload of one grading event.
type ScorePublishedEvent struct {
	// LineItemID is the opaque identifier of the graded line item.
	LineItemID string `json:"line_item_id"`
	// UserID is the learner the score was published for.
	UserID string `json:"user_id"`
	// ScoreGiven is the published score, when one was given.
	ScoreGiven *float64 `json:"score_given,omitempty"`
	// ScoreMaximum is the maximum the score was given against.
	ScoreMaximum *float64 `json:"score_maximum,omitempty"`
	// Timestamp is the grading event's own timestamp.
	Timestamp time.Time `json:"timestamp"`
}
