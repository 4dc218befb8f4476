// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func TestNewScoreAppliesDefaults(t *testing.T) {
	before := time.Now()
	s := NewScore("u-1", ScoreOptions{})

	assert.Equal(t, "u-1", s.UserID)
	assert.Equal(t, ActivityCompleted, s.ActivityProgress)
	assert.Equal(t, GradingFullyGraded, s.GradingProgress)
	assert.False(t, s.Timestamp.Before(before))
}

func TestNewScoreKeepsExplicitOptions(t *testing.T) {
	ts := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	s := NewScore("u-2", ScoreOptions{
		ActivityProgress: ActivityInProgress,
		GradingProgress:  GradingPending,
		Timestamp:        ts,
	})

	assert.Equal(t, ActivityInProgress, s.ActivityProgress)
	assert.Equal(t, GradingPending, s.GradingProgress)
	assert.Equal(t, ts, s.Timestamp)
}

func TestScoreJSONRoundTrip(t *testing.T) {
	payload := `{
		"userId": "u-3",
		"scoreGiven": 8.5,
		"scoreMaximum": 10,
		"comment": "good work",
		"timestamp": "2026-03-15T12:00:00Z",
		"activityProgress": "Completed",
		"gradingProgress": "FullyGraded",
		"https://example.org/ext/attempt": 2
	}`

	var s Score
	require.NoError(t, json.Unmarshal([]byte(payload), &s))

	assert.Equal(t, "u-3", s.UserID)
	require.NotNil(t, s.ScoreGiven)
	assert.Equal(t, 8.5, *s.ScoreGiven)
	assert.Equal(t, 1, s.Extra.Len())

	encoded, err := json.Marshal(&s)
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(encoded))
}

func TestScoreOmitsAbsentOptionalFields(t *testing.T) {
	s := &Score{
		UserID:           "u-4",
		ActivityProgress: ActivityInitialized,
		GradingProgress:  GradingNotReady,
		Timestamp:        time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}

	encoded, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"userId": "u-4",
		"timestamp": "2026-03-15T12:00:00Z",
		"activityProgress": "Initialized",
		"gradingProgress": "NotReady"
	}`, string(encoded))
}
