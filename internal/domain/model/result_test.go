// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultJSONRoundTrip(t *testing.T) {
	r := &Result{
		ID:            "https://h/line-items/1/results/u-1",
		ScoreOf:       "https://h/line-items/1",
		UserID:        "u-1",
		ResultScore:   float64Ptr(42),
		ResultMaximum: float64Ptr(60),
		Comment:       "resolved",
	}

	encoded, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "https://h/line-items/1/results/u-1",
		"scoreOf": "https://h/line-items/1",
		"userId": "u-1",
		"resultScore": 42,
		"resultMaximum": 60,
		"comment": "resolved"
	}`, string(encoded))

	var decoded Result
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, r.ScoreOf, decoded.ScoreOf)
	require.NotNil(t, decoded.ResultScore)
	assert.Equal(t, 42.0, *decoded.ResultScore)
}
