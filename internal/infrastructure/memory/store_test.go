// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlms/lti-ags-service/internal/domain/model"
	"github.com/openlms/lti-ags-service/pkg/errors"
	"github.com/openlms/lti-ags-service/pkg/paging"
)

func strPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func seedLineItems(t *testing.T, store *Store, labels map[string]string) map[string]string {
	t.Helper()

	ids := make(map[string]string)
	for label, tag := range labels {
		saved, err := store.Save(context.Background(), &model.LineItem{
			Label:        label,
			ScoreMaximum: 100,
			Tag:          tag,
		})
		require.NoError(t, err)
		require.NotEmpty(t, saved.ID)
		ids[label] = saved.ID
	}
	return ids
}

func TestSaveAssignsIdentifier(t *testing.T) {
	store := NewStore()

	saved, err := store.Save(context.Background(), &model.LineItem{Label: "Quiz", ScoreMaximum: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	found, err := store.Find(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quiz", found.Label)
}

func TestFindUnknownLineItem(t *testing.T) {
	store := NewStore()

	_, err := store.Find(context.Background(), "missing")
	assert.IsType(t, errors.NotFound{}, err)
}

func TestFindCollectionFilters(t *testing.T) {
	store := NewStore()
	seedLineItems(t, store, map[string]string{
		"Quiz 1": "quiz",
		"Quiz 2": "quiz",
		"Essay":  "essay",
	})

	collection, err := store.FindCollection(context.Background(), model.LineItemFilters{
		Tag: strPtr("quiz"),
	}, paging.Cursor{})
	require.NoError(t, err)

	assert.Equal(t, 2, collection.Len())
	assert.False(t, collection.HasNext())
}

func TestFindCollectionPagination(t *testing.T) {
	store := NewStore()

	for _, label := range []string{"A", "B", "C"} {
		_, err := store.Save(context.Background(), &model.LineItem{Label: label, ScoreMaximum: 10})
		require.NoError(t, err)
	}

	// Walk the backing set one row at a time; three pages in total.
	cursor := paging.Cursor{Limit: intPtr(1), Offset: intPtr(0)}
	var seen []string
	for page := 0; page < 3; page++ {
		collection, err := store.FindCollection(context.Background(), model.LineItemFilters{}, cursor)
		require.NoError(t, err)
		require.Equal(t, 1, collection.Len())
		seen = append(seen, collection.Items()[0].Label)

		if page < 2 {
			assert.True(t, collection.HasNext())
		} else {
			assert.False(t, collection.HasNext())
		}
		next := cursor.NextOffset()
		cursor.Offset = &next
	}
	assert.Equal(t, []string{"A", "B", "C"}, seen)
}

func TestFindCollectionZeroLimit(t *testing.T) {
	store := NewStore()
	seedLineItems(t, store, map[string]string{"Quiz": "quiz"})

	// limit=0 is a zero-item page, distinct from an absent limit.
	collection, err := store.FindCollection(context.Background(), model.LineItemFilters{}, paging.Cursor{Limit: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, collection.Len())
	assert.True(t, collection.HasNext())
}

func TestDelete(t *testing.T) {
	store := NewStore()
	ids := seedLineItems(t, store, map[string]string{"Quiz": "quiz"})

	require.NoError(t, store.Delete(context.Background(), ids["Quiz"]))

	err := store.Delete(context.Background(), ids["Quiz"])
	assert.IsType(t, errors.NotFound{}, err)
}

func TestSaveScoreResolvesResult(t *testing.T) {
	store := NewStore()
	ids := seedLineItems(t, store, map[string]string{"Quiz": "quiz"})
	lineItemID := ids["Quiz"]

	score := model.NewScore("u-1", model.ScoreOptions{})
	score.ScoreGiven = floatPtr(7)

	_, err := store.SaveScore(context.Background(), lineItemID, score)
	require.NoError(t, err)

	// A later score for the same user replaces the resolved result.
	update := model.NewScore("u-1", model.ScoreOptions{})
	update.ScoreGiven = floatPtr(9)
	_, err = store.SaveScore(context.Background(), lineItemID, update)
	require.NoError(t, err)

	results, err := store.FindResults(context.Background(), lineItemID, model.ResultFilters{}, paging.Cursor{})
	require.NoError(t, err)
	require.Equal(t, 1, results.Len())

	result := results.Items()[0]
	assert.Equal(t, "u-1", result.UserID)
	require.NotNil(t, result.ResultScore)
	assert.Equal(t, 9.0, *result.ResultScore)
	// The line item maximum backfills an absent score maximum.
	require.NotNil(t, result.ResultMaximum)
	assert.Equal(t, 100.0, *result.ResultMaximum)
}

func TestSaveScoreUnknownLineItem(t *testing.T) {
	store := NewStore()

	_, err := store.SaveScore(context.Background(), "missing", model.NewScore("u-1", model.ScoreOptions{}))
	assert.IsType(t, errors.NotFound{}, err)
}

func TestFindResultsUserFilter(t *testing.T) {
	store := NewStore()
	ids := seedLineItems(t, store, map[string]string{"Quiz": "quiz"})
	lineItemID := ids["Quiz"]

	for _, userID := range []string{"u-1", "u-2", "u-3"} {
		score := model.NewScore(userID, model.ScoreOptions{})
		score.ScoreGiven = floatPtr(5)
		_, err := store.SaveScore(context.Background(), lineItemID, score)
		require.NoError(t, err)
	}

	results, err := store.FindResults(context.Background(), lineItemID, model.ResultFilters{
		UserID: strPtr("u-2"),
	}, paging.Cursor{})
	require.NoError(t, err)
	require.Equal(t, 1, results.Len())
	assert.Equal(t, "u-2", results.Items()[0].UserID)
}
