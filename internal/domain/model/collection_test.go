// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lineItem(id, label string) *LineItem {
	return &LineItem{ID: id, Label: label, ScoreMaximum: 100}
}

func TestCollectionAddReplacesOnDuplicateIdentifier(t *testing.T) {
	c := NewCollection[*LineItem]()

	c.Add(lineItem("li-1", "first"))
	c.Add(lineItem("li-2", "second"))
	c.Add(lineItem("li-1", "replacement"))

	assert.Equal(t, 2, c.Len())

	got, ok := c.Get("li-1")
	assert.True(t, ok)
	assert.Equal(t, "replacement", got.Label)

	// The replaced item keeps its original ordinal position.
	items := c.Items()
	assert.Equal(t, "li-1", items[0].ID)
	assert.Equal(t, "li-2", items[1].ID)
}

func TestCollectionRemoveIsIdempotent(t *testing.T) {
	c := NewCollection[*LineItem]()
	c.Add(lineItem("li-1", "first"))
	c.Add(lineItem("li-2", "second"))

	c.Remove("li-1")
	c.Remove("li-1")
	c.Remove("never-there")

	assert.Equal(t, 1, c.Len())
	assert.False(t, c.Has("li-1"))
	assert.True(t, c.Has("li-2"))
}

func TestCollectionIterationOrder(t *testing.T) {
	c := NewCollection[*Result]()
	for _, id := range []string{"r-3", "r-1", "r-2"} {
		c.Add(&Result{ID: id, UserID: "u"})
	}

	var order []string
	for _, item := range c.Items() {
		order = append(order, item.ID)
	}
	assert.Equal(t, []string{"r-3", "r-1", "r-2"}, order)
}

func TestCollectionRelationLink(t *testing.T) {
	c := NewCollection[*LineItem]()

	_, ok := c.RelationLinkURL()
	assert.False(t, ok, "no relation link recorded yet")

	c.SetRelationLink(`<https://h/line-items?limit=1&offset=2>; rel="next"`)
	c.SetHasNext(true)

	url, ok := c.RelationLinkURL()
	assert.True(t, ok)
	assert.Equal(t, "https://h/line-items?limit=1&offset=2", url)
	assert.True(t, c.HasNext())

	c.SetRelationLink("no brackets here")
	_, ok = c.RelationLinkURL()
	assert.False(t, ok)
}

func TestCollectionJSONRoundTrip(t *testing.T) {
	c := NewCollection[*LineItem]()
	c.Add(lineItem("https://h/line-items/1", "quiz"))
	c.Add(lineItem("https://h/line-items/2", "essay"))

	encoded, err := c.MarshalJSON()
	assert.NoError(t, err)

	decoded := NewCollection[*LineItem]()
	assert.NoError(t, decoded.UnmarshalJSON(encoded))
	assert.Equal(t, 2, decoded.Len())
	assert.Equal(t, "quiz", decoded.Items()[0].Label)
	assert.False(t, decoded.HasNext(), "pagination state is not part of the array")
}

func TestEmptyCollectionMarshalsAsEmptyArray(t *testing.T) {
	c := NewCollection[*Result]()
	encoded, err := c.MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, "[]", string(encoded))
}
