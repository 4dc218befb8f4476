// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"

	"github.com/openlms/lti-ags-service/pkg/paging"
)

// Identifiable is any resource keyed by its identifier inside a
// collection.
type Identifiable interface {
	Identifier() string
}

// Collection is an ordered, identifier-keyed container used as the
// payload of the pagination protocol. Iteration follows insertion order;
// adding an item whose identifier already exists replaces it in place,
// keeping its original ordinal position. Collections are transient DTOs
// built and consumed within a single request; they are not safe for
// concurrent mutation.
type Collection[T Identifiable] struct {
	ids          []string
	items        map[string]T
	next         bool
	relationLink *string
}

// LineItemCollection transfers pages of line items.
type LineItemCollection = Collection[*LineItem]

// ResultCollection transfers pages of results.
type ResultCollection = Collection[*Result]

// NewCollection creates an empty collection.
func NewCollection[T Identifiable]() *Collection[T] {
	return &Collection[T]{items: make(map[string]T)}
}

// Add inserts item keyed by its identifier, replacing any existing item
// with the same identifier without moving it.
func (c *Collection[T]) Add(item T) {
	if c.items == nil {
		c.items = make(map[string]T)
	}
	id := item.Identifier()
	if _, ok := c.items[id]; !ok {
		c.ids = append(c.ids, id)
	}
	c.items[id] = item
}

// Remove drops the item with the given identifier; absent identifiers
// are ignored.
func (c *Collection[T]) Remove(id string) {
	if _, ok := c.items[id]; !ok {
		return
	}
	delete(c.items, id)
	for i, existing := range c.ids {
		if existing == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
}

// Has reports whether an item with the given identifier is present.
func (c *Collection[T]) Has(id string) bool {
	_, ok := c.items[id]
	return ok
}

// Get returns the item with the given identifier.
func (c *Collection[T]) Get(id string) (T, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	return len(c.ids)
}

// Items returns the members in insertion order.
func (c *Collection[T]) Items() []T {
	items := make([]T, 0, len(c.ids))
	for _, id := range c.ids {
		items = append(items, c.items[id])
	}
	return items
}

// HasNext reports whether more results exist beyond this page. The flag
// is set once by the producer: the repository on the platform side, the
// response deserializer on the client side.
func (c *Collection[T]) HasNext() bool {
	return c.next
}

// SetHasNext records whether a further page exists.
func (c *Collection[T]) SetHasNext(next bool) {
	c.next = next
}

// RelationLink returns the raw Link header value attached to the
// response this collection was read from.
func (c *Collection[T]) RelationLink() (string, bool) {
	if c.relationLink == nil {
		return "", false
	}
	return *c.relationLink, true
}

// SetRelationLink stores the raw Link header value of the response.
func (c *Collection[T]) SetRelationLink(value string) {
	c.relationLink = &value
}

// RelationLinkURL extracts the next-page URL from the stored Link header
// value. It reports absent when no relation link was recorded or the
// value holds no <...> pattern.
func (c *Collection[T]) RelationLinkURL() (string, bool) {
	if c.relationLink == nil {
		return "", false
	}
	return paging.RelationLinkURL(*c.relationLink)
}

// MarshalJSON serializes the collection as a bare JSON array of its
// member envelopes.
func (c *Collection[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Items())
}

// UnmarshalJSON rebuilds the collection from a bare JSON array,
// preserving array order. Pagination state is not part of the array and
// must be set from the response headers by the caller.
func (c *Collection[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	c.ids = nil
	c.items = make(map[string]T)
	for _, item := range items {
		c.Add(item)
	}
	return nil
}
