// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

// Package memory provides an in-process repository implementation used
// for local development and tests. Identifiers are opaque; composing
// canonical resource URLs is the handlers' job.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/openlms/lti-ags-service/internal/domain/model"
	"github.com/openlms/lti-ags-service/pkg/errors"
	"github.com/openlms/lti-ags-service/pkg/paging"
)

// Store keeps line items, scores and derived results in memory. It is
// safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	lineItemOrder []string
	lineItems     map[string]*model.LineItem

	// scores holds every grading event per line item, in publication order.
	scores map[string][]*model.Score

	// results holds the resolved outcome per line item and user, ordered
	// by first score publication.
	resultOrder map[string][]string
	results     map[string]map[string]*model.Result
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		lineItems:   make(map[string]*model.LineItem),
		scores:      make(map[string][]*model.Score),
		resultOrder: make(map[string][]string),
		results:     make(map[string]map[string]*model.Result),
	}
}

// Find returns the line item with the given identifier.
func (s *Store) Find(ctx context.Context, id string) (*model.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.lineItems[id]
	if !ok {
		return nil, errors.NewNotFound(fmt.Sprintf("line item %s not found", id))
	}
	copied := *item
	return &copied, nil
}

// FindCollection returns one page of line items matching the filters,
// with the collection's hasNext flag set when more rows exist.
func (s *Store) FindCollection(ctx context.Context, filters model.LineItemFilters, cursor paging.Cursor) (*model.LineItemCollection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*model.LineItem
	for _, id := range s.lineItemOrder {
		item := s.lineItems[id]
		if !matchesLineItem(item, filters) {
			continue
		}
		matched = append(matched, item)
	}

	collection := model.NewCollection[*model.LineItem]()
	start, end, hasNext := pageBounds(len(matched), cursor)
	for _, item := range matched[start:end] {
		copied := *item
		collection.Add(&copied)
	}
	collection.SetHasNext(hasNext)

	return collection, nil
}

// Save persists the line item, assigning an identifier when absent.
func (s *Store) Save(ctx context.Context, lineItem *model.LineItem) (*model.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *lineItem
	if copied.ID == "" {
		copied.ID = uuid.NewString()
	}
	if _, ok := s.lineItems[copied.ID]; !ok {
		s.lineItemOrder = append(s.lineItemOrder, copied.ID)
	}
	s.lineItems[copied.ID] = &copied

	saved := copied
	return &saved, nil
}

// Delete removes the line item and everything recorded against it.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lineItems[id]; !ok {
		return errors.NewNotFound(fmt.Sprintf("line item %s not found", id))
	}

	delete(s.lineItems, id)
	delete(s.scores, id)
	delete(s.results, id)
	delete(s.resultOrder, id)
	for i, existing := range s.lineItemOrder {
		if existing == id {
			s.lineItemOrder = append(s.lineItemOrder[:i], s.lineItemOrder[i+1:]...)
			break
		}
	}
	return nil
}

// SaveScore appends a grading event and resolves the user's result.
func (s *Store) SaveScore(ctx context.Context, lineItemID string, score *model.Score) (*model.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lineItem, ok := s.lineItems[lineItemID]
	if !ok {
		return nil, errors.NewNotFound(fmt.Sprintf("line item %s not found", lineItemID))
	}

	copied := *score
	s.scores[lineItemID] = append(s.scores[lineItemID], &copied)

	if s.results[lineItemID] == nil {
		s.results[lineItemID] = make(map[string]*model.Result)
	}
	if _, ok := s.results[lineItemID][copied.UserID]; !ok {
		s.resultOrder[lineItemID] = append(s.resultOrder[lineItemID], copied.UserID)
	}

	maximum := copied.ScoreMaximum
	if maximum == nil {
		m := lineItem.ScoreMaximum
		maximum = &m
	}
	s.results[lineItemID][copied.UserID] = &model.Result{
		ID:            lineItemID + "/results/" + copied.UserID,
		ScoreOf:       lineItemID,
		UserID:        copied.UserID,
		ResultScore:   copied.ScoreGiven,
		ResultMaximum: maximum,
		Comment:       copied.Comment,
	}

	saved := copied
	return &saved, nil
}

// FindResults returns one page of resolved results for the line item.
func (s *Store) FindResults(ctx context.Context, lineItemID string, filters model.ResultFilters, cursor paging.Cursor) (*model.ResultCollection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.lineItems[lineItemID]; !ok {
		return nil, errors.NewNotFound(fmt.Sprintf("line item %s not found", lineItemID))
	}

	var matched []*model.Result
	for _, userID := range s.resultOrder[lineItemID] {
		result := s.results[lineItemID][userID]
		if filters.UserID != nil && result.UserID != *filters.UserID {
			continue
		}
		matched = append(matched, result)
	}

	collection := model.NewCollection[*model.Result]()
	start, end, hasNext := pageBounds(len(matched), cursor)
	for _, result := range matched[start:end] {
		copied := *result
		collection.Add(&copied)
	}
	collection.SetHasNext(hasNext)

	return collection, nil
}

func matchesLineItem(item *model.LineItem, filters model.LineItemFilters) bool {
	if filters.ResourceID != nil && item.ResourceID != *filters.ResourceID {
		return false
	}
	if filters.ResourceLinkID != nil && item.ResourceLinkID != *filters.ResourceLinkID {
		return false
	}
	if filters.Tag != nil && item.Tag != *filters.Tag {
		return false
	}
	return true
}

// pageBounds applies the cursor to a matched row count. An absent limit
// means no page cap; an explicit zero limit means a zero-item page.
func pageBounds(total int, cursor paging.Cursor) (start, end int, hasNext bool) {
	start = 0
	if cursor.Offset != nil {
		start = *cursor.Offset
	}
	if start > total {
		start = total
	}

	end = total
	if cursor.Limit != nil {
		end = start + *cursor.Limit
		if end > total {
			end = total
		}
	}

	return start, end, end < total
}
