// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/openlms/lti-ags-service/internal/domain/model"
	"github.com/openlms/lti-ags-service/pkg/paging"
)

// LineItemRepository defines the persistence behavior the protocol layer
// calls through for line items. Implementations set the collection's
// hasNext flag when more rows exist beyond the requested page, and
// return errors.NotFound for unknown identifiers. Implementations must
// be safe for concurrent use.
type LineItemRepository interface {
	// Find returns the line item with the given identifier.
	Find(ctx context.Context, id string) (*model.LineItem, error)

	// FindCollection returns one page of line items matching the filters.
	FindCollection(ctx context.Context, filters model.LineItemFilters, cursor paging.Cursor) (*model.LineItemCollection, error)

	// Save persists the line item, assigning an identifier when absent.
	Save(ctx context.Context, lineItem *model.LineItem) (*model.LineItem, error)

	// Delete removes the line item with the given identifier.
	Delete(ctx context.Context, id string) error
}

// ScoreRepository records published scores against a line item.
type ScoreRepository interface {
	// SaveScore appends a grading event for the line item and resolves
	// the user's result from it.
	SaveScore(ctx context.Context, lineItemID string, score *model.Score) (*model.Score, error)
}

// ResultRepository serves resolved outcomes for a line item.
type ResultRepository interface {
	// FindResults returns one page of results for the line item.
	FindResults(ctx context.Context, lineItemID string, filters model.ResultFilters, cursor paging.Cursor) (*model.ResultCollection, error)
}
