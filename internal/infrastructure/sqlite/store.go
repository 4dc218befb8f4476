// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/openlms/lti-ags-service/internal/domain/model"
	"github.com/openlms/lti-ags-service/pkg/errors"
	"github.com/openlms/lti-ags-service/pkg/paging"
)

// Store implements the repository ports on a SQLite database. Rows keep
// the full JSON envelope as the source of truth; the extracted columns
// only serve filtering. Insertion order is the rowid, which an upsert
// preserves, so a replaced line item keeps its collection position.
type Store struct {
	db *sql.DB
}

// NewStore creates a store over an opened database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Find returns the line item with the given identifier.
func (s *Store) Find(ctx context.Context, id string) (*model.LineItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM line_items WHERE id = ?`, id)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFound(fmt.Sprintf("line item %s not found", id))
		}
		return nil, errors.NewUnexpected("cannot query line item", err)
	}

	return decodeLineItemRow(payload)
}

// FindCollection returns one page of line items matching the filters,
// with the collection's hasNext flag set when more rows exist.
func (s *Store) FindCollection(ctx context.Context, filters model.LineItemFilters, cursor paging.Cursor) (*model.LineItemCollection, error) {
	query := `SELECT payload FROM line_items`
	var (
		clauses []string
		args    []any
	)
	if filters.ResourceID != nil {
		clauses = append(clauses, "resource_id = ?")
		args = append(args, *filters.ResourceID)
	}
	if filters.ResourceLinkID != nil {
		clauses = append(clauses, "resource_link_id = ?")
		args = append(args, *filters.ResourceLinkID)
	}
	if filters.Tag != nil {
		clauses = append(clauses, "tag = ?")
		args = append(args, *filters.Tag)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY rowid" + pageClause(cursor)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewUnexpected("cannot query line items", err)
	}
	defer rows.Close()

	collection := model.NewCollection[*model.LineItem]()
	fetched := 0
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.NewUnexpected("cannot scan line item row", err)
		}
		fetched++
		if withinPage(fetched, cursor) {
			item, err := decodeLineItemRow(payload)
			if err != nil {
				return nil, err
			}
			collection.Add(item)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewUnexpected("cannot iterate line item rows", err)
	}
	collection.SetHasNext(hasNextPage(fetched, cursor))

	return collection, nil
}

// Save persists the line item, assigning an identifier when absent.
func (s *Store) Save(ctx context.Context, lineItem *model.LineItem) (*model.LineItem, error) {
	copied := *lineItem
	if copied.ID == "" {
		copied.ID = uuid.NewString()
	}

	payload, err := json.Marshal(&copied)
	if err != nil {
		return nil, errors.NewUnexpected("cannot encode line item", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO line_items (id, label, score_maximum, resource_id, resource_link_id, tag, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			label = excluded.label,
			score_maximum = excluded.score_maximum,
			resource_id = excluded.resource_id,
			resource_link_id = excluded.resource_link_id,
			tag = excluded.tag,
			payload = excluded.payload`,
		copied.ID, copied.Label, copied.ScoreMaximum,
		copied.ResourceID, copied.ResourceLinkID, copied.Tag, string(payload),
	)
	if err != nil {
		return nil, errors.NewUnexpected("cannot persist line item", err)
	}

	return &copied, nil
}

// Delete removes the line item; scores and results cascade with it.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM line_items WHERE id = ?`, id)
	if err != nil {
		return errors.NewUnexpected("cannot delete line item", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.NewUnexpected("cannot delete line item", err)
	}
	if affected == 0 {
		return errors.NewNotFound(fmt.Sprintf("line item %s not found", id))
	}
	return nil
}

// SaveScore appends a grading event and resolves the user's result.
func (s *Store) SaveScore(ctx context.Context, lineItemID string, score *model.Score) (*model.Score, error) {
	row := s.db.QueryRowContext(ctx, `SELECT score_maximum FROM line_items WHERE id = ?`, lineItemID)
	var lineItemMaximum float64
	if err := row.Scan(&lineItemMaximum); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFound(fmt.Sprintf("line item %s not found", lineItemID))
		}
		return nil, errors.NewUnexpected("cannot query line item", err)
	}

	copied := *score
	scorePayload, err := json.Marshal(&copied)
	if err != nil {
		return nil, errors.NewUnexpected("cannot encode score", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (line_item_id, user_id, payload) VALUES (?, ?, ?)`,
		lineItemID, copied.UserID, string(scorePayload),
	); err != nil {
		return nil, errors.NewUnexpected("cannot persist score", err)
	}

	maximum := copied.ScoreMaximum
	if maximum == nil {
		maximum = &lineItemMaximum
	}
	result := model.Result{
		ID:            lineItemID + "/results/" + copied.UserID,
		ScoreOf:       lineItemID,
		UserID:        copied.UserID,
		ResultScore:   copied.ScoreGiven,
		ResultMaximum: maximum,
		Comment:       copied.Comment,
	}
	resultPayload, err := json.Marshal(&result)
	if err != nil {
		return nil, errors.NewUnexpected("cannot encode result", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO results (line_item_id, user_id, payload) VALUES (?, ?, ?)
		 ON CONFLICT(line_item_id, user_id) DO UPDATE SET payload = excluded.payload`,
		lineItemID, copied.UserID, string(resultPayload),
	); err != nil {
		return nil, errors.NewUnexpected("cannot persist result", err)
	}

	return &copied, nil
}

// FindResults returns one page of resolved results for the line item.
func (s *Store) FindResults(ctx context.Context, lineItemID string, filters model.ResultFilters, cursor paging.Cursor) (*model.ResultCollection, error) {
	row := s.db.QueryRowContext(ctx, `SELECT 1 FROM line_items WHERE id = ?`, lineItemID)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFound(fmt.Sprintf("line item %s not found", lineItemID))
		}
		return nil, errors.NewUnexpected("cannot query line item", err)
	}

	query := `SELECT payload FROM results WHERE line_item_id = ?`
	args := []any{lineItemID}
	if filters.UserID != nil {
		query += " AND user_id = ?"
		args = append(args, *filters.UserID)
	}
	query += " ORDER BY rowid" + pageClause(cursor)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewUnexpected("cannot query results", err)
	}
	defer rows.Close()

	collection := model.NewCollection[*model.Result]()
	fetched := 0
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.NewUnexpected("cannot scan result row", err)
		}
		fetched++
		if withinPage(fetched, cursor) {
			var result model.Result
			if err := json.Unmarshal([]byte(payload), &result); err != nil {
				return nil, errors.NewUnexpected("cannot decode result payload", err)
			}
			collection.Add(&result)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewUnexpected("cannot iterate result rows", err)
	}
	collection.SetHasNext(hasNextPage(fetched, cursor))

	return collection, nil
}

func decodeLineItemRow(payload string) (*model.LineItem, error) {
	var item model.LineItem
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		return nil, errors.NewUnexpected("cannot decode line item payload", err)
	}
	return &item, nil
}

// pageClause renders the cursor as LIMIT/OFFSET. With a limit present
// it fetches one extra row so the caller can detect a following page;
// an absent limit means no page cap.
func pageClause(cursor paging.Cursor) string {
	clause := ""
	if cursor.Limit != nil {
		clause += " LIMIT " + strconv.Itoa(*cursor.Limit+1)
	} else {
		clause += " LIMIT -1"
	}
	if cursor.Offset != nil {
		clause += " OFFSET " + strconv.Itoa(*cursor.Offset)
	}
	return clause
}

// withinPage reports whether the n-th fetched row (1-based) belongs to
// the requested page rather than being the extra lookahead row.
func withinPage(n int, cursor paging.Cursor) bool {
	return cursor.Limit == nil || n <= *cursor.Limit
}

// hasNextPage reports whether the lookahead row was fetched.
func hasNextPage(fetched int, cursor paging.Cursor) bool {
	return cursor.Limit != nil && fetched > *cursor.Limit
}
