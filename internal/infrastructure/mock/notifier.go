// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"sync"

	"github.com/openlms/lti-ags-service/internal/domain/model"
)

// NotifiedScore records one score publication the notifier saw.
type NotifiedScore struct {
	LineItemID string
	UserID     string
}

// Notifier is a fake score notifier recording every publication.
type Notifier struct {
	mu     sync.Mutex
	Err    error
	events []NotifiedScore
}

// NewNotifier creates an empty mock notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// ScorePublished records the event and returns the configured error.
func (n *Notifier) ScorePublished(ctx context.Context, lineItemID string, score *model.Score) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, NotifiedScore{LineItemID: lineItemID, UserID: score.UserID})
	return n.Err
}

// Events returns the recorded publications.
func (n *Notifier) Events() []NotifiedScore {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]NotifiedScore(nil), n.events...)
}
