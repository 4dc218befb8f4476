// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/openlms/lti-ags-service/internal/domain/model"
)

// ScoreNotifier is told about successfully published scores so other
// systems can react to grade changes. Notification failures must never
// fail the score publication itself.
type ScoreNotifier interface {
	ScorePublished(ctx context.Context, lineItemID string, score *model.Score) error
}
