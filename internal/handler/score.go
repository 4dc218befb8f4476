// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openlms/lti-ags-service/internal/domain/model"
	"github.com/openlms/lti-ags-service/internal/domain/port"
	"github.com/openlms/lti-ags-service/pkg/constants"
	"github.com/openlms/lti-ags-service/pkg/scope"
)

// PublishScoreHandler serves POST on the scores sub-resource of a line
// item. After a successful publication the notifier is told; a notifier
// failure is logged, never surfaced to the tool.
type PublishScoreHandler struct {
	validator  port.TokenValidator
	repository port.ScoreRepository
	notifier   port.ScoreNotifier
}

// NewPublishScoreHandler creates the handler. The notifier may be nil.
func NewPublishScoreHandler(validator port.TokenValidator, repository port.ScoreRepository, notifier port.ScoreNotifier) *PublishScoreHandler {
	return &PublishScoreHandler{validator: validator, repository: repository, notifier: notifier}
}

func (h *PublishScoreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !checkMethod(w, r, http.MethodPost) {
		return
	}
	if !checkContentType(w, r, constants.MediaTypeScore) {
		return
	}
	if !authorize(w, r, h.validator, scope.CanWriteScore, string(scope.Score)) {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var score model.Score
	if err := json.Unmarshal(body, &score); err != nil {
		writeError(w, http.StatusBadRequest, "invalid score payload: "+err.Error())
		return
	}
	if score.UserID == "" {
		writeError(w, http.StatusBadRequest, "score userId is required")
		return
	}

	lineItemID := chi.URLParam(r, "lineItemID")
	saved, err := h.repository.SaveScore(r.Context(), lineItemID, &score)
	if err != nil {
		respondRepositoryError(r, w, err)
		return
	}

	if h.notifier != nil {
		if err := h.notifier.ScorePublished(r.Context(), lineItemID, saved); err != nil {
			slog.ErrorContext(r.Context(), "score notification failed",
				"line_item_id", lineItemID,
				"user_id", saved.UserID,
				"error", err,
			)
		}
	}

	slog.DebugContext(r.Context(), "score published",
		"line_item_id", lineItemID,
		"user_id", saved.UserID,
	)

	w.WriteHeader(http.StatusNoContent)
}
