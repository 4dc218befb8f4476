// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openlms/lti-ags-service/internal/domain/model"
	"github.com/openlms/lti-ags-service/internal/domain/port"
	"github.com/openlms/lti-ags-service/pkg/constants"
	"github.com/openlms/lti-ags-service/pkg/paging"
	"github.com/openlms/lti-ags-service/pkg/scope"
	"github.com/openlms/lti-ags-service/pkg/urlbuilder"
)

// ListResultsHandler serves GET on the results sub-resource of a line
// item, paginated through the Link header cursor protocol.
type ListResultsHandler struct {
	validator  port.TokenValidator
	repository port.ResultRepository
}

// NewListResultsHandler creates the handler.
func NewListResultsHandler(validator port.TokenValidator, repository port.ResultRepository) *ListResultsHandler {
	return &ListResultsHandler{validator: validator, repository: repository}
}

func (h *ListResultsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !checkMethod(w, r, http.MethodGet) {
		return
	}
	if !checkAccept(w, r, constants.MediaTypeResultContainer) {
		return
	}
	if !authorize(w, r, h.validator, scope.CanReadResult, string(scope.ResultReadOnly)) {
		return
	}

	query := r.URL.Query()
	cursor, err := paging.ParseCursorValues(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filters := model.ResultFilters{
		UserID: optionalQuery(query.Get(constants.QueryUserID)),
	}

	collection, err := h.repository.FindResults(r.Context(), chi.URLParam(r, "lineItemID"), filters, cursor)
	if err != nil {
		respondRepositoryError(r, w, err)
		return
	}

	// Each result points back at the line item it scores: the request
	// URL with the results segment stripped.
	scoreOf, err := urlbuilder.Extract(resourceBaseURL(r), "results")
	if err != nil {
		respondRepositoryError(r, w, err)
		return
	}
	for _, result := range collection.Items() {
		result.ScoreOf = scoreOf
		fullID, err := urlbuilder.Build(scoreOf, "results/"+result.UserID)
		if err != nil {
			respondRepositoryError(r, w, err)
			return
		}
		result.ID = fullID
	}

	body, err := json.Marshal(collection)
	if err != nil {
		respondRepositoryError(r, w, err)
		return
	}
	if err := setNextLink(w, r, collection.HasNext(), cursor); err != nil {
		respondRepositoryError(r, w, err)
		return
	}

	writeBody(w, http.StatusOK, constants.MediaTypeResultContainer, body)
}
