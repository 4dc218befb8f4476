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
	"github.com/openlms/lti-ags-service/pkg/paging"
	"github.com/openlms/lti-ags-service/pkg/scope"
	"github.com/openlms/lti-ags-service/pkg/urlbuilder"
)

const lineItemReadScopes = string(scope.LineItem) + " or " + string(scope.LineItemReadOnly)

// CreateLineItemHandler serves POST on the line item container.
type CreateLineItemHandler struct {
	validator  port.TokenValidator
	repository port.LineItemRepository
}

// NewCreateLineItemHandler creates the handler.
func NewCreateLineItemHandler(validator port.TokenValidator, repository port.LineItemRepository) *CreateLineItemHandler {
	return &CreateLineItemHandler{validator: validator, repository: repository}
}

func (h *CreateLineItemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !checkMethod(w, r, http.MethodPost) {
		return
	}
	if !checkContentType(w, r, constants.MediaTypeLineItem) {
		return
	}
	if !authorize(w, r, h.validator, scope.CanWriteLineItem, string(scope.LineItem)) {
		return
	}

	lineItem, ok := decodeLineItem(w, r)
	if !ok {
		return
	}
	// A create always mints a fresh identifier.
	lineItem.ID = ""

	saved, err := h.repository.Save(r.Context(), lineItem)
	if err != nil {
		respondRepositoryError(r, w, err)
		return
	}

	fullID, err := urlbuilder.Build(resourceBaseURL(r), saved.ID)
	if err != nil {
		respondRepositoryError(r, w, err)
		return
	}
	saved.ID = fullID

	slog.DebugContext(r.Context(), "line item created", "id", saved.ID)
	respondLineItem(w, r, http.StatusCreated, saved)
}

// GetLineItemHandler serves GET on a single line item.
type GetLineItemHandler struct {
	validator  port.TokenValidator
	repository port.LineItemRepository
}

// NewGetLineItemHandler creates the handler.
func NewGetLineItemHandler(validator port.TokenValidator, repository port.LineItemRepository) *GetLineItemHandler {
	return &GetLineItemHandler{validator: validator, repository: repository}
}

func (h *GetLineItemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !checkMethod(w, r, http.MethodGet) {
		return
	}
	if !checkAccept(w, r, constants.MediaTypeLineItem) {
		return
	}
	if !authorize(w, r, h.validator, scope.CanReadLineItem, lineItemReadScopes) {
		return
	}

	lineItem, err := h.repository.Find(r.Context(), chi.URLParam(r, "lineItemID"))
	if err != nil {
		respondRepositoryError(r, w, err)
		return
	}

	// The canonical identifier of the line item is the URL it was
	// addressed by.
	lineItem.ID = resourceBaseURL(r)

	respondLineItem(w, r, http.StatusOK, lineItem)
}

// ListLineItemsHandler serves GET on the line item container, paginated
// through the Link header cursor protocol.
type ListLineItemsHandler struct {
	validator  port.TokenValidator
	repository port.LineItemRepository
}

// NewListLineItemsHandler creates the handler.
func NewListLineItemsHandler(validator port.TokenValidator, repository port.LineItemRepository) *ListLineItemsHandler {
	return &ListLineItemsHandler{validator: validator, repository: repository}
}

func (h *ListLineItemsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !checkMethod(w, r, http.MethodGet) {
		return
	}
	if !checkAccept(w, r, constants.MediaTypeLineItemContainer) {
		return
	}
	if !authorize(w, r, h.validator, scope.CanReadLineItem, lineItemReadScopes) {
		return
	}

	query := r.URL.Query()
	cursor, err := paging.ParseCursorValues(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filters := model.LineItemFilters{
		ResourceID:     optionalQuery(query.Get(constants.QueryResourceID)),
		ResourceLinkID: optionalQuery(query.Get(constants.QueryResourceLinkID)),
		Tag:            optionalQuery(query.Get(constants.QueryTag)),
	}

	collection, err := h.repository.FindCollection(r.Context(), filters, cursor)
	if err != nil {
		respondRepositoryError(r, w, err)
		return
	}

	// Rewrite opaque repository identifiers into canonical URLs under
	// the container this listing was addressed by.
	base := resourceBaseURL(r)
	for _, item := range collection.Items() {
		fullID, err := urlbuilder.Build(base, item.ID)
		if err != nil {
			respondRepositoryError(r, w, err)
			return
		}
		item.ID = fullID
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

	writeBody(w, http.StatusOK, constants.MediaTypeLineItemContainer, body)
}

// UpdateLineItemHandler serves PUT on a single line item.
type UpdateLineItemHandler struct {
	validator  port.TokenValidator
	repository port.LineItemRepository
}

// NewUpdateLineItemHandler creates the handler.
func NewUpdateLineItemHandler(validator port.TokenValidator, repository port.LineItemRepository) *UpdateLineItemHandler {
	return &UpdateLineItemHandler{validator: validator, repository: repository}
}

func (h *UpdateLineItemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !checkMethod(w, r, http.MethodPut) {
		return
	}
	if !checkContentType(w, r, constants.MediaTypeLineItem) {
		return
	}
	if !authorize(w, r, h.validator, scope.CanWriteLineItem, string(scope.LineItem)) {
		return
	}

	id := chi.URLParam(r, "lineItemID")
	if _, err := h.repository.Find(r.Context(), id); err != nil {
		respondRepositoryError(r, w, err)
		return
	}

	lineItem, ok := decodeLineItem(w, r)
	if !ok {
		return
	}
	lineItem.ID = id

	saved, err := h.repository.Save(r.Context(), lineItem)
	if err != nil {
		respondRepositoryError(r, w, err)
		return
	}
	saved.ID = resourceBaseURL(r)

	respondLineItem(w, r, http.StatusOK, saved)
}

// DeleteLineItemHandler serves DELETE on a single line item.
type DeleteLineItemHandler struct {
	validator  port.TokenValidator
	repository port.LineItemRepository
}

// NewDeleteLineItemHandler creates the handler.
func NewDeleteLineItemHandler(validator port.TokenValidator, repository port.LineItemRepository) *DeleteLineItemHandler {
	return &DeleteLineItemHandler{validator: validator, repository: repository}
}

func (h *DeleteLineItemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !checkMethod(w, r, http.MethodDelete) {
		return
	}
	if !authorize(w, r, h.validator, scope.CanWriteLineItem, string(scope.LineItem)) {
		return
	}

	if err := h.repository.Delete(r.Context(), chi.URLParam(r, "lineItemID")); err != nil {
		respondRepositoryError(r, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeLineItem(w http.ResponseWriter, r *http.Request) (*model.LineItem, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}

	var lineItem model.LineItem
	if err := json.Unmarshal(body, &lineItem); err != nil {
		writeError(w, http.StatusBadRequest, "invalid line item payload: "+err.Error())
		return nil, false
	}
	if lineItem.Label == "" {
		writeError(w, http.StatusBadRequest, "line item label is required")
		return nil, false
	}

	return &lineItem, true
}

func respondLineItem(w http.ResponseWriter, r *http.Request, status int, lineItem *model.LineItem) {
	body, err := json.Marshal(lineItem)
	if err != nil {
		respondRepositoryError(r, w, err)
		return
	}
	writeBody(w, status, constants.MediaTypeLineItem, body)
}

func optionalQuery(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
