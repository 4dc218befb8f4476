// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openlms/lti-ags-service/internal/domain/port"
)

// Repositories bundles the persistence collaborators of the AGS routes.
type Repositories struct {
	LineItems port.LineItemRepository
	Scores    port.ScoreRepository
	Results   port.ResultRepository
}

// NewRouter mounts every AGS operation. Method dispatch stays inside the
// handlers so a rejected method carries the accepted-method body the
// wire contract requires.
func NewRouter(validator port.TokenValidator, repos Repositories, notifier port.ScoreNotifier) chi.Router {
	r := chi.NewRouter()

	r.Handle("/line-items", Dispatch(map[string]http.Handler{
		http.MethodGet:  NewListLineItemsHandler(validator, repos.LineItems),
		http.MethodPost: NewCreateLineItemHandler(validator, repos.LineItems),
	}))

	r.Handle("/line-items/{lineItemID}", Dispatch(map[string]http.Handler{
		http.MethodGet:    NewGetLineItemHandler(validator, repos.LineItems),
		http.MethodPut:    NewUpdateLineItemHandler(validator, repos.LineItems),
		http.MethodDelete: NewDeleteLineItemHandler(validator, repos.LineItems),
	}))

	r.Handle("/line-items/{lineItemID}/scores", Dispatch(map[string]http.Handler{
		http.MethodPost: NewPublishScoreHandler(validator, repos.Scores, notifier),
	}))

	r.Handle("/line-items/{lineItemID}/results", Dispatch(map[string]http.Handler{
		http.MethodGet: NewListResultsHandler(validator, repos.Results),
	}))

	return r
}
