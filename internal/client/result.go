// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/openlms/lti-ags-service/internal/domain/model"
	"github.com/openlms/lti-ags-service/internal/domain/port"
	"github.com/openlms/lti-ags-service/pkg/constants"
	"github.com/openlms/lti-ags-service/pkg/errors"
	"github.com/openlms/lti-ags-service/pkg/httpclient"
	"github.com/openlms/lti-ags-service/pkg/paging"
	"github.com/openlms/lti-ags-service/pkg/scope"
	"github.com/openlms/lti-ags-service/pkg/urlbuilder"
)

// ResultClient reads the current results of individual line items.
type ResultClient struct {
	transport port.Transport
	endpoint  Endpoint
}

// NewResultClient creates a result client for the given endpoint. A nil
// transport falls back to the retrying HTTP client.
func NewResultClient(transport port.Transport, endpoint Endpoint) *ResultClient {
	return &ResultClient{transport: defaultTransport(transport), endpoint: endpoint}
}

// List fetches one page of the results sub-resource of the line item
// addressed by lineItemURL. An empty URL falls back to the endpoint's
// coupled line item.
func (c *ResultClient) List(ctx context.Context, lineItemURL string, filters *model.ResultFilters, cursor *paging.Cursor) (*model.ResultCollection, error) {
	if lineItemURL == "" {
		lineItemURL = c.endpoint.LineItemURL
	}
	if lineItemURL == "" {
		return nil, errors.NewPrecondition("line item URL is required")
	}
	if err := c.endpoint.requireScope(scope.CanReadResult, string(scope.ResultReadOnly)); err != nil {
		return nil, err
	}

	params := cursorParams(cursor)
	if filters != nil && filters.UserID != nil {
		params = append(params, urlbuilder.Param{Key: constants.QueryUserID, Value: *filters.UserID})
	}

	requestURL, err := urlbuilder.Build(lineItemURL, "results", params...)
	if err != nil {
		return nil, err
	}

	resp, err := c.transport.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    requestURL,
		Headers: map[string]string{
			constants.AcceptHeader: constants.MediaTypeResultContainer.String(),
		},
	})
	if err != nil {
		return nil, errors.NewTransport("cannot list results", err)
	}

	collection := model.NewCollection[*model.Result]()
	if err := json.Unmarshal(resp.Body, collection); err != nil {
		return nil, errors.NewValidation("malformed result container payload", err)
	}
	applyRelationLink(collection, resp.Headers)

	return collection, nil
}
