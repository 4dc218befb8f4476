// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package client

import (
	"bytes"
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

// LineItemClient reads and maintains the line items of one grade
// services endpoint.
type LineItemClient struct {
	transport port.Transport
	endpoint  Endpoint
}

// NewLineItemClient creates a line item client for the given endpoint.
// A nil transport falls back to the retrying HTTP client.
func NewLineItemClient(transport port.Transport, endpoint Endpoint) *LineItemClient {
	return &LineItemClient{transport: defaultTransport(transport), endpoint: endpoint}
}

// List fetches one page of the endpoint's line item collection. The
// filters narrow the collection server-side; a nil cursor requests the
// platform's default page.
func (c *LineItemClient) List(ctx context.Context, filters *model.LineItemFilters, cursor *paging.Cursor) (*model.LineItemCollection, error) {
	if c.endpoint.LineItemsURL == "" {
		return nil, errors.NewPrecondition("line items endpoint URL is required")
	}
	if err := c.endpoint.requireScope(scope.CanReadLineItem, lineItemReadScopes); err != nil {
		return nil, err
	}

	params := cursorParams(cursor)
	if filters != nil {
		if filters.ResourceID != nil {
			params = append(params, urlbuilder.Param{Key: constants.QueryResourceID, Value: *filters.ResourceID})
		}
		if filters.ResourceLinkID != nil {
			params = append(params, urlbuilder.Param{Key: constants.QueryResourceLinkID, Value: *filters.ResourceLinkID})
		}
		if filters.Tag != nil {
			params = append(params, urlbuilder.Param{Key: constants.QueryTag, Value: *filters.Tag})
		}
	}

	requestURL, err := urlbuilder.Build(c.endpoint.LineItemsURL, "", params...)
	if err != nil {
		return nil, err
	}

	resp, err := c.transport.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    requestURL,
		Headers: map[string]string{
			constants.AcceptHeader: constants.MediaTypeLineItemContainer.String(),
		},
	})
	if err != nil {
		return nil, errors.NewTransport("cannot list line items", err)
	}

	collection := model.NewCollection[*model.LineItem]()
	if err := json.Unmarshal(resp.Body, collection); err != nil {
		return nil, errors.NewValidation("malformed line item container payload", err)
	}
	applyRelationLink(collection, resp.Headers)

	return collection, nil
}

// Get fetches the line item addressed by the given URL. An empty URL
// falls back to the endpoint's coupled line item.
func (c *LineItemClient) Get(ctx context.Context, lineItemURL string) (*model.LineItem, error) {
	if lineItemURL == "" {
		lineItemURL = c.endpoint.LineItemURL
	}
	if lineItemURL == "" {
		return nil, errors.NewPrecondition("line item URL is required")
	}
	if err := c.endpoint.requireScope(scope.CanReadLineItem, lineItemReadScopes); err != nil {
		return nil, err
	}

	resp, err := c.transport.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    lineItemURL,
		Headers: map[string]string{
			constants.AcceptHeader: constants.MediaTypeLineItem.String(),
		},
	})
	if err != nil {
		return nil, errors.NewTransport("cannot get line item", err)
	}

	return decodeLineItemPayload(resp.Body)
}

// Create adds a new line item to the endpoint's collection and returns
// the platform's representation, including the assigned identifier.
func (c *LineItemClient) Create(ctx context.Context, lineItem *model.LineItem) (*model.LineItem, error) {
	if c.endpoint.LineItemsURL == "" {
		return nil, errors.NewPrecondition("line items endpoint URL is required")
	}
	if err := c.endpoint.requireScope(scope.CanWriteLineItem, string(scope.LineItem)); err != nil {
		return nil, err
	}

	body, err := json.Marshal(lineItem)
	if err != nil {
		return nil, errors.NewValidation("cannot encode line item", err)
	}

	resp, err := c.transport.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    c.endpoint.LineItemsURL,
		Headers: map[string]string{
			constants.ContentTypeHeader: constants.MediaTypeLineItem.String(),
			constants.AcceptHeader:      constants.MediaTypeLineItem.String(),
		},
		Body: bytes.NewReader(body),
	})
	if err != nil {
		return nil, errors.NewTransport("cannot create line item", err)
	}

	return decodeLineItemPayload(resp.Body)
}

// Update replaces the line item addressed by its identifier URL.
func (c *LineItemClient) Update(ctx context.Context, lineItem *model.LineItem) (*model.LineItem, error) {
	if lineItem.ID == "" {
		return nil, errors.NewPrecondition("line item URL is required")
	}
	if err := c.endpoint.requireScope(scope.CanWriteLineItem, string(scope.LineItem)); err != nil {
		return nil, err
	}

	body, err := json.Marshal(lineItem)
	if err != nil {
		return nil, errors.NewValidation("cannot encode line item", err)
	}

	resp, err := c.transport.Do(ctx, httpclient.Request{
		Method: http.MethodPut,
		URL:    lineItem.ID,
		Headers: map[string]string{
			constants.ContentTypeHeader: constants.MediaTypeLineItem.String(),
			constants.AcceptHeader:      constants.MediaTypeLineItem.String(),
		},
		Body: bytes.NewReader(body),
	})
	if err != nil {
		return nil, errors.NewTransport("cannot update line item", err)
	}

	return decodeLineItemPayload(resp.Body)
}

// Delete removes the line item addressed by the given URL.
func (c *LineItemClient) Delete(ctx context.Context, lineItemURL string) error {
	if lineItemURL == "" {
		return errors.NewPrecondition("line item URL is required")
	}
	if err := c.endpoint.requireScope(scope.CanWriteLineItem, string(scope.LineItem)); err != nil {
		return err
	}

	_, err := c.transport.Do(ctx, httpclient.Request{
		Method: http.MethodDelete,
		URL:    lineItemURL,
	})
	if err != nil {
		return errors.NewTransport("cannot delete line item", err)
	}

	return nil
}

func decodeLineItemPayload(body []byte) (*model.LineItem, error) {
	var lineItem model.LineItem
	if err := json.Unmarshal(body, &lineItem); err != nil {
		return nil, errors.NewValidation("malformed line item payload", err)
	}
	return &lineItem, nil
}
