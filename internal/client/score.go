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
	"github.com/openlms/lti-ags-service/pkg/scope"
	"github.com/openlms/lti-ags-service/pkg/urlbuilder"
)

// lineItemReadScopes names the scopes a read operation accepts, for
// authorization failure messages.
const lineItemReadScopes = string(scope.LineItem) + " or " + string(scope.LineItemReadOnly)

// ScoreClient publishes scores against individual line items.
type ScoreClient struct {
	transport port.Transport
	endpoint  Endpoint
}

// NewScoreClient creates a score client for the given endpoint. A nil
// transport falls back to the retrying HTTP client.
func NewScoreClient(transport port.Transport, endpoint Endpoint) *ScoreClient {
	return &ScoreClient{transport: defaultTransport(transport), endpoint: endpoint}
}

// Publish posts a score to the scores sub-resource of the line item
// addressed by lineItemURL. An empty URL falls back to the endpoint's
// coupled line item.
func (c *ScoreClient) Publish(ctx context.Context, lineItemURL string, score *model.Score) error {
	if lineItemURL == "" {
		lineItemURL = c.endpoint.LineItemURL
	}
	if lineItemURL == "" {
		return errors.NewPrecondition("line item URL is required")
	}
	if err := c.endpoint.requireScope(scope.CanWriteScore, string(scope.Score)); err != nil {
		return err
	}

	scoreURL, err := urlbuilder.Build(lineItemURL, "scores")
	if err != nil {
		return err
	}

	body, err := json.Marshal(score)
	if err != nil {
		return errors.NewValidation("cannot encode score", err)
	}

	_, err = c.transport.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    scoreURL,
		Headers: map[string]string{
			constants.ContentTypeHeader: constants.MediaTypeScore.String(),
		},
		Body: bytes.NewReader(body),
	})
	if err != nil {
		return errors.NewTransport("cannot publish score", err)
	}

	return nil
}
