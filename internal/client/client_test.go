// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlms/lti-ags-service/internal/domain/model"
	"github.com/openlms/lti-ags-service/internal/infrastructure/mock"
	"github.com/openlms/lti-ags-service/pkg/constants"
	"github.com/openlms/lti-ags-service/pkg/errors"
	"github.com/openlms/lti-ags-service/pkg/httpclient"
	"github.com/openlms/lti-ags-service/pkg/paging"
	"github.com/openlms/lti-ags-service/pkg/scope"
)

func allScopesEndpoint() Endpoint {
	return Endpoint{
		LineItemsURL: "https://platform.example/ctx/42/line-items",
		Scopes: []scope.Scope{
			scope.LineItem,
			scope.LineItemReadOnly,
			scope.Score,
			scope.ResultReadOnly,
		},
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestNilTransportDefaultsToRetryingClient(t *testing.T) {
	lineItems := NewLineItemClient(nil, allScopesEndpoint())
	scores := NewScoreClient(nil, allScopesEndpoint())
	results := NewResultClient(nil, allScopesEndpoint())

	assert.IsType(t, &httpclient.Client{}, lineItems.transport)
	assert.IsType(t, &httpclient.Client{}, scores.transport)
	assert.IsType(t, &httpclient.Client{}, results.transport)
}

func TestLineItemListMissingURLShortCircuits(t *testing.T) {
	transport := mock.NewTransport()
	c := NewLineItemClient(transport, Endpoint{Scopes: []scope.Scope{scope.LineItem}})

	_, err := c.List(context.Background(), nil, nil)

	require.Error(t, err)
	assert.IsType(t, errors.Precondition{}, err)
	assert.Zero(t, transport.CallCount(), "preconditions must be checked before the network")
}

func TestLineItemListMissingScopeShortCircuits(t *testing.T) {
	transport := mock.NewTransport()
	endpoint := allScopesEndpoint()
	endpoint.Scopes = []scope.Scope{scope.Score}
	c := NewLineItemClient(transport, endpoint)

	_, err := c.List(context.Background(), nil, nil)

	require.Error(t, err)
	assert.IsType(t, errors.Authorization{}, err)
	assert.Contains(t, err.Error(), scope.LineItemReadOnly.String())
	assert.Zero(t, transport.CallCount())
}

func TestLineItemListBuildsFilteredURL(t *testing.T) {
	transport := mock.NewTransport()
	transport.Enqueue(&httpclient.Response{StatusCode: http.StatusOK, Body: []byte(`[]`)}, nil)
	c := NewLineItemClient(transport, allScopesEndpoint())

	cursor := &paging.Cursor{Limit: intPtr(5), Offset: intPtr(10)}
	filters := &model.LineItemFilters{Tag: strPtr("quiz")}
	_, err := c.List(context.Background(), filters, cursor)
	require.NoError(t, err)

	calls := transport.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodGet, calls[0].Request.Method)
	assert.Equal(t,
		"https://platform.example/ctx/42/line-items?limit=5&offset=10&tag=quiz",
		calls[0].Request.URL,
	)
	assert.Equal(t, constants.MediaTypeLineItemContainer.String(), calls[0].Request.Headers[constants.AcceptHeader])
}

func TestLineItemListPopulatesRelationLink(t *testing.T) {
	transport := mock.NewTransport()
	headers := http.Header{}
	headers.Set(constants.LinkHeader, `<https://platform.example/ctx/42/line-items?limit=5&offset=15>; rel="next"`)
	transport.Enqueue(&httpclient.Response{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       []byte(`[{"id": "https://platform.example/ctx/42/line-items/1", "scoreMaximum": 10, "label": "Quiz"}]`),
	}, nil)
	c := NewLineItemClient(transport, allScopesEndpoint())

	collection, err := c.List(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, collection.Len())
	assert.True(t, collection.HasNext())
	next, ok := collection.RelationLinkURL()
	require.True(t, ok)
	assert.Equal(t, "https://platform.example/ctx/42/line-items?limit=5&offset=15", next)
}

func TestLineItemListNoLinkMeansNoNextPage(t *testing.T) {
	transport := mock.NewTransport()
	transport.Enqueue(&httpclient.Response{StatusCode: http.StatusOK, Body: []byte(`[]`)}, nil)
	c := NewLineItemClient(transport, allScopesEndpoint())

	collection, err := c.List(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.False(t, collection.HasNext())
	_, ok := collection.RelationLinkURL()
	assert.False(t, ok)
}

func TestLineItemListWrapsTransportError(t *testing.T) {
	transport := mock.NewTransport()
	transport.Enqueue(nil, &httpclient.StatusError{StatusCode: http.StatusBadGateway, Message: "bad gateway"})
	c := NewLineItemClient(transport, allScopesEndpoint())

	_, err := c.List(context.Background(), nil, nil)

	require.Error(t, err)
	assert.IsType(t, errors.Transport{}, err)
	assert.Contains(t, err.Error(), "cannot list line items")
}

func TestLineItemGetFallsBackToCoupledLineItem(t *testing.T) {
	transport := mock.NewTransport()
	transport.Enqueue(&httpclient.Response{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"id": "https://platform.example/ctx/42/line-items/7", "scoreMaximum": 10, "label": "Quiz"}`),
	}, nil)
	endpoint := allScopesEndpoint()
	endpoint.LineItemURL = "https://platform.example/ctx/42/line-items/7"
	c := NewLineItemClient(transport, endpoint)

	lineItem, err := c.Get(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "Quiz", lineItem.Label)
	calls := transport.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, endpoint.LineItemURL, calls[0].Request.URL)
}

func TestLineItemCreateRequiresWriteScope(t *testing.T) {
	transport := mock.NewTransport()
	endpoint := allScopesEndpoint()
	endpoint.Scopes = []scope.Scope{scope.LineItemReadOnly}
	c := NewLineItemClient(transport, endpoint)

	_, err := c.Create(context.Background(), &model.LineItem{Label: "Quiz", ScoreMaximum: 10})

	require.Error(t, err)
	assert.Equal(t, "only allowed for scope "+scope.LineItem.String(), err.Error())
	assert.Zero(t, transport.CallCount())
}

func TestLineItemUpdateUsesIdentifierURL(t *testing.T) {
	transport := mock.NewTransport()
	transport.Enqueue(&httpclient.Response{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"id": "https://platform.example/ctx/42/line-items/7", "scoreMaximum": 10, "label": "Quiz v2"}`),
	}, nil)
	c := NewLineItemClient(transport, allScopesEndpoint())

	updated, err := c.Update(context.Background(), &model.LineItem{
		ID:           "https://platform.example/ctx/42/line-items/7",
		Label:        "Quiz v2",
		ScoreMaximum: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, "Quiz v2", updated.Label)
	calls := transport.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPut, calls[0].Request.Method)
	assert.Equal(t, "https://platform.example/ctx/42/line-items/7", calls[0].Request.URL)
}

func TestLineItemDelete(t *testing.T) {
	transport := mock.NewTransport()
	c := NewLineItemClient(transport, allScopesEndpoint())

	err := c.Delete(context.Background(), "https://platform.example/ctx/42/line-items/7")
	require.NoError(t, err)

	calls := transport.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodDelete, calls[0].Request.Method)
}

func TestScorePublishAppendsScoresSegment(t *testing.T) {
	transport := mock.NewTransport()
	c := NewScoreClient(transport, allScopesEndpoint())

	score := model.NewScore("u-1", model.ScoreOptions{})
	err := c.Publish(context.Background(), "https://platform.example/ctx/42/line-items/7", score)
	require.NoError(t, err)

	calls := transport.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "https://platform.example/ctx/42/line-items/7/scores", calls[0].Request.URL)
	assert.Equal(t, constants.MediaTypeScore.String(), calls[0].Request.Headers[constants.ContentTypeHeader])
}

func TestScorePublishRequiresScoreScope(t *testing.T) {
	transport := mock.NewTransport()
	endpoint := allScopesEndpoint()
	endpoint.Scopes = []scope.Scope{scope.LineItem}
	c := NewScoreClient(transport, endpoint)

	err := c.Publish(context.Background(), "https://platform.example/ctx/42/line-items/7", model.NewScore("u-1", model.ScoreOptions{}))

	require.Error(t, err)
	assert.IsType(t, errors.Authorization{}, err)
	assert.Zero(t, transport.CallCount())
}

func TestScorePublishMissingURLShortCircuits(t *testing.T) {
	transport := mock.NewTransport()
	c := NewScoreClient(transport, Endpoint{Scopes: []scope.Scope{scope.Score}})

	err := c.Publish(context.Background(), "", model.NewScore("u-1", model.ScoreOptions{}))

	require.Error(t, err)
	assert.IsType(t, errors.Precondition{}, err)
	assert.Zero(t, transport.CallCount())
}

func TestResultListAppendsResultsSegment(t *testing.T) {
	transport := mock.NewTransport()
	transport.Enqueue(&httpclient.Response{StatusCode: http.StatusOK, Body: []byte(`[]`)}, nil)
	c := NewResultClient(transport, allScopesEndpoint())

	filters := &model.ResultFilters{UserID: strPtr("u-1")}
	_, err := c.List(context.Background(), "https://platform.example/ctx/42/line-items/7", filters, &paging.Cursor{Limit: intPtr(3)})
	require.NoError(t, err)

	calls := transport.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t,
		"https://platform.example/ctx/42/line-items/7/results?limit=3&user_id=u-1",
		calls[0].Request.URL,
	)
	assert.Equal(t, constants.MediaTypeResultContainer.String(), calls[0].Request.Headers[constants.AcceptHeader])
}

func TestResultListWrapsTransportError(t *testing.T) {
	transport := mock.NewTransport()
	transport.Enqueue(nil, &httpclient.StatusError{StatusCode: http.StatusForbidden, Message: "forbidden"})
	c := NewResultClient(transport, allScopesEndpoint())

	_, err := c.List(context.Background(), "https://platform.example/ctx/42/line-items/7", nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot list results")
}
