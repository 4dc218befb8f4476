// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

// Package client implements the tool-side grade services clients. Each
// client checks its addressing and scope preconditions locally before
// performing any network exchange.
package client

import (
	"net/http"
	"strconv"

	"github.com/openlms/lti-ags-service/internal/domain/model"
	"github.com/openlms/lti-ags-service/internal/domain/port"
	"github.com/openlms/lti-ags-service/pkg/constants"
	"github.com/openlms/lti-ags-service/pkg/errors"
	"github.com/openlms/lti-ags-service/pkg/httpclient"
	"github.com/openlms/lti-ags-service/pkg/paging"
	"github.com/openlms/lti-ags-service/pkg/scope"
	"github.com/openlms/lti-ags-service/pkg/urlbuilder"
)

// defaultTransport substitutes the retrying HTTP client when no
// transport is injected; tests hand in a mock instead.
func defaultTransport(transport port.Transport) port.Transport {
	if transport != nil {
		return transport
	}
	return httpclient.NewClient(httpclient.DefaultConfig())
}

// Endpoint describes the grade services endpoint advertised to a tool:
// the collection URL, an optional coupled line item URL, and the scopes
// the platform granted.
type Endpoint struct {
	// LineItemsURL addresses the line item collection of one context.
	LineItemsURL string
	// LineItemURL addresses the single line item coupled to the resource
	// link the launch came from, when the platform advertises one.
	LineItemURL string
	// Scopes is the granted scope set.
	Scopes []scope.Scope
}

func (e Endpoint) requireScope(allowed func([]scope.Scope) bool, required string) error {
	if !allowed(e.Scopes) {
		return errors.NewAuthorization("only allowed for scope " + required)
	}
	return nil
}

// cursorParams renders a pagination cursor as query parameters,
// omitting absent members.
func cursorParams(cursor *paging.Cursor) []urlbuilder.Param {
	if cursor == nil {
		return nil
	}
	var params []urlbuilder.Param
	if cursor.Limit != nil {
		params = append(params, urlbuilder.Param{Key: constants.QueryLimit, Value: strconv.Itoa(*cursor.Limit)})
	}
	if cursor.Offset != nil {
		params = append(params, urlbuilder.Param{Key: constants.QueryOffset, Value: strconv.Itoa(*cursor.Offset)})
	}
	return params
}

// applyRelationLink copies a next-page relation link from the response
// headers onto the collection.
func applyRelationLink[T model.Identifiable](c *model.Collection[T], headers http.Header) {
	link := headers.Get(constants.LinkHeader)
	if link == "" {
		return
	}
	c.SetRelationLink(link)
	if _, ok := c.RelationLinkURL(); ok {
		c.SetHasNext(true)
	}
}
