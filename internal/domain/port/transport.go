// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/openlms/lti-ags-service/pkg/httpclient"
)

// Transport executes the HTTP exchanges of the outbound service clients.
// The clients validate addressing and scope preconditions before ever
// calling the transport.
type Transport interface {
	Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error)
}
