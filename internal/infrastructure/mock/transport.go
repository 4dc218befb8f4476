// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"sync"

	"github.com/openlms/lti-ags-service/pkg/httpclient"
)

// TransportCall records one exchange the mock transport was asked to
// perform.
type TransportCall struct {
	Request httpclient.Request
}

// Transport is a fake outbound transport. Tests queue responses and
// assert on the recorded calls; a zero call count proves a precondition
// short-circuited before the network.
type Transport struct {
	mu        sync.Mutex
	calls     []TransportCall
	responses []*httpclient.Response
	errs      []error
}

// NewTransport creates an empty mock transport.
func NewTransport() *Transport {
	return &Transport{}
}

// Enqueue appends a canned response (or error) for a future call.
func (t *Transport) Enqueue(resp *httpclient.Response, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responses = append(t.responses, resp)
	t.errs = append(t.errs, err)
}

// Do records the call and replays the next canned response. With nothing
// queued it returns an empty 200.
func (t *Transport) Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.calls = append(t.calls, TransportCall{Request: req})

	if len(t.responses) == 0 {
		return &httpclient.Response{StatusCode: 200}, nil
	}

	resp, err := t.responses[0], t.errs[0]
	t.responses = t.responses[1:]
	t.errs = t.errs[1:]
	return resp, err
}

// CallCount returns the number of exchanges performed so far.
func (t *Transport) CallCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.calls)
}

// Calls returns the recorded exchanges.
func (t *Transport) Calls() []TransportCall {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]TransportCall(nil), t.calls...)
}
