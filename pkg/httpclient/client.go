// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client is a generic HTTP client with retry logic. Callers set their own
// Accept and Content-Type headers; AGS operations use vendor media types.
type Client struct {
	config     Config
	httpClient *http.Client
}

// Request is the configuration of a single HTTP exchange.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    io.Reader
}

// Response is the transport-level result of an exchange.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// StatusError is returned for responses with a 4xx or 5xx status code.
// The response itself is still handed back so callers can inspect it.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return e.Message
}

// Do executes an HTTP request, retrying transient failures up to the
// configured number of attempts.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	// A retry re-submits the body, so capture it once up front; the
	// reader the caller handed over is consumed by the first attempt.
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
	}

	var (
		lastResponse *Response
		lastErr      error
	)

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.config.RetryDelay
			if c.config.RetryBackoff {
				delay = time.Duration(int64(delay) * int64(1<<(attempt-1)))
			}

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		response, err := c.doRequest(ctx, req, body)
		if err == nil {
			return response, nil
		}

		lastResponse = response
		lastErr = err

		if !c.shouldRetry(err) {
			break
		}
	}

	slog.ErrorContext(ctx, "request failed",
		"method", req.Method,
		"url", req.URL,
		"error", lastErr,
	)

	return lastResponse, lastErr
}

// doRequest performs a single HTTP request with a fresh body reader.
func (c *Client) doRequest(ctx context.Context, reqConfig Request, body []byte) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, reqConfig.Method, reqConfig.URL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range reqConfig.Headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return response, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	return response, nil
}

// shouldRetry determines if a request should be retried based on the error.
func (c *Client) shouldRetry(err error) bool {
	if err == nil {
		return false
	}

	if statusErr, ok := err.(*StatusError); ok {
		// Retry on server errors and rate limiting.
		return statusErr.StatusCode >= http.StatusInternalServerError ||
			statusErr.StatusCode == http.StatusTooManyRequests
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "network")
}

// NewClient creates a new HTTP client with the given configuration.
func NewClient(config Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}
