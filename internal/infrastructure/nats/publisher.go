// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/openlms/lti-ags-service/internal/domain/model"
)

// Publisher wraps the NATS connection and emits grading events.
type Publisher struct {
	conn   *nats.Conn
	config Config
}

// ScorePublished emits one grading event for the line item.
func (p *Publisher) ScorePublished(ctx context.Context, lineItemID string, score *model.Score) error {
	event := ScorePublishedEvent{
		LineItemID:   lineItemID,
		UserID:       score.UserID,
		ScoreGiven:   score.ScoreGiven,
		ScoreMaximum: score.ScoreMaximum,
		Timestamp:    score.Timestamp,
	}

	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode grading event: %w", err)
	}

	if err := p.conn.Publish(ScorePublishedSubject, message); err != nil {
		slog.ErrorContext(ctx, "NATS publish failed",
			"subject", ScorePublishedSubject,
			"error", err,
		)
		return fmt.Errorf("NATS publish failed: %w", err)
	}

	slog.DebugContext(ctx, "published grading event",
		"subject", ScorePublishedSubject,
		"line_item_id", lineItemID,
		"user_id", score.UserID,
	)

	return nil
}

// Close gracefully closes the NATS connection.
func (p *Publisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

// NewPublisher creates a NATS publisher with the given configuration.
func NewPublisher(ctx context.Context, config Config) (*Publisher, error) {
	slog.InfoContext(ctx, "creating NATS publisher",
		"url", config.URL,
		"timeout", config.Timeout,
	)

	opts := []nats.Option{
		nats.Name("lti-ags-service"),
		nats.Timeout(config.Timeout),
		nats.MaxReconnects(config.MaxReconnect),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			slog.WarnContext(ctx, "NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS connection closed")
		}),
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to NATS", "error", err)
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	publisher := &Publisher{
		conn:   conn,
		config: config,
	}

	slog.InfoContext(ctx, "NATS publisher created successfully",
		"connected_url", conn.ConnectedUrl(),
		"status", conn.Status(),
	)

	return publisher, nil
}
