// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

// Package service wires the infrastructure implementations the service
// runs with, selected through environment variables.
package service

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/openlms/lti-ags-service/internal/domain/port"
	"github.com/openlms/lti-ags-service/internal/handler"
	"github.com/openlms/lti-ags-service/internal/infrastructure/auth"
	"github.com/openlms/lti-ags-service/internal/infrastructure/memory"
	"github.com/openlms/lti-ags-service/internal/infrastructure/mock"
	"github.com/openlms/lti-ags-service/internal/infrastructure/nats"
	"github.com/openlms/lti-ags-service/internal/infrastructure/sqlite"
)

// RepositoriesImpl injects the repository implementations.
func RepositoriesImpl(ctx context.Context) handler.Repositories {

	// Repository implementation configuration
	repositorySource := os.Getenv("REPOSITORY_SOURCE")
	if repositorySource == "" {
		repositorySource = "memory"
	}

	switch repositorySource {
	case "memory":
		slog.InfoContext(ctx, "initializing in-memory repositories")
		store := memory.NewStore()
		return handler.Repositories{LineItems: store, Scores: store, Results: store}

	case "sqlite":
		sqlitePath := os.Getenv("SQLITE_PATH")
		if sqlitePath == "" {
			sqlitePath = "ags.db"
		}
		slog.InfoContext(ctx, "initializing sqlite repositories",
			"path", sqlitePath,
		)
		db, err := sqlite.OpenDB(sqlitePath)
		if err != nil {
			log.Fatalf("failed to open sqlite database: %v", err)
		}
		store := sqlite.NewStore(db)
		return handler.Repositories{LineItems: store, Scores: store, Results: store}

	default:
		log.Fatalf("unsupported repository implementation: %s", repositorySource)
		return handler.Repositories{}
	}
}

// TokenValidatorImpl injects the access token validator implementation.
func TokenValidatorImpl(ctx context.Context) port.TokenValidator {

	// Auth implementation configuration
	authSource := os.Getenv("AUTH_SOURCE")
	if authSource == "" {
		authSource = "jwt"
	}

	switch authSource {
	case "mock":
		slog.InfoContext(ctx, "initializing mock token validator")
		return mock.NewTokenValidatorFromEnv()

	case "jwt":
		config := auth.Config{
			JWKSURL:  os.Getenv("JWKS_URL"),
			Issuer:   os.Getenv("JWT_ISSUER"),
			Audience: os.Getenv("JWT_AUDIENCE"),
		}
		slog.InfoContext(ctx, "initializing JWT token validator",
			"jwks_url", config.JWKSURL,
			"issuer", config.Issuer,
			"audience", config.Audience,
		)
		validator, err := auth.NewJWTValidator(config)
		if err != nil {
			log.Fatalf("failed to initialize JWT token validator: %v", err)
		}
		return validator

	default:
		log.Fatalf("unsupported auth implementation: %s", authSource)
		return nil
	}
}

// ScoreNotifierImpl injects the score notifier implementation.
func ScoreNotifierImpl(ctx context.Context) port.ScoreNotifier {

	// Notifier implementation configuration
	notifierSource := os.Getenv("NOTIFIER_SOURCE")
	if notifierSource == "" {
		notifierSource = "nats"
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	natsTimeout := os.Getenv("NATS_TIMEOUT")
	if natsTimeout == "" {
		natsTimeout = "10s"
	}
	natsTimeoutDuration, err := time.ParseDuration(natsTimeout)
	if err != nil {
		log.Fatalf("invalid NATS timeout duration: %v", err)
	}

	natsMaxReconnect := os.Getenv("NATS_MAX_RECONNECT")
	if natsMaxReconnect == "" {
		natsMaxReconnect = "3"
	}
	natsMaxReconnectInt, err := strconv.Atoi(natsMaxReconnect)
	if err != nil {
		log.Fatalf("invalid NATS max reconnect value %s: %v", natsMaxReconnect, err)
	}

	natsReconnectWait := os.Getenv("NATS_RECONNECT_WAIT")
	if natsReconnectWait == "" {
		natsReconnectWait = "2s"
	}
	natsReconnectWaitDuration, err := time.ParseDuration(natsReconnectWait)
	if err != nil {
		log.Fatalf("invalid NATS reconnect wait duration %s : %v", natsReconnectWait, err)
	}

	switch notifierSource {
	case "none":
		slog.InfoContext(ctx, "score notifications disabled")
		return nil

	case "nats":
		slog.InfoContext(ctx, "initializing NATS score notifier")
		natsConfig := nats.Config{
			URL:           natsURL,
			Timeout:       natsTimeoutDuration,
			MaxReconnect:  natsMaxReconnectInt,
			ReconnectWait: natsReconnectWaitDuration,
		}

		publisher, err := nats.NewPublisher(ctx, natsConfig)
		if err != nil {
			log.Fatalf("failed to initialize NATS score notifier: %v", err)
		}
		return publisher

	default:
		log.Fatalf("unsupported notifier implementation: %s", notifierSource)
		return nil
	}
}
