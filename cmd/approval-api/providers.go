// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/councilsuite/instrument-approval-service/internal/domain/port"
	"github.com/councilsuite/instrument-approval-service/internal/infrastructure/mock"
	"github.com/councilsuite/instrument-approval-service/internal/infrastructure/nats"
	"github.com/councilsuite/instrument-approval-service/pkg/config"
)

// dependencies holds the infrastructure implementations behind the ports
type dependencies struct {
	natsClient         *nats.NATSClient
	approvalRepository port.ApprovalRequestReaderWriter
	groupRepository    port.GroupReaderWriter
	snapshotRepository port.SnapshotReaderWriter
	submissionReader   port.SubmissionReader
	reviewerDirectory  port.ReviewerDirectory
	publisher          port.NotificationPublisher
}

// initDependencies wires the storage and messaging implementations. The API
// subjects are always served over NATS; REPOSITORY_SOURCE=mock swaps the
// repositories and collaborator clients for in-memory ones, for local
// development without JetStream buckets or the other council services.
func initDependencies(ctx context.Context, cfg *config.Config) (*dependencies, error) {
	repoSource := os.Getenv("REPOSITORY_SOURCE")
	if repoSource == "" {
		repoSource = "nats"
	}

	client, err := nats.NewClient(ctx, nats.Config{
		URL:            cfg.NATS.URL,
		Timeout:        cfg.NATS.Timeout,
		MaxReconnect:   cfg.NATS.MaxReconnect,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		SkipBucketInit: repoSource == "mock",
	})
	if err != nil {
		return nil, err
	}

	if repoSource == "mock" {
		slog.InfoContext(ctx, "initializing mock repositories")
		repo := mock.NewMockRepository()
		return &dependencies{
			natsClient:         client,
			approvalRepository: repo,
			groupRepository:    repo,
			snapshotRepository: repo,
			submissionReader:   mock.NewMockSubmissionReader(),
			reviewerDirectory:  mock.NewMockReviewerDirectory(),
			publisher:          mock.NewMockNotificationPublisher(),
		}, nil
	}

	slog.InfoContext(ctx, "initializing NATS repositories")
	storage := nats.NewStorage(client)
	return &dependencies{
		natsClient:         client,
		approvalRepository: storage,
		groupRepository:    storage,
		snapshotRepository: storage,
		submissionReader:   nats.NewSubmissionReader(client),
		reviewerDirectory:  nats.NewReviewerDirectory(client),
		publisher:          nats.NewNotificationPublisher(client),
	}, nil
}
