// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

// Command approval-api serves the instrument approval workflow over NATS
// request/reply subjects.
package main

import (
	"context"
	stdlog "log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/councilsuite/instrument-approval-service/internal/service"
	"github.com/councilsuite/instrument-approval-service/pkg/config"
	"github.com/councilsuite/instrument-approval-service/pkg/constants"
	"github.com/councilsuite/instrument-approval-service/pkg/log"
	"github.com/councilsuite/instrument-approval-service/pkg/utils"
)

func main() {
	log.InitStructureLogConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("invalid configuration: %v", err)
	}

	deps, err := initDependencies(ctx, cfg)
	if err != nil {
		stdlog.Fatalf("failed to initialize dependencies: %v", err)
	}

	retryConfig := utils.NewRetryConfig(cfg.Retry.MaxAttempts, cfg.Retry.BaseDelay, cfg.Retry.MaxDelay)

	app := &application{
		approvalWriter: service.NewApprovalWriterOrchestrator(
			service.WithApprovalRepository(deps.approvalRepository),
			service.WithGroupRetriever(deps.groupRepository),
			service.WithSnapshotWriter(deps.snapshotRepository),
			service.WithSubmissionReader(deps.submissionReader),
			service.WithReviewerDirectory(deps.reviewerDirectory),
			service.WithNotificationPublisher(deps.publisher),
			service.WithWriterRetryConfig(retryConfig),
			service.WithApprovalsEnabled(cfg.Approvals.Enabled),
		),
		approvalReader: service.NewApprovalReaderOrchestrator(
			service.WithApprovalRetriever(deps.approvalRepository),
			service.WithGroupResolver(deps.groupRepository),
		),
		groupWriter: service.NewGroupWriterOrchestrator(
			service.WithGroupRepository(deps.groupRepository),
			service.WithGroupRetryConfig(retryConfig),
		),
		groupReader: service.NewGroupReaderOrchestrator(
			service.WithGroupRetrieverSource(deps.groupRepository),
		),
		snapshotReader: service.NewSnapshotReaderOrchestrator(
			service.WithSnapshotRetriever(deps.snapshotRepository),
		),
	}

	var wg sync.WaitGroup
	if err := app.subscribe(ctx, deps.natsClient, &wg); err != nil {
		stdlog.Fatalf("failed to subscribe to API subjects: %v", err)
	}

	slog.InfoContext(ctx, "approval service started",
		"nats_url", cfg.NATS.URL,
		"approvals_enabled", cfg.Approvals.Enabled,
	)

	<-ctx.Done()
	slog.InfoContext(ctx, "shutting down approval service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if deps.natsClient != nil {
			if err := deps.natsClient.Drain(); err != nil {
				slog.ErrorContext(shutdownCtx, "failed to drain NATS connection", "error", err)
			}
		}
		wg.Wait()
	}()

	select {
	case <-done:
		slog.InfoContext(shutdownCtx, "approval service stopped")
	case <-shutdownCtx.Done():
		slog.WarnContext(shutdownCtx, "shutdown timed out, exiting anyway")
	}
}

// application bundles the orchestrators behind the NATS subject handlers
type application struct {
	approvalWriter service.ApprovalWriter
	approvalReader service.ApprovalReader
	groupWriter    service.GroupWriter
	groupReader    service.GroupReader
	snapshotReader service.SnapshotReader
}

// handlerTimeout bounds the processing of one API message
const handlerTimeout = 30 * time.Second

// queue is the shared queue group for load-balanced subject handling
const queue = constants.ApprovalAPIQueue
