// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

// Package port defines the interfaces for external dependencies and adapters.
package port

import (
	"context"

	"github.com/councilsuite/instrument-approval-service/internal/domain/model"
)

// ApprovalRequestReader defines read operations for approval requests
type ApprovalRequestReader interface {
	// GetApprovalRequest retrieves a request aggregate by UID and returns its revision
	GetApprovalRequest(ctx context.Context, uid string) (*model.ApprovalRequest, uint64, error)

	// ListApprovalRequestsBySubmission retrieves every request ever filed for
	// a submission, ordered by creation time ascending.
	// Returns empty slice if none found (not an error)
	ListApprovalRequestsBySubmission(ctx context.Context, submissionUID string) ([]*model.ApprovalRequest, error)
}

// ApprovalRequestWriter defines write operations for approval requests.
// The request aggregate (request, group verdicts, audit log) persists as one
// document, so a vote transaction is a single conditional write: implementations
// must reject UpdateApprovalRequest when the stored revision no longer matches
// expectedRevision, reporting a Conflict error the orchestrator retries.
type ApprovalRequestWriter interface {
	// CreateApprovalRequest stores a new request aggregate and returns it with its revision
	CreateApprovalRequest(ctx context.Context, request *model.ApprovalRequest) (*model.ApprovalRequest, uint64, error)

	// UpdateApprovalRequest conditionally replaces the aggregate at expectedRevision
	UpdateApprovalRequest(ctx context.Context, uid string, request *model.ApprovalRequest, expectedRevision uint64) (*model.ApprovalRequest, uint64, error)
}

// ApprovalRequestReaderWriter combines request reads and writes, as implemented
// by the NATS storage layer (production) and the mock repository (testing).
type ApprovalRequestReaderWriter interface {
	ApprovalRequestReader
	ApprovalRequestWriter

	// IsReady checks if the underlying storage is reachable
	IsReady(ctx context.Context) error
}
