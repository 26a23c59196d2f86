// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/councilsuite/instrument-approval-service/internal/domain/model"
	"github.com/councilsuite/instrument-approval-service/internal/domain/port"
)

// ApprovalReader defines the interface for approval request read operations
type ApprovalReader interface {
	// GetApprovalRequest retrieves a single request with its group verdicts
	GetApprovalRequest(ctx context.Context, uid string) (*model.ApprovalRequest, error)

	// ListApprovalRequestsBySubmission retrieves the full approval history of
	// a submission, oldest request first
	ListApprovalRequestsBySubmission(ctx context.Context, submissionUID string) ([]*model.ApprovalRequest, error)

	// AuditTrail returns the request's audit log, newest entry first
	AuditTrail(ctx context.Context, uid string) ([]model.AuditEntry, error)

	// CanUserReview reports whether the user belongs to a group whose verdict
	// is still pending on a pending request; the requester is never eligible
	CanUserReview(ctx context.Context, uid, user string) (bool, error)
}

// approvalReaderOrchestratorOption defines a function type for setting options
type approvalReaderOrchestratorOption func(*approvalReaderOrchestrator)

// WithApprovalRetriever sets the approval request reader
func WithApprovalRetriever(reader port.ApprovalRequestReader) approvalReaderOrchestratorOption {
	return func(r *approvalReaderOrchestrator) {
		r.approvalReader = reader
	}
}

// WithGroupResolver sets the group reader used for eligibility checks
func WithGroupResolver(reader port.GroupReader) approvalReaderOrchestratorOption {
	return func(r *approvalReaderOrchestrator) {
		r.groupReader = reader
	}
}

// approvalReaderOrchestrator orchestrates the approval read operations
type approvalReaderOrchestrator struct {
	approvalReader port.ApprovalRequestReader
	groupReader    port.GroupReader
}

// NewApprovalReaderOrchestrator creates a new reader orchestrator using the option pattern
func NewApprovalReaderOrchestrator(opts ...approvalReaderOrchestratorOption) ApprovalReader {
	r := &approvalReaderOrchestrator{}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// GetApprovalRequest retrieves a single request with its group verdicts
func (r *approvalReaderOrchestrator) GetApprovalRequest(ctx context.Context, uid string) (*model.ApprovalRequest, error) {
	request, _, err := r.approvalReader.GetApprovalRequest(ctx, uid)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get approval request",
			"error", err,
			"request_uid", uid,
		)
		return nil, err
	}
	return request, nil
}

// ListApprovalRequestsBySubmission retrieves the full approval history of a submission
func (r *approvalReaderOrchestrator) ListApprovalRequestsBySubmission(ctx context.Context, submissionUID string) ([]*model.ApprovalRequest, error) {
	requests, err := r.approvalReader.ListApprovalRequestsBySubmission(ctx, submissionUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list approval requests",
			"error", err,
			"submission_uid", submissionUID,
		)
		return nil, err
	}
	return requests, nil
}

// AuditTrail returns the request's audit log, newest entry first
func (r *approvalReaderOrchestrator) AuditTrail(ctx context.Context, uid string) ([]model.AuditEntry, error) {
	request, _, err := r.approvalReader.GetApprovalRequest(ctx, uid)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get approval request for audit trail",
			"error", err,
			"request_uid", uid,
		)
		return nil, err
	}
	return request.AuditTrail(), nil
}

// CanUserReview reports whether the user belongs to at least one group whose
// verdict is still pending. A member who already voted stays eligible while
// their group's verdict is open; the per-vote preconditions refuse a second
// vote. Eligibility follows the groups' current membership.
func (r *approvalReaderOrchestrator) CanUserReview(ctx context.Context, uid, user string) (bool, error) {
	request, _, err := r.approvalReader.GetApprovalRequest(ctx, uid)
	if err != nil {
		return false, err
	}

	if request.Status.IsTerminal() {
		return false, nil
	}
	if user == "" || user == request.Requester {
		return false, nil
	}

	for _, verdict := range request.Verdicts {
		if verdict.Status != model.StatusPending {
			continue
		}
		group, _, err := r.groupReader.GetGroup(ctx, verdict.GroupUID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to resolve approval group",
				"error", err,
				"group_uid", verdict.GroupUID,
				"request_uid", uid,
			)
			return false, err
		}
		if group.HasMember(user) {
			return true, nil
		}
	}

	return false, nil
}
