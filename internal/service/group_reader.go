// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

// Package service implements the approval workflow orchestration between the
// transport layer and the storage and messaging ports.
package service

import (
	"context"
	"log/slog"

	"github.com/councilsuite/instrument-approval-service/internal/domain/model"
	"github.com/councilsuite/instrument-approval-service/internal/domain/port"
)

// GroupReader defines the interface for approval group read operations
type GroupReader interface {
	// GetGroup retrieves a single group by UID
	GetGroup(ctx context.Context, uid string) (*model.ApprovalGroup, error)

	// ListGroups retrieves all approval groups
	ListGroups(ctx context.Context) ([]*model.ApprovalGroup, error)
}

// groupReaderOrchestratorOption defines a function type for setting options
type groupReaderOrchestratorOption func(*groupReaderOrchestrator)

// WithGroupRetrieverSource sets the group reader port
func WithGroupRetrieverSource(reader port.GroupReader) groupReaderOrchestratorOption {
	return func(r *groupReaderOrchestrator) {
		r.groupReader = reader
	}
}

// groupReaderOrchestrator orchestrates the group read operations
type groupReaderOrchestrator struct {
	groupReader port.GroupReader
}

// NewGroupReaderOrchestrator creates a new group reader orchestrator using the option pattern
func NewGroupReaderOrchestrator(opts ...groupReaderOrchestratorOption) GroupReader {
	r := &groupReaderOrchestrator{}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// GetGroup retrieves a single group by UID
func (r *groupReaderOrchestrator) GetGroup(ctx context.Context, uid string) (*model.ApprovalGroup, error) {
	group, _, err := r.groupReader.GetGroup(ctx, uid)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get approval group",
			"error", err,
			"group_uid", uid,
		)
		return nil, err
	}
	return group, nil
}

// ListGroups retrieves all approval groups
func (r *groupReaderOrchestrator) ListGroups(ctx context.Context) ([]*model.ApprovalGroup, error) {
	groups, err := r.groupReader.ListGroups(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list approval groups", "error", err)
		return nil, err
	}
	return groups, nil
}
