// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/councilsuite/instrument-approval-service/internal/domain/model"
	"github.com/councilsuite/instrument-approval-service/internal/domain/port"
	errs "github.com/councilsuite/instrument-approval-service/pkg/errors"
	"github.com/councilsuite/instrument-approval-service/pkg/utils"
)

// GroupWriter defines the interface for approval group write operations
type GroupWriter interface {
	// CreateGroup creates a named approval group with an initial member set
	CreateGroup(ctx context.Context, name, description string, members []string) (*model.ApprovalGroup, error)

	// UpdateGroupMembers replaces the group's member set. Membership changes
	// take effect immediately for all pending verdicts; recorded votes of
	// removed members are kept
	UpdateGroupMembers(ctx context.Context, uid string, members []string) (*model.ApprovalGroup, error)
}

// groupWriterOrchestratorOption defines a function type for setting options
type groupWriterOrchestratorOption func(*groupWriterOrchestrator)

// WithGroupRepository sets the group repository
func WithGroupRepository(repo port.GroupReaderWriter) groupWriterOrchestratorOption {
	return func(w *groupWriterOrchestrator) {
		w.groupRepository = repo
	}
}

// WithGroupRetryConfig sets the retry budget for optimistic-revision conflicts
func WithGroupRetryConfig(config utils.RetryConfig) groupWriterOrchestratorOption {
	return func(w *groupWriterOrchestrator) {
		w.retryConfig = config
	}
}

// groupWriterOrchestrator orchestrates the group write operations
type groupWriterOrchestrator struct {
	groupRepository port.GroupReaderWriter
	retryConfig     utils.RetryConfig
}

// NewGroupWriterOrchestrator creates a new group writer orchestrator using the option pattern
func NewGroupWriterOrchestrator(opts ...groupWriterOrchestratorOption) GroupWriter {
	w := &groupWriterOrchestrator{
		retryConfig: utils.NewRetryConfig(3, 50*time.Millisecond, 500*time.Millisecond),
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// CreateGroup creates a named approval group with an initial member set
func (w *groupWriterOrchestrator) CreateGroup(ctx context.Context, name, description string, members []string) (*model.ApprovalGroup, error) {
	if name == "" {
		return nil, errs.NewValidation("group name is required")
	}

	now := time.Now().UTC()
	group := &model.ApprovalGroup{
		UID:         uuid.NewString(),
		Name:        name,
		Description: description,
		Members:     model.Dedupe(members),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, _, err := w.groupRepository.CreateGroup(ctx, group)
	if err != nil {
		slog.ErrorContext(ctx, "failed to store approval group",
			"error", err,
			"group_name", name,
		)
		return nil, err
	}

	slog.InfoContext(ctx, "approval group created",
		"group_uid", created.UID,
		"group_name", created.Name,
		"member_count", len(created.Members),
	)

	return created, nil
}

// UpdateGroupMembers replaces the group's member set
func (w *groupWriterOrchestrator) UpdateGroupMembers(ctx context.Context, uid string, members []string) (*model.ApprovalGroup, error) {
	var updated *model.ApprovalGroup

	err := utils.RetryOnConflict(ctx, w.retryConfig, func() error {
		group, revision, err := w.groupRepository.GetGroup(ctx, uid)
		if err != nil {
			return err
		}

		group.Members = model.Dedupe(members)
		group.UpdatedAt = time.Now().UTC()

		updated, _, err = w.groupRepository.UpdateGroup(ctx, uid, group, revision)
		return err
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to update group members",
			"error", err,
			"group_uid", uid,
		)
		return nil, err
	}

	slog.InfoContext(ctx, "group members updated",
		"group_uid", updated.UID,
		"member_count", len(updated.Members),
	)

	return updated, nil
}
