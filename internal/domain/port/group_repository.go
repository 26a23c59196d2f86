// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/councilsuite/instrument-approval-service/internal/domain/model"
)

// GroupReader defines read operations for approval groups
type GroupReader interface {
	// GetGroup retrieves a group by UID and returns its revision
	GetGroup(ctx context.Context, uid string) (*model.ApprovalGroup, uint64, error)

	// ListGroups retrieves all approval groups
	ListGroups(ctx context.Context) ([]*model.ApprovalGroup, error)
}

// GroupWriter defines write operations for approval groups
type GroupWriter interface {
	// CreateGroup stores a new group and returns it with its revision
	CreateGroup(ctx context.Context, group *model.ApprovalGroup) (*model.ApprovalGroup, uint64, error)

	// UpdateGroup conditionally replaces a group at expectedRevision
	UpdateGroup(ctx context.Context, uid string, group *model.ApprovalGroup, expectedRevision uint64) (*model.ApprovalGroup, uint64, error)
}

// GroupReaderWriter combines group reads and writes
type GroupReaderWriter interface {
	GroupReader
	GroupWriter
}
