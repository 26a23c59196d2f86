// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/councilsuite/instrument-approval-service/internal/domain/model"
)

// SnapshotReader defines read operations for submission snapshots
type SnapshotReader interface {
	// GetSnapshot retrieves a snapshot by UID
	GetSnapshot(ctx context.Context, uid string) (*model.Snapshot, error)
}

// SnapshotWriter defines write operations for submission snapshots.
// Snapshots are created once and never mutated, so there is no update.
type SnapshotWriter interface {
	// CreateSnapshot stores a new immutable snapshot
	CreateSnapshot(ctx context.Context, snapshot *model.Snapshot) (*model.Snapshot, error)
}

// SnapshotReaderWriter combines snapshot reads and writes
type SnapshotReaderWriter interface {
	SnapshotReader
	SnapshotWriter
}
