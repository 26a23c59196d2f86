// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/councilsuite/instrument-approval-service/internal/domain/model"
	"github.com/councilsuite/instrument-approval-service/internal/domain/port"
	errs "github.com/councilsuite/instrument-approval-service/pkg/errors"
)

// SnapshotReader defines the interface for snapshot read operations
type SnapshotReader interface {
	// GetSnapshot retrieves a single submission snapshot
	GetSnapshot(ctx context.Context, uid string) (*model.Snapshot, error)

	// CompareSnapshots produces a line diff between two snapshots of the same
	// submission, with the older snapshot on the left-hand side
	CompareSnapshots(ctx context.Context, oldUID, newUID string) (*model.SnapshotDiff, error)
}

// snapshotReaderOrchestratorOption defines a function type for setting options
type snapshotReaderOrchestratorOption func(*snapshotReaderOrchestrator)

// WithSnapshotRetriever sets the snapshot reader port
func WithSnapshotRetriever(reader port.SnapshotReader) snapshotReaderOrchestratorOption {
	return func(r *snapshotReaderOrchestrator) {
		r.snapshotReader = reader
	}
}

// snapshotReaderOrchestrator orchestrates the snapshot read operations
type snapshotReaderOrchestrator struct {
	snapshotReader port.SnapshotReader
}

// NewSnapshotReaderOrchestrator creates a new snapshot reader orchestrator using the option pattern
func NewSnapshotReaderOrchestrator(opts ...snapshotReaderOrchestratorOption) SnapshotReader {
	r := &snapshotReaderOrchestrator{}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// GetSnapshot retrieves a single submission snapshot
func (r *snapshotReaderOrchestrator) GetSnapshot(ctx context.Context, uid string) (*model.Snapshot, error) {
	snapshot, err := r.snapshotReader.GetSnapshot(ctx, uid)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get submission snapshot",
			"error", err,
			"snapshot_uid", uid,
		)
		return nil, err
	}
	return snapshot, nil
}

// CompareSnapshots produces the line diff reviewers use to see how a
// submission changed between two approval requests. If the two UIDs are
// passed out of order, the older snapshot still ends up on the left.
func (r *snapshotReaderOrchestrator) CompareSnapshots(ctx context.Context, oldUID, newUID string) (*model.SnapshotDiff, error) {
	older, err := r.snapshotReader.GetSnapshot(ctx, oldUID)
	if err != nil {
		return nil, err
	}
	newer, err := r.snapshotReader.GetSnapshot(ctx, newUID)
	if err != nil {
		return nil, err
	}

	if older.SubmissionUID != newer.SubmissionUID {
		return nil, errs.NewValidation(fmt.Sprintf("snapshots %s and %s belong to different submissions", oldUID, newUID))
	}

	if newer.CreatedAt.Before(older.CreatedAt) {
		older, newer = newer, older
	}

	return &model.SnapshotDiff{
		SubmissionUID:  older.SubmissionUID,
		OldSnapshotUID: older.UID,
		NewSnapshotUID: newer.UID,
		Lines:          diffLines(older.ContentLines(), newer.ContentLines()),
	}, nil
}

// diffLines classifies each line of the two renderings as unchanged, removed,
// or added, based on the longest-common-subsequence opcodes.
func diffLines(oldLines, newLines []string) []model.DiffLine {
	matcher := difflib.NewMatcher(oldLines, newLines)

	var lines []model.DiffLine
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for _, text := range oldLines[op.I1:op.I2] {
				lines = append(lines, model.DiffLine{Op: model.DiffUnchanged, Text: text})
			}
		case 'd':
			for _, text := range oldLines[op.I1:op.I2] {
				lines = append(lines, model.DiffLine{Op: model.DiffRemoved, Text: text})
			}
		case 'i':
			for _, text := range newLines[op.J1:op.J2] {
				lines = append(lines, model.DiffLine{Op: model.DiffAdded, Text: text})
			}
		case 'r':
			for _, text := range oldLines[op.I1:op.I2] {
				lines = append(lines, model.DiffLine{Op: model.DiffRemoved, Text: text})
			}
			for _, text := range newLines[op.J1:op.J2] {
				lines = append(lines, model.DiffLine{Op: model.DiffAdded, Text: text})
			}
		}
	}
	return lines
}
