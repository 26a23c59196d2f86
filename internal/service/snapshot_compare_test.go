// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/councilsuite/instrument-approval-service/internal/domain/model"
	"github.com/councilsuite/instrument-approval-service/internal/infrastructure/mock"
	errs "github.com/councilsuite/instrument-approval-service/pkg/errors"
)

func seedSnapshot(repo *mock.MockRepository, uid, submissionUID, subject, considerations string, createdAt time.Time) {
	repo.AddSnapshot(&model.Snapshot{
		UID:            uid,
		SubmissionUID:  submissionUID,
		Instrument:     "Motie",
		Subject:        subject,
		Date:           "2026-08-20",
		Considerations: considerations,
		Requests:       "verzoekt het college",
		CreatedAt:      createdAt,
	})
}

func TestGetSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewMockRepository()
	seedSnapshot(repo, "snap-1", "submission-1", "Meer groen", "overwegende", time.Now())

	reader := NewSnapshotReaderOrchestrator(WithSnapshotRetriever(repo))

	t.Run("returns the snapshot", func(t *testing.T) {
		snapshot, err := reader.GetSnapshot(ctx, "snap-1")
		require.NoError(t, err)
		assert.Equal(t, "Meer groen", snapshot.Subject)
	})

	t.Run("unknown UID reports not found", func(t *testing.T) {
		_, err := reader.GetSnapshot(ctx, "missing-snap")
		require.Error(t, err)

		var notFoundErr errs.NotFound
		assert.True(t, errors.As(err, &notFoundErr))
	})
}

func TestCompareSnapshots(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("classifies changed lines", func(t *testing.T) {
		repo := mock.NewMockRepository()
		seedSnapshot(repo, "snap-1", "submission-1", "Meer groen", "overwegende dat\nde stad versteent", now.Add(-time.Hour))
		seedSnapshot(repo, "snap-2", "submission-1", "Meer groen in de wijk", "overwegende dat\nde stad versteent", now)

		reader := NewSnapshotReaderOrchestrator(WithSnapshotRetriever(repo))
		diff, err := reader.CompareSnapshots(ctx, "snap-1", "snap-2")
		require.NoError(t, err)

		assert.Equal(t, "snap-1", diff.OldSnapshotUID)
		assert.Equal(t, "snap-2", diff.NewSnapshotUID)

		var removed, added []string
		for _, line := range diff.Lines {
			switch line.Op {
			case model.DiffRemoved:
				removed = append(removed, line.Text)
			case model.DiffAdded:
				added = append(added, line.Text)
			}
		}
		assert.Equal(t, []string{"Onderwerp: Meer groen"}, removed)
		assert.Equal(t, []string{"Onderwerp: Meer groen in de wijk"}, added)
	})

	t.Run("identical snapshots yield only unchanged lines", func(t *testing.T) {
		repo := mock.NewMockRepository()
		seedSnapshot(repo, "snap-1", "submission-1", "Meer groen", "overwegende", now.Add(-time.Hour))
		seedSnapshot(repo, "snap-2", "submission-1", "Meer groen", "overwegende", now)

		reader := NewSnapshotReaderOrchestrator(WithSnapshotRetriever(repo))
		diff, err := reader.CompareSnapshots(ctx, "snap-1", "snap-2")
		require.NoError(t, err)

		require.NotEmpty(t, diff.Lines)
		for _, line := range diff.Lines {
			assert.Equal(t, model.DiffUnchanged, line.Op)
		}
	})

	t.Run("orders the older snapshot on the left", func(t *testing.T) {
		repo := mock.NewMockRepository()
		seedSnapshot(repo, "snap-1", "submission-1", "Oud", "x", now.Add(-time.Hour))
		seedSnapshot(repo, "snap-2", "submission-1", "Nieuw", "x", now)

		reader := NewSnapshotReaderOrchestrator(WithSnapshotRetriever(repo))
		diff, err := reader.CompareSnapshots(ctx, "snap-2", "snap-1")
		require.NoError(t, err)

		assert.Equal(t, "snap-1", diff.OldSnapshotUID)
		assert.Equal(t, "snap-2", diff.NewSnapshotUID)
	})

	t.Run("refuses snapshots of different submissions", func(t *testing.T) {
		repo := mock.NewMockRepository()
		seedSnapshot(repo, "snap-1", "submission-1", "Een", "x", now.Add(-time.Hour))
		seedSnapshot(repo, "snap-2", "submission-2", "Twee", "x", now)

		reader := NewSnapshotReaderOrchestrator(WithSnapshotRetriever(repo))
		_, err := reader.CompareSnapshots(ctx, "snap-1", "snap-2")
		require.Error(t, err)

		var validationErr errs.Validation
		assert.True(t, errors.As(err, &validationErr))
	})

	t.Run("missing snapshot reports not found", func(t *testing.T) {
		repo := mock.NewMockRepository()
		seedSnapshot(repo, "snap-1", "submission-1", "Een", "x", now)

		reader := NewSnapshotReaderOrchestrator(WithSnapshotRetriever(repo))
		_, err := reader.CompareSnapshots(ctx, "snap-1", "missing-snap")
		require.Error(t, err)

		var notFoundErr errs.NotFound
		assert.True(t, errors.As(err, &notFoundErr))
	})
}
