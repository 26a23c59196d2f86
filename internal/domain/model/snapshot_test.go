// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContent() *SubmissionContent {
	return &SubmissionContent{
		SubmissionUID:  "sub-1",
		Instrument:     "Motie",
		Subject:        "Verkeersveiligheid centrum",
		Date:           "2025-06-12",
		Considerations: "overwegende dat;\nde situatie onveilig is",
		Requests:       "verzoekt het college\neen plan op te stellen",
		Submitters: []Submitter{
			{Initials: "J.", Lastname: "Jansen", Party: "Partij A"},
			{Initials: "P.", Lastname: "Pietersen", Party: "Partij B"},
		},
	}
}

func TestNewSnapshotCopiesContent(t *testing.T) {
	content := sampleContent()
	now := time.Now()

	snap := NewSnapshot("snap-1", content, now)

	assert.Equal(t, "snap-1", snap.UID)
	assert.Equal(t, "sub-1", snap.SubmissionUID)
	assert.Equal(t, "Motie", snap.Instrument)
	assert.Equal(t, now, snap.CreatedAt)
	require.Len(t, snap.Submitters, 2)

	// Mutating the source afterwards must not leak into the snapshot.
	content.Submitters[0].Lastname = "Gewijzigd"
	assert.Equal(t, "Jansen", snap.Submitters[0].Lastname)
}

func TestSnapshotContentLines(t *testing.T) {
	snap := NewSnapshot("snap-1", sampleContent(), time.Now())

	lines := snap.ContentLines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "Instrument: Motie", lines[0])
	assert.Equal(t, "Onderwerp: Verkeersveiligheid centrum", lines[1])
	assert.Equal(t, "Datum: 2025-06-12", lines[2])
	assert.Equal(t, "Indiener: J. Jansen (Partij A)", lines[3])
	assert.Contains(t, lines, "overwegende dat;")
	assert.Contains(t, lines, "verzoekt het college")
}

func TestSnapshotContentLinesEmptyFields(t *testing.T) {
	snap := NewSnapshot("snap-1", &SubmissionContent{
		SubmissionUID: "sub-1",
		Instrument:    "Agendapunt",
		Subject:       "Begroting",
		Date:          "2025-09-01",
	}, time.Now())

	lines := snap.ContentLines()
	// Header lines plus the two field separators; empty free-text fields
	// contribute no lines of their own.
	assert.Len(t, lines, 5)
}
