// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package model

// DiffOp classifies one line of a snapshot comparison.
type DiffOp string

// DiffOp values
const (
	// DiffUnchanged means the line appears in both snapshots
	DiffUnchanged DiffOp = "unchanged"
	// DiffAdded means the line only appears in the newer snapshot
	DiffAdded DiffOp = "added"
	// DiffRemoved means the line only appears in the older snapshot
	DiffRemoved DiffOp = "removed"
)

// DiffLine is one classified line of a snapshot comparison.
type DiffLine struct {
	Op   DiffOp `json:"op"`
	Text string `json:"text"`
}

// SnapshotDiff is the line-level comparison of two snapshots of the same
// submission, oldest snapshot on the left. Read-only; it has no effect on the
// approval state machine.
type SnapshotDiff struct {
	SubmissionUID  string     `json:"submission_uid"`
	OldSnapshotUID string     `json:"old_snapshot_uid"`
	NewSnapshotUID string     `json:"new_snapshot_uid"`
	Lines          []DiffLine `json:"lines"`
}
