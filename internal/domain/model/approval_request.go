// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"time"
)

// ApprovalStatus is the verdict state shared by requests and group verdicts.
type ApprovalStatus string

// ApprovalStatus values
const (
	// StatusPending means the verdict is still open
	StatusPending ApprovalStatus = "pending"
	// StatusApproved is a terminal approval
	StatusApproved ApprovalStatus = "approved"
	// StatusRejected is a terminal rejection
	StatusRejected ApprovalStatus = "rejected"
)

// IsTerminal reports whether the status is approved or rejected. Terminal
// transitions are one-way: nothing moves a request out of a terminal state.
func (s ApprovalStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ApprovalRequest is the aggregate root of the approval workflow. The set of
// required groups is fixed at creation; the status field is the only part
// mutated after creation, and only ever through RecomputeStatus. The group
// verdicts and the append-only audit log live inside the aggregate so a vote
// commits as one storage write.
type ApprovalRequest struct {
	UID               string          `json:"uid"`
	SubmissionUID     string          `json:"submission_uid"`
	SnapshotUID       string          `json:"snapshot_uid"`
	Requester         string          `json:"requester"`
	Status            ApprovalStatus  `json:"status"`
	RequiredGroupUIDs []string        `json:"required_group_uids"`
	RequestComment    string          `json:"request_comment,omitempty"`
	ReviewComment     string          `json:"review_comment,omitempty"`
	Reviewer          string          `json:"reviewer,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	ReviewedAt        *time.Time      `json:"reviewed_at,omitempty"`
	Verdicts          []*GroupVerdict `json:"verdicts"`
	AuditLog          []AuditEntry    `json:"audit_log"`
}

// VerdictForGroup returns the verdict tracking the given group, or nil.
func (r *ApprovalRequest) VerdictForGroup(groupUID string) *GroupVerdict {
	for _, v := range r.Verdicts {
		if v.GroupUID == groupUID {
			return v
		}
	}
	return nil
}

// AggregateStatus derives the overall status from the current group verdicts.
// Pure function of the verdict set: recomputing twice yields the same result.
//
//   - any group verdict rejected: rejected
//   - every required group approved, and there is at least one: approved
//   - otherwise: pending
func (r *ApprovalRequest) AggregateStatus() ApprovalStatus {
	approved := 0
	for _, v := range r.Verdicts {
		switch v.Status {
		case StatusRejected:
			return StatusRejected
		case StatusApproved:
			approved++
		}
	}

	required := len(r.RequiredGroupUIDs)
	if required > 0 && approved >= required {
		return StatusApproved
	}

	return StatusPending
}

// RecomputeStatus applies AggregateStatus to the request. On a transition
// into a terminal state it records the acting user as reviewer (informational
// only), the review comment, and the reviewed timestamp. A request already
// terminal is never changed. Returns true when the status changed.
func (r *ApprovalRequest) RecomputeStatus(actor, comment string, now time.Time) bool {
	if r.Status.IsTerminal() {
		return false
	}

	next := r.AggregateStatus()
	if next == r.Status {
		return false
	}

	r.Status = next
	if next.IsTerminal() {
		r.Reviewer = actor
		r.ReviewComment = comment
		r.ReviewedAt = &now
	}
	return true
}

// AppendAudit appends an entry to the request's audit log. Entries are never
// updated or deleted.
func (r *ApprovalRequest) AppendAudit(entry AuditEntry) {
	r.AuditLog = append(r.AuditLog, entry)
}

// AuditTrail returns a copy of the audit log ordered newest first, the
// display order of the request history.
func (r *ApprovalRequest) AuditTrail() []AuditEntry {
	trail := make([]AuditEntry, len(r.AuditLog))
	for i, entry := range r.AuditLog {
		trail[len(r.AuditLog)-1-i] = entry
	}
	return trail
}
