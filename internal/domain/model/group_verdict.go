// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"slices"
	"time"
)

// GroupVerdict aggregates the individual votes of one required group on one
// approval request. There is exactly one verdict per (request, group) pair,
// created pending when the request is initialized.
//
// The Reviewer/ReviewComment/ReviewedAt fields are a projection of the most
// recent vote for display; the request's audit log is the system of record
// for who did what when.
type GroupVerdict struct {
	GroupUID        string          `json:"group_uid"`
	GroupName       string          `json:"group_name"`
	Status          ApprovalStatus  `json:"status"`
	ApprovedMembers []string        `json:"approved_members"`
	RejectedMembers []string        `json:"rejected_members"`
	Reviewer        string          `json:"reviewer,omitempty"`
	ReviewComment   string          `json:"review_comment,omitempty"`
	ReviewedAt      *time.Time      `json:"reviewed_at,omitempty"`
}

// NewGroupVerdict creates the pending verdict for one required group.
func NewGroupVerdict(group *ApprovalGroup) *GroupVerdict {
	return &GroupVerdict{
		GroupUID:  group.UID,
		GroupName: group.Name,
		Status:    StatusPending,
	}
}

// HasVoted reports whether the member already appears in either vote set.
// A member may appear in at most one set, and at most once.
func (v *GroupVerdict) HasVoted(member string) bool {
	return slices.Contains(v.ApprovedMembers, member) || slices.Contains(v.RejectedMembers, member)
}

// RecordApproval adds the member to the approved set and updates the
// last-vote projection. Preconditions are the caller's responsibility.
func (v *GroupVerdict) RecordApproval(member, comment string, at time.Time) {
	v.ApprovedMembers = append(v.ApprovedMembers, member)
	v.Reviewer = member
	v.ReviewComment = comment
	v.ReviewedAt = &at
}

// RecordRejection adds the member to the rejected set, updates the last-vote
// projection, and moves the verdict straight to rejected: one rejecting vote
// is sufficient, no quorum applies (asymmetric with approval).
func (v *GroupVerdict) RecordRejection(member, comment string, at time.Time) {
	v.RejectedMembers = append(v.RejectedMembers, member)
	v.Reviewer = member
	v.ReviewComment = comment
	v.ReviewedAt = &at
	v.Status = StatusRejected
}

// Recompute derives the verdict status from the current vote sets and the
// group's current membership. It is a pure function of that state: idempotent
// and independent of the order in which members voted.
//
//   - any rejected member: rejected (terminal for the group)
//   - all eligible voters approved, and there is at least one: approved
//   - otherwise: pending
func (v *GroupVerdict) Recompute(group *ApprovalGroup, requester string) {
	if len(v.RejectedMembers) > 0 {
		v.Status = StatusRejected
		return
	}

	eligible := group.EligibleVoters(requester)
	if len(eligible) > 0 && len(v.ApprovedMembers) >= len(eligible) {
		v.Status = StatusApproved
		return
	}

	v.Status = StatusPending
}
