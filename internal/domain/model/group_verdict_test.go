// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGroup(uid, name string, members ...string) *ApprovalGroup {
	return &ApprovalGroup{
		UID:     uid,
		Name:    name,
		Members: members,
	}
}

func TestEligibleVoters(t *testing.T) {
	testCases := []struct {
		name      string
		group     *ApprovalGroup
		requester string
		expected  []string
	}{
		{
			name:      "requester not in group keeps full membership",
			group:     testGroup("g1", "Fractievoorzitters", "u1", "u2"),
			requester: "outsider",
			expected:  []string{"u1", "u2"},
		},
		{
			name:      "requester in group is excluded from the denominator",
			group:     testGroup("g1", "Fractievoorzitters", "u1", "u2", "u3"),
			requester: "u1",
			expected:  []string{"u2", "u3"},
		},
		{
			name:      "requester is the only member",
			group:     testGroup("g1", "Fractievoorzitters", "u1"),
			requester: "u1",
			expected:  []string{},
		},
		{
			name:      "empty group",
			group:     testGroup("g1", "Fractievoorzitters"),
			requester: "u1",
			expected:  []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ElementsMatch(t, tc.expected, tc.group.EligibleVoters(tc.requester))
		})
	}
}

func TestGroupVerdictRecompute(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name      string
		group     *ApprovalGroup
		requester string
		setup     func(v *GroupVerdict)
		expected  ApprovalStatus
	}{
		{
			name:      "no votes stays pending",
			group:     testGroup("g1", "Griffie", "u1", "u2"),
			requester: "outsider",
			setup:     func(v *GroupVerdict) {},
			expected:  StatusPending,
		},
		{
			name:      "partial approval stays pending",
			group:     testGroup("g1", "Griffie", "u1", "u2"),
			requester: "outsider",
			setup: func(v *GroupVerdict) {
				v.RecordApproval("u1", "akkoord", now)
			},
			expected: StatusPending,
		},
		{
			name:      "all members approved",
			group:     testGroup("g1", "Griffie", "u1", "u2"),
			requester: "outsider",
			setup: func(v *GroupVerdict) {
				v.RecordApproval("u1", "akkoord", now)
				v.RecordApproval("u2", "prima", now)
			},
			expected: StatusApproved,
		},
		{
			name:      "all eligible approved when requester is a member",
			group:     testGroup("g1", "Griffie", "u1", "u2", "u3"),
			requester: "u1",
			setup: func(v *GroupVerdict) {
				v.RecordApproval("u2", "", now)
				v.RecordApproval("u3", "", now)
			},
			expected: StatusApproved,
		},
		{
			name:      "single rejection wins over approvals",
			group:     testGroup("g1", "Griffie", "u1", "u2", "u3"),
			requester: "outsider",
			setup: func(v *GroupVerdict) {
				v.RecordApproval("u1", "", now)
				v.RecordApproval("u2", "", now)
				v.RecordRejection("u3", "onvoldoende onderbouwd", now)
			},
			expected: StatusRejected,
		},
		{
			name:      "no eligible voters never approves",
			group:     testGroup("g1", "Griffie", "u1"),
			requester: "u1",
			setup:     func(v *GroupVerdict) {},
			expected:  StatusPending,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewGroupVerdict(tc.group)
			tc.setup(v)
			v.Recompute(tc.group, tc.requester)
			assert.Equal(t, tc.expected, v.Status)

			// Recompute is idempotent: running it again changes nothing.
			v.Recompute(tc.group, tc.requester)
			assert.Equal(t, tc.expected, v.Status)
		})
	}
}

func TestGroupVerdictRecomputeOrderIndependent(t *testing.T) {
	group := testGroup("g1", "Griffie", "u1", "u2", "u3")
	now := time.Now()

	orders := [][]string{
		{"u1", "u2", "u3"},
		{"u3", "u1", "u2"},
		{"u2", "u3", "u1"},
	}

	for _, order := range orders {
		v := NewGroupVerdict(group)
		for _, member := range order {
			v.RecordApproval(member, "", now)
			v.Recompute(group, "outsider")
		}
		assert.Equal(t, StatusApproved, v.Status, "order %v", order)
	}
}

func TestGroupVerdictRejectionIsTerminal(t *testing.T) {
	group := testGroup("g1", "Griffie", "u1", "u2")
	now := time.Now()

	v := NewGroupVerdict(group)
	v.RecordRejection("u1", "nee", now)
	require.Equal(t, StatusRejected, v.Status)

	// A later approval recompute never overrides a recorded rejection.
	v.RecordApproval("u2", "ja", now)
	v.Recompute(group, "outsider")
	assert.Equal(t, StatusRejected, v.Status)
}

func TestGroupVerdictHasVoted(t *testing.T) {
	group := testGroup("g1", "Griffie", "u1", "u2")
	now := time.Now()

	v := NewGroupVerdict(group)
	assert.False(t, v.HasVoted("u1"))

	v.RecordApproval("u1", "", now)
	assert.True(t, v.HasVoted("u1"))
	assert.False(t, v.HasVoted("u2"))

	v.RecordRejection("u2", "nee", now)
	assert.True(t, v.HasVoted("u2"))
}

func TestGroupVerdictLastVoteProjection(t *testing.T) {
	group := testGroup("g1", "Griffie", "u1", "u2")
	first := time.Now()
	second := first.Add(time.Minute)

	v := NewGroupVerdict(group)
	v.RecordApproval("u1", "eerste", first)
	v.RecordApproval("u2", "tweede", second)

	// The projection reflects the most recent vote only; history lives in the audit log.
	assert.Equal(t, "u2", v.Reviewer)
	assert.Equal(t, "tweede", v.ReviewComment)
	require.NotNil(t, v.ReviewedAt)
	assert.Equal(t, second, *v.ReviewedAt)
}
