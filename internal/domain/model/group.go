// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"slices"
	"time"
)

// ApprovalGroup is a named set of users that approves as a separate unit.
// Membership is the unit of voting rights; a user may belong to multiple
// groups, and there is no hierarchy between groups.
type ApprovalGroup struct {
	UID         string    `json:"uid"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasMember reports whether the user is a current member of the group.
func (g *ApprovalGroup) HasMember(user string) bool {
	return slices.Contains(g.Members, user)
}

// EligibleVoters returns the members allowed to vote on a request filed by
// requester: the full membership, minus the requester when the requester
// happens to belong to the group. The requester is excluded from the
// denominator, not just blocked from voting.
func (g *ApprovalGroup) EligibleVoters(requester string) []string {
	if !g.HasMember(requester) {
		return slices.Clone(g.Members)
	}
	eligible := make([]string, 0, len(g.Members)-1)
	for _, m := range g.Members {
		if m != requester {
			eligible = append(eligible, m)
		}
	}
	return eligible
}

// Dedupe normalizes a list of identifiers such as member usernames or group
// UIDs, dropping duplicates and empty entries while keeping first-seen order.
func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, m := range values {
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
