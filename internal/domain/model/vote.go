// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package model

// VoteSkipReason explains why a group verdict was skipped during a batch vote.
type VoteSkipReason string

// VoteSkipReason values
const (
	// SkipAlreadyVoted means the actor already appears in one of the vote sets
	SkipAlreadyVoted VoteSkipReason = "already_voted"
	// SkipVerdictResolved means this group's verdict is no longer pending
	SkipVerdictResolved VoteSkipReason = "verdict_resolved"
	// SkipShortCircuit means a single rejection sufficed and the rest were skipped
	SkipShortCircuit VoteSkipReason = "short_circuit"
)

// VerdictVoteOutcome is the per-group result of a batch vote action.
type VerdictVoteOutcome struct {
	GroupUID   string         `json:"group_uid"`
	GroupName  string         `json:"group_name"`
	Recorded   bool           `json:"recorded"`
	SkipReason VoteSkipReason `json:"skip_reason,omitempty"`
}

// VoteResult reports what a single vote action actually did. A vote action
// may span multiple group verdicts (a user in two required groups approves
// both in one action); each verdict is evaluated independently, so partial
// success is possible.
type VoteResult struct {
	RequestUID    string               `json:"request_uid"`
	RequestStatus ApprovalStatus       `json:"request_status"`
	Recorded      int                  `json:"recorded"`
	Outcomes      []VerdictVoteOutcome `json:"outcomes"`
}
