// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package constants

// NATS KV bucket names
const (
	// KVBucketNameApprovalRequests is the bucket holding approval request
	// aggregates (request, group verdicts, and audit log as one document)
	KVBucketNameApprovalRequests = "approval-requests"

	// KVBucketNameApprovalGroups is the bucket holding approval groups
	KVBucketNameApprovalGroups = "approval-groups"

	// KVBucketNameSnapshots is the bucket holding immutable submission snapshots
	KVBucketNameSnapshots = "submission-snapshots"
)

// KV key prefixes. Keys use '.' as the token separator so prefix filters work
// with JetStream subject wildcards; entity UIDs are single tokens.
const (
	// KVLookupRequestBySubmissionPrefix formats the secondary index key that
	// maps a submission UID to one of its approval requests
	KVLookupRequestBySubmissionPrefix = "idx.submission.%s.%s"

	// RequestBySubmissionFilter formats the wildcard filter listing all
	// request index keys of one submission
	RequestBySubmissionFilter = "idx.submission.%s.*"

	// IndexKeyPrefix marks secondary index keys so primary-entity listings can skip them
	IndexKeyPrefix = "idx."
)
