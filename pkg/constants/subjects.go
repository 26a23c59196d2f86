// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package constants

// NATS subjects served by this service. One subject per operation; all are
// request/reply with JSON payloads and share the ApprovalAPIQueue queue group.
const (
	// RequestCreateSubject creates a new approval request for a submission
	RequestCreateSubject = "council.approval-api.request_create"
	// RequestGetSubject retrieves an approval request with its group verdicts
	RequestGetSubject = "council.approval-api.request_get"
	// RequestListBySubmissionSubject lists all approval requests for a submission
	RequestListBySubmissionSubject = "council.approval-api.request_list_by_submission"
	// RequestApproveSubject casts an approval vote across the actor's pending group verdicts
	RequestApproveSubject = "council.approval-api.request_approve"
	// RequestRejectSubject casts a rejection vote on the actor's first pending group verdict
	RequestRejectSubject = "council.approval-api.request_reject"
	// RequestCanReviewSubject answers whether a user may still review a request
	RequestCanReviewSubject = "council.approval-api.request_can_review"
	// RequestAuditTrailSubject returns the audit log of a request, newest first
	RequestAuditTrailSubject = "council.approval-api.request_audit_trail"

	// SnapshotGetSubject retrieves a single submission snapshot
	SnapshotGetSubject = "council.approval-api.snapshot_get"
	// SnapshotCompareSubject produces a line diff between two snapshots of one submission
	SnapshotCompareSubject = "council.approval-api.snapshot_compare"

	// GroupCreateSubject creates an approval group
	GroupCreateSubject = "council.approval-api.group_create"
	// GroupGetSubject retrieves an approval group
	GroupGetSubject = "council.approval-api.group_get"
	// GroupListSubject lists all approval groups
	GroupListSubject = "council.approval-api.group_list"
	// GroupUpdateMembersSubject replaces an approval group's member set
	GroupUpdateMembersSubject = "council.approval-api.group_update_members"
)

// NATS subjects of external collaborators consumed by this service.
const (
	// SubmissionGetContentSubject asks the instruments service for the current
	// content of a submission, copied verbatim into a new snapshot
	SubmissionGetContentSubject = "council.instruments-api.get_submission_content"

	// AccountsListReviewersSubject asks the accounts service for all users
	// holding review permission, used for notification fan-out
	AccountsListReviewersSubject = "council.accounts-api.list_reviewers"

	// AccountsGetUserSubject resolves a username to its account record,
	// used to address the requester's resolved-request notification
	AccountsGetUserSubject = "council.accounts-api.get_user"

	// MailerNotifySubject carries fire-and-forget notification messages for the mailer
	MailerNotifySubject = "council.mailer.notify"
)

// Notification templates rendered by the mailer collaborator.
const (
	// TemplateNewApprovalRequest notifies reviewers of a freshly filed request
	TemplateNewApprovalRequest = "emails/new_approval_request"
	// TemplateApprovalRequestStatus notifies the requester of a terminal verdict
	TemplateApprovalRequestStatus = "emails/approval_request_status"
)
