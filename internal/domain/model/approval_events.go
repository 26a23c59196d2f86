// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package model

// Reviewer is a user holding review permission, as reported by the accounts
// service. Used to compute the notification fan-out for new requests.
type Reviewer struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NotificationMessage is the fire-and-forget envelope handed to the mailer
// collaborator. Failures to deliver never roll back an approval action.
type NotificationMessage struct {
	Recipient  string `json:"recipient"`
	TemplateID string `json:"template_id"`
	Context    any    `json:"context"`
}

// RequestCreatedContext is the template context for notifying reviewers that
// a new approval request was filed.
// Sent to council.mailer.notify with the new_approval_request template.
type RequestCreatedContext struct {
	RequestUID     string   `json:"request_uid"`
	SubmissionUID  string   `json:"submission_uid"`
	Requester      string   `json:"requester"`
	RequestComment string   `json:"request_comment,omitempty"`
	GroupNames     []string `json:"group_names"`
}

// RequestResolvedContext is the template context for notifying the requester
// that their request reached a terminal verdict.
// Sent to council.mailer.notify with the approval_request_status template.
type RequestResolvedContext struct {
	RequestUID    string         `json:"request_uid"`
	SubmissionUID string         `json:"submission_uid"`
	Status        ApprovalStatus `json:"status"`
	Reviewer      string         `json:"reviewer,omitempty"`
	ReviewComment string         `json:"review_comment,omitempty"`
}
