// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package constants

import "fmt"

// Audit log action labels. The per-group labels embed the group name, matching
// the display format reviewers see in the request history.
const (
	// AuditActionSubmitted records the filing of a new approval request
	AuditActionSubmitted = "submitted"

	// auditActionApprovedAsMember is the format for a member approval within a group
	auditActionApprovedAsMember = "approved_as_member_of_%s"

	// auditActionRejectedAsMember is the format for a member rejection within a group
	auditActionRejectedAsMember = "rejected_as_member_of_%s"
)

// AuditActionApproved returns the audit action label for an approval cast as
// a member of the named group.
func AuditActionApproved(groupName string) string {
	return fmt.Sprintf(auditActionApprovedAsMember, groupName)
}

// AuditActionRejected returns the audit action label for a rejection cast as
// a member of the named group.
func AuditActionRejected(groupName string) string {
	return fmt.Sprintf(auditActionRejectedAsMember, groupName)
}
