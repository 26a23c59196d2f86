// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package model

import "time"

// AuditEntry records one action in the approval workflow history. The audit
// log is append-only and authoritative for vote history; the verdict's
// last-reviewer fields are only a display projection of it.
type AuditEntry struct {
	UID       string    `json:"uid"`
	User      string    `json:"user,omitempty"`
	Action    string    `json:"action"`
	Comment   string    `json:"comment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
