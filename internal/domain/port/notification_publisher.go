// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"
)

// NotificationPublisher defines the fire-and-forget notification contract
// consumed by the mailer collaborator. Delivery failures are logged and
// swallowed by callers; they never roll back an approval transaction.
type NotificationPublisher interface {
	// Notify publishes one notification message for the given recipient
	Notify(ctx context.Context, recipient, templateID string, templateContext any) error
}
