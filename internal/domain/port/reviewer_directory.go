// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/councilsuite/instrument-approval-service/internal/domain/model"
)

// ReviewerDirectory answers which users hold review permission and resolves
// usernames to their mail addresses, as served by the accounts service. Used
// to address every notification this service publishes.
type ReviewerDirectory interface {
	// ListReviewers returns all users holding review permission
	ListReviewers(ctx context.Context) ([]model.Reviewer, error)

	// GetUser resolves a username to its account record
	GetUser(ctx context.Context, username string) (*model.Reviewer, error)
}
