// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/councilsuite/instrument-approval-service/internal/domain/model"
)

// SubmissionReader retrieves the current content of an instrument submission
// from the instruments service, to be copied verbatim into a new snapshot.
type SubmissionReader interface {
	// GetSubmissionContent returns the submission's current content fields
	// and ordered submitter list
	GetSubmissionContent(ctx context.Context, submissionUID string) (*model.SubmissionContent, error)
}
