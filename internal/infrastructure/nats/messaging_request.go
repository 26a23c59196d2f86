// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/councilsuite/instrument-approval-service/internal/domain/model"
	"github.com/councilsuite/instrument-approval-service/internal/domain/port"
	"github.com/councilsuite/instrument-approval-service/pkg/constants"
	"github.com/councilsuite/instrument-approval-service/pkg/errors"
)

// messageRequest implements the collaborator read ports over NATS request/reply
type messageRequest struct {
	client *NATSClient
}

// GetSubmissionContent asks the instruments service for the submission's
// current content fields and submitter list
func (m *messageRequest) GetSubmissionContent(ctx context.Context, submissionUID string) (*model.SubmissionContent, error) {
	slog.DebugContext(ctx, "requesting submission content via NATS",
		"submission_uid", submissionUID,
		"subject", constants.SubmissionGetContentSubject)

	data := []byte(submissionUID)
	msg, err := m.client.conn.RequestWithContext(ctx, constants.SubmissionGetContentSubject, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to request submission content",
			"error", err,
			"submission_uid", submissionUID)
		return nil, errors.NewServiceUnavailable(fmt.Sprintf("instruments-api unavailable: %v", err))
	}

	if len(msg.Data) == 0 {
		return nil, errors.NewNotFound(fmt.Sprintf("submission with UID %s not found", submissionUID))
	}

	// a JSON error envelope means the instruments service refused the request
	var errorResponse struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(msg.Data, &errorResponse); err == nil && errorResponse.Error != "" {
		slog.WarnContext(ctx, "instruments service responded with an error",
			"submission_uid", submissionUID,
			"error", errorResponse.Error)
		return nil, errors.NewNotFound(errorResponse.Error)
	}

	var content model.SubmissionContent
	if err := json.Unmarshal(msg.Data, &content); err != nil {
		slog.ErrorContext(ctx, "failed to unmarshal submission content response",
			"error", err,
			"submission_uid", submissionUID)
		return nil, errors.NewUnexpected("invalid submission content response", err)
	}
	if content.SubmissionUID == "" {
		content.SubmissionUID = submissionUID
	}

	return &content, nil
}

// ListReviewers asks the accounts service for all users holding review permission
func (m *messageRequest) ListReviewers(ctx context.Context) ([]model.Reviewer, error) {
	slog.DebugContext(ctx, "requesting reviewer list via NATS",
		"subject", constants.AccountsListReviewersSubject)

	msg, err := m.client.conn.RequestWithContext(ctx, constants.AccountsListReviewersSubject, nil)
	if err != nil {
		slog.ErrorContext(ctx, "failed to request reviewer list", "error", err)
		return nil, errors.NewServiceUnavailable(fmt.Sprintf("accounts-api unavailable: %v", err))
	}

	if len(msg.Data) == 0 {
		return []model.Reviewer{}, nil
	}

	var reviewers []model.Reviewer
	if err := json.Unmarshal(msg.Data, &reviewers); err != nil {
		slog.ErrorContext(ctx, "failed to unmarshal reviewer list response", "error", err)
		return nil, errors.NewUnexpected("invalid reviewer list response", err)
	}

	return reviewers, nil
}

// GetUser resolves a username to its account record
func (m *messageRequest) GetUser(ctx context.Context, username string) (*model.Reviewer, error) {
	slog.DebugContext(ctx, "requesting user record via NATS",
		"username", username,
		"subject", constants.AccountsGetUserSubject)

	payload, err := json.Marshal(struct {
		Username string `json:"username"`
	}{Username: username})
	if err != nil {
		return nil, errors.NewUnexpected("failed to marshal user lookup request", err)
	}

	msg, err := m.client.conn.RequestWithContext(ctx, constants.AccountsGetUserSubject, payload)
	if err != nil {
		slog.ErrorContext(ctx, "failed to request user record",
			"error", err,
			"username", username)
		return nil, errors.NewServiceUnavailable(fmt.Sprintf("accounts-api unavailable: %v", err))
	}

	if len(msg.Data) == 0 {
		return nil, errors.NewNotFound(fmt.Sprintf("user %s not found", username))
	}

	var errorResponse struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(msg.Data, &errorResponse); err == nil && errorResponse.Error != "" {
		return nil, errors.NewNotFound(errorResponse.Error)
	}

	var user model.Reviewer
	if err := json.Unmarshal(msg.Data, &user); err != nil {
		slog.ErrorContext(ctx, "failed to unmarshal user record response",
			"error", err,
			"username", username)
		return nil, errors.NewUnexpected("invalid user record response", err)
	}
	if user.Username == "" {
		user.Username = username
	}

	return &user, nil
}

// NewSubmissionReader creates the NATS-backed instruments service client
func NewSubmissionReader(client *NATSClient) port.SubmissionReader {
	return &messageRequest{client: client}
}

// NewReviewerDirectory creates the NATS-backed accounts service client
func NewReviewerDirectory(client *NATSClient) port.ReviewerDirectory {
	return &messageRequest{client: client}
}
