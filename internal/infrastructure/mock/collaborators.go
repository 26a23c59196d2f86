// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/councilsuite/instrument-approval-service/internal/domain/model"
	"github.com/councilsuite/instrument-approval-service/pkg/errors"
)

// MockSubmissionReader serves submission content from an in-memory map
type MockSubmissionReader struct {
	submissions map[string]*model.SubmissionContent
	mu          sync.RWMutex
}

// NewMockSubmissionReader creates an empty mock submission reader
func NewMockSubmissionReader() *MockSubmissionReader {
	return &MockSubmissionReader{
		submissions: make(map[string]*model.SubmissionContent),
	}
}

// AddSubmission seeds submission content, for test setup
func (m *MockSubmissionReader) AddSubmission(content *model.SubmissionContent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dup := *content
	dup.Submitters = append([]model.Submitter(nil), content.Submitters...)
	m.submissions[content.SubmissionUID] = &dup
}

// GetSubmissionContent returns the seeded content for the submission
func (m *MockSubmissionReader) GetSubmissionContent(_ context.Context, submissionUID string) (*model.SubmissionContent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.submissions[submissionUID]
	if !ok {
		return nil, errors.NewNotFound(fmt.Sprintf("submission with UID %s not found", submissionUID))
	}

	dup := *content
	dup.Submitters = append([]model.Submitter(nil), content.Submitters...)
	return &dup, nil
}

// MockReviewerDirectory serves a fixed reviewer list and user records
type MockReviewerDirectory struct {
	reviewers []model.Reviewer
	users     map[string]model.Reviewer
	err       error
	mu        sync.RWMutex
}

// NewMockReviewerDirectory creates an empty mock reviewer directory
func NewMockReviewerDirectory() *MockReviewerDirectory {
	return &MockReviewerDirectory{
		users: make(map[string]model.Reviewer),
	}
}

// SetReviewers replaces the reviewer list, for test setup
func (m *MockReviewerDirectory) SetReviewers(reviewers []model.Reviewer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviewers = append([]model.Reviewer(nil), reviewers...)
}

// SetError makes ListReviewers fail with the given error
func (m *MockReviewerDirectory) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// AddUser seeds a user record resolvable by username, for test setup
func (m *MockReviewerDirectory) AddUser(user model.Reviewer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Username] = user
}

// ListReviewers returns the configured reviewer list
func (m *MockReviewerDirectory) ListReviewers(_ context.Context) ([]model.Reviewer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return nil, m.err
	}
	return append([]model.Reviewer(nil), m.reviewers...), nil
}

// GetUser resolves a username against the seeded users and reviewer list
func (m *MockReviewerDirectory) GetUser(_ context.Context, username string) (*model.Reviewer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return nil, m.err
	}
	if user, ok := m.users[username]; ok {
		return &user, nil
	}
	for _, reviewer := range m.reviewers {
		if reviewer.Username == username {
			dup := reviewer
			return &dup, nil
		}
	}
	return nil, errors.NewNotFound(fmt.Sprintf("user %s not found", username))
}

// MockNotificationPublisher records published notifications for assertions
type MockNotificationPublisher struct {
	messages []model.NotificationMessage
	err      error
	mu       sync.RWMutex
}

// NewMockNotificationPublisher creates an empty mock publisher
func NewMockNotificationPublisher() *MockNotificationPublisher {
	return &MockNotificationPublisher{}
}

// SetError makes Notify fail with the given error
func (m *MockNotificationPublisher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Notify records the notification message
func (m *MockNotificationPublisher) Notify(_ context.Context, recipient, templateID string, templateContext any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	m.messages = append(m.messages, model.NotificationMessage{
		Recipient:  recipient,
		TemplateID: templateID,
		Context:    templateContext,
	})
	return nil
}

// Messages returns a copy of all recorded notifications
func (m *MockNotificationPublisher) Messages() []model.NotificationMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.NotificationMessage(nil), m.messages...)
}
