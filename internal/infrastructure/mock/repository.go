// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

// Package mock provides in-memory implementations of the storage ports for
// testing and local development.
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/councilsuite/instrument-approval-service/internal/domain/model"
	"github.com/councilsuite/instrument-approval-service/pkg/errors"
)

// MockRepository provides an in-memory implementation of the approval request,
// group, and snapshot repositories. Values are deep-copied on the way in and
// out, and updates enforce the same revision check as the NATS KV storage, so
// optimistic-concurrency behavior can be exercised in tests.
type MockRepository struct {
	requests          map[string]*model.ApprovalRequest
	requestRevisions  map[string]uint64
	groups            map[string]*model.ApprovalGroup
	groupRevisions    map[string]uint64
	snapshots         map[string]*model.Snapshot
	snapshotRevisions map[string]uint64
	mu                sync.RWMutex
}

// NewMockRepository creates an empty mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{
		requests:          make(map[string]*model.ApprovalRequest),
		requestRevisions:  make(map[string]uint64),
		groups:            make(map[string]*model.ApprovalGroup),
		groupRevisions:    make(map[string]uint64),
		snapshots:         make(map[string]*model.Snapshot),
		snapshotRevisions: make(map[string]uint64),
	}
}

// IsReady always reports the in-memory store as reachable
func (m *MockRepository) IsReady(_ context.Context) error {
	return nil
}

// ClearAll removes all stored data
func (m *MockRepository) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = make(map[string]*model.ApprovalRequest)
	m.requestRevisions = make(map[string]uint64)
	m.groups = make(map[string]*model.ApprovalGroup)
	m.groupRevisions = make(map[string]uint64)
	m.snapshots = make(map[string]*model.Snapshot)
	m.snapshotRevisions = make(map[string]uint64)
}

// GetApprovalRequest retrieves a request aggregate by UID and returns its revision
func (m *MockRepository) GetApprovalRequest(_ context.Context, uid string) (*model.ApprovalRequest, uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	request, ok := m.requests[uid]
	if !ok {
		return nil, 0, errors.NewNotFound(fmt.Sprintf("approval request with UID %s not found", uid))
	}
	return copyRequest(request), m.requestRevisions[uid], nil
}

// ListApprovalRequestsBySubmission retrieves every request filed for a
// submission, ordered by creation time ascending
func (m *MockRepository) ListApprovalRequestsBySubmission(_ context.Context, submissionUID string) ([]*model.ApprovalRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	requests := make([]*model.ApprovalRequest, 0)
	for _, request := range m.requests {
		if request.SubmissionUID == submissionUID {
			requests = append(requests, copyRequest(request))
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})
	return requests, nil
}

// CreateApprovalRequest stores a new request aggregate at revision 1
func (m *MockRepository) CreateApprovalRequest(_ context.Context, request *model.ApprovalRequest) (*model.ApprovalRequest, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.requests[request.UID]; exists {
		return nil, 0, errors.NewConflict(fmt.Sprintf("approval request with UID %s already exists", request.UID))
	}

	m.requests[request.UID] = copyRequest(request)
	m.requestRevisions[request.UID] = 1
	return copyRequest(request), 1, nil
}

// UpdateApprovalRequest conditionally replaces the aggregate at expectedRevision
func (m *MockRepository) UpdateApprovalRequest(_ context.Context, uid string, request *model.ApprovalRequest, expectedRevision uint64) (*model.ApprovalRequest, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.requests[uid]; !ok {
		return nil, 0, errors.NewNotFound(fmt.Sprintf("approval request with UID %s not found", uid))
	}
	if m.requestRevisions[uid] != expectedRevision {
		return nil, 0, errors.NewConflict(fmt.Sprintf("approval request %s modified: expected revision %d, got %d", uid, expectedRevision, m.requestRevisions[uid]))
	}

	m.requests[uid] = copyRequest(request)
	m.requestRevisions[uid] = expectedRevision + 1
	return copyRequest(request), expectedRevision + 1, nil
}

// GetGroup retrieves a group by UID and returns its revision
func (m *MockRepository) GetGroup(_ context.Context, uid string) (*model.ApprovalGroup, uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	group, ok := m.groups[uid]
	if !ok {
		return nil, 0, errors.NewNotFound(fmt.Sprintf("approval group with UID %s not found", uid))
	}
	return copyGroup(group), m.groupRevisions[uid], nil
}

// ListGroups retrieves all approval groups, ordered by name
func (m *MockRepository) ListGroups(_ context.Context) ([]*model.ApprovalGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	groups := make([]*model.ApprovalGroup, 0, len(m.groups))
	for _, group := range m.groups {
		groups = append(groups, copyGroup(group))
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})
	return groups, nil
}

// CreateGroup stores a new group at revision 1
func (m *MockRepository) CreateGroup(_ context.Context, group *model.ApprovalGroup) (*model.ApprovalGroup, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.groups[group.UID]; exists {
		return nil, 0, errors.NewConflict(fmt.Sprintf("approval group with UID %s already exists", group.UID))
	}

	m.groups[group.UID] = copyGroup(group)
	m.groupRevisions[group.UID] = 1
	return copyGroup(group), 1, nil
}

// UpdateGroup conditionally replaces a group at expectedRevision
func (m *MockRepository) UpdateGroup(_ context.Context, uid string, group *model.ApprovalGroup, expectedRevision uint64) (*model.ApprovalGroup, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.groups[uid]; !ok {
		return nil, 0, errors.NewNotFound(fmt.Sprintf("approval group with UID %s not found", uid))
	}
	if m.groupRevisions[uid] != expectedRevision {
		return nil, 0, errors.NewConflict(fmt.Sprintf("approval group %s modified: expected revision %d, got %d", uid, expectedRevision, m.groupRevisions[uid]))
	}

	m.groups[uid] = copyGroup(group)
	m.groupRevisions[uid] = expectedRevision + 1
	return copyGroup(group), expectedRevision + 1, nil
}

// GetSnapshot retrieves a snapshot by UID
func (m *MockRepository) GetSnapshot(_ context.Context, uid string) (*model.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot, ok := m.snapshots[uid]
	if !ok {
		return nil, errors.NewNotFound(fmt.Sprintf("snapshot with UID %s not found", uid))
	}
	return copySnapshot(snapshot), nil
}

// CreateSnapshot stores a new immutable snapshot
func (m *MockRepository) CreateSnapshot(_ context.Context, snapshot *model.Snapshot) (*model.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.snapshots[snapshot.UID]; exists {
		return nil, errors.NewConflict(fmt.Sprintf("snapshot with UID %s already exists", snapshot.UID))
	}

	m.snapshots[snapshot.UID] = copySnapshot(snapshot)
	m.snapshotRevisions[snapshot.UID] = 1
	return copySnapshot(snapshot), nil
}

// AddGroup seeds a group directly, for test setup
func (m *MockRepository) AddGroup(group *model.ApprovalGroup) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.groups[group.UID] = copyGroup(group)
	m.groupRevisions[group.UID] = 1
}

// AddSnapshot seeds a snapshot directly, for test setup
func (m *MockRepository) AddSnapshot(snapshot *model.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshots[snapshot.UID] = copySnapshot(snapshot)
	m.snapshotRevisions[snapshot.UID] = 1
}

func copyRequest(request *model.ApprovalRequest) *model.ApprovalRequest {
	dup := *request
	dup.RequiredGroupUIDs = append([]string(nil), request.RequiredGroupUIDs...)
	dup.AuditLog = append([]model.AuditEntry(nil), request.AuditLog...)
	dup.Verdicts = make([]*model.GroupVerdict, len(request.Verdicts))
	for i, verdict := range request.Verdicts {
		v := *verdict
		v.ApprovedMembers = append([]string(nil), verdict.ApprovedMembers...)
		v.RejectedMembers = append([]string(nil), verdict.RejectedMembers...)
		dup.Verdicts[i] = &v
	}
	return &dup
}

func copyGroup(group *model.ApprovalGroup) *model.ApprovalGroup {
	dup := *group
	dup.Members = append([]string(nil), group.Members...)
	return &dup
}

func copySnapshot(snapshot *model.Snapshot) *model.Snapshot {
	dup := *snapshot
	dup.Submitters = append([]model.Submitter(nil), snapshot.Submitters...)
	return &dup
}
