// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/councilsuite/instrument-approval-service/internal/domain/model"
	"github.com/councilsuite/instrument-approval-service/internal/domain/port"
	"github.com/councilsuite/instrument-approval-service/pkg/constants"
	errs "github.com/councilsuite/instrument-approval-service/pkg/errors"
)

// Storage implements the repository ports on JetStream key-value buckets.
// Each approval request aggregate lives under its UID as one document, so a
// vote transaction is a single conditional update. A secondary index key per
// (submission, request) pair supports the per-submission history listing.
type Storage struct {
	client *NATSClient
}

// GetApprovalRequest retrieves a request aggregate by UID and returns its revision
func (s *Storage) GetApprovalRequest(ctx context.Context, uid string) (*model.ApprovalRequest, uint64, error) {
	slog.DebugContext(ctx, "nats storage: getting approval request",
		"request_uid", uid)

	request := &model.ApprovalRequest{}
	rev, err := s.get(ctx, constants.KVBucketNameApprovalRequests, uid, request)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			slog.DebugContext(ctx, "approval request not found", "request_uid", uid, "error", err)
			return nil, 0, errs.NewNotFound(fmt.Sprintf("approval request with UID %s not found", uid))
		}
		slog.ErrorContext(ctx, "failed to get approval request", "error", err, "request_uid", uid)
		return nil, 0, errs.NewServiceUnavailable("failed to get approval request")
	}

	return request, rev, nil
}

// ListApprovalRequestsBySubmission retrieves every request filed for a
// submission via the secondary index, ordered by creation time ascending
func (s *Storage) ListApprovalRequestsBySubmission(ctx context.Context, submissionUID string) ([]*model.ApprovalRequest, error) {
	slog.DebugContext(ctx, "nats storage: listing approval requests",
		"submission_uid", submissionUID)

	if submissionUID == "" {
		return nil, errs.NewValidation("submission UID cannot be empty")
	}

	kv, exists := s.client.kvStore[constants.KVBucketNameApprovalRequests]
	if !exists || kv == nil {
		return nil, errs.NewServiceUnavailable("KV bucket not available")
	}

	filter := fmt.Sprintf(constants.RequestBySubmissionFilter, submissionUID)
	lister, err := kv.ListKeysFiltered(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list request index keys",
			"error", err,
			"submission_uid", submissionUID,
		)
		return nil, errs.NewServiceUnavailable("failed to list approval requests")
	}
	defer func() {
		_ = lister.Stop()
	}()

	requests := make([]*model.ApprovalRequest, 0)
	for key := range lister.Keys() {
		tokens := strings.Split(key, ".")
		requestUID := tokens[len(tokens)-1]

		request, _, err := s.GetApprovalRequest(ctx, requestUID)
		if err != nil {
			// an index key without its aggregate means a torn create; skip it
			var notFound errs.NotFound
			if errors.As(err, &notFound) {
				slog.WarnContext(ctx, "dangling request index key",
					"index_key", key,
					"submission_uid", submissionUID,
				)
				continue
			}
			return nil, err
		}
		requests = append(requests, request)
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})

	return requests, nil
}

// CreateApprovalRequest stores a new request aggregate and its submission index key
func (s *Storage) CreateApprovalRequest(ctx context.Context, request *model.ApprovalRequest) (*model.ApprovalRequest, uint64, error) {
	slog.DebugContext(ctx, "nats storage: creating approval request",
		"request_uid", request.UID,
		"submission_uid", request.SubmissionUID)

	rev, err := s.create(ctx, constants.KVBucketNameApprovalRequests, request.UID, request)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create approval request", "error", err, "request_uid", request.UID)
		return nil, 0, err
	}

	indexKey := fmt.Sprintf(constants.KVLookupRequestBySubmissionPrefix, request.SubmissionUID, request.UID)
	if _, err := s.put(ctx, constants.KVBucketNameApprovalRequests, indexKey, request.UID); err != nil {
		slog.ErrorContext(ctx, "failed to create request index key",
			"error", err,
			"request_uid", request.UID,
			"index_key", indexKey,
		)
		return nil, 0, errs.NewServiceUnavailable("failed to index approval request")
	}

	slog.DebugContext(ctx, "nats storage: approval request created",
		"request_uid", request.UID,
		"revision", rev)

	return request, rev, nil
}

// UpdateApprovalRequest conditionally replaces the aggregate at expectedRevision
func (s *Storage) UpdateApprovalRequest(ctx context.Context, uid string, request *model.ApprovalRequest, expectedRevision uint64) (*model.ApprovalRequest, uint64, error) {
	slog.DebugContext(ctx, "nats storage: updating approval request",
		"request_uid", uid,
		"expected_revision", expectedRevision)

	rev, err := s.putWithRevision(ctx, constants.KVBucketNameApprovalRequests, uid, request, expectedRevision)
	if err != nil {
		slog.ErrorContext(ctx, "failed to update approval request", "error", err, "request_uid", uid)
		return nil, 0, err
	}

	slog.DebugContext(ctx, "nats storage: approval request updated",
		"request_uid", uid,
		"revision", rev)

	return request, rev, nil
}

// GetGroup retrieves a group by UID and returns its revision
func (s *Storage) GetGroup(ctx context.Context, uid string) (*model.ApprovalGroup, uint64, error) {
	group := &model.ApprovalGroup{}
	rev, err := s.get(ctx, constants.KVBucketNameApprovalGroups, uid, group)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, 0, errs.NewNotFound(fmt.Sprintf("approval group with UID %s not found", uid))
		}
		slog.ErrorContext(ctx, "failed to get approval group", "error", err, "group_uid", uid)
		return nil, 0, errs.NewServiceUnavailable("failed to get approval group")
	}

	return group, rev, nil
}

// ListGroups retrieves all approval groups, ordered by name
func (s *Storage) ListGroups(ctx context.Context) ([]*model.ApprovalGroup, error) {
	kv, exists := s.client.kvStore[constants.KVBucketNameApprovalGroups]
	if !exists || kv == nil {
		return nil, errs.NewServiceUnavailable("KV bucket not available")
	}

	lister, err := kv.ListKeys(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list group keys", "error", err)
		return nil, errs.NewServiceUnavailable("failed to list approval groups")
	}
	defer func() {
		_ = lister.Stop()
	}()

	groups := make([]*model.ApprovalGroup, 0)
	for key := range lister.Keys() {
		if strings.HasPrefix(key, constants.IndexKeyPrefix) {
			continue
		}
		group, _, err := s.GetGroup(ctx, key)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})

	return groups, nil
}

// CreateGroup stores a new group and returns it with its revision
func (s *Storage) CreateGroup(ctx context.Context, group *model.ApprovalGroup) (*model.ApprovalGroup, uint64, error) {
	slog.DebugContext(ctx, "nats storage: creating approval group",
		"group_uid", group.UID,
		"group_name", group.Name)

	rev, err := s.create(ctx, constants.KVBucketNameApprovalGroups, group.UID, group)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create approval group", "error", err, "group_uid", group.UID)
		return nil, 0, err
	}

	return group, rev, nil
}

// UpdateGroup conditionally replaces a group at expectedRevision
func (s *Storage) UpdateGroup(ctx context.Context, uid string, group *model.ApprovalGroup, expectedRevision uint64) (*model.ApprovalGroup, uint64, error) {
	slog.DebugContext(ctx, "nats storage: updating approval group",
		"group_uid", uid,
		"expected_revision", expectedRevision)

	rev, err := s.putWithRevision(ctx, constants.KVBucketNameApprovalGroups, uid, group, expectedRevision)
	if err != nil {
		slog.ErrorContext(ctx, "failed to update approval group", "error", err, "group_uid", uid)
		return nil, 0, err
	}

	return group, rev, nil
}

// GetSnapshot retrieves a snapshot by UID
func (s *Storage) GetSnapshot(ctx context.Context, uid string) (*model.Snapshot, error) {
	snapshot := &model.Snapshot{}
	_, err := s.get(ctx, constants.KVBucketNameSnapshots, uid, snapshot)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, errs.NewNotFound(fmt.Sprintf("snapshot with UID %s not found", uid))
		}
		slog.ErrorContext(ctx, "failed to get snapshot", "error", err, "snapshot_uid", uid)
		return nil, errs.NewServiceUnavailable("failed to get snapshot")
	}

	return snapshot, nil
}

// CreateSnapshot stores a new immutable snapshot
func (s *Storage) CreateSnapshot(ctx context.Context, snapshot *model.Snapshot) (*model.Snapshot, error) {
	slog.DebugContext(ctx, "nats storage: creating snapshot",
		"snapshot_uid", snapshot.UID,
		"submission_uid", snapshot.SubmissionUID)

	if _, err := s.create(ctx, constants.KVBucketNameSnapshots, snapshot.UID, snapshot); err != nil {
		slog.ErrorContext(ctx, "failed to create snapshot", "error", err, "snapshot_uid", snapshot.UID)
		return nil, err
	}

	return snapshot, nil
}

// IsReady checks if the storage is ready by verifying the client connection
func (s *Storage) IsReady(ctx context.Context) error {
	return s.client.IsReady(ctx)
}

// get retrieves a value from the KV store by bucket and key, unmarshaling it
// into the provided model and returning the revision.
func (s *Storage) get(ctx context.Context, bucket, key string, model any) (uint64, error) {
	if key == "" {
		return 0, errs.NewValidation("key cannot be empty")
	}

	kv, exists := s.client.kvStore[bucket]
	if !exists || kv == nil {
		return 0, errs.NewServiceUnavailable("KV bucket not available")
	}

	data, errGet := kv.Get(ctx, key)
	if errGet != nil {
		return 0, errGet
	}

	if errUnmarshal := json.Unmarshal(data.Value(), model); errUnmarshal != nil {
		return 0, errUnmarshal
	}

	return data.Revision(), nil
}

// create stores a value under a key that must not exist yet.
func (s *Storage) create(ctx context.Context, bucket, key string, model any) (uint64, error) {
	if key == "" {
		return 0, errs.NewValidation("key cannot be empty")
	}

	kv, exists := s.client.kvStore[bucket]
	if !exists || kv == nil {
		return 0, errs.NewServiceUnavailable("KV bucket not available")
	}

	data, err := json.Marshal(model)
	if err != nil {
		return 0, err
	}

	revision, err := kv.Create(ctx, key, data)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return 0, errs.NewConflict(fmt.Sprintf("key %s already exists", key))
		}
		return 0, errs.NewServiceUnavailable("failed to store value", err)
	}

	return revision, nil
}

// put stores a value unconditionally, returning the revision.
func (s *Storage) put(ctx context.Context, bucket, key string, model any) (uint64, error) {
	if key == "" {
		return 0, errs.NewValidation("key cannot be empty")
	}

	kv, exists := s.client.kvStore[bucket]
	if !exists || kv == nil {
		return 0, errs.NewServiceUnavailable("KV bucket not available")
	}

	data, err := json.Marshal(model)
	if err != nil {
		return 0, err
	}

	revision, err := kv.Put(ctx, key, data)
	if err != nil {
		return 0, err
	}

	return revision, nil
}

// putWithRevision stores a value conditional on the expected revision. A
// revision mismatch surfaces as a Conflict error so the orchestrator's
// optimistic retry can reload and replay the transaction.
func (s *Storage) putWithRevision(ctx context.Context, bucket, key string, model any, expectedRevision uint64) (uint64, error) {
	if key == "" {
		return 0, errs.NewValidation("key cannot be empty")
	}

	kv, exists := s.client.kvStore[bucket]
	if !exists || kv == nil {
		return 0, errs.NewServiceUnavailable("KV bucket not available")
	}

	data, err := json.Marshal(model)
	if err != nil {
		return 0, err
	}

	revision, err := kv.Update(ctx, key, data, expectedRevision)
	if err != nil {
		if isRevisionMismatch(err) {
			return 0, errs.NewConflict(fmt.Sprintf("key %s modified concurrently, expected revision %d", key, expectedRevision), err)
		}
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return 0, errs.NewNotFound(fmt.Sprintf("key %s not found", key))
		}
		return 0, errs.NewServiceUnavailable("failed to update value", err)
	}

	return revision, nil
}

// isRevisionMismatch recognizes the JetStream wrong-last-sequence error
// returned when a conditional update loses a revision race.
func isRevisionMismatch(err error) bool {
	var apiErr *jetstream.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence
}

// NewStorage creates the NATS KV implementation of the repository ports
func NewStorage(client *NATSClient) *Storage {
	return &Storage{
		client: client,
	}
}

// interface guards
var (
	_ port.ApprovalRequestReaderWriter = (*Storage)(nil)
	_ port.GroupReaderWriter           = (*Storage)(nil)
	_ port.SnapshotReaderWriter        = (*Storage)(nil)
)
