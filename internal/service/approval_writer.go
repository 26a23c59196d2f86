// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/councilsuite/instrument-approval-service/internal/domain/model"
	"github.com/councilsuite/instrument-approval-service/internal/domain/port"
	"github.com/councilsuite/instrument-approval-service/pkg/constants"
	errs "github.com/councilsuite/instrument-approval-service/pkg/errors"
	"github.com/councilsuite/instrument-approval-service/pkg/utils"
)

// ApprovalWriter defines the interface for approval request write operations
type ApprovalWriter interface {
	// CreateApprovalRequest files a new approval request for a submission,
	// snapshotting the submission content and opening one pending verdict per
	// required group
	CreateApprovalRequest(ctx context.Context, submissionUID, requester, comment string, groupUIDs []string) (*model.ApprovalRequest, error)

	// CastApproval records an approval vote by actor on every pending group
	// verdict the actor is eligible for
	CastApproval(ctx context.Context, requestUID, actor, comment string) (*model.VoteResult, error)

	// CastRejection records a rejection vote by actor on the first pending
	// group verdict the actor is eligible for; one rejection resolves the
	// whole request, so further verdicts are skipped
	CastRejection(ctx context.Context, requestUID, actor, comment string) (*model.VoteResult, error)
}

// approvalWriterOrchestratorOption defines a function type for setting options
type approvalWriterOrchestratorOption func(*approvalWriterOrchestrator)

// WithApprovalRepository sets the approval request repository
func WithApprovalRepository(repo port.ApprovalRequestReaderWriter) approvalWriterOrchestratorOption {
	return func(w *approvalWriterOrchestrator) {
		w.approvalRepository = repo
	}
}

// WithGroupRetriever sets the group reader
func WithGroupRetriever(reader port.GroupReader) approvalWriterOrchestratorOption {
	return func(w *approvalWriterOrchestrator) {
		w.groupReader = reader
	}
}

// WithSnapshotWriter sets the snapshot writer
func WithSnapshotWriter(writer port.SnapshotWriter) approvalWriterOrchestratorOption {
	return func(w *approvalWriterOrchestrator) {
		w.snapshotWriter = writer
	}
}

// WithSubmissionReader sets the instruments-service client used to snapshot
// submission content
func WithSubmissionReader(reader port.SubmissionReader) approvalWriterOrchestratorOption {
	return func(w *approvalWriterOrchestrator) {
		w.submissionReader = reader
	}
}

// WithReviewerDirectory sets the accounts-service client used to compute the
// notification fan-out
func WithReviewerDirectory(directory port.ReviewerDirectory) approvalWriterOrchestratorOption {
	return func(w *approvalWriterOrchestrator) {
		w.reviewerDirectory = directory
	}
}

// WithNotificationPublisher sets the notification publisher (may be nil to
// disable notifications)
func WithNotificationPublisher(publisher port.NotificationPublisher) approvalWriterOrchestratorOption {
	return func(w *approvalWriterOrchestrator) {
		w.publisher = publisher
	}
}

// WithWriterRetryConfig sets the retry budget for optimistic-revision conflicts
func WithWriterRetryConfig(config utils.RetryConfig) approvalWriterOrchestratorOption {
	return func(w *approvalWriterOrchestrator) {
		w.retryConfig = config
	}
}

// WithApprovalsEnabled toggles the approval workflow feature flag
func WithApprovalsEnabled(enabled bool) approvalWriterOrchestratorOption {
	return func(w *approvalWriterOrchestrator) {
		w.enabled = enabled
	}
}

// approvalWriterOrchestrator orchestrates the approval write operations
type approvalWriterOrchestrator struct {
	approvalRepository port.ApprovalRequestReaderWriter
	groupReader        port.GroupReader
	snapshotWriter     port.SnapshotWriter
	submissionReader   port.SubmissionReader
	reviewerDirectory  port.ReviewerDirectory
	publisher          port.NotificationPublisher
	retryConfig        utils.RetryConfig
	enabled            bool
}

// NewApprovalWriterOrchestrator creates a new writer orchestrator using the option pattern
func NewApprovalWriterOrchestrator(opts ...approvalWriterOrchestratorOption) ApprovalWriter {
	w := &approvalWriterOrchestrator{
		retryConfig: utils.NewRetryConfig(3, 50*time.Millisecond, 500*time.Millisecond),
		enabled:     true,
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// CreateApprovalRequest files a new approval request: it snapshots the current
// submission content, opens one pending verdict per required group, writes the
// first audit entry, and fans a notification out to every reviewer.
func (w *approvalWriterOrchestrator) CreateApprovalRequest(ctx context.Context, submissionUID, requester, comment string, groupUIDs []string) (*model.ApprovalRequest, error) {
	if !w.enabled {
		return nil, errs.NewNotFound("approval workflow is not enabled")
	}

	if submissionUID == "" {
		return nil, errs.NewValidation("submission UID is required")
	}
	if requester == "" {
		return nil, errs.NewValidation("requester is required")
	}

	groupUIDs = model.Dedupe(groupUIDs)
	if len(groupUIDs) == 0 {
		return nil, errs.NewValidation("at least one approval group is required")
	}

	groups := make([]*model.ApprovalGroup, 0, len(groupUIDs))
	for _, groupUID := range groupUIDs {
		group, _, err := w.groupReader.GetGroup(ctx, groupUID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to resolve approval group",
				"error", err,
				"group_uid", groupUID,
			)
			return nil, err
		}
		groups = append(groups, group)
	}

	content, err := w.submissionReader.GetSubmissionContent(ctx, submissionUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to retrieve submission content",
			"error", err,
			"submission_uid", submissionUID,
		)
		return nil, err
	}

	now := time.Now().UTC()

	snapshot := model.NewSnapshot(uuid.NewString(), content, now)
	if _, err := w.snapshotWriter.CreateSnapshot(ctx, snapshot); err != nil {
		slog.ErrorContext(ctx, "failed to store submission snapshot",
			"error", err,
			"submission_uid", submissionUID,
		)
		return nil, err
	}

	request := &model.ApprovalRequest{
		UID:               uuid.NewString(),
		SubmissionUID:     submissionUID,
		SnapshotUID:       snapshot.UID,
		Requester:         requester,
		Status:            model.StatusPending,
		RequiredGroupUIDs: groupUIDs,
		RequestComment:    comment,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for _, group := range groups {
		request.Verdicts = append(request.Verdicts, model.NewGroupVerdict(group))
	}
	request.AppendAudit(model.AuditEntry{
		UID:       uuid.NewString(),
		User:      requester,
		Action:    constants.AuditActionSubmitted,
		Comment:   comment,
		Timestamp: now,
	})

	created, _, err := w.approvalRepository.CreateApprovalRequest(ctx, request)
	if err != nil {
		slog.ErrorContext(ctx, "failed to store approval request",
			"error", err,
			"submission_uid", submissionUID,
		)
		return nil, err
	}

	slog.InfoContext(ctx, "approval request created",
		"request_uid", created.UID,
		"submission_uid", created.SubmissionUID,
		"requester", created.Requester,
		"group_count", len(groups),
	)

	w.notifyReviewers(ctx, created, groups)

	return created, nil
}

// CastApproval records an approval vote by actor. The vote applies to every
// required group the actor currently belongs to; verdicts the actor already
// voted on or that are no longer pending are skipped and reported in the
// result. The whole action commits as one conditional write, retried on
// revision conflicts against freshly loaded state.
func (w *approvalWriterOrchestrator) CastApproval(ctx context.Context, requestUID, actor, comment string) (*model.VoteResult, error) {
	if !w.enabled {
		return nil, errs.NewNotFound("approval workflow is not enabled")
	}

	var result *model.VoteResult
	var resolved *model.ApprovalRequest

	err := utils.RetryOnConflict(ctx, w.retryConfig, func() error {
		request, revision, err := w.loadVotableRequest(ctx, requestUID, actor)
		if err != nil {
			return err
		}

		groups, err := w.loadRequiredGroups(ctx, request)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		recorded := 0
		alreadyVoted := false
		memberOfAny := false
		var outcomes []model.VerdictVoteOutcome

		for _, verdict := range request.Verdicts {
			group := groups[verdict.GroupUID]
			if group == nil || !group.HasMember(actor) {
				continue
			}
			memberOfAny = true

			outcome := model.VerdictVoteOutcome{
				GroupUID:  verdict.GroupUID,
				GroupName: verdict.GroupName,
			}

			switch {
			case verdict.Status != model.StatusPending:
				outcome.SkipReason = model.SkipVerdictResolved
			case verdict.HasVoted(actor):
				outcome.SkipReason = model.SkipAlreadyVoted
				alreadyVoted = true
			default:
				verdict.RecordApproval(actor, comment, now)
				verdict.Recompute(group, request.Requester)
				request.AppendAudit(model.AuditEntry{
					UID:       uuid.NewString(),
					User:      actor,
					Action:    constants.AuditActionApproved(verdict.GroupName),
					Comment:   comment,
					Timestamp: now,
				})
				outcome.Recorded = true
				recorded++
			}

			outcomes = append(outcomes, outcome)
		}

		if !memberOfAny {
			return errs.NewNotAGroupMember(fmt.Sprintf("user %s is not a member of any group required by request %s", actor, requestUID))
		}
		if recorded == 0 {
			if alreadyVoted {
				return errs.NewAlreadyVoted(fmt.Sprintf("user %s already voted on request %s", actor, requestUID))
			}
			return errs.NewValidation(fmt.Sprintf("no pending group verdict for user %s on request %s", actor, requestUID))
		}

		changed := request.RecomputeStatus(actor, comment, now)
		request.UpdatedAt = now

		updated, _, err := w.approvalRepository.UpdateApprovalRequest(ctx, request.UID, request, revision)
		if err != nil {
			return err
		}

		result = &model.VoteResult{
			RequestUID:    updated.UID,
			RequestStatus: updated.Status,
			Recorded:      recorded,
			Outcomes:      outcomes,
		}
		resolved = nil
		if changed && updated.Status.IsTerminal() {
			resolved = updated
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "approval vote recorded",
		"request_uid", requestUID,
		"actor", actor,
		"verdicts_recorded", result.Recorded,
		"request_status", result.RequestStatus,
	)

	if resolved != nil {
		w.notifyResolved(ctx, resolved)
	}

	return result, nil
}

// CastRejection records a rejection vote by actor. Rejection requires a
// comment. A single rejection resolves the whole request, so only the first
// pending verdict the actor is eligible for receives the vote; the actor's
// remaining verdicts are reported as short-circuited.
func (w *approvalWriterOrchestrator) CastRejection(ctx context.Context, requestUID, actor, comment string) (*model.VoteResult, error) {
	if !w.enabled {
		return nil, errs.NewNotFound("approval workflow is not enabled")
	}
	if comment == "" {
		return nil, errs.NewCommentRequired("a comment is required when rejecting an approval request")
	}

	var result *model.VoteResult
	var resolved *model.ApprovalRequest

	err := utils.RetryOnConflict(ctx, w.retryConfig, func() error {
		request, revision, err := w.loadVotableRequest(ctx, requestUID, actor)
		if err != nil {
			return err
		}

		groups, err := w.loadRequiredGroups(ctx, request)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		recorded := 0
		alreadyVoted := false
		memberOfAny := false
		var outcomes []model.VerdictVoteOutcome

		for _, verdict := range request.Verdicts {
			group := groups[verdict.GroupUID]
			if group == nil || !group.HasMember(actor) {
				continue
			}
			memberOfAny = true

			outcome := model.VerdictVoteOutcome{
				GroupUID:  verdict.GroupUID,
				GroupName: verdict.GroupName,
			}

			switch {
			case recorded > 0:
				outcome.SkipReason = model.SkipShortCircuit
			case verdict.Status != model.StatusPending:
				outcome.SkipReason = model.SkipVerdictResolved
			case verdict.HasVoted(actor):
				outcome.SkipReason = model.SkipAlreadyVoted
				alreadyVoted = true
			default:
				verdict.RecordRejection(actor, comment, now)
				request.AppendAudit(model.AuditEntry{
					UID:       uuid.NewString(),
					User:      actor,
					Action:    constants.AuditActionRejected(verdict.GroupName),
					Comment:   comment,
					Timestamp: now,
				})
				outcome.Recorded = true
				recorded++
			}

			outcomes = append(outcomes, outcome)
		}

		if !memberOfAny {
			return errs.NewNotAGroupMember(fmt.Sprintf("user %s is not a member of any group required by request %s", actor, requestUID))
		}
		if recorded == 0 {
			if alreadyVoted {
				return errs.NewAlreadyVoted(fmt.Sprintf("user %s already voted on request %s", actor, requestUID))
			}
			return errs.NewValidation(fmt.Sprintf("no pending group verdict for user %s on request %s", actor, requestUID))
		}

		changed := request.RecomputeStatus(actor, comment, now)
		request.UpdatedAt = now

		updated, _, err := w.approvalRepository.UpdateApprovalRequest(ctx, request.UID, request, revision)
		if err != nil {
			return err
		}

		result = &model.VoteResult{
			RequestUID:    updated.UID,
			RequestStatus: updated.Status,
			Recorded:      recorded,
			Outcomes:      outcomes,
		}
		resolved = nil
		if changed && updated.Status.IsTerminal() {
			resolved = updated
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "rejection vote recorded",
		"request_uid", requestUID,
		"actor", actor,
		"request_status", result.RequestStatus,
	)

	if resolved != nil {
		w.notifyResolved(ctx, resolved)
	}

	return result, nil
}

// loadVotableRequest loads the request and checks the preconditions shared by
// both vote directions: the request must still be pending and the actor must
// not be its own requester.
func (w *approvalWriterOrchestrator) loadVotableRequest(ctx context.Context, requestUID, actor string) (*model.ApprovalRequest, uint64, error) {
	if actor == "" {
		return nil, 0, errs.NewValidation("acting user is required")
	}

	request, revision, err := w.approvalRepository.GetApprovalRequest(ctx, requestUID)
	if err != nil {
		return nil, 0, err
	}

	if request.Status.IsTerminal() {
		return nil, 0, errs.NewAlreadyResolved(fmt.Sprintf("request %s is already %s", requestUID, request.Status))
	}
	if actor == request.Requester {
		return nil, 0, errs.NewSelfReviewForbidden(fmt.Sprintf("requester %s may not review their own request", actor))
	}

	return request, revision, nil
}

// loadRequiredGroups resolves the current membership of every required group.
// Eligibility always follows current membership, not membership at filing time.
func (w *approvalWriterOrchestrator) loadRequiredGroups(ctx context.Context, request *model.ApprovalRequest) (map[string]*model.ApprovalGroup, error) {
	groups := make(map[string]*model.ApprovalGroup, len(request.RequiredGroupUIDs))
	for _, groupUID := range request.RequiredGroupUIDs {
		group, _, err := w.groupReader.GetGroup(ctx, groupUID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to resolve approval group",
				"error", err,
				"group_uid", groupUID,
				"request_uid", request.UID,
			)
			return nil, err
		}
		groups[groupUID] = group
	}
	return groups, nil
}

// notifyReviewers fans the new-request notification out to every user holding
// review permission. Delivery problems are logged and swallowed: the request
// is already stored and must not be rolled back by a mailer hiccup.
func (w *approvalWriterOrchestrator) notifyReviewers(ctx context.Context, request *model.ApprovalRequest, groups []*model.ApprovalGroup) {
	if w.publisher == nil || w.reviewerDirectory == nil {
		return
	}

	reviewers, err := w.reviewerDirectory.ListReviewers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list reviewers for notification",
			"error", err,
			"request_uid", request.UID,
		)
		return
	}

	groupNames := make([]string, 0, len(groups))
	for _, group := range groups {
		groupNames = append(groupNames, group.Name)
	}
	templateContext := model.RequestCreatedContext{
		RequestUID:     request.UID,
		SubmissionUID:  request.SubmissionUID,
		Requester:      request.Requester,
		RequestComment: request.RequestComment,
		GroupNames:     groupNames,
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, reviewer := range reviewers {
		if reviewer.Username == request.Requester {
			continue
		}
		g.Go(func() error {
			return w.publisher.Notify(gctx, reviewer.Email, constants.TemplateNewApprovalRequest, templateContext)
		})
	}
	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "failed to notify reviewers of new request",
			"error", err,
			"request_uid", request.UID,
		)
	}
}

// notifyResolved tells the requester their request reached a terminal verdict.
// The requester's username is resolved to a mail address through the accounts
// directory, the same addressing notifyReviewers uses. Fire and forget.
func (w *approvalWriterOrchestrator) notifyResolved(ctx context.Context, request *model.ApprovalRequest) {
	if w.publisher == nil || w.reviewerDirectory == nil {
		return
	}

	requester, err := w.reviewerDirectory.GetUser(ctx, request.Requester)
	if err != nil {
		slog.ErrorContext(ctx, "failed to resolve requester for notification",
			"error", err,
			"request_uid", request.UID,
			"requester", request.Requester,
		)
		return
	}

	templateContext := model.RequestResolvedContext{
		RequestUID:    request.UID,
		SubmissionUID: request.SubmissionUID,
		Status:        request.Status,
		Reviewer:      request.Reviewer,
		ReviewComment: request.ReviewComment,
	}

	if err := w.publisher.Notify(ctx, requester.Email, constants.TemplateApprovalRequestStatus, templateContext); err != nil {
		slog.ErrorContext(ctx, "failed to notify requester of resolved request",
			"error", err,
			"request_uid", request.UID,
			"request_status", request.Status,
		)
	}
}
