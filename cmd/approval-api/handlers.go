// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	natsinfra "github.com/councilsuite/instrument-approval-service/internal/infrastructure/nats"
	"github.com/councilsuite/instrument-approval-service/pkg/constants"
	errs "github.com/councilsuite/instrument-approval-service/pkg/errors"
	"github.com/councilsuite/instrument-approval-service/pkg/log"
)

// Request payloads of the API subjects. All subjects speak JSON.

type createRequestPayload struct {
	SubmissionUID string   `json:"submission_uid"`
	Requester     string   `json:"requester"`
	Comment       string   `json:"comment,omitempty"`
	GroupUIDs     []string `json:"group_uids"`
}

type uidPayload struct {
	UID string `json:"uid"`
}

type submissionPayload struct {
	SubmissionUID string `json:"submission_uid"`
}

type votePayload struct {
	RequestUID string `json:"request_uid"`
	User       string `json:"user"`
	Comment    string `json:"comment,omitempty"`
}

type canReviewPayload struct {
	RequestUID string `json:"request_uid"`
	User       string `json:"user"`
}

type canReviewResponse struct {
	CanReview bool `json:"can_review"`
}

type comparePayload struct {
	OldSnapshotUID string `json:"old_snapshot_uid"`
	NewSnapshotUID string `json:"new_snapshot_uid"`
}

type groupCreatePayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members"`
}

type groupUpdateMembersPayload struct {
	UID     string   `json:"uid"`
	Members []string `json:"members"`
}

// errorResponse is the JSON error envelope returned on any failure
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// subscribe wires every API subject to its handler on the shared queue group.
func (a *application) subscribe(ctx context.Context, client *natsinfra.NATSClient, wg *sync.WaitGroup) error {
	handlers := map[string]func(context.Context, []byte) (any, error){
		constants.RequestCreateSubject: func(ctx context.Context, data []byte) (any, error) {
			var payload createRequestPayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return nil, errs.NewValidation("invalid request payload", err)
			}
			return a.approvalWriter.CreateApprovalRequest(ctx, payload.SubmissionUID, payload.Requester, payload.Comment, payload.GroupUIDs)
		},
		constants.RequestGetSubject: func(ctx context.Context, data []byte) (any, error) {
			var payload uidPayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return nil, errs.NewValidation("invalid request payload", err)
			}
			return a.approvalReader.GetApprovalRequest(ctx, payload.UID)
		},
		constants.RequestListBySubmissionSubject: func(ctx context.Context, data []byte) (any, error) {
			var payload submissionPayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return nil, errs.NewValidation("invalid request payload", err)
			}
			return a.approvalReader.ListApprovalRequestsBySubmission(ctx, payload.SubmissionUID)
		},
		constants.RequestApproveSubject: func(ctx context.Context, data []byte) (any, error) {
			var payload votePayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return nil, errs.NewValidation("invalid request payload", err)
			}
			return a.approvalWriter.CastApproval(ctx, payload.RequestUID, payload.User, payload.Comment)
		},
		constants.RequestRejectSubject: func(ctx context.Context, data []byte) (any, error) {
			var payload votePayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return nil, errs.NewValidation("invalid request payload", err)
			}
			return a.approvalWriter.CastRejection(ctx, payload.RequestUID, payload.User, payload.Comment)
		},
		constants.RequestCanReviewSubject: func(ctx context.Context, data []byte) (any, error) {
			var payload canReviewPayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return nil, errs.NewValidation("invalid request payload", err)
			}
			canReview, err := a.approvalReader.CanUserReview(ctx, payload.RequestUID, payload.User)
			if err != nil {
				return nil, err
			}
			return canReviewResponse{CanReview: canReview}, nil
		},
		constants.RequestAuditTrailSubject: func(ctx context.Context, data []byte) (any, error) {
			var payload uidPayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return nil, errs.NewValidation("invalid request payload", err)
			}
			return a.approvalReader.AuditTrail(ctx, payload.UID)
		},
		constants.SnapshotGetSubject: func(ctx context.Context, data []byte) (any, error) {
			var payload uidPayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return nil, errs.NewValidation("invalid request payload", err)
			}
			return a.snapshotReader.GetSnapshot(ctx, payload.UID)
		},
		constants.SnapshotCompareSubject: func(ctx context.Context, data []byte) (any, error) {
			var payload comparePayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return nil, errs.NewValidation("invalid request payload", err)
			}
			return a.snapshotReader.CompareSnapshots(ctx, payload.OldSnapshotUID, payload.NewSnapshotUID)
		},
		constants.GroupCreateSubject: func(ctx context.Context, data []byte) (any, error) {
			var payload groupCreatePayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return nil, errs.NewValidation("invalid request payload", err)
			}
			return a.groupWriter.CreateGroup(ctx, payload.Name, payload.Description, payload.Members)
		},
		constants.GroupGetSubject: func(ctx context.Context, data []byte) (any, error) {
			var payload uidPayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return nil, errs.NewValidation("invalid request payload", err)
			}
			return a.groupReader.GetGroup(ctx, payload.UID)
		},
		constants.GroupListSubject: func(ctx context.Context, _ []byte) (any, error) {
			return a.groupReader.ListGroups(ctx)
		},
		constants.GroupUpdateMembersSubject: func(ctx context.Context, data []byte) (any, error) {
			var payload groupUpdateMembersPayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return nil, errs.NewValidation("invalid request payload", err)
			}
			return a.groupWriter.UpdateGroupMembers(ctx, payload.UID, payload.Members)
		},
	}

	for subject, handler := range handlers {
		if _, err := client.QueueSubscribe(subject, queue, a.msgHandler(ctx, subject, handler)); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}
		slog.InfoContext(ctx, "subscribed to API subject",
			"subject", subject,
			"queue", queue,
		)
	}

	if err := client.Flush(); err != nil {
		return fmt.Errorf("failed to flush subscriptions: %w", err)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		slog.InfoContext(ctx, "stopping API subject handlers")
	}()

	return nil
}

// msgHandler adapts a subject handler to a NATS message callback: it decodes,
// dispatches, and replies with either the JSON result or an error envelope.
func (a *application) msgHandler(appCtx context.Context, subject string, handler func(context.Context, []byte) (any, error)) nats.MsgHandler {
	return func(msg *nats.Msg) {
		select {
		case <-appCtx.Done():
			slog.InfoContext(appCtx, "dropping message, service shutting down", "subject", subject)
			return
		default:
		}

		// a fresh context per message so in-flight work survives shutdown
		msgCtx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()
		msgCtx = log.AppendCtx(msgCtx, slog.String("subject", subject))
		msgCtx = log.AppendCtx(msgCtx, slog.String("message_id", uuid.NewString()))

		started := time.Now()
		result, err := handler(msgCtx, msg.Data)
		if err != nil {
			respond(msgCtx, msg, errorResponse{Error: err.Error(), Code: errorCode(err)})
			return
		}

		slog.DebugContext(msgCtx, "API request handled",
			"duration_ms", time.Since(started).Milliseconds(),
		)
		respond(msgCtx, msg, result)
	}
}

// respond serializes the reply and sends it; without a reply subject (a
// fire-and-forget caller) the result is dropped.
func respond(ctx context.Context, msg *nats.Msg, payload any) {
	if msg.Reply == "" {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal API response", "error", err)
		data, _ = json.Marshal(errorResponse{Error: "internal error", Code: "internal"})
	}

	if err := msg.Respond(data); err != nil {
		slog.ErrorContext(ctx, "failed to respond to API request", "error", err)
	}
}

// errorCode maps the typed service errors to stable codes callers can branch on.
func errorCode(err error) string {
	switch {
	case errors.As(err, &errs.Validation{}):
		return "validation"
	case errors.As(err, &errs.NotFound{}):
		return "not_found"
	case errors.As(err, &errs.Conflict{}):
		return "conflict"
	case errors.As(err, &errs.AlreadyResolved{}):
		return "already_resolved"
	case errors.As(err, &errs.AlreadyVoted{}):
		return "already_voted"
	case errors.As(err, &errs.SelfReviewForbidden{}):
		return "self_review_forbidden"
	case errors.As(err, &errs.NotAGroupMember{}):
		return "not_a_group_member"
	case errors.As(err, &errs.CommentRequired{}):
		return "comment_required"
	case errors.As(err, &errs.ServiceUnavailable{}):
		return "service_unavailable"
	default:
		return "internal"
	}
}
