// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/councilsuite/instrument-approval-service/internal/domain/model"
	"github.com/councilsuite/instrument-approval-service/internal/domain/port"
	"github.com/councilsuite/instrument-approval-service/pkg/constants"
	"github.com/councilsuite/instrument-approval-service/pkg/errors"
)

// notificationPublisher implements the NotificationPublisher interface using NATS
type notificationPublisher struct {
	client *NATSClient
}

// Notify publishes one notification message to the mailer subject. Delivery
// is fire-and-forget; the mailer renders the template and sends the email.
func (p *notificationPublisher) Notify(ctx context.Context, recipient, templateID string, templateContext any) error {
	if err := p.client.IsReady(ctx); err != nil {
		slog.ErrorContext(ctx, "NATS client is not ready for publishing",
			"error", err,
			"subject", constants.MailerNotifySubject,
			"template_id", templateID,
		)
		return errors.NewServiceUnavailable("NATS client is not ready", err)
	}

	message := model.NotificationMessage{
		Recipient:  recipient,
		TemplateID: templateID,
		Context:    templateContext,
	}

	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal notification message",
			"error", err,
			"template_id", templateID,
		)
		return errors.NewUnexpected("failed to marshal notification message", err)
	}

	if err := p.client.conn.Publish(constants.MailerNotifySubject, data); err != nil {
		slog.ErrorContext(ctx, "failed to publish notification message",
			"error", err,
			"subject", constants.MailerNotifySubject,
			"template_id", templateID,
		)
		return errors.NewServiceUnavailable("failed to publish notification message", err)
	}

	slog.DebugContext(ctx, "notification message published",
		"subject", constants.MailerNotifySubject,
		"template_id", templateID,
		"message_size", len(data),
	)

	return nil
}

// NewNotificationPublisher creates a new NotificationPublisher using NATS
func NewNotificationPublisher(client *NATSClient) port.NotificationPublisher {
	return &notificationPublisher{
		client: client,
	}
}
