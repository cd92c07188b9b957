// Package notify is the boundary to the external notification collaborator.
// The core only needs fire-and-forget delivery of settlement outcomes.
package notify

import (
	"context"
	"log/slog"
)

type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// LogNotifier writes notifications to the structured log. Stands in for the
// real mail collaborator in deployments that have none configured.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, recipient, subject, body string) error {
	slog.Info("notification sent",
		"recipient", recipient,
		"subject", subject,
		"body", body,
	)

	return nil
}
