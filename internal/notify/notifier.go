// Package notify tells an operator about things that need attention.
package notify

import (
	"context"
	"log/slog"
)

// Notification represents a notification message.
type Notification struct {
	Subject string
	Body    string
}

// Notifier is the interface for sending notifications.
type Notifier interface {
	// Send sends a notification.
	Send(ctx context.Context, notification Notification) error
}

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier over logger, or the default logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Send logs the notification at warn level.
func (l *LogNotifier) Send(ctx context.Context, n Notification) error {
	l.logger.WarnContext(ctx, "notification", "subject", n.Subject, "body", n.Body)
	return nil
}
