package script

import (
	"context"
	"log/slog"
)

// Notifier pushes short status messages to an external service.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string) error

func (f NotifierFunc) Notify(ctx context.Context, message string) error {
	return f(ctx, message)
}

// notify is fire-and-forget: failures are logged and dropped.
func notify(n Notifier, logger *slog.Logger, message string) {
	if n == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), DefaultNotifyTimeout)
	defer cancel()
	if err := n.Notify(ctx, message); err != nil {
		logger.Warn("notification failed", "error", err)
	}
}
