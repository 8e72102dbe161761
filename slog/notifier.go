package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkaminski/adlead"
)

// Ensure Notifier implements adlead.Notifier.
var _ adlead.Notifier = (*Notifier)(nil)

// Notifier wraps an adlead.Notifier with delivery logging.
type Notifier struct {
	next   adlead.Notifier
	logger *slog.Logger
}

// NewNotifier creates a new logging Notifier.
func NewNotifier(next adlead.Notifier, logger *slog.Logger) *Notifier {
	return &Notifier{next: next, logger: logger}
}

// Notify logs the delivery attempt and delegates to the wrapped notifier.
func (n *Notifier) Notify(ctx context.Context, message string) (err error) {
	defer func(begin time.Time) {
		n.logger.Debug("notify",
			"chars", len(message),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.Notify(ctx, message)
}
