package mock

import (
	"context"

	"github.com/mkaminski/adlead"
)

var _ adlead.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of adlead.Notifier.
type Notifier struct {
	NotifyFn func(ctx context.Context, message string) error
}

func (n *Notifier) Notify(ctx context.Context, message string) error {
	return n.NotifyFn(ctx, message)
}
