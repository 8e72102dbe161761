package adlead

import "context"

// Notifier delivers a best-effort message to a preconfigured channel.
// Delivery is fire-and-forget: a failed notification is logged by the
// caller and never fails the operation that triggered it.
type Notifier interface {
	// Notify sends an HTML-flavored plain text message.
	Notify(ctx context.Context, message string) error
}
