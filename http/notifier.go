package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mkaminski/adlead"
)

// DefaultNotifyTimeout bounds a single notification attempt.
const DefaultNotifyTimeout = 5 * time.Second

// telegramAPI is the Bot API base URL; overridable in tests.
const telegramAPI = "https://api.telegram.org"

// Ensure Notifier implements adlead.Notifier at compile time.
var _ adlead.Notifier = (*Notifier)(nil)

// Notifier delivers messages to a Telegram chat via the Bot API.
// Messages are sent with HTML parse mode, matching the HTML-flavored
// text the ingestion pipeline produces.
type Notifier struct {
	client  *http.Client
	baseURL string
	token   string
	chatID  string
}

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithBaseURL overrides the Telegram API base URL. Used in tests.
func WithBaseURL(baseURL string) NotifierOption {
	return func(n *Notifier) {
		n.baseURL = baseURL
	}
}

// WithClient sets the HTTP client used for delivery.
func WithClient(client *http.Client) NotifierOption {
	return func(n *Notifier) {
		n.client = client
	}
}

// NewNotifier creates a Notifier for the given bot token and chat ID.
func NewNotifier(token, chatID string, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		client:  &http.Client{Timeout: DefaultNotifyTimeout},
		baseURL: telegramAPI,
		token:   token,
		chatID:  chatID,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify sends the message to the configured chat. Delivery is
// best-effort by contract; callers log the returned error and move on.
func (n *Notifier) Notify(ctx context.Context, message string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id":    n.chatID,
		"text":       message,
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return adlead.Errorf(adlead.EUNAVAILABLE, "telegram: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return adlead.Errorf(adlead.EUNAVAILABLE, "telegram: HTTP %d", resp.StatusCode)
	}

	return nil
}
