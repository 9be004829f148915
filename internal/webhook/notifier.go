// internal/webhook/notifier.go
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/radityabagas/bucketadmin/internal/config"
)

// Event types emitted after folder operations.
const (
	EventFolderCreate = "folder-create"
	EventFolderRename = "folder-rename"
	EventFolderCopy   = "folder-copy"
	EventFolderMove   = "folder-move"
	EventFolderDelete = "folder-delete"
)

// Notifier delivers operation events to an external consumer.
type Notifier interface {
	Trigger(ctx context.Context, eventType string, payload any) error
}

type envelope struct {
	Type    string    `json:"type"`
	SentAt  time.Time `json:"sentAt"`
	Payload any       `json:"payload"`
}

// HTTPNotifier posts events as JSON to a single endpoint with exponential
// backoff on 5xx and network errors. 4xx responses are not retried.
type HTTPNotifier struct {
	url        string
	secret     string
	client     *http.Client
	maxRetries uint64

	// RetryInterval seeds the exponential backoff. Overridable in tests.
	RetryInterval time.Duration
}

func NewHTTPNotifier(cfg config.WebhookConfig) *HTTPNotifier {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &HTTPNotifier{
		url:           cfg.URL,
		secret:        cfg.Secret,
		client:        &http.Client{Timeout: timeout},
		maxRetries:    uint64(maxRetries),
		RetryInterval: 500 * time.Millisecond,
	}
}

func (n *HTTPNotifier) Trigger(ctx context.Context, eventType string, payload any) error {
	body, err := json.Marshal(envelope{
		Type:    eventType,
		SentAt:  time.Now().UTC(),
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	deliver := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build webhook request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")
		if n.secret != "" {
			req.Header.Set("X-Webhook-Secret", n.secret)
		}

		resp, err := n.client.Do(req)
		if err != nil {
			return fmt.Errorf("deliver webhook: %w", err)
		}
		defer func() {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return backoff.Permanent(fmt.Errorf("webhook rejected with status %d", resp.StatusCode))
		default:
			return fmt.Errorf("webhook returned status %d", resp.StatusCode)
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = n.RetryInterval

	err = backoff.Retry(deliver, backoff.WithContext(backoff.WithMaxRetries(bo, n.maxRetries), ctx))
	if err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("webhook delivery failed")
		return err
	}
	return nil
}

type noopNotifier struct{}

// NewNoopNotifier returns a notifier that drops every event. Used when no
// webhook URL is configured.
func NewNoopNotifier() Notifier {
	return &noopNotifier{}
}

func (noopNotifier) Trigger(context.Context, string, any) error {
	return nil
}
