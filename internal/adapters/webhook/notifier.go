// Package webhook posts best-effort event notifications to the n8n
// automation receiver.
//
// Delivery is advisory: failures are logged at WARN and counted, never
// returned as errors, so a down receiver cannot fail the request that
// triggered the notification.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/melih/docker-agent/internal/core/domain"
	"github.com/melih/docker-agent/internal/observability"
)

// DefaultTimeout bounds a single delivery attempt.
const DefaultTimeout = 5 * time.Second

// Notifier implements ports.Notifier over HTTP.
type Notifier struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New returns a notifier posting to baseURL + path. A zero timeout selects
// DefaultTimeout.
func New(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Notifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With("component", "webhook"),
		metrics: metrics,
	}
}

func (n *Notifier) BaseURL() string { return n.baseURL }

// Notify POSTs payload as JSON. The request is detached from ctx cancellation
// so a client disconnect does not abort it; the client timeout still applies.
func (n *Notifier) Notify(ctx context.Context, path string, payload any) domain.Delivery {
	d := n.send(context.WithoutCancel(ctx), path, payload)

	log := observability.WithTrace(ctx, n.logger)
	if d.OK() {
		n.metrics.ObserveWebhook(path, observability.OutcomeOK)
		log.Debug("webhook delivered", "url", d.URL, "status", d.StatusCode)
		return d
	}
	n.metrics.ObserveWebhook(path, observability.OutcomeError)
	if d.Err != nil {
		log.Warn("webhook delivery failed", "url", d.URL, "err", d.Err)
	} else {
		log.Warn("webhook rejected", "url", d.URL, "status", d.StatusCode)
	}
	return d
}

func (n *Notifier) send(ctx context.Context, path string, payload any) domain.Delivery {
	d := domain.Delivery{URL: n.baseURL + path}

	body, err := json.Marshal(payload)
	if err != nil {
		d.Err = fmt.Errorf("marshal payload: %w", err)
		return d
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.URL, bytes.NewReader(body))
	if err != nil {
		d.Err = err
		return d
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		d.Err = err
		return d
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	d.StatusCode = resp.StatusCode
	return d
}
