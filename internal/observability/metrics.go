package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels shared by the counters below.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics exposes Prometheus collectors that report agent activity.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	chatRequests *prometheus.CounterVec
	toolCalls    *prometheus.CounterVec
	webhooks     *prometheus.CounterVec
	llmDuration  *prometheus.HistogramVec
}

// MustNewMetrics constructs a Metrics instance using the provided registerer.
// Tests should pass a fresh prometheus.NewRegistry() to avoid duplicate
// registration panics.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		chatRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "docker_agent",
				Name:      "chat_requests_total",
				Help:      "Chat requests handled, by outcome.",
			},
			[]string{"outcome"},
		),
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "docker_agent",
				Name:      "tool_calls_total",
				Help:      "Tool calls executed on behalf of the model.",
			},
			[]string{"function", "outcome"},
		),
		webhooks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "docker_agent",
				Name:      "webhook_deliveries_total",
				Help:      "Notifications sent to the automation receiver.",
			},
			[]string{"path", "outcome"},
		),
		llmDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "docker_agent",
				Name:      "llm_request_duration_seconds",
				Help:      "Latency of language model calls.",
				Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.chatRequests, m.toolCalls, m.webhooks, m.llmDuration)
	return m
}

func (m *Metrics) ObserveChat(outcome string) {
	if m == nil {
		return
	}
	m.chatRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveToolCall(function, outcome string) {
	if m == nil {
		return
	}
	m.toolCalls.WithLabelValues(function, outcome).Inc()
}

func (m *Metrics) ObserveWebhook(path, outcome string) {
	if m == nil {
		return
	}
	m.webhooks.WithLabelValues(path, outcome).Inc()
}

func (m *Metrics) ObserveLLM(started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.llmDuration.WithLabelValues(outcome).Observe(time.Since(started).Seconds())
}
