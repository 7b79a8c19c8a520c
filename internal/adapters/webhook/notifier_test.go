package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melih/docker-agent/internal/core/domain"
	"github.com/melih/docker-agent/internal/observability"
)

func TestNotifyPostsJSON(t *testing.T) {
	var gotPath, gotType string
	var got domain.FileUploadedEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := New(srv.URL+"/", 0, nil, observability.MustNewMetrics(prometheus.NewRegistry()))
	d := n.Notify(context.Background(), domain.HookFileUploaded, domain.FileUploadedEvent{
		Filename: "report.csv", Size: 12, Path: "/app/shared/report.csv",
	})

	assert.True(t, d.OK())
	assert.Equal(t, srv.URL+"/webhook/file-uploaded", d.URL)
	assert.Equal(t, "/webhook/file-uploaded", gotPath)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, domain.FileUploadedEvent{Filename: "report.csv", Size: 12, Path: "/app/shared/report.csv"}, got)
	assert.Equal(t, srv.URL, n.BaseURL())
}

func TestNotifyNon2xxIsReportedNotRaised(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	d := New(srv.URL, 0, nil, nil).Notify(context.Background(), domain.HookAgentAction, map[string]any{"event": "x"})

	assert.False(t, d.OK())
	assert.NoError(t, d.Err)
	assert.Equal(t, http.StatusNotFound, d.StatusCode)
}

func TestNotifyUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	d := New(url, time.Second, nil, nil).Notify(context.Background(), domain.HookAgentAction, map[string]any{})

	assert.False(t, d.OK())
	assert.Error(t, d.Err)
}

func TestNotifyTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	d := New(srv.URL, 50*time.Millisecond, nil, nil).Notify(context.Background(), domain.HookAgentAction, map[string]any{})

	assert.Error(t, d.Err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNotifyIgnoresCancelledContext(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := New(srv.URL, 0, nil, nil).Notify(ctx, domain.HookAgentAction, map[string]any{})

	assert.True(t, d.OK())
	assert.Equal(t, 1, hits)
}

func TestNotifyUnmarshalablePayload(t *testing.T) {
	d := New("http://127.0.0.1:1", 0, nil, nil).Notify(context.Background(), "/x", map[string]any{"ch": make(chan int)})
	assert.ErrorContains(t, d.Err, "marshal payload")
}
