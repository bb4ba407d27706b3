package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/confsched/internal/sessions"
)

func TestObserveUseCase_CountsByStatus(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.ObserveUseCase(ctx, sessions.UseCaseEvent{Name: "toggle_bookmark", Success: true, Duration: time.Millisecond})
	m.ObserveUseCase(ctx, sessions.UseCaseEvent{Name: "toggle_bookmark", Err: fmt.Errorf("%w: x", sessions.ErrNotFound)})
	m.ObserveUseCase(ctx, sessions.UseCaseEvent{Name: "toggle_bookmark", Err: errors.New("boom")})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.UseCasesTotal.WithLabelValues("toggle_bookmark", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UseCasesTotal.WithLabelValues("toggle_bookmark", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UseCasesTotal.WithLabelValues("toggle_bookmark", "error")))
}

func TestSetSubscribers(t *testing.T) {
	m := New()
	m.SetSubscribers(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.StreamSubscribers))
}

func TestRouter_ServesMetricsAndHealth(t *testing.T) {
	m := New()
	m.ObserveUseCase(context.Background(), sessions.UseCaseEvent{Name: "refresh", Success: true})
	ts := httptest.NewServer(m.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", string(body))

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), `confsched_use_cases_total{status="ok",use_case="refresh"} 1`)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/healthz", "OK")))
}

func TestServe_StopsOnCancel(t *testing.T) {
	m := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Serve(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
