// Package metrics exposes confsched's Prometheus metrics and health endpoint.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexanderramin/confsched/internal/sessions"
)

// Metrics holds the collectors registered on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	UseCasesTotal       *prometheus.CounterVec
	UseCaseDuration     *prometheus.HistogramVec
	StreamSubscribers   prometheus.Gauge
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{Registry: prometheus.NewRegistry()}

	m.UseCasesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "confsched_use_cases_total",
			Help: "Repository operations by name and outcome",
		},
		[]string{"use_case", "status"},
	)
	m.UseCaseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "confsched_use_case_duration_seconds",
			Help:    "Duration of repository operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"use_case"},
	)
	m.StreamSubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "confsched_stream_subscribers",
			Help: "Open timetable stream subscriptions",
		},
	)
	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "confsched_http_requests_total",
			Help: "Requests served by the metrics endpoint",
		},
		[]string{"method", "path", "status"},
	)
	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "confsched_http_request_duration_seconds",
			Help:    "Duration of metrics endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.Registry.MustRegister(
		m.UseCasesTotal,
		m.UseCaseDuration,
		m.StreamSubscribers,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveUseCase implements sessions.UseCaseObserver.
func (m *Metrics) ObserveUseCase(_ context.Context, e sessions.UseCaseEvent) {
	status := "ok"
	switch {
	case errors.Is(e.Err, sessions.ErrNotFound):
		status = "not_found"
	case e.Err != nil:
		status = "error"
	}
	m.UseCasesTotal.WithLabelValues(e.Name, status).Inc()
	m.UseCaseDuration.WithLabelValues(e.Name).Observe(e.Duration.Seconds())
}

// SetSubscribers is suitable for sessions.WithSubscriberGauge.
func (m *Metrics) SetSubscribers(n int) {
	m.StreamSubscribers.Set(float64(n))
}

// Router serves /metrics and /healthz.
func (m *Metrics) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(m.trackRequests)
	r.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	}).Methods(http.MethodGet)
	return r
}

func (m *Metrics) trackRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, http.StatusText(rw.statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Serve runs the metrics server on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           m.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
