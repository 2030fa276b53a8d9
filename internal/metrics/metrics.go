// Package metrics instruments the task store with Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"todoctl/internal/logging"
	"todoctl/internal/service"
)

// Collectors holds the store metrics.
type Collectors struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewCollectors creates the store collectors and registers them with reg.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todoctl_store_requests_total",
				Help: "Total number of task store operations",
			},
			[]string{"op", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "todoctl_store_request_duration_seconds",
				Help:    "Duration of task store operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
	}
	reg.MustRegister(c.Requests, c.Duration)
	return c
}

// Store wraps a service.Store and records every call.
type Store struct {
	next service.Store
	c    *Collectors
}

// Instrument wraps next so that each operation is counted and timed.
func Instrument(next service.Store, c *Collectors) *Store {
	return &Store{next: next, c: c}
}

// SetLogger forwards to the wrapped store when it logs.
func (s *Store) SetLogger(l *log.Logger) {
	logging.Redirect(s.next, l)
}

func (s *Store) observe(op string, start time.Time, err error) {
	s.c.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	status := "success"
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	s.c.Requests.WithLabelValues(op, status).Inc()
}

// List implements service.Store.
func (s *Store) List(ctx context.Context) ([]service.Task, error) {
	start := time.Now()
	tasks, err := s.next.List(ctx)
	s.observe("list", start, err)
	return tasks, err
}

// Get implements service.Store.
func (s *Store) Get(ctx context.Context, id string) (service.Task, error) {
	start := time.Now()
	task, err := s.next.Get(ctx, id)
	s.observe("get", start, err)
	return task, err
}

// Create implements service.Store.
func (s *Store) Create(ctx context.Context, task service.NewTask) (service.Task, error) {
	start := time.Now()
	created, err := s.next.Create(ctx, task)
	s.observe("create", start, err)
	return created, err
}

// Update implements service.Store.
func (s *Store) Update(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	start := time.Now()
	updated, err := s.next.Update(ctx, id, patch)
	s.observe("update", start, err)
	return updated, err
}

// Delete implements service.Store.
func (s *Store) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.next.Delete(ctx, id)
	s.observe("delete", start, err)
	return err
}

// Handler returns a router serving the registry at /metrics.
func Handler(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}

// Serve runs the metrics endpoint on addr until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(g),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
