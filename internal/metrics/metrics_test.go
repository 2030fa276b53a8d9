package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoctl/internal/metrics"
	"todoctl/internal/service"
	fakes "todoctl/internal/testutil"
)

func TestInstrument_CountsByStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollectors(reg)
	store := fakes.NewFakeStore()
	store.AddTask("a", "Buy milk", false)
	s := metrics.Instrument(store, c)
	ctx := context.Background()

	_, err := s.List(ctx)
	require.NoError(t, err)
	_, err = s.Update(ctx, "a", service.CompletedPatch(true))
	require.NoError(t, err)
	err = s.Delete(ctx, "missing")
	require.Error(t, err)

	store.CreateErr = errors.New("boom")
	_, err = s.Create(ctx, service.NewTask{Title: "x"})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Requests.WithLabelValues("list", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Requests.WithLabelValues("update", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Requests.WithLabelValues("delete", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Requests.WithLabelValues("create", "error")))
	assert.Equal(t, 4, testutil.CollectAndCount(c.Duration))
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollectors(reg)
	s := metrics.Instrument(fakes.NewFakeStore(), c)
	_, err := s.List(context.Background())
	require.NoError(t, err)

	srv := httptest.NewServer(metrics.Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `todoctl_store_requests_total{op="list",status="success"} 1`))
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- metrics.Serve(ctx, "127.0.0.1:0", prometheus.NewRegistry())
	}()
	cancel()
	assert.NoError(t, <-done)
}
