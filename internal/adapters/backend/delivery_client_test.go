package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `[
	{"id": 1, "reference": "PHX-1", "customer_name": "Ana", "address": "1 N Central Ave", "status": "pending", "lat": 33.4484, "lng": -112.0740},
	{"id": 2, "reference": "PHX-2", "customer_name": "Bo", "address": "", "status": "pending", "lat": 33.4457, "lng": -112.0667},
	{"id": 3, "reference": "PHX-3", "customer_name": "Cy", "address": "2301 N Central Ave", "status": "in_transit", "lat": 33.4724, "lng": -112.0735}
]`

func newTestRepository(t *testing.T, h http.HandlerFunc) *HTTPDeliveryRepository {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	repo, err := NewHTTPDeliveryRepository(srv.URL+"/", "secret")
	require.NoError(t, err)
	repo.backoff = time.Millisecond
	return repo
}

func TestListDeliveries(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/deliveries", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	})

	got, err := repo.ListDeliveries(context.Background())
	require.NoError(t, err)

	// The row with an empty address is dropped.
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].DeliveryID)
	assert.Equal(t, "PHX-3", got[1].Reference)
	assert.Equal(t, -112.0735, got[1].Lng)
}

func TestListDeliveriesRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "try later", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})

	got, err := repo.ListDeliveries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.EqualValues(t, 3, calls.Load())
}

func TestListDeliveriesGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := repo.ListDeliveries(context.Background())
	require.Error(t, err)

	var he *httpStatusError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadGateway, he.Code)
	assert.EqualValues(t, maxAttempts, calls.Load())
}

func TestListDeliveriesDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})

	_, err := repo.ListDeliveries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Code 401")
	assert.EqualValues(t, 1, calls.Load())
}

func TestListDeliveriesHonoursCancelledContext(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListDeliveries(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListDeliveriesRejectsMalformedBody(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"}`))
	})

	_, err := repo.ListDeliveries(context.Background())
	assert.ErrorContains(t, err, "decode response")
}

func TestNewHTTPDeliveryRepositoryValidatesURL(t *testing.T) {
	_, err := NewHTTPDeliveryRepository("  ", "")
	assert.Error(t, err)

	_, err = NewHTTPDeliveryRepository("not a url", "")
	assert.Error(t, err)
}
