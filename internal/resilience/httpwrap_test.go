package resilience_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crewpay/backend-crewpay/internal/resilience"
)

func TestHTTPClientRetriesUntilSuccess(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := resilience.HTTPClient{
		Client:      server.Client(),
		Breaker:     resilience.NewBreaker(10, 1, time.Second),
		BaseBackoff: time.Millisecond,
		MaxAttempts: 5,
	}

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestHTTPClientStopsWhenBreakerOpens(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := resilience.HTTPClient{
		Client:      server.Client(),
		Breaker:     resilience.NewBreaker(1, 0.5, time.Minute),
		BaseBackoff: time.Millisecond,
		MaxAttempts: 4,
	}

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	_, err = client.Do(context.Background(), req)
	require.Error(t, err)
	require.Less(t, atomic.LoadInt32(&hits), int32(4), "breaker should cut retries short")
}

func TestHTTPClientFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fallbackUsed := false
	client := resilience.HTTPClient{
		Client:      server.Client(),
		MaxAttempts: 1,
		BaseBackoff: time.Millisecond,
		Fallback: func(ctx context.Context, req *http.Request, cause error) (*http.Response, error) {
			fallbackUsed = true
			rec := httptest.NewRecorder()
			rec.WriteHeader(http.StatusOK)
			return rec.Result(), nil
		},
	}

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.True(t, fallbackUsed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
