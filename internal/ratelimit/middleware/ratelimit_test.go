package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"georef/internal/ratelimit/metrics"
	"georef/internal/ratelimit/models"
	"georef/internal/ratelimit/store/bucket"
	"georef/pkg/platform/circuit"
	"georef/pkg/testutil"
)

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (*models.RateLimitResult, error) {
	return nil, errors.New("redis: connection refused")
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimit(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	limiter := New(bucket.NewInMemoryBucketStore(), 2, time.Minute, testutil.DiscardLogger(), WithMetrics(m))
	handler := limiter.RateLimit(okHandler)

	request := func(ip string) *http.Request {
		return testutil.WithClientIP(testutil.Get(t, "/api/v1/countries"), ip)
	}

	first := testutil.DoRequest(handler, request("203.0.113.7"))
	testutil.AssertStatus(t, first, http.StatusOK)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, first.Header().Get("X-RateLimit-Reset"))

	testutil.AssertStatus(t, testutil.DoRequest(handler, request("203.0.113.7")), http.StatusOK)

	over := testutil.DoRequest(handler, request("203.0.113.7"))
	testutil.AssertStatusAndError(t, over, http.StatusTooManyRequests, "too_many_requests")
	assert.Equal(t, "0", over.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, over.Header().Get("Retry-After"))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.RateLimited))

	other := testutil.DoRequest(handler, request("198.51.100.1"))
	testutil.AssertStatus(t, other, http.StatusOK)
}

func TestRateLimitFailsOpen(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	handler := New(failingStore{}, 1, time.Minute, testutil.DiscardLogger(), WithMetrics(m)).RateLimit(okHandler)

	rr := testutil.DoRequest(handler, testutil.Get(t, "/"))

	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.LimiterFailures))
}

func TestRateLimitDisabled(t *testing.T) {
	handler := New(failingStore{}, 0, time.Minute, testutil.DiscardLogger(), WithDisabled(true)).RateLimit(okHandler)

	rr := testutil.DoRequest(handler, testutil.Get(t, "/"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
}

// flakyStore fails while down is set and otherwise delegates to an in-memory store.
type flakyStore struct {
	down  bool
	inner *bucket.InMemoryBucketStore
}

func (f *flakyStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	if f.down {
		return nil, errors.New("redis: i/o timeout")
	}
	return f.inner.Allow(ctx, key, limit, window)
}

func TestRateLimitFallback(t *testing.T) {
	primary := &flakyStore{down: true, inner: bucket.NewInMemoryBucketStore()}
	breaker := circuit.New("redis", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(1))
	handler := New(primary, 1, time.Minute, testutil.DiscardLogger(),
		WithFallback(bucket.NewInMemoryBucketStore(), breaker),
	).RateLimit(okHandler)

	request := func() *http.Request {
		return testutil.WithClientIP(testutil.Get(t, "/api/v1/cities"), "203.0.113.9")
	}

	testutil.Given(t, "a primary store that keeps failing", func(t *testing.T) {
		first := testutil.DoRequest(handler, request())
		testutil.AssertStatus(t, first, http.StatusOK)
		assert.Empty(t, first.Header().Get("X-RateLimit-Status"))
		assert.False(t, breaker.IsOpen())

		testutil.Then(t, "the circuit opens and the fallback enforces the limit", func(t *testing.T) {
			second := testutil.DoRequest(handler, request())
			testutil.AssertStatus(t, second, http.StatusOK)
			assert.Equal(t, "degraded", second.Header().Get("X-RateLimit-Status"))
			assert.True(t, breaker.IsOpen())

			third := testutil.DoRequest(handler, request())
			testutil.AssertStatusAndError(t, third, http.StatusTooManyRequests, "too_many_requests")
			assert.Equal(t, "degraded", third.Header().Get("X-RateLimit-Status"))
		})
	})

	testutil.Given(t, "the primary store recovers", func(t *testing.T) {
		primary.down = false

		testutil.When(t, "the next request succeeds against it", func(t *testing.T) {
			rr := testutil.DoRequest(handler, request())

			testutil.Then(t, "the circuit closes and primary results are used", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusOK)
				assert.Empty(t, rr.Header().Get("X-RateLimit-Status"))
				assert.False(t, breaker.IsOpen())
			})
		})
	})
}
