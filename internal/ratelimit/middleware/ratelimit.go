package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"georef/internal/ratelimit/metrics"
	"georef/internal/ratelimit/models"
	"georef/pkg/platform/circuit"
	"georef/pkg/platform/httputil"
	"georef/pkg/requestcontext"
)

// BucketStore counts requests per key.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
}

type Middleware struct {
	store    BucketStore
	fallback BucketStore
	breaker  *circuit.Breaker
	limit    int
	window   time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
}

type Option func(*Middleware)

// WithDisabled disables rate limiting entirely.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = mt
	}
}

// WithFallback limits locally through fallback while breaker is open. Without
// a fallback, store failures let requests through.
func WithFallback(fallback BucketStore, breaker *circuit.Breaker) Option {
	return func(m *Middleware) {
		m.fallback = fallback
		m.breaker = breaker
	}
}

// New builds a per-client-IP limiter allowing limit requests per window.
func New(store BucketStore, limit int, window time.Duration, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		store:  store,
		limit:  limit,
		window: window,
		logger: logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.fallback != nil && m.breaker == nil {
		m.breaker = circuit.New("ratelimit")
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// RateLimit rejects clients over their budget with 429. Limiter errors let
// the request through unless a fallback is configured.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		result, ok := m.check(ctx, models.IPKey(requestcontext.ClientIP(ctx)), w)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result)

		if !result.Allowed {
			m.metrics.IncrementRateLimited()
			writeRateLimitExceeded(w, result)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// check consults the primary store, switching to the fallback while the
// breaker is open. ok is false when no limiter could answer.
func (m *Middleware) check(ctx context.Context, key string, w http.ResponseWriter) (*models.RateLimitResult, bool) {
	result, err := m.store.Allow(ctx, key, m.limit, m.window)
	if err != nil {
		m.metrics.IncrementLimiterFailures()
		m.logger.ErrorContext(ctx, "failed to check IP rate limit",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		if m.fallback == nil {
			return nil, false
		}
		useFallback, change := m.breaker.RecordFailure()
		if change.Opened {
			m.logger.WarnContext(ctx, "rate limiter circuit opened", "breaker", m.breaker.Name())
		}
		if !useFallback {
			return nil, false
		}
		return m.degraded(ctx, key, w)
	}

	if m.fallback == nil {
		return result, true
	}
	usePrimary, change := m.breaker.RecordSuccess()
	if change.Closed {
		m.logger.InfoContext(ctx, "rate limiter circuit closed", "breaker", m.breaker.Name())
	}
	if !usePrimary {
		return m.degraded(ctx, key, w)
	}
	return result, true
}

func (m *Middleware) degraded(ctx context.Context, key string, w http.ResponseWriter) (*models.RateLimitResult, bool) {
	result, err := m.fallback.Allow(ctx, key, m.limit, m.window)
	if err != nil {
		m.logger.ErrorContext(ctx, "fallback rate limiter failed", "error", err)
		return nil, false
	}
	w.Header().Set("X-RateLimit-Status", "degraded")
	return result, true
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.RateLimitExceededResponse{
		Error:      "too_many_requests",
		Message:    "rate limit exceeded",
		RetryAfter: result.RetryAfter,
	})
}
