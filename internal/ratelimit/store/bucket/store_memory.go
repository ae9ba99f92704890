package bucket

import (
	"context"
	"sync"
	"time"

	"georef/internal/ratelimit/models"
)

// InMemoryBucketStore counts requests per key in fixed windows. It is not
// shared between processes; RedisBucketStore is.
type InMemoryBucketStore struct {
	mu        sync.Mutex
	buckets   map[string]*fixedWindow
	now       func() time.Time
	nextSweep time.Time
}

// sweepInterval bounds how often finished windows are evicted.
const sweepInterval = time.Minute

type fixedWindow struct {
	count   int
	resetAt time.Time
}

// NewInMemoryBucketStore creates a new in-memory bucket store.
func NewInMemoryBucketStore() *InMemoryBucketStore {
	return &InMemoryBucketStore{
		buckets: make(map[string]*fixedWindow),
		now:     time.Now,
	}
}

// Allow counts one request against key and reports whether it fits in limit
// for the current window.
func (s *InMemoryBucketStore) Allow(_ context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !now.Before(s.nextSweep) {
		s.evictExpired(now)
		s.nextSweep = now.Add(sweepInterval)
	}
	fw := s.buckets[key]
	if fw == nil || !now.Before(fw.resetAt) {
		fw = &fixedWindow{resetAt: now.Add(window)}
		s.buckets[key] = fw
	}
	fw.count++
	return models.NewResult(fw.count, limit, fw.resetAt, now), nil
}

// Reset clears the counter for a key.
func (s *InMemoryBucketStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
	return nil
}

// evictExpired drops finished windows. Must be called while holding s.mu.
func (s *InMemoryBucketStore) evictExpired(now time.Time) {
	for key, fw := range s.buckets {
		if !now.Before(fw.resetAt) {
			delete(s.buckets, key)
		}
	}
}
