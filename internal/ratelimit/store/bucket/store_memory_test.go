package bucket

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"georef/internal/ratelimit/models"
)

const (
	testLimit  = 10
	testWindow = time.Minute
)

type InMemoryBucketStoreSuite struct {
	suite.Suite
	store *InMemoryBucketStore
	clock time.Time
	ctx   context.Context
}

func TestInMemoryBucketStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryBucketStoreSuite))
}

func (s *InMemoryBucketStoreSuite) SetupTest() {
	s.store = NewInMemoryBucketStore()
	s.clock = time.Date(2025, 12, 3, 10, 0, 0, 0, time.UTC)
	s.store.now = func() time.Time { return s.clock }
	s.ctx = context.Background()
}

func (s *InMemoryBucketStoreSuite) TestAllow() {
	s.Run("first request allowed", func() {
		result, err := s.store.Allow(s.ctx, "test:first", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit, result.Limit)
		s.Equal(testLimit-1, result.Remaining)
		s.Equal(s.clock.Add(testWindow), result.ResetAt)
	})

	s.Run("requests up to limit allowed", func() {
		var result *models.RateLimitResult
		var err error
		for range testLimit {
			result, err = s.store.Allow(s.ctx, "test:limit", testLimit, testWindow)
		}
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(0, result.Remaining)
	})

	s.Run("request over limit denied", func() {
		for range testLimit {
			_, err := s.store.Allow(s.ctx, "test:over", testLimit, testWindow)
			s.Require().NoError(err)
		}
		result, err := s.store.Allow(s.ctx, "test:over", testLimit, testWindow)
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Equal(60, result.RetryAfter)
	})

	s.Run("keys are independent", func() {
		for range testLimit + 1 {
			_, _ = s.store.Allow(s.ctx, "test:noisy", testLimit, testWindow)
		}
		result, err := s.store.Allow(s.ctx, "test:quiet", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
	})
}

func (s *InMemoryBucketStoreSuite) TestWindowExpiry() {
	for range testLimit + 1 {
		_, _ = s.store.Allow(s.ctx, "test:expiry", testLimit, testWindow)
	}

	s.clock = s.clock.Add(testWindow)
	result, err := s.store.Allow(s.ctx, "test:expiry", testLimit, testWindow)

	s.Require().NoError(err)
	s.True(result.Allowed)
	s.Equal(testLimit-1, result.Remaining)
}

func (s *InMemoryBucketStoreSuite) TestEvictionRunsOncePerSweepInterval() {
	for i := range 100 {
		_, err := s.store.Allow(s.ctx, fmt.Sprintf("test:ip:%d", i), testLimit, time.Second)
		s.Require().NoError(err)
	}
	firstSweep := s.store.nextSweep

	s.clock = s.clock.Add(2 * time.Second)
	_, err := s.store.Allow(s.ctx, "test:ip:late", testLimit, time.Second)
	s.Require().NoError(err)
	s.Len(s.store.buckets, 101, "expired windows wait for the next sweep")
	s.Equal(firstSweep, s.store.nextSweep)

	s.clock = s.clock.Add(sweepInterval)
	_, err = s.store.Allow(s.ctx, "test:ip:0", testLimit, time.Second)
	s.Require().NoError(err)
	s.Len(s.store.buckets, 1)
	s.Equal(s.clock.Add(sweepInterval), s.store.nextSweep)
}

func (s *InMemoryBucketStoreSuite) TestReset() {
	for range testLimit + 1 {
		_, _ = s.store.Allow(s.ctx, "test:reset", testLimit, testWindow)
	}

	s.Require().NoError(s.store.Reset(s.ctx, "test:reset"))
	result, err := s.store.Allow(s.ctx, "test:reset", testLimit, testWindow)

	s.Require().NoError(err)
	s.True(result.Allowed)
}

func (s *InMemoryBucketStoreSuite) TestConcurrentAllowCountsEveryRequest() {
	const goroutines = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.store.Allow(s.ctx, "test:concurrent", testLimit, testWindow)
			if err == nil && result.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(testLimit, allowed)
}
