package rediscache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

// fakeClient хранит значения в памяти и отвечает так же, как redis.
type fakeClient struct {
	mu     sync.Mutex
	values map[string][]byte
	ttls   map[string]time.Duration
	err    error
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeClient) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.values[key] = value.([]byte) //nolint:errcheck
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type RoundCacheTestSuite struct {
	suite.Suite
	client *fakeClient
	cache  *RoundCache
}

func TestRoundCacheSuite(t *testing.T) {
	suite.Run(t, new(RoundCacheTestSuite))
}

func (s *RoundCacheTestSuite) SetupTest() {
	s.client = newFakeClient()
	s.cache = New(s.client)
}

func (s *RoundCacheTestSuite) TestActiveRound() {
	ctx := s.T().Context()

	miss, err := s.cache.GetActive(ctx)
	s.Require().NoError(err)
	s.Nil(miss)

	round := &domain.Round{
		ID:        3,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		EndTime:   time.Now().Add(time.Minute).UTC().Truncate(time.Second),
		Status:    domain.RoundStatusActive,
	}
	s.Require().NoError(s.cache.SetActive(ctx, round))
	s.Positive(s.client.ttls[ActiveRoundKey])

	got, err := s.cache.GetActive(ctx)
	s.Require().NoError(err)
	s.Equal(round.ID, got.ID)
	s.True(round.EndTime.Equal(got.EndTime))
	s.Equal(domain.RoundStatusActive, got.Status)
}

func (s *RoundCacheTestSuite) TestExpiredRoundNotCached() {
	round := &domain.Round{ID: 1, EndTime: time.Now().Add(-time.Second)}
	s.Require().NoError(s.cache.SetActive(s.T().Context(), round))
	s.NotContains(s.client.values, ActiveRoundKey)
}

func (s *RoundCacheTestSuite) TestLatestResultsAndInvalidate() {
	ctx := s.T().Context()
	results := []domain.Result{{ID: 2, RoundID: 2, WinningNumber: 9}}

	s.Require().NoError(s.cache.SetLatestResults(ctx, results))
	got, err := s.cache.GetLatestResults(ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(9, got[0].WinningNumber)

	s.Require().NoError(s.cache.Invalidate(ctx))
	got, err = s.cache.GetLatestResults(ctx)
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *RoundCacheTestSuite) TestClientError() {
	s.client.err = errors.New("connection refused")

	_, err := s.cache.GetActive(s.T().Context())
	s.Require().Error(err)
	s.Require().Error(s.cache.Invalidate(s.T().Context()))
}
