// Package rediscache кэш активного раунда и ленты последних результатов в redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	ActiveRoundKey   = "luckyten:round:active"
	LatestResultsKey = "luckyten:results:latest"

	latestResultsTTL = 30 * time.Second
)

// Client подмножество команд redis, которое использует кэш. Реализуется *redis.Client.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type RoundCache struct {
	client Client
}

func New(client Client) *RoundCache {
	return &RoundCache{client: client}
}

// NewClient создает клиента redis и проверяет соединение.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// GetActive возвращает закэшированный активный раунд. Промах кэша - (nil, nil).
func (r *RoundCache) GetActive(ctx context.Context) (*domain.Round, error) {
	var round domain.Round
	found, err := r.get(ctx, ActiveRoundKey, &round)
	if err != nil || !found {
		return nil, err
	}
	return &round, nil
}

// SetActive кэширует раунд до окончания приема ставок.
func (r *RoundCache) SetActive(ctx context.Context, round *domain.Round) error {
	ttl := time.Until(round.EndTime)
	if ttl <= 0 {
		return nil
	}
	return r.set(ctx, ActiveRoundKey, round, ttl)
}

// GetLatestResults промах кэша - (nil, nil).
func (r *RoundCache) GetLatestResults(ctx context.Context) ([]domain.Result, error) {
	var results []domain.Result
	found, err := r.get(ctx, LatestResultsKey, &results)
	if err != nil || !found {
		return nil, err
	}
	if results == nil {
		results = []domain.Result{}
	}
	return results, nil
}

func (r *RoundCache) SetLatestResults(ctx context.Context, results []domain.Result) error {
	return r.set(ctx, LatestResultsKey, results, latestResultsTTL)
}

func (r *RoundCache) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, ActiveRoundKey, LatestResultsKey).Err(); err != nil {
		return fmt.Errorf("[rediscache] invalidate: %w", err)
	}
	return nil
}

func (r *RoundCache) get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("[rediscache] get %s: %w", key, err)
	}
	if err = json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("[rediscache] decode %s: %w", key, err)
	}
	return true, nil
}

func (r *RoundCache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("[rediscache] encode %s: %w", key, err)
	}
	if err = r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("[rediscache] set %s: %w", key, err)
	}
	return nil
}
