package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"domainfolio/internal/portfolio/models"
)

// Redis persists the portfolio blobs in Redis, one string value per key.
// Suits deployments that want persistence across restarts without running a
// relational database.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (s *Redis) LoadDomains(ctx context.Context) ([]models.Domain, error) {
	var out []models.Domain
	if err := s.load(ctx, KeyDomains, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Redis) SaveDomains(ctx context.Context, domains []models.Domain) error {
	return s.save(ctx, KeyDomains, domains)
}

func (s *Redis) LoadSold(ctx context.Context) ([]models.SoldDomain, error) {
	var out []models.SoldDomain
	if err := s.load(ctx, KeySold, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Redis) SaveSold(ctx context.Context, sold []models.SoldDomain) error {
	return s.save(ctx, KeySold, sold)
}

func (s *Redis) load(ctx context.Context, key string, out any) error {
	blob, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(blob, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Redis) save(ctx context.Context, key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, blob, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
