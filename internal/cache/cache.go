package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/searchconfirm/internal/search"
	"github.com/dharmasatrya/searchconfirm/pkg/dateparse"
)

// Verdict is the outcome of validating one request on one day.
type Verdict struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

type Cache interface {
	Get(ctx context.Context, req search.SearchRequest, today dateparse.Date) (Verdict, bool)
	Set(ctx context.Context, req search.SearchRequest, today dateparse.Date, v Verdict) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      5 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, req search.SearchRequest, today dateparse.Date) (Verdict, bool) {
	data, err := c.client.Get(ctx, Key(req, today)).Bytes()
	if err != nil {
		return Verdict{}, false
	}

	var v Verdict
	if err := json.Unmarshal(data, &v); err != nil {
		return Verdict{}, false
	}

	return v, true
}

func (c *RedisCache) Set(ctx context.Context, req search.SearchRequest, today dateparse.Date, v Verdict) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, Key(req, today), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, req search.SearchRequest, today dateparse.Date) (Verdict, bool) {
	return Verdict{}, false
}

func (c *NoOpCache) Set(ctx context.Context, req search.SearchRequest, today dateparse.Date, v Verdict) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// Key identifies a verdict. The date is part of the key because the
// departure rule depends on it.
func Key(req search.SearchRequest, today dateparse.Date) string {
	keyData := struct {
		Request search.SearchRequest
		Today   string
	}{
		Request: req,
		Today:   today.String(),
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "verdict:" + hex.EncodeToString(hash[:])
}
