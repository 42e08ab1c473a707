package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/strogmv/appdoc/internal/domain"
	"github.com/strogmv/appdoc/internal/pkg/logger"
	"github.com/strogmv/appdoc/internal/port"
)

const applicationPrefix = "application:"

type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// ApplicationCache is a read-through cache in front of another repository.
// Misses are not cached, and cache errors fall back to the base repository.
type ApplicationCache struct {
	base   port.ApplicationRepository
	client cmdable
	ttl    time.Duration
	log    *slog.Logger
}

func NewApplicationCache(base port.ApplicationRepository, client *redis.Client, ttl time.Duration, log *slog.Logger) *ApplicationCache {
	return &ApplicationCache{base: base, client: client, ttl: ttl, log: log}
}

func (c *ApplicationCache) FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	key := applicationPrefix + id.String()

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var app domain.Application
		jsonErr := json.Unmarshal(raw, &app)
		if jsonErr == nil {
			return &app, nil
		}
		logger.From(ctx, c.log).Warn("discarding undecodable cached application", slog.String("key", key), slog.String("error", jsonErr.Error()))
	case !errors.Is(err, redis.Nil):
		logger.From(ctx, c.log).Warn("application cache unavailable", slog.String("error", err.Error()))
	}

	app, err := c.base.FindByID(ctx, id)
	if err != nil || app == nil {
		return app, err
	}
	b, err := json.Marshal(app)
	if err != nil {
		return nil, fmt.Errorf("encode application: %w", err)
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		logger.From(ctx, c.log).Warn("failed to cache application", slog.String("error", err.Error()))
	}
	return app, nil
}
