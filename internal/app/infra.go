package app

import (
	"github.com/police-1111/cmf/internal/config"
	"github.com/police-1111/cmf/internal/logger"
	"github.com/police-1111/cmf/internal/redis"
	"github.com/police-1111/cmf/internal/session"
)

// setupSessionStore connects Redis when configured and falls back to
// the in-memory store otherwise, so local development needs no infra.
// The cleanup func closes whatever was opened.
func setupSessionStore(cfg config.Config) (session.Store, func() error, error) {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, using in-memory sessions", nil)
		return session.NewMemoryStore(), nil, nil
	}

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("redis ready", map[string]any{
		"addr": cfg.RedisAddr,
	})

	return session.NewRedisStore(redisClient.Client), redisClient.Close, nil
}
