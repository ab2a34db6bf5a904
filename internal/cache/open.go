package cache

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/project-tktt/job-viewer/internal/config"
	"github.com/redis/go-redis/v9"
)

// Open builds the cache configured in cfg.
// A backend that cannot be opened degrades to a cache without storage.
func Open(ctx context.Context, cfg *config.Config) *Cache {
	backend, err := openBackend(ctx, cfg)
	if err != nil {
		log.Printf("[Cache] Storage unavailable (%s): %v", cfg.Cache.Backend, err)
		return New(nil, cfg.Cache.TTL)
	}
	if backend == nil {
		log.Println("[Cache] Disabled")
	} else {
		log.Printf("[Cache] Using %s backend", cfg.Cache.Backend)
	}
	return New(backend, cfg.Cache.TTL)
}

func openBackend(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch strings.ToLower(cfg.Cache.Backend) {
	case "", "file":
		return NewFileBackend(cfg.Cache.Dir, cfg.Cache.Key)
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		return NewRedisBackend(rdb, "viewer", cfg.Cache.Key), nil
	case "postgres":
		return NewPostgresBackend(cfg.Postgres.ConnectionString, cfg.Postgres.TableName, cfg.Cache.Key)
	case "sqlite":
		return NewSQLiteBackend(cfg.SQLite.Path, cfg.SQLite.TableName, cfg.Cache.Key)
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
}
