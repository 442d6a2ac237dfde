// Package kv is a small key-value persistence port for per-user client
// state. Memory, Redis and SQLite backends are available.
package kv

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/himalink/internal/domain"
)

// Store reads and writes opaque values by key. Get returns
// domain.ErrNotFound for a missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// Options configures Open.
type Options struct {
	Driver     string
	RedisAddr  string
	RedisDB    int
	SQLitePath string
	KeyPrefix  string
}

// Open returns the store selected by opts.Driver.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (Store, error) {
	switch opts.Driver {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverRedis:
		client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr, DB: opts.RedisDB})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("kv: ping redis %s: %w", opts.RedisAddr, err)
		}
		logger.Info("kv store opened", slog.String("driver", opts.Driver), slog.String("addr", opts.RedisAddr))
		return NewRedis(client, opts.KeyPrefix), nil
	case DriverSQLite:
		s, err := OpenSQLite(ctx, opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("kv store opened", slog.String("driver", opts.Driver), slog.String("path", opts.SQLitePath))
		return s, nil
	default:
		return nil, domain.NewValidationError("kv.driver", "unknown driver "+opts.Driver)
	}
}
