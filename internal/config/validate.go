package config

import (
	"fmt"
	"net/url"
	"regexp"
)

// channelPrefixRe matches prefixes that form a plain channel identifier
// when joined with a table name.
var channelPrefixRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.Leeway < 0 {
		return fmt.Errorf("auth.leeway must be >= 0 (got %v)", c.Auth.Leeway)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.KV.validate(); err != nil {
		return fmt.Errorf("kv: %w", err)
	}

	if c.Calendar.MaxRange <= 0 {
		return fmt.Errorf("calendar.max_range must be > 0 (got %v)", c.Calendar.MaxRange)
	}
	if c.Calendar.Limit <= 0 {
		return fmt.Errorf("calendar.limit must be > 0 (got %d)", c.Calendar.Limit)
	}
	if c.Visited.Limit <= 0 {
		return fmt.Errorf("visited.limit must be > 0 (got %d)", c.Visited.Limit)
	}

	if c.Session.IdleTTL < 0 {
		return fmt.Errorf("session.idle_ttl must be >= 0 (got %v)", c.Session.IdleTTL)
	}
	if c.Session.FanOut <= 0 {
		return fmt.Errorf("session.fan_out must be > 0 (got %d)", c.Session.FanOut)
	}
	if c.Sync.SnapshotTimeout < 0 || c.Sync.Concurrency < 0 {
		return fmt.Errorf("sync.snapshot_timeout and sync.concurrency must be >= 0")
	}
	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("rate_limit.per_minute must be >= 0 (got %d)", c.RateLimit.PerMinute)
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval)
	}

	if !channelPrefixRe.MatchString(c.Realtime.ChannelPrefix) {
		return fmt.Errorf("realtime.channel_prefix must match %s (got %q)", channelPrefixRe, c.Realtime.ChannelPrefix)
	}
	if c.Realtime.ReconnectDelay <= 0 {
		return fmt.Errorf("realtime.reconnect_delay must be > 0 (got %v)", c.Realtime.ReconnectDelay)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	if s.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	u, err := url.Parse(s.PublicBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("public_base_url must be an absolute URL (got %q)", s.PublicBaseURL)
	}
	if s.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be > 0 (got %d)", s.MaxUploadBytes)
	}
	return nil
}

func (k *KVConfig) validate() error {
	switch k.Driver {
	case "memory":
	case "redis":
		if k.RedisAddr == "" {
			return fmt.Errorf("redis_addr is required for the redis driver")
		}
	case "sqlite":
		if k.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown driver %q (want memory, redis or sqlite)", k.Driver)
	}
	return nil
}
