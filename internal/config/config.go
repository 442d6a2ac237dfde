package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Storage   StorageConfig   `yaml:"storage"`
	KV        KVConfig        `yaml:"kv"`
	Session   SessionConfig   `yaml:"session"`
	Sync      SyncConfig      `yaml:"sync"`
	Calendar  CalendarConfig  `yaml:"calendar"`
	Visited   VisitedConfig   `yaml:"visited"`
	Realtime  RealtimeConfig  `yaml:"realtime"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds the gateway's PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ApplicationName string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"himalink"`
}

// AuthConfig holds the settings for validating access tokens issued by
// the backend service.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	Issuer    string        `yaml:"issuer"     env:"AUTH_ISSUER"`
	Audience  string        `yaml:"audience"   env:"AUTH_AUDIENCE"   env-default:"authenticated"`
	Leeway    time.Duration `yaml:"leeway"     env:"AUTH_LEEWAY"     env-default:"30s"`
}

// StorageConfig holds the S3-compatible blob storage settings.
type StorageConfig struct {
	Endpoint       string `yaml:"endpoint"         env:"STORAGE_ENDPOINT"`
	Region         string `yaml:"region"           env:"STORAGE_REGION"           env-default:"us-east-1"`
	AccessKey      string `yaml:"access_key"       env:"STORAGE_ACCESS_KEY"`
	SecretKey      string `yaml:"secret_key"       env:"STORAGE_SECRET_KEY"`
	Bucket         string `yaml:"bucket"           env:"STORAGE_BUCKET"           env-default:"public-files"`
	PublicBaseURL  string `yaml:"public_base_url"  env:"STORAGE_PUBLIC_BASE_URL"  env-required:"true"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"STORAGE_MAX_UPLOAD_BYTES" env-default:"10485760"`
}

// KVConfig selects the backend of the per-user key-value store.
type KVConfig struct {
	Driver     string `yaml:"driver"      env:"KV_DRIVER"      env-default:"memory"`
	RedisAddr  string `yaml:"redis_addr"  env:"KV_REDIS_ADDR"  env-default:"localhost:6379"`
	RedisDB    int    `yaml:"redis_db"    env:"KV_REDIS_DB"    env-default:"0"`
	SQLitePath string `yaml:"sqlite_path" env:"KV_SQLITE_PATH" env-default:"./himalink.db"`
	KeyPrefix  string `yaml:"key_prefix"  env:"KV_KEY_PREFIX"  env-default:"himalink:"`
}

// SessionConfig controls the lifetime of per-user sessions.
type SessionConfig struct {
	IdleTTL       time.Duration `yaml:"idle_ttl"       env:"SESSION_IDLE_TTL"       env-default:"30m"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"SESSION_SWEEP_INTERVAL" env-default:"1m"`
	FanOut        int           `yaml:"fan_out"        env:"SESSION_FAN_OUT"        env-default:"8"`
}

// SyncConfig tunes the entry social state synchronizer.
type SyncConfig struct {
	SnapshotTimeout time.Duration `yaml:"snapshot_timeout" env:"SYNC_SNAPSHOT_TIMEOUT" env-default:"15s"`
	Concurrency     int           `yaml:"concurrency"      env:"SYNC_CONCURRENCY"      env-default:"16"`
	BatchWait       time.Duration `yaml:"batch_wait"       env:"SYNC_BATCH_WAIT"       env-default:"2ms"`
}

// CalendarConfig bounds timeline queries.
type CalendarConfig struct {
	MaxRange time.Duration `yaml:"max_range" env:"CALENDAR_MAX_RANGE" env-default:"2232h"`
	Limit    int           `yaml:"limit"     env:"CALENDAR_LIMIT"     env-default:"500"`
}

// VisitedConfig holds the visited-users list settings.
type VisitedConfig struct {
	Limit int `yaml:"limit" env:"VISITED_LIMIT" env-default:"20"`
}

// RealtimeConfig holds the insert notification listener settings.
// ChannelPrefix must match the prefix the insert trigger passes to
// pg_notify, see migrations/00003_realtime.sql.
type RealtimeConfig struct {
	ChannelPrefix  string        `yaml:"channel_prefix"  env:"REALTIME_CHANNEL_PREFIX"  env-default:"realtime_"`
	ReconnectDelay time.Duration `yaml:"reconnect_delay" env:"REALTIME_RECONNECT_DELAY" env-default:"1s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds the per-caller request budget. PerMinute zero
// disables limiting.
type RateLimitConfig struct {
	PerMinute       int           `yaml:"per_minute"       env:"RATE_LIMIT_PER_MINUTE"       env-default:"120"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"1m"`
}

// Addr returns host:port for the HTTP listener.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Origins splits AllowedOrigins into trimmed, non-empty entries.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
