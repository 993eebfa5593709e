package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// DataBackend selects where users, meetings and files live: memory or mongo.
	DataBackend string `env:"DATA_BACKEND,    default=memory"`
	// StorageBackend selects the per-client key/value storage: memory or redis.
	StorageBackend string `env:"STORAGE_BACKEND, default=memory"`

	SeedAdminPassword string        `env:"SEED_ADMIN_PASSWORD, default=admin123"`
	ClientIdleTTL     time.Duration `env:"CLIENT_IDLE_TTL,     default=30m"`
	DispatchWorkers   int           `env:"DISPATCH_WORKERS,    default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=meetdesk"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.DataBackend {
	case BackendMemory, BackendMongo:
	default:
		return fmt.Errorf("config: DATA_BACKEND must be %q or %q, got %q", BackendMemory, BackendMongo, c.DataBackend)
	}
	switch c.StorageBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("config: STORAGE_BACKEND must be %q or %q, got %q", BackendMemory, BackendRedis, c.StorageBackend)
	}
	if c.JWTSecret == "" && c.IsProduction() {
		return fmt.Errorf("config: JWT_SECRET is required in production")
	}
	if c.DispatchWorkers <= 0 {
		return fmt.Errorf("config: DISPATCH_WORKERS must be positive")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

// LoadFrom reads and validates configuration from lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
