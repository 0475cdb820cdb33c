package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo       MongoConfig
	Redis       RedisConfig
	Graph       GraphConfig
	Sync        SyncConfig
	Assignments AssignmentConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=inventory_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// GraphConfig holds the Microsoft Graph app registration used for
// directory synchronisation.
type GraphConfig struct {
	TenantID     string `env:"GRAPH_TENANT_ID"`
	ClientID     string `env:"GRAPH_CLIENT_ID"`
	ClientSecret string `env:"GRAPH_CLIENT_SECRET"`
	BaseURL      string `env:"GRAPH_BASE_URL"`
}

type SyncConfig struct {
	// Enabled controls the periodic scheduler; manual runs via the API work
	// regardless.
	Enabled      bool          `env:"SYNC_ENABLED,       default=true"`
	Interval     time.Duration `env:"SYNC_INTERVAL,      default=6h"`
	FetchTimeout time.Duration `env:"SYNC_FETCH_TIMEOUT, default=60s"`
	LockTTL      time.Duration `env:"SYNC_LOCK_TTL,      default=5m"`
}

type AssignmentConfig struct {
	// AllowShared permits several active assignments on one asset at once.
	AllowShared bool `env:"ASSIGNMENTS_ALLOW_SHARED, default=false"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
