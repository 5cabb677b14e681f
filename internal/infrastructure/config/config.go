package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Google    GoogleConfig
	Discovery DiscoveryConfig
	Feed      FeedConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=geocore"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type GoogleConfig struct {
	APIKey         string `env:"GOOGLE_MAPS_API_KEY"`
	BaseURL        string `env:"GOOGLE_MAPS_BASE_URL, default=https://maps.googleapis.com"`
	TimeoutSeconds int    `env:"GOOGLE_MAPS_TIMEOUT_SECONDS, default=10"`
}

type DiscoveryConfig struct {
	// RadiusMeters is the default search radius around the customer.
	RadiusMeters float64 `env:"DISCOVERY_RADIUS_METERS, default=10000"`
}

type FeedConfig struct {
	// Workers is the number of sharded goroutines draining position fixes.
	Workers int `env:"FEED_WORKERS, default=8"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
