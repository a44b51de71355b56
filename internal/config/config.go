package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	PageSpeed PageSpeedConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Metrics   MetricsConfig
	Auth      AuthConfig
}

type ServerConfig struct {
	Port              string
	Mode              string
	RequestsPerMinute int
	RateBurst         int
}

type FetchConfig struct {
	Timeout time.Duration
}

type PageSpeedConfig struct {
	APIKey  string
	Timeout time.Duration
}

type DatabaseConfig struct {
	URL            string
	MaxConnections int
	MaxIdleConns   int
}

type RedisConfig struct {
	URL      string
	CacheTTL time.Duration
}

type MetricsConfig struct {
	RemoteWriteURL string
	FlushInterval  time.Duration
	BatchSize      int
	AuthToken      string
}

type AuthConfig struct {
	JWTSecret string
}

// Load reads config.yaml plus SITEGRADE_-prefixed environment
// variables. Credentials are read once here, at process start.
func Load() (*Config, error) {
	// Optional .env for local development.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.SetEnvPrefix("SITEGRADE")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.requestsperminute", 30)
	viper.SetDefault("server.rateburst", 10)
	viper.SetDefault("fetch.timeout", "12s")
	viper.SetDefault("pagespeed.timeout", "15s")
	viper.SetDefault("database.maxconnections", 25)
	viper.SetDefault("database.maxidleconns", 5)
	viper.SetDefault("redis.cachettl", "10m")
	viper.SetDefault("metrics.flushinterval", "30s")
	viper.SetDefault("metrics.batchsize", 500)

	var cfg Config
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Override with environment variables
	if key := os.Getenv("PAGESPEED_API_KEY"); key != "" {
		cfg.PageSpeed.APIKey = key
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		cfg.Redis.URL = url
	}
	if url := os.Getenv("REMOTE_WRITE_URL"); url != "" {
		cfg.Metrics.RemoteWriteURL = url
	}
	if token := os.Getenv("REMOTE_WRITE_AUTH_TOKEN"); token != "" {
		cfg.Metrics.AuthToken = token
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}

	return &cfg, nil
}
