package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store drivers.
const (
	StoreDriverRedis  = "redis"
	StoreDriverMemory = "memory"
)

// Auth providers.
const (
	AuthProviderFirebase = "firebase"
	AuthProviderJWT      = "jwt"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel string   `env:"LOG_LEVEL" envDefault:"info"`
	HTTP     HTTP     `envPrefix:"HTTP_"`
	Store    Store    `envPrefix:"STORE_"`
	Redis    Redis    `envPrefix:"REDIS_"`
	Auth     Auth     `envPrefix:"AUTH_"`
	Firebase Firebase `envPrefix:"FIREBASE_"`
	Audit    Audit    `envPrefix:"AUDIT_"`
	CORS     CORS     `envPrefix:"CORS_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Addr            string        `env:"ADDR" envDefault:":9091"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Store selects the key-value backend.
type Store struct {
	Driver string `env:"DRIVER" envDefault:"redis"`
}

// Redis contains connection parameters for the Redis-compatible store. URL takes
// precedence over the discrete fields, which is how hosted stores such as Upstash are
// configured (rediss://default:<token>@<host>:<port>).
type Redis struct {
	URL      string `env:"URL"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
	PoolSize int    `env:"POOL_SIZE" envDefault:"10"`
}

// Auth selects how bearer tokens are verified.
type Auth struct {
	Provider  string `env:"PROVIDER" envDefault:"firebase"`
	JWTSecret string `env:"JWT_SECRET" envDefault:"devsecret"`
}

// Firebase contains Firebase Admin SDK parameters.
type Firebase struct {
	ServiceAccountPath string `env:"SERVICE_ACCOUNT_PATH"`
	ProjectID          string `env:"PROJECT_ID"`
}

// Audit controls the scheduled consistency audit.
type Audit struct {
	Enabled  bool   `env:"ENABLED" envDefault:"true"`
	Schedule string `env:"SCHEDULE" envDefault:"@every 1h"`
}

// CORS contains cross-origin parameters.
type CORS struct {
	AllowOrigin string `env:"ALLOW_ORIGIN" envDefault:"*"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverRedis, StoreDriverMemory:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q", c.Store.Driver)
	}

	switch c.Auth.Provider {
	case AuthProviderFirebase, AuthProviderJWT:
	default:
		return fmt.Errorf("invalid AUTH_PROVIDER %q", c.Auth.Provider)
	}

	if c.Redis.PoolSize <= 0 {
		return fmt.Errorf("REDIS_POOL_SIZE must be positive, got %d", c.Redis.PoolSize)
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive, got %s", c.HTTP.ShutdownTimeout)
	}

	return nil
}
