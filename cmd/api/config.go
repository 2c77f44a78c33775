package main

import (
	"time"

	"github.com/dmitrymomot/progenglish/pkg/config"
	"github.com/dmitrymomot/progenglish/pkg/httpserver"
	"github.com/dmitrymomot/progenglish/pkg/jwt"
	"github.com/dmitrymomot/progenglish/pkg/pg"
	"github.com/dmitrymomot/progenglish/pkg/ratelimiter"
	"github.com/dmitrymomot/progenglish/pkg/redis"
	"github.com/dmitrymomot/progenglish/svc/user"
)

// AppConfig holds application-wide settings.
type AppConfig struct {
	Name    string `env:"APP_NAME" envDefault:"Programming English API"`
	Version string `env:"APP_VERSION" envDefault:"2.0.0"`
	Env     string `env:"APP_ENV" envDefault:"development"`
	Debug   bool   `env:"APP_DEBUG" envDefault:"false"`
}

// AuthConfig extends the signing settings with the token lifetime.
type AuthConfig struct {
	jwt.Config
	AccessTTLMinutes int `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"30"`
}

func (c AuthConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLMinutes) * time.Minute
}

// CacheConfig enables the shared Redis store for the login throttle.
type CacheConfig struct {
	redis.Config
	Enabled bool `env:"REDIS_ENABLED" envDefault:"false"`
}

// Config is the complete service configuration.
type Config struct {
	App       AppConfig
	Auth      AuthConfig
	Database  pg.Config
	Redis     CacheConfig
	HTTP      httpserver.Config
	Superuser user.SuperuserConfig
	Throttle  ratelimiter.Config
}

type fileConfig struct {
	Path string `env:"CONFIG_FILE"`
}

// loadConfig reads CONFIG_FILE first so the YAML file it names can supply
// defaults that environment variables override.
func loadConfig() (Config, error) {
	var file fileConfig
	if err := config.Load(&file); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := config.Load(&cfg, config.WithYAMLFile(file.Path)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
