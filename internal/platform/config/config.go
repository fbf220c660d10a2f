// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration for the campusgate server.
type Config struct {
	Addr            string        `env:"CAMPUSGATE_ADDR" env-default:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`

	// DatabaseURL selects the PostgreSQL stores. Empty means in-memory
	// stores, which is the dev/test default.
	DatabaseURL string `env:"DATABASE_URL"`

	// CourseSeed pre-provisions courses at startup; course lifecycle is
	// otherwise external to this service.
	CourseSeed []string `env:"COURSE_SEED" env-default:"Mathematics,Physics,Chemistry,Biology"`

	JWT    JWTConfig
	Redis  RedisConfig
	Bcrypt BcryptConfig
}

// JWTConfig controls token issuance and validation.
type JWTConfig struct {
	SigningKey string        `env:"JWT_SIGNING_KEY" env-default:"dev-secret-key-change-in-production"`
	Issuer     string        `env:"JWT_ISSUER" env-default:"campusgate"`
	Audience   string        `env:"JWT_AUDIENCE" env-default:"campusgate-students"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL" env-default:"1h"`
}

// RedisConfig configures the optional Redis-backed token revocation list.
// An empty URL means the in-memory revocation list is used.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" env-default:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" env-default:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" env-default:"3s"`
}

// BcryptConfig controls password hashing cost.
type BcryptConfig struct {
	Cost int `env:"BCRYPT_COST" env-default:"10"`
}

// Load reads configuration from the environment so main stays lean.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env config: %w", err)
	}
	return cfg, nil
}
