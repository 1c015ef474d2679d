// Package config defines service configuration and its loading.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is json or text.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory offer queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of offer workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets how many offer request IDs are remembered.
	DedupeSize int `koanf:"dedupe_size"`

	// PoolConcurrency bounds goroutines per pool evaluation.
	PoolConcurrency int `koanf:"pool_concurrency"`

	// MaxBoardLimit caps GET /v1/board?limit.
	MaxBoardLimit int `koanf:"max_board_limit"`

	// MaxPoolSize caps players per POST /v1/evaluate/pool.
	MaxPoolSize int `koanf:"max_pool_size"`

	// Season is the league year valuations run against.
	Season int `koanf:"season"`

	// SalaryCap overrides the league salary cap when positive. Zero keeps the
	// league tables value.
	SalaryCap float64 `koanf:"salary_cap"`

	// LeagueTablesFile is an optional YAML file of market rate overrides.
	LeagueTablesFile string `koanf:"league_tables_file"`

	// MaxSecurityAdjustment caps the job-security premium.
	MaxSecurityAdjustment float64 `koanf:"max_security_adjustment"`

	// RateLimitRPS and RateLimitBurst configure per-client limiting of /v1.
	// A non-positive rate disables it.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// TrustProxy takes client addresses from X-Forwarded-For and X-Real-IP.
	// Leave it off unless a proxy in front overwrites those headers.
	TrustProxy bool `koanf:"trust_proxy"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// CORSOrigins lists allowed origins.
	CORSOrigins []string `koanf:"cors_origins"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "json",
		Addr:                  ":9080",
		QueueSize:             10_000,
		WorkerCount:           runtime.NumCPU() * 2,
		DedupeSize:            50_000,
		PoolConcurrency:       runtime.NumCPU(),
		MaxBoardLimit:         100,
		MaxPoolSize:           500,
		Season:                time.Now().Year(),
		MaxSecurityAdjustment: 0.20,
		RateLimitRPS:          50,
		RateLimitBurst:        100,
		MaxBodyBytes:          1 << 20,
		CORSOrigins:           []string{"*"},
		ShutdownTimeout:       30 * time.Second,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogFormat != "json" && c.LogFormat != "text":
		return fmt.Errorf("%w: log_format must be json or text, got %q", ErrInvalidConfig, c.LogFormat)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.DedupeSize < 0:
		return fmt.Errorf("%w: dedupe_size must not be negative", ErrInvalidConfig)
	case c.PoolConcurrency < 1:
		return fmt.Errorf("%w: pool_concurrency must be positive", ErrInvalidConfig)
	case c.MaxBoardLimit < 1 || c.MaxPoolSize < 1:
		return fmt.Errorf("%w: max_board_limit and max_pool_size must be positive", ErrInvalidConfig)
	case c.Season < 1920:
		return fmt.Errorf("%w: season %d is out of range", ErrInvalidConfig, c.Season)
	case c.SalaryCap < 0:
		return fmt.Errorf("%w: salary_cap must not be negative", ErrInvalidConfig)
	case c.MaxBodyBytes < 1:
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	case c.MaxSecurityAdjustment <= 0 || c.MaxSecurityAdjustment > 1:
		return fmt.Errorf("%w: max_security_adjustment must be in (0,1]", ErrInvalidConfig)
	}
	return nil
}
