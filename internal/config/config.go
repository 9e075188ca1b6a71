// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Session SessionConfig `yaml:"session"`
	Refresh RefreshConfig `yaml:"refresh"`
	Logging LoggingConfig `yaml:"logging"`
	Tracing TracingConfig `yaml:"tracing"`
}

// BackendConfig defines the auction backend connection.
type BackendConfig struct {
	URL       string          `yaml:"url"`
	Timeout   time.Duration   `yaml:"timeout"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines client-side request throttling. PerSecond 0
// disables it.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// SessionConfig selects where the bearer token and preferences persist.
type SessionConfig struct {
	Backend string      `yaml:"backend"` // file, redis, memory
	Path    string      `yaml:"path"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig defines the redis session backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// RefreshConfig defines the watch loop.
type RefreshConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// TracingConfig defines OTLP export of client request spans. Off by default.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"` // host:port of an OTLP gRPC collector
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Default returns a config with every default applied and the backend
// URL taken from SUBASTAS_BACKEND_URL. It is not validated.
func Default() *Config {
	cfg := &Config{
		Backend: BackendConfig{URL: os.Getenv("SUBASTAS_BACKEND_URL")},
	}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Read is Load without validation. Callers that layer overrides on top of
// the file call Validate themselves.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyBackendDefaults(&cfg.Backend)
	applySessionDefaults(&cfg.Session)
	applyRefreshDefaults(&cfg.Refresh)
	applyLoggingDefaults(&cfg.Logging)
	applyTracingDefaults(&cfg.Tracing)
}

func applyBackendDefaults(b *BackendConfig) {
	b.URL = strings.TrimSpace(b.URL)
	if b.Timeout == 0 {
		b.Timeout = 10 * time.Second
	}
	if b.RateLimit.Burst == 0 {
		b.RateLimit.Burst = 1
	}
}

func applySessionDefaults(s *SessionConfig) {
	if s.Backend == "" {
		s.Backend = "file"
	}
	if s.Path == "" {
		s.Path = "~/.subastas/session.yaml"
	}
	s.Path = expandHome(s.Path)
	if s.Redis.Addr == "" {
		s.Redis.Addr = "localhost:6379"
	}
	if s.Redis.Prefix == "" {
		s.Redis.Prefix = "subastas:"
	}
}

func applyRefreshDefaults(r *RefreshConfig) {
	if r.Interval == 0 {
		r.Interval = time.Minute
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1
	}
}

// expandHome replaces a leading "~" with the user's home directory. The
// path is returned unchanged when the home directory is unknown.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// Validate reports every invalid setting at once.
func (cfg *Config) Validate() error {
	var errs []error

	if cfg.Backend.URL == "" {
		errs = append(errs, fmt.Errorf("backend.url is required"))
	} else if u, err := url.Parse(cfg.Backend.URL); err != nil ||
		(u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("backend.url must be an absolute http(s) URL (got %q)", cfg.Backend.URL))
	}
	if cfg.Backend.Timeout < 0 {
		errs = append(errs, fmt.Errorf("backend.timeout must not be negative"))
	}
	if cfg.Backend.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("backend.rate_limit.per_second must not be negative"))
	}
	if cfg.Backend.RateLimit.Burst < 0 {
		errs = append(errs, fmt.Errorf("backend.rate_limit.burst must not be negative"))
	}

	switch cfg.Session.Backend {
	case "memory":
	case "file":
		if cfg.Session.Path == "" {
			errs = append(errs, fmt.Errorf("session.path is required when backend is file"))
		}
	case "redis":
		if cfg.Session.Redis.Addr == "" {
			errs = append(errs, fmt.Errorf("session.redis.addr is required when backend is redis"))
		}
	default:
		errs = append(
			errs,
			fmt.Errorf(
				"session.backend must be one of: file, redis, memory (got %q)",
				cfg.Session.Backend,
			),
		)
	}

	if cfg.Refresh.Interval < time.Second {
		errs = append(errs, fmt.Errorf("refresh.interval must be at least 1s (got %s)", cfg.Refresh.Interval))
	}

	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be between 0 and 1 (got %g)", cfg.Tracing.SampleRatio))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format))
	}

	return errors.Join(errs...)
}
