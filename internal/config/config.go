// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is the YAML file read when CONFIG_PATH is unset.
const DefaultPath = "./config.yaml"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Chat      ChatConfig      `yaml:"chat"`
	Upload    UploadConfig    `yaml:"upload"`
	Session   SessionConfig   `yaml:"session"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"30s"`
	CORSOrigin      string        `yaml:"cors_origin"      env:"CORS_ORIGIN"             env-default:"*"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ChatConfig tunes the simulated mentor responder.
type ChatConfig struct {
	Latency       time.Duration `yaml:"latency"        env:"CHAT_LATENCY"        env-default:"1500ms"`
	Timeout       time.Duration `yaml:"timeout"        env:"CHAT_TIMEOUT"        env-default:"10s"`
	RetryAttempts int           `yaml:"retry_attempts" env:"CHAT_RETRY_ATTEMPTS" env-default:"2"`
	RetryBackoff  time.Duration `yaml:"retry_backoff"  env:"CHAT_RETRY_BACKOFF"  env-default:"500ms"`
	Seed          uint64        `yaml:"seed"           env:"CHAT_SEED"           env-default:"0"`
}

// UploadConfig tunes resume selection and the simulated upload responder.
type UploadConfig struct {
	Latency       time.Duration `yaml:"latency"        env:"UPLOAD_LATENCY"        env-default:"2000ms"`
	Timeout       time.Duration `yaml:"timeout"        env:"UPLOAD_TIMEOUT"        env-default:"15s"`
	RetryAttempts int           `yaml:"retry_attempts" env:"UPLOAD_RETRY_ATTEMPTS" env-default:"2"`
	RetryBackoff  time.Duration `yaml:"retry_backoff"  env:"UPLOAD_RETRY_BACKOFF"  env-default:"500ms"`
	MaxBytes      int64         `yaml:"max_bytes"      env:"UPLOAD_MAX_BYTES"      env-default:"5242880"`
	MimeType      string        `yaml:"mime_type"      env:"UPLOAD_MIME_TYPE"      env-default:"application/pdf"`
	// Extension is the allowed file extension; empty derives it from MimeType.
	Extension string `yaml:"extension" env:"UPLOAD_EXTENSION"`
}

// SessionConfig controls view lifetime.
type SessionConfig struct {
	IdleTTL       time.Duration `yaml:"idle_ttl"       env:"SESSION_IDLE_TTL"       env-default:"30m"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"SESSION_SWEEP_INTERVAL" env-default:"1m"`
}

// RateLimitConfig controls per-client request limiting.
type RateLimitConfig struct {
	Enabled   bool `yaml:"enabled"    env:"RATE_LIMIT_ENABLED"    env-default:"true"`
	PerMinute int  `yaml:"per_minute" env:"RATE_LIMIT_PER_MINUTE" env-default:"120"`
	Burst     int  `yaml:"burst"      env:"RATE_LIMIT_BURST"      env-default:"20"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// An empty path falls back to CONFIG_PATH, then DefaultPath. A missing file
// is an error only when the path was given explicitly.
func Load(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration built from env-default tags alone.
func Default() Config {
	var cfg Config
	// Only fails on malformed tag defaults.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic(fmt.Sprintf("config: defaults: %v", err))
	}
	return cfg
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("config error: 'server.shutdown_timeout' must be positive")
	}
	if c.Chat.Latency < 0 || c.Upload.Latency < 0 {
		return fmt.Errorf("config error: responder latency must be non-negative")
	}
	if c.Chat.Timeout <= 0 {
		return fmt.Errorf("config error: 'chat.timeout' must be positive")
	}
	if c.Upload.Timeout <= 0 {
		return fmt.Errorf("config error: 'upload.timeout' must be positive")
	}
	if c.Chat.RetryAttempts < 1 || c.Upload.RetryAttempts < 1 {
		return fmt.Errorf("config error: retry attempts must be at least 1")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("config error: 'upload.max_bytes' must be positive (got %d)", c.Upload.MaxBytes)
	}
	if c.Upload.MimeType == "" {
		return fmt.Errorf("config error: 'upload.mime_type' must be set")
	}
	if c.Session.IdleTTL <= 0 || c.Session.SweepInterval <= 0 {
		return fmt.Errorf("config error: session ttl and sweep interval must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.PerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("config error: 'ratelimit.per_minute' and 'ratelimit.burst' must be positive")
	}
	return nil
}
