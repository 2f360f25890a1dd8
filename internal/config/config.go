// Package config provides configuration loading for lvfold.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/lvfold/pairing"
)

// Defaults.
const (
	DefaultMaxStructures   = 10000
	DefaultMaxLength       = 2000
	DefaultTimeout         = 30 * time.Second
	DefaultWorkers         = 4
	DefaultCacheSize       = 256
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
	DefaultServerAddr      = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete lvfold configuration.
type Config struct {
	Fold   FoldConfig   `koanf:"fold" yaml:"fold"`
	Cache  CacheConfig  `koanf:"cache" yaml:"cache"`
	Log    LogConfig    `koanf:"log" yaml:"log"`
	Server ServerConfig `koanf:"server" yaml:"server"`
}

// FoldConfig controls the folding engine.
type FoldConfig struct {
	Model         string        `koanf:"model" yaml:"model"`
	MaxStructures int           `koanf:"max_structures" yaml:"max_structures"` // 0 disables the cap
	Timeout       time.Duration `koanf:"timeout" yaml:"timeout"`               // 0 disables the deadline
	Workers       int           `koanf:"workers" yaml:"workers"`
	MaxLength     int           `koanf:"max_length" yaml:"max_length"`         // 0 disables the limit
}

// CacheConfig sizes the result cache. Size 0 disables caching.
type CacheConfig struct {
	Size int `koanf:"size" yaml:"size"`
}

// LogConfig selects level and encoder.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"` // json or console
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `koanf:"addr" yaml:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Default returns a configuration usable without any file or environment.
func Default() *Config {
	return &Config{
		Fold: FoldConfig{
			Model:         pairing.Default,
			MaxStructures: DefaultMaxStructures,
			Timeout:       DefaultTimeout,
			Workers:       DefaultWorkers,
			MaxLength:     DefaultMaxLength,
		},
		Cache: CacheConfig{Size: DefaultCacheSize},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Server: ServerConfig{
			Addr:            DefaultServerAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
	}
}

// Validate checks every field and reports the first problem found.
func (c *Config) Validate() error {
	if _, err := pairing.ByName(c.Fold.Model); err != nil {
		return fmt.Errorf("%w: fold.model: %v", ErrInvalidConfig, err)
	}
	if c.Fold.MaxStructures < 0 {
		return fmt.Errorf("%w: fold.max_structures must be >= 0, got %d", ErrInvalidConfig, c.Fold.MaxStructures)
	}
	if c.Fold.Timeout < 0 {
		return fmt.Errorf("%w: fold.timeout must be >= 0, got %s", ErrInvalidConfig, c.Fold.Timeout)
	}
	if c.Fold.MaxLength < 0 {
		return fmt.Errorf("%w: fold.max_length must be >= 0, got %d", ErrInvalidConfig, c.Fold.MaxLength)
	}
	if c.Fold.Workers < 1 {
		return fmt.Errorf("%w: fold.workers must be >= 1, got %d", ErrInvalidConfig, c.Fold.Workers)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("%w: cache.size must be >= 0, got %d", ErrInvalidConfig, c.Cache.Size)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.format must be json or console, got %q", ErrInvalidConfig, c.Log.Format)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalidConfig)
	}

	return nil
}
