// Package config loads session configuration from defaults, an optional
// .backtick.yaml in the working directory, and BACKTICK_* environment
// variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = ".backtick.yaml"

// Config holds the session settings shared by the CLI and the interactive
// surface.
type Config struct {
	// IgnoreFile is the gitignore-style rule file consulted for staging.
	IgnoreFile string `koanf:"ignore_file"`
	// Workers sizes the parallel scanner's pool.
	Workers int `koanf:"workers"`
	// CacheSize bounds the formatter's content cache.
	CacheSize int `koanf:"cache_size"`
	// ChunkSize is the formatter's read-buffer size in bytes.
	ChunkSize int `koanf:"chunk_size"`
	// Recursive controls whether directory adds descend by default.
	Recursive bool `koanf:"recursive"`
	// Parallel controls whether directory adds use the worker pool.
	Parallel bool `koanf:"parallel"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		IgnoreFile: ".backtickignore",
		Workers:    4,
		CacheSize:  50,
		ChunkSize:  4096,
		Recursive:  true,
		Parallel:   true,
	}
}

// Load reads configuration from the given YAML file path (DefaultFile when
// empty), then applies environment overrides. A missing file is not an
// error; a malformed one is.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}

	k := koanf.New(".")

	if content, err := os.ReadFile(path); err == nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	// BACKTICK_CACHE_SIZE -> cache_size
	if err := k.Load(env.Provider("BACKTICK_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "BACKTICK_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("applying config: %w", err)
	}
	return cfg, nil
}
