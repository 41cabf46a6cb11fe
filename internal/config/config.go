// Package config loads the assetgraph TOML configuration file.
//
// The file is optional. A missing file yields [Default]; a present file
// overrides only the keys it sets:
//
//	[visualize]
//	dimensions = 3
//	layout = "circular"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "cache.internal:6379"
//	ttl = "6h"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperr "github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/layout"
	"github.com/matzehuels/assetgraph/pkg/trace"
)

// AppName names the configuration and cache directories.
const AppName = "assetgraph"

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

var backends = []string{BackendNone, BackendFile, BackendRedis}

// Config is the decoded configuration file.
type Config struct {
	Visualize Visualize `toml:"visualize"`
	Cache     Cache     `toml:"cache"`
	Server    Server    `toml:"server"`
}

// Visualize holds figure defaults.
type Visualize struct {
	Dimensions int    `toml:"dimensions"`
	Layout     string `toml:"layout"`
	Iterations int    `toml:"iterations"`
	Title      string `toml:"title"`
}

// Cache selects and configures the figure cache.
type Cache struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"` // empty: $XDG_CACHE_HOME/assetgraph or ~/.cache/assetgraph
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
	Prefix    string `toml:"prefix"` // key namespace on a shared backend
	TTL       string `toml:"ttl"`
}

// Server configures the HTTP host.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Visualize: Visualize{
			Dimensions: 2,
			Layout:     layout.DefaultLayout,
			Iterations: layout.DefaultIterations,
			Title:      trace.DefaultTitle,
		},
		Cache: Cache{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       "24h",
		},
		Server: Server{Addr: ":8080"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/assetgraph/config.toml, falling back
// to ~/.config/assetgraph/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads the configuration at path. An empty path selects DefaultPath.
// A missing file is not an error. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return Default(), nil
		}
		return Config{}, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, apperr.New(apperr.ErrCodeInvalidFormat, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if d := c.Visualize.Dimensions; d != 2 && d != 3 {
		return apperr.Invalid("visualize.dimensions", "2 or 3", d)
	}
	if _, err := layout.Lookup(c.Visualize.Layout, c.Visualize.Dimensions); err != nil {
		return err
	}
	if n := c.Visualize.Iterations; n < 1 || n > layout.MaxIterations {
		return apperr.Invalid("visualize.iterations", fmt.Sprintf("1..%d", layout.MaxIterations), n)
	}
	if !slices.Contains(backends, c.Cache.Backend) {
		return apperr.Invalid("cache.backend", strings.Join(backends, " | "), c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return apperr.Invalid("cache.redis_addr", "host:port", `""`)
	}
	if _, err := c.TTL(); err != nil {
		return err
	}
	return nil
}

// TTL parses the cache TTL. An empty value means no expiry.
func (c Config) TTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, apperr.Invalid("cache.ttl", "non-negative duration", c.Cache.TTL)
	}
	return d, nil
}

// CacheDir returns the configured cache directory or the XDG default.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
