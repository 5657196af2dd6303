// Package config loads wordchain settings from a TOML file.
//
// The default location is $XDG_CONFIG_HOME/wordchain/config.toml
// (~/.config/wordchain/config.toml). Every field is optional:
//
//	mode = "parallel"   # or "single"
//	workers = 8         # 0 = one per CPU
//
//	[cache]
//	backend = "file"    # none, file or redis
//	dir = "/tmp/wordchain"
//	redis_addr = "localhost:6379"
//	prefix = "wordchain:"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	max_items = 10000
//
// Command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wordchain/pkg/chain"
)

// AppName names the config and cache directories.
const AppName = "wordchain"

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// ValidBackends is the set of supported cache backends.
var ValidBackends = map[string]bool{
	BackendNone:  true,
	BackendFile:  true,
	BackendRedis: true,
}

// Defaults.
const (
	DefaultBackend   = BackendNone
	DefaultTTL       = 24 * time.Hour
	DefaultAddr      = ":8080"
	DefaultMaxItems  = 10000
	DefaultRedisAddr = "localhost:6379"
)

// Config is the decoded configuration file.
type Config struct {
	Mode    string `toml:"mode"`
	Workers int    `toml:"workers"`
	Cache   Cache  `toml:"cache"`
	Server  Server `toml:"server"`
}

// Cache configures the result cache.
type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	Prefix    string   `toml:"prefix"`
	TTL       Duration `toml:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr     string `toml:"addr"`
	MaxItems int    `toml:"max_items"`
}

// Duration is a time.Duration written as a Go duration string ("90m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a Config with every default applied.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// Load reads the file at path. An empty path selects DefaultPath, and a
// missing default file yields Default(). A missing explicit path is an error.
// Unknown keys are rejected so that typos do not pass silently.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	var c Config
	md, err := toml.DecodeFile(path, &c)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &c, nil
}

// SetDefaults fills zero fields.
func (c *Config) SetDefaults() {
	if c.Mode == "" {
		c.Mode = string(chain.DefaultMode)
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = DefaultBackend
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = DefaultRedisAddr
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = DefaultTTL
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.MaxItems == 0 {
		c.Server.MaxItems = DefaultMaxItems
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := chain.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers: %d (must be >= 0)", c.Workers)
	}
	if !ValidBackends[c.Cache.Backend] {
		return fmt.Errorf("invalid cache backend: %q (must be one of: none, file, redis)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return fmt.Errorf("invalid cache ttl: %s", c.Cache.TTL)
	}
	if c.Server.MaxItems < 0 {
		return fmt.Errorf("invalid server max_items: %d", c.Server.MaxItems)
	}
	return nil
}

// DefaultPath returns the XDG config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Dir returns the config directory ($XDG_CONFIG_HOME/wordchain).
func Dir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// CacheDir returns the cache directory ($XDG_CACHE_HOME/wordchain).
func CacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}
