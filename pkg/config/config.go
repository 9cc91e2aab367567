// Package config loads move-tree's user configuration.
//
// The file is TOML, found at $XDG_CONFIG_HOME/move-tree/config.toml
// (~/.config/move-tree/config.toml when XDG_CONFIG_HOME is unset):
//
//	color = "auto"      # auto | always | never
//	charset = "ascii"   # ascii | unicode
//	jobs = 4            # parallel compiles, 0 = number of CPUs
//
//	[compiler]
//	command = ["sui", "move", "summary", "--path", "{path}", "--env", "{env}"]
//	format = "json"     # json | msgpack
//
//	[cache]
//	enabled = true
//	ttl = "168h"
//	dir = ""            # default $XDG_CACHE_HOME/move-tree
//	redis_addr = ""     # use Redis instead of the file cache
//
// Command-line flags override file values.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mcxross/sui/pkg/errors"
)

// AppName names the config and cache directories.
const AppName = "move-tree"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Charsets.
const (
	CharsetASCII   = "ascii"
	CharsetUnicode = "unicode"
)

// Snapshot formats.
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// Config is the full configuration.
type Config struct {
	Color    string   `toml:"color"`
	Charset  string   `toml:"charset"`
	Jobs     int      `toml:"jobs"`
	Compiler Compiler `toml:"compiler"`
	Cache    Cache    `toml:"cache"`
}

// Compiler configures the external compiler command.
type Compiler struct {
	// Command is an argv template with {path}, {env} and {chain_id}
	// placeholders. Empty uses the built-in default.
	Command []string `toml:"command"`
	Format  string   `toml:"format"`
}

// Cache configures the snapshot cache.
type Cache struct {
	Enabled   bool     `toml:"enabled"`
	TTL       Duration `toml:"ttl"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
}

// Duration is a time.Duration written as a string such as "24h".
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

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		Color:    ColorAuto,
		Charset:  CharsetASCII,
		Compiler: Compiler{Format: FormatJSON},
		Cache:    Cache{Enabled: true, TTL: Duration{7 * 24 * time.Hour}},
	}
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultPath returns the path of the configuration file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration at path on top of Defaults. An empty path
// means DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Defaults()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg, err = Parse(data)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes a configuration document on top of Defaults and validates
// it. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Defaults()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate rejects unknown enum values and negative numbers.
func (c Config) Validate() error {
	if err := oneOf("color", c.Color, ColorAuto, ColorAlways, ColorNever); err != nil {
		return err
	}
	if err := oneOf("charset", c.Charset, CharsetASCII, CharsetUnicode); err != nil {
		return err
	}
	if err := oneOf("compiler.format", c.Compiler.Format, FormatJSON, FormatMsgpack); err != nil {
		return err
	}
	if c.Jobs < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "jobs must not be negative, got %d", c.Jobs)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

func oneOf(key, value string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidConfig, "invalid %s %q (want %s)", key, value, strings.Join(allowed, ", "))
}
