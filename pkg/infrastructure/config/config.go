// Package config loads reconciliation settings from a YAML or TOML file and
// RECON_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/plantrecon/pkg/errs"
)

const envPrefix = "RECON_"

// Store drivers
const (
	DriverFiles  = "files"
	DriverSQLite = "sqlite"
)

type Config struct {
	App    AppConfig    `yaml:"app" toml:"app"`
	Store  StoreConfig  `yaml:"store" toml:"store"`
	Output OutputConfig `yaml:"output" toml:"output"`
	Server ServerConfig `yaml:"server" toml:"server"`
}

type AppConfig struct {
	Name     string `yaml:"name" toml:"name"`
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// StoreConfig selects the backing store. Dir is the scenario directory for
// the files driver; DSN is used by the sqlite driver.
type StoreConfig struct {
	Driver string `yaml:"driver" toml:"driver"`
	Dir    string `yaml:"dir" toml:"dir"`
	DSN    string `yaml:"dsn" toml:"dsn"`
}

type OutputConfig struct {
	Format string `yaml:"format" toml:"format"`
	Dir    string `yaml:"dir" toml:"dir"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		App:    AppConfig{Name: "plantrecon", LogLevel: "info"},
		Store:  StoreConfig{Driver: DriverFiles, Dir: ".", DSN: "plantrecon.sqlite"},
		Output: OutputConfig{Format: "text"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Override adjusts a loaded configuration, typically from command-line flags.
type Override func(*Config)

// Load reads path (when non-empty) over the defaults, applies environment
// overrides and then overrides in order, and validates the result once all
// layers are in. The format follows the file extension.
func Load(path string, overrides ...Override) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errs.Wrapf(err, "read config %s", path)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &cfg)
		case ".toml":
			err = toml.Unmarshal(data, &cfg)
		default:
			return Config{}, fmt.Errorf("unsupported config format: %s (expected .yaml, .yml or .toml)", path)
		}
		if err != nil {
			return Config{}, errs.Wrapf(err, "parse config %s", path)
		}
	}

	applyEnv(&cfg, os.LookupEnv)
	for _, override := range overrides {
		override(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	overrides := map[string]*string{
		"APP_NAME":      &cfg.App.Name,
		"LOG_LEVEL":     &cfg.App.LogLevel,
		"STORE_DRIVER":  &cfg.Store.Driver,
		"STORE_DIR":     &cfg.Store.Dir,
		"STORE_DSN":     &cfg.Store.DSN,
		"OUTPUT_FORMAT": &cfg.Output.Format,
		"OUTPUT_DIR":    &cfg.Output.Dir,
		"SERVER_ADDR":   &cfg.Server.Addr,
	}
	for key, field := range overrides {
		if v, ok := lookup(envPrefix + key); ok && strings.TrimSpace(v) != "" {
			*field = strings.TrimSpace(v)
		}
	}
}

// Validate checks driver and output settings.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverFiles:
		if c.Store.Dir == "" {
			return fmt.Errorf("store.dir is required for the %s driver", DriverFiles)
		}
	case DriverSQLite:
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the %s driver", DriverSQLite)
		}
	default:
		return fmt.Errorf("invalid store.driver: %s (expected: %s or %s)", c.Store.Driver, DriverFiles, DriverSQLite)
	}

	switch c.Output.Format {
	case "text", "json", "csv", "xlsx":
	default:
		return fmt.Errorf("invalid output.format: %s (expected: text, json, csv or xlsx)", c.Output.Format)
	}
	return nil
}
