// Package config loads numtools settings from defaults, an optional YAML
// file, a .env file and the process environment, in that order of
// precedence (later wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigFile        = "NUMTOOLS_CONFIG"
	EnvAddr              = "NUMTOOLS_ADDR"
	EnvLogLevel          = "NUMTOOLS_LOG_LEVEL"
	EnvTelemetry         = "NUMTOOLS_TELEMETRY"
	EnvShutdownTimeout   = "NUMTOOLS_SHUTDOWN_TIMEOUT"
	EnvSearchMaxOperands = "NUMTOOLS_SEARCH_MAX_OPERANDS"
	EnvSearchNodeBudget  = "NUMTOOLS_SEARCH_NODE_BUDGET"
	EnvSearchTimeout     = "NUMTOOLS_SEARCH_TIMEOUT"
	EnvSearchWorkers     = "NUMTOOLS_SEARCH_WORKERS"
	EnvGapsMaxMissing    = "NUMTOOLS_GAPS_MAX_MISSING"
	EnvServiceName       = "OTEL_SERVICE_NAME"
)

type Config struct {
	Addr            string        `yaml:"addr"`
	ServiceName     string        `yaml:"service_name"`
	LogLevel        string        `yaml:"log_level"`
	Telemetry       bool          `yaml:"telemetry"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Search          Search        `yaml:"search"`
	Gaps            Gaps          `yaml:"gaps"`
}

// Search bounds a single expression search.
type Search struct {
	MaxOperands int           `yaml:"max_operands"`
	NodeBudget  int64         `yaml:"node_budget"`
	Timeout     time.Duration `yaml:"timeout"`
	Workers     int           `yaml:"workers"`
}

// Gaps bounds a single gap report. MaxMissing of 0 means no limit.
type Gaps struct {
	MaxMissing int `yaml:"max_missing"`
}

// Default returns the settings the API service uses when nothing else is
// configured.
func Default() Config {
	return Config{
		Addr:            ":8080",
		ServiceName:     "numtools",
		LogLevel:        "info",
		ShutdownTimeout: 5 * time.Second,
		Search: Search{
			MaxOperands: 8,
			Timeout:     10 * time.Second,
			Workers:     1,
		},
		Gaps: Gaps{
			MaxMissing: 10000,
		},
	}
}

// CLIDefault is Default without search or gap limits. The command-line
// tools only bound their work when a flag, config file or environment
// variable asks them to.
func CLIDefault() Config {
	cfg := Default()
	cfg.Search = Search{Workers: 1}
	cfg.Gaps = Gaps{}
	return cfg
}

// LoadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

// Load builds a Config on top of Default. path names a YAML file; when
// empty the file named by NUMTOOLS_CONFIG is used, if any.
func Load(path string) (Config, error) {
	return LoadFrom(Default(), path)
}

// LoadFrom is Load with a caller-chosen base.
func LoadFrom(base Config, path string) (Config, error) {
	cfg := base

	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.mergeEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	return nil
}

func (c *Config) mergeEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Addr = v
	}
	if v, ok := lookup(EnvServiceName); ok && v != "" {
		c.ServiceName = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}

	if v, ok := lookup(EnvTelemetry); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTelemetry, err)
		}
		c.Telemetry = b
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{EnvShutdownTimeout, &c.ShutdownTimeout},
		{EnvSearchTimeout, &c.Search.Timeout},
	}
	for _, d := range durations {
		v, ok := lookup(d.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvSearchMaxOperands, &c.Search.MaxOperands},
		{EnvSearchWorkers, &c.Search.Workers},
		{EnvGapsMaxMissing, &c.Gaps.MaxMissing},
	}
	for _, i := range ints {
		v, ok := lookup(i.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", i.key, err)
		}
		*i.dst = parsed
	}

	if v, ok := lookup(EnvSearchNodeBudget); ok && v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSearchNodeBudget, err)
		}
		c.Search.NodeBudget = parsed
	}

	return nil
}
