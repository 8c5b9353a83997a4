// SPDX-License-Identifier: MIT

// Package config resolves application settings from the process environment
// and an optional .env file. Process variables take precedence over the file;
// command-line flags override both.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/openchannel/internal/logging"
	"github.com/katalvlaran/openchannel/units"
)

// Environment variable names.
const (
	EnvUnits    = "OPENCHANNEL_UNITS"
	EnvLogLevel = "OPENCHANNEL_LOG_LEVEL"
	EnvLogFile  = "OPENCHANNEL_LOG_FILE"
	EnvWorkers  = "OPENCHANNEL_WORKERS"
	EnvDev      = "OPENCHANNEL_DEV"
)

// DefaultEnvFile is read when no file is named explicitly; it may be absent.
const DefaultEnvFile = ".env"

// ErrInvalidConfig indicates an unparsable setting.
var ErrInvalidConfig = errors.New("config: invalid setting")

// Config holds the resolved settings.
type Config struct {
	Units    units.System
	LogLevel zapcore.Level
	LogFile  string
	Workers  int
	Dev      bool
}

// Default returns SI units, info logging, no log file and one worker per CPU.
func Default() Config {
	return Config{
		Units:    units.SI,
		LogLevel: zapcore.InfoLevel,
		Workers:  runtime.NumCPU(),
	}
}

// Load reads envFile (DefaultEnvFile when empty, which may be missing) and
// overlays the process environment.
func Load(envFile string) (Config, error) {
	file := map[string]string{}
	explicit := envFile != ""
	if !explicit {
		envFile = DefaultEnvFile
	}

	vals, err := godotenv.Read(envFile)
	switch {
	case err == nil:
		file = vals
	case !explicit && errors.Is(err, fs.ErrNotExist):
		// no .env in the working directory
	default:
		return Config{}, fmt.Errorf("config: reading %s: %w", envFile, err)
	}

	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	})
}

// FromLookup resolves a Config through lookup, starting from Default.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvUnits); ok && strings.TrimSpace(v) != "" {
		u, err := units.Parse(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvUnits, err)
		}
		cfg.Units = u
	}
	if v, ok := lookup(EnvLogLevel); ok {
		lvl, err := logging.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvLogLevel, err)
		}
		cfg.LogLevel = lvl
	}
	if v, ok := lookup(EnvLogFile); ok {
		cfg.LogFile = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvWorkers); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalidConfig, EnvWorkers, v)
		}
		cfg.Workers = n
	}
	if v, ok := lookup(EnvDev); ok && strings.TrimSpace(v) != "" {
		dev, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvDev, err)
		}
		cfg.Dev = dev
	}

	return cfg, nil
}

// Logging converts the settings into a logger configuration.
func (c Config) Logging() logging.Config {
	return logging.Config{Level: c.LogLevel, File: c.LogFile, Dev: c.Dev}
}
