// SPDX-License-Identifier: MIT

// Package logging builds the zap loggers used by the scenario runner and the
// command-line tool. Solver packages never log.
//
// Console output goes to stderr so that command results on stdout stay
// machine-readable. An optional log file is always JSON and is rotated by
// lumberjack.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for the log file.
const (
	DefaultMaxSizeMB  = 50
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 14
)

// Field names of structured output.
const (
	FieldTimestamp  = "timestamp"
	FieldLevel      = "level"
	FieldLogger     = "logger"
	FieldCaller     = "caller"
	FieldMessage    = "message"
	FieldStacktrace = "stacktrace"
)

// Config describes a logger.
//
// Level   – minimum enabled level.
// File    – optional log file path; empty disables file output.
// Dev     – human-readable colored console instead of JSON.
// Console – console destination; nil means os.Stderr.
type Config struct {
	Level   zapcore.Level
	File    string
	Dev     bool
	Console io.Writer

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// ParseLevel parses debug, info, warn (warning), error or fatal,
// case-insensitively. An empty string is info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("logging: unknown level %q", s)
	}
}

// EncoderConfig is the JSON encoder configuration.
func EncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        FieldTimestamp,
		LevelKey:       FieldLevel,
		NameKey:        FieldLogger,
		CallerKey:      FieldCaller,
		MessageKey:     FieldMessage,
		StacktraceKey:  FieldStacktrace,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// ConsoleEncoderConfig is the development console configuration.
func ConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := EncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("15:04:05.000"))
	}
	cfg.EncodeDuration = zapcore.StringDurationEncoder

	return cfg
}

// New builds a logger from cfg, teeing console and file output.
func New(cfg Config) (*zap.Logger, error) {
	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}

	var enc zapcore.Encoder
	if cfg.Dev {
		enc = zapcore.NewConsoleEncoder(ConsoleEncoderConfig())
	} else {
		enc = zapcore.NewJSONEncoder(EncoderConfig())
	}
	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.AddSync(console), cfg.Level)}

	if cfg.File != "" {
		w, err := fileWriter(cfg)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(EncoderConfig()), w, cfg.Level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// fileWriter opens a rotating log file.
func fileWriter(cfg Config) (zapcore.WriteSyncer, error) {
	if strings.TrimSpace(cfg.File) == "" {
		return nil, fmt.Errorf("logging: empty log file path")
	}
	orDefault := func(v, def int) int {
		if v <= 0 {
			return def
		}
		return v
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    orDefault(cfg.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: orDefault(cfg.MaxBackups, DefaultMaxBackups),
		MaxAge:     orDefault(cfg.MaxAgeDays, DefaultMaxAgeDays),
		Compress:   true,
	}), nil
}
