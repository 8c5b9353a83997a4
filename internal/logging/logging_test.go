// SPDX-License-Identifier: MIT

package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/openchannel/internal/logging"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		" warn ":  zapcore.WarnLevel,
		"Warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
	}
	for in, want := range cases {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logging.ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewJSONConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(logging.Config{Level: zapcore.InfoLevel, Console: &buf})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("solved", zap.Float64("depth", 1.25))
	require.NoError(t, log.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "solved", entry[logging.FieldMessage])
	assert.Equal(t, "info", entry[logging.FieldLevel])
	assert.Equal(t, 1.25, entry["depth"])
}

func TestNewDevConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(logging.Config{Level: zapcore.DebugLevel, Dev: true, Console: &buf})
	require.NoError(t, err)

	log.Debug("marching", zap.Int("station", 3))
	require.NoError(t, log.Sync())
	assert.Contains(t, buf.String(), "marching")
	assert.Contains(t, buf.String(), "station")
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openchannel.log")
	var console bytes.Buffer
	log, err := logging.New(logging.Config{Level: zapcore.InfoLevel, File: path, Console: &console})
	require.NoError(t, err)

	log.Warn("bracket failed")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"bracket failed"`)
	assert.Contains(t, console.String(), "bracket failed")
}
