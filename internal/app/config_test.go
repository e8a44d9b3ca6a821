package app

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   Config
		wantErr string
	}{
		{name: "defaults", input: Config{}},
		{name: "invalid log level", input: Config{LogLevel: "verbose"}, wantErr: "invalid log level 'verbose'"},
		{name: "invalid log format", input: Config{LogFormat: "xml"}, wantErr: "invalid log format 'xml'"},
		{name: "negative concurrency", input: Config{Concurrency: -1}, wantErr: "concurrency must not be negative"},
		{name: "port out of range", input: Config{Watch: true, HealthcheckPort: 70000}, wantErr: "invalid healthcheck port"},
		{name: "healthcheck without watch", input: Config{HealthcheckPort: 8080}, wantErr: "only available in watch mode"},
		{name: "watch with dry run", input: Config{Watch: true, DryRun: true}, wantErr: "cannot be used together"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := NewConfig(tc.input)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "info", cfg.LogLevel)
			assert.Equal(t, "text", cfg.LogFormat)
			assert.Equal(t, ".", cfg.WorkDir)
			assert.NotNil(t, cfg.Options)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("json format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := newLogger("info", "json", &buf)

		logger.Debug("hidden")
		logger.Info("built", "files", 3)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
		assert.Equal(t, "built", record["msg"])
		assert.EqualValues(t, 3, record["files"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := newLogger("debug", "text", &buf)

		logger.Debug("planning", "types", 2)

		out := buf.String()
		assert.Contains(t, out, "glyphforge")
		assert.Contains(t, out, "planning")
		assert.Contains(t, out, "types=2")
	})

	t.Run("level filtering", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := newLogger("error", "text", &buf)

		logger.Warn("ignored")

		assert.Empty(t, buf.String())
	})
}
