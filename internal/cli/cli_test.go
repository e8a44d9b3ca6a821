package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/glyphforge/internal/app"
	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/config"
	"github.com/specialistvlad/glyphforge/internal/notify"
)

// execute runs the root command with args and returns the configuration
// handed to the run function.
func execute(t *testing.T, runErr error, args ...string) (*app.Config, error) {
	t.Helper()
	var got *app.Config
	cmd := NewRootCommand(func(_ context.Context, cfg *app.Config) error {
		got = cfg
		return runErr
	})
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return got, cmd.ExecuteContext(context.Background())
}

func TestRootCommand_OnlyChangedFlagsBecomeOptions(t *testing.T) {
	t.Parallel()

	// --- Act ---
	cfg, err := execute(t, nil, "./icons", "-o", "./dist", "-t", "woff2,woff", "--normalize", "--font-height", "512")

	// --- Assert ---
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, map[string]any{
		config.KeyInputDir:   "./icons",
		config.KeyOutputDir:  "./dist",
		config.KeyFontTypes:  []string{"woff2", "woff"},
		config.KeyNormalize:  true,
		config.KeyFontHeight: 512.0,
	}, cfg.Options)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestRootCommand_DefaultsLeaveOptionsEmpty(t *testing.T) {
	t.Parallel()

	cfg, err := execute(t, nil)

	require.NoError(t, err)
	assert.Empty(t, cfg.Options)
	assert.Empty(t, cfg.ConfigPath)
	assert.False(t, cfg.Watch)
	assert.Equal(t, notify.DefaultEvent, cfg.Notify.Event)
	assert.Empty(t, cfg.Notify.URL)
}

func TestRootCommand_ApplicationFlags(t *testing.T) {
	t.Parallel()

	cfg, err := execute(t, nil,
		"--config", "icons.hcl",
		"-c", "codepoints.json",
		"--log-level", "debug",
		"--log-format", "json",
		"--concurrency", "2",
		"-w", "--debounce", "1s", "--healthcheck-port", "8080",
		"--notify-url", "http://localhost:3000/socket.io/", "--notify-ack-event", "reloaded",
		"--prefix", "ico", "--selector", ".ico", "-u", "/fonts", "-g", "css,ts",
	)

	require.NoError(t, err)
	assert.Equal(t, "icons.hcl", cfg.ConfigPath)
	assert.Equal(t, "codepoints.json", cfg.CodepointsPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.True(t, cfg.Watch)
	assert.Equal(t, time.Second, cfg.Debounce)
	assert.Equal(t, 8080, cfg.HealthcheckPort)
	assert.Equal(t, "http://localhost:3000/socket.io/", cfg.Notify.URL)
	assert.Equal(t, "reloaded", cfg.Notify.AckEvent)
	assert.Equal(t, "ico", cfg.Options[config.KeyPrefix])
	assert.Equal(t, ".ico", cfg.Options[config.KeySelector])
	assert.Equal(t, "/fonts", cfg.Options[config.KeyFontsURL])
	assert.Equal(t, []string{"css", "ts"}, cfg.Options[config.KeyAssetTypes])
}

func TestRootCommand_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		args     []string
		runErr   error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "invalid log level",
			args:     []string{"--log-level", "loud"},
			wantCode: ExitCodeUsage,
			wantMsg:  "invalid log level 'loud'",
		},
		{
			name:     "healthcheck without watch",
			args:     []string{"--healthcheck-port", "9000"},
			wantCode: ExitCodeUsage,
			wantMsg:  "only available in watch mode",
		},
		{
			name:     "invalid option from the run",
			runErr:   &config.InvalidOptionValueError{Key: config.KeyName, Err: errors.New("bad")},
			wantCode: ExitCodeUsage,
			wantMsg:  "name",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, tc.runErr, tc.args...)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, tc.wantCode, exitErr.Code)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestRootCommand_RuntimeErrorsPassThrough(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	_, err := execute(t, boom)

	require.ErrorIs(t, err, boom)
	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
}

func TestRootCommand_TooManyArguments(t *testing.T) {
	t.Parallel()

	cfg, err := execute(t, nil, "a", "b")

	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestRenderReport(t *testing.T) {
	t.Parallel()

	t.Run("build", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		RenderReport(&buf, &app.Report{
			Name:  "icons",
			Icons: 1,
			Files: []app.WrittenFile{
				{Type: assettype.WOFF2, Path: "dist/icons.woff2", Size: 2048},
				{Type: assettype.CSS, Path: "dist/icons.css", Size: 512},
			},
		})

		out := buf.String()
		assert.Contains(t, out, "Built")
		assert.Contains(t, out, "1 icon ")
		assert.Contains(t, out, "2 files")
		assert.Contains(t, out, "dist/icons.woff2")
		assert.Contains(t, out, "2.0 kB")
		assert.Contains(t, out, "512 B")
	})

	t.Run("dry run", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		RenderReport(&buf, &app.Report{
			Name:   "icons",
			Icons:  3,
			DryRun: true,
			Plan:   []assettype.AssetType{assettype.SVG, assettype.TTF, assettype.WOFF},
			Files:  []app.WrittenFile{{Type: assettype.WOFF, Path: "dist/icons.woff"}},
		})

		out := buf.String()
		assert.Contains(t, out, "Dry run")
		assert.Contains(t, out, "3 icons")
		assert.Contains(t, out, "svg → ttf → woff")
		assert.Contains(t, out, "dist/icons.woff")
	})
}

func TestFormatSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 B", formatSize(0))
	assert.Equal(t, "999 B", formatSize(999))
	assert.Equal(t, "1.5 kB", formatSize(1500))
	assert.Equal(t, "2.5 MB", formatSize(2_500_000))
}
