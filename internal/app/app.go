package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/afero"

	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/config"
	"github.com/specialistvlad/glyphforge/internal/configfile"
	"github.com/specialistvlad/glyphforge/internal/ctxlog"
	"github.com/specialistvlad/glyphforge/internal/executor"
	"github.com/specialistvlad/glyphforge/internal/fsutil"
	"github.com/specialistvlad/glyphforge/internal/notify"
	"github.com/specialistvlad/glyphforge/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	ctx      context.Context
	config   *Config
	fs       afero.Fs
	registry *registry.Registry
	executor *executor.Executor
	loader   *configfile.Loader
	parser   *config.Parser
	notifier notify.Notifier

	status     *buildStatus
	httpServer *http.Server
}

// NewApp creates a new application instance, wiring up all internal
// components. When no modules are given the core generator modules are used.
// It panics when the registered generators do not form a valid set, which
// is a programming error.
func NewApp(outW io.Writer, cfg *Config, fsys afero.Fs, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	logger.Debug("Initializing application.", "work_dir", cfg.WorkDir, "watch", cfg.Watch, "dry_run", cfg.DryRun)

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.New(modules...)
	if err := reg.Validate(ctx, assettype.All()); err != nil {
		panic(fmt.Sprintf("generator registry is invalid: %v", err))
	}
	logger.Debug("Generator registry validated.", "types", reg.Types())

	return &App{
		outW:     outW,
		logger:   logger,
		ctx:      ctx,
		config:   cfg,
		fs:       fsys,
		registry: reg,
		executor: executor.New(reg,
			executor.WithFs(fsys),
			executor.WithConcurrency(cfg.Concurrency),
		),
		loader:   configfile.NewLoader(fsys),
		parser:   config.NewParser(fsutil.NewDirChecker(fsys)),
		notifier: notify.New(cfg.Notify),
		status:   &buildStatus{},
	}
}

// Logger returns the application's configured logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
