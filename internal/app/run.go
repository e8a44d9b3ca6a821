package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/glyphforge/internal/ctxlog"
	"github.com/specialistvlad/glyphforge/internal/fsutil"
	"github.com/specialistvlad/glyphforge/internal/watch"
)

// Run executes a single build, or in watch mode builds once and rebuilds on
// every icon change until ctx is cancelled. report receives every successful
// build.
func (a *App) Run(ctx context.Context, report func(*Report)) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx

	if !a.config.Watch {
		r, err := a.Build(ctx)
		if err != nil {
			return err
		}
		report(r)
		return nil
	}
	return a.watch(ctx, report)
}

func (a *App) watch(ctx context.Context, report func(*Report)) error {
	logger := ctxlog.FromContext(ctx)

	// The watched directory is fixed by the options at startup.
	opts, err := a.loadOptions(ctx)
	if err != nil {
		return err
	}

	a.healthCheckServer()
	defer func() {
		_ = a.closeHealthCheckServer()
	}()

	rebuild := func(ctx context.Context, changed []string) error {
		if len(changed) > 0 {
			logger.Debug("Rebuilding after changes.", "changed", changed)
		}
		r, err := a.Build(ctx)
		a.status.record(r, err)
		if err != nil {
			return err
		}
		report(r)
		return nil
	}

	if err := rebuild(ctx, nil); err != nil {
		logger.Error("Initial build failed, waiting for changes.", "error", err)
	}

	w, err := watch.New(watch.Config{
		Dir:      opts.InputDir,
		Patterns: []string{fsutil.ExtensionPattern(".svg")},
		Debounce: a.config.Debounce,
		OnChange: rebuild,
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	return w.Run(ctx)
}
