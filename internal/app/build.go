package app

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/config"
	"github.com/specialistvlad/glyphforge/internal/ctxlog"
	"github.com/specialistvlad/glyphforge/internal/icon"
	"github.com/specialistvlad/glyphforge/internal/notify"
)

// Report summarizes one build.
type Report struct {
	Name  string
	Icons int
	// Plan lists every generator the build runs, dependencies first. It is
	// only filled in for dry runs.
	Plan     []assettype.AssetType
	Files    []WrittenFile
	DryRun   bool
	Duration time.Duration
}

// Build runs the whole pipeline once: options are loaded and validated, the
// icons discovered, the assets generated and written, and listeners
// notified.
func (a *App) Build(ctx context.Context) (*Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := a.logger
	start := time.Now()

	opts, err := a.loadOptions(ctx)
	if err != nil {
		return nil, err
	}

	assets, err := icon.Discover(ctx, a.fs, opts.InputDir)
	if err != nil {
		return nil, err
	}
	report := &Report{Name: opts.Name, Icons: len(assets), DryRun: a.config.DryRun}

	if a.config.DryRun {
		plan, err := a.executor.Plan(opts.RequestedTypes())
		if err != nil {
			return nil, err
		}
		report.Plan = plan
		for _, t := range opts.RequestedTypes() {
			report.Files = append(report.Files, WrittenFile{Type: t, Path: OutputPath(opts, t)})
		}
		report.Duration = time.Since(start)
		logger.Info("Dry run complete, nothing was written.", "plan", plan)
		return report, nil
	}

	logger.Info("▶️ Building assets", "name", opts.Name, "icons", len(assets), "types", opts.RequestedTypes())
	results, err := a.executor.GenerateAssets(ctx, assets, opts)
	if err != nil {
		return nil, err
	}

	report.Files, err = WriteAssets(ctx, a.fs, opts, results)
	if err != nil {
		return nil, err
	}
	report.Duration = time.Since(start)
	logger.Info("✅ Build complete", "files", len(report.Files), "duration", report.Duration)

	if err := a.notifier.Notify(ctx, report.payload()); err != nil {
		logger.Warn("Build notification failed.", "error", err)
	}
	return report, nil
}

func (r *Report) payload() notify.Payload {
	p := notify.Payload{Name: r.Name}
	for _, f := range r.Files {
		p.Types = append(p.Types, string(f.Type))
		p.Files = append(p.Files, f.Path)
	}
	return p
}

// loadOptions assembles the raw option map and validates it. Precedence is
// defaults, then the config file, then the command line options.
func (a *App) loadOptions(ctx context.Context) (*config.RunnerOptions, error) {
	logger := ctxlog.FromContext(ctx)

	path := a.config.ConfigPath
	if path == "" {
		found, err := a.loader.Find(a.config.WorkDir)
		if err != nil {
			return nil, err
		}
		path = found
	}

	raw := map[string]any{}
	if path != "" {
		loaded, err := a.loader.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		logger.Debug("Config file loaded.", "path", path, "keys", len(loaded))
		if loaded != nil {
			raw = loaded
		}
	}

	if a.config.CodepointsPath != "" {
		table, err := a.loader.Load(ctx, a.config.CodepointsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load codepoints: %w", err)
		}
		raw[config.KeyCodepoints] = table
	}

	maps.Copy(raw, a.config.Options)

	opts, err := a.parser.Parse(ctx, raw)
	if err != nil {
		return nil, err
	}
	if opts.InputDir == "" {
		return nil, &config.InvalidOptionValueError{Key: config.KeyInputDir, Err: errors.New("an input directory is required")}
	}
	if opts.OutputDir == "" {
		return nil, &config.InvalidOptionValueError{Key: config.KeyOutputDir, Err: errors.New("an output directory is required")}
	}
	return opts, nil
}
