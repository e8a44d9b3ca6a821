// Package watch rebuilds on icon changes. It monitors a directory tree with
// fsnotify and invokes a callback once events have been quiet for a debounce
// period, with the set of changed paths coalesced.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/specialistvlad/glyphforge/internal/ctxlog"
)

// DefaultDebounce is used when Config.Debounce is not positive.
const DefaultDebounce = 300 * time.Millisecond

// Config holds the parameters for a Watcher.
type Config struct {
	// Dir is the root of the watched tree.
	Dir string
	// Patterns are doublestar patterns, relative to Dir, selecting the files
	// that trigger a rebuild.
	Patterns []string
	Debounce time.Duration
	// OnChange receives the changed paths relative to Dir, sorted. An error
	// is logged and watching continues.
	OnChange func(ctx context.Context, changed []string) error
}

// Watcher monitors Dir. Run must be called once.
type Watcher struct {
	cfg Config
	fsw *fsnotify.Watcher
}

// New validates cfg and registers every directory below cfg.Dir.
func New(cfg Config) (*Watcher, error) {
	if cfg.OnChange == nil {
		return nil, errors.New("watch: OnChange is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	for _, p := range cfg.Patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("watch: invalid pattern %q", p)
		}
	}
	abs, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %s: %w", cfg.Dir, err)
	}
	cfg.Dir = abs

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	w := &Watcher{cfg: cfg, fsw: fsw}
	if err := w.addTree(cfg.Dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run processes events until ctx is cancelled. Callbacks run on the calling
// goroutine, so rebuilds never overlap; events arriving meanwhile are
// coalesced into the next callback.
func (w *Watcher) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("component", "watch", "dir", w.cfg.Dir)
	defer func() {
		if err := w.fsw.Close(); err != nil {
			logger.Warn("Failed to close watcher.", "error", err)
		}
	}()

	timer := time.NewTimer(w.cfg.Debounce)
	timer.Stop()
	defer timer.Stop()
	pending := map[string]struct{}{}

	logger.Info("👀 Watching for icon changes")
	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed unexpectedly")
			}
			if evt.Has(fsnotify.Create) {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					if err := w.addTree(evt.Name); err != nil {
						logger.Warn("Failed to watch new directory.", "path", evt.Name, "error", err)
					}
					continue
				}
			}
			rel, ok := w.match(evt.Name)
			if !ok {
				continue
			}
			logger.Debug("File event.", "path", rel, "op", evt.Op.String())
			pending[rel] = struct{}{}
			timer.Reset(w.cfg.Debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			clear(pending)

			logger.Info("🔁 Icons changed, rebuilding", "files", len(changed))
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				logger.Error("Rebuild failed.", "error", err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed unexpectedly")
			}
			logger.Warn("Watcher error.", "error", err)
		}
	}
}

// match returns path relative to Dir when it matches a pattern.
func (w *Watcher) match(path string) (string, bool) {
	rel, err := filepath.Rel(w.cfg.Dir, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if len(w.cfg.Patterns) == 0 {
		return rel, true
	}
	for _, p := range w.cfg.Patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return rel, true
		}
	}
	return "", false
}

// addTree adds root and every directory below it.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("watch: walk %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}
