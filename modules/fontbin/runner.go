package fontbin

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/specialistvlad/glyphforge/internal/ctxlog"
)

// Runner executes a converter invocation and returns the converted font.
type Runner interface {
	Run(ctx context.Context, inv Invocation) ([]byte, error)
}

// ExecRunner runs converters as child processes. Scratch files live in a
// temporary directory on Scratch that is removed afterwards.
type ExecRunner struct {
	Scratch afero.Fs
}

// NewExecRunner creates an ExecRunner on the OS filesystem, which is where
// child processes can see the scratch files.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Scratch: afero.NewOsFs()}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) ([]byte, error) {
	logger := ctxlog.FromContext(ctx).With("program", inv.Args[0])

	dir, err := afero.TempDir(r.Scratch, "", "glyphforge-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer func() {
		if err := r.Scratch.RemoveAll(dir); err != nil {
			logger.Warn("Failed to remove scratch directory.", "dir", dir, "error", err)
		}
	}()

	usesIn, usesOut := inv.uses(inPlaceholder), inv.uses(outPlaceholder)
	if usesIn {
		if err := afero.WriteFile(r.Scratch, filepath.Join(dir, inv.InName), inv.Input, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write converter input: %w", err)
		}
	}

	args := inv.expand(dir)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if !usesIn {
		cmd.Stdin = bytes.NewReader(inv.Input)
	}

	logger.Debug("Running converter.", "args", args)
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", args[0], err, msg)
		}
		return nil, fmt.Errorf("%s: %w", args[0], err)
	}

	out := stdout.Bytes()
	if usesOut {
		out, err = afero.ReadFile(r.Scratch, filepath.Join(dir, inv.OutName))
		if err != nil {
			return nil, fmt.Errorf("failed to read converter output: %w", err)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", args[0], errEmptyOutput)
	}
	return out, nil
}
