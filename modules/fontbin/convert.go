package fontbin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"github.com/specialistvlad/glyphforge/internal/registry"
)

const (
	inPlaceholder  = "{in}"
	outPlaceholder = "{out}"
)

// commandLine returns the configured command of c, falling back to the
// default one.
func (c Converter) commandLine(opts *registry.Options) (string, error) {
	v, ok := opts.FormatOptions.Get(c.Type, "command")
	if !ok || v == nil {
		return c.Command, nil
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("formatOptions.%s.command must be a non-empty string, got %v", c.Type, v)
	}
	return s, nil
}

func (c Converter) generator(runner Runner) registry.GenerateFunc {
	return func(ctx context.Context, opts *registry.Options, dependency registry.Result) (registry.Result, error) {
		if len(dependency) == 0 {
			return nil, fmt.Errorf("no %s font to convert", c.From)
		}
		line, err := c.commandLine(opts)
		if err != nil {
			return nil, err
		}
		// Only environment variables are expanded; no shell is involved.
		fields, err := shell.Fields(line, os.Getenv)
		if err != nil {
			return nil, fmt.Errorf("invalid command %q: %w", line, err)
		}
		if len(fields) == 0 {
			return nil, fmt.Errorf("invalid command %q: no program", line)
		}

		return runner.Run(ctx, Invocation{
			Args:    fields,
			Input:   dependency,
			InName:  opts.Name + "." + string(c.From),
			OutName: opts.Name + "." + string(c.Type),
		})
	}
}

// Invocation is one converter run.
type Invocation struct {
	// Args is the command line, possibly containing {in} and {out}.
	Args  []string
	Input []byte
	// InName and OutName are the base names of the scratch files.
	InName  string
	OutName string
}

func (inv Invocation) uses(placeholder string) bool {
	for _, a := range inv.Args[1:] {
		if strings.Contains(a, placeholder) {
			return true
		}
	}
	return false
}

// expand substitutes the scratch paths into the arguments.
func (inv Invocation) expand(dir string) []string {
	r := strings.NewReplacer(
		inPlaceholder, filepath.Join(dir, inv.InName),
		outPlaceholder, filepath.Join(dir, inv.OutName),
	)
	args := make([]string, len(inv.Args))
	for i, a := range inv.Args {
		args[i] = r.Replace(a)
	}
	return args
}

var errEmptyOutput = errors.New("converter produced no output")
