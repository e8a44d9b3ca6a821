package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/afero"

	"github.com/specialistvlad/glyphforge/internal/app"
	"github.com/specialistvlad/glyphforge/internal/cli"
)

// version is set via -ldflags.
var version = "dev"

// main is the entrypoint for the glyphforge application.
func main() {
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Reports go to outW, logs and errors to errW.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	cmd := cli.NewRootCommand(func(ctx context.Context, cfg *app.Config) (err error) {
		// The app panics on an invalid generator registry. Recover here to
		// provide a clean exit message to the user.
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("application startup panicked: %v", r)
			}
		}()

		glyphforge := app.NewApp(errW, cfg, afero.NewOsFs())
		return glyphforge.Run(ctx, func(r *app.Report) {
			cli.RenderReport(outW, r)
		})
	})
	cmd.SetArgs(args)
	cmd.SetOut(outW)
	cmd.SetErr(errW)

	return fang.Execute(ctx, cmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	)
}
