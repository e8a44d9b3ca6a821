package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/glyphforge/internal/app"
	"github.com/specialistvlad/glyphforge/internal/config"
	"github.com/specialistvlad/glyphforge/internal/notify"
	"github.com/specialistvlad/glyphforge/internal/watch"
)

// ExitCodeUsage is returned for invalid flags and invalid options.
const ExitCodeUsage = 2

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// RunFunc executes the application for a validated configuration.
type RunFunc func(ctx context.Context, cfg *app.Config) error

// flags holds the raw flag values. Option flags only reach the config when
// they were set explicitly, so that config files keep their say.
type flags struct {
	configPath     string
	codepointsPath string

	outputDir  string
	name       string
	fontTypes  []string
	assetTypes []string
	fontHeight float64
	descent    float64
	normalize  bool
	round      float64
	selector   string
	tag        string
	prefix     string
	fontsURL   string

	logLevel    string
	logFormat   string
	concurrency int
	dryRun      bool

	watch           bool
	debounce        time.Duration
	healthcheckPort int

	notify notify.Config
}

// NewRootCommand builds the glyphforge command.
func NewRootCommand(run RunFunc) *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "glyphforge [input-dir]",
		Short: "Build icon fonts and their stylesheets from a directory of SVG icons",
		Long: TitleStyle.Render("glyphforge") + SubtitleStyle.Render(" - icon font build pipeline") + `

glyphforge reads every .svg file below the input directory and writes the
requested fonts (svg, ttf, woff, woff2, eot) and assets (css, scss, sass,
html, json, ts) to the output directory.

Options are read from a config file (.glyphforgerc.hcl, glyphforge.hcl,
.glyphforgerc.yaml, .glyphforgerc.yml, .glyphforgerc.toml, .glyphforgerc.json
or .glyphforgerc) in the working directory. Flags override the file.`,
		Example: `  glyphforge ./icons -o ./dist
  glyphforge ./icons -o ./dist -t woff2,woff -g css,ts --prefix ico
  glyphforge --config build/icons.hcl --watch`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.appConfig(cmd, args)
			if err != nil {
				return &ExitError{Code: ExitCodeUsage, Err: err}
			}
			if err := run(cmd.Context(), cfg); err != nil {
				if config.IsUserError(err) {
					return &ExitError{Code: ExitCodeUsage, Err: err}
				}
				return err
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "config file (default: looked up in the working directory)")
	fs.StringVarP(&f.codepointsPath, "codepoints", "c", "", "file with a codepoint table (id to codepoint)")

	fs.StringVarP(&f.outputDir, "output", "o", "", "output directory")
	fs.StringVarP(&f.name, "name", "n", "icons", "base name of the font and generated files")
	fs.StringSliceVarP(&f.fontTypes, "font-types", "t", nil, "font types to generate (svg, ttf, woff, woff2, eot)")
	fs.StringSliceVarP(&f.assetTypes, "asset-types", "g", nil, "asset types to generate (css, scss, sass, html, json, ts)")
	fs.Float64Var(&f.fontHeight, "font-height", 0, "font height (default: height of the tallest icon)")
	fs.Float64Var(&f.descent, "descent", 0, "font descent")
	fs.BoolVar(&f.normalize, "normalize", false, "scale every icon to the font height")
	fs.Float64Var(&f.round, "round", 0, "coordinate rounding multiplier")
	fs.StringVar(&f.selector, "selector", "", "CSS selector of the icon elements")
	fs.StringVar(&f.tag, "tag", "i", "HTML tag used in the preview and default selector")
	fs.StringVarP(&f.prefix, "prefix", "p", "icon", "CSS class prefix")
	fs.StringVarP(&f.fontsURL, "fonts-url", "u", "", "public URL of the fonts, used in the stylesheets")

	fs.StringVar(&f.logLevel, "log-level", "info", "logging level: 'debug', 'info', 'warn' or 'error'")
	fs.StringVar(&f.logFormat, "log-format", "text", "log output format: 'text' or 'json'")
	fs.IntVar(&f.concurrency, "concurrency", 0, "maximum number of generators running at once (0 is unlimited)")
	fs.BoolVar(&f.dryRun, "dry-run", false, "resolve options and print the plan without writing files")

	fs.BoolVarP(&f.watch, "watch", "w", false, "rebuild whenever an icon changes")
	fs.DurationVar(&f.debounce, "debounce", watch.DefaultDebounce, "quiet period before a rebuild in watch mode")
	fs.IntVar(&f.healthcheckPort, "healthcheck-port", 0, "port of the HTTP health check server in watch mode (0 is disabled)")

	fs.StringVar(&f.notify.URL, "notify-url", "", "socket.io server notified after every build")
	fs.StringVar(&f.notify.Namespace, "notify-namespace", "/", "socket.io namespace")
	fs.StringVar(&f.notify.Event, "notify-event", notify.DefaultEvent, "event emitted after a build")
	fs.StringVar(&f.notify.AckEvent, "notify-ack-event", "", "event the server acknowledges with")
	fs.DurationVar(&f.notify.Timeout, "notify-timeout", 10*time.Second, "timeout of a notification")
	fs.BoolVar(&f.notify.InsecureSkipVerify, "notify-insecure", false, "skip TLS verification of the notify server")

	return cmd
}

// appConfig translates the parsed flags into the application configuration.
func (f *flags) appConfig(cmd *cobra.Command, args []string) (*app.Config, error) {
	options := map[string]any{}
	set := func(flag, key string, value any) {
		if cmd.Flags().Changed(flag) {
			options[key] = value
		}
	}

	if len(args) > 0 {
		if args[0] == "" {
			return nil, errors.New("input directory must not be empty")
		}
		options[config.KeyInputDir] = args[0]
	}
	set("output", config.KeyOutputDir, f.outputDir)
	set("name", config.KeyName, f.name)
	set("font-types", config.KeyFontTypes, f.fontTypes)
	set("asset-types", config.KeyAssetTypes, f.assetTypes)
	set("font-height", config.KeyFontHeight, f.fontHeight)
	set("descent", config.KeyDescent, f.descent)
	set("normalize", config.KeyNormalize, f.normalize)
	set("round", config.KeyRound, f.round)
	set("selector", config.KeySelector, f.selector)
	set("tag", config.KeyTag, f.tag)
	set("prefix", config.KeyPrefix, f.prefix)
	set("fonts-url", config.KeyFontsURL, f.fontsURL)

	return app.NewConfig(app.Config{
		ConfigPath:      f.configPath,
		CodepointsPath:  f.codepointsPath,
		Options:         options,
		LogLevel:        f.logLevel,
		LogFormat:       f.logFormat,
		Concurrency:     f.concurrency,
		DryRun:          f.dryRun,
		Watch:           f.watch,
		Debounce:        f.debounce,
		HealthcheckPort: f.healthcheckPort,
		Notify:          f.notify,
	})
}
