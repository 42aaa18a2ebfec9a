package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cottand/gradual/frontend/check"
	"github.com/cottand/gradual/frontend/ilerr"
	"github.com/cottand/gradual/gradual"
	"github.com/cottand/gradual/internal/config"
	"github.com/cottand/gradual/internal/log"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cliLogger = log.DefaultLogger.With("section", "cli")

// options are the flags shared by every subcommand. They override the
// configuration file when set.
type options struct {
	configPath    string
	logLevel      string
	maxIterations int
	color         string
}

func (o *options) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.configPath, "config", "c", "", "configuration file (default ./"+config.FileName+" if present)")
	flags.StringVarP(&o.logLevel, "log-level", "l", "", "log level: debug, info, warn or error")
	flags.IntVar(&o.maxIterations, "max-iterations", 0, "passes scope inference makes over a scope before giving up")
	flags.StringVar(&o.color, "color", "", "colour diagnostics: auto, always or never")
}

// resolve reads the configuration file, applies the flags set on cmd over
// it and configures logging accordingly.
func (o *options) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("max-iterations") {
		cfg.MaxInferenceIterations = o.maxIterations
	}
	if flags.Changed("color") {
		cfg.Color = config.Color(o.color)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, errors.Wrap(err, "invalid flags")
	}
	if err := cfg.Apply(); err != nil {
		return config.Config{}, err
	}
	cliLogger.Debug("resolved configuration", "config", cfg)
	return cfg, nil
}

func settings(cfg config.Config) check.Settings {
	return check.Settings{MaxInferenceIterations: cfg.MaxInferenceIterations}
}

// colored decides whether diagnostics written to out are coloured.
func colored(cfg config.Config, out io.Writer) bool {
	switch cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	f, isFile := out.(*os.File)
	return isFile && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// loadFile checks the syntax tree stored at target on the local filesystem.
func loadFile(target string, settings check.Settings) (*gradual.Unit, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, errors.Wrap(err, "could not get absolute path of target")
	}
	return gradual.LoadUnit(os.DirFS(filepath.Dir(abs)), filepath.Base(abs), settings)
}

const (
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// printErrors writes one `path:line:col: (E0nn) message` line per error of unit.
func printErrors(w io.Writer, path string, unit *gradual.Unit, color bool) {
	for _, e := range unit.Errors().Errors() {
		location := path
		if pos := e.Pos(); pos.IsValid() {
			location = fmt.Sprintf("%s:%d:%d", path, pos.Line, pos.Col)
		}
		if color {
			_, _ = fmt.Fprintf(w, "%s%s:%s %s(E%03d)%s %s\n", ansiBold, location, ansiReset, ansiRed, e.Code(), ansiReset, e.Error())
			continue
		}
		_, _ = fmt.Fprintf(w, "%s: %s\n", location, ilerr.FormatWithCode(e))
	}
}
