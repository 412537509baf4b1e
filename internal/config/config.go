// Package config defines the application configuration and parses it from
// command-line flags and UINTCALC_* environment variables.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/uintcalc/internal/errors"
	"github.com/agbru/uintcalc/internal/logging"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "UINTCALC_"

// AllWidths selects every registered width in one-shot mode.
const AllWidths = "all"

// Default values for the configuration.
const (
	DefaultWidth     = "u256"
	DefaultRadix     = 10
	DefaultDelimiter = "_"
	DefaultTimeout   = 5 * time.Minute
	DefaultLogLevel  = "info"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Width is the registered width name, or AllWidths for cross-checking.
	Width string
	// Expr is a one-shot prefix expression such as "mul 2 3".
	Expr string
	// Radix is the output radix and the default input radix.
	Radix int
	// Stride groups output digits from the least-significant end; zero
	// disables grouping.
	Stride int
	// Delimiter separates digit groups.
	Delimiter string
	// Repetitions is the number of random Miller-Rabin witnesses; zero
	// selects a count based on the width.
	Repetitions int
	// Strict turns raised status flags into errors.
	Strict bool
	// Prime is the bit size of a prime to search for; zero disables the
	// search.
	Prime int
	// Workers is the number of prime-search goroutines; zero selects one
	// per CPU.
	Workers int
	// Timeout bounds a one-shot evaluation or a prime search.
	Timeout time.Duration
	// REPL starts the interactive line-oriented calculator.
	REPL bool
	// TUI starts the full-screen calculator.
	TUI bool
	// Serve is the HTTP listen address; empty disables the server.
	Serve string
	// Quiet prints bare results only.
	Quiet bool
	// Verbose prints timings and digit layouts.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// LogLevel is the zerolog level name.
	LogLevel string
	// OutputFile receives a copy of the result when set.
	OutputFile string
	// Completion is a shell name for which to print a completion script.
	Completion string
}

// ParseConfig parses args (without the program name) into an AppConfig,
// applies environment overrides for flags that were not set explicitly, and
// validates the result. Positional arguments form the expression when -e is
// not given, so "uintcalc mul 2 3" works.
//
// Parameters:
//   - programName: The name shown in usage messages.
//   - args: The command-line arguments.
//   - errWriter: The destination of usage and parse errors.
//   - availableWidths: The names registered in the calculator factory.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for -h, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableWidths []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	widthHelp := fmt.Sprintf("Integer width: %s, or %q to cross-check every width.", strings.Join(availableWidths, ", "), AllWidths)
	fs.StringVar(&cfg.Width, "width", DefaultWidth, widthHelp)
	fs.StringVar(&cfg.Width, "w", DefaultWidth, "Shorthand for --width.")
	fs.StringVar(&cfg.Expr, "expr", "", `Evaluate one expression, e.g. "modpow 4 13 497".`)
	fs.StringVar(&cfg.Expr, "e", "", "Shorthand for --expr.")
	fs.IntVar(&cfg.Radix, "radix", DefaultRadix, "Output radix and default input radix (2-62).")
	fs.IntVar(&cfg.Stride, "stride", 0, "Group output digits by this many (0 disables grouping).")
	fs.StringVar(&cfg.Delimiter, "delim", DefaultDelimiter, "Separator between digit groups.")
	fs.IntVar(&cfg.Repetitions, "reps", 0, "Random Miller-Rabin witnesses (0 selects by width).")
	fs.BoolVar(&cfg.Strict, "strict", false, "Fail when an operation raises a status flag.")
	fs.IntVar(&cfg.Prime, "prime", 0, "Search for a random prime of this many bits.")
	fs.IntVar(&cfg.Workers, "workers", 0, "Prime-search workers (0 selects one per CPU).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Time limit for an evaluation or a prime search.")
	fs.BoolVar(&cfg.REPL, "repl", false, "Start the interactive calculator.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Start the full-screen calculator.")
	fs.StringVar(&cfg.Serve, "serve", "", "Serve the HTTP API on this address, e.g. :8080.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print bare results only.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Print timings and digit layouts.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colors (also honored: NO_COLOR).")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn or error.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Also write the result to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script for bash, zsh, fish or powershell.")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	applyEnvOverrides(&cfg, fs)
	if cfg.Expr == "" && fs.NArg() > 0 {
		cfg.Expr = strings.Join(fs.Args(), " ")
	}
	cfg.Width = strings.ToLower(strings.TrimSpace(cfg.Width))

	if err := cfg.Validate(availableWidths); err != nil {
		fmt.Fprintln(errWriter, err)
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - availableWidths: The names registered in the calculator factory.
//
// Returns:
//   - error: A ConfigError describing the first problem found, or nil.
func (c AppConfig) Validate(availableWidths []string) error {
	if c.Width != AllWidths && !slices.Contains(availableWidths, c.Width) {
		return apperrors.NewConfigError("unknown width %q; available: %s", c.Width, strings.Join(availableWidths, ", "))
	}
	if c.Radix < 2 || c.Radix > 62 {
		return apperrors.NewConfigError("radix %d is out of range [2, 62]", c.Radix)
	}
	if c.Stride < 0 {
		return apperrors.NewConfigError("stride must not be negative, got %d", c.Stride)
	}
	if c.Repetitions < 0 {
		return apperrors.NewConfigError("reps must not be negative, got %d", c.Repetitions)
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("workers must not be negative, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Prime < 0 {
		return apperrors.NewConfigError("prime bits must not be negative, got %d", c.Prime)
	}
	if c.Prime > 0 && !slices.Contains(availableWidths, "u"+strconv.Itoa(c.Prime)) {
		return apperrors.NewConfigError("no %d-bit width is registered for the prime search", c.Prime)
	}
	if c.Prime > 0 && c.Width == AllWidths {
		return apperrors.NewConfigError("--prime cannot be combined with --width %s", AllWidths)
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return apperrors.NewConfigError("unknown log level %q", c.LogLevel)
	}
	if c.Completion != "" && !slices.Contains([]string{"bash", "zsh", "fish", "powershell"}, c.Completion) {
		return apperrors.NewConfigError("unsupported shell %q for --completion", c.Completion)
	}

	modes := 0
	for _, on := range []bool{c.Expr != "", c.Prime > 0, c.REPL, c.TUI, c.Serve != ""} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("--expr, --prime, --repl, --tui and --serve are mutually exclusive")
	}
	if c.Width == AllWidths && (c.REPL || c.TUI || c.Serve != "") {
		return apperrors.NewConfigError("--width %s is only valid for one-shot expressions", AllWidths)
	}
	return nil
}
