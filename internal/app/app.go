// Package app wires the configuration, the calculator factory and the front
// ends (one-shot CLI, prime search, REPL, TUI and HTTP server) together.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/uintcalc/internal/calc"
	"github.com/agbru/uintcalc/internal/cli"
	"github.com/agbru/uintcalc/internal/config"
	apperrors "github.com/agbru/uintcalc/internal/errors"
	"github.com/agbru/uintcalc/internal/logging"
	"github.com/agbru/uintcalc/internal/server"
	"github.com/agbru/uintcalc/internal/tui"
	"github.com/agbru/uintcalc/internal/ui"
)

// Application represents the uintcalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   calc.CalculatorFactory
	ErrWriter io.Writer
	// In is the REPL input; nil means os.Stdin.
	In io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f calc.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader the REPL consumes.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = calc.NewDefaultFactory()
	}

	programName := "uintcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	app.Config = config.ApplyAdaptiveDefaults(cfg, app.searchBits())
	return app, nil
}

// searchBits is the width the adaptive defaults are estimated for: the
// prime size when searching, otherwise the selected width.
func (a *Application) searchBits() int {
	if a.Config.Prime > 0 {
		return a.Config.Prime
	}
	if c, err := a.Factory.Get(a.Config.Width); err == nil {
		return c.Bits()
	}
	return 0
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	level, _ := logging.ParseLevel(a.Config.LogLevel)
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	switch {
	case a.Config.Serve != "":
		return a.runServer(ctx)
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.Prime > 0:
		return a.runPrime(ctx, out)
	case a.Config.Expr != "":
		return a.runCalculate(ctx, out)
	default:
		return a.runREPL(out)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the full-screen calculator.
func (a *Application) runTUI(ctx context.Context) int {
	return tui.Run(ctx, a.Factory, a.Config, Version)
}

// runREPL starts the line-oriented calculator on stdin.
func (a *Application) runREPL(out io.Writer) int {
	repl, err := cli.NewREPL(a.Factory, cli.REPLConfig{
		Width:       a.Config.Width,
		Format:      a.format(),
		Strict:      a.Config.Strict,
		Repetitions: a.Config.Repetitions,
		Workers:     a.Config.Workers,
		Timeout:     a.Config.Timeout,
	})
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	in := a.In
	if in == nil {
		in = os.Stdin
	}
	repl.SetInput(in)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runServer serves the HTTP API until ctx is canceled.
func (a *Application) runServer(ctx context.Context) int {
	logger := logging.NewLogger(a.ErrWriter, "server")
	srv := server.NewServer(a.Factory, server.Config{
		Addr:         a.Config.Serve,
		DefaultWidth: a.Config.Width,
		Timeout:      a.Config.Timeout,
		Security:     server.DefaultSecurityConfig(),
	}, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("server failed", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// format returns the output format selected on the command line.
func (a *Application) format() calc.Format {
	return calc.Format{Radix: a.Config.Radix, Stride: a.Config.Stride, Delimiter: a.Config.Delimiter}
}

// primeWidth names the width registered for a prime of the given size.
func primeWidth(bits int) string {
	return "u" + strconv.Itoa(bits)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
