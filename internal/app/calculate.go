package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/uintcalc/internal/calc"
	"github.com/agbru/uintcalc/internal/cli"
	apperrors "github.com/agbru/uintcalc/internal/errors"
	"github.com/agbru/uintcalc/internal/logging"
	"github.com/agbru/uintcalc/internal/metrics"
	"github.com/agbru/uintcalc/internal/orchestration"
)

// runCalculate evaluates the one-shot expression on the selected width, or
// on every width when cross-checking.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	req, err := calc.ParseExpression(a.Config.Expr)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	req.Format = a.format()
	req.Strict = a.Config.Strict
	req.Repetitions = a.Config.Repetitions

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Width, a.Factory)
	if len(calculatorsToRun) == 0 {
		fmt.Fprintf(a.ErrWriter, "Error: no width matches %q\n", a.Config.Width)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()

	var exitCode int
	if len(calculatorsToRun) > 1 {
		exitCode = a.runComparison(ctx, calculatorsToRun, req, out)
	} else {
		exitCode = a.runSingle(ctx, calculatorsToRun[0], req, out)
	}

	if a.Config.Verbose && !a.Config.Quiet {
		cli.DisplayMemoryStats(collector.Snapshot().Since(before), out)
	}
	return exitCode
}

// runSingle evaluates req on one width and prints or saves the result.
func (a *Application) runSingle(ctx context.Context, c calc.Calculator, req calc.Request, out io.Writer) int {
	start := time.Now()
	res, err := c.Eval(ctx, req)
	if err != nil {
		var arith apperrors.ArithmeticError
		if errors.As(err, &arith) && len(res.Values) > 0 && !a.Config.Quiet {
			cli.DisplayResult(res, a.Config.Verbose, out)
		}
		return cli.CLIResultPresenter{}.HandleError(err, time.Since(start), out)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	if err := cli.DisplayResultWithConfig(out, res, a.Config.Expr, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runComparison evaluates req on every width concurrently and checks that
// widths of equal size agree.
func (a *Application) runComparison(ctx context.Context, calculators []calc.Calculator, req calc.Request, out io.Writer) int {
	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}
	results := orchestration.ExecuteEvaluations(ctx, calculators, req, reporter, progressOut)

	presOpts := orchestration.PresentationOptions{
		Verbose: a.Config.Verbose,
		Quiet:   a.Config.Quiet,
	}
	return orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)
}

// runPrime searches a random prime of the configured size.
func (a *Application) runPrime(ctx context.Context, out io.Writer) int {
	searcher, err := a.Factory.Get(primeWidth(a.Config.Prime))
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	opts := orchestration.SearchOptions{
		Workers:     a.Config.Workers,
		Repetitions: a.Config.Repetitions,
		Timeout:     a.Config.Timeout,
		Logger:      a.logger(),
	}
	start := time.Now()
	result, err := orchestration.SearchPrime(ctx, searcher, opts, reporter, progressOut)
	if err != nil {
		return cli.CLIResultPresenter{}.HandleError(err, time.Since(start), out)
	}

	presOpts := orchestration.PresentationOptions{Verbose: a.Config.Verbose, Quiet: a.Config.Quiet}
	cli.CLIResultPresenter{}.PresentPrime(result, presOpts, out)

	if a.Config.OutputFile != "" {
		res := calc.Result{Op: "prime", Width: result.Width, Values: []string{result.Value}, Duration: result.Duration}
		if err := cli.WriteResultToFile(res, fmt.Sprintf("prime %d", a.Config.Prime), cli.OutputConfig{OutputFile: a.Config.OutputFile}); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
	}
	return apperrors.ExitSuccess
}

// logger returns a console logger on the error writer, or a no-op logger in
// quiet mode.
func (a *Application) logger() logging.Logger {
	if a.Config.Quiet {
		return logging.NopLogger{}
	}
	return logging.NewConsoleLogger(a.ErrWriter, "uintcalc", a.Config.NoColor)
}
