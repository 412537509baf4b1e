// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatFlags].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/uintcalc/internal/biguint"
	"github.com/agbru/uintcalc/internal/calc"
	"github.com/agbru/uintcalc/internal/format"
	"github.com/agbru/uintcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints bare values only.
	Quiet bool
	// Verbose shows full values, timings and digit counts.
	Verbose bool
}

// FormatFlags renders a flag set with one color per severity: green for a
// clean result, yellow for wrapping and carries, red for division by zero
// and undefined results.
func FormatFlags(flags biguint.Flags) string {
	if flags == 0 {
		return ui.Colorize(ui.ColorGreen(), "none")
	}
	names := flags.Names()
	for i, name := range names {
		color := ui.ColorYellow()
		switch name {
		case "divided_by_zero", "undefined", "infinity":
			color = ui.ColorRed()
		}
		names[i] = ui.Colorize(color, name)
	}
	return strings.Join(names, "|")
}

// truncate shortens long values to their edges unless verbose is set.
func truncate(value string, verbose bool) string {
	if verbose || len(value) <= TruncationLimit {
		return value
	}
	return value[:DisplayEdges] + "..." + value[len(value)-DisplayEdges:] + " (truncated)"
}

// DisplayResult prints an evaluation: the values, the raised flags and, in
// verbose mode, the timing and digit counts.
//
// Parameters:
//   - result: The evaluation result.
//   - verbose: Whether to print full values and details.
//   - out: The output writer.
func DisplayResult(result calc.Result, verbose bool, out io.Writer) {
	for _, v := range result.Values {
		fmt.Fprintf(out, "%s=%s %s\n", ui.ColorBold(), ui.ColorReset(), ui.Colorize(ui.ColorGreen(), truncate(v, verbose)))
	}
	fmt.Fprintf(out, "  flags: %s\n", FormatFlags(result.Flags))
	if !verbose {
		if len(result.Values) > 0 && len(result.Values[0]) > TruncationLimit {
			fmt.Fprintf(out, "  %sTip: use -v to print the full value.%s\n", ui.ColorCyan(), ui.ColorReset())
		}
		return
	}
	fmt.Fprintf(out, "  width: %s%s%s, op: %s%s%s, time: %s%s%s\n",
		ui.ColorBlue(), result.Width, ui.ColorReset(),
		ui.ColorMagenta(), result.Op, ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())
	for i, v := range result.Values {
		fmt.Fprintf(out, "  value %d: %s characters\n", i+1, format.FormatNumberString(fmt.Sprint(len(v))))
	}
}

// FormatQuietResult formats a result for scripting: the values separated by
// spaces, nothing else.
func FormatQuietResult(result calc.Result) string {
	return result.Value()
}

// DisplayQuietResult outputs a result in quiet mode.
func DisplayQuietResult(out io.Writer, result calc.Result) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// WriteResultToFile writes a result with a short provenance header.
//
// Parameters:
//   - result: The evaluation result.
//   - expr: The evaluated expression.
//   - config: Output configuration; nothing is written without OutputFile.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result calc.Result, expr string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# uintcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Width: %s\n", result.Width)
	fmt.Fprintf(file, "# Expression: %s\n", expr)
	fmt.Fprintf(file, "# Flags: %s\n", result.Flags)
	fmt.Fprintf(file, "# Duration: %s\n", result.Duration)
	fmt.Fprintf(file, "\n")
	for _, v := range result.Values {
		fmt.Fprintln(file, v)
	}
	return file.Close()
}

// DisplayResultWithConfig displays a result in the configured mode and saves
// it to OutputFile when set.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, result calc.Result, expr string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result)
	} else {
		DisplayResult(result, config.Verbose, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(result, expr, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
