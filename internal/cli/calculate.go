package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/uintcalc/internal/calc"
	"github.com/agbru/uintcalc/internal/config"
	"github.com/agbru/uintcalc/internal/sysmon"
	"github.com/agbru/uintcalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the width and the expression or prime search, the timeout, and
// the processor features the arithmetic benefits from.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	if cfg.Prime > 0 {
		fmt.Fprintf(out, "Searching a %s%d-bit%s prime with %s%d%s witnesses and a timeout of %s%s%s.\n",
			ui.ColorMagenta(), cfg.Prime, ui.ColorReset(),
			ui.ColorCyan(), cfg.Repetitions, ui.ColorReset(),
			ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Evaluating %s%s%s on %s%s%s with a timeout of %s%s%s.\n",
			ui.ColorMagenta(), cfg.Expr, ui.ColorReset(),
			ui.ColorBlue(), cfg.Width, ui.ColorReset(),
			ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "CPU features: %s%s%s.\n", ui.ColorCyan(), sysmon.FeatureSummary(), ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single width vs
// cross-check of every width).
//
// Parameters:
//   - calculators: The calculators that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(calculators []calc.Calculator, out io.Writer) {
	var modeDesc string
	if len(calculators) > 1 {
		modeDesc = fmt.Sprintf("Parallel cross-check of %d widths", len(calculators))
	} else {
		c := calculators[0]
		modeDesc = fmt.Sprintf("Single evaluation on %s%s%s (%d bits, %d-bit digits)",
			ui.ColorGreen(), c.Name(), ui.ColorReset(), c.Bits(), c.DigitBits())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
