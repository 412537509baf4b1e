// Package cli provides the command-line presentation layer: result and flag
// rendering, the progress spinner, shell completion scripts and the REPL
// (Read-Eval-Print Loop) for interactive evaluation.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/uintcalc/internal/biguint"
	"github.com/agbru/uintcalc/internal/calc"
	appconfig "github.com/agbru/uintcalc/internal/config"
	"github.com/agbru/uintcalc/internal/orchestration"
	"github.com/agbru/uintcalc/internal/sysmon"
	"github.com/agbru/uintcalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Width is the initial width name.
	Width string
	// Format is the initial output format and default input radix.
	Format calc.Format
	// Strict turns raised status flags into errors.
	Strict bool
	// Repetitions is the Miller-Rabin witness count; zero selects the default.
	Repetitions int
	// Workers is the number of prime-search goroutines; zero selects one per CPU.
	Workers int
	// Timeout is the maximum duration of each evaluation or prime search.
	Timeout time.Duration
}

// REPL represents an interactive calculator session.
type REPL struct {
	config  REPLConfig
	factory calc.CalculatorFactory
	current calc.Calculator
	last    biguint.Flags
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - factory: The registry of widths.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
//   - error: An error if the configured width is not registered.
func NewREPL(factory calc.CalculatorFactory, config REPLConfig) (*REPL, error) {
	current, err := factory.Get(config.Width)
	if err != nil {
		return nil, err
	}
	if config.Format.Radix == 0 {
		config.Format = calc.DefaultFormat
	}
	if config.Timeout <= 0 {
		config.Timeout = appconfig.DefaultTimeout
	}
	return &REPL{
		config:  config,
		factory: factory,
		current: current,
		in:      os.Stdin,
		out:     os.Stdout,
	}, nil
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+r.prompt()+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		eof := errors.Is(err, io.EOF)

		if input = strings.TrimSpace(input); input != "" {
			if !r.processCommand(input) {
				return
			}
		}
		if eof {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) prompt() string {
	return r.current.Name() + "> "
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %suintcalc - Fixed-Width Integer Calculator%s            %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<op> <args>%s       - Evaluate an operation, e.g. %smodpow 4 13 497%s\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %swidth <name>%s      - Change width (%s)\n", ui.ColorYellow(), ui.ColorReset(), strings.Join(r.factory.List(), ", "))
	fmt.Fprintf(r.out, "  %scompare <op> ...%s  - Evaluate on every width and cross-check\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sradix <n>%s         - Output and default input radix (2-62)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstride <n> [sep]%s  - Group output digits (0 disables)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstrict%s            - Toggle failing on raised flags\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sprime [bits]%s      - Search a random prime\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sops%s               - List operations of the current width\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sflags%s             - Show the flags raised by the last result\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s              - List available widths\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s            - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s              - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s       - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "width", "w":
		r.cmdWidth(args)
	case "compare":
		r.cmdCompare(args)
	case "radix":
		r.cmdRadix(args)
	case "stride":
		r.cmdStride(args)
	case "strict":
		r.config.Strict = !r.config.Strict
		fmt.Fprintf(r.out, "Strict mode: %s%t%s\n", ui.ColorGreen(), r.config.Strict, ui.ColorReset())
	case "prime":
		r.cmdPrime(args)
	case "ops":
		r.cmdOps()
	case "flags":
		r.cmdFlags()
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		r.evaluate(input)
	}

	return true
}

func (r *REPL) request(line string) (calc.Request, error) {
	req, err := calc.ParseExpression(line)
	if err != nil {
		return req, err
	}
	req.Format = r.config.Format
	req.Strict = r.config.Strict
	req.Repetitions = r.config.Repetitions
	return req, nil
}

// evaluate runs one expression on the current width.
func (r *REPL) evaluate(line string) {
	req, err := r.request(line)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	if _, ok := calc.Lookup(r.current, req.Op); !ok {
		fmt.Fprintf(r.out, "%sUnknown command or operation: %s%s\n", ui.ColorRed(), req.Op, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s or %sops%s to see what is available.\n",
			ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	result, err := r.current.Eval(ctx, req)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.last = result.Flags
	DisplayResult(result, false, r.out)
}

// cmdWidth handles the "width" command.
func (r *REPL) cmdWidth(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: width <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available widths: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}

	c, err := r.factory.Get(strings.ToLower(args[0]))
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		fmt.Fprintf(r.out, "Available widths: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}

	r.current = c
	fmt.Fprintf(r.out, "Width changed to: %s%s%s (%d bits)\n", ui.ColorGreen(), c.Name(), ui.ColorReset(), c.Bits())
}

// cmdCompare evaluates an expression on every width and checks that widths
// of equal size agree.
func (r *REPL) cmdCompare(args []string) {
	req, err := r.request(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(r.out, "%sUsage: compare <op> <args>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	calculators := orchestration.GetCalculatorsToRun(appconfig.AllWidths, r.factory)
	results := orchestration.ExecuteEvaluations(ctx, calculators, req, orchestration.NullProgressReporter{}, r.out)
	orchestration.AnalyzeComparisonResults(results, orchestration.PresentationOptions{}, CLIResultPresenter{}, CLIResultPresenter{}, r.out)
	fmt.Fprintln(r.out)
}

// cmdRadix handles the "radix" command.
func (r *REPL) cmdRadix(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: radix <2-62>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	radix, err := strconv.Atoi(args[0])
	if err != nil || radix < 2 || radix > 62 {
		fmt.Fprintf(r.out, "%sInvalid radix: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	r.config.Format.Radix = radix
	fmt.Fprintf(r.out, "Radix changed to: %s%d%s\n", ui.ColorGreen(), radix, ui.ColorReset())
}

// cmdStride handles the "stride" command.
func (r *REPL) cmdStride(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: stride <n> [separator]%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	stride, err := strconv.Atoi(args[0])
	if err != nil || stride < 0 {
		fmt.Fprintf(r.out, "%sInvalid stride: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	r.config.Format.Stride = stride
	if len(args) > 1 {
		r.config.Format.Delimiter = args[1]
	}
	fmt.Fprintf(r.out, "Grouping: %s%d%s digits separated by %q\n", ui.ColorGreen(), stride, ui.ColorReset(), r.config.Format.Delimiter)
}

// cmdPrime searches a random prime at the current width, or at the width
// named after the given bit count.
func (r *REPL) cmdPrime(args []string) {
	searcher := r.current
	if len(args) > 0 {
		c, err := r.factory.Get("u" + args[0])
		if err != nil {
			fmt.Fprintf(r.out, "%sNo %s-bit width is registered%s\n", ui.ColorRed(), args[0], ui.ColorReset())
			return
		}
		searcher = c
	}

	opts := orchestration.SearchOptions{
		Workers:     r.config.Workers,
		Repetitions: r.config.Repetitions,
		Timeout:     r.config.Timeout,
	}
	start := time.Now()
	result, err := orchestration.SearchPrime(context.Background(), searcher, opts, CLIProgressReporter{}, r.out)
	if err != nil {
		CLIResultPresenter{}.HandleError(err, time.Since(start), r.out)
		return
	}
	CLIResultPresenter{}.PresentPrime(result, orchestration.PresentationOptions{}, r.out)
}

// cmdOps lists the operations of the current width.
func (r *REPL) cmdOps() {
	fmt.Fprintf(r.out, "\n%sOperations on %s:%s\n", ui.ColorBold(), r.current.Name(), ui.ColorReset())
	for _, info := range r.current.Ops() {
		fmt.Fprintf(r.out, "  %s%-10s%s %s\n", ui.ColorYellow(), info.Name, ui.ColorReset(), info.Summary)
	}
	fmt.Fprintln(r.out)
}

// cmdFlags shows which status flags the last evaluation raised.
func (r *REPL) cmdFlags() {
	raised := r.last.Names()
	for _, name := range biguint.AllFlags.Names() {
		if slices.Contains(raised, name) {
			fmt.Fprintf(r.out, "  %s● %s%s\n", ui.ColorYellow(), name, ui.ColorReset())
		} else {
			fmt.Fprintf(r.out, "  ○ %s\n", name)
		}
	}
}

// cmdList handles the "list" command.
func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable widths:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		c, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		marker := "  "
		if name == r.current.Name() {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s %5d bits, %2d-bit digits\n", marker, ui.ColorYellow(), name, ui.ColorReset(), c.Bits(), c.DigitBits())
	}
	fmt.Fprintln(r.out)
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	stats := sysmon.Sample()
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Width:          %s%s%s (%d bits)\n", ui.ColorCyan(), r.current.Name(), ui.ColorReset(), r.current.Bits())
	fmt.Fprintf(r.out, "  Radix:          %s%d%s\n", ui.ColorCyan(), r.config.Format.Radix, ui.ColorReset())
	fmt.Fprintf(r.out, "  Grouping:       %s%d%s (%q)\n", ui.ColorCyan(), r.config.Format.Stride, ui.ColorReset(), r.config.Format.Delimiter)
	fmt.Fprintf(r.out, "  Strict:         %s%t%s\n", ui.ColorCyan(), r.config.Strict, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  CPU features:   %s%s%s\n", ui.ColorCyan(), sysmon.FeatureSummary(), ui.ColorReset())
	fmt.Fprintf(r.out, "  System:         CPU %.0f%%, memory %.0f%%\n", stats.CPUPercent, stats.MemPercent)
	fmt.Fprintln(r.out)
}
