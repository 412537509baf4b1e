// Package tui implements the full-screen calculator: an expression input
// with recall, a scrollable history, a panel of the raised status flags and
// live runtime statistics.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/uintcalc/internal/calc"
	"github.com/agbru/uintcalc/internal/config"
	apperrors "github.com/agbru/uintcalc/internal/errors"
	"github.com/agbru/uintcalc/internal/metrics"
	"github.com/agbru/uintcalc/internal/orchestration"
	"github.com/agbru/uintcalc/internal/sysmon"
)

// Layout constants for the TUI.
const (
	headerHeight             = 1
	inputHeight              = 3
	footerHeight             = 1
	minBodyHeight            = 10
	HistoryPanelWidthPercent = 62
	FlagsPanelHeight         = 10
)

// tickInterval is the sampling period of the runtime statistics.
const tickInterval = 500 * time.Millisecond

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-inputHeight-footerHeight, minBodyHeight)
}

// historyWidth returns the width allocated to the history panel.
func (l LayoutManager) historyWidth() int {
	return l.width * HistoryPanelWidthPercent / 100
}

// rightWidth returns the width allocated to the right column (flags + metrics).
func (l LayoutManager) rightWidth() int {
	return l.width - l.historyWidth()
}

// metricsHeight returns the height allocated to the metrics panel.
func (l LayoutManager) metricsHeight() int {
	return l.bodyHeight() - FlagsPanelHeight
}

// Session holds the evaluation settings the user can change at run time.
type Session struct {
	factory     calc.CalculatorFactory
	widths      []string
	current     calc.Calculator
	format      calc.Format
	strict      bool
	repetitions int
	workers     int
	timeout     time.Duration
}

// Model is the root bubbletea model of the calculator.
type Model struct {
	header  HeaderModel
	history HistoryModel
	flags   FlagsModel
	metrics MetricsModel
	footer  FooterModel
	input   InputModel

	keymap KeyMap

	Session
	LayoutManager

	parentCtx  context.Context
	cancelTask context.CancelFunc
	generation uint64
	busy       bool
	showHelp   bool
	ref        *programRef
}

// NewModel creates a new TUI model on the width named by cfg.Width.
func NewModel(parentCtx context.Context, factory calc.CalculatorFactory, cfg config.AppConfig, version string) (Model, error) {
	current, err := factory.Get(cfg.Width)
	if err != nil {
		return Model{}, err
	}
	keymap := DefaultKeyMap()
	m := Model{
		header:  NewHeaderModel(version),
		history: NewHistoryModel(),
		flags:   NewFlagsModel(),
		metrics: NewMetricsModel(),
		footer:  NewFooterModel(keymap.footerBindings()),
		input:   NewInputModel(),
		keymap:  keymap,
		Session: Session{
			factory:     factory,
			widths:      factory.List(),
			current:     current,
			format:      calc.Format{Radix: cfg.Radix, Stride: cfg.Stride, Delimiter: cfg.Delimiter},
			strict:      cfg.Strict,
			repetitions: cfg.Repetitions,
			workers:     cfg.Workers,
			timeout:     cfg.Timeout,
		},
		parentCtx: parentCtx,
		ref:       &programRef{},
	}
	if m.format.Radix == 0 {
		m.format = calc.DefaultFormat
	}
	if m.timeout <= 0 {
		m.timeout = config.DefaultTimeout
	}
	m.header.SetCalculatorInfo(current.Name(), current.Bits(), current.DigitBits())
	m.history.AddInfo(fmt.Sprintf("Width %s. Press f1 for help.", current.Name()))
	return m, nil
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), watchContextCmd(m.parentCtx))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case EvalResultMsg:
		m.showEvaluation(msg)
		return m, nil

	case ComparisonResultsMsg:
		m.history.AddComparison(msg.Results)
		return m, nil

	case PrimeResultMsg:
		r := msg.Result
		m.history.Add(Entry{Kind: EntryResult, Width: r.Width, Expr: "prime", Lines: []string{r.Value}, Duration: r.Duration})
		m.history.AddInfo(fmt.Sprintf("%d candidates tested on %d workers", r.Candidates, r.Workers))
		return m, nil

	case ProgressMsg:
		m.metrics.UpdateProgress(msg)
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ErrorMsg:
		m.history.AddError("", msg.Err)
		m.footer.SetError(true)
		return m, nil

	case TaskDoneMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a superseded task
		}
		if msg.ExitCode == apperrors.ExitErrorMismatch {
			m.history.AddError("compare", errors.New("widths of equal size disagree"))
			m.footer.SetError(true)
		}
		m.finishTask()
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil

	case contextDoneMsg:
		m.stopTask()
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Quit) {
		m.stopTask()
		return m, tea.Quit
	}
	if m.showHelp {
		if key.Matches(msg, m.keymap.Help) || key.Matches(msg, m.keymap.Cancel) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
	case key.Matches(msg, m.keymap.Cancel):
		if m.busy {
			m.stopTask()
			m.history.AddInfo("canceled")
		}
	case key.Matches(msg, m.keymap.Submit):
		if m.busy {
			return m, nil
		}
		return m.execute(m.input.Submit())
	case key.Matches(msg, m.keymap.Prev):
		m.input.Prev()
	case key.Matches(msg, m.keymap.Next):
		m.input.Next()
	case key.Matches(msg, m.keymap.NextWidth):
		m.cycleWidth(1)
	case key.Matches(msg, m.keymap.PrevWidth):
		m.cycleWidth(-1)
	case key.Matches(msg, m.keymap.PageUp):
		m.history.Scroll(m.history.visibleRows())
	case key.Matches(msg, m.keymap.PageDown):
		m.history.Scroll(-m.history.visibleRows())
	case key.Matches(msg, m.keymap.Clear):
		m.history.Reset()
		m.flags.Set("", 0)
		m.footer.SetError(false)
	default:
		m.input.HandleKey(msg)
	}
	return m, nil
}

// execute runs a command line: a session command, a background task or an
// expression on the current width.
func (m Model) execute(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return m, nil
	}
	args := fields[1:]

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		m.stopTask()
		return m, tea.Quit
	case "help":
		m.showHelp = true
	case "clear":
		m.history.Reset()
		m.flags.Set("", 0)
	case "width":
		if len(args) != 1 {
			m.history.AddInfo("available widths: " + strings.Join(m.widths, ", "))
			return m, nil
		}
		m.setWidth(strings.ToLower(args[0]))
	case "radix":
		m.setRadix(args)
	case "stride":
		m.setStride(args)
	case "strict":
		m.strict = !m.strict
		m.history.AddInfo(fmt.Sprintf("strict mode %t", m.strict))
	case "prime":
		return m.startPrimeSearch(args)
	case "compare":
		return m.startComparison(strings.Join(args, " "))
	default:
		req, err := m.request(line)
		if err != nil {
			m.history.AddError(line, err)
			return m, nil
		}
		return m, evalCmd(m.parentCtx, m.current, req, line, m.timeout)
	}
	return m, nil
}

func (m Model) request(line string) (calc.Request, error) {
	req, err := calc.ParseExpression(line)
	if err != nil {
		return req, err
	}
	req.Format = m.format
	req.Strict = m.strict
	req.Repetitions = m.repetitions
	return req, nil
}

func (m *Model) showEvaluation(msg EvalResultMsg) {
	var arith apperrors.ArithmeticError
	switch {
	case msg.Err == nil:
		m.metrics.RecordEvaluation(msg.Result.Duration)
		m.history.Add(Entry{Kind: EntryResult, Width: msg.Result.Width, Expr: msg.Expr, Lines: msg.Result.Values, Flags: msg.Result.Flags, Duration: msg.Result.Duration})
		m.flags.Set(msg.Result.Op, msg.Result.Flags)
		m.footer.SetError(false)
	case errors.As(msg.Err, &arith):
		m.history.AddError(msg.Expr, msg.Err)
		m.flags.Set(msg.Result.Op, msg.Result.Flags)
		m.footer.SetError(true)
	default:
		m.history.AddError(msg.Expr, msg.Err)
		m.footer.SetError(true)
	}
}

func (m *Model) setWidth(name string) {
	c, err := m.factory.Get(name)
	if err != nil {
		m.history.AddError("width "+name, err)
		return
	}
	m.current = c
	m.header.SetCalculatorInfo(c.Name(), c.Bits(), c.DigitBits())
	m.history.AddInfo(fmt.Sprintf("width %s (%d bits)", c.Name(), c.Bits()))
}

func (m *Model) cycleWidth(step int) {
	if len(m.widths) == 0 {
		return
	}
	i := slices.Index(m.widths, m.current.Name())
	next := ((i+step)%len(m.widths) + len(m.widths)) % len(m.widths)
	m.setWidth(m.widths[next])
}

func (m *Model) setRadix(args []string) {
	if len(args) != 1 {
		m.history.AddInfo(fmt.Sprintf("radix %d", m.format.Radix))
		return
	}
	radix, err := strconv.Atoi(args[0])
	if err != nil || radix < 2 || radix > 62 {
		m.history.AddError("radix "+args[0], apperrors.NewConfigError("radix must be in [2, 62]"))
		return
	}
	m.format.Radix = radix
	m.history.AddInfo(fmt.Sprintf("radix %d", radix))
}

func (m *Model) setStride(args []string) {
	if len(args) == 0 {
		m.history.AddInfo(fmt.Sprintf("stride %d, separator %q", m.format.Stride, m.format.Delimiter))
		return
	}
	stride, err := strconv.Atoi(args[0])
	if err != nil || stride < 0 {
		m.history.AddError("stride "+args[0], apperrors.NewConfigError("stride must be a non-negative integer"))
		return
	}
	m.format.Stride = stride
	if len(args) > 1 {
		m.format.Delimiter = args[1]
	}
	m.history.AddInfo(fmt.Sprintf("stride %d, separator %q", m.format.Stride, m.format.Delimiter))
}

// beginTask cancels any running task and returns the context and
// generation of a new one.
func (m *Model) beginTask() (context.Context, uint64) {
	m.stopTask()
	m.generation++
	ctx, cancel := context.WithCancel(m.parentCtx)
	m.cancelTask = cancel
	m.busy = true
	m.footer.SetBusy(true)
	return ctx, m.generation
}

func (m *Model) stopTask() {
	if m.cancelTask != nil {
		m.cancelTask()
		m.cancelTask = nil
	}
	m.finishTask()
}

func (m *Model) finishTask() {
	m.busy = false
	m.footer.SetBusy(false)
	m.metrics.StopSearch()
}

func (m Model) startPrimeSearch(args []string) (tea.Model, tea.Cmd) {
	searcher := m.current
	if len(args) > 0 {
		c, err := m.factory.Get("u" + args[0])
		if err != nil {
			m.history.AddError("prime "+args[0], err)
			return m, nil
		}
		searcher = c
	}
	ctx, gen := m.beginTask()
	m.metrics.StartSearch()
	m.history.AddInfo(fmt.Sprintf("searching a %d-bit prime...", searcher.Bits()))

	opts := orchestration.SearchOptions{Workers: m.workers, Repetitions: m.repetitions, Timeout: m.timeout}
	return m, primeSearchCmd(ctx, m.ref, searcher, opts, gen)
}

func (m Model) startComparison(line string) (tea.Model, tea.Cmd) {
	req, err := m.request(line)
	if err != nil {
		m.history.AddError("compare", err)
		return m, nil
	}
	ctx, gen := m.beginTask()
	m.history.AddInfo("compare " + line)
	calculators := orchestration.GetCalculatorsToRun(config.AllWidths, m.factory)
	return m, comparisonCmd(ctx, m.ref, calculators, req, m.timeout, gen)
}

// View renders the entire calculator.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.showHelp {
		return renderHelpOverlay(m.width, m.height, m.keymap, m.current)
	}

	rightCol := lipgloss.JoinVertical(lipgloss.Left, m.flags.View(), m.metrics.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.history.View(), rightCol)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		body,
		m.input.View(m.current.Name()+">", m.busy),
		m.footer.View(),
	)
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.input.SetWidth(m.width)
	m.history.SetSize(m.historyWidth(), m.bodyHeight())
	m.flags.SetSize(m.rightWidth(), FlagsPanelHeight)
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, factory calc.CalculatorFactory, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model, err := NewModel(ctx, factory, cfg, version)
	if err != nil {
		return apperrors.ExitErrorConfig
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.stopTask()
	}
	return apperrors.ExitSuccess
}

// evalCmd evaluates one request off the UI goroutine.
func evalCmd(ctx context.Context, c calc.Calculator, req calc.Request, expr string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		res, err := c.Eval(ctx, req)
		return EvalResultMsg{Expr: expr, Result: res, Err: err}
	}
}

// primeSearchCmd runs a prime search and reports through the bridge.
func primeSearchCmd(ctx context.Context, ref *programRef, searcher orchestration.PrimeSearcher, opts orchestration.SearchOptions, gen uint64) tea.Cmd {
	return func() tea.Msg {
		presenter := &TUIResultPresenter{ref: ref}
		start := time.Now()
		result, err := orchestration.SearchPrime(ctx, searcher, opts, &TUIProgressReporter{ref: ref}, io.Discard)
		if err != nil {
			return TaskDoneMsg{Generation: gen, ExitCode: presenter.HandleError(err, time.Since(start), io.Discard)}
		}
		presenter.PresentPrime(result, orchestration.PresentationOptions{}, io.Discard)
		return TaskDoneMsg{Generation: gen, ExitCode: apperrors.ExitSuccess}
	}
}

// comparisonCmd evaluates a request on every width and cross-checks the
// results.
func comparisonCmd(ctx context.Context, ref *programRef, calculators []calc.Calculator, req calc.Request, timeout time.Duration, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		presenter := &TUIResultPresenter{ref: ref}
		results := orchestration.ExecuteEvaluations(ctx, calculators, req, orchestration.NullProgressReporter{}, io.Discard)
		exitCode := orchestration.AnalyzeComparisonResults(results, orchestration.PresentationOptions{Quiet: true}, presenter, presenter, io.Discard)
		return TaskDoneMsg{Generation: gen, ExitCode: exitCode}
	}
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

var memCollector = metrics.NewMemoryCollector()

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg{
			Snapshot:     memCollector.Snapshot(),
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}

// contextDoneMsg reports that the parent context was canceled, for example
// by SIGINT.
type contextDoneMsg struct{}

// watchContextCmd waits for cancellation of the parent context.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return contextDoneMsg{}
	}
}
