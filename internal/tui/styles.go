package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/uintcalc/internal/ui"
)

// Style variables for the TUI calculator.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle            lipgloss.Style
	panelTitleStyle       lipgloss.Style
	overlayBoxStyle       lipgloss.Style
	headerStyle           lipgloss.Style
	titleStyle            lipgloss.Style
	versionStyle          lipgloss.Style
	elapsedStyle          lipgloss.Style
	inputStyle            lipgloss.Style
	inputPromptStyle      lipgloss.Style
	inputPlaceholderStyle lipgloss.Style
	logTimeStyle          lipgloss.Style
	logWidthStyle         lipgloss.Style
	logExprStyle          lipgloss.Style
	logInfoStyle          lipgloss.Style
	logFlagStyle          lipgloss.Style
	logSuccessStyle       lipgloss.Style
	logErrorStyle         lipgloss.Style
	flagOnStyle           lipgloss.Style
	flagOffStyle          lipgloss.Style
	metricLabelStyle      lipgloss.Style
	metricValueStyle      lipgloss.Style
	chartBarStyle         lipgloss.Style
	footerKeyStyle        lipgloss.Style
	footerDescStyle       lipgloss.Style
	statusRunningStyle    lipgloss.Style
	statusDoneStyle       lipgloss.Style
	statusErrorStyle      lipgloss.Style
	cpuSparklineStyle     lipgloss.Style
	memSparklineStyle     lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Background(t.Bg).
		Foreground(t.Text)

	panelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Info)

	overlayBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Accent).
		Padding(1, 2).
		Align(lipgloss.Left)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Background(t.Bg).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	inputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Foreground(t.Text)

	inputPromptStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	logTimeStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	logWidthStyle = lipgloss.NewStyle().
		Foreground(t.Info)

	logExprStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	logInfoStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	logFlagStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	logSuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	logErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	flagOnStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	flagOffStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	metricLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	metricValueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	chartBarStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusRunningStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	statusDoneStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	statusErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	cpuSparklineStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	memSparklineStyle = lipgloss.NewStyle().
		Foreground(t.Warning)
}
