package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/uintcalc/internal/calc"
)

// renderHelpOverlay renders the help box centered on the screen.
func renderHelpOverlay(width, height int, keys KeyMap, c calc.Calculator) string {
	overlayStyle := overlayBoxStyle.Width(min(76, max(width-4, 20)))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlayStyle.Render(buildHelpContent(keys, c)))
}

// buildHelpContent lists the commands, the key bindings and the operations
// of the current width.
func buildHelpContent(keys KeyMap, c calc.Calculator) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("UINTCALC - HELP"))
	b.WriteString("\n\n")

	b.WriteString(panelTitleStyle.Render("Commands"))
	b.WriteString("\n")
	b.WriteString(formatHelpLine("<op> <args>", "Evaluate on the current width"))
	b.WriteString(formatHelpLine("compare <op> <args>", "Evaluate on every width and cross-check"))
	b.WriteString(formatHelpLine("width <name>", "Switch width"))
	b.WriteString(formatHelpLine("radix <n> / stride <n> [sep]", "Change the output format"))
	b.WriteString(formatHelpLine("strict", "Toggle failing on raised flags"))
	b.WriteString(formatHelpLine("prime [bits]", "Search a random prime"))
	b.WriteString("\n")

	b.WriteString(panelTitleStyle.Render("Keys"))
	b.WriteString("\n")
	k := keys
	for _, binding := range []struct{ keys, desc string }{
		{k.Submit.Help().Key, k.Submit.Help().Desc},
		{k.Prev.Help().Key + " / " + k.Next.Help().Key, "recall inputs"},
		{k.NextWidth.Help().Key + " / " + k.PrevWidth.Help().Key, "cycle widths"},
		{k.PageUp.Help().Key + " / " + k.PageDown.Help().Key, "scroll history"},
		{k.Clear.Help().Key, k.Clear.Help().Desc},
		{k.Cancel.Help().Key, k.Cancel.Help().Desc},
		{k.Quit.Help().Key, k.Quit.Help().Desc},
	} {
		b.WriteString(formatHelpLine(binding.keys, binding.desc))
	}
	b.WriteString("\n")

	b.WriteString(panelTitleStyle.Render(fmt.Sprintf("Operations on %s", c.Name())))
	b.WriteString("\n")
	names := make([]string, 0, len(c.Ops()))
	for _, op := range c.Ops() {
		names = append(names, op.Name)
	}
	b.WriteString(metricLabelStyle.Render(strings.Join(names, " ")))
	b.WriteString("\n\n")
	b.WriteString(footerDescStyle.Render("Press f1 or esc to close this help"))
	return b.String()
}

func formatHelpLine(keyText, desc string) string {
	return fmt.Sprintf("  %s %s\n", footerKeyStyle.Render(fmt.Sprintf("%-30s", keyText)), footerDescStyle.Render(desc))
}
