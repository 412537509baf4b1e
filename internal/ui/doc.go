// Package ui holds the color themes shared by the CLI, the REPL and the TUI.
// The CLI side uses raw ANSI codes through the Color* functions; the TUI side
// uses lipgloss colors through TUITheme. Both honor NO_COLOR and --no-color.
package ui
