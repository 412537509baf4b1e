package tui

import (
	"strings"

	"github.com/agbru/uintcalc/internal/biguint"
)

// allFlags lists the status flags in display order.
var allFlags = []biguint.Flags{
	biguint.Overflow,
	biguint.Underflow,
	biguint.Infinity,
	biguint.DividedByZero,
	biguint.Undefined,
	biguint.LeftCarry,
	biguint.RightCarry,
}

// FlagsModel shows which status flags the last evaluation raised.
type FlagsModel struct {
	flags  biguint.Flags
	op     string
	width  int
	height int
}

// NewFlagsModel creates a panel with no flag raised.
func NewFlagsModel() FlagsModel {
	return FlagsModel{}
}

// SetSize updates dimensions.
func (f *FlagsModel) SetSize(w, h int) {
	f.width = w
	f.height = h
}

// Set records the flags of the last evaluation of op.
func (f *FlagsModel) Set(op string, flags biguint.Flags) {
	f.op = op
	f.flags = flags
}

// Flags returns the displayed flags.
func (f FlagsModel) Flags() biguint.Flags { return f.flags }

// View renders one line per flag, lit when raised.
func (f FlagsModel) View() string {
	var b strings.Builder
	title := "Flags"
	if f.op != "" {
		title += " (" + f.op + ")"
	}
	b.WriteString(panelTitleStyle.Render(title))
	for _, flag := range allFlags {
		b.WriteString("\n ")
		if f.flags.Has(flag) {
			b.WriteString(flagOnStyle.Render("● " + flag.String()))
		} else {
			b.WriteString(flagOffStyle.Render("○ " + flag.String()))
		}
	}
	return panelStyle.
		Width(max(f.width-2, 0)).
		Height(max(f.height-2, 0)).
		Render(b.String())
}
