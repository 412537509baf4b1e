package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/uintcalc/internal/calc"
	"github.com/agbru/uintcalc/internal/config"
	"github.com/agbru/uintcalc/internal/orchestration"
)

// TestPrintExecutionConfig tests the PrintExecutionConfig function.
func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()

	t.Run("Expression", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionConfig(config.AppConfig{Width: "u512", Expr: "mul 2 3", Timeout: time.Minute}, &buf)
		output := buf.String()
		for _, want := range []string{"Evaluating mul 2 3 on u512", "1m0s", "logical processors", "CPU features:"} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("Prime search", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionConfig(config.AppConfig{Prime: 256, Repetitions: 20, Timeout: time.Minute}, &buf)
		if !strings.Contains(buf.String(), "256-bit prime with 20 witnesses") {
			t.Errorf("output = %q", buf.String())
		}
	})
}

// TestPrintExecutionMode tests the PrintExecutionMode function.
func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	factory := calc.GlobalFactory()

	t.Run("Single width mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionMode([]calc.Calculator{factory.MustGet("u128x16")}, &buf)
		if !strings.Contains(buf.String(), "u128x16 (128 bits, 16-bit digits)") {
			t.Errorf("output = %q", buf.String())
		}
	})

	t.Run("All widths mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		calculators := orchestration.GetCalculatorsToRun(config.AllWidths, factory)
		PrintExecutionMode(calculators, &buf)
		if !strings.Contains(buf.String(), "Parallel cross-check") {
			t.Errorf("output = %q", buf.String())
		}
	})
}
