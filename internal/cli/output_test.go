package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/uintcalc/internal/biguint"
	"github.com/agbru/uintcalc/internal/calc"
)

func sampleResult(values ...string) calc.Result {
	return calc.Result{
		Op:       "add",
		Width:    "u256",
		Values:   values,
		Flags:    biguint.Overflow,
		Duration: 1500 * time.Microsecond,
	}
}

func TestFormatFlags(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		flags biguint.Flags
		want  string
	}{
		{"Clean", 0, "none"},
		{"Single", biguint.LeftCarry, "left_carry"},
		{"Combined", biguint.Overflow | biguint.DividedByZero, "overflow|divided_by_zero"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatFlags(tt.flags); got != tt.want {
				t.Errorf("FormatFlags(%v) = %q, want %q", tt.flags, got, tt.want)
			}
		})
	}
}

func TestDisplayResult(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("9", 200)

	tests := []struct {
		name        string
		result      calc.Result
		verbose     bool
		contains    []string
		notContains []string
	}{
		{
			name:     "Short value",
			result:   sampleResult("12345"),
			contains: []string{"= 12345", "flags: overflow"},
		},
		{
			name:     "Two values",
			result:   sampleResult("7", "3"),
			contains: []string{"= 7", "= 3"},
		},
		{
			name:        "Truncated output",
			result:      sampleResult(long),
			contains:    []string{"(truncated)", "Tip: use -v"},
			notContains: []string{long},
		},
		{
			name:        "Verbose output",
			result:      sampleResult(long),
			verbose:     true,
			contains:    []string{long, "width: u256", "op: add", "time: 1ms", "200 characters"},
			notContains: []string{"(truncated)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			DisplayResult(tt.result, tt.verbose, &buf)
			output := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("Expected output to contain %q, but got:\n%s", s, output)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(output, s) {
					t.Errorf("Expected output not to contain %q", s)
				}
			}
		})
	}
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayQuietResult(&buf, sampleResult("7", "3"))
	if got := buf.String(); got != "7 3\n" {
		t.Errorf("DisplayQuietResult = %q, want %q", got, "7 3\n")
	}
}

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	testCases := []struct {
		name       string
		outputFile string
		checkFunc  func(t *testing.T, filePath string)
	}{
		{
			name:       "Write result to file",
			outputFile: filepath.Join(tmpDir, "result.txt"),
			checkFunc: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				if err != nil {
					t.Fatalf("Failed to read output file: %v", err)
				}
				contentStr := string(content)
				for _, want := range []string{"# uintcalc result", "# Width: u256", "# Expression: add 2 3", "# Flags: overflow", "\n5\n"} {
					if !strings.Contains(contentStr, want) {
						t.Errorf("File should contain %q, got:\n%s", want, contentStr)
					}
				}
			},
		},
		{
			name:       "Empty output file (no write)",
			outputFile: "",
		},
		{
			name:       "Create nested directory",
			outputFile: filepath.Join(tmpDir, "nested", "dir", "result.txt"),
			checkFunc: func(t *testing.T, filePath string) {
				if _, err := os.Stat(filePath); err != nil {
					t.Errorf("File should exist in nested directory: %v", err)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := WriteResultToFile(sampleResult("5"), "add 2 3", OutputConfig{OutputFile: tc.outputFile})
			if err != nil {
				t.Fatalf("WriteResultToFile() error = %v", err)
			}
			if tc.checkFunc != nil {
				tc.checkFunc(t, tc.outputFile)
			}
		})
	}
}

func TestWriteResultToFileInvalidPath(t *testing.T) {
	t.Parallel()
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	err := WriteResultToFile(sampleResult("5"), "add 2 3", OutputConfig{OutputFile: filepath.Join(blocker, "result.txt")})
	if err == nil {
		t.Error("expected an error when a parent path is a file")
	}
}

func TestDisplayResultWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("Quiet with file", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "out.txt")
		if err := DisplayResultWithConfig(&buf, sampleResult("5"), "add 2 3", OutputConfig{OutputFile: path, Quiet: true}); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "5\n" {
			t.Errorf("quiet output = %q", buf.String())
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("result file missing: %v", err)
		}
	})

	t.Run("Normal with file", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "out.txt")
		if err := DisplayResultWithConfig(&buf, sampleResult("5"), "add 2 3", OutputConfig{OutputFile: path}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "Result saved to: "+path) {
			t.Errorf("output = %q", buf.String())
		}
	})
}
