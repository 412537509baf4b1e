package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every shell script is generated from flagRegistry, so adding a flag only
// requires appending to it.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "width")
	Short     string   // short flag without "-" (e.g., "w")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "radix", "duration")
	IsFile    bool     // true if the flag takes a file path
	IsWidth   bool     // true if values come from the width registry (dynamic)
	Section   string   // fish comment heading
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Short: "V", Help: "Show version information", Section: "Help and version"},
	{Long: "width", Short: "w", Help: "Integer width", IsWidth: true, ValueName: "width", Section: "Evaluation"},
	{Long: "expr", Short: "e", Help: "Expression to evaluate", ValueName: "expression", Section: "Evaluation"},
	{Long: "radix", Help: "Output and default input radix", Values: []string{"2", "8", "10", "16", "36", "62"}, ValueName: "radix", Section: "Evaluation"},
	{Long: "stride", Help: "Digits per group", Values: []string{"0", "3", "4", "8", "16"}, ValueName: "digits", Section: "Evaluation"},
	{Long: "delim", Help: "Digit group separator", Values: []string{"_", ",", "."}, ValueName: "separator", Section: "Evaluation"},
	{Long: "strict", Help: "Fail when a status flag is raised", Section: "Evaluation"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m", "30m"}, ValueName: "duration", Section: "Evaluation"},
	{Long: "prime", Help: "Search for a random prime of this many bits", Values: []string{"128", "256", "512", "1024", "2048", "4096"}, ValueName: "bits", Section: "Prime search"},
	{Long: "workers", Help: "Prime search workers", ValueName: "count", Section: "Prime search"},
	{Long: "reps", Help: "Miller-Rabin witnesses", Values: []string{"4", "10", "20", "40"}, ValueName: "count", Section: "Prime search"},
	{Long: "repl", Help: "Start the interactive calculator", Section: "Modes"},
	{Long: "tui", Help: "Start the full-screen calculator", Section: "Modes"},
	{Long: "serve", Help: "Serve the HTTP API", Values: []string{":8080", "127.0.0.1:8080"}, ValueName: "address", Section: "Modes"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "quiet", Short: "q", Help: "Print bare results", Section: "Output"},
	{Long: "verbose", Short: "v", Help: "Print timings and digit layouts", Section: "Output"},
	{Long: "no-color", Help: "Disable colors", Section: "Output"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level", Section: "Output"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell", Section: "Completion"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - widths: The registered width names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, widths []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, widths)
	case "zsh":
		return generateZshCompletion(out, widths)
	case "fish":
		return generateFishCompletion(out, widths)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, widths)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// flagNames returns the flag spellings, long first.
func flagNames(f FlagCompletion, longPrefix string) []string {
	var names []string
	if f.Long != "" {
		names = append(names, longPrefix+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func generateBashCompletion(out io.Writer, widths []string) error {
	var opts []string
	var cases strings.Builder
	writeCase := func(patterns []string, body string) {
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(patterns, "|"), body)
	}
	for _, f := range flagRegistry {
		names := flagNames(f, "--")
		opts = append(opts, names...)
		switch {
		case f.IsWidth:
			writeCase(names, `COMPREPLY=( $(compgen -W "${widths}" -- "${cur}") )`)
		case f.IsFile:
			writeCase(names, `COMPREPLY=( $(compgen -f -- "${cur}") )`)
		case len(f.Values) > 0:
			writeCase(names, fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")))
		}
	}

	_, err := fmt.Fprintf(out, `# Bash completion script for uintcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_uintcalc_completions() {
    local cur prev opts widths
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    widths="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _uintcalc_completions uintcalc
`, strings.Join(opts, " "), strings.Join(widths, " "), cases.String())
	if err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func generateZshCompletion(out io.Writer, widths []string) error {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	_, err := fmt.Fprintf(out, `#compdef uintcalc

# Zsh completion script for uintcalc
# Place this file in a directory of $fpath

_uintcalc() {
    local -a widths
    widths=(%s all)

    _arguments -s \
%s
}

_uintcalc "$@"
`, strings.Join(widths, " "), strings.Join(args, " \\\n"))
	if err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsWidth:
		valueSuffix = fmt.Sprintf(":%s:($widths)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func generateFishCompletion(out io.Writer, widths []string) error {
	lines := []string{
		"# Fish completion script for uintcalc",
		"# Add this to ~/.config/fish/completions/uintcalc.fish",
		"",
		"# Disable file completion by default",
		"complete -c uintcalc -f",
	}

	widthList := strings.Join(widths, " ")
	section := ""
	for _, f := range flagRegistry {
		if f.Section != section {
			section = f.Section
			lines = append(lines, "", "# "+section)
		}
		lines = append(lines, fishCompleteLine(f, widthList))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, widthList string) string {
	parts := []string{"complete -c uintcalc"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsWidth:
		parts = append(parts, fmt.Sprintf("-xa '%s all'", widthList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa \"%s\"", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func generatePowerShellCompletion(out io.Writer, widths []string) error {
	var optionEntries, switchEntries []string
	psList := func(values []string) string {
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = "'" + v + "'"
		}
		return strings.Join(quoted, ", ")
	}
	for _, f := range flagRegistry {
		for _, name := range flagNames(f, "--") {
			optionEntries = append(optionEntries, fmt.Sprintf("        @{Name = '%s'; Description = '%s' }", name, f.Help))
		}
		var source string
		switch {
		case f.IsWidth:
			source = "$uintcalcWidths"
		case len(f.Values) > 0:
			source = "@(" + psList(f.Values) + ")"
		default:
			continue
		}
		switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            %s | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, source))
	}

	_, err := fmt.Fprintf(out, `# PowerShell completion script for uintcalc
# Add this to your $PROFILE

$uintcalcWidths = @(%s, 'all')

Register-ArgumentCompleter -CommandName 'uintcalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, psList(widths), strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))
	return err
}
