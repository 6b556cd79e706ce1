package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	mu          sync.Mutex
	stdout      io.Writer = os.Stdout
	stderr      io.Writer = os.Stderr
	verboseMode bool
)

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// IsVerbose reports whether verbose output is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verboseMode
}

// SetWriters redirects standard and error output. Nil keeps the current writer.
// Tests use this to capture output.
func SetWriters(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// Stdout returns the writer used for regular output.
func Stdout() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return stdout
}

// Success prints a success message in green.
// Use this for completed operations.
//
// Example:
//
//	output.Success("Created project: myapp")
func Success(msg string) {
	writeLine(Stdout(), successStyle.Render("🎉 "+msg))
}

// Error prints an error message in red to stderr.
// Use this for failures that need user attention.
func Error(msg string) {
	mu.Lock()
	w := stderr
	mu.Unlock()
	writeLine(w, errorStyle.Render("❌ "+msg))
}

// Warn prints a warning in yellow. The run continues.
func Warn(msg string) {
	writeLine(Stdout(), warnStyle.Render("⚠️  "+msg))
}

// Info prints an informational message in cyan.
// Use this for status updates or explanations.
func Info(msg string) {
	writeLine(Stdout(), infoStyle.Render("ℹ️  "+msg))
}

// Step prints an indented step message in gray.
// Use this for actionable next steps or sub-items.
//
// Example:
//
//	output.Step("cd myapp")
//	output.Step("npm run serve")
func Step(msg string) {
	writeLine(Stdout(), stepStyle.Render("   "+msg))
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	if IsVerbose() {
		writeLine(Stdout(), stepStyle.Render("🔍 "+msg))
	}
}

// Accent highlights a value (project names, paths) inside a message.
func Accent(s string) string {
	return accentStyle.Render(s)
}

func writeLine(w io.Writer, s string) {
	fmt.Fprintln(w, s)
}
