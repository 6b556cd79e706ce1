package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Runner is what callers need from an Executor. Tests substitute fakes.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
	RunWithSpinner(ctx context.Context, message, name string, args ...string) error
}

// NotFoundError reports a binary missing from PATH.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v\n💡 Command '%s' not found. Please install it and try again", e.Err, e.Name)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// Executor runs external commands.
type Executor struct {
	stdout io.Writer
	stderr io.Writer
	env    []string
	dir    string

	// For mocking in tests
	commandFunc func(name string, args ...string) *exec.Cmd
}

// Options configures an Executor.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Env    []string // Additional environment variables
	Dir    string   // Working directory
}

// NewExecutor creates an executor. Nil options write to the process streams.
func NewExecutor(opts *Options) *Executor {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	return &Executor{
		stdout:      opts.Stdout,
		stderr:      opts.Stderr,
		env:         opts.Env,
		dir:         opts.Dir,
		commandFunc: exec.Command,
	}
}

// Run executes a command, streaming its output to the executor's writers.
// Writers holding a partial line, such as a PrefixWriter, are flushed once
// the command exits.
func (e *Executor) Run(ctx context.Context, name string, args ...string) error {
	err := e.run(ctx, e.stdout, e.stderr, name, args...)
	flush(e.stdout)
	flush(e.stderr)
	return err
}

type flusher interface {
	Flush() error
}

func flush(w io.Writer) {
	if f, ok := w.(flusher); ok {
		_ = f.Flush()
	}
}

func (e *Executor) run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s cancelled: %w", name, err)
	}

	cmd := e.commandFunc(name, args...)
	if e.dir != "" {
		cmd.Dir = e.dir
	}
	if len(e.env) > 0 {
		base := cmd.Env
		if base == nil {
			base = os.Environ()
		}
		cmd.Env = append(base, e.env...)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		if isCommandNotFound(err) {
			return &NotFoundError{Name: name, Err: err}
		}
		return fmt.Errorf("failed to start %s: %w", name, err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		<-errCh
		return fmt.Errorf("%s cancelled: %w", name, ctx.Err())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%s failed: %w", name, err)
		}
		return nil
	}
}

// RunWithSpinner runs a command behind a spinner. Output is captured and
// written to stderr only if the command fails.
func (e *Executor) RunWithSpinner(ctx context.Context, message, name string, args ...string) error {
	var captured bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- e.run(ctx, &captured, &captured, name, args...)
	}()

	p := tea.NewProgram(newProgressModel(message),
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(e.stderr),
	)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		_, _ = p.Run()
	}()

	err := <-done
	p.Send(doneMsg{err: err})
	<-finished

	if err != nil && captured.Len() > 0 {
		_, _ = e.stderr.Write(captured.Bytes())
	}
	return err
}

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// progressModel shows a spinner next to message until a doneMsg arrives.
type progressModel struct {
	spin    spinner.Model
	message string
	result  *doneMsg
}

type doneMsg struct {
	err error
}

func newProgressModel(message string) progressModel {
	return progressModel{
		spin:    spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(spinnerStyle)),
		message: message,
	}
}

func (m progressModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.result != nil {
		return m, nil
	}
	if done, ok := msg.(doneMsg); ok {
		m.result = &done
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m progressModel) View() string {
	switch {
	case m.result == nil:
		return m.spin.View() + " " + m.message + "..."
	case m.result.err != nil:
		return failStyle.Render("✖ "+m.message) + "\n"
	default:
		return doneStyle.Render("✔ "+m.message) + "\n"
	}
}

func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) ||
		strings.Contains(err.Error(), "executable file not found")
}
