package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	checkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// promptModel is a bubbletea model that produces one answer.
type promptModel interface {
	tea.Model
	answer() any
	aborted() bool
}

// TerminalAsker asks prompts interactively.
type TerminalAsker struct {
	in  *os.File
	out io.Writer
}

// NewTerminalAsker returns an asker bound to the process stdin and stdout.
func NewTerminalAsker() *TerminalAsker {
	return &TerminalAsker{in: os.Stdin, out: os.Stdout}
}

// Interactive reports whether the asker's input is a terminal.
func (t *TerminalAsker) Interactive() bool {
	return t.in != nil && term.IsTerminal(int(t.in.Fd()))
}

// Ask implements Asker.
func (t *TerminalAsker) Ask(ctx context.Context, p *Prompt, _ Answers) (any, error) {
	if !t.Interactive() {
		return nil, ErrNotInteractive
	}

	model, err := newPromptModel(p)
	if err != nil {
		return nil, err
	}

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to show prompt: %w", err)
	}

	result := final.(promptModel)
	if result.aborted() {
		return nil, ErrAborted
	}
	return result.answer(), nil
}

// newPromptModel picks the model for the prompt's kind.
func newPromptModel(p *Prompt) (promptModel, error) {
	switch p.Kind {
	case KindList:
		if len(p.Choices) == 0 {
			return nil, ErrNoChoices
		}
		return newSelectModel(p), nil
	case KindCheckbox:
		return newCheckboxModel(p), nil
	case KindConfirm:
		return newConfirmModel(p), nil
	case KindInput:
		return newTextModel(p), nil
	default:
		return nil, fmt.Errorf("prompt %q: unknown kind %q", p.Name, p.Kind)
	}
}

// header renders the question line, with the answer once one is chosen.
func header(message, answer string, done bool) string {
	line := promptStyle.Render("? "+message) + " "
	if done {
		line += answerStyle.Render(answer)
	}
	return line + "\n"
}
