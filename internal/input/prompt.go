package input

import (
	"context"
	"errors"
	"fmt"
)

// Kind selects how a prompt is presented and what type its answer has.
type Kind string

const (
	// KindList picks one choice; the answer is a string.
	KindList Kind = "list"
	// KindCheckbox picks any number of choices; the answer is a []string.
	KindCheckbox Kind = "checkbox"
	// KindConfirm asks yes or no; the answer is a bool.
	KindConfirm Kind = "confirm"
	// KindInput reads free text; the answer is a string.
	KindInput Kind = "input"
)

// Common prompt errors.
var (
	ErrNotInteractive = errors.New("stdin is not an interactive terminal")
	ErrAborted        = errors.New("prompt aborted")
	ErrNoChoices      = errors.New("prompt has no choices")
	ErrInvalidAnswer  = errors.New("invalid answer")
)

// Choice is one selectable entry of a list or checkbox prompt.
type Choice struct {
	Name        string
	Value       string
	Short       string
	Description string
	Link        string
	Checked     bool
}

// Label returns the short label, falling back to the name.
func (c Choice) Label() string {
	if c.Short != "" {
		return c.Short
	}
	return c.Name
}

// Prompt describes a single question.
type Prompt struct {
	Name     string
	Kind     Kind
	Message  string
	Choices  []Choice
	When     func(Answers) bool
	Default  any
	PageSize int
}

// AddChoice appends a choice.
func (p *Prompt) AddChoice(c Choice) {
	p.Choices = append(p.Choices, c)
}

// HasChoice reports whether a choice with the given value exists.
func (p *Prompt) HasChoice(value string) bool {
	for _, c := range p.Choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

// Validate checks that the prompt is well formed.
func (p *Prompt) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("prompt name cannot be empty")
	}
	switch p.Kind {
	case KindList, KindCheckbox, KindConfirm, KindInput:
		return nil
	default:
		return fmt.Errorf("prompt %q: unknown kind %q", p.Name, p.Kind)
	}
}

// DefaultValue returns the answer used when the user accepts the default.
func (p *Prompt) DefaultValue() any {
	switch p.Kind {
	case KindList:
		if s, ok := p.Default.(string); ok && p.HasChoice(s) {
			return s
		}
		if len(p.Choices) > 0 {
			return p.Choices[0].Value
		}
		return ""
	case KindCheckbox:
		if values, ok := p.Default.([]string); ok {
			return append([]string(nil), values...)
		}
		values := []string{}
		for _, c := range p.Choices {
			if c.Checked {
				values = append(values, c.Value)
			}
		}
		return values
	case KindConfirm:
		b, _ := p.Default.(bool)
		return b
	default:
		s, _ := p.Default.(string)
		return s
	}
}

// pageSize returns the configured page size or a sensible default.
func (p *Prompt) pageSize() int {
	if p.PageSize > 0 {
		return p.PageSize
	}
	return 10
}

// Asker answers one prompt given the answers collected so far.
type Asker interface {
	Ask(ctx context.Context, p *Prompt, answers Answers) (any, error)
}

// Run asks every prompt in order. A prompt whose When predicate returns false
// is skipped and contributes no answer. Any asker error stops the run.
func Run(ctx context.Context, asker Asker, prompts []*Prompt) (Answers, error) {
	answers := Answers{}
	for _, p := range prompts {
		if err := ctx.Err(); err != nil {
			return answers, err
		}
		if err := p.Validate(); err != nil {
			return answers, err
		}
		if p.When != nil && !p.When(answers.Clone()) {
			continue
		}

		value, err := asker.Ask(ctx, p, answers.Clone())
		if err != nil {
			return answers, fmt.Errorf("prompt %q: %w", p.Name, err)
		}
		answers[p.Name] = value
	}
	return answers, nil
}
