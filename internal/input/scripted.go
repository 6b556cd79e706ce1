package input

import (
	"context"
	"fmt"
)

// ScriptedAsker answers prompts from a fixed map. Prompts without a scripted
// answer receive their default.
type ScriptedAsker struct {
	Answers map[string]any

	// Asked records the prompt names in the order they were asked.
	Asked []string
}

// NewScriptedAsker returns an asker that replays the given answers.
func NewScriptedAsker(answers map[string]any) *ScriptedAsker {
	return &ScriptedAsker{Answers: answers}
}

// Ask implements Asker.
func (s *ScriptedAsker) Ask(ctx context.Context, p *Prompt, _ Answers) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.Asked = append(s.Asked, p.Name)

	value, ok := s.Answers[p.Name]
	if !ok {
		return p.DefaultValue(), nil
	}

	switch p.Kind {
	case KindList:
		v, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidAnswer, p.Name, value)
		}
		if len(p.Choices) == 0 {
			return nil, ErrNoChoices
		}
		if !p.HasChoice(v) {
			return nil, fmt.Errorf("%w: %q is not a choice of %s", ErrInvalidAnswer, v, p.Name)
		}
		return v, nil
	case KindCheckbox:
		values := Answers{p.Name: value}.Strings(p.Name)
		if values == nil {
			return nil, fmt.Errorf("%w: %s expects a list, got %T", ErrInvalidAnswer, p.Name, value)
		}
		for _, v := range values {
			if !p.HasChoice(v) {
				return nil, fmt.Errorf("%w: %q is not a choice of %s", ErrInvalidAnswer, v, p.Name)
			}
		}
		return values, nil
	case KindConfirm:
		v, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects a bool, got %T", ErrInvalidAnswer, p.Name, value)
		}
		return v, nil
	default:
		v, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidAnswer, p.Name, value)
		}
		return v, nil
	}
}
