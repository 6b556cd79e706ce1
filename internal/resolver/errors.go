package resolver

import "fmt"

// PromptResolutionError reports that the preset prompts could not be
// answered: no terminal, user abort, or an invalid scripted answer.
type PromptResolutionError struct {
	Err error
}

func (e *PromptResolutionError) Error() string {
	return fmt.Sprintf("resolving preset: %v", e.Err)
}

func (e *PromptResolutionError) Unwrap() error {
	return e.Err
}

// UnsupportedPresetError reports a preset choice that has no implementation:
// neither a registry entry nor the manual path.
type UnsupportedPresetError struct {
	Name string
}

func (e *UnsupportedPresetError) Error() string {
	return fmt.Sprintf("preset %q is not supported", e.Name)
}
