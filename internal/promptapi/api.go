package promptapi

import (
	"fmt"

	"github.com/simonhull/firebird-suite/hatch/internal/input"
	"github.com/simonhull/firebird-suite/hatch/internal/logger"
)

// API is the injection surface handed to one prompt module.
type API struct {
	session  *Session
	pluginID string
}

// PluginID returns the id the API is bound to.
func (a *API) PluginID() string {
	return a.pluginID
}

// InjectFeature adds an entry to the feature checkbox. Selecting it adds this
// API's plugin to a manually assembled preset. A value that is already
// present is rejected and logged.
func (a *API) InjectFeature(feature input.Choice) error {
	s := a.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return ErrSessionFrozen
	}
	if owner, exists := s.owners[feature.Value]; exists {
		s.log.Warn("duplicate feature ignored",
			logger.F("feature", feature.Value),
			logger.F("plugin", a.pluginID),
			logger.F("owner", owner))
		return fmt.Errorf("%w: %s", ErrDuplicateFeature, feature.Value)
	}

	s.features.AddChoice(feature)
	s.owners[feature.Value] = a.pluginID
	return nil
}

// InjectPrompt appends a prompt asked after the feature prompt and before the
// outro prompts.
func (a *API) InjectPrompt(p *input.Prompt) error {
	s := a.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return ErrSessionFrozen
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if s.lookup(p.Name) != nil {
		s.log.Warn("duplicate prompt ignored",
			logger.F("prompt", p.Name),
			logger.F("plugin", a.pluginID))
		return fmt.Errorf("%w: %s", ErrDuplicatePrompt, p.Name)
	}

	s.injected = append(s.injected, p)
	return nil
}

// InjectOptionForPrompt appends a choice to a built-in or previously injected
// prompt.
func (a *API) InjectOptionForPrompt(name string, choice input.Choice) error {
	s := a.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return ErrSessionFrozen
	}
	p := s.lookup(name)
	if p == nil {
		s.log.Warn("option injected into unknown prompt",
			logger.F("prompt", name),
			logger.F("plugin", a.pluginID))
		return fmt.Errorf("%w: %s", ErrPromptNotFound, name)
	}
	if name == FeaturePromptName {
		return fmt.Errorf("use InjectFeature to add features")
	}
	if p.HasChoice(choice.Value) {
		return fmt.Errorf("%w: %s in %s", ErrDuplicateChoice, choice.Value, name)
	}

	p.AddChoice(choice)
	return nil
}

// OnPromptComplete registers a callback run after all prompts are answered.
func (a *API) OnPromptComplete(fn CompletionFunc) error {
	s := a.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return ErrSessionFrozen
	}
	if fn == nil {
		return fmt.Errorf("completion callback cannot be nil")
	}
	s.callbacks = append(s.callbacks, callback{pluginID: a.pluginID, fn: fn})
	return nil
}
