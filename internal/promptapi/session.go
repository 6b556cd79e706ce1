// Package promptapi is the capability surface prompt modules use to extend
// the create prompts: features, extra prompts, extra choices and completion
// callbacks.
//
// A Session has two phases. During setup, modules obtain an API bound to
// their plugin id and inject into the session. Freeze ends setup; the prompts
// are then asked, and Complete hands the answers to every registered callback.
package promptapi

import (
	"errors"
	"fmt"
	"sync"

	"github.com/simonhull/firebird-suite/hatch/internal/input"
	"github.com/simonhull/firebird-suite/hatch/internal/logger"
	"github.com/simonhull/firebird-suite/hatch/internal/preset"
)

// FeaturePromptName is the name of the feature checkbox prompt.
const FeaturePromptName = "features"

// Session errors.
var (
	ErrDuplicateFeature = errors.New("feature already injected")
	ErrDuplicatePrompt  = errors.New("prompt already registered")
	ErrDuplicateChoice  = errors.New("choice already present")
	ErrPromptNotFound   = errors.New("prompt not found")
	ErrSessionFrozen    = errors.New("prompt session is frozen")
	ErrAlreadyCompleted = errors.New("prompt session already completed")
)

// CompletionFunc receives the final answers and the options of the plugin it
// was registered for.
type CompletionFunc func(answers input.Answers, options preset.Options)

type callback struct {
	pluginID string
	fn       CompletionFunc
}

// Session collects everything prompt modules inject.
type Session struct {
	mu        sync.Mutex
	log       logger.Logger
	features  *input.Prompt
	builtins  map[string]*input.Prompt
	injected  []*input.Prompt
	owners    map[string]string
	callbacks []callback
	frozen    bool
	completed bool
}

// NewSession creates a session with an empty feature prompt.
func NewSession(log logger.Logger) *Session {
	if log == nil {
		log = logger.Default()
	}
	features := &input.Prompt{
		Name:     FeaturePromptName,
		Kind:     input.KindCheckbox,
		Message:  "Check the features needed for your project:",
		PageSize: 10,
	}
	return &Session{
		log:      log,
		features: features,
		builtins: map[string]*input.Prompt{FeaturePromptName: features},
		owners:   make(map[string]string),
	}
}

// Register adds a built-in prompt (preset or outro) so modules can target it
// with InjectOptionForPrompt.
func (s *Session) Register(p *input.Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return ErrSessionFrozen
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if s.lookup(p.Name) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicatePrompt, p.Name)
	}
	s.builtins[p.Name] = p
	return nil
}

// API returns the capabilities bound to one plugin id.
func (s *Session) API(pluginID string) *API {
	return &API{session: s, pluginID: pluginID}
}

// FeaturePrompt returns the feature checkbox prompt.
func (s *Session) FeaturePrompt() *input.Prompt {
	return s.features
}

// InjectedPrompts returns the injected prompts in injection order.
func (s *Session) InjectedPrompts() []*input.Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*input.Prompt, len(s.injected))
	copy(out, s.injected)
	return out
}

// Prompt finds a built-in or injected prompt by name.
func (s *Session) Prompt(name string) (*input.Prompt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.lookup(name)
	return p, p != nil
}

// FeatureOwner returns the plugin id that injected the feature value.
func (s *Session) FeatureOwner(value string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.owners[value]
	return id, ok
}

// Freeze ends the setup phase. Later injections fail with ErrSessionFrozen.
func (s *Session) Freeze() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = true
}

// Complete invokes every completion callback once, in registration order.
// A callback whose plugin is present in plugins mutates that plugin's options
// in place; a callback for an unselected plugin gets a throwaway map.
func (s *Session) Complete(answers input.Answers, plugins *preset.Plugins) error {
	s.mu.Lock()
	if s.completed {
		s.mu.Unlock()
		return ErrAlreadyCompleted
	}
	s.completed = true
	s.frozen = true
	callbacks := make([]callback, len(s.callbacks))
	copy(callbacks, s.callbacks)
	s.mu.Unlock()

	for _, cb := range callbacks {
		opts, ok := plugins.Get(cb.pluginID)
		if !ok {
			opts = preset.Options{}
		}
		cb.fn(answers.Clone(), opts)
		s.log.Debug("prompt completion callback ran",
			logger.F("plugin", cb.pluginID),
			logger.F("selected", ok))
	}
	return nil
}

// lookup must be called with s.mu held.
func (s *Session) lookup(name string) *input.Prompt {
	if p, ok := s.builtins[name]; ok {
		return p
	}
	for _, p := range s.injected {
		if p.Name == name {
			return p
		}
	}
	return nil
}
