// Package resolver turns prompt answers, or a preset name, into a concrete
// preset ready for generation.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/hatch/internal/input"
	"github.com/simonhull/firebird-suite/hatch/internal/logger"
	"github.com/simonhull/firebird-suite/hatch/internal/preset"
	"github.com/simonhull/firebird-suite/hatch/internal/promptapi"
)

// ManualPreset is the preset answer that assembles a preset from features.
const ManualPreset = "__manual__"

// Prompt names owned by the resolver.
const (
	PresetPromptName         = "preset"
	UseConfigFilesPromptName = "useConfigFiles"
	SavePromptName           = "save"
	SaveNamePromptName       = "saveName"
)

// PresetSaver persists a manually assembled preset under a name.
type PresetSaver interface {
	SavePreset(name string, p *preset.Preset) error
}

// Config wires a Resolver.
type Config struct {
	Registry *preset.Registry
	Session  *promptapi.Session
	Asker    input.Asker
	Saver    PresetSaver
	Logger   logger.Logger
}

// Resolver owns the preset prompt and the outro prompts.
type Resolver struct {
	registry *preset.Registry
	session  *promptapi.Session
	asker    input.Asker
	saver    PresetSaver
	log      logger.Logger

	presetPrompt *input.Prompt
	outro        []*input.Prompt
}

// New builds the resolver and registers its prompts with the session so
// prompt modules can inject choices into them.
func New(cfg Config) (*Resolver, error) {
	if cfg.Registry == nil || cfg.Session == nil {
		return nil, fmt.Errorf("resolver needs a registry and a session")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	r := &Resolver{
		registry: cfg.Registry,
		session:  cfg.Session,
		asker:    cfg.Asker,
		saver:    cfg.Saver,
		log:      cfg.Logger,
	}
	r.presetPrompt = r.buildPresetPrompt()
	r.outro = buildOutroPrompts()

	cfg.Session.FeaturePrompt().When = isManual
	for _, p := range append([]*input.Prompt{r.presetPrompt}, r.outro...) {
		if err := cfg.Session.Register(p); err != nil {
			return nil, fmt.Errorf("registering %s prompt: %w", p.Name, err)
		}
	}
	return r, nil
}

// Prompts returns the final prompt sequence: preset, features, injected
// prompts, outro prompts.
func (r *Resolver) Prompts() []*input.Prompt {
	prompts := []*input.Prompt{r.presetPrompt, r.session.FeaturePrompt()}
	prompts = append(prompts, r.session.InjectedPrompts()...)
	return append(prompts, r.outro...)
}

// Resolve asks every prompt as one batch and resolves the answers. The
// returned preset always contains the core service plugin first.
func (r *Resolver) Resolve(ctx context.Context, projectName string) (*preset.Preset, error) {
	if r.asker == nil {
		return nil, &PromptResolutionError{Err: input.ErrNotInteractive}
	}
	r.session.Freeze()

	answers, err := input.Run(ctx, r.asker, r.Prompts())
	if err != nil {
		return nil, &PromptResolutionError{Err: err}
	}

	name := answers.String(PresetPromptName)
	var p *preset.Preset
	switch {
	case name == ManualPreset:
		p, err = r.fromFeatures(answers)
		if err != nil {
			return nil, err
		}
		r.maybeSave(answers, p)
	case r.registry.Has(name):
		p, _ = r.registry.Get(name)
	default:
		return nil, &UnsupportedPresetError{Name: name}
	}

	r.log.Debug("preset resolved",
		logger.F("preset", name),
		logger.F("plugins", strings.Join(p.Plugins.IDs(), ",")))

	InjectCore(p, projectName)
	return p, nil
}

// ResolveNamed resolves a registry preset without prompting.
func (r *Resolver) ResolveNamed(name, projectName string) (*preset.Preset, error) {
	p, ok := r.registry.Get(name)
	if !ok {
		return nil, &UnsupportedPresetError{Name: name}
	}
	InjectCore(p, projectName)
	return p, nil
}

// InjectCore makes the core service plugin the first plugin of p. Its options
// start from the project name, the ids of the preset's other plugins and the
// preset's top-level fields; options the preset already carries for the core
// service win.
func InjectCore(p *preset.Preset, projectName string) {
	options := preset.Options{
		"projectName": projectName,
		"plugins":     otherPluginIDs(p),
	}
	for k, v := range p.TopLevelFields() {
		options[k] = v
	}
	if existing, ok := p.Plugins.Get(preset.CoreServiceID); ok {
		for k, v := range existing {
			options[k] = v
		}
	}
	p.Plugins.Insert(0, preset.CoreServiceID, options)
}

func otherPluginIDs(p *preset.Preset) []string {
	ids := make([]string, 0, p.Plugins.Len())
	for _, id := range p.Plugins.IDs() {
		if id != preset.CoreServiceID {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r *Resolver) fromFeatures(answers input.Answers) (*preset.Preset, error) {
	p := &preset.Preset{
		UseConfigFiles: answers.String(UseConfigFilesPromptName) == "files",
	}
	for _, feature := range answers.Strings(promptapi.FeaturePromptName) {
		id, ok := r.session.FeatureOwner(feature)
		if !ok {
			r.log.Warn("selected feature has no owning plugin", logger.F("feature", feature))
			continue
		}
		if !p.Plugins.Has(id) {
			p.Plugins.Set(id, preset.Options{})
		}
	}

	if err := r.session.Complete(answers, &p.Plugins); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Resolver) maybeSave(answers input.Answers, p *preset.Preset) {
	name := strings.TrimSpace(answers.String(SaveNamePromptName))
	if !answers.Bool(SavePromptName) || name == "" || r.saver == nil {
		return
	}
	if err := r.saver.SavePreset(name, p.Clone()); err != nil {
		r.log.Warn("could not save preset", logger.F("name", name), logger.F("error", err))
		return
	}
	r.log.Info("preset saved", logger.F("name", name))
}

func (r *Resolver) buildPresetPrompt() *input.Prompt {
	p := &input.Prompt{
		Name:    PresetPromptName,
		Kind:    input.KindList,
		Message: "Please pick a preset:",
	}
	for _, name := range r.registry.Names() {
		entry, _ := r.registry.Get(name)
		p.AddChoice(input.Choice{Name: Label(name, entry), Value: name, Short: name})
	}
	p.AddChoice(input.Choice{Name: "Manually select features", Value: ManualPreset, Short: "Manual"})
	return p
}

// Label renders a preset choice as "Name (plugin-id, plugin-id)".
func Label(name string, p *preset.Preset) string {
	return fmt.Sprintf("%s (%s)", name, strings.Join(p.Plugins.IDs(), ", "))
}

func buildOutroPrompts() []*input.Prompt {
	return []*input.Prompt{
		{
			Name:    UseConfigFilesPromptName,
			Kind:    input.KindList,
			Message: "Where do you prefer placing config for Babel, ESLint, etc.?",
			When:    isManual,
			Choices: []input.Choice{
				{Name: "In dedicated config files", Value: "files"},
				{Name: "In package.json", Value: "pkg"},
			},
		},
		{
			Name:    SavePromptName,
			Kind:    input.KindConfirm,
			Message: "Save this as a preset for future projects?",
			Default: false,
			When:    isManual,
		},
		{
			Name:    SaveNamePromptName,
			Kind:    input.KindInput,
			Message: "Save preset as:",
			When:    func(a input.Answers) bool { return a.Bool(SavePromptName) },
		},
	}
}

func isManual(answers input.Answers) bool {
	return answers.String(PresetPromptName) == ManualPreset
}
