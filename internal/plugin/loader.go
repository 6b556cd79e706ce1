package plugin

import (
	"fmt"

	"github.com/simonhull/firebird-suite/hatch/internal/generator"
	"github.com/simonhull/firebird-suite/hatch/internal/logger"
	"github.com/simonhull/firebird-suite/hatch/internal/preset"
)

// ResolutionWarning records a plugin with no registered generator. It is
// not fatal: the plugin is still installed but contributes nothing.
type ResolutionWarning struct {
	ID string
}

func (w *ResolutionWarning) Error() string {
	return fmt.Sprintf("no generator found for plugin %s, skipping", w.ID)
}

// Loader resolves preset plugins against a Registry.
type Loader struct {
	registry *Registry
	log      logger.Logger
	warnings []*ResolutionWarning
}

// NewLoader creates a loader.
func NewLoader(registry *Registry, log logger.Logger) *Loader {
	if log == nil {
		log = logger.Default()
	}
	return &Loader{registry: registry, log: log}
}

// Resolve returns one generator.Plugin per preset plugin, in preset order
// except that the core service is moved to the front. Plugins without a
// generator get generator.Noop and a recorded warning.
func (l *Loader) Resolve(plugins preset.Plugins) []generator.Plugin {
	ids := plugins.IDs()
	ordered := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == preset.CoreServiceID {
			ordered = append(ordered, id)
		}
	}
	for _, id := range ids {
		if id != preset.CoreServiceID {
			ordered = append(ordered, id)
		}
	}

	resolved := make([]generator.Plugin, 0, len(ordered))
	for _, id := range ordered {
		options, _ := plugins.Get(id)
		gen, ok := l.registry.Get(id)
		if !ok {
			warning := &ResolutionWarning{ID: id}
			l.warnings = append(l.warnings, warning)
			l.log.Warn("plugin generator not found, using no-op", logger.F("plugin", id))
			gen = generator.Noop
		}
		resolved = append(resolved, generator.Plugin{ID: id, Generator: gen, Options: options})
	}
	return resolved
}

// Warnings returns the warnings recorded by every Resolve call so far.
func (l *Loader) Warnings() []*ResolutionWarning {
	out := make([]*ResolutionWarning, len(l.warnings))
	copy(out, l.warnings)
	return out
}
