package preset

import (
	"sort"
	"strings"
)

// Names of the built-in presets.
const (
	DefaultVue3 = "Default (Vue 3)"
	DefaultVue2 = "Default (Vue 2)"
)

// Plugin ids referenced by the built-in presets and prompt modules.
const (
	BabelPluginID  = "@vue/cli-plugin-babel"
	ESLintPluginID = "@vue/cli-plugin-eslint"
	RouterPluginID = "@vue/cli-plugin-router"
)

func defaultPreset(vueVersion string) *Preset {
	return &Preset{
		UseConfigFiles: false,
		VueVersion:     vueVersion,
		Plugins: NewPlugins(
			Entry{ID: BabelPluginID, Options: Options{}},
			Entry{ID: ESLintPluginID, Options: Options{
				"config": "base",
				"lintOn": []any{"save"},
			}},
		),
	}
}

// Builtins returns fresh copies of the built-in presets in display order.
func Builtins() []NamedPreset {
	return []NamedPreset{
		{Name: DefaultVue3, Preset: defaultPreset("3")},
		{Name: DefaultVue2, Preset: defaultPreset("2")},
	}
}

// NamedPreset pairs a registry name with its preset.
type NamedPreset struct {
	Name   string
	Preset *Preset
}

// Registry is the read-only set of presets offered to the user.
type Registry struct {
	names   []string
	presets map[string]*Preset
}

// NewRegistry layers saved presets after the built-ins. A saved preset whose
// name collides with a built-in is ignored; blank names are skipped.
func NewRegistry(saved map[string]*Preset) *Registry {
	r := &Registry{presets: make(map[string]*Preset)}
	for _, np := range Builtins() {
		r.names = append(r.names, np.Name)
		r.presets[np.Name] = np.Preset
	}

	savedNames := make([]string, 0, len(saved))
	for name, p := range saved {
		if strings.TrimSpace(name) == "" || p == nil {
			continue
		}
		if _, exists := r.presets[name]; exists {
			continue
		}
		savedNames = append(savedNames, name)
	}
	sort.Strings(savedNames)

	for _, name := range savedNames {
		r.names = append(r.names, name)
		r.presets[name] = saved[name].Clone()
	}
	return r
}

// Names returns the preset names: built-ins first, then saved presets sorted.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Has reports whether name is a registered preset.
func (r *Registry) Has(name string) bool {
	_, ok := r.presets[name]
	return ok
}

// Get returns a deep copy of the named preset.
func (r *Registry) Get(name string) (*Preset, bool) {
	p, ok := r.presets[name]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}
