package generator

import "github.com/simonhull/firebird-suite/hatch/internal/preset"

// Generator contributes files and package fields for one plugin.
type Generator interface {
	Apply(api *API, options preset.Options, root *preset.Preset) error
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(api *API, options preset.Options, root *preset.Preset) error

// Apply calls f.
func (f GeneratorFunc) Apply(api *API, options preset.Options, root *preset.Preset) error {
	return f(api, options, root)
}

// Noop is the generator substituted for plugins that ship none.
var Noop Generator = GeneratorFunc(func(*API, preset.Options, *preset.Preset) error {
	return nil
})

// Plugin is one resolved plugin ready to apply.
type Plugin struct {
	ID        string
	Generator Generator
	Options   preset.Options
}
