// Package preset defines presets, the ordered plugin mapping they carry, and
// the read-only registry of named presets offered at the preset prompt.
package preset

import (
	"github.com/simonhull/firebird-suite/hatch/internal/merge"
)

// CoreServiceID is the plugin that every resolved preset must contain.
const CoreServiceID = "@vue/cli-service"

// Options is the free-form configuration of one plugin.
type Options map[string]any

// Clone deep-copies the options. A nil Options clones to an empty map.
func (o Options) Clone() Options {
	out := merge.CloneMap(o)
	if out == nil {
		out = make(map[string]any)
	}
	return out
}

// Preset is a named bundle of plugin configurations plus a few top-level
// project settings.
type Preset struct {
	UseConfigFiles  bool    `yaml:"useConfigFiles" json:"useConfigFiles"`
	CSSPreprocessor string  `yaml:"cssPreprocessor,omitempty" json:"cssPreprocessor,omitempty"`
	VueVersion      string  `yaml:"vueVersion,omitempty" json:"vueVersion,omitempty"`
	Plugins         Plugins `yaml:"plugins" json:"plugins"`
}

// Clone returns a deep copy. Mutating the copy never affects the receiver.
func (p *Preset) Clone() *Preset {
	if p == nil {
		return nil
	}
	return &Preset{
		UseConfigFiles:  p.UseConfigFiles,
		CSSPreprocessor: p.CSSPreprocessor,
		VueVersion:      p.VueVersion,
		Plugins:         p.Plugins.Clone(),
	}
}

// TopLevelFields returns the preset-wide settings that are forwarded to the
// core service plugin.
func (p *Preset) TopLevelFields() Options {
	fields := Options{"useConfigFiles": p.UseConfigFiles}
	if p.CSSPreprocessor != "" {
		fields["cssPreprocessor"] = p.CSSPreprocessor
	}
	if p.VueVersion != "" {
		fields["vueVersion"] = p.VueVersion
	}
	return fields
}
