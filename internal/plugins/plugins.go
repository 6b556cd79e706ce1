// Package plugins provides the generators for the built-in plugin ids.
package plugins

import (
	"embed"
	"fmt"

	"github.com/simonhull/firebird-suite/hatch/internal/generator"
	"github.com/simonhull/firebird-suite/hatch/internal/plugin"
	"github.com/simonhull/firebird-suite/hatch/internal/preset"
)

//go:embed all:templates
var templates embed.FS

// Register adds every built-in generator to r.
func Register(r *plugin.Registry) error {
	builtins := []struct {
		id  string
		gen generator.GeneratorFunc
	}{
		{preset.CoreServiceID, Service},
		{preset.BabelPluginID, Babel},
		{preset.ESLintPluginID, ESLint},
		{preset.RouterPluginID, Router},
	}
	for _, b := range builtins {
		if err := r.Register(b.id, b.gen); err != nil {
			return fmt.Errorf("registering %s: %w", b.id, err)
		}
	}
	return nil
}

// vueVersion returns "2" or "3", defaulting to 3.
func vueVersion(options preset.Options, root *preset.Preset) string {
	if v, ok := options["vueVersion"].(string); ok && v != "" {
		return v
	}
	if root != nil && root.VueVersion != "" {
		return root.VueVersion
	}
	return "3"
}

// stringList reads a list option written either by Go code or decoded YAML.
func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{list}
	default:
		return nil
	}
}
