package plugins

import (
	"github.com/simonhull/firebird-suite/hatch/internal/generator"
	"github.com/simonhull/firebird-suite/hatch/internal/preset"
)

// Babel adds the Babel preset and its core dependency.
func Babel(api *generator.API, _ preset.Options, _ *preset.Preset) error {
	api.ExtendPackage(map[string]any{
		"babel": map[string]any{
			"presets": []any{"@vue/cli-plugin-babel/preset"},
		},
		"devDependencies": map[string]any{
			"@babel/core": "^7.12.16",
		},
	})
	return nil
}
