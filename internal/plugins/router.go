package plugins

import (
	"github.com/simonhull/firebird-suite/hatch/internal/generator"
	"github.com/simonhull/firebird-suite/hatch/internal/preset"
)

// Router adds vue-router, the router module and two example views.
func Router(api *generator.API, options preset.Options, root *preset.Preset) error {
	version := vueVersion(options, root)
	history, _ := options["historyMode"].(bool)

	projectName := ""
	if root != nil {
		if core, ok := root.Plugins.Get(preset.CoreServiceID); ok {
			projectName, _ = core["projectName"].(string)
		}
	}

	if err := api.Render(templates, "templates/router", map[string]any{
		"vueVersion":  version,
		"history":     history,
		"projectName": projectName,
	}); err != nil {
		return err
	}

	vueRouter := "^4.0.3"
	if version == "2" {
		vueRouter = "^3.5.1"
	}
	api.ExtendPackage(map[string]any{
		"dependencies": map[string]any{"vue-router": vueRouter},
	})
	return nil
}
