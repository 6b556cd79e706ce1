package plugins

import (
	"github.com/simonhull/firebird-suite/hatch/internal/generator"
	"github.com/simonhull/firebird-suite/hatch/internal/preset"
)

// Service generates the application shell: entry point, root component,
// public index and the serve/build scripts.
func Service(api *generator.API, options preset.Options, root *preset.Preset) error {
	version := vueVersion(options, root)
	projectName, _ := options["projectName"].(string)

	data := map[string]any{
		"projectName": projectName,
		"vueVersion":  version,
		"hasRouter":   api.HasPlugin(preset.RouterPluginID),
	}
	if err := api.Render(templates, "templates/core", data); err != nil {
		return err
	}

	vue := "^3.2.13"
	if version == "2" {
		vue = "^2.6.14"
	}
	api.ExtendPackage(map[string]any{
		"scripts": map[string]any{
			"serve": "vue-cli-service serve",
			"build": "vue-cli-service build",
		},
		"dependencies": map[string]any{
			"core-js": "^3.8.3",
			"vue":     vue,
		},
		"browserslist": []any{"> 1%", "last 2 versions", "not dead"},
	})

	if css, ok := options["cssPreprocessor"].(string); ok && css != "" {
		deps := map[string]any{}
		switch css {
		case "sass", "dart-sass":
			deps["sass"] = "^1.32.7"
			deps["sass-loader"] = "^12.0.0"
		case "less":
			deps["less"] = "^4.0.0"
			deps["less-loader"] = "^8.0.0"
		case "stylus":
			deps["stylus"] = "^0.55.0"
			deps["stylus-loader"] = "^6.1.0"
		}
		api.ExtendPackage(map[string]any{"devDependencies": deps})
	}
	return nil
}
