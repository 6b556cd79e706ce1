package plugins

import (
	"fmt"
	"slices"

	"github.com/simonhull/firebird-suite/hatch/internal/generator"
	"github.com/simonhull/firebird-suite/hatch/internal/preset"
)

var eslintExtends = map[string][]any{
	"base":     {"eslint:recommended"},
	"airbnb":   {"@vue/airbnb"},
	"standard": {"@vue/standard"},
	"prettier": {"eslint:recommended", "plugin:prettier/recommended"},
}

var eslintDeps = map[string]map[string]any{
	"base":     {},
	"airbnb":   {"@vue/eslint-config-airbnb": "^6.0.0", "eslint-plugin-import": "^2.25.3"},
	"standard": {"@vue/eslint-config-standard": "^6.1.0", "eslint-plugin-import": "^2.25.3", "eslint-plugin-node": "^11.1.0", "eslint-plugin-promise": "^5.1.0"},
	"prettier": {"eslint-config-prettier": "^8.3.0", "eslint-plugin-prettier": "^4.0.0", "prettier": "^2.4.1"},
}

// ESLint adds the lint script, the ESLint config for the chosen style and,
// when lintOn includes "commit", a pre-commit hook running lint-staged.
func ESLint(api *generator.API, options preset.Options, root *preset.Preset) error {
	config, _ := options["config"].(string)
	if config == "" {
		config = "base"
	}
	extends, ok := eslintExtends[config]
	if !ok {
		return fmt.Errorf("unknown eslint config %q", config)
	}

	vuePreset := "plugin:vue/vue3-essential"
	if vueVersion(options, root) == "2" {
		vuePreset = "plugin:vue/essential"
	}

	eslintConfig := map[string]any{
		"root":    true,
		"env":     map[string]any{"node": true},
		"extends": append([]any{vuePreset}, extends...),
		"rules":   map[string]any{},
	}
	devDeps := map[string]any{
		"eslint":            "^7.32.0",
		"eslint-plugin-vue": "^8.0.3",
	}
	if api.HasPlugin(preset.BabelPluginID) {
		eslintConfig["parserOptions"] = map[string]any{"parser": "@babel/eslint-parser"}
		devDeps["@babel/eslint-parser"] = "^7.12.16"
	}
	for dep, version := range eslintDeps[config] {
		devDeps[dep] = version
	}

	api.ExtendPackage(map[string]any{
		"scripts":         map[string]any{"lint": "vue-cli-service lint"},
		"eslintConfig":    eslintConfig,
		"devDependencies": devDeps,
	})

	lintOn := stringList(options["lintOn"])
	if !slices.Contains(lintOn, "save") {
		if err := api.SetFile("vue.config.js", []byte("module.exports = {\n  lintOnSave: false\n}\n")); err != nil {
			return err
		}
	}
	if slices.Contains(lintOn, "commit") {
		api.ExtendPackage(map[string]any{
			"gitHooks":        map[string]any{"pre-commit": "lint-staged"},
			"lint-staged":     map[string]any{"*.{js,jsx,vue}": "vue-cli-service lint"},
			"devDependencies": map[string]any{"lint-staged": "^11.1.2", "yorkie": "^2.0.0"},
		})
	}
	return nil
}
