// Package promptmodules holds the built-in prompt modules. Each module binds
// to one plugin id and injects its feature, follow-up prompts and completion
// callback into a prompt session.
package promptmodules

import (
	"fmt"
	"slices"

	"github.com/simonhull/firebird-suite/hatch/internal/input"
	"github.com/simonhull/firebird-suite/hatch/internal/preset"
	"github.com/simonhull/firebird-suite/hatch/internal/promptapi"
)

// Module is a prompt module bound to the plugin its feature selects.
type Module struct {
	PluginID string
	Setup    func(api *promptapi.API) error
}

// Defaults returns the built-in modules in feature display order.
func Defaults() []Module {
	return []Module{
		{PluginID: preset.BabelPluginID, Setup: Babel},
		{PluginID: preset.RouterPluginID, Setup: Router},
		{PluginID: preset.ESLintPluginID, Setup: Linter},
	}
}

// Apply runs every module against the session.
func Apply(session *promptapi.Session, modules []Module) error {
	for _, m := range modules {
		if err := m.Setup(session.API(m.PluginID)); err != nil {
			return fmt.Errorf("prompt module %s: %w", m.PluginID, err)
		}
	}
	return nil
}

// Babel injects the Babel feature, checked by default.
func Babel(api *promptapi.API) error {
	return api.InjectFeature(input.Choice{
		Name:        "Babel",
		Value:       "babel",
		Short:       "Babel",
		Description: "Transpile modern JavaScript to older versions (for compatibility)",
		Link:        "https://babeljs.io/",
		Checked:     true,
	})
}

// Router injects the Router feature and its history mode question.
func Router(api *promptapi.API) error {
	if err := api.InjectFeature(input.Choice{
		Name:        "Router",
		Value:       "router",
		Description: "Structure the app with dynamic pages",
		Link:        "https://router.vuejs.org/",
	}); err != nil {
		return err
	}

	if err := api.InjectPrompt(&input.Prompt{
		Name:    "historyMode",
		Kind:    input.KindConfirm,
		Message: "Use history mode for router? (Requires proper server setup for index fallback in production)",
		Default: true,
		When:    featureSelected("router"),
	}); err != nil {
		return err
	}

	return api.OnPromptComplete(func(answers input.Answers, options preset.Options) {
		if answers.Has("historyMode") {
			options["historyMode"] = answers.Bool("historyMode")
		}
	})
}

// Linter injects the Linter feature, the config choice and the lint trigger.
func Linter(api *promptapi.API) error {
	if err := api.InjectFeature(input.Choice{
		Name:        "Linter / Formatter",
		Value:       "linter",
		Short:       "Linter",
		Description: "Check and enforce code quality with ESLint",
		Link:        "https://eslint.org/",
		Checked:     true,
	}); err != nil {
		return err
	}

	if err := api.InjectPrompt(&input.Prompt{
		Name:    "eslintConfig",
		Kind:    input.KindList,
		Message: "Pick a linter / formatter config:",
		When:    featureSelected("linter"),
		Choices: []input.Choice{
			{Name: "ESLint with error prevention only", Value: "base", Short: "Basic"},
			{Name: "ESLint + Airbnb config", Value: "airbnb", Short: "Airbnb"},
			{Name: "ESLint + Standard config", Value: "standard", Short: "Standard"},
			{Name: "ESLint + Prettier", Value: "prettier", Short: "Prettier"},
		},
	}); err != nil {
		return err
	}

	if err := api.InjectPrompt(&input.Prompt{
		Name:    "lintOn",
		Kind:    input.KindCheckbox,
		Message: "Pick additional lint features:",
		When:    featureSelected("linter"),
		Choices: []input.Choice{
			{Name: "Lint on save", Value: "save", Checked: true},
			{Name: "Lint and fix on commit", Value: "commit"},
		},
	}); err != nil {
		return err
	}

	return api.OnPromptComplete(func(answers input.Answers, options preset.Options) {
		if config := answers.String("eslintConfig"); config != "" {
			options["config"] = config
		}
		if answers.Has("lintOn") {
			options["lintOn"] = answers.Strings("lintOn")
		}
	})
}

func featureSelected(value string) func(input.Answers) bool {
	return func(answers input.Answers) bool {
		return slices.Contains(answers.Strings(promptapi.FeaturePromptName), value)
	}
}
