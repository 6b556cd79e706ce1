// Package readme renders the README.md of a generated project.
package readme

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"text/template"
)

//go:embed templates/README.md.tmpl
var source string

var tmpl = template.Must(template.New("README.md").Parse(source))

var descriptions = []struct {
	script      string
	description string
}{
	{"serve", "Compiles and hot-reloads for development"},
	{"build", "Compiles and minifies for production"},
	{"test:unit", "Run your unit tests"},
	{"test:e2e", "Run your end-to-end tests"},
	{"lint", "Lints and fixes files"},
}

type script struct {
	Description string
	Command     string
}

// Generate renders the README for the package fields pkg. packageManager
// selects the install and run commands shown; empty means npm.
func Generate(pkg map[string]any, packageManager string) ([]byte, error) {
	if packageManager == "" {
		packageManager = "npm"
	}
	name, _ := pkg["name"].(string)
	if name == "" {
		return nil, fmt.Errorf("package has no name")
	}

	scripts, _ := pkg["scripts"].(map[string]any)
	data := struct {
		Name    string
		Install string
		Scripts []script
	}{
		Name:    name,
		Install: packageManager + " install",
		Scripts: orderScripts(scripts, packageManager),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering README.md: %w", err)
	}
	return buf.Bytes(), nil
}

func orderScripts(scripts map[string]any, pm string) []script {
	run := func(name string) string {
		if pm == "npm" {
			return "npm run " + name
		}
		return pm + " " + name
	}

	out := make([]script, 0, len(scripts))
	seen := map[string]bool{}
	for _, d := range descriptions {
		if _, ok := scripts[d.script]; ok {
			out = append(out, script{Description: d.description, Command: run(d.script)})
			seen[d.script] = true
		}
	}

	rest := make([]string, 0, len(scripts))
	for name := range scripts {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		out = append(out, script{Description: "Runs " + name, Command: run(name)})
	}
	return out
}
