package creator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/hatch/internal/generator"
	"github.com/simonhull/firebird-suite/hatch/internal/input"
	"github.com/simonhull/firebird-suite/hatch/internal/logger"
	"github.com/simonhull/firebird-suite/hatch/internal/output"
	"github.com/simonhull/firebird-suite/hatch/internal/pkgjson"
	"github.com/simonhull/firebird-suite/hatch/internal/pkgmanager"
	"github.com/simonhull/firebird-suite/hatch/internal/plugin"
	"github.com/simonhull/firebird-suite/hatch/internal/plugins"
	"github.com/simonhull/firebird-suite/hatch/internal/preset"
	"github.com/simonhull/firebird-suite/hatch/internal/project"
	"github.com/simonhull/firebird-suite/hatch/internal/resolver"
)

type fakeRunner struct {
	calls [][]string
	err   error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.err
}

func (f *fakeRunner) RunWithSpinner(ctx context.Context, _ string, name string, args ...string) error {
	return f.Run(ctx, name, args...)
}

type memorySaver struct {
	saved map[string]*preset.Preset
}

func (m *memorySaver) SavePreset(name string, p *preset.Preset) error {
	if m.saved == nil {
		m.saved = map[string]*preset.Preset{}
	}
	m.saved[name] = p
	return nil
}

type fixture struct {
	dir    string
	runner *fakeRunner
	saver  *memorySaver
	out    *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	var discard bytes.Buffer
	output.SetWriters(&discard, &discard)
	t.Cleanup(func() { output.SetWriters(os.Stdout, os.Stderr) })

	return &fixture{
		dir:    filepath.Join(t.TempDir(), "my-app"),
		runner: &fakeRunner{},
		saver:  &memorySaver{},
		out:    &bytes.Buffer{},
	}
}

func (f *fixture) deps(t *testing.T, answers map[string]any) Deps {
	t.Helper()
	generators := plugin.NewRegistry()
	require.NoError(t, plugins.Register(generators))
	return Deps{
		Generators: generators,
		Asker:      input.NewScriptedAsker(answers),
		Saver:      f.saver,
		Runner:     f.runner,
		HasGit:     func() bool { return true },
		Logger:     logger.NewSilentLogger(),
		Out:        f.out,
	}
}

func (f *fixture) options() Options {
	return Options{Name: "my-app", Dir: f.dir}
}

func readPackage(t *testing.T, dir string) map[string]any {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	pkg, err := pkgjson.Decode(content)
	require.NoError(t, err)
	return pkg
}

func TestCreate_DefaultVue3(t *testing.T) {
	f := newFixture(t)
	c, err := New(f.options(), f.deps(t, map[string]any{"preset": preset.DefaultVue3}))
	require.NoError(t, err)

	result, err := c.Create(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{preset.CoreServiceID, preset.BabelPluginID, preset.ESLintPluginID}, result.Preset.Plugins.IDs())

	pkg := readPackage(t, f.dir)
	assert.Equal(t, "my-app", pkg["name"])
	assert.Equal(t, "0.0.1", pkg["version"])
	assert.Equal(t, true, pkg["private"])
	devDeps := pkg["devDependencies"].(map[string]any)
	for _, id := range []string{preset.CoreServiceID, preset.BabelPluginID, preset.ESLintPluginID} {
		assert.Equal(t, "latest", devDeps[id], id)
	}
	assert.Contains(t, pkg["scripts"], "serve")

	assert.Equal(t, [][]string{
		{"git", "init"},
		{"npm", "install", "--loglevel", "error"},
		{"npm", "install", "--loglevel", "error"},
	}, f.runner.calls)

	assert.FileExists(t, filepath.Join(f.dir, "README.md"))
	assert.FileExists(t, filepath.Join(f.dir, "src", "main.js"))
	assert.Contains(t, f.out.String(), "✓ Create package.json")
	assert.Empty(t, result.Warnings)
}

func TestCreate_ManualZeroFeatures(t *testing.T) {
	f := newFixture(t)
	answers := map[string]any{
		"preset":         resolver.ManualPreset,
		"features":       []string{},
		"useConfigFiles": "pkg",
		"save":           false,
	}
	c, err := New(f.options(), f.deps(t, answers))
	require.NoError(t, err)

	result, err := c.Create(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{preset.CoreServiceID}, result.Preset.Plugins.IDs())
	devDeps := readPackage(t, f.dir)["devDependencies"].(map[string]any)
	assert.Len(t, devDeps, 1)
	assert.Empty(t, f.saver.saved)
}

func TestCreate_ManualRouterSavedWithConfigFiles(t *testing.T) {
	f := newFixture(t)
	answers := map[string]any{
		"preset":         resolver.ManualPreset,
		"features":       []string{"babel", "router"},
		"historyMode":    false,
		"useConfigFiles": "files",
		"save":           true,
		"saveName":       "team",
	}
	c, err := New(f.options(), f.deps(t, answers))
	require.NoError(t, err)

	result, err := c.Create(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Preset.UseConfigFiles)
	opts, ok := result.Preset.Plugins.Get(preset.RouterPluginID)
	require.True(t, ok)
	assert.Equal(t, false, opts["historyMode"])

	require.Contains(t, f.saver.saved, "team")
	assert.False(t, f.saver.saved["team"].Plugins.Has(preset.CoreServiceID))

	assert.FileExists(t, filepath.Join(f.dir, "babel.config.js"))
	assert.NotContains(t, readPackage(t, f.dir), "babel")
	router, err := os.ReadFile(filepath.Join(f.dir, "src", "router", "index.js"))
	require.NoError(t, err)
	assert.Contains(t, string(router), "createWebHashHistory()")
}

func TestCreate_NamedPreset(t *testing.T) {
	f := newFixture(t)
	opts := f.options()
	opts.Preset = preset.DefaultVue2
	opts.PackageManager = pkgmanager.Yarn
	opts.SkipGit = true

	asker := input.NewScriptedAsker(nil)
	deps := f.deps(t, nil)
	deps.Asker = asker
	c, err := New(opts, deps)
	require.NoError(t, err)

	result, err := c.Create(context.Background())
	require.NoError(t, err)
	assert.Empty(t, asker.Asked)
	assert.Equal(t, "2", result.Preset.VueVersion)
	assert.Equal(t, [][]string{{"yarn", "install"}, {"yarn", "install"}}, f.runner.calls)

	readme, err := os.ReadFile(filepath.Join(f.dir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "yarn serve")
}

func TestCreate_UnsupportedPreset(t *testing.T) {
	f := newFixture(t)
	opts := f.options()
	opts.Preset = "Nope"

	c, err := New(opts, f.deps(t, nil))
	require.NoError(t, err)

	_, err = c.Create(context.Background())
	var unsupported *resolver.UnsupportedPresetError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "Nope", unsupported.Name)
	assert.NoDirExists(t, f.dir)
	assert.Empty(t, f.runner.calls)
}

func TestCreate_NotInteractive(t *testing.T) {
	f := newFixture(t)
	deps := f.deps(t, nil)
	deps.Asker = nil

	c, err := New(f.options(), deps)
	require.NoError(t, err)

	_, err = c.Create(context.Background())
	var resolution *resolver.PromptResolutionError
	require.ErrorAs(t, err, &resolution)
	assert.ErrorIs(t, err, input.ErrNotInteractive)
}

func TestCreate_DryRun(t *testing.T) {
	f := newFixture(t)
	opts := f.options()
	opts.DryRun = true

	c, err := New(opts, f.deps(t, map[string]any{"preset": preset.DefaultVue3}))
	require.NoError(t, err)

	_, err = c.Create(context.Background())
	require.NoError(t, err)
	assert.NoDirExists(t, f.dir)
	assert.Empty(t, f.runner.calls)
	assert.Contains(t, f.out.String(), "[DRY RUN]")
}

func TestCreate_TargetNotEmpty(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(f.dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "keep.txt"), []byte("x"), 0o644))

	c, err := New(f.options(), f.deps(t, map[string]any{"preset": preset.DefaultVue3}))
	require.NoError(t, err)
	_, err = c.Create(context.Background())
	assert.ErrorIs(t, err, project.ErrTargetExists)

	opts := f.options()
	opts.Force = true
	c, err = New(opts, f.deps(t, map[string]any{"preset": preset.DefaultVue3}))
	require.NoError(t, err)
	_, err = c.Create(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(f.dir, "keep.txt"))
}

func TestCreate_InstallFailure(t *testing.T) {
	f := newFixture(t)
	f.runner.err = errors.New("exit status 1")
	opts := f.options()
	opts.SkipGit = true

	c, err := New(opts, f.deps(t, map[string]any{"preset": preset.DefaultVue3}))
	require.NoError(t, err)

	_, err = c.Create(context.Background())
	var pmErr *pkgmanager.Error
	require.ErrorAs(t, err, &pmErr)
	assert.Equal(t, "npm install --loglevel error", pmErr.Command)

	assert.FileExists(t, filepath.Join(f.dir, "package.json"))
	assert.NoFileExists(t, filepath.Join(f.dir, "README.md"))
}

func TestCreate_MissingGeneratorWarns(t *testing.T) {
	f := newFixture(t)
	presets := preset.NewRegistry(map[string]*preset.Preset{
		"custom": {Plugins: preset.NewPlugins(preset.Entry{ID: "vue-cli-plugin-unknown"})},
	})
	deps := f.deps(t, nil)
	deps.Presets = presets
	opts := f.options()
	opts.Preset = "custom"
	opts.SkipInstall = true

	c, err := New(opts, deps)
	require.NoError(t, err)
	result, err := c.Create(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "vue-cli-plugin-unknown", result.Warnings[0].ID)
	assert.Equal(t, [][]string{{"git", "init"}}, f.runner.calls)
}

func TestCreate_GeneratedReadmeIsKept(t *testing.T) {
	f := newFixture(t)
	presets := preset.NewRegistry(map[string]*preset.Preset{
		"docs": {Plugins: preset.NewPlugins(preset.Entry{ID: "vue-cli-plugin-docs"})},
	})
	deps := f.deps(t, nil)
	deps.Presets = presets
	require.NoError(t, deps.Generators.Register("vue-cli-plugin-docs", generator.GeneratorFunc(
		func(api *generator.API, _ preset.Options, _ *preset.Preset) error {
			return api.SetFile("README.md", []byte("# docs\n"))
		},
	)))
	opts := f.options()
	opts.Preset = "docs"
	opts.SkipInstall = true

	c, err := New(opts, deps)
	require.NoError(t, err)
	_, err = c.Create(context.Background())
	require.NoError(t, err)

	readme, err := os.ReadFile(filepath.Join(f.dir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# docs\n", string(readme))
}

func TestCreate_ForceOverwritesExistingReadme(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(f.dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "README.md"), []byte("old"), 0o644))

	opts := f.options()
	opts.Force = true
	c, err := New(opts, f.deps(t, map[string]any{"preset": preset.DefaultVue3}))
	require.NoError(t, err)
	_, err = c.Create(context.Background())
	require.NoError(t, err)

	readme, err := os.ReadFile(filepath.Join(f.dir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "npm run serve")
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{"valid", Options{Name: "a", Dir: "/tmp/a"}, ""},
		{"missing name", Options{Dir: "/tmp/a"}, "app-name is required"},
		{"bad package manager", Options{Name: "a", Dir: "/tmp/a", PackageManager: "bower"}, "package-manager must be one of: npm, yarn, pnpm"},
		{"bad registry", Options{Name: "a", Dir: "/tmp/a", Registry: "not a url"}, "registry must be a URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
