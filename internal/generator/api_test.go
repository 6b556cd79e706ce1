package generator

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/hatch/internal/preset"
)

func newTestAPI(t *testing.T, id string) (*API, *Engine) {
	t.Helper()
	e := newTestEngine(t, t.TempDir(), Plugin{ID: id})
	return &API{id: id, engine: e}, e
}

func TestAPI_Render(t *testing.T) {
	api, e := newTestAPI(t, preset.CoreServiceID)
	templates := fstest.MapFS{
		"template/_gitignore":          {Data: []byte("node_modules\n")},
		"template/public/favicon.ico":  {Data: []byte{0x00, 0x01}},
		"template/src/App.vue.tmpl":    {Data: []byte("<h1>{{ .projectName }}</h1>\n")},
		"template/README.md.tmpl":      {Data: []byte("# {{ pascalCase .projectName }}\n")},
		"template/src/.DS_Store":       {Data: []byte{}},
		"template/node_modules/x/a.js": {Data: []byte{}},
		"template/package.json":        {Data: []byte(`{"browserslist":["> 1%"]}`)},
	}

	require.NoError(t, api.Render(templates, "template", map[string]any{"projectName": "my-app"}))

	assert.Equal(t, []string{".gitignore", "README.md", "public/favicon.ico", "src/App.vue"}, e.Files().SortedPaths())

	app, ok, err := e.Files().Text("src/App.vue")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "<h1>my-app</h1>\n", string(app))

	readme, _, _ := e.Files().Text("README.md")
	assert.Equal(t, "# MyApp\n", string(readme))

	assert.Equal(t, []any{"> 1%"}, api.Package()["browserslist"], "package.json templates merge into the package")
}

func TestAPI_RenderMap(t *testing.T) {
	api, e := newTestAPI(t, "x")
	require.NoError(t, api.RenderMap(map[string]string{
		"src/router/index.js": "mode: '{{ if .history }}history{{ else }}hash{{ end }}'",
	}, map[string]any{"history": true}))

	content, _, _ := e.Files().Text("src/router/index.js")
	assert.Equal(t, "mode: 'history'", string(content))
}

func TestAPI_FileOperations(t *testing.T) {
	api, _ := newTestAPI(t, "x")

	require.NoError(t, api.SetFile("src/main.js", []byte("v1")))
	content, ok, err := api.File("src/main.js")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v1", string(content))

	assert.True(t, api.DeleteFile("src/main.js"))
	_, ok, _ = api.File("src/main.js")
	assert.False(t, ok)

	assert.Error(t, api.SetFile("../outside.js", []byte("x")))
	assert.Error(t, api.SetFile("/abs.js", []byte("x")))
}

func TestAPI_PackageJSONRoutesToPackage(t *testing.T) {
	api, e := newTestAPI(t, "x")

	require.NoError(t, api.SetJSON("package.json", map[string]any{"scripts": map[string]any{"build": "b"}}))
	require.NoError(t, api.SetFile("./package.json", []byte(`{"scripts":{"serve":"s"}}`)))

	assert.False(t, e.Files().Has("package.json"), "package.json never lives in the file tree")

	pkg, ok, err := api.JSON("package.json")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"build": "b", "serve": "s"}, pkg["scripts"])

	content, _, err := api.File("package.json")
	require.NoError(t, err)
	assert.Contains(t, string(content), `"name": "my-app"`)

	assert.Error(t, api.SetFile("package.json", []byte("not json")))
}

func TestAPI_PackageIsACopy(t *testing.T) {
	api, _ := newTestAPI(t, "x")
	pkg := api.Package()
	pkg["name"] = "changed"
	assert.Equal(t, "my-app", api.Package()["name"])
}

func TestAPI_SetJSON(t *testing.T) {
	api, _ := newTestAPI(t, "x")
	require.NoError(t, api.SetJSON("jsconfig.json", map[string]any{"compilerOptions": map[string]any{"target": "es5"}}))
	require.NoError(t, api.SetJSON("jsconfig.json", map[string]any{"compilerOptions": map[string]any{"baseUrl": "./"}}))

	data, ok, err := api.JSON("jsconfig.json")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"target": "es5", "baseUrl": "./"}, data["compilerOptions"])
}
