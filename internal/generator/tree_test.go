package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "src/main.js", want: "src/main.js"},
		{in: "./src//App.vue", want: "src/App.vue"},
		{in: `public\index.html`, want: "public/index.html"},
		{in: "src/../README.md", want: "README.md"},
		{in: "", wantErr: true},
		{in: ".", wantErr: true},
		{in: "/etc/passwd", wantErr: true},
		{in: "../outside", wantErr: true},
		{in: "src/../../outside", wantErr: true},
		{in: `C:\Windows`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := CleanPath(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileTree_TextAndOrder(t *testing.T) {
	tree := NewFileTree()
	require.NoError(t, tree.SetText("src/main.js", []byte("a")))
	require.NoError(t, tree.SetText("README.md", []byte("b")))
	require.NoError(t, tree.SetText("./src/main.js", []byte("c")))

	assert.Equal(t, []string{"src/main.js", "README.md"}, tree.Paths())
	assert.Equal(t, []string{"README.md", "src/main.js"}, tree.SortedPaths())

	content, ok, err := tree.Text("src/main.js")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "c", string(content))

	assert.True(t, tree.Delete("README.md"))
	assert.False(t, tree.Delete("README.md"))
	assert.Equal(t, 1, tree.Len())
}

func TestFileTree_MergeJSON(t *testing.T) {
	tree := NewFileTree()
	require.NoError(t, tree.SetText("jsconfig.json", []byte(`{"compilerOptions":{"target":"es5"}}`)))
	require.NoError(t, tree.MergeJSON("jsconfig.json", map[string]any{
		"compilerOptions": map[string]any{"module": "esnext"},
	}))

	data, ok, err := tree.JSON("jsconfig.json")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"compilerOptions": map[string]any{"target": "es5", "module": "esnext"},
	}, data)

	content, _, err := tree.Text("jsconfig.json")
	require.NoError(t, err)
	assert.Contains(t, string(content), `"module": "esnext"`)
}

func TestFileTree_MergeJSONRejectsNonObjectText(t *testing.T) {
	tree := NewFileTree()
	require.NoError(t, tree.SetText("notes.txt", []byte("plain words")))

	err := tree.MergeJSON("notes.txt", map[string]any{"a": 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a JSON object")
}

func TestFileTree_JSONReturnsCopy(t *testing.T) {
	tree := NewFileTree()
	require.NoError(t, tree.MergeJSON("a.json", map[string]any{"k": map[string]any{"v": 1}}))

	data, _, _ := tree.JSON("a.json")
	data["k"].(map[string]any)["v"] = 2

	again, _, _ := tree.JSON("a.json")
	assert.Equal(t, 1, again["k"].(map[string]any)["v"])
}
