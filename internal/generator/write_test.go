package generator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileOp_Validate(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "exists.txt")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))

	tests := []struct {
		name    string
		op      *WriteFileOp
		force   bool
		wantErr string
	}{
		{"new file", &WriteFileOp{Path: filepath.Join(dir, "a", "new.txt"), Content: []byte{}}, false, ""},
		{"nil content", &WriteFileOp{Path: filepath.Join(dir, "nil.txt")}, false, "content is nil"},
		{"conflict", &WriteFileOp{Path: existing, Content: []byte("y")}, false, "already exists"},
		{"conflict forced", &WriteFileOp{Path: existing, Content: []byte("y")}, true, ""},
		{"directory", &WriteFileOp{Path: dir, Content: []byte("y")}, true, "is a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op.Validate(context.Background(), tt.force)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := os.Stat(filepath.Join(dir, "a"))
	assert.True(t, os.IsNotExist(err), "validation must not create directories")
}

func TestWriteFileTree(t *testing.T) {
	root := t.TempDir()
	var out bytes.Buffer

	err := WriteFileTree(context.Background(), root, map[string][]byte{
		"package.json":   []byte("{}\n"),
		"docs/README.md": []byte("# hi\n"),
	}, ExecuteOptions{Writer: &out})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(root, "docs", "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# hi\n", string(content))
	assert.Contains(t, out.String(), "✓ Create")

	err = WriteFileTree(context.Background(), root, map[string][]byte{
		"package.json": []byte(`{"name":"again"}`),
	}, ExecuteOptions{Writer: &out})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	content, err = os.ReadFile(filepath.Join(root, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(content), "conflict is caught before anything is written")

	err = WriteFileTree(context.Background(), root, map[string][]byte{
		"package.json": []byte(`{"name":"again"}`),
	}, ExecuteOptions{Force: true, Writer: &out})
	require.NoError(t, err)

	content, err = os.ReadFile(filepath.Join(root, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"again"}`, string(content))
}

func TestWriteFileTree_DryRun(t *testing.T) {
	root := t.TempDir()
	var out bytes.Buffer

	err := WriteFileTree(context.Background(), root, map[string][]byte{
		"README.md": []byte("x"),
	}, ExecuteOptions{DryRun: true, Writer: &out})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "[DRY RUN]")
	_, err = os.Stat(filepath.Join(root, "README.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileTree_RejectsEscapingPath(t *testing.T) {
	err := WriteFileTree(context.Background(), t.TempDir(), map[string][]byte{
		"../evil": []byte("x"),
	}, ExecuteOptions{Writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes")
}

func TestWriteFileTree_FailureIsTyped(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, []byte("not a dir"), 0o644))

	err := WriteFileTree(context.Background(), root, map[string][]byte{
		"package.json": []byte("{}"),
	}, ExecuteOptions{Writer: &bytes.Buffer{}})

	var writeErr *FilesystemWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, filepath.Join(root, "package.json"), writeErr.Path)
}
