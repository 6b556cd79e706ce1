package generator

import (
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/simonhull/firebird-suite/hatch/internal/merge"
	"github.com/simonhull/firebird-suite/hatch/internal/pkgjson"
)

// fileEntry holds either raw text or structured JSON content.
type fileEntry struct {
	text []byte
	data map[string]any
}

// FileTree is the in-memory project: relative path to content.
type FileTree struct {
	order   []string
	entries map[string]*fileEntry
}

// NewFileTree creates an empty tree.
func NewFileTree() *FileTree {
	return &FileTree{entries: make(map[string]*fileEntry)}
}

// CleanPath normalizes a project-relative path. Absolute paths and paths
// escaping the project root are rejected.
func CleanPath(p string) (string, error) {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	if p == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}
	if path.IsAbs(p) || (len(p) > 1 && p[1] == ':') {
		return "", fmt.Errorf("file path %q must be relative", p)
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("file path %q escapes the project root", p)
	}
	return cleaned, nil
}

// SetText stores raw content, replacing any existing entry.
func (t *FileTree) SetText(p string, content []byte) error {
	key, err := CleanPath(p)
	if err != nil {
		return err
	}
	buf := make([]byte, len(content))
	copy(buf, content)
	t.put(key, &fileEntry{text: buf})
	return nil
}

// MergeJSON deep-merges data into the structured entry at p. An existing
// text entry is parsed first and must hold a JSON object.
func (t *FileTree) MergeJSON(p string, data map[string]any) error {
	key, err := CleanPath(p)
	if err != nil {
		return err
	}

	current := map[string]any{}
	if existing, ok := t.entries[key]; ok {
		switch {
		case existing.data != nil:
			current = existing.data
		case len(existing.text) > 0:
			if err := json.Unmarshal(existing.text, &current); err != nil {
				return fmt.Errorf("%s is not a JSON object: %w", key, err)
			}
		}
	}
	t.put(key, &fileEntry{data: merge.Deep(current, data)})
	return nil
}

// Text returns the content at p, encoding structured entries as JSON.
func (t *FileTree) Text(p string) ([]byte, bool, error) {
	key, err := CleanPath(p)
	if err != nil {
		return nil, false, err
	}
	e, ok := t.entries[key]
	if !ok {
		return nil, false, nil
	}
	content, err := e.bytes()
	return content, true, err
}

// JSON returns a copy of the structured content at p. A text entry is
// parsed on demand.
func (t *FileTree) JSON(p string) (map[string]any, bool, error) {
	key, err := CleanPath(p)
	if err != nil {
		return nil, false, err
	}
	e, ok := t.entries[key]
	if !ok {
		return nil, false, nil
	}
	if e.data != nil {
		return merge.CloneMap(e.data), true, nil
	}
	var out map[string]any
	if err := json.Unmarshal(e.text, &out); err != nil {
		return nil, true, fmt.Errorf("%s is not a JSON object: %w", key, err)
	}
	return out, true, nil
}

// Has reports whether p exists.
func (t *FileTree) Has(p string) bool {
	key, err := CleanPath(p)
	if err != nil {
		return false
	}
	_, ok := t.entries[key]
	return ok
}

// Delete removes p and reports whether it existed.
func (t *FileTree) Delete(p string) bool {
	key, err := CleanPath(p)
	if err != nil {
		return false
	}
	if _, ok := t.entries[key]; !ok {
		return false
	}
	delete(t.entries, key)
	for i, existing := range t.order {
		if existing == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// Paths returns every path in insertion order.
func (t *FileTree) Paths() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// SortedPaths returns every path sorted.
func (t *FileTree) SortedPaths() []string {
	out := t.Paths()
	sort.Strings(out)
	return out
}

// Len returns the number of files.
func (t *FileTree) Len() int { return len(t.order) }

func (t *FileTree) put(key string, e *fileEntry) {
	if _, ok := t.entries[key]; !ok {
		t.order = append(t.order, key)
	}
	t.entries[key] = e
}

func (e *fileEntry) bytes() ([]byte, error) {
	if e.data != nil {
		return pkgjson.Encode(e.data)
	}
	out := make([]byte, len(e.text))
	copy(out, e.text)
	return out, nil
}
