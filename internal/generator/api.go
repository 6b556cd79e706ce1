package generator

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/simonhull/firebird-suite/hatch/internal/filesystem"
	"github.com/simonhull/firebird-suite/hatch/internal/merge"
	"github.com/simonhull/firebird-suite/hatch/internal/pkgjson"
)

// PackageFile is the package descriptor's path in the file tree.
const PackageFile = "package.json"

// API is handed to one plugin's generator. Every change it makes goes to
// the engine's shared package fields and file tree.
type API struct {
	id     string
	engine *Engine
}

// ID returns the plugin id this API is bound to.
func (a *API) ID() string {
	return a.id
}

// HasPlugin reports whether id is one of the plugins being applied.
func (a *API) HasPlugin(id string) bool {
	return a.engine.hasPlugin(id)
}

// ExtendPackage deep-merges fields into package.json.
func (a *API) ExtendPackage(fields map[string]any) {
	a.engine.pkg = merge.Deep(a.engine.pkg, fields)
}

// Package returns a copy of the current package.json fields.
func (a *API) Package() map[string]any {
	return merge.CloneMap(a.engine.pkg)
}

// Render copies the template tree under dir in fsys into the project.
// Files ending in .tmpl are rendered with data and lose the suffix.
func (a *API) Render(fsys fs.FS, dir string, data any) error {
	files, err := filesystem.ListFiles(fsys, dir, filesystem.WalkOptions{})
	if err != nil {
		return err
	}

	for _, rel := range files {
		source := path.Join(dir, rel)
		target := filesystem.TargetName(rel)

		var content []byte
		if strings.HasSuffix(rel, ".tmpl") {
			target = strings.TrimSuffix(target, ".tmpl")
			content, err = a.engine.renderer.RenderFS(a.id, fsys, source, data)
		} else {
			content, err = fs.ReadFile(fsys, source)
		}
		if err != nil {
			return fmt.Errorf("rendering %s: %w", rel, err)
		}

		if err := a.SetFile(target, content); err != nil {
			return err
		}
	}
	return nil
}

// RenderMap renders each source template string to its target path.
func (a *API) RenderMap(files map[string]string, data any) error {
	for _, target := range sortedKeys(files) {
		content, err := a.engine.renderer.RenderString(a.id+":"+target, files[target], data)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", target, err)
		}
		if err := a.SetFile(target, content); err != nil {
			return err
		}
	}
	return nil
}

// SetFile writes raw content. Writing package.json merges the parsed
// content into the package fields instead.
func (a *API) SetFile(p string, content []byte) error {
	key, err := CleanPath(p)
	if err != nil {
		return err
	}
	if key == PackageFile {
		fields, err := pkgjson.Decode(content)
		if err != nil {
			return err
		}
		a.ExtendPackage(fields)
		return nil
	}
	return a.engine.files.SetText(key, content)
}

// File returns the current content of p.
func (a *API) File(p string) ([]byte, bool, error) {
	key, err := CleanPath(p)
	if err != nil {
		return nil, false, err
	}
	if key == PackageFile {
		out, err := pkgjson.Encode(a.engine.pkg)
		return out, true, err
	}
	return a.engine.files.Text(key)
}

// SetJSON deep-merges data into the structured file at p.
func (a *API) SetJSON(p string, data map[string]any) error {
	key, err := CleanPath(p)
	if err != nil {
		return err
	}
	if key == PackageFile {
		a.ExtendPackage(data)
		return nil
	}
	return a.engine.files.MergeJSON(key, data)
}

// JSON returns a copy of the structured content at p.
func (a *API) JSON(p string) (map[string]any, bool, error) {
	key, err := CleanPath(p)
	if err != nil {
		return nil, false, err
	}
	if key == PackageFile {
		return a.Package(), true, nil
	}
	return a.engine.files.JSON(key)
}

// DeleteFile removes p from the project and reports whether it existed.
func (a *API) DeleteFile(p string) bool {
	return a.engine.files.Delete(p)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
