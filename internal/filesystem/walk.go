package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// DefaultIgnoreDirs are directories never copied out of a template tree.
var DefaultIgnoreDirs = []string{
	"node_modules", ".git", ".svn", ".hg",
	"dist", ".idea", ".vscode", ".vs",
}

// DefaultIgnorePatterns are file patterns never copied out of a template tree.
var DefaultIgnorePatterns = []string{
	".DS_Store", "Thumbs.db", "*.swp", "*~",
}

// WalkOptions configures traversal.
type WalkOptions struct {
	IgnoreDirs     []string // Directories to skip (default: DefaultIgnoreDirs)
	IgnorePatterns []string // File patterns to skip (default: DefaultIgnorePatterns)
	IncludeHidden  bool     // Include dot files and dot directories
}

// Walk visits every file and directory under root in lexical order.
// Return fs.SkipDir from the visitor to skip a directory.
func Walk(fsys fs.FS, root string, opts WalkOptions, visitor func(p string, d fs.DirEntry) error) error {
	ignoreDirs := opts.IgnoreDirs
	if ignoreDirs == nil {
		ignoreDirs = DefaultIgnoreDirs
	}
	patterns := opts.IgnorePatterns
	if patterns == nil {
		patterns = DefaultIgnorePatterns
	}

	return fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return visitor(p, d)
		}

		name := d.Name()
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			for _, ignore := range ignoreDirs {
				if name == ignore {
					return fs.SkipDir
				}
			}
			return visitor(p, d)
		}

		for _, pattern := range patterns {
			if matched, _ := path.Match(pattern, name); matched {
				return nil
			}
		}
		return visitor(p, d)
	})
}

// ListFiles returns the files under root as slash-separated paths relative
// to root, sorted.
func ListFiles(fsys fs.FS, root string, opts WalkOptions) ([]string, error) {
	var files []string
	err := Walk(fsys, root, opts, func(p string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		if root == "." {
			rel = p
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing templates in %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// TargetName maps a template path to the path written in the project.
// Each segment starting with "_" becomes a dot segment; "__" keeps one "_".
func TargetName(rel string) string {
	segments := strings.Split(rel, "/")
	for i, s := range segments {
		switch {
		case strings.HasPrefix(s, "__"):
			segments[i] = s[1:]
		case strings.HasPrefix(s, "_"):
			segments[i] = "." + s[1:]
		}
	}
	return strings.Join(segments, "/")
}
