// Package project holds helpers for the directory a project is created in.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrTargetExists is returned when the target directory is not empty.
var ErrTargetExists = errors.New("target directory already exists and is not empty")

// HasGit reports whether a git binary is on PATH.
func HasGit() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsGitRepo reports whether dir or one of its parents is a git work tree.
func IsGitRepo(dir string) bool {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	for {
		if _, err := os.Stat(filepath.Join(abs, ".git")); err == nil {
			return true
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return false
		}
		abs = parent
	}
}

// EnsureTarget makes sure dir exists and may be written into. An existing
// non-empty directory is refused unless force is set.
func EnsureTarget(dir string, force bool) error {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("checking %s: %w", dir, err)
	case !info.IsDir():
		return fmt.Errorf("%s exists and is not a directory", dir)
	}

	if force {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%s: %w (use --force to write into it)", dir, ErrTargetExists)
	}
	return nil
}
