package generator

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Operation is a file system change that can be checked, then performed.
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp writes one file, creating parent directories.
type WriteFileOp struct {
	Path    string
	Content []byte
	Mode    fs.FileMode
}

// Validate rejects nil content, a directory at Path, and, unless force is
// set, an existing file.
func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}
	info, err := os.Stat(op.Path)
	if err != nil {
		return nil
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory: %s", op.Path)
	}
	if !force {
		return fmt.Errorf("file already exists: %s", op.Path)
	}
	return nil
}

// Execute writes the file.
func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(op.Path), 0o755); err != nil {
		return &FilesystemWriteError{Path: op.Path, Err: err}
	}
	if err := os.WriteFile(op.Path, op.Content, op.Mode); err != nil {
		return &FilesystemWriteError{Path: op.Path, Err: err}
	}
	return nil
}

// Description is the line reported for the operation.
func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}

// ExecuteOptions configures Execute.
type ExecuteOptions struct {
	DryRun bool
	Force  bool
	Writer io.Writer // Where to report (defaults to os.Stdout)
}

// Execute validates every operation, then runs or reports them in order.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	for _, op := range ops {
		if err := op.Validate(ctx, opts.Force); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.DryRun {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
			continue
		}
		if err := op.Execute(ctx); err != nil {
			return err
		}
		fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
	}
	return nil
}

// WriteFileTree writes files, keyed by project-relative path, under root.
// Existing files are overwritten only when opts.Force is set.
func WriteFileTree(ctx context.Context, root string, files map[string][]byte, opts ExecuteOptions) error {
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ops := make([]Operation, 0, len(files))
	for _, rel := range keys {
		key, err := CleanPath(rel)
		if err != nil {
			return err
		}
		ops = append(ops, &WriteFileOp{
			Path:    filepath.Join(root, filepath.FromSlash(key)),
			Content: files[rel],
			Mode:    0o644,
		})
	}

	return Execute(ctx, ops, opts)
}
