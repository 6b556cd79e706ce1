package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Transaction stages file writes and commits them as a batch. If any write
// fails, files written earlier in the batch are restored or removed, and
// directories the batch created are removed when empty.
type Transaction struct {
	operations []fileOperation
	committed  bool
}

type fileOperation struct {
	path    string
	content []byte
	mode    os.FileMode
}

// writtenFile remembers what a path held before the transaction wrote it.
type writtenFile struct {
	path     string
	existed  bool
	previous []byte
	mode     os.FileMode
}

// NewTransaction creates an empty transaction.
func NewTransaction() *Transaction {
	return &Transaction{operations: make([]fileOperation, 0)}
}

// AddFile stages a write. Nothing touches the disk until Commit.
func (t *Transaction) AddFile(path string, content []byte, mode os.FileMode) {
	t.operations = append(t.operations, fileOperation{path: path, content: content, mode: mode})
}

// Len returns the number of staged writes.
func (t *Transaction) Len() int {
	return len(t.operations)
}

// Commit writes every staged file. The first failure rolls back the batch
// and is returned as a *FilesystemWriteError.
func (t *Transaction) Commit() error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	var written []writtenFile
	var createdDirs []string

	for _, op := range t.operations {
		dir := filepath.Dir(op.path)
		missing := missingDirs(dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.rollback(written, createdDirs)
			return &FilesystemWriteError{Path: op.path, Err: err}
		}
		createdDirs = append(createdDirs, missing...)

		record := writtenFile{path: op.path}
		if info, err := os.Stat(op.path); err == nil {
			if info.IsDir() {
				t.rollback(written, createdDirs)
				return &FilesystemWriteError{Path: op.path, Err: fmt.Errorf("path is a directory")}
			}
			prev, err := os.ReadFile(op.path)
			if err != nil {
				t.rollback(written, createdDirs)
				return &FilesystemWriteError{Path: op.path, Err: err}
			}
			record.existed, record.previous, record.mode = true, prev, info.Mode().Perm()
		}

		if err := os.WriteFile(op.path, op.content, op.mode); err != nil {
			t.rollback(written, createdDirs)
			return &FilesystemWriteError{Path: op.path, Err: err}
		}
		written = append(written, record)
	}

	t.committed = true
	return nil
}

// rollback is best effort: errors are ignored.
func (t *Transaction) rollback(written []writtenFile, createdDirs []string) {
	for i := len(written) - 1; i >= 0; i-- {
		w := written[i]
		if w.existed {
			_ = os.WriteFile(w.path, w.previous, w.mode)
			continue
		}
		_ = os.Remove(w.path)
	}
	for i := len(createdDirs) - 1; i >= 0; i-- {
		_ = os.Remove(createdDirs[i])
	}
}

// missingDirs lists dir and its ancestors that do not exist yet, outermost
// first.
func missingDirs(dir string) []string {
	var missing []string
	for {
		_, err := os.Stat(dir)
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			break
		}
		missing = append([]string{dir}, missing...)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return missing
}
