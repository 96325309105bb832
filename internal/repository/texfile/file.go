package texfile

import (
	"os"
	"strings"
	"sync"

	"texglossary/internal/domain"

	"github.com/google/renameio/v2"
)

const defaultFileMode = 0o644

// FileRepo implements repository.GlossaryFile on a plain UTF-8 text file
type FileRepo struct {
	path string
	mu   sync.Mutex
}

// NewFileRepo creates a repository for the glossary file at path
func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

// Path returns the glossary file location
func (r *FileRepo) Path() string {
	return r.path
}

// Append writes block at the end of the file. Existing content is never read.
func (r *FileRepo) Append(block string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, defaultFileMode)
	if err != nil {
		return &domain.IOError{Op: "open", Path: r.path, Err: err}
	}

	if _, err := f.WriteString(block); err != nil {
		f.Close()
		return &domain.IOError{Op: "write", Path: r.path, Err: err}
	}

	if err := f.Close(); err != nil {
		return &domain.IOError{Op: "close", Path: r.path, Err: err}
	}

	return nil
}

// RemoveFirst cuts the first occurrence of block out of the file.
// The file is left untouched when block is not found.
func (r *FileRepo) RemoveFirst(block string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return &domain.IOError{Op: "read", Path: r.path, Err: err}
	}

	content := string(data)
	idx := strings.Index(content, block)
	if idx < 0 {
		return domain.ErrUndoMismatch
	}

	return r.replace(content[:idx] + content[idx+len(block):])
}

// replace swaps the file for one holding content via a sibling temp file and rename,
// so a crash mid-write leaves the previous file intact.
func (r *FileRepo) replace(content string) error {
	err := renameio.WriteFile(r.path, []byte(content), defaultFileMode, renameio.WithExistingPermissions())
	if err != nil {
		return &domain.IOError{Op: "replace", Path: r.path, Err: err}
	}
	return nil
}
