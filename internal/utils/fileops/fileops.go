// Package fileops writes generated artifacts into the host project. Writes are
// unconditional: a re-run replaces whatever is on disk, hand edits included.
package fileops

import (
	"os"
	"path/filepath"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Operation describes what a write did (or would do in dry-run mode)
type Operation string

const (
	OpCreate    Operation = "create"
	OpOverwrite Operation = "overwrite"
)

// File is one piece of content destined for a project-relative path
type File struct {
	Path    string
	Content string
}

// WriteRecord reports a single write
type WriteRecord struct {
	Path      string
	Operation Operation
	Bytes     int
	DryRun    bool
}

// FileOps provides a unified interface for file operations under a project
// root, combining path validation and error handling
type FileOps struct {
	pathValidator *PathValidator
	errorWrapper  *ErrorWrapper
	dryRun        bool
}

// Option configures FileOps
type Option func(*FileOps)

// WithDryRun makes every write a no-op that is still reported
func WithDryRun(dryRun bool) Option {
	return func(fo *FileOps) {
		fo.dryRun = dryRun
	}
}

// NewFileOps creates a new FileOps rooted at the project directory
func NewFileOps(root string, opts ...Option) *FileOps {
	fo := &FileOps{
		pathValidator: NewPathValidator(root),
		errorWrapper:  NewErrorWrapper(),
	}
	for _, opt := range opts {
		opt(fo)
	}
	return fo
}

// DryRun reports whether writes are suppressed
func (fo *FileOps) DryRun() bool {
	return fo.dryRun
}

// ReadFile reads a project-relative file
func (fo *FileOps) ReadFile(relPath string) (string, error) {
	path, err := fo.pathValidator.Resolve(relPath)
	if err != nil {
		return "", fo.errorWrapper.WrapPathResolutionError(relPath, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fo.errorWrapper.WrapFileReadError(relPath, err)
	}
	return string(content), nil
}

// IsFile checks if a project-relative path is a regular file
func (fo *FileOps) IsFile(relPath string) bool {
	path, err := fo.pathValidator.Resolve(relPath)
	if err != nil {
		return false
	}
	return fo.pathValidator.IsFile(path)
}

// EnsureDir creates a directory and its parents; existing directories are fine
func (fo *FileOps) EnsureDir(relPath string) error {
	path, err := fo.pathValidator.Resolve(relPath)
	if err != nil {
		return fo.errorWrapper.WrapPathResolutionError(relPath, err)
	}
	if fo.dryRun {
		return nil
	}
	if err := os.MkdirAll(path, dirPerm); err != nil {
		return fo.errorWrapper.WrapDirectoryCreateError(relPath, err)
	}
	return nil
}

// WriteFile replaces the file at relPath, creating parent directories
func (fo *FileOps) WriteFile(relPath, content string) (WriteRecord, error) {
	path, err := fo.pathValidator.Resolve(relPath)
	if err != nil {
		return WriteRecord{}, fo.errorWrapper.WrapPathResolutionError(relPath, err)
	}

	record := WriteRecord{
		Path:      relPath,
		Operation: OpCreate,
		Bytes:     len(content),
		DryRun:    fo.dryRun,
	}
	if fo.pathValidator.IsFile(path) {
		record.Operation = OpOverwrite
	}

	if fo.dryRun {
		return record, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return WriteRecord{}, fo.errorWrapper.WrapDirectoryCreateError(filepath.ToSlash(filepath.Dir(relPath)), err)
	}
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return WriteRecord{}, fo.errorWrapper.WrapFileWriteError(relPath, err)
	}
	return record, nil
}

// Materialize writes files in order, stopping at the first failure. Records for
// the files written before the failure are still returned.
func (fo *FileOps) Materialize(dirs []string, files []File) ([]WriteRecord, error) {
	for _, dir := range dirs {
		if err := fo.EnsureDir(dir); err != nil {
			return nil, err
		}
	}

	records := make([]WriteRecord, 0, len(files))
	for _, f := range files {
		record, err := fo.WriteFile(f.Path, f.Content)
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
	return records, nil
}
