package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator resolves project-relative paths and keeps them inside the
// project root
type PathValidator struct {
	root string
}

// NewPathValidator creates a new PathValidator rooted at root
func NewPathValidator(root string) *PathValidator {
	if root == "" {
		root = "."
	}
	return &PathValidator{root: filepath.Clean(root)}
}

// Resolve maps a slash-separated project-relative path to a filesystem path
// under the root. Absolute paths and paths escaping the root are rejected.
func (pv *PathValidator) Resolve(relPath string) (string, error) {
	if relPath == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	native := filepath.FromSlash(relPath)
	if filepath.IsAbs(native) {
		return "", fmt.Errorf("absolute paths are not allowed: %s", relPath)
	}

	cleanRel := filepath.Clean(native)
	if cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal not allowed in file path: %s", relPath)
	}

	return filepath.Join(pv.root, cleanRel), nil
}

// IsFile checks if a path exists and is a regular file
func (pv *PathValidator) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
