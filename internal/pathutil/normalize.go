package pathutil

import (
	"path/filepath"
	"strings"
)

// Normalize returns a canonical filesystem path string.
// It removes trailing slashes, collapses "." and "..", and
// preserves relative paths when provided.
func Normalize(path string) string {
	if path == "" {
		return path
	}
	return filepath.Clean(path)
}

// Depth returns the number of path components of path below root: 0 for
// root itself, 1 for a direct child. Paths outside root return -1.
func Depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return -1
	}
	if rel == "." {
		return 0
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return -1
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
