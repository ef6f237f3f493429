package scan

import (
	"fmt"
	"os"
	"path/filepath"
)

// itemRef is a discovered entry sitting exactly at the scan level.
type itemRef struct {
	path  string // absolute path
	name  string // path relative to the scan root
	isDir bool
}

type dirWork struct {
	path       string
	rel        string
	childLevel int
}

// discover walks root deep enough to reach level and calls emit for every
// entry at exactly that level, whatever its type. Directories above the
// level are descended, other entries there are ignored. Symbolic links are
// never followed.
func discover(root string, level int, emit func(itemRef) error) error {
	stack := []dirWork{{path: root, childLevel: 0}}

	for len(stack) > 0 {
		work := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(work.path)
		if err != nil {
			return fmt.Errorf("failed to read directory %s: %w", work.path, err)
		}

		for _, de := range entries {
			name := de.Name()
			if work.rel != "" {
				name = filepath.Join(work.rel, de.Name())
			}
			childPath := filepath.Join(work.path, de.Name())

			if work.childLevel == level {
				if err := emit(itemRef{path: childPath, name: name, isDir: de.IsDir()}); err != nil {
					return err
				}
				continue
			}
			if de.IsDir() {
				stack = append(stack, dirWork{
					path:       childPath,
					rel:        name,
					childLevel: work.childLevel + 1,
				})
			}
		}
	}
	return nil
}
