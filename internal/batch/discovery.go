package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// photoFilter decides which paths count as monitor photos. Patterns are
// shell globs matched against the base name only.
type photoFilter struct {
	include []string
	exclude []string
}

func (f photoFilter) match(path string) bool {
	base := filepath.Base(path)
	if matchBase(base, f.exclude) {
		return false
	}
	// No include patterns means everything not excluded passes.
	if len(f.include) == 0 {
		return true
	}
	return matchBase(base, f.include)
}

func matchBase(base string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// discoverPhotos expands each argument into photo paths. Directory arguments
// are walked in lexical order, descending into subdirectories only when
// recursive is set. Explicit file arguments still pass through the filter.
func discoverPhotos(args []string, recursive bool, filter photoFilter) ([]string, error) {
	var photos []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if !info.IsDir() {
			if filter.match(arg) {
				photos = append(photos, arg)
			}
			continue
		}

		walkErr := filepath.WalkDir(arg, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				if !recursive && path != arg {
					return fs.SkipDir
				}
				return nil
			}
			if filter.match(path) {
				photos = append(photos, path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	return photos, nil
}
