// Package discover walks a project root and collects the source files a
// build should compile, matching the include/exclude glob patterns given
// in Options.
//
// Grounded on termfx-morfx's core/filewalker.go glob-driven file walk.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern is the glob used when Options.Include is empty.
const DefaultPattern = "**/*.ion"

// Options controls which files Sources returns.
type Options struct {
	Include []string // doublestar patterns, relative to root; defaults to DefaultPattern
	Exclude []string // doublestar patterns excluded after Include matches
}

// Sources walks root and returns every regular file matching at least one
// Include pattern and no Exclude pattern, sorted for deterministic build
// ordering (compilation must be independent of directory-walk order).
func Sources(root string, opts Options) ([]string, error) {
	include := opts.Include
	if len(include) == 0 {
		include = []string{DefaultPattern}
	}

	fsys := os.DirFS(root)
	var matches []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		included := false
		for _, pat := range include {
			ok, err := doublestar.Match(pat, path)
			if err != nil {
				return err
			}
			if ok {
				included = true
				break
			}
		}
		if !included {
			return nil
		}
		for _, pat := range opts.Exclude {
			ok, err := doublestar.Match(pat, path)
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
		}
		matches = append(matches, filepath.Join(root, path))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
