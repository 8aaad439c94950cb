package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/0xalexb/hjarta-props/config"
)

// SearchPath is a config.Locator over an ordered list of root directories,
// much like a class path: every root holding a regular file under the
// requested name contributes one source, in root order.
type SearchPath struct {
	roots []string
}

// NewSearchPath creates a SearchPath. Empty roots are skipped; with no roots
// the working directory is searched.
func NewSearchPath(roots ...string) *SearchPath {
	cleaned := make([]string, 0, len(roots))

	for _, root := range roots {
		if root != "" {
			cleaned = append(cleaned, filepath.Clean(root))
		}
	}

	if len(cleaned) == 0 {
		cleaned = append(cleaned, ".")
	}

	return &SearchPath{roots: cleaned}
}

// Roots returns the directories searched, in order.
func (s *SearchPath) Roots() []string {
	return append([]string(nil), s.roots...)
}

// Locate implements config.Locator.
// A root that cannot be inspected for a reason other than absence is reported
// through the returned error together with whatever was found elsewhere.
func (s *SearchPath) Locate(name string) ([]config.Source, error) {
	var (
		sources []config.Source
		errs    []error
	)

	for _, root := range s.roots {
		candidate := filepath.Join(root, name)

		stat, err := os.Stat(candidate)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, fmt.Errorf("stat %q: %w", candidate, err))
			}

			continue
		}

		if stat.Mode().IsRegular() {
			sources = append(sources, NewSource(candidate))
		}
	}

	return sources, errors.Join(errs...)
}

// FSLocator is a config.Locator over an fs.FS, searching one or more
// directories inside it. It serves embedded defaults and tests.
type FSLocator struct {
	fsys  fs.FS
	roots []string
}

// NewFSLocator creates an FSLocator; with no roots the FS root is searched.
func NewFSLocator(fsys fs.FS, roots ...string) *FSLocator {
	if len(roots) == 0 {
		roots = []string{"."}
	}

	return &FSLocator{fsys: fsys, roots: roots}
}

// Locate implements config.Locator.
func (l *FSLocator) Locate(name string) ([]config.Source, error) {
	var (
		sources []config.Source
		errs    []error
	)

	for _, root := range l.roots {
		candidate := path.Join(root, name)

		stat, err := fs.Stat(l.fsys, candidate)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, fmt.Errorf("stat %q: %w", candidate, err))
			}

			continue
		}

		if stat.Mode().IsRegular() {
			sources = append(sources, &fsSource{fsys: l.fsys, name: candidate})
		}
	}

	return sources, errors.Join(errs...)
}

type fsSource struct {
	fsys fs.FS
	name string
}

func (s *fsSource) Fetch() ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, s.name)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", s.name, err)
	}

	return data, nil
}

func (s *fsSource) Location() string {
	return s.name
}
