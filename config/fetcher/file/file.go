package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements config.Source for a single file.
// It reads the file at construction time and caches the contents.
type Fetcher struct {
	filepath string
	data     []byte
}

// NewFetcher returns a constructor function that creates a new file-based Fetcher
// with the specified filepath. The file is read at construction time and cached.
// This pattern is Fx-friendly, allowing the DI container to control when instantiation happens.
// Returns an error if the file cannot be read or if the path points to a directory.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		data, err := readRegular(cleanPath)
		if err != nil {
			return nil, err
		}

		return &Fetcher{
			filepath: cleanPath,
			data:     data,
		}, nil
	}
}

// Fetch returns a copy of the cached data that was read at construction time.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}

// Location returns the cleaned path the data was read from.
func (f *Fetcher) Location() string {
	return f.filepath
}

// Source implements config.Source for a file that is read on every Fetch.
// Locators hand these out so that a broken file only fails when it is used.
type Source struct {
	filepath string
}

// NewSource creates a Source for fpath without touching the filesystem.
func NewSource(fpath string) *Source {
	return &Source{filepath: filepath.Clean(fpath)}
}

// Fetch reads the file.
func (s *Source) Fetch() ([]byte, error) {
	return readRegular(s.filepath)
}

// Location returns the cleaned path of the file.
func (s *Source) Location() string {
	return s.filepath
}

func readRegular(cleanPath string) ([]byte, error) {
	stat, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
	}

	return data, nil
}
