package config

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrEmptyData is returned by parsers when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// Parser decodes configuration data into a target structure.
//
// The path parameter selects a section of the document, using colon (:) as the
// separator for nested keys ("api:permissions"). An empty path means the whole
// document.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// TableParser decodes a property source into a flat key/value table.
// Nested structures are flattened to dotted keys.
type TableParser interface {
	ParseTable(data []byte) (map[string]string, error)
}

// DataFetcher reads raw configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Source is a DataFetcher that knows where its data comes from.
// Location is used in diagnostics and to pick a parser by file extension.
type Source interface {
	DataFetcher
	Location() string
}

// Locator enumerates every source visible under a logical (relative) name,
// in lookup order. Finding nothing is not an error.
type Locator interface {
	Locate(name string) ([]Source, error)
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that reads, parses, sets defaults, and validates configuration data.
func Provider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, fetcher DataFetcher) (*T, error) {
		data, err := fetcher.Fetch()
		if err != nil {
			return nil, fmt.Errorf("reading data error: %w", err)
		}

		err = parser.Parse(data, target, path)
		if err != nil {
			return nil, fmt.Errorf("parsing error: %w", err)
		}

		if defaulter, ok := any(target).(Defaulter); ok && defaulter.SetDefaults() {
			slog.Debug("defaults applied", slog.String("path", path))
		}

		if validator, ok := any(target).(Validator); ok {
			err := validator.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		return target, nil
	}
}
