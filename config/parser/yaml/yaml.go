package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/hjarta-props/config"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = config.ErrEmptyData

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// Parser implements config.Parser and config.TableParser for YAML data.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses YAML data and unmarshals it into the target.
// The path parameter specifies a navigation path using colon (:) as separator.
// Empty path parses the entire document.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	pathObj, err := yaml.PathString(convertToYAMLPath(path))
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	err = pathObj.Read(bytes.NewReader(data), target)
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	return nil
}

// ParseTable flattens a YAML mapping into dotted property keys:
//
//	app:
//	  name: demo        -> app.name=demo
//	  filters: [a, b]   -> app.filters=a,b
//	  hosts:
//	    - {port: 80}    -> app.hosts.0.port=80
//
// Lists of scalars are joined with commas so they read as extension lists.
// Null values become empty strings. A document that is empty after comments
// yields an empty table.
func (p *Parser) ParseTable(data []byte) (map[string]string, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	var document map[string]any

	err := yaml.Unmarshal(data, &document)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	table := make(map[string]string)
	flatten(table, "", document)

	return table, nil
}

func flatten(table map[string]string, prefix string, value any) {
	switch typed := value.(type) {
	case map[string]any:
		for key, child := range typed {
			flatten(table, join(prefix, key), child)
		}
	case map[any]any:
		for key, child := range typed {
			flatten(table, join(prefix, fmt.Sprint(key)), child)
		}
	case []any:
		if scalars, ok := scalarList(typed); ok {
			table[prefix] = strings.Join(scalars, ",")

			return
		}

		for i, child := range typed {
			flatten(table, join(prefix, strconv.Itoa(i)), child)
		}
	case nil:
		if prefix != "" {
			table[prefix] = ""
		}
	default:
		table[prefix] = fmt.Sprint(typed)
	}
}

func scalarList(values []any) ([]string, bool) {
	scalars := make([]string, 0, len(values))

	for _, value := range values {
		switch value.(type) {
		case map[string]any, map[any]any, []any:
			return nil, false
		case nil:
			scalars = append(scalars, "")
		default:
			scalars = append(scalars, fmt.Sprint(value))
		}
	}

	return scalars, true
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}

// convertToYAMLPath converts a colon-separated path to goccy/go-yaml PathString format.
// Examples:
//   - "key" -> "$.key"
//   - "api:permissions" -> "$.api.permissions"
func convertToYAMLPath(path string) string {
	return "$." + strings.ReplaceAll(path, ":", ".")
}
