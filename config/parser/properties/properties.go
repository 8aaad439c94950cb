package properties

import (
	"fmt"
	"strings"

	"github.com/magiconair/properties"

	"github.com/0xalexb/hjarta-props/config"
)

// Parser implements config.Parser and config.TableParser for line-oriented
// key=value sources (also "key: value" and "key value"), with # and ! comments.
//
// Values are returned raw: ${...} references are left for the property
// resolver, which expands them against process overrides as well.
type Parser struct {
	encoding properties.Encoding
}

// NewParser creates a parser that reads UTF-8 sources.
func NewParser() *Parser {
	return &Parser{encoding: properties.UTF8}
}

// NewLatin1Parser creates a parser that reads ISO-8859-1 sources, the
// traditional encoding of .properties files.
func NewLatin1Parser() *Parser {
	return &Parser{encoding: properties.ISO_8859_1}
}

// ParseTable implements config.TableParser.
func (p *Parser) ParseTable(data []byte) (map[string]string, error) {
	props, err := p.load(data)
	if err != nil {
		return nil, err
	}

	return props.Map(), nil
}

// Parse decodes the source into target using `properties:"key"` struct tags.
// A non-empty path keeps only keys below it, colon-separated path segments
// mapping to dotted key prefixes ("app:db" selects "app.db.*").
func (p *Parser) Parse(data []byte, target any, path string) error {
	props, err := p.load(data)
	if err != nil {
		return err
	}

	if path != "" {
		props = props.FilterStripPrefix(strings.ReplaceAll(path, ":", ".") + ".")
		props.DisableExpansion = true
	}

	err = props.Decode(target)
	if err != nil {
		return fmt.Errorf("decode error: %w", err)
	}

	return nil
}

func (p *Parser) load(data []byte) (*properties.Properties, error) {
	if len(data) == 0 {
		return nil, config.ErrEmptyData
	}

	loader := &properties.Loader{
		Encoding:         p.encoding,
		DisableExpansion: true,
	}

	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return props, nil
}
