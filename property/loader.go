package property

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/0xalexb/hjarta-props/config"
	"github.com/0xalexb/hjarta-props/config/fetcher/file"
	propparser "github.com/0xalexb/hjarta-props/config/parser/properties"
	yamlparser "github.com/0xalexb/hjarta-props/config/parser/yaml"
)

// ErrNoSource is reported when a required properties source is not found.
var ErrNoSource = errors.New("no properties source found")

// ErrAmbiguousSource is reported when several sources are found but only one
// is loaded. It is logged, not returned: the first source wins.
var ErrAmbiguousSource = errors.New("more than one properties source found")

// LoadOptions controls how a relative source name is loaded.
type LoadOptions struct {
	// MultiFile merges every located source, later ones overwriting earlier
	// keys. Otherwise only the first located source is read.
	MultiFile bool
	// MustExist logs a warning when no source is found.
	MustExist bool
}

// Loader builds property tables from sources. It never fails: unreadable or
// malformed sources are logged and skipped.
type Loader struct {
	locator  config.Locator
	parsers  map[string]config.TableParser
	fallback config.TableParser
	logger   *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLocator sets where relative names are looked up.
// The default searches the working directory.
func WithLocator(locator config.Locator) LoaderOption {
	return func(l *Loader) {
		l.locator = locator
	}
}

// WithParser registers parser for sources whose location ends in ext (".yaml").
// An empty ext replaces the fallback parser used for every other extension.
func WithParser(ext string, parser config.TableParser) LoaderOption {
	return func(l *Loader) {
		if ext == "" {
			l.fallback = parser

			return
		}

		l.parsers[strings.ToLower(ext)] = parser
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader reading .properties sources, and YAML sources
// for the .yaml and .yml extensions.
func NewLoader(opts ...LoaderOption) *Loader {
	yaml := yamlparser.NewParser()

	loader := &Loader{
		locator: file.NewSearchPath(),
		parsers: map[string]config.TableParser{
			".yaml": yaml,
			".yml":  yaml,
		},
		fallback: propparser.NewParser(),
		logger:   nil,
	}

	for _, apply := range opts {
		apply(loader)
	}

	if loader.logger == nil {
		loader.logger = slog.Default()
	}

	return loader
}

// Load reads the properties published under name.
//
// An absolute name is read directly as one file. A relative name goes through
// the locator: with no match the table is empty; in single-file mode the first
// match is read, with a warning when there are more; in multi-file mode every
// match is read and overlaid in order.
func (l *Loader) Load(name string, opts LoadOptions) Table {
	if filepath.IsAbs(name) {
		return l.loadAbsolute(name)
	}

	sources, err := l.locator.Locate(name)
	if err != nil {
		l.logger.Warn("failed to look up properties sources", slog.String("name", name), slog.Any("error", err))
	}

	if len(sources) == 0 {
		if opts.MustExist {
			l.logger.Warn("properties source not found", slog.String("name", name), slog.Any("error", ErrNoSource))
		}

		return Table{}
	}

	if !opts.MultiFile {
		if len(sources) > 1 {
			l.logger.Warn("only one properties source is expected, using the first",
				slog.String("name", name),
				slog.Any("sources", locations(sources)),
				slog.Any("error", ErrAmbiguousSource),
			)
		}

		table, err := l.read(sources[0])
		if err != nil {
			l.skip(name, sources[0].Location(), err)

			return Table{}
		}

		return table
	}

	l.logger.Info("loading properties sources", slog.String("name", name), slog.Any("sources", locations(sources)))

	merged := Table{}

	for _, source := range sources {
		table, err := l.read(source)
		if err != nil {
			l.skip(name, source.Location(), err)

			continue
		}

		merged = merged.Overlay(table)
	}

	return merged
}

// StoreFor returns a Store that, on first access, loads the source named by
// ResolvePath(overrides).
func (l *Loader) StoreFor(overrides Overrides, opts LoadOptions) *Store {
	return NewStore(func() Table {
		return l.Load(ResolvePath(overrides), opts)
	})
}

func (l *Loader) loadAbsolute(name string) Table {
	fetcher, err := file.NewFetcher(name)()
	if err != nil {
		l.skip(name, name, err)

		return Table{}
	}

	table, err := l.read(fetcher)
	if err != nil {
		l.skip(name, name, err)

		return Table{}
	}

	return table
}

func (l *Loader) read(source config.Source) (Table, error) {
	data, err := source.Fetch()
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", source.Location(), err)
	}

	table, err := l.parserFor(source.Location()).ParseTable(data)
	if errors.Is(err, config.ErrEmptyData) {
		return Table{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", source.Location(), err)
	}

	return Table(table), nil
}

func (l *Loader) parserFor(location string) config.TableParser {
	if parser, ok := l.parsers[strings.ToLower(filepath.Ext(location))]; ok {
		return parser
	}

	return l.fallback
}

func (l *Loader) skip(name, location string, err error) {
	l.logger.Warn("failed to load properties source, ignoring it",
		slog.String("name", name),
		slog.String("location", location),
		slog.Any("error", err),
	)
}

func locations(sources []config.Source) []string {
	result := make([]string, 0, len(sources))
	for _, source := range sources {
		result = append(result, source.Location())
	}

	return result
}
