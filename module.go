package props

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"go.uber.org/fx"

	"github.com/0xalexb/hjarta-props/config"
	filefetcher "github.com/0xalexb/hjarta-props/config/fetcher/file"
	propparser "github.com/0xalexb/hjarta-props/config/parser/properties"
	yamlparser "github.com/0xalexb/hjarta-props/config/parser/yaml"
	"github.com/0xalexb/hjarta-props/extension"
	"github.com/0xalexb/hjarta-props/property"
)

// SettingsPath is the section read by WithSettingsFile: the props mapping of a
// YAML file, or the props.* keys of a .properties file.
const SettingsPath = "props"

// Encodings accepted for .properties sources.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "iso-8859-1"
)

// ErrEmptySearchRoot is returned when the search path holds a blank root.
var ErrEmptySearchRoot = errors.New("search path root must not be empty")

// ErrUnknownEncoding is returned for an unsupported .properties encoding.
var ErrUnknownEncoding = errors.New("unknown properties encoding")

// Settings controls where the property store loads its sources from.
// It satisfies config.Defaulter and config.Validator.
type Settings struct {
	// Path overrides the properties source name. When empty the name comes
	// from the hjarta.properties.file override, HJARTA_PROPERTIES_FILE or
	// the built-in default.
	Path string `properties:"path,default=" yaml:"path"`
	// MultiFile merges every matching source instead of the first one.
	MultiFile bool `properties:"multi_file,default=false" yaml:"multi_file"`
	// Optional silences the warning for a missing source.
	Optional bool `properties:"optional,default=false" yaml:"optional"`
	// SearchPath lists the directories a relative name is looked up in.
	SearchPath []string `properties:"search_path,default=" yaml:"search_path"`
	// Encoding of .properties sources: utf-8 (default) or iso-8859-1.
	Encoding string `properties:"encoding,default=" yaml:"encoding"`
}

// SetDefaults fills unset fields and reports whether anything changed.
func (s *Settings) SetDefaults() bool {
	changed := false

	if len(s.SearchPath) == 0 {
		s.SearchPath = []string{"."}
		changed = true
	}

	if s.Encoding == "" {
		s.Encoding = EncodingUTF8
		changed = true
	}

	return changed
}

// Validate validates the Settings.
func (s *Settings) Validate() error {
	for i, root := range s.SearchPath {
		if root == "" {
			return fmt.Errorf("%w: entry %d", ErrEmptySearchRoot, i)
		}
	}

	_, err := s.propertiesParser()

	return err
}

// propertiesParser returns the .properties parser for s.Encoding; empty means UTF-8.
func (s *Settings) propertiesParser() (*propparser.Parser, error) {
	switch strings.ToLower(s.Encoding) {
	case "", EncodingUTF8, "utf8":
		return propparser.NewParser(), nil
	case EncodingLatin1, "latin1":
		return propparser.NewLatin1Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, s.Encoding)
	}
}

// overrides puts an explicit Path behind base, so a process override of
// property.PathKey still wins.
func (s *Settings) overrides(base property.Overrides) property.Overrides {
	if s.Path == "" {
		return base
	}

	return property.Chain(base, property.MapOverrides{property.PathKey: s.Path})
}

// NewStore builds the lazily loaded property store described by settings.
// Nothing is read until the store is first accessed. settings is not modified.
func NewStore(settings *Settings, overrides property.Overrides, logger *slog.Logger) (*property.Store, error) {
	var effective Settings

	if settings != nil {
		effective = *settings
	}

	effective.SetDefaults()

	err := effective.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid property settings: %w", err)
	}

	parser, err := effective.propertiesParser()
	if err != nil {
		return nil, fmt.Errorf("invalid property settings: %w", err)
	}

	loader := property.NewLoader(
		property.WithLocator(filefetcher.NewSearchPath(effective.SearchPath...)),
		property.WithParser("", parser),
		property.WithLogger(logger),
	)

	return loader.StoreFor(effective.overrides(overrides), property.LoadOptions{
		MultiFile: effective.MultiFile,
		MustExist: !effective.Optional,
	}), nil
}

// NewResolver binds the store to the process overrides.
func NewResolver(settings *Settings, store *property.Store, overrides property.Overrides) *property.Resolver {
	if settings == nil {
		settings = &Settings{}
	}

	return property.NewResolver(store, settings.overrides(overrides))
}

// Module provides *property.Store, *property.Resolver, and an extension
// registry (as both extension.Registry and *extension.MapRegistry).
// It expects *Settings and property.Overrides in the container; NewApp
// supplies both. *slog.Logger is used when present.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Module() fx.Option {
	return fx.Module("props",
		fx.Provide(
			fx.Annotate(NewStore, fx.ParamTags("", "", `optional:"true"`)),
			NewResolver,
			fx.Annotate(extension.NewMapRegistry, fx.As(fx.Self()), fx.As(new(extension.Registry))),
		),
	)
}

// SettingsParser picks the parser for a settings file: .properties files are
// read as key=value pairs, anything else as YAML.
//
//nolint:ireturn // callers only need config.Parser
func SettingsParser(path string) config.Parser {
	if strings.EqualFold(filepath.Ext(path), ".properties") {
		return propparser.NewParser()
	}

	return yamlparser.NewParser()
}

// settingsFileModule reads *Settings from the props section of a settings file.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func settingsFileModule(path string) fx.Option {
	return fx.Module("props.settings",
		fx.Provide(
			func() config.Parser { return SettingsParser(path) },
			fx.Annotate(filefetcher.NewFetcher(path), fx.As(new(config.DataFetcher))),
			fx.Private,
		),
		fx.Provide(config.Provider(&Settings{}, SettingsPath)),
	)
}
