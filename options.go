package props

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"

	"github.com/0xalexb/hjarta-props/extension"
	"github.com/0xalexb/hjarta-props/inspect"
	"github.com/0xalexb/hjarta-props/listener"
	"github.com/0xalexb/hjarta-props/property"
)

// InspectListenerName names the listener added by WithInspectListener.
const InspectListenerName = "inspect"

// Options holds configuration settings for the application.
type Options struct {
	Modules      []fx.Option
	LogLevel     string
	LogFormat    string
	Settings     Settings
	SettingsFile string
	Overrides    []property.Overrides
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithHTTPListener adds a named HTTP listener module to the application.
// The name is used as both the Fx module name and the DI named tag for http.Handler and Config.
// When options are provided (e.g., WithAddress), Config is supplied to DI automatically.
// Call multiple times with different names to create multiple listeners.
func WithHTTPListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, listener.NewModule(name, opts...))
	}
}

// WithInspectListener adds the read-only property inspection listener.
func WithInspectListener(opts ...listener.Option) Option {
	return func(o *Options) {
		WithHTTPListener(InspectListenerName, opts...)(o)

		o.Modules = append(o.Modules, fx.Provide(
			fx.Annotate(
				func(resolver *property.Resolver, registry extension.Registry, logger *slog.Logger) http.Handler {
					return inspect.NewHandler(resolver, registry, logger)
				},
				fx.ParamTags("", "", `optional:"true"`),
				fx.ResultTags(fmt.Sprintf(`name:"%s"`, InspectListenerName)),
			),
		))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" (default) or "text" log output.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithSettings replaces the property store settings.
func WithSettings(settings Settings) Option {
	return func(opts *Options) {
		opts.Settings = settings
	}
}

// WithSettingsFile reads the property store settings from the props section
// of a YAML file, or the props.* keys of a .properties file, instead of the
// options.
func WithSettingsFile(path string) Option {
	return func(opts *Options) {
		opts.SettingsFile = path
	}
}

// WithPropertiesPath sets the properties source name.
func WithPropertiesPath(path string) Option {
	return func(opts *Options) {
		opts.Settings.Path = path
	}
}

// WithMultiFile toggles merging of every matching properties source.
func WithMultiFile(enabled bool) Option {
	return func(opts *Options) {
		opts.Settings.MultiFile = enabled
	}
}

// WithSearchPath sets the directories a relative properties name is looked up in.
func WithSearchPath(roots ...string) Option {
	return func(opts *Options) {
		opts.Settings.SearchPath = append([]string(nil), roots...)
	}
}

// WithPropertiesEncoding sets the encoding of .properties sources,
// EncodingUTF8 or EncodingLatin1.
func WithPropertiesEncoding(encoding string) Option {
	return func(opts *Options) {
		opts.Settings.Encoding = encoding
	}
}

// WithOverrides adds process override layers, consulted in the order given.
// Without any, environment variables are the override layer.
func WithOverrides(overrides ...property.Overrides) Option {
	return func(opts *Options) {
		opts.Overrides = append(opts.Overrides, overrides...)
	}
}
