package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	props "github.com/0xalexb/hjarta-props"
	"github.com/0xalexb/hjarta-props/config"
	filefetcher "github.com/0xalexb/hjarta-props/config/fetcher/file"
	"github.com/0xalexb/hjarta-props/logging"
	"github.com/0xalexb/hjarta-props/property"
)

// environment collects global flag values, their HJARTA_* environment
// fallbacks, and the -D overrides.
type environment struct {
	v       *viper.Viper
	defines map[string]string
}

func (e *environment) bind(flags *pflag.FlagSet) {
	e.v.SetEnvPrefix(EnvPrefix)
	e.v.SetEnvKeyReplacer(envKeyReplacer())
	e.v.AutomaticEnv()

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name == keyDefine {
			return
		}

		// BindPFlag only fails for a nil flag.
		err := e.v.BindPFlag(flag.Name, flag)
		if err != nil {
			panic(fmt.Sprintf("binding flag %q: %v", flag.Name, err))
		}
	})
}

// settings starts from the --settings file, if any, and applies the flags
// and environment variables that were set explicitly.
func (e *environment) settings() (*props.Settings, error) {
	settings := &props.Settings{}

	if file := e.v.GetString(keySettings); file != "" {
		fetcher, err := filefetcher.NewFetcher(file)()
		if err != nil {
			return nil, fmt.Errorf("reading settings file: %w", err)
		}

		settings, err = config.Provider(settings, props.SettingsPath)(props.SettingsParser(file), fetcher)
		if err != nil {
			return nil, fmt.Errorf("loading settings file %q: %w", file, err)
		}
	}

	if e.v.IsSet(keyProperties) {
		settings.Path = e.v.GetString(keyProperties)
	}

	if e.v.IsSet(keyMultiFile) {
		settings.MultiFile = e.v.GetBool(keyMultiFile)
	}

	if e.v.IsSet(keyOptional) {
		settings.Optional = e.v.GetBool(keyOptional)
	}

	if e.v.IsSet(keySearchPath) {
		settings.SearchPath = e.v.GetStringSlice(keySearchPath)
	}

	if e.v.IsSet(keyEncoding) {
		settings.Encoding = e.v.GetString(keyEncoding)
	}

	return settings, nil
}

// overrides serves -D pairs first, then environment variables. The pairs stay
// flat: "db.host" never shadows "db".
//
//nolint:ireturn // the chain is an interface by design
func (e *environment) overrides() property.Overrides {
	defined := make(property.MapOverrides, len(e.defines))

	for key, value := range e.defines {
		defined[key] = value
	}

	return property.Chain(defined, property.EnvOverrides{})
}

func (e *environment) loggerConfig() logging.LoggerConfig {
	return logging.LoggerConfig{
		Level:  e.v.GetString(keyLogLevel),
		Format: e.v.GetString(keyLogFormat),
	}
}

func (e *environment) logger(w io.Writer) *slog.Logger {
	return logging.NewLogger(e.loggerConfig(), w)
}

// resolver builds a lazily loaded resolver; diagnostics go to w.
func (e *environment) resolver(w io.Writer) (*property.Resolver, error) {
	settings, err := e.settings()
	if err != nil {
		return nil, err
	}

	overrides := e.overrides()

	store, err := props.NewStore(settings, overrides, e.logger(w))
	if err != nil {
		return nil, fmt.Errorf("creating property store: %w", err)
	}

	return props.NewResolver(settings, store, overrides), nil
}
