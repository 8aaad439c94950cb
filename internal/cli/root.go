// Package cli implements the hjarta-props command line: property lookups,
// extension list merges and the inspection listener.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables bound to the global flags,
// e.g. HJARTA_MULTI_FILE for --multi-file.
const EnvPrefix = "HJARTA"

const (
	keyProperties = "properties"
	keyMultiFile  = "multi-file"
	keyOptional   = "optional"
	keySearchPath = "search-path"
	keyEncoding   = "encoding"
	keySettings   = "settings"
	keyLogLevel   = "log-level"
	keyLogFormat  = "log-format"
	keyDefine     = "define"
)

// NewRootCommand builds the command tree. Each call returns an independent
// tree with its own flag and viper state.
func NewRootCommand() *cobra.Command {
	env := &environment{v: viper.New()}

	root := &cobra.Command{
		Use:   "hjarta-props",
		Short: "Resolve layered properties and merge extension lists",
		Long: `hjarta-props reads a properties source (key=value or YAML), overlays
process overrides given with -D, and expands ${name} placeholders.

Examples:
  hjarta-props get db.url
  hjarta-props -D db.host=prod-db get db.url
  hjarta-props --multi-file --search-path /etc/app --search-path . list
  hjarta-props merge filter "cors,default,-trace" --defaults auth,trace
  hjarta-props serve --address 127.0.0.1:7070`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String(keyProperties, "", "properties source name or absolute path (default hjarta.properties)")
	flags.Bool(keyMultiFile, false, "merge every matching source instead of the first one")
	flags.Bool(keyOptional, false, "do not warn when no properties source is found")
	flags.StringSlice(keySearchPath, nil, "directories a relative source name is looked up in (default .)")
	flags.String(keyEncoding, "", "encoding of .properties sources: utf-8 or iso-8859-1 (default utf-8)")
	flags.String(keySettings, "", "YAML or .properties file whose props section holds the source settings")
	flags.String(keyLogLevel, "warn", "log level: debug, info, warn, error")
	flags.String(keyLogFormat, "text", "log format: text or json")
	flags.StringToStringVarP(&env.defines, keyDefine, "D", nil, "process override as key=value, repeatable")

	env.bind(flags)

	root.AddCommand(
		newGetCommand(env),
		newListCommand(env),
		newMergeCommand(env),
		newServeCommand(env),
		newVersionCommand(),
	)

	return root
}

// Execute runs the command line with os.Args and reports failures on stderr.
func Execute(ctx context.Context) error {
	root := NewRootCommand()

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}

	return err
}

func envKeyReplacer() *strings.Replacer {
	return strings.NewReplacer("-", "_", ".", "_")
}
