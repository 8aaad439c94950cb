package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xalexb/hjarta-props/extension"
)

func newMergeCommand(env *environment) *cobra.Command {
	var (
		defaults   []string
		registered []string
	)

	cmd := &cobra.Command{
		Use:   "merge KIND [REQUESTED]",
		Short: "Merge a requested extension list with defaults",
		Long: `Merge REQUESTED, a comma-separated list, with the --defaults for KIND and
print the resulting list. "default" marks where defaults are inserted,
"-name" excludes a name and "-default" drops every default.

Only defaults listed in --register are kept; without --register every
default counts as registered. When REQUESTED is omitted it is read from
the property named KIND, where "false", "0", "null" or "N/A" switch the
kind off and "true" selects the defaults alone.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]

			if !cmd.Flags().Changed("register") {
				registered = defaults
			}

			registry := extension.NewMapRegistry()
			registry.Register(kind, registered...)

			var names []string

			if len(args) == 2 {
				names = extension.MergeValues(registry, kind, args[1], defaults)
			} else {
				resolver, err := env.resolver(cmd.ErrOrStderr())
				if err != nil {
					return err
				}

				names = extension.MergeSetting(registry, kind, resolver.Get(kind), defaults)
			}

			fmt.Fprintln(cmd.OutOrStdout(), extension.Join(names))

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&defaults, "defaults", nil, "default extension names, in order")
	cmd.Flags().StringSliceVar(&registered, "register", nil, "extension names known for KIND")

	return cmd
}
