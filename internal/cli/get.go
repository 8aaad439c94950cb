package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrPropertyNotFound is returned by get when the key has no value and no
// fallback was given.
var ErrPropertyNotFound = errors.New("property not found")

func newGetCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY [FALLBACK]",
		Short: "Print the resolved value of a property",
		Long: `Print the resolved value of KEY. A -D override wins over the properties
source; placeholders in stored values are expanded. Without FALLBACK an
unknown key is an error.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := env.resolver(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			key := args[0]

			if len(args) == 2 {
				fmt.Fprintln(cmd.OutOrStdout(), resolver.GetOr(key, args[1]))

				return nil
			}

			value, found := resolver.Lookup(key)
			if !found {
				return fmt.Errorf("%w: %s", ErrPropertyNotFound, key)
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)

			return nil
		},
	}
}
