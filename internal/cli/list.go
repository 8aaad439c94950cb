package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand(env *environment) *cobra.Command {
	var (
		raw    bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every stored property",
		Long:  `List the stored keys in sorted order with their resolved values.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolver, err := env.resolver(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			table := resolver.Store().Properties()
			keys := table.Keys()
			values := make(map[string]string, len(keys))

			for _, key := range keys {
				if raw {
					values[key] = table[key]
				} else {
					values[key] = resolver.Get(key)
				}
			}

			if asJSON {
				out, err := json.MarshalIndent(values, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling properties: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), string(out))

				return nil
			}

			for _, key := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, values[key])
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print stored values without placeholder expansion")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON object")

	return cmd
}
