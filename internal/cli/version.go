package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	props "github.com/0xalexb/hjarta-props"
)

func newVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), props.Version)

				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "hjarta-props version %s (commit: %s, built: %s)\n",
				props.Version, props.Commit, props.CompiledAt)

			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print version number only")

	return cmd
}
