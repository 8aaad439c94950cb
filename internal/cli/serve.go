package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	props "github.com/0xalexb/hjarta-props"
	"github.com/0xalexb/hjarta-props/listener"
)

func newServeCommand(env *environment) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only property inspection endpoint",
		Long: `Serve GET /properties, GET /properties/{key} and
GET /extensions/{kind}?requested=...&defaults=... until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := env.settings()
			if err != nil {
				return err
			}

			loggerConfig := env.loggerConfig()

			app := props.NewApp(
				props.WithLogLevel(loggerConfig.Level),
				props.WithLogFormat(loggerConfig.Format),
				props.WithSettings(*settings),
				props.WithOverrides(env.overrides()),
				props.WithInspectListener(listener.WithAddress(address)),
			)

			err = app.Start()
			if err != nil {
				return err
			}

			<-cmd.Context().Done()

			err = app.Stop()
			if err != nil {
				return fmt.Errorf("stopping: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", listener.DefaultAddress, "listen address")

	return cmd
}
