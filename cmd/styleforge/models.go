package styleforge

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newModelsCommand() *cobra.Command {
	configPath := defaultConfigPath

	command := &cobra.Command{
		Use:   "models",
		Short: "List models available at the configured endpoint (best effort)",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnvironment(configPath, "", 0)
			if err != nil {
				return err
			}
			descriptors := env.gateway.ListLocalModels(cmd.Context())
			if len(descriptors) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no models reported by the endpoint")
				return nil
			}
			for _, descriptor := range descriptors {
				fmt.Fprintf(cmd.OutOrStdout(), "%-32s %s\n", descriptor.ID, descriptor.OwnedBy)
			}
			return nil
		},
	}
	command.Flags().StringVar(&configPath, configFlagName, defaultConfigPath, configFlagUsage)
	return command
}
