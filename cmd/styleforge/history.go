package styleforge

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCommand() *cobra.Command {
	configPath := defaultConfigPath

	command := &cobra.Command{
		Use:   "history",
		Short: "Inspect the persisted log of completed runs",
	}
	command.PersistentFlags().StringVar(&configPath, configFlagName, defaultConfigPath, configFlagUsage)

	list := &cobra.Command{
		Use:   "list",
		Short: "List persisted runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnvironment(configPath, "", 0)
			if err != nil {
				return err
			}
			records := env.runLog.List()
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
				return nil
			}
			for _, record := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d artifact(s)  %q\n",
					record.ID, record.Timestamp.Format("2006-01-02 15:04"), len(record.Artifacts), record.Prompt)
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete one persisted run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnvironment(configPath, "", 0)
			if err != nil {
				return err
			}
			env.runLog.Remove(args[0])
			return nil
		},
	}

	command.AddCommand(list, remove)
	return command
}
