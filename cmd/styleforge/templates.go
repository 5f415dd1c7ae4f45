package styleforge

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/styleforge/styleforge/internal/templates"
)

func newTemplatesCommand() *cobra.Command {
	configPath := defaultConfigPath

	command := &cobra.Command{
		Use:   "templates",
		Short: "Manage the style template catalog",
	}
	command.PersistentFlags().StringVar(&configPath, configFlagName, defaultConfigPath, configFlagUsage)

	printEntries := func(cmd *cobra.Command, entries []templates.StyleTemplate) {
		for _, entry := range entries {
			liked := " "
			if entry.IsLiked {
				liked = "*"
			}
			origin := "stock"
			if entry.IsUserAuthored {
				origin = "yours"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %3d  %-8s %-24s %s\n", liked, entry.LikeCount, origin, entry.Name, entry.Prompt)
		}
	}

	list := &cobra.Command{
		Use:   "list [query]",
		Short: "List templates, optionally filtered by substring",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnvironment(configPath, "", 0)
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			printEntries(cmd, env.catalog.Search(query))
			return nil
		},
	}

	save := &cobra.Command{
		Use:   "save <name> <prompt>",
		Short: "Save a new user-authored template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnvironment(configPath, "", 0)
			if err != nil {
				return err
			}
			entry, saveErr := env.catalog.Save(args[0], args[1])
			if saveErr != nil {
				return saveErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s)\n", entry.Name, entry.ID)
			return nil
		},
	}

	like := &cobra.Command{
		Use:   "like <id>",
		Short: "Toggle the liked flag on a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnvironment(configPath, "", 0)
			if err != nil {
				return err
			}
			return env.catalog.Like(args[0])
		},
	}

	rename := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a user-authored template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnvironment(configPath, "", 0)
			if err != nil {
				return err
			}
			return env.catalog.Rename(args[0], args[1])
		},
	}

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user-authored template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnvironment(configPath, "", 0)
			if err != nil {
				return err
			}
			return env.catalog.Delete(args[0])
		},
	}

	command.AddCommand(list, save, like, rename, remove)
	return command
}
