package styleforge

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var appLogger = zap.NewNop()

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "styleforge",
		Short:         "Restyle a set of documents with a generated shared stylesheet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCommand())
	root.AddCommand(newHistoryCommand())
	root.AddCommand(newTemplatesCommand())
	root.AddCommand(newModelsCommand())
	return root
}

// Execute runs the CLI with the provided application logger.
func Execute(logger *zap.Logger) error {
	if logger != nil {
		appLogger = logger
	}
	return newRootCommand().Execute()
}
