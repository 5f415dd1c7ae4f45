package styleforge

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/styleforge/styleforge/internal/export"
	"github.com/styleforge/styleforge/internal/fsops"
	"github.com/styleforge/styleforge/internal/pipeline"
)

type runCommandOptions struct {
	configPath   string
	prompt       string
	templateName string
	model        string
	timeout      time.Duration
	outDir       string
	archivePath  string
}

func newRunCommand() *cobra.Command {
	options := &runCommandOptions{configPath: defaultConfigPath}

	command := &cobra.Command{
		Use:   "run [files...]",
		Short: "Generate a shared stylesheet and rewrite each document to match",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeneration(cmd, args, *options)
		},
	}

	command.Flags().StringVar(&options.configPath, configFlagName, defaultConfigPath, configFlagUsage)
	command.Flags().StringVar(&options.prompt, promptFlagName, "", promptFlagUsage)
	command.Flags().StringVar(&options.templateName, templateFlagName, "", templateFlagUsage)
	command.Flags().StringVar(&options.model, modelFlagName, "", modelFlagUsage)
	command.Flags().DurationVar(&options.timeout, timeoutFlagName, 0, timeoutFlagUsage)
	command.Flags().StringVar(&options.outDir, outFlagName, "", outFlagUsage)
	command.Flags().StringVar(&options.archivePath, archiveFlagName, "", archiveFlagUsage)

	return command
}

func runGeneration(cmd *cobra.Command, paths []string, options runCommandOptions) error {
	env, err := buildEnvironment(options.configPath, options.model, options.timeout)
	if err != nil {
		return err
	}

	filesystem := fsops.NewOS()
	for _, path := range paths {
		content, readErr := filesystem.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("read input %s: %w", path, readErr)
		}
		if _, admitted := env.workspace.AddFile(filesystem.Base(path), string(content), pipeline.SourceUser); !admitted {
			// Admission past the cap truncates silently.
			break
		}
	}

	if options.templateName != "" {
		prompt, resolveErr := resolveTemplatePrompt(env, options.templateName)
		if resolveErr != nil {
			return resolveErr
		}
		env.workspace.ApplyTemplatePrompt(prompt, pipeline.SourceUser)
	} else {
		env.workspace.SetPrompt(options.prompt, pipeline.SourceUser)
	}

	orchestrator := pipeline.NewOrchestrator(env.gateway, env.runLog, appLogger)
	orchestrator.SetProgress(func(message string) {
		fmt.Fprintln(cmd.OutOrStdout(), message)
	})

	result, runErr := orchestrator.Start(cmd.Context(), env.workspace.Snapshot(), pipeline.RunOptions{
		Model:   env.model.ModelID,
		Timeout: env.timeout,
	})
	if runErr != nil {
		return runErr
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", warning)
	}

	if options.outDir != "" {
		if err := export.SaveAll(filesystem, options.outDir, result.Artifacts); err != nil {
			return err
		}
	}
	if options.archivePath != "" {
		if err := export.SaveArchive(filesystem, options.archivePath, result.Artifacts); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "generated %d artifact(s) for prompt %q\n", len(result.Artifacts), result.Record.Prompt)
	if len(result.Warnings) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "run completed with findings; not added to history")
	}
	return nil
}

func resolveTemplatePrompt(env *environment, name string) (string, error) {
	for _, entry := range env.catalog.List() {
		if strings.EqualFold(entry.Name, name) {
			return entry.Prompt, nil
		}
	}
	return "", fmt.Errorf("template %q not found", name)
}
