package styleforge

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/styleforge/styleforge/internal/config"
	"github.com/styleforge/styleforge/internal/fsops"
	"github.com/styleforge/styleforge/internal/kvstore"
	"github.com/styleforge/styleforge/internal/llm"
	"github.com/styleforge/styleforge/internal/runlog"
	"github.com/styleforge/styleforge/internal/templates"
	"github.com/styleforge/styleforge/internal/workspace"
)

// environment is the application context assembled once per invocation and
// passed to the command handlers.
type environment struct {
	root      config.Root
	store     kvstore.Store
	runLog    *runlog.History
	catalog   *templates.Catalog
	workspace *workspace.Workspace
	gateway   llm.Gateway
	model     config.Model
	timeout   time.Duration
}

func loadRootConfiguration(configurationPath string) (config.Root, error) {
	configurationLoader, loaderErr := config.NewDefaultRootConfigurationLoader()
	if loaderErr != nil {
		return config.Root{}, fmt.Errorf("initialize configuration loader: %w", loaderErr)
	}
	configurationSource, sourceErr := configurationLoader.Load(configurationPath)
	if sourceErr != nil {
		if configurationPath == "" || configurationPath == defaultConfigPath {
			configurationSource, sourceErr = configurationLoader.Load("")
		}
		if sourceErr != nil {
			return config.Root{}, fmt.Errorf("resolve configuration source: %w", sourceErr)
		}
	}
	rootConfiguration, loadErr := config.LoadRoot(configurationSource)
	if loadErr != nil {
		return config.Root{}, fmt.Errorf("load configuration %s: %w", configurationSource.Reference, loadErr)
	}
	return rootConfiguration, nil
}

// environmentOverrides reads STYLEFORGE_* variables for the endpoint and
// model selection.
func environmentOverrides() *viper.Viper {
	overrides := viper.New()
	overrides.SetEnvPrefix(environmentVariablePrefix)
	overrides.AutomaticEnv()
	return overrides
}

func buildEnvironment(configurationPath, modelOverride string, timeoutOverride time.Duration) (*environment, error) {
	rootConfiguration, err := loadRootConfiguration(configurationPath)
	if err != nil {
		return nil, err
	}

	overrides := environmentOverrides()

	endpoint := strings.TrimSpace(rootConfiguration.Common.API.Endpoint)
	if fromEnv := strings.TrimSpace(overrides.GetString(endpointEnvironmentKey)); fromEnv != "" {
		endpoint = fromEnv
	}
	if endpoint == "" {
		endpoint = defaultAPIEndpoint
	}

	modelName := strings.TrimSpace(modelOverride)
	if modelName == "" {
		modelName = strings.TrimSpace(overrides.GetString(modelEnvironmentKey))
	}
	var model config.Model
	if modelName != "" {
		found, ok := rootConfiguration.FindModel(modelName)
		if !ok {
			return nil, fmt.Errorf("model %q not found in models[]", modelName)
		}
		model = found
	} else {
		defaultModel, ok := rootConfiguration.DefaultModel()
		if !ok {
			return nil, fmt.Errorf("no default model configured")
		}
		model = defaultModel
	}

	apiKeyEnvironmentVariable := strings.TrimSpace(rootConfiguration.Common.API.APIKeyEnv)
	if apiKeyEnvironmentVariable == "" {
		apiKeyEnvironmentVariable = defaultAPIKeyEnvironmentVariable
	}
	apiKey := strings.TrimSpace(os.Getenv(apiKeyEnvironmentVariable))

	timeout := time.Duration(rootConfiguration.Common.Defaults.TimeoutSeconds) * time.Second
	if timeoutOverride > 0 {
		timeout = timeoutOverride
	}

	filesystem := fsops.NewOS()
	store := kvstore.NewFile(filesystem, rootConfiguration.StatePath(os.Getenv("HOME")))

	seeds := make([]templates.StyleTemplate, 0, len(rootConfiguration.Templates))
	for _, seed := range rootConfiguration.Templates {
		seeds = append(seeds, templates.StyleTemplate{
			ID:        seed.ID,
			Name:      seed.Name,
			Prompt:    seed.Prompt,
			LikeCount: seed.LikeCount,
		})
	}

	return &environment{
		root:      rootConfiguration,
		store:     store,
		runLog:    runlog.Load(store, appLogger),
		catalog:   templates.Load(store, seeds, appLogger),
		workspace: workspace.New(store, appLogger),
		gateway: llm.Gateway{
			Client:              llm.Client{HTTPBaseURL: endpoint, APIKey: apiKey},
			DefaultModel:        model.ModelID,
			DefaultTokens:       model.MaxCompletionTokens,
			DefaultTemp:         model.DefaultTemperature,
			SupportsTemperature: model.SupportsTemperature,
			Logger:              appLogger,
		},
		model:   model,
		timeout: timeout,
	}, nil
}
