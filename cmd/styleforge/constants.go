package styleforge

const (
	defaultConfigPath = "./config.yaml"

	configFlagName  = "config"
	configFlagUsage = "Path to config.yaml"

	promptFlagName  = "prompt"
	promptFlagUsage = "Natural-language style request"

	templateFlagName  = "template"
	templateFlagUsage = "Apply a style template by name instead of --prompt"

	modelFlagName  = "model"
	modelFlagUsage = "Override the default model by name (must exist in models[])"

	timeoutFlagName  = "timeout"
	timeoutFlagUsage = "Per-call timeout (e.g., 90s; 0 = use config default)"

	outFlagName  = "out"
	outFlagUsage = "Directory to write generated artifacts into"

	archiveFlagName  = "archive"
	archiveFlagUsage = "Path of a zip archive to write (one flat entry per artifact)"

	environmentVariablePrefix        = "STYLEFORGE"
	endpointEnvironmentKey           = "endpoint"
	modelEnvironmentKey              = "model"
	defaultAPIEndpoint               = "https://api.openai.com/v1"
	defaultAPIKeyEnvironmentVariable = "OPENAI_API_KEY"
)
