package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	emptyModelsErrorMessage               = "config.models is empty"
	missingDefaultModelErrorMessage       = "no default model found (set models[].default: true)"
	rootConfigurationEmptyContentFormat   = "root configuration %s is empty"
	rootConfigurationUnmarshalErrorFormat = "unmarshal root configuration %s: %w"
)

type Root struct {
	Common    Common     `yaml:"common"`
	Models    []Model    `yaml:"models"`
	Templates []Template `yaml:"templates"`
}

type Common struct {
	API struct {
		Endpoint  string `yaml:"endpoint"`
		APIKeyEnv string `yaml:"api_key_env"`
	} `yaml:"api"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Defaults struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"defaults"`
	// StatePath overrides where the persisted key-value state lives.
	// Empty means ~/.styleforge/state.json.
	StatePath string `yaml:"state_path"`
}

type Model struct {
	Name                string  `yaml:"name"`
	ModelID             string  `yaml:"model_id"`
	Default             bool    `yaml:"default"`
	SupportsTemperature bool    `yaml:"supports_temperature"`
	DefaultTemperature  float64 `yaml:"default_temperature"`
	MaxCompletionTokens int     `yaml:"max_completion_tokens"`
}

// Template is a stock style template seeded into the catalog.
type Template struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Prompt    string `yaml:"prompt"`
	LikeCount int    `yaml:"like_count"`
}

// LoadRoot parses the provided configuration source and validates required
// fields.
func LoadRoot(source RootConfigurationSource) (Root, error) {
	if len(source.Content) == 0 {
		return Root{}, fmt.Errorf(rootConfigurationEmptyContentFormat, source.Reference)
	}

	var rootConfiguration Root
	if err := yaml.Unmarshal(source.Content, &rootConfiguration); err != nil {
		return Root{}, fmt.Errorf(rootConfigurationUnmarshalErrorFormat, source.Reference, err)
	}

	if len(rootConfiguration.Models) == 0 {
		return Root{}, errors.New(emptyModelsErrorMessage)
	}
	if _, ok := rootConfiguration.DefaultModel(); !ok {
		return Root{}, errors.New(missingDefaultModelErrorMessage)
	}
	return rootConfiguration, nil
}

func (root Root) DefaultModel() (Model, bool) {
	for _, modelConfiguration := range root.Models {
		if modelConfiguration.Default {
			return modelConfiguration, true
		}
	}
	return Model{}, false
}

func (root Root) FindModel(name string) (Model, bool) {
	for _, modelConfiguration := range root.Models {
		if modelConfiguration.Name == name {
			return modelConfiguration, true
		}
	}
	return Model{}, false
}
