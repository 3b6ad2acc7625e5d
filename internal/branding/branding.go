// Package branding provides compile-time identity values for the CLI.
//
// The identity lives in branding.yaml next to this file and is baked into the
// binary with //go:embed. The solution publisher name is part of the identity
// because generated Dataverse solutions are stamped with it.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	GoModule      string `yaml:"go_module"`
	PublisherName string `yaml:"publisher_name"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:       "m3652cs",
			DisplayName:   "M365 → Copilot Studio Converter",
			Description:   "Convert Microsoft 365 declarative agent packages into Copilot Studio artifacts",
			HomeDir:       ".m3652cs",
			EnvPrefix:     "M3652CS",
			GoModule:      "github.com/lawrencefrias/M365-Copilot-Agent-Converter",
			PublisherName: "m3652cs",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "m3652cs").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".m3652cs").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "M3652CS").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// PublisherName returns the Dataverse publisher unique name stamped on
// generated solutions (e.g., "m3652cs").
func PublisherName() string { load(); return defaults.PublisherName }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("LOG_LEVEL") → "M3652CS_LOG_LEVEL".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
