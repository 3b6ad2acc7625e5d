package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/branding"
	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/dataverse"
	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/solution"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"

	// DotEnvFile is read from the working directory when present.
	DotEnvFile = ".env"
)

// Setting keys.
const (
	KeyLogLevel  = "log.level"
	KeyLogFormat = "log.format"

	KeyDataverseURL          = "dataverse.url"
	KeyDataverseTenantID     = "dataverse.tenant_id"
	KeyDataverseClientID     = "dataverse.client_id"
	KeyDataverseClientSecret = "dataverse.client_secret"

	KeySolutionVersion       = "solution.version"
	KeySolutionPublisher     = "solution.publisher"
	KeySolutionPublisherName = "solution.publisher_name"
	KeySolutionPrefix        = "solution.prefix"
	KeySolutionLanguageCode  = "solution.language_code"
	KeySolutionManaged       = "solution.managed"
)

// plainEnv maps keys to the unprefixed variable names used by existing
// Dataverse tooling.
var plainEnv = map[string]string{
	KeyDataverseURL:          "DATAVERSE_URL",
	KeyDataverseTenantID:     "TENANT_ID",
	KeyDataverseClientID:     "CLIENT_ID",
	KeyDataverseClientSecret: "CLIENT_SECRET",
}

// Dir returns the path to the config directory (~/.m3652cs/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.m3652cs/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file, a .env file in the
// working directory, and the environment.
func Load() {
	// Ignore a missing .env; it is optional.
	_ = LoadDotEnv(DotEnvFile)

	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for key, plain := range plainEnv {
		_ = viper.BindEnv(key, branding.EnvVar(strings.ReplaceAll(key, ".", "_")), plain)
	}

	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyLogFormat, "text")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Dataverse returns the provisioning credentials.
func Dataverse() dataverse.Credentials {
	return dataverse.Credentials{
		URL:          viper.GetString(KeyDataverseURL),
		TenantID:     viper.GetString(KeyDataverseTenantID),
		ClientID:     viper.GetString(KeyDataverseClientID),
		ClientSecret: viper.GetString(KeyDataverseClientSecret),
	}
}

// SolutionOverrides returns the solution.* settings that are explicitly set.
func SolutionOverrides() solution.Overrides {
	var o solution.Overrides
	if viper.IsSet(KeySolutionVersion) {
		v := viper.GetString(KeySolutionVersion)
		o.Version = &v
	}
	if viper.IsSet(KeySolutionPublisher) {
		v := viper.GetString(KeySolutionPublisher)
		o.PublisherUniqueName = &v
	}
	if viper.IsSet(KeySolutionPublisherName) {
		v := viper.GetString(KeySolutionPublisherName)
		o.PublisherFriendlyName = &v
	}
	if viper.IsSet(KeySolutionPrefix) {
		v := viper.GetString(KeySolutionPrefix)
		o.CustomizationPrefix = &v
	}
	if viper.IsSet(KeySolutionLanguageCode) {
		v := viper.GetInt(KeySolutionLanguageCode)
		o.LanguageCode = &v
	}
	if viper.IsSet(KeySolutionManaged) {
		v := viper.GetBool(KeySolutionManaged)
		o.Managed = &v
	}
	return o
}
