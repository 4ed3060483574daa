package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var Config *viper.Viper

// LegacyGitPathEnv names a directory holding the git executable. It is only
// consulted when git_path is not configured.
const LegacyGitPathEnv = "GITPATH"

var globalFlagsToConfigKey = map[string]string{
	"config-path":   "config_path",
	"verbose":       "verbose",
	"git-path":      "git_path",
	"number-format": "header.number_format",
}

func InitializeConfig(cmd *cobra.Command) ([]string, error) {
	Config = viper.New()
	messages := []string{}

	// Set config path from user input
	configPath, err := cmd.Flags().GetString("config-path")
	if err != nil {
		return messages, fmt.Errorf("unable to determine config path: %w", err)
	}
	Config.AddConfigPath(configPath)

	// Set config name
	Config.SetConfigName("config")
	Config.SetConfigType("toml")

	// Set defaults
	Config.SetDefault("verbose", 0)
	Config.SetDefault("git_path", "")
	Config.SetDefault("header.number_format", "hex")

	// Setup env reading
	Config.SetEnvPrefix("gitrev")

	// Load config file
	if err := Config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error occurred
			return messages, fmt.Errorf("unable to read config: %w", err)
		}

		// Config file not found - create config path and write config with defaults.
		// The file only carries defaults, so failing to write it must not stop a build.
		if err := os.MkdirAll(configPath, 0o755); err != nil {
			messages = append(messages, fmt.Sprintf("Unable to create config path, using defaults: %s", err))
		} else if err := Config.SafeWriteConfig(); err != nil {
			messages = append(messages, fmt.Sprintf("Unable to write default config, using defaults: %s", err))
		} else {
			messages = append(messages, fmt.Sprintf("Wrote default config to %s", filepath.Join(configPath, "config.toml")))
		}
	}

	// In order to get environment variables mapped into config sections, we need to replace . with _
	Config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Config.AutomaticEnv() // read in environment variables that match

	// Bind the current command's flags to viper
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Is this a global flag
		configKey, ok := globalFlagsToConfigKey[f.Name]
		if !ok {
			return
		}

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && Config.IsSet(configKey) {
			cmd.Flags().Set(f.Name, fmt.Sprintf("%v", Config.Get(configKey)))
		} else {
			Config.Set(configKey, fmt.Sprintf("%v", f.Value))
		}
	})

	return messages, nil
}

// GitPath returns the configured git executable, or an empty string to look
// git up on PATH.
func GitPath() string {
	if Config != nil {
		if path := Config.GetString("git_path"); path != "" {
			return path
		}
	}
	if dir := os.Getenv(LegacyGitPathEnv); dir != "" {
		return filepath.Join(dir, "git")
	}
	return ""
}

func Verbosity() int {
	if Config == nil {
		return 0
	}
	return Config.GetInt("verbose")
}

func NumberFormat() string {
	if Config == nil {
		return ""
	}
	return Config.GetString("header.number_format")
}
