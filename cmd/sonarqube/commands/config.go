package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sqclient"
)

// Config represents the CLI configuration file.
type Config struct {
	URL     string `json:"url,omitempty"     yaml:"url,omitempty"`
	User    string `json:"user,omitempty"    yaml:"user,omitempty"`
	Token   string `json:"token,omitempty"   yaml:"token,omitempty"`
	Output  string `json:"output,omitempty"  yaml:"output,omitempty"`
	Retries *int   `json:"retries,omitempty" yaml:"retries,omitempty"`
}

// EffectiveConfig is the merged view of flags, environment and config file.
type EffectiveConfig struct {
	ConfigFile string `json:"config_file"       yaml:"config_file"`
	URL        string `json:"url,omitempty"     yaml:"url,omitempty"`
	User       string `json:"user,omitempty"    yaml:"user,omitempty"`
	Token      string `json:"token,omitempty"   yaml:"token,omitempty"`
	Output     string `json:"output"            yaml:"output"`
	Retries    int    `json:"retries"           yaml:"retries"`
	DryRun     bool   `json:"dry_run"           yaml:"dry_run"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the SonarQube CLI configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the configuration merged from flags, environment and config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			effective := EffectiveConfig{
				ConfigFile: configFilePath(),
				URL:        viper.GetString(keyURL),
				User:       viper.GetString(keyUser),
				Token:      maskSecret(viper.GetString(keyToken)),
				Output:     viper.GetString(keyOutput),
				Retries:    viper.GetInt(keyRetries),
				DryRun:     viper.GetBool(keyDryRun),
			}

			return render(cmd, effective, propertyTable(
				"Config File", effective.ConfigFile,
				"URL", effective.URL,
				"User", effective.User,
				"Token", effective.Token,
				"Output", effective.Output,
				"Retries", strconv.Itoa(effective.Retries),
				"Dry Run", strconv.FormatBool(effective.DryRun),
			))
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: url, user, token, output, retries",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			err := updateConfigFile(func(config *Config) error {
				return setConfigValue(config, key, value)
			})
			if err != nil {
				return err
			}

			if key == keyToken {
				value = maskSecret(value)
			}

			return message(cmd, map[string]interface{}{"action": "set", "key": key, "value": value},
				fmt.Sprintf("Set %s = %s", key, value))
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			err := updateConfigFile(func(config *Config) error {
				return unsetConfigValue(config, key)
			})
			if err != nil {
				return err
			}

			return message(cmd, map[string]interface{}{"action": "unset", "key": key}, "Unset "+key)
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case keyURL:
		config.URL = sqclient.NormalizeServerURL(value)
	case keyUser:
		config.User = value
	case keyToken:
		config.Token = value
	case keyOutput:
		config.Output = value
	case keyRetries:
		retries, err := strconv.Atoi(value)
		if err != nil || retries < 0 {
			return fmt.Errorf("%w: retries must be a non-negative integer", constants.ErrInvalidConfigValue)
		}

		config.Retries = &retries
	case keyPassword:
		return constants.ErrPasswordNotStored
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func unsetConfigValue(config *Config, key string) error {
	switch key {
	case keyURL:
		config.URL = ""
	case keyUser:
		config.User = ""
	case keyToken:
		config.Token = ""
	case keyOutput:
		config.Output = ""
	case keyRetries:
		config.Retries = nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

// configFilePath returns the file in use, or the default location.
func configFilePath() string {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(constants.ConfigDirName, "config.yml")
	}

	return filepath.Join(home, constants.ConfigDirName, "config.yml")
}

// loadConfigFile reads the config file. A missing file yields an empty Config.
func loadConfigFile(path string) (*Config, error) {
	config := &Config{}

	// path is the user's own config file
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

func saveConfigFile(path string, config *Config) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// updateConfigFile applies change to the config file and writes it back.
func updateConfigFile(change func(*Config) error) error {
	path := configFilePath()

	config, err := loadConfigFile(path)
	if err != nil {
		return err
	}

	err = change(config)
	if err != nil {
		return err
	}

	return saveConfigFile(path, config)
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	return constants.MaskedSecret
}
