package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
)

// Viper keys shared by flags, environment and the config file.
const (
	keyConfig        = "config"
	keyURL           = "url"
	keyUser          = "user"
	keyPassword      = "password"
	keyToken         = "token"
	keyOutput        = "output"
	keyVerbose       = "verbose"
	keyRetries       = "retries"
	keyDryRun        = "dry-run"
	keySkipTLSVerify = "skip-tls-verify"
)

// NewRootCommand creates the sonarqube command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sonarqube",
		Short: "SonarQube Server Web API CLI",
		Long: `A command-line interface for the SonarQube Server Web API.

It covers authentication, project search, ALM bindings, project links and
webhooks. Credentials are read from flags, SONARQUBE_* environment variables
or $HOME/.sonarqube/config.yml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP(keyConfig, "c", "", "config file (default is $HOME/.sonarqube/config.yml)")
	flags.StringP(keyURL, "u", "", "SonarQube server URL")
	flags.String(keyUser, "", "user login")
	flags.StringP(keyToken, "t", "", "user token")
	flags.StringP(keyOutput, "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.BoolP(keyVerbose, "v", false, "verbose output")
	flags.Int(keyRetries, sonarqube.DefaultRetryMax, "number of retries on 429, 503 and connection errors")
	flags.Bool(keyDryRun, false, "log mutating requests instead of sending them")
	flags.Bool(keySkipTLSVerify, false, "skip TLS certificate verification (requires SONARQUBE_DEV_MODE)")

	for _, key := range []string{keyURL, keyUser, keyToken, keyOutput, keyVerbose, keyRetries, keyDryRun, keySkipTLSVerify} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewProjectsCommand())
	rootCmd.AddCommand(NewALMCommand())
	rootCmd.AddCommand(NewLinksCommand())
	rootCmd.AddCommand(NewWebhooksCommand())

	return rootCmd
}

func initConfig(cmd *cobra.Command) error {
	cfgFile, _ := cmd.Flags().GetString(keyConfig)

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		// Search config in ~/.sonarqube/config.yml
		viper.AddConfigPath(filepath.Join(home, constants.ConfigDirName))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// A missing config file is not an error
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool(keyVerbose) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", viper.ConfigFileUsed())
		}
	}

	return nil
}
