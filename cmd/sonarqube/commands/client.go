package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
	"github.com/fivetwenty-io/sonarqube-client/internal/logging"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sqclient"
)

// resolveCredentials picks the token when one is configured and falls back
// to user/password otherwise.
func resolveCredentials() (sonarqube.Credentials, error) {
	if token := viper.GetString(keyToken); token != "" {
		return sonarqube.Token(token), nil
	}

	user := viper.GetString(keyUser)
	password := viper.GetString(keyPassword)

	if user == "" || password == "" {
		return nil, constants.ErrNoCredentials
	}

	return sonarqube.Basic(user, password), nil
}

// newLogger creates the CLI logger writing to the command's stderr.
func newLogger(cmd *cobra.Command) *logging.Logger {
	level := "warn"
	if viper.GetBool(keyVerbose) {
		level = "debug"
	}

	return logging.New(logging.Config{Level: level, Format: logging.FormatConsole, Output: cmd.ErrOrStderr()})
}

// buildClientConfig maps the CLI settings onto sonarqube.Config.
func buildClientConfig(cmd *cobra.Command, credentials sonarqube.Credentials) (*sonarqube.Config, error) {
	serverURL := viper.GetString(keyURL)
	if serverURL == "" {
		return nil, constants.ErrNoServerConfigured
	}

	// --retries 0 means no retries, while a zero Config.RetryMax selects the default.
	retries := viper.GetInt(keyRetries)
	if retries <= 0 {
		retries = -1
	}

	return &sonarqube.Config{
		ServerURL:     serverURL,
		Credentials:   credentials,
		RetryMax:      retries,
		Debug:         viper.GetBool(keyVerbose),
		Logger:        newLogger(cmd),
		DryRun:        viper.GetBool(keyDryRun),
		SkipTLSVerify: viper.GetBool(keySkipTLSVerify),
	}, nil
}

// createClient builds a client from flags, environment and config file.
func createClient(cmd *cobra.Command) (sonarqube.Client, error) {
	credentials, err := resolveCredentials()
	if err != nil {
		return nil, err
	}

	return createClientWithCredentials(cmd, credentials)
}

func createClientWithCredentials(cmd *cobra.Command, credentials sonarqube.Credentials) (sonarqube.Client, error) {
	config, err := buildClientConfig(cmd, credentials)
	if err != nil {
		return nil, err
	}

	client, err := sqclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}
