package sqclient

import (
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/sonarqube-client/internal/client"
	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
)

// New creates a new SonarQube API client. The given config is not modified.
func New(config *sonarqube.Config) (sonarqube.Client, error) {
	if config == nil {
		return nil, sonarqube.ErrConfigRequired
	}

	normalized := *config

	serverURL := NormalizeServerURL(config.ServerURL)
	if serverURL == "" {
		return nil, sonarqube.ErrServerURLRequired
	}

	normalized.ServerURL = serverURL

	if config.SkipTLSVerify && !isDevelopmentEnvironment() {
		return nil, fmt.Errorf("%w (set %s=true)", sonarqube.ErrSkipTLSOnlyInDev, constants.DevModeEnv)
	}

	sqClient, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return sqClient, nil
}

// NormalizeServerURL trims surrounding blanks and trailing slashes and
// prefixes "https://" when no scheme is given.
func NormalizeServerURL(serverURL string) string {
	serverURL = strings.TrimRight(strings.TrimSpace(serverURL), "/")
	if serverURL == "" {
		return ""
	}

	if !strings.HasPrefix(serverURL, "http://") && !strings.HasPrefix(serverURL, "https://") {
		serverURL = "https://" + serverURL
	}

	return serverURL
}

// isDevelopmentEnvironment checks if we're in a development environment.
func isDevelopmentEnvironment() bool {
	devMode := os.Getenv(constants.DevModeEnv)

	return devMode == "true" || devMode == "1"
}

// NewWithToken creates a new client authenticated with a user token.
func NewWithToken(serverURL, token string) (sonarqube.Client, error) {
	return New(&sonarqube.Config{
		ServerURL:   serverURL,
		Credentials: sonarqube.Token(token),
	})
}

// NewWithBasicAuth creates a new client authenticated with user name and password.
func NewWithBasicAuth(serverURL, user, password string) (sonarqube.Client, error) {
	return New(&sonarqube.Config{
		ServerURL:   serverURL,
		Credentials: sonarqube.Basic(user, password),
	})
}
