package client

import (
	"github.com/fivetwenty-io/sonarqube-client/internal/http"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
)

// Client implements the sonarqube.Client interface.
type Client struct {
	*AuthenticationClient
	*ProjectsClient
	*ALMSettingsClient
	*ProjectLinksClient
	*WebhooksClient

	httpClient *http.Client
	baseURL    string
	logger     sonarqube.Logger
}

var _ sonarqube.Client = (*Client)(nil)

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *sonarqube.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.DryRun {
		httpOpts = append(httpOpts, http.WithDryRun(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	retryMax := config.RetryMax

	switch {
	case retryMax == 0:
		retryMax = sonarqube.DefaultRetryMax
	case retryMax < 0:
		retryMax = 0
	}

	retryWait := config.RetryWait
	if retryWait <= 0 {
		retryWait = sonarqube.DefaultRetryWait
	}

	httpOpts = append(httpOpts, http.WithRetryConfig(retryMax, retryWait, retryWait))

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.SkipTLSVerify {
		httpOpts = append(httpOpts, http.WithInsecureSkipVerify())
	}

	return httpOpts
}

// New creates a new SonarQube API client. The config is expected to be
// normalized already, see sqclient.New.
func New(config *sonarqube.Config) (*Client, error) {
	if config == nil {
		return nil, sonarqube.ErrConfigRequired
	}

	if config.ServerURL == "" {
		return nil, sonarqube.ErrServerURLRequired
	}

	if config.Credentials == nil {
		return nil, sonarqube.ErrCredentialsRequired
	}

	httpClient := http.NewClient(config.ServerURL, config.Credentials, createHTTPClientOptions(config)...)

	return &Client{
		AuthenticationClient: NewAuthenticationClient(httpClient, config.Credentials),
		ProjectsClient:       NewProjectsClient(httpClient),
		ALMSettingsClient:    NewALMSettingsClient(httpClient),
		ProjectLinksClient:   NewProjectLinksClient(httpClient),
		WebhooksClient:       NewWebhooksClient(httpClient),
		httpClient:           httpClient,
		baseURL:              config.ServerURL,
		logger:               config.Logger,
	}, nil
}

// BaseURL returns the server URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases the pooled connections of the client.
func (c *Client) Close() error {
	if c.logger != nil {
		c.logger.Debug("Closing SonarQube client", map[string]interface{}{"url": c.baseURL})
	}

	return c.httpClient.Close()
}
