package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
	"github.com/fivetwenty-io/sonarqube-client/internal/http"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
)

// ALMSettingsClient implements sonarqube.ALMSettingsClient.
type ALMSettingsClient struct {
	httpClient *http.Client
}

// NewALMSettingsClient creates a new ALM settings client.
func NewALMSettingsClient(httpClient *http.Client) *ALMSettingsClient {
	return &ALMSettingsClient{
		httpClient: httpClient,
	}
}

// GetALMSettings implements sonarqube.ALMSettingsClient.GetALMSettings.
func (c *ALMSettingsClient) GetALMSettings(ctx context.Context, projectKey string) (*sonarqube.ALMSettings, error) {
	resp, err := call(ctx, c.httpClient, almBindingEndpoint, params{
		constants.QueryParamProject: projectKey,
	})
	if err != nil {
		return nil, fmt.Errorf("getting ALM settings: %w", err)
	}

	settings, err := decode[sonarqube.ALMSettings](resp)
	if err != nil {
		return nil, fmt.Errorf("parsing ALM settings: %w", err)
	}

	return settings, nil
}

// SetALMSettings implements sonarqube.ALMSettingsClient.SetALMSettings.
// The binding endpoint usually answers 204, in which case nil is returned.
func (c *ALMSettingsClient) SetALMSettings(ctx context.Context, projectKey, almName, repository string) (*sonarqube.ALMSettings, error) {
	resp, err := call(ctx, c.httpClient, almSetBindingEndpoint, params{
		constants.QueryParamProject:    projectKey,
		constants.QueryParamALMSetting: almName,
		constants.QueryParamRepository: repository,
	})
	if err != nil {
		return nil, fmt.Errorf("setting ALM settings: %w", err)
	}

	settings, err := decode[sonarqube.ALMSettings](resp)
	if err != nil {
		return nil, fmt.Errorf("parsing ALM settings: %w", err)
	}

	return settings, nil
}
