package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
	"github.com/fivetwenty-io/sonarqube-client/internal/http"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
)

// ProjectLinksClient implements sonarqube.ProjectLinksClient.
type ProjectLinksClient struct {
	httpClient *http.Client
}

// NewProjectLinksClient creates a new project links client.
func NewProjectLinksClient(httpClient *http.Client) *ProjectLinksClient {
	return &ProjectLinksClient{
		httpClient: httpClient,
	}
}

// GetProjectLinks implements sonarqube.ProjectLinksClient.GetProjectLinks.
func (c *ProjectLinksClient) GetProjectLinks(ctx context.Context, projectKey string) ([]sonarqube.ProjectLink, error) {
	resp, err := call(ctx, c.httpClient, projectLinksEndpoint, params{
		constants.QueryParamProjectKey: projectKey,
	})
	if err != nil {
		return nil, fmt.Errorf("getting project links: %w", err)
	}

	links, err := decode[sonarqube.ProjectLinksResponse](resp)
	if err != nil {
		return nil, fmt.Errorf("parsing project links: %w", err)
	}

	if links == nil {
		return nil, nil //nolint:nilnil // 204 No Content
	}

	return links.Links, nil
}
