package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
	"github.com/fivetwenty-io/sonarqube-client/internal/http"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
)

// ProjectsClient implements sonarqube.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{
		httpClient: httpClient,
	}
}

// GetProjects implements sonarqube.ProjectsClient.GetProjects.
func (c *ProjectsClient) GetProjects(ctx context.Context) ([]sonarqube.Project, error) {
	projects, err := fetchAll[sonarqube.Project](ctx, c.httpClient, projectSearchEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	return projects, nil
}

// SearchProjects implements sonarqube.ProjectsClient.SearchProjects.
func (c *ProjectsClient) SearchProjects(ctx context.Context, searchKey string) ([]sonarqube.Project, error) {
	projects, err := fetchAll[sonarqube.Project](ctx, c.httpClient, projectSearchEndpoint, params{
		constants.QueryParamQuery: searchKey,
	})
	if err != nil {
		return nil, fmt.Errorf("searching projects: %w", err)
	}

	return projects, nil
}

// GetProject implements sonarqube.ProjectsClient.GetProject.
// An empty key matches no project and sends no request.
func (c *ProjectsClient) GetProject(ctx context.Context, key string) (*sonarqube.Project, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", sonarqube.ErrProjectNotFound)
	}

	projects, err := fetchAll[sonarqube.Project](ctx, c.httpClient, projectSearchEndpoint, params{
		constants.QueryParamProjects: key,
	})
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	for i := range projects {
		if projects[i].Key == key {
			return &projects[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", sonarqube.ErrProjectNotFound, key)
}
