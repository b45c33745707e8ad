package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
	"github.com/fivetwenty-io/sonarqube-client/internal/http"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
)

// WebhooksClient implements sonarqube.WebhooksClient.
type WebhooksClient struct {
	httpClient *http.Client
}

// NewWebhooksClient creates a new webhooks client.
func NewWebhooksClient(httpClient *http.Client) *WebhooksClient {
	return &WebhooksClient{
		httpClient: httpClient,
	}
}

// GetWebhooks implements sonarqube.WebhooksClient.GetWebhooks.
func (c *WebhooksClient) GetWebhooks(ctx context.Context) ([]sonarqube.Webhook, error) {
	return c.GetProjectWebhooks(ctx, "")
}

// GetProjectWebhooks implements sonarqube.WebhooksClient.GetProjectWebhooks.
// An empty projectKey lists the global webhooks.
func (c *WebhooksClient) GetProjectWebhooks(ctx context.Context, projectKey string) ([]sonarqube.Webhook, error) {
	resp, err := call(ctx, c.httpClient, webhookListEndpoint, params{
		constants.QueryParamProject: projectKey,
	})
	if err != nil {
		return nil, fmt.Errorf("listing webhooks: %w", err)
	}

	result, err := decode[sonarqube.WebhookResponse](resp)
	if err != nil {
		return nil, fmt.Errorf("parsing webhooks list: %w", err)
	}

	if result == nil {
		return nil, nil //nolint:nilnil // 204 No Content
	}

	return result.Webhooks, nil
}

// AddWebhook implements sonarqube.WebhooksClient.AddWebhook.
func (c *WebhooksClient) AddWebhook(ctx context.Context, webhook *sonarqube.Webhook) (*sonarqube.Webhook, error) {
	return c.AddProjectWebhook(ctx, "", webhook)
}

// AddProjectWebhook implements sonarqube.WebhooksClient.AddProjectWebhook.
func (c *WebhooksClient) AddProjectWebhook(ctx context.Context, projectKey string, webhook *sonarqube.Webhook) (*sonarqube.Webhook, error) {
	if webhook == nil {
		return nil, sonarqube.ErrWebhookRequired
	}

	resp, err := call(ctx, c.httpClient, webhookCreateEndpoint, params{
		constants.QueryParamProject:     projectKey,
		constants.QueryParamWebhookName: webhook.Name,
		constants.QueryParamWebhookURL:  webhook.URL,
		constants.QueryParamSecret:      webhook.Secret,
	})
	if err != nil {
		return nil, fmt.Errorf("creating webhook: %w", err)
	}

	result, err := decode[sonarqube.WebhookResponse](resp)
	if err != nil {
		return nil, fmt.Errorf("parsing created webhook: %w", err)
	}

	if result == nil {
		return nil, nil //nolint:nilnil // 204 No Content
	}

	return result.Webhook, nil
}

// DeleteWebhook implements sonarqube.WebhooksClient.DeleteWebhook.
func (c *WebhooksClient) DeleteWebhook(ctx context.Context, webhookKey string) error {
	_, err := call(ctx, c.httpClient, webhookDeleteEndpoint, params{
		constants.QueryParamWebhookKey: webhookKey,
	})
	if err != nil {
		return fmt.Errorf("deleting webhook: %w", err)
	}

	return nil
}
