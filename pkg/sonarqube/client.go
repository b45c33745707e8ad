package sonarqube

import (
	"context"
	"time"
)

// Default transport settings.
const (
	DefaultRetryMax    = 3
	DefaultRetryWait   = 2 * time.Second
	DefaultHTTPTimeout = 30 * time.Second
)

// AuthenticationClient provides access to the authentication endpoints.
type AuthenticationClient interface {
	// Login opens a session with basic credentials. Token credentials are
	// rejected with ErrUnsupportedCredentials before any request is sent.
	Login(ctx context.Context) error
	// TestConnection reports whether the server accepts the configured
	// credentials. It never returns an error: any failure yields false.
	TestConnection(ctx context.Context) bool
}

// ProjectsClient provides access to project search.
type ProjectsClient interface {
	GetProjects(ctx context.Context) ([]Project, error)
	SearchProjects(ctx context.Context, searchKey string) ([]Project, error)
	GetProject(ctx context.Context, key string) (*Project, error)
}

// ALMSettingsClient provides access to ALM bindings.
type ALMSettingsClient interface {
	GetALMSettings(ctx context.Context, projectKey string) (*ALMSettings, error)
	SetALMSettings(ctx context.Context, projectKey, almName, repository string) (*ALMSettings, error)
}

// ProjectLinksClient provides access to project links.
type ProjectLinksClient interface {
	GetProjectLinks(ctx context.Context, projectKey string) ([]ProjectLink, error)
}

// WebhooksClient provides access to global and project webhooks.
type WebhooksClient interface {
	GetWebhooks(ctx context.Context) ([]Webhook, error)
	GetProjectWebhooks(ctx context.Context, projectKey string) ([]Webhook, error)
	AddWebhook(ctx context.Context, webhook *Webhook) (*Webhook, error)
	AddProjectWebhook(ctx context.Context, projectKey string, webhook *Webhook) (*Webhook, error)
	DeleteWebhook(ctx context.Context, webhookKey string) error
}

// Client is the SonarQube Server API client. Close releases the pooled
// connections owned by the client.
type Client interface {
	AuthenticationClient
	ProjectsClient
	ALMSettingsClient
	ProjectLinksClient
	WebhooksClient

	Close() error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a sonarqube.Client.
//
// # Retries
//
// 429 and 503 responses are retried by the transport, as are connection
// errors of idempotent requests. Any other status is returned as a
// ServerError without retrying. RetryMax defaults to 3 and RetryWait to a fixed 2 second pause between
// attempts. A negative RetryMax disables retries.
//
// # Dry run
//
// With DryRun set, every request that is not a GET, and every GET that
// changes server state, is logged and answered locally with 204 No Content
// instead of being sent to the server.
type Config struct {
	// ServerURL: base URL of the SonarQube server (e.g., "https://sonar.example.com").
	// sqclient.New trims a trailing slash and adds "https://" if no scheme is present.
	ServerURL string
	// Credentials: Basic or Token credentials applied to every request.
	Credentials Credentials

	// RetryMax: maximum number of retries. Zero selects DefaultRetryMax.
	RetryMax int
	// RetryWait: pause between retries. Zero selects DefaultRetryWait.
	RetryWait time.Duration
	// HTTPTimeout: overall timeout of a single HTTP attempt. Zero selects DefaultHTTPTimeout.
	HTTPTimeout time.Duration
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Debug: logs every request and response when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// DryRun: do not send mutating requests.
	DryRun bool
	// SkipTLSVerify: disables certificate verification; only honored when
	// SONARQUBE_DEV_MODE is "true" or "1".
	SkipTLSVerify bool
}
