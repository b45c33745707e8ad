package constants

import "errors"

// Configuration errors.
var (
	ErrNoServerConfigured = errors.New("no SonarQube server configured, use --url or 'sonarqube config set url <url>'")
	ErrNoCredentials      = errors.New("no credentials configured, use --token or --user/--password")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrUnsupportedFormat  = errors.New("unsupported output format")
	ErrPasswordNotStored  = errors.New("passwords are never written to the config file, use SONARQUBE_PASSWORD")
	ErrInvalidConfigValue = errors.New("invalid configuration value")
)

// Operation errors.
var (
	ErrInvalidCredentials  = errors.New("credentials rejected by the server")
	ErrUserRequired        = errors.New("user is required")
	ErrWebhookNameURL      = errors.New("--name and --endpoint are required")
	ErrALMRequired         = errors.New("--alm and --repository are required")
	ErrWebhookDeleteFailed = errors.New("failed to delete webhooks")
)
