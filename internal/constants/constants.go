package constants

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP headers and client identity.
const (
	// AcceptJSON is sent when a request carries no Accept header.
	AcceptJSON = "application/json;charset=utf-8"

	// DefaultUserAgent identifies the client to the server.
	DefaultUserAgent = "sonarqube-client-go"
)

// Web API paths.
const (
	PathAuthenticationValidate = "/api/authentication/validate"
	PathAuthenticationLogin    = "/api/authentication/login"
	PathProjectsSearch         = "/api/projects/search"
	PathProjectLinksSearch     = "/api/project_links/search"
	PathALMGetBinding          = "/api/alm_settings/get_binding"
	PathALMSetBitbucketCloud   = "/api/alm_settings/set_bitbucketcloud_binding"
	PathWebhooksList           = "/api/webhooks/list"
	PathWebhooksCreate         = "/api/webhooks/create"
	PathWebhooksDelete         = "/api/webhooks/delete"
)

// Query parameter names.
const (
	QueryParamLogin       = "login"
	QueryParamPassword    = "password"
	QueryParamQuery       = "q"
	QueryParamProjects    = "projects"
	QueryParamProject     = "project"
	QueryParamProjectKey  = "projectKey"
	QueryParamRepository  = "repository"
	QueryParamSecret      = "secret"
	QueryParamWebhookURL  = "url"
	QueryParamWebhookName = "name"
	QueryParamWebhookKey  = "webhook"
	QueryParamALMSetting  = "almSetting"
	QueryParamPage        = "p"
	QueryParamPageSize    = "ps"
)

// Secret masking.
const (
	// RedactedValue replaces secrets in logged URLs.
	RedactedValue = "xxxxx"

	// MaskedSecret is used to hide sensitive information in CLI output.
	MaskedSecret = "***"
)

// Environment.
const (
	// DevModeEnv enables development-only settings such as skipping TLS verification.
	DevModeEnv = "SONARQUBE_DEV_MODE"

	// EnvPrefix is the viper environment prefix of the CLI.
	EnvPrefix = "SONARQUBE"

	// ConfigDirName is the CLI configuration directory under $HOME.
	ConfigDirName = ".sonarqube"
)

// Command line.
const (
	// MinimumArgumentCount is the argument count of "config set KEY VALUE".
	MinimumArgumentCount = 2
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)
