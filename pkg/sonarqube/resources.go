package sonarqube

// Project qualifiers.
const (
	QualifierProject     = "TRK"
	QualifierView        = "VW"
	QualifierApplication = "APP"
)

// Project represents a SonarQube project as returned by project search.
type Project struct {
	Key              string `json:"key"                        yaml:"key"`
	Name             string `json:"name"                       yaml:"name"`
	Qualifier        string `json:"qualifier"                  yaml:"qualifier"`
	Visibility       string `json:"visibility,omitempty"       yaml:"visibility,omitempty"`
	LastAnalysisDate string `json:"lastAnalysisDate,omitempty" yaml:"lastAnalysisDate,omitempty"`
	Revision         string `json:"revision,omitempty"         yaml:"revision,omitempty"`
}

// ALMSettings represents the ALM binding of a project.
type ALMSettings struct {
	Key        string `json:"key"           yaml:"key"`
	ALM        string `json:"alm"           yaml:"alm"`
	Repository string `json:"repository"    yaml:"repository"`
	Monorepo   bool   `json:"monorepo"      yaml:"monorepo"`
	URL        string `json:"url,omitempty" yaml:"url,omitempty"`
}

// ProjectLink represents a link attached to a project.
type ProjectLink struct {
	ID   string `json:"id"             yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	URL  string `json:"url"            yaml:"url"`
}

// ProjectLinksResponse represents the /api/project_links/search response.
type ProjectLinksResponse struct {
	Links []ProjectLink `json:"links" yaml:"links"`
}

// Webhook represents a global or project webhook.
type Webhook struct {
	Key  string `json:"key,omitempty" yaml:"key,omitempty"`
	Name string `json:"name"          yaml:"name"`
	// URL is the endpoint that receives the webhook payload.
	URL string `json:"url" yaml:"url"`
	// Secret is the key of the HMAC hex digest sent in the
	// X-Sonar-Webhook-HMAC-SHA256 header.
	Secret    string `json:"secret,omitempty"    yaml:"secret,omitempty"`
	HasSecret bool   `json:"hasSecret,omitempty" yaml:"hasSecret,omitempty"`
}

// String returns the webhook name.
func (w Webhook) String() string {
	return w.Name
}

// WebhookResponse represents the list and create webhook responses.
type WebhookResponse struct {
	Webhook  *Webhook  `json:"webhook,omitempty"  yaml:"webhook,omitempty"`
	Webhooks []Webhook `json:"webhooks,omitempty" yaml:"webhooks,omitempty"`
}
