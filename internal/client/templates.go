package client

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"

	"github.com/yosida95/uritemplate/v3"

	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
	"github.com/fivetwenty-io/sonarqube-client/internal/http"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
)

// endpoint pairs an HTTP method with an RFC 6570 URI template. Every non-GET
// endpoint is mutating; a GET endpoint that changes state is marked with
// mutatingEndpoint so that dry run still skips it.
type endpoint struct {
	method   string
	raw      string
	template *uritemplate.Template
	mutating bool
}

func newEndpoint(method, raw string) endpoint {
	return endpoint{
		method:   method,
		raw:      raw,
		template: uritemplate.MustNew(raw),
		mutating: method != nethttp.MethodGet,
	}
}

func mutatingEndpoint(method, raw string) endpoint {
	e := newEndpoint(method, raw)
	e.mutating = true

	return e
}

// Web API endpoints.
var (
	validateEndpoint = newEndpoint(nethttp.MethodGet, constants.PathAuthenticationValidate)
	loginEndpoint    = newEndpoint(nethttp.MethodPost, constants.PathAuthenticationLogin+"{?login,password}")

	projectSearchEndpoint = newEndpoint(nethttp.MethodGet, constants.PathProjectsSearch+"{?projects,qualifiers,q,p,ps}")
	projectLinksEndpoint  = newEndpoint(nethttp.MethodGet, constants.PathProjectLinksSearch+"{?projectId,projectKey}")

	almBindingEndpoint = newEndpoint(nethttp.MethodGet, constants.PathALMGetBinding+"{?project}")
	// The server documents set_bitbucketcloud_binding as POST. GET is kept
	// for compatibility with existing deployments of this client.
	almSetBindingEndpoint = mutatingEndpoint(nethttp.MethodGet, constants.PathALMSetBitbucketCloud+"{?almSetting,project,repository}")

	webhookListEndpoint   = newEndpoint(nethttp.MethodGet, constants.PathWebhooksList+"{?project}")
	webhookCreateEndpoint = newEndpoint(nethttp.MethodPost, constants.PathWebhooksCreate+"{?name,project,secret,url}")
	webhookDeleteEndpoint = newEndpoint(nethttp.MethodPost, constants.PathWebhooksDelete+"{?webhook}")
)

// params holds template variables. Empty values are left undefined so that
// the expansion omits them.
type params map[string]string

func (p params) with(name, value string) params {
	merged := make(params, len(p)+1)
	for key, existing := range p {
		merged[key] = existing
	}

	merged[name] = value

	return merged
}

// expand renders the template and splits the result into path and query.
func (e endpoint) expand(vars params) (*http.Request, error) {
	values := uritemplate.Values{}

	for name, value := range vars {
		if value != "" {
			values.Set(name, uritemplate.String(value))
		}
	}

	expanded, err := e.template.Expand(values)
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", e.raw, err)
	}

	parsed, err := url.Parse(expanded)
	if err != nil {
		return nil, fmt.Errorf("parsing expanded URI %s: %w", expanded, err)
	}

	return &http.Request{
		Method:   e.method,
		Path:     parsed.Path,
		Query:    parsed.Query(),
		Mutating: e.mutating,
	}, nil
}

// call expands e and sends the request.
func call(ctx context.Context, httpClient *http.Client, e endpoint, vars params) (*http.Response, error) {
	req, err := e.expand(vars)
	if err != nil {
		return nil, err
	}

	return httpClient.Do(ctx, req)
}

// decode parses a successful response into T. A 204 response yields nil.
func decode[T any](resp *http.Response) (*T, error) {
	if resp.StatusCode == nethttp.StatusNoContent {
		return nil, nil //nolint:nilnil // no content is not an error
	}

	var value T

	err := json.Unmarshal(resp.Body, &value)
	if err != nil {
		return nil, &sonarqube.DeserializationError{Err: err}
	}

	return &value, nil
}
