package http

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
)

var passwordParam = regexp.MustCompile(`(^|[?&])` + constants.QueryParamPassword + `=[^&#\s]*`)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Authenticator sets the credentials of an outgoing request.
type Authenticator interface {
	Apply(req *http.Request)
}

// Request describes one API call. Mutating marks calls that change server
// state whatever their method; dry run skips them along with every non-GET.
type Request struct {
	Method   string
	Path     string
	Query    url.Values
	Headers  map[string]string
	Mutating bool
}

// Response holds the outcome of a request. Body is empty for 204 responses.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Client sends requests to the SonarQube server through a retrying, pooled
// transport. A Client is safe for concurrent use.
type Client struct {
	baseURL    string
	auth       Authenticator
	httpClient *retryablehttp.Client
	logger     Logger
	debug      bool
	dryRun     bool
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output and retry notices.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
		if logger != nil {
			c.httpClient.Logger = &leveledLogger{logger: logger}
		}
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithDryRun answers every non-GET or mutating request locally with 204 No Content.
func WithDryRun(dryRun bool) Option {
	return func(c *Client) {
		c.dryRun = dryRun
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig sets the retry count and the backoff bounds.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout bounds a single HTTP attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify() Option {
	return func(c *Client) {
		transport, ok := c.httpClient.HTTPClient.Transport.(*http.Transport)
		if !ok {
			return
		}

		transport = transport.Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- gated by SONARQUBE_DEV_MODE in sqclient
		c.httpClient.HTTPClient.Transport = transport
	}
}

// NewClient creates a new HTTP client for baseURL. auth may be nil.
func NewClient(baseURL string, auth Authenticator, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = sonarqube.DefaultRetryMax
	retryClient.RetryWaitMin = sonarqube.DefaultRetryWait
	retryClient.RetryWaitMax = sonarqube.DefaultRetryWait
	retryClient.HTTPClient.Timeout = sonarqube.DefaultHTTPTimeout
	retryClient.CheckRetry = retryPolicy
	// Hand the last response back once retries are exhausted so that the
	// status code reaches the caller as a ServerError.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		auth:       auth,
		httpClient: retryClient,
		userAgent:  constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do sends req and maps the response status. 204 and other 2xx statuses
// succeed; any other status yields a *sonarqube.ServerError alongside the
// response, and I/O failures a *sonarqube.TransportError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.buildURL(req.Path, req.Query)

	if c.dryRun && (req.Method != http.MethodGet || req.Mutating) {
		c.log("HTTP Request skipped (dry run)", map[string]interface{}{
			"method": req.Method,
			"url":    redactURL(fullURL),
		})

		return &Response{StatusCode: http.StatusNoContent, Headers: http.Header{}}, nil
	}

	if !idempotent(req.Method) {
		ctx = context.WithValue(ctx, nonIdempotentKey{}, true)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.setHeaders(httpReq.Request, req.Headers)

	if c.debug {
		c.log("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    redactURL(fullURL),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportError(req.Method, fullURL, err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, readErr := io.ReadAll(httpResp.Body)

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
	}

	if c.debug {
		c.log("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"url":    redactURL(fullURL),
			"size":   len(body),
		})
	}

	switch {
	case httpResp.StatusCode == http.StatusNoContent:
		return resp, nil
	case httpResp.StatusCode >= http.StatusOK && httpResp.StatusCode < http.StatusMultipleChoices:
		if readErr != nil {
			return resp, c.transportError(req.Method, fullURL, readErr)
		}

		resp.Body = body

		return resp, nil
	default:
		// The body is informational only; a failed read leaves it empty.
		if readErr == nil {
			resp.Body = body
		}

		return resp, &sonarqube.ServerError{StatusCode: httpResp.StatusCode, Body: string(resp.Body)}
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request. SonarQube takes POST parameters in the query string.
func (c *Client) Post(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Query:  query,
	})
}

// Close closes all idle pooled connections.
func (c *Client) Close() error {
	c.httpClient.HTTPClient.CloseIdleConnections()

	return nil
}

func (c *Client) buildURL(path string, query url.Values) string {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	return fullURL
}

func (c *Client) setHeaders(req *http.Request, headers map[string]string) {
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", constants.AcceptJSON)
	}

	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if c.auth != nil {
		c.auth.Apply(req)
	}
}

func (c *Client) transportError(method, fullURL string, err error) error {
	urlErr := &url.Error{}
	if errors.As(err, &urlErr) {
		urlErr.URL = redactURL(urlErr.URL)
	}

	return &sonarqube.TransportError{Method: method, URL: redactURL(fullURL), Err: err}
}

func (c *Client) log(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

type nonIdempotentKey struct{}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	}

	return false
}

// retryPolicy retries 429 and 503 responses. Connection errors are retried
// only for idempotent methods, since a POST may already have been applied.
// Other statuses surface as a ServerError at once.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		if nonIdempotent, _ := ctx.Value(nonIdempotentKey{}).(bool); nonIdempotent {
			return false, nil
		}

		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return true, nil
	}

	return false, nil
}

// redactURL hides the password query parameter used by the login endpoint.
func redactURL(rawURL string) string {
	return passwordParam.ReplaceAllString(rawURL, "${1}"+constants.QueryParamPassword+"="+constants.RedactedValue)
}
