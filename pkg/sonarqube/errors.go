package sonarqube

import (
	"errors"
	"fmt"
	"net/http"
)

// Static errors for err113 compliance.
var (
	ErrUnsupportedCredentials = errors.New("unsupported credentials for programmatic login")
	ErrConfigRequired         = errors.New("config is required")
	ErrServerURLRequired      = errors.New("server URL is required")
	ErrCredentialsRequired    = errors.New("credentials are required")
	ErrSkipTLSOnlyInDev       = errors.New("skipTLS is only allowed in development environments")
	ErrProjectNotFound        = errors.New("project not found")
	ErrWebhookRequired        = errors.New("webhook is required")
)

// ServerError is returned when the server answers with a status outside 2xx.
type ServerError struct {
	StatusCode int
	// Body is the raw response body; empty when it could not be read.
	Body string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}

	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// TransportError is returned when a request could not be sent or its response
// could not be received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("client fails on %s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DeserializationError is returned when a successful response body does not
// match the expected shape.
type DeserializationError struct {
	Err error
}

// Error implements the error interface.
func (e *DeserializationError) Error() string {
	return fmt.Sprintf("fail to deserialize response: %v", e.Err)
}

// Unwrap returns the decoder error.
func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not a ServerError.
func StatusCode(err error) int {
	serverErr := &ServerError{}
	if errors.As(err, &serverErr) {
		return serverErr.StatusCode
	}

	return 0
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}
