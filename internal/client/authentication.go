package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
	"github.com/fivetwenty-io/sonarqube-client/internal/http"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
)

// AuthenticationClient implements sonarqube.AuthenticationClient.
type AuthenticationClient struct {
	httpClient  *http.Client
	credentials sonarqube.Credentials
}

// NewAuthenticationClient creates a new authentication client.
func NewAuthenticationClient(httpClient *http.Client, credentials sonarqube.Credentials) *AuthenticationClient {
	return &AuthenticationClient{
		httpClient:  httpClient,
		credentials: credentials,
	}
}

// Login implements sonarqube.AuthenticationClient.Login.
func (c *AuthenticationClient) Login(ctx context.Context) error {
	basic, ok := c.credentials.(*sonarqube.BasicCredentials)
	if !ok {
		return sonarqube.ErrUnsupportedCredentials
	}

	_, err := call(ctx, c.httpClient, loginEndpoint, params{
		constants.QueryParamLogin:    basic.User,
		constants.QueryParamPassword: basic.Password,
	})
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	return nil
}

// TestConnection implements sonarqube.AuthenticationClient.TestConnection.
func (c *AuthenticationClient) TestConnection(ctx context.Context) bool {
	resp, err := call(ctx, c.httpClient, validateEndpoint, nil)
	if err != nil {
		return false
	}

	auth, err := decode[sonarqube.Authentication](resp)
	if err != nil || auth == nil {
		return false
	}

	return auth.Valid
}
