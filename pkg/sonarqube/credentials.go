package sonarqube

import (
	"net/http"
)

// Credentials authenticate requests sent to the server. The set of
// implementations is closed: use Basic or Token to build one.
type Credentials interface {
	// Apply sets the Authorization header of req.
	Apply(req *http.Request)

	credentials()
}

// BasicCredentials authenticate with a user name and password.
type BasicCredentials struct {
	User     string
	Password string
}

// TokenCredentials authenticate with a user token. The token is sent as the
// basic auth user name with an empty password.
type TokenCredentials struct {
	Token string
}

// Basic returns user/password credentials.
func Basic(user, password string) *BasicCredentials {
	return &BasicCredentials{User: user, Password: password}
}

// Token returns user token credentials.
func Token(secret string) *TokenCredentials {
	return &TokenCredentials{Token: secret}
}

// Apply implements Credentials.Apply.
func (c *BasicCredentials) Apply(req *http.Request) {
	req.SetBasicAuth(c.User, c.Password)
}

// String hides the password.
func (c *BasicCredentials) String() string {
	return "basic(" + c.User + ":***)"
}

func (c *BasicCredentials) credentials() {}

// Apply implements Credentials.Apply.
func (c *TokenCredentials) Apply(req *http.Request) {
	req.SetBasicAuth(c.Token, "")
}

// String hides the token.
func (c *TokenCredentials) String() string {
	return "token(***)"
}

func (c *TokenCredentials) credentials() {}
