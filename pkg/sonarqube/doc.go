// Package sonarqube provides types, interfaces, and helpers for working with
// the SonarQube Server Web API.
//
// # Overview
//
// The sonarqube package defines the domain types (Project, ALMSettings,
// ProjectLink, Webhook), the credential variants and the Client interface. A
// concrete implementation is provided by the sqclient package, which wires
// configuration, transport and authentication. Most consumers import sqclient
// to construct a client and then use the methods declared here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
//	  "github.com/fivetwenty-io/sonarqube-client/pkg/sqclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := sqclient.New(&sonarqube.Config{
//	    ServerURL:   "https://sonar.example.com",
//	    Credentials: sonarqube.Token("squ_..."),
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  projects, err := cli.GetProjects(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = projects
//	}
//
// # Credentials
//
// Basic sends "user:password"; Token sends the token as user name with an
// empty password. Both end up in an "Authorization: Basic ..." header. Only
// Basic credentials can be used with Login.
//
// # Pagination
//
// Search endpoints are paged by the server. GetProjects, SearchProjects and
// GetProject follow the paging block of every response and return the
// concatenation of all pages in server order.
//
// # Errors
//
// Non-2xx responses are returned as *ServerError carrying the status code and
// the raw body. Network failures are *TransportError and malformed bodies
// *DeserializationError. IsNotFound, IsUnauthorized and IsForbidden branch on
// common statuses.
package sonarqube
