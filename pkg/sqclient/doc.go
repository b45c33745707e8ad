// Package sqclient provides the primary entry point for constructing a
// SonarQube Server Web API client that implements the sonarqube.Client
// interface.
//
// It layers configuration normalization, the retrying HTTP transport and
// credential injection on top of the interfaces and types defined in the
// sonarqube package.
//
// Quick start
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
//
//	  // With a user token (sent as the basic auth user name):
//	  cli, err := sqclient.NewWithToken("sonar.example.com", "squ_...")
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  if !cli.TestConnection(ctx) {
//	    log.Fatal("credentials rejected")
//	  }
//
//	  // Or with the full configuration:
//	  cli, err = sqclient.New(&sonarqube.Config{
//	    ServerURL:   "https://sonar.example.com/",
//	    Credentials: sonarqube.Basic("admin", "admin"),
//	    RetryMax:    5,
//	    DryRun:      true, // mutating calls are logged, not sent
//	  })
//	}
//
// Server URL
//
// A trailing slash is removed and "https://" is prepended when the URL has no
// scheme.
//
// TLS
//
// SkipTLSVerify is rejected with sonarqube.ErrSkipTLSOnlyInDev unless
// SONARQUBE_DEV_MODE is set to "true" or "1".
package sqclient
