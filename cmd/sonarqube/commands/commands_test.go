package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sonarqube-client/cmd/sonarqube/commands"
	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// run executes the CLI with a fresh viper state. Commands share the global
// viper instance, so tests in this package do not run in parallel.
func run(t *testing.T, configFile, stdin string, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	for _, key := range []string{"SONARQUBE_URL", "SONARQUBE_USER", "SONARQUBE_TOKEN", "SONARQUBE_PASSWORD"} {
		t.Setenv(key, "")
	}

	root := commands.NewRootCommand("1.2.3", "abc1234", "2026-10-01")

	var stdout, stderr bytes.Buffer

	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", configFile, "--retries", "0"}, args...))

	err := root.ExecuteContext(context.Background())

	return stdout.String(), err
}

func tempConfig(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "sonarqube", "config.yml")
}

func TestNewRootCommand(t *testing.T) {
	root := commands.NewRootCommand("dev", "none", "unknown")

	assert.Equal(t, "sonarqube", root.Use)

	for _, name := range []string{"version", "login", "validate", "config", "projects", "alm", "links", "webhooks"} {
		assert.NotNil(t, findSubcommand(root, name), "missing command %s", name)
	}

	for _, flag := range []string{"config", "url", "user", "token", "output", "verbose", "retries", "dry-run", "skip-tls-verify"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "missing flag %s", flag)
	}

	webhooks := findSubcommand(root, "webhooks")
	require.NotNil(t, webhooks)
	assert.Equal(t, []string{"webhook", "wh"}, webhooks.Aliases)

	create := findSubcommand(webhooks, "create")
	require.NotNil(t, create)

	for _, flag := range []string{"name", "endpoint", "secret", "project"} {
		assert.NotNil(t, create.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, tempConfig(t), "", "version", "--output", "json")
	require.NoError(t, err)

	var info commands.VersionInfo

	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc1234", info.Commit)

	out, err = run(t, tempConfig(t), "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "2026-10-01")
}

func TestUnsupportedOutput(t *testing.T) {
	_, err := run(t, tempConfig(t), "", "version", "--output", "xml")
	require.ErrorIs(t, err, constants.ErrUnsupportedFormat)
}

func TestMissingSettings(t *testing.T) {
	_, err := run(t, tempConfig(t), "", "projects", "list", "--token", "t")
	require.ErrorIs(t, err, constants.ErrNoServerConfigured)

	_, err = run(t, tempConfig(t), "", "projects", "list", "--url", "http://localhost:9000")
	require.ErrorIs(t, err, constants.ErrNoCredentials)
}

func TestProjectsCommands(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/projects/search", request.URL.Path)

		user, _, _ := request.BasicAuth()
		assert.Equal(t, "squ_token", user)

		if request.URL.Query().Get("projects") == "missing" {
			_, _ = writer.Write([]byte(`{"paging":{"pageIndex":1,"pageSize":100,"total":0},"components":[]}`))

			return
		}

		_, _ = writer.Write([]byte(`{"paging":{"pageIndex":1,"pageSize":100,"total":2},"components":[
			{"key":"calendar.parent","name":"Calendar","qualifier":"TRK","visibility":"private"},
			{"key":"bitbucket-client","name":"Bitbucket Client","qualifier":"TRK"}]}`))
	}))
	defer server.Close()

	config := tempConfig(t)

	out, err := run(t, config, "", "--url", server.URL, "--token", "squ_token", "projects", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "calendar.parent")
	assert.Contains(t, out, "Bitbucket Client")

	out, err = run(t, config, "", "--url", server.URL, "--token", "squ_token", "--output", "json", "projects", "list", "--query", "cal")
	require.NoError(t, err)

	var projects []sonarqube.Project

	require.NoError(t, json.Unmarshal([]byte(out), &projects))
	assert.Len(t, projects, 2)

	out, err = run(t, config, "", "--url", server.URL, "--token", "squ_token", "--output", "yaml", "projects", "get", "calendar.parent")
	require.NoError(t, err)
	assert.Contains(t, out, "key: calendar.parent")
	assert.Contains(t, out, "visibility: private")

	_, err = run(t, config, "", "--url", server.URL, "--token", "squ_token", "projects", "get", "missing")
	require.ErrorIs(t, err, sonarqube.ErrProjectNotFound)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestWebhooksCommands(t *testing.T) {
	var deletes int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/webhooks/list":
			assert.Equal(t, "calendar.parent", request.URL.Query().Get("project"))
			_, _ = writer.Write([]byte(`{"webhooks":[{"key":"k1","name":"jenkins","url":"https://jenkins.example.com","hasSecret":true}]}`))
		case "/api/webhooks/create":
			assert.Equal(t, http.MethodPost, request.Method)
			query := request.URL.Query()
			_, _ = writer.Write([]byte(`{"webhook":{"key":"k2","name":"` + query.Get("name") + `","url":"` + query.Get("url") + `","secret":"s3cr3t"}}`))
		case "/api/webhooks/delete":
			atomic.AddInt32(&deletes, 1)
			assert.Equal(t, "webhook=k1", request.URL.RawQuery)
			writer.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected path %s", request.URL.Path)
		}
	}))
	defer server.Close()

	config := tempConfig(t)
	base := []string{"--url", server.URL, "--token", "squ_token"}

	out, err := run(t, config, "", append(base, "webhooks", "list", "--project", "calendar.parent")...)
	require.NoError(t, err)
	assert.Contains(t, out, "jenkins")
	assert.Contains(t, out, "true")

	out, err = run(t, config, "", append(base, "webhooks", "create", "--name", "ci", "--endpoint", "https://ci.example.com", "--secret", "s3cr3t")...)
	require.NoError(t, err)
	assert.Contains(t, out, "k2")
	assert.Contains(t, out, constants.MaskedSecret)
	assert.NotContains(t, out, "s3cr3t")

	_, err = run(t, config, "", append(base, "webhooks", "create", "--name", "ci")...)
	require.ErrorIs(t, err, constants.ErrWebhookNameURL)

	out, err = run(t, config, "", append(base, "--output", "json", "webhooks", "delete", "k1")...)
	require.NoError(t, err)
	assert.JSONEq(t, `{"webhook":"k1","deleted":true}`, out)
	assert.Equal(t, int32(1), atomic.LoadInt32(&deletes))

	out, err = run(t, config, "", append(base, "--dry-run", "webhooks", "delete", "k1")...)
	require.NoError(t, err)
	assert.Contains(t, out, "not deleted (dry run)")
	assert.NotContains(t, out, "Deleted webhook")
	assert.Equal(t, int32(1), atomic.LoadInt32(&deletes))

	out, err = run(t, config, "", append(base, "--dry-run", "--output", "json", "webhooks", "delete", "k1")...)
	require.NoError(t, err)
	assert.JSONEq(t, `{"webhook":"k1","deleted":false,"dry_run":true}`, out)

	out, err = run(t, config, "", append(base, "--dry-run", "--output", "json", "webhooks", "delete", "k1", "k2")...)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"webhook":"k1","deleted":false,"dry_run":true},{"webhook":"k2","deleted":false,"dry_run":true}]`, out)
	assert.Equal(t, int32(1), atomic.LoadInt32(&deletes))
}

func TestALMCommands(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodGet, request.Method)

		switch request.URL.Path {
		case "/api/alm_settings/get_binding":
			_, _ = writer.Write([]byte(`{"key":"bitbucket-cloud","alm":"bitbucketcloud","repository":"calendar","monorepo":false}`))
		case "/api/alm_settings/set_bitbucketcloud_binding":
			assert.Equal(t, "almSetting=bitbucket-cloud&project=calendar.parent&repository=calendar", request.URL.RawQuery)
			writer.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	config := tempConfig(t)
	base := []string{"--url", server.URL, "--token", "squ_token"}

	out, err := run(t, config, "", append(base, "alm", "get", "calendar.parent")...)
	require.NoError(t, err)
	assert.Contains(t, out, "bitbucketcloud")

	out, err = run(t, config, "", append(base, "alm", "set", "calendar.parent", "--alm", "bitbucket-cloud", "--repository", "calendar")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Bound calendar.parent to bitbucket-cloud")

	_, err = run(t, config, "", append(base, "alm", "set", "calendar.parent")...)
	require.ErrorIs(t, err, constants.ErrALMRequired)

	out, err = run(t, config, "", append(base, "--dry-run", "alm", "set", "calendar.parent",
		"--alm", "other-setting", "--repository", "calendar")...)
	require.NoError(t, err)
	assert.Contains(t, out, "not bound to other-setting (dry run)")
}

func TestLinksCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "projectKey=calendar.parent", request.URL.RawQuery)
		_, _ = writer.Write([]byte(`{"links":[{"id":"1","type":"scm","url":"https://bitbucket.org/acme/calendar"}]}`))
	}))
	defer server.Close()

	out, err := run(t, tempConfig(t), "", "--url", server.URL, "--token", "t", "links", "list", "calendar.parent")
	require.NoError(t, err)
	assert.Contains(t, out, "https://bitbucket.org/acme/calendar")
	assert.Contains(t, out, "N/A")
}

func TestValidateCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		user, _, _ := request.BasicAuth()
		_ = json.NewEncoder(writer).Encode(sonarqube.Authentication{Valid: user == "good"})
	}))
	defer server.Close()

	out, err := run(t, tempConfig(t), "", "--url", server.URL, "--token", "good", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Credentials are valid")

	out, err = run(t, tempConfig(t), "", "--url", server.URL, "--token", "bad", "--output", "json", "validate")
	require.ErrorIs(t, err, constants.ErrInvalidCredentials)
	assert.Contains(t, out, `"valid": false`)
}

func TestLoginCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/authentication/login":
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "admin", request.URL.Query().Get("login"))
			assert.Equal(t, "hunter2", request.URL.Query().Get("password"))
		case "/api/authentication/validate":
			_, _ = writer.Write([]byte(`{"valid":true}`))
		}
	}))
	defer server.Close()

	t.Run("basic credentials from prompt", func(t *testing.T) {
		config := tempConfig(t)

		out, err := run(t, config, "admin\nhunter2\n", "--url", server.URL, "login")
		require.NoError(t, err)
		assert.Contains(t, out, "Logged in to "+server.URL)

		data, err := os.ReadFile(config)
		require.NoError(t, err)
		assert.Contains(t, string(data), "url: "+server.URL)
		assert.Contains(t, string(data), "user: admin")
		assert.NotContains(t, string(data), "hunter2")
	})

	t.Run("token", func(t *testing.T) {
		config := tempConfig(t)

		_, err := run(t, config, "", "--url", server.URL, "--token", "squ_token", "login")
		require.NoError(t, err)

		data, err := os.ReadFile(config)
		require.NoError(t, err)
		assert.Contains(t, string(data), "token: squ_token")
	})
}

func TestConfigCommands(t *testing.T) {
	config := tempConfig(t)

	_, err := run(t, config, "", "config", "set", "url", "sonar.example.com/")
	require.NoError(t, err)

	out, err := run(t, config, "", "config", "set", "token", "squ_secret")
	require.NoError(t, err)
	assert.NotContains(t, out, "squ_secret")

	_, err = run(t, config, "", "config", "set", "retries", "5")
	require.NoError(t, err)

	out, err = run(t, config, "", "--output", "json", "config", "show")
	require.NoError(t, err)

	var effective commands.EffectiveConfig

	require.NoError(t, json.Unmarshal([]byte(out), &effective))
	assert.Equal(t, "https://sonar.example.com", effective.URL)
	assert.Equal(t, constants.MaskedSecret, effective.Token)
	assert.Equal(t, config, effective.ConfigFile)

	_, err = run(t, config, "", "config", "unset", "token")
	require.NoError(t, err)

	data, err := os.ReadFile(config)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "token")
	assert.Contains(t, string(data), "retries: 5")

	_, err = run(t, config, "", "config", "set", "password", "x")
	require.ErrorIs(t, err, constants.ErrPasswordNotStored)

	_, err = run(t, config, "", "config", "set", "retries", "many")
	require.ErrorIs(t, err, constants.ErrInvalidConfigValue)

	_, err = run(t, config, "", "config", "unset", "colour")
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)
}

func TestWebhooksDelete_Multiple(t *testing.T) {
	var deletes int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		atomic.AddInt32(&deletes, 1)

		if request.URL.Query().Get("webhook") == "gone" {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"errors":[{"msg":"No webhook with key 'gone'"}]}`))

			return
		}

		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	out, err := run(t, tempConfig(t), "", "--url", server.URL, "--token", "t", "--output", "json",
		"webhooks", "delete", "k1", "gone", "k3", "--concurrency", "2")
	require.ErrorIs(t, err, constants.ErrWebhookDeleteFailed)
	assert.True(t, sonarqube.IsNotFound(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&deletes))

	var results []map[string]interface{}

	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "k1", results[0]["webhook"])
	assert.Equal(t, true, results[0]["deleted"])
	assert.Equal(t, "gone", results[1]["webhook"])
	assert.Equal(t, false, results[1]["deleted"])
	assert.Contains(t, results[1]["error"], "HTTP 404")
}
