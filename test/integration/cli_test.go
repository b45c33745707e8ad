//go:build integration

package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
)

func TestCLI_ValidateAndProjects(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)
	config.SkipIfMissingBinary(t)

	runner := NewCommandRunner(config, t)

	stdout, stderr, err := runner.Run("validate", "--output", "json")
	require.NoError(t, err, "validate failed: %s", stderr)
	AssertJSONOutput(t, stdout)

	stdout, stderr, err = runner.Run("projects", "list", "--output", "json")
	require.NoError(t, err, "projects list failed: %s", stderr)

	var projects []sonarqube.Project

	require.NoError(t, json.Unmarshal([]byte(stdout), &projects))
}

func TestCLI_WebhookWorkflow(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)
	config.SkipIfMissingBinary(t)

	runner := NewCommandRunner(config, t)
	name := GenerateTestName("cli-webhook")

	stdout, stderr, err := runner.Run("webhooks", "create", "--name", name,
		"--endpoint", "https://example.com/sonarqube-webhook", "--output", "json")
	require.NoError(t, err, "webhook create failed: %s", stderr)

	var created sonarqube.Webhook

	require.NoError(t, json.Unmarshal([]byte(stdout), &created))
	require.NotEmpty(t, created.Key)

	stdout, stderr, err = runner.Run("webhooks", "list")
	require.NoError(t, err, "webhook list failed: %s", stderr)
	assert.Contains(t, stdout, name)

	_, stderr, err = runner.Run("webhooks", "delete", created.Key)
	require.NoError(t, err, "webhook delete failed: %s", stderr)
}
