//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sqclient"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	ServerURL  string
	Token      string
	User       string
	Password   string
	ProjectKey string
	BinaryPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		ServerURL:  os.Getenv("SONARQUBE_URL"),
		Token:      os.Getenv("SONARQUBE_TOKEN"),
		User:       os.Getenv("SONARQUBE_USER"),
		Password:   os.Getenv("SONARQUBE_PASSWORD"),
		ProjectKey: os.Getenv("SONARQUBE_PROJECT"),
		BinaryPath: getBinaryPath(),
		Verbose:    os.Getenv("SONARQUBE_TEST_VERBOSE") == "true",
	}
}

func getBinaryPath() string {
	if path := os.Getenv("SONARQUBE_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../sonarqube", "./sonarqube", "../sonarqube"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "sonarqube"
}

// SkipIfMissingConfig skips the test when no server or token is configured.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.ServerURL == "" || config.Token == "" {
		t.Skip("SONARQUBE_URL and SONARQUBE_TOKEN not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips CLI tests when the binary has not been built.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("sonarqube binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// NewClient creates a token-authenticated library client.
func (config *TestConfig) NewClient(t *testing.T) sonarqube.Client {
	t.Helper()

	client, err := sqclient.NewWithToken(config.ServerURL, config.Token)
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	return client
}

// CommandRunner runs the sonarqube binary against the configured server.
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a runner with an isolated config file.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes a sonarqube command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	fullArgs := append([]string{
		"--config", runner.configFile,
		"--url", runner.config.ServerURL,
		"--token", runner.config.Token,
	}, args...)

	// #nosec G204 -- test binary path comes from the test environment
	cmd := exec.Command(runner.config.BinaryPath, fullArgs...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique test resource name.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// AssertJSONOutput checks that output is valid JSON.
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	var result interface{}

	require.NoError(t, json.Unmarshal([]byte(output), &result), "output is not valid JSON: %s", output)
}
