package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sqclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to SonarQube",
		Long: `Authenticate against a SonarQube server and remember it.

With --token the token is validated and stored. Otherwise the user name and
password are sent to the login endpoint. The password is never stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())

			serverURL := viper.GetString(keyURL)
			if serverURL == "" {
				serverURL = prompt(cmd, reader, "SonarQube URL: ")
			}

			serverURL = sqclient.NormalizeServerURL(serverURL)
			if serverURL == "" {
				return constants.ErrNoServerConfigured
			}

			viper.Set(keyURL, serverURL)

			credentials, err := loginCredentials(cmd, reader, password)
			if err != nil {
				return err
			}

			client, err := createClientWithCredentials(cmd, credentials)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close() }()

			err = client.Login(cmd.Context())
			if err != nil && !errors.Is(err, sonarqube.ErrUnsupportedCredentials) {
				return fmt.Errorf("login failed: %w", err)
			}

			if !client.TestConnection(cmd.Context()) {
				return constants.ErrInvalidCredentials
			}

			err = updateConfigFile(func(config *Config) error {
				config.URL = serverURL

				switch creds := credentials.(type) {
				case *sonarqube.BasicCredentials:
					config.User = creds.User
				case *sonarqube.TokenCredentials:
					config.Token = creds.Token
				}

				return nil
			})
			if err != nil {
				return err
			}

			return message(cmd, map[string]interface{}{"url": serverURL, "authenticated": true},
				"Logged in to "+serverURL)
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

func loginCredentials(cmd *cobra.Command, reader *bufio.Reader, password string) (sonarqube.Credentials, error) {
	user := viper.GetString(keyUser)

	if token := viper.GetString(keyToken); token != "" && user == "" {
		return sonarqube.Token(token), nil
	}

	if user == "" {
		user = prompt(cmd, reader, "User: ")
	}

	if user == "" {
		return nil, constants.ErrUserRequired
	}

	if password == "" {
		password = viper.GetString(keyPassword)
	}

	if password == "" {
		secret, err := readPassword(cmd, reader)
		if err != nil {
			return nil, err
		}

		password = secret
	}

	return sonarqube.Basic(user, password), nil
}

func prompt(cmd *cobra.Command, reader *bufio.Reader, label string) string {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), label)

	line, _ := reader.ReadString('\n')

	return strings.TrimSpace(line)
}

// readPassword reads without echo from a terminal and falls back to a plain
// line read when input is redirected.
func readPassword(cmd *cobra.Command, reader *bufio.Reader) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")

	if file, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		bytePassword, err := term.ReadPassword(int(file.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		return string(bytePassword), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return strings.TrimSpace(line), nil
}
