package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate credentials",
		Long:  "Check whether the SonarQube server accepts the configured credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close() }()

			valid := client.TestConnection(cmd.Context())

			text := "Credentials are valid for " + viper.GetString(keyURL)
			if !valid {
				text = "Credentials are NOT valid for " + viper.GetString(keyURL)
			}

			err = message(cmd, map[string]interface{}{"url": viper.GetString(keyURL), "valid": valid}, text)
			if err != nil {
				return err
			}

			if !valid {
				return constants.ErrInvalidCredentials
			}

			return nil
		},
	}
}
