package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
)

// NewALMCommand creates the alm command group.
func NewALMCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alm",
		Short: "Manage ALM bindings",
		Long:  "Display and set the DevOps platform binding of a project",
	}

	cmd.AddCommand(newALMGetCommand())
	cmd.AddCommand(newALMSetCommand())

	return cmd
}

func newALMGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT_KEY",
		Short: "Get the ALM binding of a project",
		Long:  "Display the ALM binding of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close() }()

			settings, err := client.GetALMSettings(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if settings == nil {
				return message(cmd, map[string]interface{}{"project": args[0]}, "No ALM binding for "+args[0])
			}

			return render(cmd, settings, propertyTable(
				"Key", settings.Key,
				"ALM", settings.ALM,
				"Repository", settings.Repository,
				"Monorepo", strconv.FormatBool(settings.Monorepo),
				"URL", settings.URL,
			))
		},
	}
}

func newALMSetCommand() *cobra.Command {
	var (
		almName    string
		repository string
	)

	cmd := &cobra.Command{
		Use:   "set PROJECT_KEY",
		Short: "Bind a project to Bitbucket Cloud",
		Long:  "Bind a project to a Bitbucket Cloud ALM setting and repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if almName == "" || repository == "" {
				return constants.ErrALMRequired
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close() }()

			settings, err := client.SetALMSettings(cmd.Context(), args[0], almName, repository)
			if err != nil {
				return err
			}

			result := map[string]interface{}{
				"project":    args[0],
				"almSetting": almName,
				"repository": repository,
			}
			if settings != nil {
				result["binding"] = settings
			}

			if viper.GetBool(keyDryRun) {
				result["dry_run"] = true

				return message(cmd, result, fmt.Sprintf("%s not bound to %s (dry run)", args[0], almName))
			}

			return message(cmd, result, fmt.Sprintf("Bound %s to %s (%s)", args[0], almName, repository))
		},
	}

	cmd.Flags().StringVar(&almName, "alm", "", "ALM setting key")
	cmd.Flags().StringVar(&repository, "repository", "", "repository slug")

	return cmd
}
