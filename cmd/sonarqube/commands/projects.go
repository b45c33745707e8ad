package commands

import (
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
)

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "Search projects",
		Long:    "List and inspect the projects visible to the configured user",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsGetCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long:  "List all projects, following every result page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close() }()

			var projects []sonarqube.Project
			if query != "" {
				projects, err = client.SearchProjects(cmd.Context(), query)
			} else {
				projects, err = client.GetProjects(cmd.Context())
			}

			if err != nil {
				return err
			}

			return render(cmd, projects, projectsTable(projects))
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "only projects whose name or key contains this text")

	return cmd
}

func newProjectsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT_KEY",
		Short: "Get project details",
		Long:  "Display a project by its exact key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close() }()

			project, err := client.GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, project, propertyTable(
				"Key", project.Key,
				"Name", project.Name,
				"Qualifier", project.Qualifier,
				"Visibility", project.Visibility,
				"Last Analysis", project.LastAnalysisDate,
				"Revision", project.Revision,
			))
		},
	}
}

func projectsTable(projects []sonarqube.Project) tableData {
	data := tableData{headers: []string{"Key", "Name", "Qualifier", "Visibility", "Last Analysis"}}

	for _, project := range projects {
		data.rows = append(data.rows, []string{
			project.Key,
			project.Name,
			project.Qualifier,
			valueOrNA(project.Visibility),
			valueOrNA(project.LastAnalysisDate),
		})
	}

	return data
}
