package commands

import (
	"github.com/spf13/cobra"
)

// NewLinksCommand creates the links command group.
func NewLinksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Show project links",
		Long:  "Display the links attached to a project",
	}

	cmd.AddCommand(newLinksListCommand())

	return cmd
}

func newLinksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT_KEY",
		Short: "List project links",
		Long:  "List the links attached to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close() }()

			links, err := client.GetProjectLinks(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			data := tableData{headers: []string{"ID", "Name", "Type", "URL"}}
			for _, link := range links {
				data.rows = append(data.rows, []string{link.ID, valueOrNA(link.Name), valueOrNA(link.Type), link.URL})
			}

			return render(cmd, links, data)
		},
	}
}
