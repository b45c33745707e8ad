package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
)

// NewWebhooksCommand creates the webhooks command group.
func NewWebhooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "webhooks",
		Aliases: []string{"webhook", "wh"},
		Short:   "Manage webhooks",
		Long:    "List, create and delete global and project webhooks",
	}

	cmd.AddCommand(newWebhooksListCommand())
	cmd.AddCommand(newWebhooksCreateCommand())
	cmd.AddCommand(newWebhooksDeleteCommand())

	return cmd
}

func newWebhooksListCommand() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List webhooks",
		Long:  "List the global webhooks, or the webhooks of a project with --project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close() }()

			webhooks, err := client.GetProjectWebhooks(cmd.Context(), project)
			if err != nil {
				return err
			}

			data := tableData{headers: []string{"Key", "Name", "URL", "Secret"}}
			for _, webhook := range webhooks {
				data.rows = append(data.rows, []string{webhook.Key, webhook.Name, webhook.URL, secretIndicator(webhook)})
			}

			return render(cmd, webhooks, data)
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project key")

	return cmd
}

func newWebhooksCreateCommand() *cobra.Command {
	var (
		project string
		webhook sonarqube.Webhook
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a webhook",
		Long:  "Create a global webhook, or a project webhook with --project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if webhook.Name == "" || webhook.URL == "" {
				return constants.ErrWebhookNameURL
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close() }()

			created, err := client.AddProjectWebhook(cmd.Context(), project, &webhook)
			if err != nil {
				return err
			}

			if created == nil {
				return message(cmd, map[string]interface{}{"name": webhook.Name, "created": false},
					"Webhook "+webhook.Name+" not created (dry run)")
			}

			return render(cmd, created, propertyTable(
				"Key", created.Key,
				"Name", created.Name,
				"URL", created.URL,
				"Secret", secretIndicator(*created),
			))
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project key")
	cmd.Flags().StringVar(&webhook.Name, "name", "", "webhook name")
	cmd.Flags().StringVar(&webhook.URL, "endpoint", "", "URL notified by the webhook")
	cmd.Flags().StringVar(&webhook.Secret, "secret", "", "HMAC secret")

	return cmd
}

func newWebhooksDeleteCommand() *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "delete WEBHOOK_KEY...",
		Short: "Delete webhooks",
		Long:  "Delete one or more webhooks by key. Several keys are deleted concurrently.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close() }()

			if len(args) == 1 {
				err = client.DeleteWebhook(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				if viper.GetBool(keyDryRun) {
					return message(cmd, map[string]interface{}{"webhook": args[0], "deleted": false, "dry_run": true},
						"Webhook "+args[0]+" not deleted (dry run)")
				}

				return message(cmd, map[string]interface{}{"webhook": args[0], "deleted": true}, "Deleted webhook "+args[0])
			}

			executor := sonarqube.NewBatchExecutor(client, concurrency)
			results := executor.Execute(cmd.Context(), sonarqube.DeleteWebhooks(args...))

			return renderDeleteResults(cmd, results)
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", sonarqube.DefaultBatchConcurrency, "maximum concurrent deletes")

	return cmd
}

func renderDeleteResults(cmd *cobra.Command, results []sonarqube.BatchResult) error {
	summary := make([]map[string]interface{}, 0, len(results))
	data := tableData{headers: []string{"Webhook", "Deleted", "Error"}}

	dryRun := viper.GetBool(keyDryRun)

	var failed []error

	for _, result := range results {
		deleted := result.Success() && !dryRun
		entry := map[string]interface{}{"webhook": result.ID, "deleted": deleted}
		errText := ""

		if !result.Success() {
			errText = result.Error.Error()
			entry["error"] = errText
			failed = append(failed, fmt.Errorf("%s: %w", result.ID, result.Error))
		}

		if dryRun {
			entry["dry_run"] = true
		}

		summary = append(summary, entry)
		data.rows = append(data.rows, []string{result.ID, strconv.FormatBool(deleted), valueOrNA(errText)})
	}

	err := render(cmd, summary, data)
	if err != nil {
		return err
	}

	if len(failed) > 0 {
		return fmt.Errorf("%w: %w", constants.ErrWebhookDeleteFailed, errors.Join(failed...))
	}

	return nil
}

func secretIndicator(webhook sonarqube.Webhook) string {
	if webhook.Secret != "" {
		return constants.MaskedSecret
	}

	return strconv.FormatBool(webhook.HasSecret)
}
