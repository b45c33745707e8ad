package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// JSON formatting.
	defaultJSONIndent = 2
)

// tableData is the table rendition of a result.
type tableData struct {
	headers []string
	rows    [][]string
}

// outputFormat returns the validated --output value.
func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString(keyOutput))

	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, format)
	}
}

// render writes value as JSON or YAML, or table as a table.
func render(cmd *cobra.Command, value interface{}, table tableData) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch format {
	case constants.FormatJSON:
		return writeJSON(out, value)
	case constants.FormatYAML:
		return writeYAML(out, value)
	default:
		return writeTable(out, table)
	}
}

func writeJSON(out io.Writer, value interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

func writeYAML(out io.Writer, value interface{}) error {
	encoder := yaml.NewEncoder(out)

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return encoder.Close()
}

func writeTable(out io.Writer, data tableData) error {
	table := tablewriter.NewWriter(out)
	table.Header(toAny(data.headers)...)

	for _, row := range data.rows {
		err := table.Append(row)
		if err != nil {
			return fmt.Errorf("failed to append table row: %w", err)
		}
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// propertyTable renders label/value pairs as a two-column table.
func propertyTable(pairs ...string) tableData {
	data := tableData{headers: []string{"Property", "Value"}}

	for i := 0; i+1 < len(pairs); i += 2 {
		data.rows = append(data.rows, []string{pairs[i], valueOrNA(pairs[i+1])})
	}

	return data
}

// message prints a status line in table mode; JSON and YAML get result instead.
func message(cmd *cobra.Command, result map[string]interface{}, text string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	if format == constants.FormatTable {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)

		return err
	}

	return render(cmd, result, tableData{})
}

func valueOrNA(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}

func toAny(values []string) []any {
	result := make([]any, len(values))
	for i, value := range values {
		result[i] = value
	}

	return result
}
