package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/querybench-labs/querybench/pkg/complete"
)

// NewCompleteCommand creates the complete command.
func NewCompleteCommand() *cobra.Command {
	var cursor int

	cmd := &cobra.Command{
		Use:   "complete <text>",
		Short: "Show completion suggestions for a query fragment",
		Long: `Print the suggestions the completion engine would offer at the cursor
position. Table, collection, and key metadata comes from the schema
section of querybench.yaml.`,
		Example: `  querybench complete 'SELECT * FROM '
  querybench complete -d mongodb 'db.'
  querybench complete -d redis --cursor 4 'GET user'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplete(cmd, args[0], cursor)
		},
	}

	cmd.Flags().IntVar(&cursor, "cursor", -1, "Cursor byte offset (default: end of text)")

	return cmd
}

func runComplete(cmd *cobra.Command, text string, cursor int) error {
	if cursor < 0 {
		cursor = len(text)
	}

	items := complete.Complete(text, cursor, resolveDialect(cmd), currentConfig().Metadata())

	if resolveOutput(cmd) == "json" {
		type suggestion struct {
			Label string `json:"label"`
			Kind  string `json:"kind"`
		}
		payload := make([]suggestion, 0, len(items))
		for _, item := range items {
			payload = append(payload, suggestion{Label: item.Label, Kind: kindName(item.Kind)})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	if len(items) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(no suggestions)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Label", "Kind"})
	for _, item := range items {
		t.AppendRow(table.Row{item.Label, kindName(item.Kind)})
	}
	t.Render()
	return nil
}
