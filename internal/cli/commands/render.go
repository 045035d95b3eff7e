package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/querybench-labs/querybench/internal/cli/config"
	"github.com/querybench-labs/querybench/pkg/complete"
	"github.com/querybench-labs/querybench/pkg/dialect"
	"github.com/querybench-labs/querybench/pkg/shell"
)

// currentConfig returns the loaded configuration, falling back to defaults
// when a command runs without the root's pre-run (tests).
func currentConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Dialect: config.DefaultDialect,
		Output:  config.DefaultOutput,
	}
}

// resolveDialect picks the dialect: --dialect flag beats the config default.
func resolveDialect(cmd *cobra.Command) dialect.Dialect {
	if cmd.Flags().Changed("dialect") {
		if v, err := cmd.Flags().GetString("dialect"); err == nil && v != "" {
			return dialect.Parse(v)
		}
	}
	return currentConfig().DefaultDialectTag()
}

// resolveOutput picks the output format: --output flag beats the config.
func resolveOutput(cmd *cobra.Command) string {
	if cmd.Flags().Changed("output") {
		if v, err := cmd.Flags().GetString("output"); err == nil && v != "" {
			return v
		}
	}
	if out := currentConfig().Output; out != "" {
		return out
	}
	return config.DefaultOutput
}

// renderQuery writes a parsed query as a property table or as JSON.
func renderQuery(w io.Writer, query *shell.Query, format string) error {
	if format == "json" {
		return renderQueryJSON(w, query)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Property", "Value"})

	if query.Database != "" {
		t.AppendRow(table.Row{"database", query.Database})
	}
	t.AppendRow(table.Row{"collection", query.Collection})
	t.AppendRow(table.Row{"operation", shell.Name(query.Operation)})
	for _, row := range operationRows(query.Operation) {
		t.AppendRow(row)
	}

	t.Render()
	return nil
}

func renderQueryJSON(w io.Writer, query *shell.Query) error {
	payload := map[string]any{
		"collection": query.Collection,
		"operation":  shell.Name(query.Operation),
		"details":    query.Operation,
	}
	if query.Database != "" {
		payload["database"] = query.Database
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// operationRows flattens an operation's documents into display rows.
func operationRows(op shell.Operation) []table.Row {
	var rows []table.Row
	add := func(name string, value any) {
		rows = append(rows, table.Row{name, jsonString(value)})
	}

	switch o := op.(type) {
	case *shell.Find:
		add("filter", o.Filter)
		if len(o.Projection) > 0 {
			add("projection", o.Projection)
		}
		if len(o.Sort) > 0 {
			add("sort", o.Sort)
		}
		if o.Limit > 0 {
			rows = append(rows, table.Row{"limit", o.Limit})
		}
		if o.Skip > 0 {
			rows = append(rows, table.Row{"skip", o.Skip})
		}
	case *shell.Count:
		add("filter", o.Filter)
	case *shell.Aggregate:
		rows = append(rows, table.Row{"stages", len(o.Pipeline)})
		add("pipeline", o.Pipeline)
	case *shell.InsertOne:
		add("document", o.Document)
	case *shell.InsertMany:
		rows = append(rows, table.Row{"documents", len(o.Documents)})
	case *shell.UpdateOne:
		add("filter", o.Filter)
		add("update", o.Update)
		rows = append(rows, table.Row{"upsert", o.Upsert})
	case *shell.UpdateMany:
		add("filter", o.Filter)
		add("update", o.Update)
		rows = append(rows, table.Row{"upsert", o.Upsert})
	case *shell.ReplaceOne:
		add("filter", o.Filter)
		add("replacement", o.Replacement)
		rows = append(rows, table.Row{"upsert", o.Upsert})
	case *shell.DeleteOne:
		add("filter", o.Filter)
	case *shell.DeleteMany:
		add("filter", o.Filter)
	}

	return rows
}

// jsonString renders a value compactly for table cells.
func jsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// kindNames maps suggestion kinds to display names.
var kindNames = map[complete.ItemKind]string{
	complete.KindKeyword:  "keyword",
	complete.KindField:    "field",
	complete.KindStruct:   "struct",
	complete.KindMethod:   "method",
	complete.KindOperator: "operator",
	complete.KindValue:    "value",
	complete.KindFunction: "function",
}

func kindName(k complete.ItemKind) string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "text"
}
