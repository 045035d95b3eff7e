package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/querybench-labs/querybench/pkg/danger"
	"github.com/querybench-labs/querybench/pkg/dialect"
)

// ErrDangerousQuery is returned when check flags a query, so scripts get a
// non-zero exit code.
var ErrDangerousQuery = errors.New("dangerous query detected")

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <query>",
		Short: "Flag queries likely to cause broad data loss",
		Long: `Classify a query against the dangerous-query heuristics: DELETE/UPDATE
without WHERE, TRUNCATE/DROP/ALTER, multi-statement scripts, empty-filter
deleteMany/updateMany, FLUSHALL and friends.

The check is advisory: a clean result means "not flagged", not "verified
safe". Exits non-zero when the query is flagged.`,
		Example: `  querybench check 'DELETE FROM users'
  querybench check -d redis 'DEL a b c'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0])
		},
	}

	return cmd
}

func runCheck(cmd *cobra.Command, text string) error {
	classify := danger.Classify
	if resolveDialect(cmd) == dialect.Redis {
		classify = danger.ClassifyCommand
	}

	kind, flagged := classify(text)

	if resolveOutput(cmd) == "json" {
		payload := map[string]any{"dangerous": flagged}
		if flagged {
			payload["kind"] = kind.String()
			payload["warning"] = kind.Warning()
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	} else if flagged {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "⚠ %s [%s]\n", kind.Warning(), kind)
	} else {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not flagged")
	}

	if flagged {
		return ErrDangerousQuery
	}
	return nil
}
