package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/querybench-labs/querybench/pkg/shell"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <query>",
		Short: "Parse a shell-syntax query into its structured form",
		Long: `Parse a db.collection.method(args) query and print the structured
operation the console would execute. Arguments accept relaxed JSON
(unquoted keys, single quotes).`,
		Example: `  querybench parse 'db.users.find({name: "John"})'
  querybench parse -o json 'db.orders.aggregate([{$match: {total: {$gt: 10}}}])'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0])
		},
	}

	return cmd
}

func runParse(cmd *cobra.Command, text string) error {
	query, err := shell.Parse(text)
	if err != nil {
		printParseError(cmd, text, err)
		return err
	}

	return renderQuery(cmd.OutOrStdout(), query, resolveOutput(cmd))
}

// printParseError shows the offending span with a caret underline when the
// error carries a position.
func printParseError(cmd *cobra.Command, text string, err error) {
	var parseErr *shell.ParseError
	if !errors.As(err, &parseErr) {
		return
	}

	offset, length := parseErr.Span()
	if offset > len(text) {
		return
	}
	if length == 0 {
		length = 1
	}
	if offset+length > len(text) {
		length = len(text) - offset
	}

	out := cmd.ErrOrStderr()
	_, _ = fmt.Fprintln(out, text)
	_, _ = fmt.Fprintln(out, strings.Repeat(" ", offset)+strings.Repeat("^", length))
}
