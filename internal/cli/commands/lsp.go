package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/querybench-labs/querybench/internal/cli/config"
	"github.com/querybench-labs/querybench/internal/lsp"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the LSP server for IDE integration.

The server communicates over stdin/stdout using JSON-RPC. The default
dialect and the schema metadata for completion come from querybench.yaml;
a document's languageId overrides the dialect per file.`,
		Example: `  # Start LSP server (usually called by an IDE)
  querybench lsp`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd)
		},
	}

	return cmd
}

func runLSP(cmd *cobra.Command) error {
	logger := config.GetLogger(cmd.Context())
	server := lsp.NewServerWithLogger(os.Stdin, os.Stdout, config.GetCurrentConfig(), logger)
	return server.Run()
}
