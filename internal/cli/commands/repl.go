package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/querybench-labs/querybench/internal/cli/config"
	"github.com/querybench-labs/querybench/pkg/complete"
	"github.com/querybench-labs/querybench/pkg/danger"
	"github.com/querybench-labs/querybench/pkg/dialect"
	"github.com/querybench-labs/querybench/pkg/shell"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive query console",
		Long: `An interactive console for inspecting queries: each line is parsed
(shell syntax), checked against the dangerous-query heuristics, and its
structured form printed. Tab completion uses the configured schema.`,
		Example: `  querybench repl
  querybench repl -d mongodb`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}

	return cmd
}

// replSession holds the mutable console state: the active dialect can be
// switched with .dialect without restarting.
type replSession struct {
	cfg     *config.Config
	dialect dialect.Dialect
	format  string
}

func runREPL(cmd *cobra.Command) error {
	session := &replSession{
		cfg:     currentConfig(),
		dialect: resolveDialect(cmd),
		format:  resolveOutput(cmd),
	}

	historyFile := filepath.Join(os.TempDir(), "querybench_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "querybench> ",
		HistoryFile:     historyFile,
		AutoComplete:    &replCompleter{session: session},
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "querybench REPL (dialect: %s)\n", session.dialect)
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := session.handleDotCommand(cmd, line); quit {
				break
			}
			continue
		}

		session.inspect(cmd, line)
		_, _ = fmt.Fprintln(out)
	}

	return nil
}

// inspect parses and classifies one console line.
func (s *replSession) inspect(cmd *cobra.Command, line string) {
	out := cmd.OutOrStdout()

	// Shell syntax gets the structured breakdown
	if s.dialect == dialect.Mongo || strings.HasPrefix(line, "db.") {
		query, err := shell.Parse(line)
		if err != nil {
			printParseError(cmd, line, err)
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		} else if err := renderQuery(out, query, s.format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	classify := danger.Classify
	if s.dialect == dialect.Redis {
		classify = danger.ClassifyCommand
	}
	if kind, ok := classify(line); ok {
		_, _ = fmt.Fprintf(out, "⚠ %s [%s]\n", kind.Warning(), kind)
	}
}

// handleDotCommand processes console commands. Returns true to exit.
func (s *replSession) handleDotCommand(cmd *cobra.Command, line string) bool {
	out := cmd.OutOrStdout()
	parts := strings.Fields(line)

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(out)

	case ".dialect":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(out, "dialect: %s\n", s.dialect)
			return false
		}
		s.dialect = dialect.Parse(parts[1])
		_, _ = fmt.Fprintf(out, "dialect set to %s\n", s.dialect)

	case ".schema":
		s.printSchema(out)

	case ".keywords":
		_, _ = fmt.Fprintln(out, strings.Join(complete.Keywords(s.dialect), " "))

	case ".clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", parts[0])
	}

	return false
}

// printSchema lists the configured metadata the completer draws from.
func (s *replSession) printSchema(w io.Writer) {
	schema := s.cfg.Schema

	if len(schema.Tables) == 0 && len(schema.Collections) == 0 && len(schema.Keys) == 0 {
		_, _ = fmt.Fprintln(w, "(no schema configured)")
		return
	}

	for name, cols := range schema.Tables {
		_, _ = fmt.Fprintf(w, "table %s (%s)\n", name, strings.Join(cols, ", "))
	}
	for name, fields := range schema.Collections {
		_, _ = fmt.Fprintf(w, "collection %s (%s)\n", name, strings.Join(fields, ", "))
	}
	if len(schema.Keyspaces) > 0 {
		_, _ = fmt.Fprintf(w, "keyspaces: %v\n", schema.Keyspaces)
	}
	if len(schema.Keys) > 0 {
		_, _ = fmt.Fprintf(w, "keys: %s\n", strings.Join(schema.Keys, ", "))
	}
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .dialect [name]  Show or switch the active dialect (sql|mongodb|redis)
  .schema          Show the configured completion schema
  .keywords        List the active dialect's keywords
  .clear           Clear the screen
  .quit / .exit    Exit the REPL

Tips:
  - Queries are parsed and checked, never executed
  - Tab completion uses the schema from querybench.yaml
`
	_, _ = fmt.Fprintln(w, help)
}

// replCompleter bridges the completion engine into readline.
type replCompleter struct {
	session *replSession
}

// Do is called by chzyer/readline with the full buffer and cursor position.
// It returns candidate labels and the length of the token being replaced.
func (c *replCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line)
	if pos < 0 {
		pos = 0
	}
	if pos > len(text) {
		pos = len(text)
	}

	items := complete.Complete(text, pos, c.session.dialect, c.session.cfg.Metadata())
	if len(items) == 0 {
		return nil, 0
	}

	replaceLen := len(currentToken(text, pos, c.session.dialect))

	candidates := make([][]rune, 0, len(items))
	for _, item := range items {
		candidates = append(candidates, []rune(item.Label))
	}
	return candidates, replaceLen
}

// currentToken mirrors the engine's prefix rules: key-value commands
// complete whole whitespace-separated tokens, the others identifier runs.
func currentToken(text string, pos int, d dialect.Dialect) string {
	start := pos
	if d == dialect.Redis {
		for start > 0 && text[start-1] != ' ' && text[start-1] != '\t' {
			start--
		}
		return text[start:pos]
	}

	for start > 0 && isIdentByte(text[start-1]) {
		start--
	}
	return text[start:pos]
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '$'
}
