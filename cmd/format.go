package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arenasql/arenafmt/pkg/sqlfmt"
	"github.com/arenasql/arenafmt/pkg/sqlfmt/core"
)

var (
	lineLength int
	dialect    string
	fast       bool
	noJinjafmt bool
	write      bool
)

var formatCmd = &cobra.Command{
	Use:   "format [files...]",
	Short: "Format SQL (and Jinja-SQL) files or stdin",
	Long: `Format SQL files or standard input into arenafmt's house style.

Examples:
  arenafmt format file.sql                  # Format file to stdout
  arenafmt format --write file.sql          # Format file in place
  cat file.sql | arenafmt format -          # Format stdin
  arenafmt format --dialect=duckdb file.sql # Format with the DuckDB dialect`,
	Args: cobra.ArbitraryArgs,
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)

	formatCmd.Flags().IntVar(&lineLength, "line-length", core.DefaultLineLength, "Maximum line length before wrapping")
	formatCmd.Flags().StringVar(&dialect, "dialect", string(core.DialectPolyglot), "SQL dialect (polyglot, duckdb, clickhouse)")
	formatCmd.Flags().BoolVar(&fast, "fast", false, "Skip the equivalence safety check")
	formatCmd.Flags().BoolVar(&noJinjafmt, "no-jinjafmt", false, "Leave the interior of Jinja tags untouched")
	formatCmd.Flags().BoolVarP(&write, "write", "w", false, "Write result to file instead of stdout")
}

func runFormat(cmd *cobra.Command, args []string) error {
	mode, err := buildMode(cmd, "")
	if err != nil {
		return err
	}

	ignoreFile, err := sqlfmt.LoadIgnoreFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load ignore file: %v\n", err)
	}

	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		return formatStdin(mode)
	}

	for _, filename := range args {
		if ignoreFile.ShouldIgnore(filename) {
			continue
		}
		if err := formatFile(cmd, filename); err != nil {
			return fmt.Errorf("failed to format %s: %w", filename, err)
		}
	}

	return nil
}

// buildMode layers a per-file config file under the explicit command-line
// flags, flags always winning. filename is empty for stdin, which has no
// directory to search a config file from.
func buildMode(cmd *cobra.Command, filename string) (core.Mode, error) {
	mode := core.Mode{}.WithDefaults()

	var cf *sqlfmt.ConfigFile
	var err error
	if filename == "" {
		cf, err = sqlfmt.LoadConfigFile()
	} else {
		cf, err = sqlfmt.LoadConfigFileForPath(filename)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config file: %v\n", err)
		cf = &sqlfmt.ConfigFile{}
	}
	if err := cf.ApplyToMode(&mode); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to apply config file: %v\n", err)
	}

	if cmd.Flags().Changed("line-length") {
		mode.LineLength = lineLength
	}
	if cmd.Flags().Changed("dialect") {
		d, err := parseDialectFlag(dialect)
		if err != nil {
			return mode, err
		}
		mode.Dialect = d
	}
	if cmd.Flags().Changed("fast") {
		mode.Fast = fast
	}
	if cmd.Flags().Changed("no-jinjafmt") {
		mode.NoJinjafmt = noJinjafmt
	}

	return mode, nil
}

func parseDialectFlag(s string) (core.Dialect, error) {
	switch strings.ToLower(s) {
	case string(core.DialectPolyglot):
		return core.DialectPolyglot, nil
	case string(core.DialectDuckDB):
		return core.DialectDuckDB, nil
	case string(core.DialectClickHouse):
		return core.DialectClickHouse, nil
	default:
		return "", fmt.Errorf("unknown dialect %q (want one of: polyglot, duckdb, clickhouse)", s)
	}
}

func formatStdin(mode core.Mode) error {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	formatted, err := sqlfmt.Format(string(input), mode)
	if err != nil {
		return err
	}

	fmt.Print(formatted)
	return nil
}

func formatFile(cmd *cobra.Command, filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	contentStr := string(content)
	if strings.TrimSpace(contentStr) == "" {
		if write {
			fmt.Printf("Skipped %s (empty file)\n", filename)
		}
		return nil
	}

	mode, err := buildMode(cmd, filename)
	if err != nil {
		return err
	}

	formatted, err := sqlfmt.Format(contentStr, mode)
	if err != nil {
		return err
	}

	if write {
		if err := os.WriteFile(filename, []byte(formatted), 0o644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		fmt.Printf("Formatted %s\n", filename)
	} else {
		fmt.Print(formatted)
	}

	return nil
}
