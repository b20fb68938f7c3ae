package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/arenasql/arenafmt/pkg/sqlfmt"
)

// ErrNeedsFormatting and ErrCheckFailed let main translate a failed check
// into the distinct exit codes §6 promises, without this package calling
// os.Exit itself (which would make runCheck untestable).
var (
	ErrNeedsFormatting = errors.New("one or more files need formatting")
	ErrCheckFailed     = errors.New("check failed")
)

var (
	outputFormat string
	showDiff     bool
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Check if SQL files are already formatted",
	Long: `Check that SQL files are already in arenafmt's house style, without
writing anything back. Useful in CI to ensure code stays formatted.

Exit codes:
  0 - all files are already formatted
  1 - one or more files need formatting
  2 - an error occurred (parse failure, unbalanced brackets, etc.)

Examples:
  arenafmt check file.sql                # Check a single file
  arenafmt check --dialect=duckdb *.sql  # Check all files against DuckDB
  arenafmt check --output=json *.sql     # Machine-readable output
  arenafmt check --diff file.sql         # Show what would change
  cat file.sql | arenafmt check -        # Check stdin`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&dialect, "dialect", "polyglot", "SQL dialect (polyglot, duckdb, clickhouse)")
	checkCmd.Flags().IntVar(&lineLength, "line-length", 88, "Maximum line length before wrapping")
	checkCmd.Flags().BoolVar(&fast, "fast", false, "Skip the equivalence safety check")
	checkCmd.Flags().BoolVar(&noJinjafmt, "no-jinjafmt", false, "Leave the interior of Jinja tags untouched")
	checkCmd.Flags().StringVar(&outputFormat, "output", "text", "Output format (text or json)")
	checkCmd.Flags().BoolVar(&showDiff, "diff", false, "Show differences for files that need formatting")
}

type checkResult struct {
	File      string `json:"file"`
	Formatted bool   `json:"formatted"`
	Diff      string `json:"diff,omitempty"`
	Error     string `json:"error,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	ignoreFile, err := sqlfmt.LoadIgnoreFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load ignore file: %v\n", err)
	}

	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		result := checkSource(cmd, "<stdin>", string(input))
		return reportResults(cmd, []checkResult{result})
	}

	var results []checkResult
	for _, filename := range args {
		if ignoreFile.ShouldIgnore(filename) {
			continue
		}
		content, err := os.ReadFile(filename)
		if err != nil {
			results = append(results, checkResult{File: filename, Error: err.Error()})
			continue
		}
		results = append(results, checkSource(cmd, filename, string(content)))
	}

	return reportResults(cmd, results)
}

func checkSource(cmd *cobra.Command, filename, source string) checkResult {
	mode, err := buildMode(cmd, filename)
	if err != nil {
		return checkResult{File: filename, Error: err.Error()}
	}

	formatted, err := sqlfmt.Format(source, mode)
	if err != nil {
		return checkResult{File: filename, Error: err.Error()}
	}

	if formatted == source {
		return checkResult{File: filename, Formatted: true}
	}

	result := checkResult{File: filename, Formatted: false}
	if showDiff {
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(source),
			B:        difflib.SplitLines(formatted),
			FromFile: filename + " (original)",
			ToFile:   filename + " (formatted)",
			Context:  3,
		}
		text, err := difflib.GetUnifiedDiffString(diff)
		if err == nil {
			result.Diff = text
		}
	}
	return result
}

func reportResults(cmd *cobra.Command, results []checkResult) error {
	needsFormat := false
	hasError := false

	if outputFormat == "json" {
		if err := writeJSONResults(cmd, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			switch {
			case r.Error != "":
				fmt.Fprintf(os.Stderr, "%s: %s\n", r.File, r.Error)
			case !r.Formatted:
				fmt.Printf("%s: needs formatting\n", r.File)
				if r.Diff != "" {
					fmt.Print(r.Diff)
				}
			default:
				fmt.Printf("%s: properly formatted\n", r.File)
			}
		}
	}

	for _, r := range results {
		if r.Error != "" {
			hasError = true
		} else if !r.Formatted {
			needsFormat = true
		}
	}

	if hasError {
		return ErrCheckFailed
	}
	if needsFormat {
		return ErrNeedsFormatting
	}
	return nil
}

func writeJSONResults(cmd *cobra.Command, results []checkResult) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
