package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arenasql/arenafmt/pkg/sqlfmt/dialects"
)

var dialectsCmd = &cobra.Command{
	Use:     "dialects",
	Aliases: []string{"list-dialects"},
	Short:   "List all supported SQL dialects",
	Long: `List all SQL dialects supported by arenafmt.

polyglot is the common keyword set; duckdb and clickhouse each extend it
with the unterminated-keyword clauses and word operators that dialect uses.`,
	Run: runDialects,
}

func init() {
	rootCmd.AddCommand(dialectsCmd)
}

func runDialects(cmd *cobra.Command, args []string) {
	fmt.Println("Supported dialects:")
	fmt.Println()
	for _, name := range dialects.Names() {
		fmt.Printf("  %s\n", name)
		fmt.Printf("    %s\n", dialects.Describe(name))
		fmt.Println()
	}
	fmt.Println("Usage:")
	fmt.Println("  arenafmt format --dialect=duckdb file.sql")
}
