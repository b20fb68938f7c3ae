package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arenasql/arenafmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "arenafmt",
	Short: "An opinionated SQL and Jinja-SQL formatter",
	Long: `arenafmt formats SQL (and Jinja-templated SQL, as used by dbt models) into a
single consistent style: lowercase keywords, four-space indents, leading
commas, and wrapped long lines, while refusing to write output whose
meaningful tokens differ from the input it was given.`,
	Version: "v" + version.Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("arenafmt version v" + version.Version + "\n")
}
