// Package sqlfmt is the library entry point: format(source, mode) ->
// Result<string, error>. It resolves mode.Dialect to a compiled rule table
// via the dialects registry and delegates the pipeline itself to
// pkg/sqlfmt/core.
package sqlfmt

import (
	"strings"

	"github.com/arenasql/arenafmt/internal/clickhousecheck"
	"github.com/arenasql/arenafmt/pkg/sqlfmt/core"
	"github.com/arenasql/arenafmt/pkg/sqlfmt/dialects"
)

// Mode is the recognized configuration surface for a single format call
// (§6): line_length, dialect, fast, no_jinjafmt.
type Mode = core.Mode

const (
	DialectPolyglot   = core.DialectPolyglot
	DialectDuckDB     = core.DialectDuckDB
	DialectClickHouse = core.DialectClickHouse
)

// Re-exported error taxonomy (§6), so callers never need to import
// pkg/sqlfmt/core directly to do a type switch on a returned error.
type (
	SqlfmtUnsupportedSyntax = core.SqlfmtUnsupportedSyntax
	SqlfmtBracketError      = core.SqlfmtBracketError
	SqlfmtEquivalenceError  = core.SqlfmtEquivalenceError
	SqlfmtJinjaError        = core.SqlfmtJinjaError
)

// Format runs the full formatting pipeline on source under mode, returning
// the formatted text or the first error the pipeline surfaced (§7: a core
// error aborts formatting of that one source; callers must not write a
// partial result).
func Format(source string, mode Mode) (string, error) {
	table, err := dialects.RuleTable(mode.WithDefaults().Dialect)
	if err != nil {
		return "", err
	}

	out, err := core.Format(table, source, mode)
	if err != nil {
		return "", err
	}

	// Jinja-templated SQL has no meaning to ClickHouse's own grammar, so
	// the second-opinion check only runs on plain queries.
	isJinjaFree := !strings.Contains(source, "{{") && !strings.Contains(source, "{%")
	if mode.WithDefaults().Dialect == core.DialectClickHouse && !mode.Fast && out != "" && isJinjaFree {
		if err := clickhousecheck.Parse(out); err != nil {
			return "", err
		}
	}

	return out, nil
}
