// Package dialects supplies the per-dialect keyword vocabulary the core
// lexer's rule table is compiled from, and a small process-wide registry
// that builds each dialect's RuleTable lazily and shares it by immutable
// reference (spec §9's "compiled rule set is built once per process").
package dialects

import (
	"fmt"
	"sync"

	"github.com/arenasql/arenafmt/pkg/sqlfmt/core"
)

var (
	commonUntermKeywords = []string{
		"select", "select distinct", "select distinct on", "from", "where", "group by", "having",
		"order by", "limit", "offset", "union", "union all", "intersect", "except",
		"with", "join", "inner join", "left join", "left outer join", "right join",
		"right outer join", "full join", "full outer join", "cross join", "lateral join",
		"partition by", "window", "values", "set", "into", "returning", "qualify",
	}
	commonStatementStart = []string{"case"}
	commonStatementEnd   = []string{"end"}
	commonWordOperators  = []string{
		"like", "ilike", "similar to", "not like", "not ilike", "between", "not between",
		"is distinct from", "is not distinct from", "over", "filter", "within group",
		"exclude", "rows between", "range between",
	}
	commonBooleanOperators = []string{"and", "or", "not"}
	commonOnKeywords       = []string{"on", "using"}
	commonAsKeywords       = []string{"as"}
	commonOpenBrackets     = []string{"(", "[", "{"}
	commonCloseBrackets    = []string{")", "]", "}"}
	commonLineComments     = []string{"--"}
)

func cloneKeywordSet(extraUnterm, extraWordOp, extraBool []string) core.KeywordSet {
	return core.KeywordSet{
		UntermKeywords:    append(append([]string{}, commonUntermKeywords...), extraUnterm...),
		StatementStart:    append([]string{}, commonStatementStart...),
		StatementEnd:      append([]string{}, commonStatementEnd...),
		WordOperators:     append(append([]string{}, commonWordOperators...), extraWordOp...),
		BooleanOperators:  append(append([]string{}, commonBooleanOperators...), extraBool...),
		OnKeywords:        append([]string{}, commonOnKeywords...),
		AsKeywords:        append([]string{}, commonAsKeywords...),
		OpenBrackets:      append([]string{}, commonOpenBrackets...),
		CloseBrackets:     append([]string{}, commonCloseBrackets...),
		TightenOperators:  []string{"::"},
		LineCommentStyles: append([]string{}, commonLineComments...),
	}
}

// Polyglot is the default, dialect-agnostic keyword vocabulary: the ANSI
// core plus the handful of extensions common enough across engines that
// treating them as reserved words everywhere does no harm.
func Polyglot() core.KeywordSet {
	return cloneKeywordSet(nil, nil, nil)
}

// DuckDB adds DuckDB-specific clauses (PIVOT/UNPIVOT, ASOF joins, the
// list/struct-literal friendly word operators it reuses from Postgres).
func DuckDB() core.KeywordSet {
	return cloneKeywordSet(
		[]string{"pivot", "unpivot", "asof join", "positional join", "from (values"},
		[]string{"similar to"},
		nil,
	)
}

// ClickHouse adds ClickHouse's array-join and sampling clauses.
func ClickHouse() core.KeywordSet {
	return cloneKeywordSet(
		[]string{"array join", "left array join", "sample", "prewhere", "final"},
		[]string{"global in", "global not in"},
		nil,
	)
}

var (
	mu       sync.Mutex
	compiled = map[core.Dialect]*core.RuleTable{}

	builders = map[core.Dialect]func() core.KeywordSet{
		core.DialectPolyglot:   Polyglot,
		core.DialectDuckDB:     DuckDB,
		core.DialectClickHouse: ClickHouse,
	}
)

// RuleTable returns the compiled, immutable RuleTable for a dialect,
// building it once and caching it for the lifetime of the process.
func RuleTable(d core.Dialect) (*core.RuleTable, error) {
	mu.Lock()
	defer mu.Unlock()

	if t, ok := compiled[d]; ok {
		return t, nil
	}
	builder, ok := builders[d]
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q", d)
	}
	t := core.NewRuleTable(builder())
	compiled[d] = t
	return t, nil
}

// Names lists the supported dialects in a stable order, for the `dialects`
// CLI command.
func Names() []core.Dialect {
	return []core.Dialect{core.DialectPolyglot, core.DialectDuckDB, core.DialectClickHouse}
}

// Describe returns a one-line human description of a dialect, used by the
// `dialects` CLI command.
func Describe(d core.Dialect) string {
	switch d {
	case core.DialectPolyglot:
		return "Dialect-agnostic ANSI SQL core; the default."
	case core.DialectDuckDB:
		return "DuckDB: adds PIVOT/UNPIVOT, ASOF joins."
	case core.DialectClickHouse:
		return "ClickHouse: adds ARRAY JOIN, SAMPLE, PREWHERE, FINAL."
	default:
		return ""
	}
}
