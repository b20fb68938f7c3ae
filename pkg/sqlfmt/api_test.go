package sqlfmt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatLowercasesKeywordsPolyglot(t *testing.T) {
	got, err := Format("SELECT a FROM t", Mode{})
	require.NoError(t, err)
	require.Equal(t, "select a\nfrom t\n", got)
}

func TestFormatAppliesDuckDBKeywords(t *testing.T) {
	got, err := Format("select * from t pivot (sum(a) for b in (1, 2))", Mode{Dialect: DialectDuckDB})
	require.NoError(t, err)
	require.Contains(t, got, "pivot")
}

func TestFormatUnknownDialectReturnsError(t *testing.T) {
	_, err := Format("select 1", Mode{Dialect: "oracle"})
	require.Error(t, err)
}

func TestFormatClickHouseSecondOpinionRejectsInvalidGrammar(t *testing.T) {
	_, err := Format("select from from", Mode{Dialect: DialectClickHouse})
	require.Error(t, err)
}

func TestFormatClickHouseSecondOpinionAcceptsValidQuery(t *testing.T) {
	got, err := Format("select a from t", Mode{Dialect: DialectClickHouse})
	require.NoError(t, err)
	require.Equal(t, "select a\nfrom t\n", got)
}

func TestFormatClickHouseSecondOpinionSkippedInFastMode(t *testing.T) {
	// Fast mode skips both the core equivalence check and the ClickHouse
	// grammar check, so even a query that would fail the grammar check
	// passes through untouched (each unterm_keyword still opens its own
	// clause line).
	got, err := Format("select from from", Mode{Dialect: DialectClickHouse, Fast: true})
	require.NoError(t, err)
	require.Equal(t, "select\nfrom\nfrom\n", got)
}

func TestFormatClickHouseSecondOpinionSkippedForJinjaSource(t *testing.T) {
	got, err := Format("select {{ my_var }} from t", Mode{Dialect: DialectClickHouse})
	require.NoError(t, err)
	require.Contains(t, got, "{{my_var}}")
}

func TestFormatClickHouseSecondOpinionSkippedForJinjaBlockSource(t *testing.T) {
	got, err := Format("select a from t {% if x %} where x {% endif %}", Mode{Dialect: DialectClickHouse})
	require.NoError(t, err)
	require.Contains(t, got, "{%if x%}")
}

func TestFormatClickHouseSecondOpinionSkippedWhenOutputEmpty(t *testing.T) {
	got, err := Format("", Mode{Dialect: DialectClickHouse})
	require.NoError(t, err)
	require.Equal(t, "", got)
}

func TestFormatNonClickHouseDialectsSkipSecondOpinion(t *testing.T) {
	// "from from" is invalid ClickHouse grammar but is never checked by
	// the parser for other dialects.
	got, err := Format("select from from", Mode{Dialect: DialectPolyglot})
	require.NoError(t, err)
	require.Equal(t, "select\nfrom\nfrom\n", got)
}

func TestFormatPropagatesCoreBracketError(t *testing.T) {
	_, err := Format("select (a from t", Mode{})
	require.Error(t, err)

	var bktErr *SqlfmtBracketError
	require.ErrorAs(t, err, &bktErr)
}
