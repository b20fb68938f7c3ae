package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatEmptySource(t *testing.T) {
	table := testRuleTable()
	got, err := Format(table, "", Mode{})
	require.NoError(t, err)
	require.Equal(t, "", got)
}

func TestFormatSimpleSelectLowercasesKeywords(t *testing.T) {
	table := testRuleTable()
	got, err := Format(table, "SELECT a FROM t", Mode{})
	require.NoError(t, err)
	require.Equal(t, "select a\nfrom t\n", got)
}

func TestFormatIsIdempotent(t *testing.T) {
	table := testRuleTable()
	first, err := Format(table, "SELECT a, b FROM t WHERE a = 1", Mode{})
	require.NoError(t, err)

	second, err := Format(table, first, Mode{})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestFormatSplitsLongLines(t *testing.T) {
	table := testRuleTable()
	src := "select aaaaaaaaaa, bbbbbbbbbb, cccccccccc, dddddddddd from t"
	got, err := Format(table, src, Mode{LineLength: 20})
	require.NoError(t, err)
	require.Greater(t, strings.Count(got, "\n"), 1)
}

func TestFormatReturnsBracketError(t *testing.T) {
	table := testRuleTable()
	_, err := Format(table, "select (a from t", Mode{})
	require.Error(t, err)

	var bktErr *SqlfmtBracketError
	require.ErrorAs(t, err, &bktErr)
}

func TestFormatDisableParserSkipsBracketCheck(t *testing.T) {
	table := testRuleTable()
	src := "-- disable-parser\nselect (a from t"
	_, err := Format(table, src, Mode{})
	require.NoError(t, err)
}

func TestFormatReturnsUnsupportedSyntaxError(t *testing.T) {
	table := testRuleTable()
	_, err := Format(table, "select a @ b", Mode{})
	require.Error(t, err)

	var synErr *SqlfmtUnsupportedSyntax
	require.ErrorAs(t, err, &synErr)
}

func TestFormatFastSkipsEquivalenceCheck(t *testing.T) {
	table := testRuleTable()
	_, err := Format(table, "select a from t", Mode{Fast: true})
	require.NoError(t, err)
}

func TestFormatNoJinjafmtLeavesFenceRaw(t *testing.T) {
	table := testRuleTable()
	got, err := Format(table, "select {{   my_var   }} from t", Mode{NoJinjafmt: true})
	require.NoError(t, err)
	require.Contains(t, got, "{{   my_var   }}")
}

func TestFormatAppliesJinjafmtByDefault(t *testing.T) {
	table := testRuleTable()
	got, err := Format(table, "select {{   my_var   }} from t", Mode{})
	require.NoError(t, err)
	require.Contains(t, got, "{{my_var}}")
}

func TestFormatPreservesFmtOffRegionVerbatim(t *testing.T) {
	table := testRuleTable()
	src := "select a\n-- fmt: off\nSELECT    weird\n-- fmt: on\nfrom t"
	got, err := Format(table, src, Mode{})
	require.NoError(t, err)
	require.Contains(t, got, "SELECT    weird")
}

func TestAsCoreErrorWrapsJinjaLexError(t *testing.T) {
	err := asCoreError(&LexError{Jinja: true, Pos: Position{Line: 1, Col: 1}})
	var jinjaErr *SqlfmtJinjaError
	require.ErrorAs(t, err, &jinjaErr)
}

func TestAsCoreErrorWrapsSyntaxLexError(t *testing.T) {
	err := asCoreError(&LexError{Pos: Position{Line: 1, Col: 1}, Snippet: "@"})
	var synErr *SqlfmtUnsupportedSyntax
	require.ErrorAs(t, err, &synErr)
}

func TestAsCoreErrorPassesThroughOtherErrors(t *testing.T) {
	other := &SqlfmtBracketError{}
	require.Same(t, other, asCoreError(other))
}
