package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModeWithDefaultsFillsLineLength(t *testing.T) {
	m := Mode{}.WithDefaults()
	require.Equal(t, DefaultLineLength, m.LineLength)
	require.Equal(t, DialectPolyglot, m.Dialect)
}

func TestModeWithDefaultsPreservesExplicitValues(t *testing.T) {
	m := Mode{LineLength: 120, Dialect: DialectDuckDB, Fast: true, NoJinjafmt: true}.WithDefaults()
	require.Equal(t, 120, m.LineLength)
	require.Equal(t, DialectDuckDB, m.Dialect)
	require.True(t, m.Fast)
	require.True(t, m.NoJinjafmt)
}

func TestModeWithDefaultsRejectsNonPositiveLineLength(t *testing.T) {
	m := Mode{LineLength: -5}.WithDefaults()
	require.Equal(t, DefaultLineLength, m.LineLength)
}
