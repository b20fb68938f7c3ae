package sqlfmt

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoldenFiles_Polyglot(t *testing.T) {
	testGoldenFiles(t, "polyglot", Mode{Dialect: DialectPolyglot})
}

func TestGoldenFiles_DuckDB(t *testing.T) {
	testGoldenFiles(t, "duckdb", Mode{Dialect: DialectDuckDB})
}

func TestGoldenFiles_ClickHouse(t *testing.T) {
	testGoldenFiles(t, "clickhouse", Mode{Dialect: DialectClickHouse})
}

func testGoldenFiles(t *testing.T, dialect string, mode Mode) {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok)
	projectRoot := filepath.Dir(filepath.Dir(filename))
	inputDir := filepath.Join(projectRoot, "testdata", "input", dialect)
	goldenDir := filepath.Join(projectRoot, "testdata", "golden", dialect)

	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".sql") {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		testName := strings.TrimSuffix(relPath, ".sql")
		testName = strings.ReplaceAll(testName, string(filepath.Separator), "_")

		t.Run(testName, func(t *testing.T) {
			inputBytes, err := os.ReadFile(path)
			require.NoError(t, err, "failed to read input file %s", path)

			goldenPath := filepath.Join(goldenDir, relPath)
			expectedBytes, err := os.ReadFile(goldenPath)
			require.NoError(t, err, "failed to read golden file %s", goldenPath)

			actual, err := Format(string(inputBytes), mode)
			require.NoError(t, err, "formatting %s", path)

			require.Equal(t, strings.TrimSpace(string(expectedBytes)), strings.TrimSpace(actual),
				"formatted SQL doesn't match golden file.\ninput: %s\ngolden: %s", path, goldenPath)
		})
		return nil
	})

	require.NoError(t, err, "failed to walk input directory %s", inputDir)
}
