package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFormatFlags() {
	lineLength = 88
	dialect = "polyglot"
	fast = false
	noJinjafmt = false
	write = false
}

func newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:  "format [files...]",
		Args: cobra.ArbitraryArgs,
		RunE: runFormat,
	}
	cmd.Flags().IntVar(&lineLength, "line-length", 88, "Maximum line length")
	cmd.Flags().StringVar(&dialect, "dialect", "polyglot", "SQL dialect")
	cmd.Flags().BoolVar(&fast, "fast", false, "Skip the equivalence safety check")
	cmd.Flags().BoolVar(&noJinjafmt, "no-jinjafmt", false, "Leave Jinja tag interiors untouched")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write result to file")
	return cmd
}

func runWithStdin(t *testing.T, cmd *cobra.Command, args []string, input string) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	oldStdin := os.Stdin
	stdinReader, stdinWriter, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = stdinReader

	go func() {
		defer func() { _ = stdinWriter.Close() }()
		_, _ = stdinWriter.WriteString(input)
	}()

	cmd.SetArgs(args)
	err = cmd.Execute()

	_ = w.Close()
	os.Stdout = oldStdout
	os.Stdin = oldStdin

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)

	require.NoError(t, err)
	return strings.TrimSpace(buf.String())
}

func TestFormatCommandBasic(t *testing.T) {
	resetFormatFlags()
	cmd := newFormatCmd()

	output := runWithStdin(t, cmd, []string{"-"}, "select * from users where id = 1")

	expected := `select *
from users
where id = 1`

	assert.Equal(t, expected, output)
}

func TestFormatCommandDialectFlag(t *testing.T) {
	resetFormatFlags()
	cmd := newFormatCmd()
	require.NoError(t, cmd.Flags().Set("dialect", "duckdb"))

	output := runWithStdin(t, cmd, []string{"-"}, "select * from users pivot (count(*) for status in ('a', 'b'))")
	assert.Contains(t, output, "pivot")
}

func TestFormatCommandUnknownDialect(t *testing.T) {
	resetFormatFlags()
	cmd := newFormatCmd()
	require.NoError(t, cmd.Flags().Set("dialect", "oracle"))

	cmd.SetArgs([]string{"-"})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")
}

func TestFormatCommandLineLengthFlag(t *testing.T) {
	resetFormatFlags()
	cmd := newFormatCmd()
	require.NoError(t, cmd.Flags().Set("line-length", "20"))

	output := runWithStdin(t, cmd, []string{"-"}, "select id, name, email, created_at from users")
	assert.Contains(t, output, "\n")
}

func TestFormatFile(t *testing.T) {
	resetFormatFlags()
	tmpFile, err := os.CreateTemp("", "test*.sql")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	_, err = tmpFile.WriteString("select * from users where name = 'john'")
	require.NoError(t, err)
	_ = tmpFile.Close()

	cmd := newFormatCmd()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	cmd.SetArgs([]string{tmpFile.Name()})
	err = cmd.Execute()
	require.NoError(t, err)

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := strings.TrimSpace(buf.String())

	expected := `select *
from users
where name = 'john'`

	assert.Equal(t, expected, output)
}

func TestFormatCommandWriteFlag(t *testing.T) {
	resetFormatFlags()
	tmpFile, err := os.CreateTemp("", "test*.sql")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	_, err = tmpFile.WriteString("select * from users where name = 'john'")
	require.NoError(t, err)
	_ = tmpFile.Close()

	cmd := newFormatCmd()
	require.NoError(t, cmd.Flags().Set("write", "true"))

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	cmd.SetArgs([]string{tmpFile.Name()})
	err = cmd.Execute()
	require.NoError(t, err)

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()

	content, err := os.ReadFile(tmpFile.Name())
	require.NoError(t, err)

	expected := `select *
from users
where name = 'john'`

	assert.Equal(t, expected, strings.TrimSpace(string(content)))
	assert.Contains(t, output, "Formatted "+tmpFile.Name())
}

func TestFormatCommandMultipleFiles(t *testing.T) {
	resetFormatFlags()
	tmpFile1, err := os.CreateTemp("", "test1*.sql")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile1.Name()) }()

	tmpFile2, err := os.CreateTemp("", "test2*.sql")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile2.Name()) }()

	_, err = tmpFile1.WriteString("select * from users")
	require.NoError(t, err)
	_ = tmpFile1.Close()

	_, err = tmpFile2.WriteString("select * from orders")
	require.NoError(t, err)
	_ = tmpFile2.Close()

	cmd := newFormatCmd()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	cmd.SetArgs([]string{tmpFile1.Name(), tmpFile2.Name()})
	err = cmd.Execute()
	require.NoError(t, err)

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()

	assert.Contains(t, output, "users")
	assert.Contains(t, output, "orders")
}

func TestFormatCommandErrorNonExistentFile(t *testing.T) {
	resetFormatFlags()
	cmd := newFormatCmd()

	cmd.SetArgs([]string{"/nonexistent/file.sql"})
	err := cmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to format")
}

func TestFormatCommandEmptyFileSkipped(t *testing.T) {
	resetFormatFlags()
	tmpFile, err := os.CreateTemp("", "empty*.sql")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()
	_ = tmpFile.Close()

	cmd := newFormatCmd()
	require.NoError(t, cmd.Flags().Set("write", "true"))

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	cmd.SetArgs([]string{tmpFile.Name()})
	err = cmd.Execute()
	require.NoError(t, err)

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	assert.Contains(t, buf.String(), "Skipped")
}

func TestFormatCommandWithConfigFile(t *testing.T) {
	resetFormatFlags()
	tmpDir, err := os.MkdirTemp("", "arenafmt_test_*")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	configContent := "dialect: duckdb\nline_length: 40\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".arenafmt.yaml"), []byte(configContent), 0o644))

	tmpSQL := filepath.Join(tmpDir, "test.sql")
	require.NoError(t, os.WriteFile(tmpSQL, []byte("select * from users pivot (count(*) for status in ('a'))"), 0o644))

	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWd) }()

	cmd := newFormatCmd()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	cmd.SetArgs([]string{tmpSQL})
	err = cmd.Execute()
	require.NoError(t, err)

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	assert.Contains(t, buf.String(), "pivot")
}
