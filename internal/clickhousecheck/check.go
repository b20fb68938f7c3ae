// Package clickhousecheck wires ClickHouse's own SQL grammar into the
// ClickHouse dialect's safety check, as a second opinion beyond the core
// package's lexical §4.9 comparison: a query can be lexically equivalent
// before and after formatting while still being grammatically invalid
// ClickHouse, something a token-sequence comparison alone can't catch.
package clickhousecheck

import (
	"fmt"

	"github.com/AfterShip/clickhouse-sql-parser/parser"
)

// Parse runs the ClickHouse grammar over source and returns a descriptive
// error if it's rejected. Jinja-templated input is skipped by the caller
// before reaching here: ClickHouse's grammar has no notion of `{{ }}`
// fences.
func Parse(source string) error {
	p := parser.NewParser(source)
	if _, err := p.ParseStmts(); err != nil {
		return fmt.Errorf("clickhouse grammar check: %w", err)
	}
	return nil
}
