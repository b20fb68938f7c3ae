package core

// Format runs the full pipeline described in §4: lex, build the node
// arena, assemble lines, split, normalize Jinja fences, merge, render, and
// (unless mode.Fast) verify equivalence. table must be the RuleTable
// compiled for mode.Dialect; callers resolve that mapping (the core
// package itself has no dialect registry, per §9's "no other global
// mutable state").
func Format(table *RuleTable, source string, mode Mode) (string, error) {
	mode = mode.WithDefaults()

	if source == "" {
		return "", nil
	}

	toks, err := Tokenize(table, source)
	if err != nil {
		return "", asCoreError(err)
	}

	disableParser := hasDisableParserMarker(source)
	if !disableParser {
		if err := CheckBracketBalance(toks, table.BracketPairs); err != nil {
			return "", err
		}
	}

	arena, _ := BuildArena(toks, disableParser, !mode.NoJinjafmt)

	lines := AssembleLines(arena)
	lines = SplitLines(arena, lines, mode.LineLength, IndentWidth)
	lines = MergeLines(arena, lines, mode.LineLength, IndentWidth)

	output := Render(arena, lines, IndentWidth)

	if !mode.Fast {
		if err := CheckEquivalence(table, source, output); err != nil {
			return "", err
		}
	}

	return output, nil
}

// asCoreError converts an internal *LexError into the exported error
// taxonomy §6 promises callers.
func asCoreError(err error) error {
	lexErr, ok := err.(*LexError)
	if !ok {
		return err
	}
	if lexErr.Jinja {
		return &SqlfmtJinjaError{Line: lexErr.Pos.Line, Column: lexErr.Pos.Col}
	}
	return &SqlfmtUnsupportedSyntax{Line: lexErr.Pos.Line, Column: lexErr.Pos.Col, Snippet: lexErr.Snippet}
}
