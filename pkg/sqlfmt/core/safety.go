package core

// CheckEquivalence implements §4.9: re-lex both the original and the
// formatted output, reduce each to its meaningful-token sequence, and
// compare. A mismatch means formatting changed what the query does, not
// just how it looks, and is always surfaced — never silently corrected.
func CheckEquivalence(table *RuleTable, original, formatted string) error {
	origToks, err := Tokenize(table, original)
	if err != nil {
		return err
	}
	outToks, err := Tokenize(table, formatted)
	if err != nil {
		return err
	}

	origSeq := meaningfulSequence(origToks)
	outSeq := meaningfulSequence(outToks)

	if len(origSeq) != len(outSeq) {
		return &SqlfmtEquivalenceError{}
	}
	for i := range origSeq {
		if origSeq[i] != outSeq[i] {
			return &SqlfmtEquivalenceError{}
		}
	}
	return nil
}

// meaningfulSequence drops newlines and normalizes every remaining token's
// text the same way node construction does (§4.3), so whitespace-only
// reformatting never trips the comparison.
func meaningfulSequence(toks []Token) []string {
	seq := make([]string, 0, len(toks))
	for _, t := range toks {
		if t.Kind == KindNewline {
			continue
		}
		seq = append(seq, normalizeValue(t, true))
	}
	return seq
}
