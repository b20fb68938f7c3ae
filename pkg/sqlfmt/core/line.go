package core

// Line is a slice of node indices into the shared Arena, never a copy of
// node data (§5). It starts at index 0 and wherever the previous emitted
// node was a newline, per §4.4.
type Line struct {
	Nodes []int
	Depth int // depth of this line's first non-whitespace node
}

// AssembleLines walks the arena in order and groups node indices into
// lines, splitting on every newline node. Newline nodes themselves are not
// stored in any Line: blank-line placement is a renderer decision driven
// by statement boundaries (§4.8), not by preserving the source's original
// line breaks.
func AssembleLines(arena *Arena) []Line {
	var lines []Line
	var cur []int

	flush := func() {
		if len(cur) == 0 {
			return
		}
		depth := arena.Get(cur[0]).Depth
		lines = append(lines, Line{Nodes: cur, Depth: depth})
		cur = nil
	}

	for i := 0; i < arena.Len(); i++ {
		n := arena.Get(i)
		if n.Token.Kind == KindNewline {
			flush()
			continue
		}
		cur = append(cur, i)
	}
	flush()

	return lines
}
