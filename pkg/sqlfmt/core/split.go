package core

// splitAfterKinds are kinds whose split point falls immediately after the
// node (the node stays on the head line). Clause-opening keywords
// (unterm_keyword) are deliberately absent here: those split *before* the
// keyword, so the keyword itself starts the new line rather than trailing
// the clause it closes.
var splitAfterKinds = map[Kind]bool{
	KindStatementStart:  true,
	KindBracketOpen:     true,
	KindBooleanOperator: true,
	KindWordOperator:    true,
	KindOn:              true,
	KindOperator:        true,
}

// lineWidth computes a line's rendered width: the indent plus each node's
// prefix and value, with the first node's prefix suppressed since the
// indent takes its place (§4.8).
func lineWidth(arena *Arena, line Line, indentWidth int) int {
	w := indentWidth * line.Depth
	for i, idx := range line.Nodes {
		n := arena.Get(idx)
		if i > 0 {
			w += len(n.Prefix)
		}
		w += len(n.Value)
	}
	return w
}

// SplitLines applies the §4.5 splitter to every assembled line, recursing
// on head/tail sub-lines until each fits within maxWidth or no split point
// of any priority remains.
func SplitLines(arena *Arena, lines []Line, maxWidth, indentWidth int) []Line {
	var out []Line
	for _, line := range lines {
		out = append(out, splitOne(arena, line, maxWidth, indentWidth)...)
	}
	return out
}

// splitOne splits line into one or more output lines. Clause and statement
// boundaries (unterm_keyword and above) are always forced apart, regardless
// of width: a "select a from t" is split into its clauses even when it
// easily fits max_line_length. Only once no such boundary remains does
// width gate the remaining, lower-priority split points (commas, boolean
// operators, brackets, arithmetic operators).
func splitOne(arena *Arena, line Line, maxWidth, indentWidth int) []Line {
	if anyDisabled(arena, line) {
		return []Line{line}
	}

	minDepth := lineMinDepth(arena, line)

	if pos := findSplitPos(arena, line, minDepth, PriorityUntermKeyword); pos != -1 {
		return splitAt(arena, line, pos, maxWidth, indentWidth)
	}

	if lineWidth(arena, line, indentWidth) <= maxWidth {
		return []Line{line}
	}

	pos := findSplitPos(arena, line, minDepth, PriorityNone+1)
	if pos == -1 {
		return []Line{line} // no split point remains; exempt per §8
	}
	return splitAt(arena, line, pos, maxWidth, indentWidth)
}

// lineMinDepth is the minimum depth among candidate split positions, 1
// through len-1. Position 0 is excluded: a clause-opening keyword there
// renders at the depth it opens, one shallower than its own body, and must
// not skew the search away from the body's split candidates (commas,
// operators) that live one level deeper.
func lineMinDepth(arena *Arena, line Line) int {
	if len(line.Nodes) <= 1 {
		return arena.Get(line.Nodes[0]).Depth
	}
	minDepth := arena.Get(line.Nodes[1]).Depth
	for _, idx := range line.Nodes[1:] {
		if d := arena.Get(idx).Depth; d < minDepth {
			minDepth = d
		}
	}
	return minDepth
}

// findSplitPos finds the highest-priority split candidate at minDepth whose
// priority is at least minPriority, returning -1 if none qualifies.
func findSplitPos(arena *Arena, line Line, minDepth int, minPriority SplitPriority) int {
	best := PriorityNone
	bestPos := -1
	for pos := 1; pos < len(line.Nodes); pos++ {
		n := arena.Get(line.Nodes[pos])
		if n.Depth != minDepth {
			continue
		}
		p := splitPriority(n.Token.Kind)
		if p < minPriority || p == PriorityNone {
			continue
		}
		if p > best {
			best = p
			bestPos = pos
		}
	}
	return bestPos
}

func splitAt(arena *Arena, line Line, pos int, maxWidth, indentWidth int) []Line {
	splitKind := arena.Get(line.Nodes[pos]).Token.Kind
	headEnd, tailStart := pos, pos
	if splitAfterKinds[splitKind] {
		headEnd, tailStart = pos+1, pos+1
	}
	if headEnd == 0 || tailStart >= len(line.Nodes) {
		return []Line{line}
	}

	headNodes := append([]int(nil), line.Nodes[:headEnd]...)
	tailNodes := append([]int(nil), line.Nodes[tailStart:]...)

	lastHead := arena.Get(headNodes[len(headNodes)-1])
	arena.Append(Node{
		Token:              Token{Kind: KindNewline, Pos: lastHead.Token.Pos},
		Depth:              lastHead.Depth,
		JinjaBlock:         lastHead.JinjaBlock,
		FormattingDisabled: lastHead.FormattingDisabled,
	})

	head := Line{Nodes: headNodes, Depth: arena.Get(headNodes[0]).Depth}
	tail := Line{Nodes: tailNodes, Depth: arena.Get(tailNodes[0]).Depth}

	var result []Line
	result = append(result, splitOne(arena, head, maxWidth, indentWidth)...)
	result = append(result, splitOne(arena, tail, maxWidth, indentWidth)...)
	return result
}

func anyDisabled(arena *Arena, line Line) bool {
	for _, idx := range line.Nodes {
		if arena.Get(idx).FormattingDisabled {
			return true
		}
	}
	return false
}
