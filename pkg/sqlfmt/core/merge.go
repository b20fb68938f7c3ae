package core

// MergeLines applies the §4.7 merger: groups lines into segments sharing a
// starting depth, then tries to collapse each segment (top-down, bisecting
// on failure) back into fewer, wider lines, using the same splitPriority
// table the splitter used so the two passes can't fight each other (§9).
func MergeLines(arena *Arena, lines []Line, maxWidth, indentWidth int) []Line {
	var out []Line
	for _, seg := range groupSegments(lines) {
		out = append(out, mergeSegment(arena, seg, maxWidth, indentWidth)...)
	}
	return out
}

// groupSegments splits lines into maximal runs sharing the same starting
// depth, the segment boundary spec §4.7 defines.
func groupSegments(lines []Line) [][]Line {
	var segments [][]Line
	var cur []Line
	for _, l := range lines {
		if len(cur) > 0 && cur[len(cur)-1].Depth != l.Depth {
			segments = append(segments, cur)
			cur = nil
		}
		cur = append(cur, l)
	}
	if len(cur) > 0 {
		segments = append(segments, cur)
	}
	return segments
}

func mergeSegment(arena *Arena, seg []Line, maxWidth, indentWidth int) []Line {
	if len(seg) <= 1 {
		return seg
	}
	if segHasDisabled(arena, seg) {
		return seg
	}

	merged := mergeAll(seg)
	if lineWidth(arena, merged, indentWidth) <= maxWidth && maxBoundaryPriority(arena, seg) < PriorityUntermKeyword {
		return []Line{merged}
	}

	mid := len(seg) / 2
	left := mergeSegment(arena, seg[:mid], maxWidth, indentWidth)
	right := mergeSegment(arena, seg[mid:], maxWidth, indentWidth)
	return append(left, right...)
}

func mergeAll(seg []Line) Line {
	var nodes []int
	for _, l := range seg {
		nodes = append(nodes, l.Nodes...)
	}
	return Line{Nodes: nodes, Depth: seg[0].Depth}
}

func segHasDisabled(arena *Arena, seg []Line) bool {
	for _, l := range seg {
		if anyDisabled(arena, l) {
			return true
		}
	}
	return false
}

// maxBoundaryPriority is the highest splitPriority among the junctions
// between adjacent lines in seg: the priority a merge of the whole segment
// would have to erase. A merge that would erase a statement_start/end or
// unterm_keyword boundary is refused outright, since those are the
// structural backbone a merge must never undo.
func maxBoundaryPriority(arena *Arena, seg []Line) SplitPriority {
	best := PriorityNone
	for i := 0; i < len(seg)-1; i++ {
		p := boundaryPriority(arena, seg[i], seg[i+1])
		if p > best {
			best = p
		}
	}
	return best
}

func boundaryPriority(arena *Arena, a, b Line) SplitPriority {
	lastKind := arena.Get(a.Nodes[len(a.Nodes)-1]).Token.Kind
	firstKind := arena.Get(b.Nodes[0]).Token.Kind
	p1, p2 := splitPriority(lastKind), splitPriority(firstKind)
	if p2 > p1 {
		return p2
	}
	return p1
}
