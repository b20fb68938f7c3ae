package core

import "strings"

// Render walks the final lines and produces the formatted output string,
// per §4.8. Lines touching a formatting_disabled region are emitted
// verbatim (prefix+text exactly as lexed) instead of through the
// indent/prefix/value pipeline.
func Render(arena *Arena, lines []Line, indentWidth int) string {
	if len(lines) == 0 {
		return ""
	}

	var out strings.Builder
	blankPending := false
	wroteAny := false

	for _, line := range lines {
		text := renderLine(arena, line, indentWidth)
		if strings.TrimSpace(text) == "" {
			continue
		}

		if wroteAny {
			out.WriteByte('\n')
			if blankPending {
				out.WriteByte('\n')
			}
		}
		out.WriteString(text)
		wroteAny = true

		blankPending = endsTopLevelStatement(arena, line)
	}

	if !wroteAny {
		return ""
	}
	out.WriteByte('\n')
	return out.String()
}

func renderLine(arena *Arena, line Line, indentWidth int) string {
	if anyDisabled(arena, line) {
		var b strings.Builder
		for _, idx := range line.Nodes {
			n := arena.Get(idx)
			b.WriteString(n.Token.Prefix)
			b.WriteString(n.Token.Text)
		}
		return strings.TrimRight(b.String(), " \t")
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", indentWidth*line.Depth))
	for i, idx := range line.Nodes {
		n := arena.Get(idx)
		if i > 0 {
			b.WriteString(n.Prefix)
		}
		b.WriteString(n.Value)
	}
	return strings.TrimRight(b.String(), " \t")
}

func endsTopLevelStatement(arena *Arena, line Line) bool {
	if len(line.Nodes) == 0 {
		return false
	}
	last := arena.Get(line.Nodes[len(line.Nodes)-1])
	return last.Token.Kind == KindSemicolon && last.Depth == 0
}
