package core

import "strings"

// NoIndex is the "none" sentinel for arena back-references: cheaper than
// an optional, per spec §9's cyclic-reference note.
const NoIndex = -1

// Node is an enriched handle around a Token: depth, bracket contribution,
// Jinja block membership, fmt:off status, normalized value, and the
// render-time prefix. Nodes are stored in a single growable Arena and
// referenced elsewhere only by integer index, so arena growth during
// splitting/merging never invalidates existing references.
type Node struct {
	Token Token

	Depth        int
	OpenBrackets int // net bracket delta this node contributes: +1, -1, 0

	JinjaBlock int // index of the nearest enclosing jinja_block_start node, or NoIndex

	FormattingDisabled bool

	Value  string // normalized value, per §4.3
	Prefix string // whitespace to emit before this node, per §4.2

	PrevNonWs int // index of the previous non-whitespace, non-newline node, or NoIndex
}

// IsMeaningful reports whether this node participates in the safety
// check's meaningful-token sequence (§4.9): newlines are the only kind
// dropped, since prefixes (whitespace) are not separate nodes at all in
// this model.
func (n Node) IsMeaningful() bool {
	return n.Token.Kind != KindNewline
}

// Arena is the append-only, index-addressed node store backing a single
// format operation. It is never shared across operations (§5).
type Arena struct {
	Nodes []Node
}

// NewArena creates an empty arena with a little headroom.
func NewArena(capacityHint int) *Arena {
	return &Arena{Nodes: make([]Node, 0, capacityHint)}
}

// Append adds a node and returns its index.
func (a *Arena) Append(n Node) int {
	a.Nodes = append(a.Nodes, n)
	return len(a.Nodes) - 1
}

func (a *Arena) Get(i int) *Node {
	if i == NoIndex {
		return nil
	}
	return &a.Nodes[i]
}

func (a *Arena) Len() int { return len(a.Nodes) }

// depthEntry mirrors the teacher's IndentEntry (utils/indentation.go):
// one entry per open scope, tagged with what opened it so the matching
// close can be found without re-scanning.
type depthEntry struct {
	kind Kind // KindBracketOpen, KindStatementStart, or KindUntermKeyword
	text string
}

// depthTracker computes each node's Depth and OpenBrackets contribution by
// walking a stack of open scopes, the generalization of the teacher's
// top-level/block-level Indentation stack to the spec's three scope
// sources: brackets, statement_start/end pairs, and unterm_keyword peers.
type depthTracker struct {
	stack []depthEntry
}

func newDepthTracker() *depthTracker {
	return &depthTracker{}
}

func (d *depthTracker) depth() int { return len(d.stack) }

// apply updates the stack for tok and returns (depth, openBrackets) for
// the node being constructed from it, per spec §4.2.
func (d *depthTracker) apply(tok Token) (depth int, openBrackets int) {
	switch tok.Kind {
	case KindBracketOpen:
		d.stack = append(d.stack, depthEntry{kind: KindBracketOpen, text: tok.Text})
		depth = d.depth()
		openBrackets = 1
	case KindBracketClose:
		d.popBracket()
		depth = d.depth() + 1 // the closing bracket renders at the depth it closes
		openBrackets = -1
	case KindStatementStart:
		depth = d.depth() // the opening keyword renders at the depth it opens, not the depth it creates
		d.stack = append(d.stack, depthEntry{kind: KindStatementStart, text: tok.Text})
	case KindStatementEnd:
		d.popStatement()
		depth = d.depth() + 1
	case KindUntermKeyword:
		d.popPeerUnterm()
		depth = d.depth() // same: a clause keyword opens a scope, it doesn't live inside it
		d.stack = append(d.stack, depthEntry{kind: KindUntermKeyword, text: tok.Text})
	case KindSemicolon:
		// a statement terminator always closes back to top level, regardless
		// of whatever unterm_keyword/statement scopes are still open
		d.stack = nil
		depth = 0
	default:
		depth = d.depth()
	}
	return depth, openBrackets
}

func (d *depthTracker) popBracket() {
	for i := len(d.stack) - 1; i >= 0; i-- {
		if d.stack[i].kind == KindBracketOpen {
			d.stack = d.stack[:i]
			return
		}
	}
}

func (d *depthTracker) popStatement() {
	for i := len(d.stack) - 1; i >= 0; i-- {
		if d.stack[i].kind == KindStatementStart {
			d.stack = d.stack[:i]
			return
		}
	}
}

// popPeerUnterm pops a trailing unterm_keyword scope (if the stack top is
// one) before pushing a new one: "arrival of another unterm_keyword at
// the same statement level pop[s] back to the opener's depth" (§4.2).
func (d *depthTracker) popPeerUnterm() {
	if len(d.stack) > 0 && d.stack[len(d.stack)-1].kind == KindUntermKeyword {
		d.stack = d.stack[:len(d.stack)-1]
	}
}

// BuildArena runs node construction (§4.2) over a token stream: depth,
// bracket deltas, Jinja block membership, fmt:off spans, normalized
// values, and previous-non-whitespace back-pointers. When disableParser is
// set (the "-- disable-parser" escape hatch, §7), bracket tokens no longer
// advance depth; the splitter still splits the region at its usual split
// points and does not treat it as opaque.
func BuildArena(toks []Token, disableParser bool, applyJinjafmt bool) (*Arena, []DisabledSpan) {
	arena := NewArena(len(toks))
	depths := newDepthTracker()

	var jinjaBlockStack []int
	prevNonWs := NoIndex
	disabled := false
	var spans []DisabledSpan
	var currentSpanStart int

	for _, tok := range toks {
		switch tok.Kind {
		case KindFmtOff:
			if !disabled {
				disabled = true
				currentSpanStart = arena.Len()
			}
		case KindFmtOn:
			if disabled {
				disabled = false
				spans = append(spans, DisabledSpan{Start: currentSpanStart, End: arena.Len()})
			}
		}

		effectiveTok := tok
		if disableParser && (tok.Kind == KindBracketOpen || tok.Kind == KindBracketClose) {
			effectiveTok.Kind = KindData // not KindBracketOpen/Close: depth is left unadvanced
		}
		depth, openBrackets := depths.apply(effectiveTok)

		jinjaBlock := NoIndex
		if len(jinjaBlockStack) > 0 {
			jinjaBlock = jinjaBlockStack[len(jinjaBlockStack)-1]
		}

		idx := arena.Len()
		n := Node{
			Token:              tok,
			Depth:              depth,
			OpenBrackets:       openBrackets,
			JinjaBlock:         jinjaBlock,
			FormattingDisabled: disabled,
			Value:              normalizeValue(tok, applyJinjafmt),
			Prefix:             computePrefix(tok),
			PrevNonWs:          prevNonWs,
		}
		arena.Append(n)

		if tok.Kind == KindJinjaBlockKeyword {
			isPush, isPop := jinjaBlockKeywordKind(tok.Text)
			switch {
			case isPush:
				jinjaBlockStack = append(jinjaBlockStack, idx)
			case isPop:
				if len(jinjaBlockStack) > 0 {
					jinjaBlockStack = jinjaBlockStack[:len(jinjaBlockStack)-1]
				}
			}
		}

		if tok.Kind != KindNewline {
			prevNonWs = idx
		}
	}

	if disabled {
		spans = append(spans, DisabledSpan{Start: currentSpanStart, End: arena.Len()})
	}

	return arena, spans
}

// DisabledSpan is a (start, end) node-index range covered by a --fmt: off
// / --fmt: on region. BuildArena reports these spans and also sets
// FormattingDisabled on every node inside a region; the splitter, merger
// and renderer read that per-node flag, not the spans. End is exclusive,
// and may equal arena length when the
// file ends before a matching --fmt: on is found (§8's boundary case).
type DisabledSpan struct {
	Start, End int
}

// computePrefix decides the whitespace to render before this node. Most
// kinds get the empty string (the renderer inserts a single space between
// same-line nodes by default); dot/double_colon/tighten/comma/close
// brackets get no leading space, enforced here so the renderer doesn't
// need kind-specific logic beyond this classification.
func computePrefix(tok Token) string {
	switch tok.Kind {
	case KindDot, KindDoubleColon, KindTighten, KindComma, KindBracketClose, KindSemicolon, KindColon,
		KindData, KindCommentEnd:
		return ""
	default:
		return " "
	}
}

// normalizeValue implements §4.3's per-kind normalization table. When
// applyJinjafmt is false (mode.no_jinjafmt), Jinja fences keep their raw
// text instead of being run through §4.6.
func normalizeValue(tok Token, applyJinjafmt bool) string {
	switch tok.Kind {
	case KindUntermKeyword, KindWordOperator, KindOn, KindAs, KindBooleanOperator, KindStatementStart, KindStatementEnd:
		return strings.ToLower(collapseInternalSpace(tok.Text))
	case KindName:
		return strings.ToLower(tok.Text)
	case KindQuotedName, KindLiteral, KindNumber, KindOperator:
		return tok.Text
	case KindComment:
		return normalizeLineComment(tok.Text)
	case KindJinjaBlockKeyword, KindJinjaBlockStart, KindJinjaBlockEnd,
		KindJinjaStatementStart, KindJinjaStatementEnd,
		KindJinjaExpressionStart, KindJinjaExpressionEnd:
		if !applyJinjafmt {
			return tok.Text
		}
		return normalizeJinjaInterior(tok.Text)
	default:
		return tok.Text
	}
}

func collapseInternalSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeLineComment trims the comment body and canonicalizes the
// leading marker to "--" unless it's a multiline block comment.
func normalizeLineComment(s string) string {
	trimmed := strings.TrimRight(s, "\r\n")
	for _, marker := range []string{"--", "#", "//"} {
		if strings.HasPrefix(trimmed, marker) {
			body := strings.TrimSpace(strings.TrimPrefix(trimmed, marker))
			if body == "" {
				return "--"
			}
			return "-- " + body
		}
	}
	return trimmed
}
