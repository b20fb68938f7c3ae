package core

// SplitPriority ranks a candidate split point: higher values win. Both the
// splitter (§4.5) and the merger (§4.7) must agree on this table or the
// merger will undo splits the splitter just made (§9's oscillation
// warning), so it lives here once and both sides import it.
type SplitPriority int

const (
	PriorityNone SplitPriority = iota
	PriorityOperator
	PriorityBooleanOrOn
	PriorityBracket
	PriorityComma
	PriorityUntermKeyword
	PriorityStatementBoundary
)

// splitPriority classifies a node's kind into the §4.5 ranking. Nodes that
// are never split points return PriorityNone.
func splitPriority(k Kind) SplitPriority {
	switch k {
	case KindStatementStart, KindStatementEnd:
		return PriorityStatementBoundary
	case KindUntermKeyword:
		return PriorityUntermKeyword
	case KindComma:
		return PriorityComma
	case KindBracketOpen, KindBracketClose:
		return PriorityBracket
	case KindBooleanOperator, KindWordOperator, KindOn:
		return PriorityBooleanOrOn
	case KindOperator:
		return PriorityOperator
	default:
		return PriorityNone
	}
}
