package core

// Kind is the closed set of lexical token kinds produced by the lexer.
type Kind int

const (
	// Structural
	KindUntermKeyword Kind = iota
	KindWordOperator
	KindOn
	KindBooleanOperator
	KindAs
	KindStatementStart
	KindStatementEnd
	KindBracketOpen
	KindBracketClose
	KindComma
	KindDot
	KindColon
	KindSemicolon
	KindDoubleColon
	KindOperator
	KindTighten
	KindNewline

	// Atoms
	KindName
	KindQuotedName
	KindNumber
	KindLiteral
	KindStar

	// Fences and templates
	KindComment
	KindCommentStart
	KindCommentEnd
	KindJinjaStatementStart
	KindJinjaStatementEnd
	KindJinjaExpressionStart
	KindJinjaExpressionEnd
	KindJinjaBlockStart
	KindJinjaBlockEnd
	KindJinjaBlockKeyword
	KindData
	KindDisableFmt
	KindEnableFmt

	// Sentinels
	KindFmtOff
	KindFmtOn
)

// String returns a lowercase label matching the kind names used in spec
// prose and error messages.
func (k Kind) String() string {
	switch k {
	case KindUntermKeyword:
		return "unterm_keyword"
	case KindWordOperator:
		return "word_operator"
	case KindOn:
		return "on"
	case KindBooleanOperator:
		return "boolean_operator"
	case KindAs:
		return "as"
	case KindStatementStart:
		return "statement_start"
	case KindStatementEnd:
		return "statement_end"
	case KindBracketOpen:
		return "bracket_open"
	case KindBracketClose:
		return "bracket_close"
	case KindComma:
		return "comma"
	case KindDot:
		return "dot"
	case KindColon:
		return "colon"
	case KindSemicolon:
		return "semicolon"
	case KindDoubleColon:
		return "double_colon"
	case KindOperator:
		return "operator"
	case KindTighten:
		return "tighten"
	case KindNewline:
		return "newline"
	case KindName:
		return "name"
	case KindQuotedName:
		return "quoted_name"
	case KindNumber:
		return "number"
	case KindLiteral:
		return "literal"
	case KindStar:
		return "star"
	case KindComment:
		return "comment"
	case KindCommentStart:
		return "comment_start"
	case KindCommentEnd:
		return "comment_end"
	case KindJinjaStatementStart:
		return "jinja_statement_start"
	case KindJinjaStatementEnd:
		return "jinja_statement_end"
	case KindJinjaExpressionStart:
		return "jinja_expression_start"
	case KindJinjaExpressionEnd:
		return "jinja_expression_end"
	case KindJinjaBlockStart:
		return "jinja_block_start"
	case KindJinjaBlockEnd:
		return "jinja_block_end"
	case KindJinjaBlockKeyword:
		return "jinja_block_keyword"
	case KindData:
		return "data"
	case KindDisableFmt:
		return "disable_fmt"
	case KindEnableFmt:
		return "enable_fmt"
	case KindFmtOff:
		return "fmt_off"
	case KindFmtOn:
		return "fmt_on"
	default:
		return "unknown"
	}
}

// IsJinjaFence reports whether a token kind is one of the fast-path or
// split Jinja fence kinds, the set the Jinja normalizer (§4.6) operates on.
func (k Kind) IsJinjaFence() bool {
	switch k {
	case KindJinjaBlockKeyword, KindJinjaBlockStart, KindJinjaBlockEnd,
		KindJinjaStatementStart, KindJinjaStatementEnd,
		KindJinjaExpressionStart, KindJinjaExpressionEnd:
		return true
	default:
		return false
	}
}

// Position is a 1-indexed source coordinate, used for error reporting and
// node metadata.
type Position struct {
	Line int
	Col  int
}

// Token is a lexical unit: a kind, the whitespace slice preceding it, the
// raw source slice of the lexeme itself, and the position of the lexeme
// (not of the prefix). Tokens are immutable and never destroyed once
// created; the node manager wraps each one in a Node.
type Token struct {
	Kind   Kind
	Prefix string
	Text   string
	Pos    Position
}

// Empty reports whether this is the zero-value Token, used the same way
// the teacher's tokenizer uses an empty types.Token as a "no match" marker.
func (t Token) Empty() bool {
	return t.Text == "" && t.Prefix == ""
}
