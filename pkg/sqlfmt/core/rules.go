package core

import (
	"regexp"
	"sort"
	"strings"
)

// RuleAction runs after a rule's pattern matches, letting the rule push or
// pop the lexer's active ruleset. Most rules have no action.
type RuleAction func(lx *Lexer)

// Rule is a (pattern, kind, action) triple: data, not a subtype. The lexer
// iterates a static slice of these per ruleset and takes the first match,
// so rule order encodes priority (longer/more-specific patterns precede
// shorter ones).
type Rule struct {
	Name string
	// Pattern is used when Scan is nil: the first submatch at the start of
	// input is the lexeme.
	Pattern *regexp.Regexp
	// Scan, when set, replaces Pattern for lexemes a regular expression
	// can't safely bound (balanced, nested, string-literal-aware spans).
	// It returns the matched text and whether it matched at all.
	Scan func(input string) (string, bool)
	Kind Kind
	// MatchGroup selects which FindStringSubmatch index becomes the
	// lexeme; the default, 0, is the whole match. RE2 has no lookahead, so
	// a rule whose terminator must stay unconsumed for a later rule (e.g.
	// a comment body stopping at "*/") captures the body in group 1 and
	// sets this to 1 instead.
	MatchGroup int
	Action     RuleAction
}

func (r Rule) match(input string) (string, bool) {
	if r.Scan != nil {
		return r.Scan(input)
	}
	if r.Pattern == nil {
		return "", false
	}
	m := r.Pattern.FindStringSubmatch(input)
	if len(m) == 0 || r.MatchGroup >= len(m) {
		return "", false
	}
	return m[r.MatchGroup], true
}

// RuleSet is a named, ordered list of rules. The lexer keeps a stack of
// active rule sets; Lexer.pushRuleSet and Lexer.popRuleSet move between
// them.
type RuleSet struct {
	Name  string
	Rules []Rule
}

// RuleTable holds the four core rule sets, compiled once per dialect and
// shared by reference across concurrent format operations (§5).
type RuleTable struct {
	Main       *RuleSet
	Jinja      *RuleSet
	Comment    *RuleSet
	DisableFmt *RuleSet

	// BracketPairs maps each open bracket symbol to its matching close
	// symbol, used by bracket-balance checking (§7).
	BracketPairs map[string]string
}

// KeywordSet is the dialect-provided vocabulary the rule table is built
// from, the equivalent of the teacher's TokenizerConfig.
type KeywordSet struct {
	UntermKeywords    []string
	StatementStart    []string
	StatementEnd      []string
	WordOperators     []string
	BooleanOperators  []string
	OnKeywords        []string
	AsKeywords        []string
	OpenBrackets      []string
	CloseBrackets     []string
	TightenOperators  []string // e.g. "::" cast shorthand, unary sign context
	SpecialOperators  []string // multi-char operators beyond the default set
	LineCommentStyles []string // e.g. "--", "#", "//"
}

// buildKeywordRegex compiles a case-insensitive, longest-match-first
// alternation of the given (possibly multi-word) keywords, anchored at the
// start of input and bounded by a word boundary. Longer words are sorted
// first so "GROUP BY" matches before "GROUP", mirroring the teacher's
// createReservedWordRegex.
func buildKeywordRegex(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return nil
	}
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	parts := make([]string, len(sorted))
	for i, w := range sorted {
		parts[i] = strings.ReplaceAll(regexp.QuoteMeta(w), `\ `, `\s+`)
	}
	return regexp.MustCompile(`(?i)^(` + strings.Join(parts, "|") + `)\b`)
}

func buildSymbolRegex(symbols []string) *regexp.Regexp {
	if len(symbols) == 0 {
		return nil
	}
	sorted := make([]string, len(symbols))
	copy(sorted, symbols)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	parts := make([]string, len(sorted))
	for i, s := range sorted {
		parts[i] = regexp.QuoteMeta(s)
	}
	return regexp.MustCompile(`^(` + strings.Join(parts, "|") + `)`)
}

var (
	wordRegex        = regexp.MustCompile(`^([\p{L}\p{M}\p{N}_$]+)`)
	numberRegex      = regexp.MustCompile(`^(0x[0-9a-fA-F]+|0b[01]+|[0-9]+(\.[0-9]+)?([eE][-+]?[0-9]+)?)`)
	starRegex        = regexp.MustCompile(`^(\*)`)
	commaRegex       = regexp.MustCompile(`^(,)`)
	dotRegex         = regexp.MustCompile(`^(\.)`)
	semicolonRegex   = regexp.MustCompile(`^(;)`)
	doubleColonRegex = regexp.MustCompile(`^(::)`)
	colonRegex       = regexp.MustCompile(`^(:)`)
	quotedNameRegex  = regexp.MustCompile("^(`[^`]*`|\"[^\"]*\"|\\[[^\\]]*\\])")
	literalRegex     = regexp.MustCompile(`^('(?:[^'\\]|\\.)*'|\$\$(?:[^$]|\$(?:[^$]))*\$\$)`)
	blockCommentOpen = regexp.MustCompile(`^(/\*)`)
	lineCommentRegexFmtOff = regexp.MustCompile(`(?i)^--\s*fmt:\s*off\b`)
	defaultOperatorRegex   = regexp.MustCompile(
		`^(!=|<>|<=|>=|->>|->|\|\||=>|<<|>>|[=<>+\-*/%|&^~])`)
)

// NewRuleTable compiles the main/jinja/comment/disable_fmt rule sets for a
// dialect's keyword vocabulary. Compilation happens once per dialect and
// the result is safe to share across goroutines (§5).
func NewRuleTable(kw KeywordSet) *RuleTable {
	openRe := buildSymbolRegex(kw.OpenBrackets)
	closeRe := buildSymbolRegex(kw.CloseBrackets)
	untermRe := buildKeywordRegex(kw.UntermKeywords)
	stmtStartRe := buildKeywordRegex(kw.StatementStart)
	stmtEndRe := buildKeywordRegex(kw.StatementEnd)
	wordOpRe := buildKeywordRegex(kw.WordOperators)
	boolOpRe := buildKeywordRegex(kw.BooleanOperators)
	onRe := buildKeywordRegex(kw.OnKeywords)
	asRe := buildKeywordRegex(kw.AsKeywords)
	lineCommentRe := buildLineCommentRegex(kw.LineCommentStyles)
	operatorRe := defaultOperatorRegex
	if len(kw.SpecialOperators) > 0 {
		operatorRe = buildSymbolRegex(append(append([]string{}, kw.SpecialOperators...), "=", "<", ">", "+", "-", "*", "/", "%"))
	}

	main := &RuleSet{Name: "main", Rules: []Rule{
		{Name: "fmt_off", Pattern: lineCommentRegexFmtOff, Kind: KindFmtOff, Action: func(lx *Lexer) { lx.pushRuleSet("disable_fmt") }},
		{Name: "line_comment", Pattern: lineCommentRe, Kind: KindComment},
		{Name: "block_comment_start", Pattern: blockCommentOpen, Kind: KindCommentStart, Action: func(lx *Lexer) { lx.pushRuleSet("comment") }},
		{Name: "quoted_name", Pattern: quotedNameRegex, Kind: KindQuotedName},
		{Name: "literal", Pattern: literalRegex, Kind: KindLiteral},
		{Name: "statement_start", Pattern: stmtStartRe, Kind: KindStatementStart},
		{Name: "statement_end", Pattern: stmtEndRe, Kind: KindStatementEnd},
		{Name: "unterm_keyword", Pattern: untermRe, Kind: KindUntermKeyword},
		{Name: "on", Pattern: onRe, Kind: KindOn},
		{Name: "as", Pattern: asRe, Kind: KindAs},
		{Name: "boolean_operator", Pattern: boolOpRe, Kind: KindBooleanOperator},
		{Name: "word_operator", Pattern: wordOpRe, Kind: KindWordOperator},
		{Name: "double_colon", Pattern: doubleColonRegex, Kind: KindDoubleColon},
		{Name: "open_bracket", Pattern: openRe, Kind: KindBracketOpen},
		{Name: "close_bracket", Pattern: closeRe, Kind: KindBracketClose},
		{Name: "comma", Pattern: commaRegex, Kind: KindComma},
		{Name: "semicolon", Pattern: semicolonRegex, Kind: KindSemicolon},
		{Name: "dot", Pattern: dotRegex, Kind: KindDot},
		{Name: "colon", Pattern: colonRegex, Kind: KindColon},
		{Name: "star", Pattern: starRegex, Kind: KindStar},
		{Name: "number", Pattern: numberRegex, Kind: KindNumber},
		{Name: "operator", Pattern: operatorRe, Kind: KindOperator},
		{Name: "name", Pattern: wordRegex, Kind: KindName},
	}}

	// The jinja ruleset is never pushed to: fences are resolved by the
	// lexer's balanced scanJinjaFence pre-check (the single-token fast
	// path), not by switching rule sets token-by-token. Kept for parity
	// with spec §4.1's named ruleset list.
	jinja := &RuleSet{Name: "jinja", Rules: []Rule{}}

	comment := &RuleSet{Name: "comment", Rules: []Rule{
		{Name: "block_comment_end", Pattern: regexp.MustCompile(`^(\*/)`), Kind: KindCommentEnd, Action: func(lx *Lexer) { lx.popRuleSet() }},
		// Group 1 stops short of "*/" so the terminator is left for
		// block_comment_end to consume and pop the ruleset; taking the
		// whole match here would swallow "*/" into the body and strand
		// the lexer in the comment ruleset for the rest of the input.
		{Name: "block_comment_body", Pattern: regexp.MustCompile(`(?s)^(.*?)(?:\*/|$)`), Kind: KindData, MatchGroup: 1},
	}}

	disableFmt := &RuleSet{Name: "disable_fmt", Rules: []Rule{
		{Name: "fmt_on", Pattern: regexp.MustCompile(`(?i)^--\s*fmt:\s*on\b`), Kind: KindFmtOn, Action: func(lx *Lexer) { lx.popRuleSet() }},
		{Name: "disabled_line", Pattern: regexp.MustCompile(`(?s)^.*?(?:\r\n|\r|\n|$)`), Kind: KindData},
	}}

	pairs := make(map[string]string, len(kw.OpenBrackets))
	for i, o := range kw.OpenBrackets {
		if i < len(kw.CloseBrackets) {
			pairs[o] = kw.CloseBrackets[i]
		}
	}

	return &RuleTable{Main: main, Jinja: jinja, Comment: comment, DisableFmt: disableFmt, BracketPairs: pairs}
}

func buildLineCommentRegex(styles []string) *regexp.Regexp {
	if len(styles) == 0 {
		styles = []string{"--"}
	}
	quoted := make([]string, len(styles))
	for i, s := range styles {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return regexp.MustCompile(`^((?:` + strings.Join(quoted, "|") + `).*?(?:\r\n|\r|\n|$))`)
}
