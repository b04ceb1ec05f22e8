package css

import (
	"strings"

	"github.com/basalthq/webcore/diag"
)

// ComponentValue is either a preserved token, a Function, or a
// SimpleBlock, per CSS Syntax Module Level 3 §5.4.7.
type ComponentValue interface {
	componentValue()
	String() string
}

// PreservedToken wraps any token that is not itself the start of a
// function or a simple block.
type PreservedToken struct {
	Token Token
}

func (PreservedToken) componentValue() {}
func (p PreservedToken) String() string { return p.Token.String() }

// Function is a component value of the form name(values...).
type Function struct {
	Name   string
	Values []ComponentValue
}

func (Function) componentValue()   {}
func (f Function) String() string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i, v := range f.Values {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// SimpleBlock is a component value delimited by a matching bracket pair:
// {}, [], or (). StartToken records which pair it was.
type SimpleBlock struct {
	StartToken Token
	Values     []ComponentValue
	// Tokens holds the raw token sequence enclosed by the block (not
	// including the start/end bracket tokens), so callers can re-run
	// "consume a list of declarations" over a {} block's contents
	// without re-serializing already-parsed component values.
	Tokens []Token
}

func (SimpleBlock) componentValue() {}
func (b SimpleBlock) String() string {
	open, close := blockDelimiters(b.StartToken.Type)
	var sb strings.Builder
	sb.WriteString(open)
	for i, v := range b.Values {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(v.String())
	}
	sb.WriteString(close)
	return sb.String()
}

func blockDelimiters(open TokenType) (string, string) {
	switch open {
	case TokenOpenCurly:
		return "{", "}"
	case TokenOpenSquare:
		return "[", "]"
	case TokenOpenParen:
		return "(", ")"
	default:
		return "", ""
	}
}

func matchingClose(open TokenType) TokenType {
	switch open {
	case TokenOpenCurly:
		return TokenCloseCurly
	case TokenOpenSquare:
		return TokenCloseSquare
	case TokenOpenParen:
		return TokenCloseParen
	default:
		return TokenEOF
	}
}

// AtRule is a rule introduced by an at-keyword: @name prelude { block }.
// Block is nil for at-rules terminated by a semicolon (e.g. @import).
type AtRule struct {
	Name    string
	Prelude []ComponentValue
	Block   *SimpleBlock
}

// QualifiedRule is a rule with no leading at-keyword: a prelude
// (typically a selector list) followed by a required {} block.
// Declarations and ChildRules are the block's contents, split out by
// consumeDeclarationsList's declaration-vs-nested-rule fallback; Declarations
// holds Declaration and AtRule items, ChildRules holds nested
// QualifiedRules.
type QualifiedRule struct {
	Prelude      []ComponentValue
	Block        *SimpleBlock
	Declarations []interface{}
	ChildRules   []QualifiedRule
}

// Declaration is a name: value pair, optionally marked !important.
// OriginalText preserves the unparsed value text (CSS Custom Properties
// §2 requires this verbatim for --custom-property values consumed later
// by var()).
type Declaration struct {
	Name         string
	Value        []ComponentValue
	Important    bool
	OriginalText string
}

// IsCustomProperty reports whether this declaration's name is a custom
// property (starts with "--"), per CSS Custom Properties for Cascading
// Variables §2.
func (d Declaration) IsCustomProperty() bool {
	return strings.HasPrefix(d.Name, "--")
}

// StyleSheet is the result of parsing a stylesheet: a flat, top-level
// list of qualified rules and at-rules in source order.
type StyleSheet struct {
	Rules []interface{} // each element is either QualifiedRule or AtRule
}

// ParseAStylesheet implements "parse a stylesheet" (CSS Syntax Module
// Level 3 §5.3.1): tokenize input, then consume a list of rules with the
// top-level flag set, which discards CDO/CDC tokens found between
// top-level rules.
func ParseAStylesheet(input string, sink diag.Sink) *StyleSheet {
	stream := NewTokenStream(input, sink)
	return &StyleSheet{Rules: consumeRulesList(stream, true)}
}

// ParseAListOfRules implements "parse a list of rules" (§5.3.2): the same
// algorithm without the top-level CDO/CDC skipping, used when parsing the
// contents of an at-rule block that itself holds rules.
func ParseAListOfRules(input string, sink diag.Sink) []interface{} {
	stream := NewTokenStream(input, sink)
	return consumeRulesList(stream, false)
}

func consumeRulesList(s *TokenStream, topLevel bool) []interface{} {
	var rules []interface{}
	for {
		tok := s.NextToken()
		switch tok.Type {
		case TokenWhitespace:
			s.DiscardToken()
		case TokenEOF:
			return rules
		case TokenCDO, TokenCDC:
			if topLevel {
				s.DiscardToken()
				continue
			}
			if rule := consumeQualifiedRule(s); rule != nil {
				rules = append(rules, *rule)
			}
		case TokenAtKeyword:
			rules = append(rules, consumeAtRule(s))
		default:
			if rule := consumeQualifiedRule(s); rule != nil {
				rules = append(rules, *rule)
			}
		}
	}
}

func consumeAtRule(s *TokenStream) AtRule {
	tok := s.ConsumeToken() // at-keyword
	rule := AtRule{Name: tok.Value}
	for {
		next := s.NextToken()
		switch next.Type {
		case TokenSemicolon:
			s.DiscardToken()
			return rule
		case TokenEOF:
			return rule
		case TokenOpenCurly:
			block := consumeSimpleBlock(s)
			rule.Block = &block
			return rule
		default:
			rule.Prelude = append(rule.Prelude, consumeComponentValue(s))
		}
	}
}

// consumeQualifiedRule implements §5.4.4. It returns nil if EOF is
// reached before the required block, per the "this is a parse error;
// return nothing" branch.
func consumeQualifiedRule(s *TokenStream) *QualifiedRule {
	return consumeQualifiedRuleStop(s, TokenEOF)
}

// consumeQualifiedRuleStop is consumeQualifiedRule with an additional
// stop token. consumeDeclarationsList uses stop=TokenSemicolon when falling
// back from a failed declaration to a nested qualified rule, per §5.4.4's
// optional stop-token list: a qualified rule that never finds its {}
// block before the stop token is reached is not a rule at all.
func consumeQualifiedRuleStop(s *TokenStream, stop TokenType) *QualifiedRule {
	rule := &QualifiedRule{}
	for {
		next := s.NextToken()
		switch {
		case next.Type == TokenEOF:
			return nil
		case stop != TokenEOF && next.Type == stop:
			return nil
		case next.Type == TokenOpenCurly:
			block := consumeSimpleBlock(s)
			rule.Block = &block
			rule.Declarations, rule.ChildRules = splitDeclarationsAndChildRules(
				ParseAListOfDeclarationsFromTokens(block.Tokens))
			return rule
		default:
			rule.Prelude = append(rule.Prelude, consumeComponentValue(s))
		}
	}
}

// splitDeclarationsAndChildRules separates the items returned by
// consumeDeclarationsList into plain declarations/at-rules and nested
// qualified rules, so callers can populate QualifiedRule's Declarations
// and ChildRules fields independently.
func splitDeclarationsAndChildRules(items []interface{}) ([]interface{}, []QualifiedRule) {
	var decls []interface{}
	var children []QualifiedRule
	for _, item := range items {
		if qr, ok := item.(QualifiedRule); ok {
			children = append(children, qr)
			continue
		}
		decls = append(decls, item)
	}
	return decls, children
}

func consumeComponentValue(s *TokenStream) ComponentValue {
	switch s.NextToken().Type {
	case TokenOpenCurly, TokenOpenSquare, TokenOpenParen:
		return consumeSimpleBlock(s)
	case TokenFunction:
		return consumeFunction(s)
	default:
		return PreservedToken{Token: s.ConsumeToken()}
	}
}

func consumeSimpleBlock(s *TokenStream) SimpleBlock {
	start := s.ConsumeToken()
	end := matchingClose(start.Type)
	block := SimpleBlock{StartToken: start}
	startPos := s.pos
	for {
		next := s.NextToken()
		if next.Type == end || next.Type == TokenEOF {
			block.Tokens = append([]Token(nil), s.tokens[startPos:s.pos]...)
			if next.Type == end {
				s.DiscardToken()
			}
			return block
		}
		block.Values = append(block.Values, consumeComponentValue(s))
	}
}

func consumeFunction(s *TokenStream) Function {
	name := s.ConsumeToken()
	fn := Function{Name: name.Value}
	for {
		next := s.NextToken()
		switch next.Type {
		case TokenCloseParen:
			s.DiscardToken()
			return fn
		case TokenEOF:
			return fn
		default:
			fn.Values = append(fn.Values, consumeComponentValue(s))
		}
	}
}

// ParseAListOfDeclarations implements §5.3.8: consume declarations and
// any nested at-rules from a block's contents (the body of a style rule
// or of an at-rule such as @page or @font-face).
func ParseAListOfDeclarations(input string, sink diag.Sink) []interface{} {
	s := NewTokenStream(input, sink)
	return consumeDeclarationsList(s)
}

// ParseAListOfDeclarationsFromTokens runs the same algorithm directly
// over an already-tokenized block's contents (SimpleBlock.Tokens),
// avoiding a re-serialize/re-tokenize round trip.
func ParseAListOfDeclarationsFromTokens(tokens []Token) []interface{} {
	s := NewTokenStreamFromTokens(tokens)
	return consumeDeclarationsList(s)
}

// consumeDeclarationsList implements "consume the contents of a block"
// (§5.4.6/§9.2): anything that isn't a declaration is speculatively
// retried as a nested qualified rule (stopping at ";") before being
// discarded, via TokenStream's mark/restore.
func consumeDeclarationsList(s *TokenStream) []interface{} {
	var items []interface{}
	for {
		tok := s.NextToken()
		switch tok.Type {
		case TokenWhitespace, TokenSemicolon:
			s.DiscardToken()
		case TokenEOF:
			return items
		case TokenAtKeyword:
			items = append(items, consumeAtRule(s))
		default:
			s.Mark()
			if decl, ok := consumeDeclaration(s); ok {
				s.DiscardMark()
				items = append(items, decl)
				continue
			}
			s.RestoreMark()
			if rule := consumeQualifiedRuleStop(s, TokenSemicolon); rule != nil {
				items = append(items, *rule)
			} else if t := s.NextToken().Type; t != TokenSemicolon && t != TokenEOF {
				// Neither a declaration nor a nested rule could be formed
				// and the stream didn't advance to a natural stop point;
				// discard one component value to guarantee progress.
				consumeComponentValue(s)
			}
		}
	}
}

// consumeDeclaration implements §5.4.6. It speculatively consumes a
// name ':' value run and bails out (discarding the rest of the
// declaration up to the next ';' or block boundary) if the colon never
// appears, mirroring the "this is a parse error; return nothing"
// termination.
func consumeDeclaration(s *TokenStream) (Declaration, bool) {
	nameTok := s.ConsumeToken()
	if nameTok.Type != TokenIdent {
		discardDeclarationRemnants(s)
		return Declaration{}, false
	}
	decl := Declaration{Name: nameTok.Value}

	s.DiscardWhitespace()
	if s.NextToken().Type != TokenColon {
		discardDeclarationRemnants(s)
		return Declaration{}, false
	}
	s.DiscardToken() // ':'
	s.DiscardWhitespace()

	start := s.pos
	for {
		next := s.NextToken()
		if next.Type == TokenSemicolon || next.Type == TokenEOF {
			break
		}
		decl.Value = append(decl.Value, consumeComponentValue(s))
	}

	decl.Important, decl.Value = stripImportant(decl.Value)
	decl.OriginalText = renderOriginalText(s.tokens[start:s.pos])
	return decl, true
}

func discardDeclarationRemnants(s *TokenStream) {
	for {
		next := s.NextToken()
		if next.Type == TokenSemicolon || next.Type == TokenEOF {
			return
		}
		consumeComponentValue(s)
	}
}

// stripImportant detects and removes a trailing "! important" (with
// arbitrary whitespace) from a declaration's already-consumed value, per
// the "!important" production in CSS Syntax Module Level 3 §9.
func stripImportant(values []ComponentValue) (bool, []ComponentValue) {
	end := len(values)
	for end > 0 {
		if pt, ok := values[end-1].(PreservedToken); ok && pt.Token.Type == TokenWhitespace {
			end--
			continue
		}
		break
	}
	if end < 2 {
		return false, values[:end]
	}
	identTok, ok := values[end-1].(PreservedToken)
	if !ok || identTok.Token.Type != TokenIdent || !strings.EqualFold(identTok.Token.Value, "important") {
		return false, values[:end]
	}
	idx := end - 2
	for idx >= 0 {
		if pt, ok := values[idx].(PreservedToken); ok && pt.Token.Type == TokenWhitespace {
			idx--
			continue
		}
		break
	}
	if idx < 0 {
		return false, values[:end]
	}
	bangTok, ok := values[idx].(PreservedToken)
	if !ok || bangTok.Token.Type != TokenDelim || bangTok.Token.Delim != '!' {
		return false, values[:end]
	}
	end = idx
	for end > 0 {
		if pt, ok := values[end-1].(PreservedToken); ok && pt.Token.Type == TokenWhitespace {
			end--
			continue
		}
		break
	}
	return true, values[:end]
}

// renderOriginalText reconstructs an approximation of the declaration
// value's source text, good enough for re-tokenizing a custom property's
// value when a var() reference substitutes it later. It is not a
// byte-exact serialization of the original source.
func renderOriginalText(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		switch tok.Type {
		case TokenWhitespace:
			sb.WriteByte(' ')
		case TokenString:
			sb.WriteByte('"')
			sb.WriteString(tok.Value)
			sb.WriteByte('"')
		case TokenDelim:
			sb.WriteRune(tok.Delim)
		case TokenColon:
			sb.WriteByte(':')
		case TokenComma:
			sb.WriteByte(',')
		case TokenFunction:
			sb.WriteString(tok.Value)
			sb.WriteByte('(')
		case TokenOpenParen:
			sb.WriteByte('(')
		case TokenCloseParen:
			sb.WriteByte(')')
		case TokenDimension:
			sb.WriteString(tok.Value)
			sb.WriteString(tok.Unit)
		case TokenPercentage:
			sb.WriteString(tok.Value)
			sb.WriteByte('%')
		case TokenHash:
			sb.WriteByte('#')
			sb.WriteString(tok.Value)
		default:
			sb.WriteString(tok.Value)
		}
	}
	return sb.String()
}
