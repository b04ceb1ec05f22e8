package css

import "github.com/basalthq/webcore/diag"

// TokenStream is a rewindable view over a token sequence, used by the
// parsing entry points in parser.go. It implements the "token stream"
// operations from CSS Syntax Module Level 3 §5.1: next/consume a token,
// and marking a position to speculatively consume then restore, which
// the qualified-rule-vs-declaration dispatch in consumeDeclarationsList
// needs.
type TokenStream struct {
	tokens []Token
	pos    int
	marks  []int
}

// NewTokenStream tokenizes input and returns a stream positioned at the
// first token. Comments are already stripped by the tokenizer; this
// stream never special-cases TokenComment. Syntax errors encountered
// while tokenizing are reported to sink; pass diag.Discard to ignore
// them.
func NewTokenStream(input string, sink diag.Sink) *TokenStream {
	t := NewTokenizer(input, sink)
	return &TokenStream{tokens: t.TokenizeAll()}
}

// NewTokenStreamFromTokens wraps an already-tokenized slice, as used when
// re-parsing the component values captured inside a function or block.
func NewTokenStreamFromTokens(tokens []Token) *TokenStream {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
		tokens = append(tokens, Token{Type: TokenEOF})
	}
	return &TokenStream{tokens: tokens}
}

// NextToken returns the next token without consuming it.
func (s *TokenStream) NextToken() Token {
	if s.pos >= len(s.tokens) {
		return Token{Type: TokenEOF}
	}
	return s.tokens[s.pos]
}

// PeekAt returns the token n positions ahead of the current one, without
// consuming anything.
func (s *TokenStream) PeekAt(n int) Token {
	pos := s.pos + n
	if pos >= len(s.tokens) {
		return Token{Type: TokenEOF}
	}
	return s.tokens[pos]
}

// ConsumeToken returns the next token and advances past it.
func (s *TokenStream) ConsumeToken() Token {
	tok := s.NextToken()
	if s.pos < len(s.tokens) {
		s.pos++
	}
	return tok
}

// DiscardToken advances past the next token without returning it.
func (s *TokenStream) DiscardToken() {
	if s.pos < len(s.tokens) {
		s.pos++
	}
}

// Empty reports whether the stream has nothing left but EOF.
func (s *TokenStream) Empty() bool {
	return s.NextToken().Type == TokenEOF
}

// DiscardWhitespace discards tokens until the next token is not
// whitespace.
func (s *TokenStream) DiscardWhitespace() {
	for s.NextToken().Type == TokenWhitespace {
		s.DiscardToken()
	}
}

// Mark pushes the current position onto the mark stack and returns it;
// RestoreMark rewinds to the most recent mark. This supports speculative
// parsing (try consuming a declaration; if that
// fails, rewind and consume a qualified rule instead).
func (s *TokenStream) Mark() int {
	mark := s.pos
	s.marks = append(s.marks, mark)
	return mark
}

// RestoreMark rewinds the stream to the position most recently marked.
func (s *TokenStream) RestoreMark() {
	if len(s.marks) == 0 {
		return
	}
	last := len(s.marks) - 1
	s.pos = s.marks[last]
	s.marks = s.marks[:last]
}

// DiscardMark drops the most recently recorded mark without rewinding.
func (s *TokenStream) DiscardMark() {
	if len(s.marks) == 0 {
		return
	}
	s.marks = s.marks[:len(s.marks)-1]
}
