package html

import (
	"strings"

	"github.com/basalthq/webcore/diag"
)

// state names the tokenizer's current position within the state machine
// at https://html.spec.whatwg.org/multipage/parsing.html#tokenization.
// Only the states this package's scope needs are modeled: full foreign-
// content CDATA section handling and the RCDATA/RAWTEXT "double escaped"
// script variants are flattened into their nearest equivalent since
// nothing in this module drives <script> execution or SVG/MathML content.
type state int

const (
	stateData state = iota
	stateRCDATA
	stateRAWTEXT
	statePLAINTEXT
	stateScriptData
	stateScriptDataEscaped
	stateScriptDataDoubleEscaped
	stateTagOpen
	stateEndTagOpen
	stateTagName
	stateRCDATALessThanSign
	stateRCDATAEndTagOpen
	stateRCDATAEndTagName
	stateRAWTEXTLessThanSign
	stateRAWTEXTEndTagOpen
	stateRAWTEXTEndTagName
	stateScriptDataLessThanSign
	stateScriptDataEndTagOpen
	stateScriptDataEndTagName
	stateScriptDataEscapeStart
	stateScriptDataEscapeStartDash
	stateScriptDataEscapedDash
	stateScriptDataEscapedDashDash
	stateScriptDataEscapedLessThanSign
	stateScriptDataEscapedEndTagOpen
	stateScriptDataEscapedEndTagName
	stateBeforeAttributeName
	stateAttributeName
	stateAfterAttributeName
	stateBeforeAttributeValue
	stateAttributeValueDoubleQuoted
	stateAttributeValueSingleQuoted
	stateAttributeValueUnquoted
	stateAfterAttributeValueQuoted
	stateSelfClosingStartTag
	stateBogusComment
	stateMarkupDeclarationOpen
	stateCommentStart
	stateCommentStartDash
	stateComment
	stateCommentLessThanSign
	stateCommentEndDash
	stateCommentEnd
	stateCommentEndBang
	stateDoctype
	stateBeforeDoctypeName
	stateDoctypeName
	stateAfterDoctypeName
	stateAfterDoctypePublicKeyword
	stateBeforeDoctypePublicIdentifier
	stateDoctypePublicIdentifierDoubleQuoted
	stateDoctypePublicIdentifierSingleQuoted
	stateAfterDoctypePublicIdentifier
	stateBetweenDoctypePublicAndSystemIdentifiers
	stateAfterDoctypeSystemKeyword
	stateBeforeDoctypeSystemIdentifier
	stateDoctypeSystemIdentifierDoubleQuoted
	stateDoctypeSystemIdentifierSingleQuoted
	stateAfterDoctypeSystemIdentifier
	stateBogusDoctype
	stateCharacterReference
	stateNamedCharacterReference
	stateAmbiguousAmpersand
	stateNumericCharacterReference
	stateHexadecimalCharacterReferenceStart
	stateDecimalCharacterReferenceStart
	stateHexadecimalCharacterReference
	stateDecimalCharacterReference
	stateNumericCharacterReferenceEnd
)

const eof = rune(-1)

// Tokenizer converts a rune stream into HTML tokens, following the
// tokenization state machine. It is driven one token at a time by
// NextToken; the tree constructor may redirect it mid-parse via
// SetState and SetLastStartTagName (e.g. when entering script data for a
// <script> element).
type Tokenizer struct {
	input []rune
	pos   int
	line  int
	col   int

	state       state
	returnState state

	tempBuffer       []rune
	lastStartTagName string

	currentToken    Token
	currentAttrName strings.Builder
	currentAttrVal  strings.Builder
	haveCurrentAttr bool

	charRefCode int64

	pending []Token

	sink diag.Sink
}

// NewTokenizer creates a tokenizer over input, starting in the Data
// state. Diagnostics are sent to sink; pass diag.Discard to ignore them.
func NewTokenizer(input string, sink diag.Sink) *Tokenizer {
	if sink == nil {
		sink = diag.Discard
	}
	return &Tokenizer{
		input: []rune(input),
		line:  1,
		col:   1,
		state: stateData,
		sink:  sink,
	}
}

// SetState forces the tokenizer into the named state, for use by the
// tree constructor when a start tag (e.g. <title>, <script>, <textarea>)
// dictates the next content should be read as RCDATA, RAWTEXT, or
// script data rather than ordinary Data.
func (t *Tokenizer) SetState(s TokenizerState) {
	t.state = state(s)
}

// TokenizerState is the exported handle for the states a caller may pass
// to SetState; it hides the internal state enumeration's unexported
// states that only the tokenizer itself ever enters.
type TokenizerState int

const (
	DataState       TokenizerState = TokenizerState(stateData)
	RCDATAState     TokenizerState = TokenizerState(stateRCDATA)
	RAWTEXTState    TokenizerState = TokenizerState(stateRAWTEXT)
	ScriptDataState TokenizerState = TokenizerState(stateScriptData)
	PLAINTEXTState  TokenizerState = TokenizerState(statePLAINTEXT)
)

// SetLastStartTagName records the tag name used to recognize a matching
// "appropriate end tag token" while tokenizing RCDATA/RAWTEXT/script
// data content.
func (t *Tokenizer) SetLastStartTagName(name string) {
	t.lastStartTagName = name
}

func (t *Tokenizer) errorf(message string) {
	t.sink.Report(diag.Error{
		Kind:    diag.TokenizerError,
		Message: message,
		Line:    t.line,
		Col:     t.col,
	})
}

func (t *Tokenizer) peek() rune {
	if t.pos >= len(t.input) {
		return eof
	}
	return t.input[t.pos]
}

func (t *Tokenizer) peekN(n int) rune {
	p := t.pos + n
	if p >= len(t.input) || p < 0 {
		return eof
	}
	return t.input[p]
}

func (t *Tokenizer) next() rune {
	if t.pos >= len(t.input) {
		return eof
	}
	r := t.input[t.pos]
	t.pos++
	if r == 0 {
		t.errorf("unexpected-null-character")
	}
	if r == '\n' {
		t.line++
		t.col = 1
	} else {
		t.col++
	}
	return r
}

func (t *Tokenizer) reconsume() {
	if t.pos > 0 {
		t.pos--
	}
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIAlpha(r rune) bool { return isASCIIUpper(r) || isASCIILower(r) }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
func toASCIILower(r rune) rune {
	if isASCIIUpper(r) {
		return r + ('a' - 'A')
	}
	return r
}
func isWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func (t *Tokenizer) startNewTag(tt TokenType) {
	t.currentToken = Token{Type: tt}
}

func (t *Tokenizer) appendTagName(r rune) {
	t.currentToken.TagName += string(r)
}

func (t *Tokenizer) startAttribute() {
	t.flushAttribute()
	t.haveCurrentAttr = true
	t.currentAttrName.Reset()
	t.currentAttrVal.Reset()
}

func (t *Tokenizer) flushAttribute() {
	if !t.haveCurrentAttr {
		return
	}
	name := t.currentAttrName.String()
	for _, a := range t.currentToken.Attributes {
		if a.Name == name {
			// Duplicate attribute: per spec, the first occurrence wins and
			// the duplicate is dropped, with a parse error.
			t.errorf("duplicate-attribute")
			t.haveCurrentAttr = false
			return
		}
	}
	t.currentToken.Attributes = append(t.currentToken.Attributes, Attribute{
		Name:  name,
		Value: t.currentAttrVal.String(),
	})
	t.haveCurrentAttr = false
}

// emit queues tok; this is also where the "appropriate end tag token"
// name is latched for start tags, consumed by stepEndTagNameGeneric in
// the RCDATA, RAWTEXT and script data end-tag-name states.
func (t *Tokenizer) emit(tok Token) {
	if tok.Type == StartTagToken {
		t.lastStartTagName = tok.TagName
	}
	t.pending = append(t.pending, tok)
}

func (t *Tokenizer) emitCurrentTag() {
	t.flushAttribute()
	t.emit(t.currentToken)
}

func (t *Tokenizer) emitChar(r rune) {
	t.emit(Token{Type: CharacterToken, Char: r})
}

func (t *Tokenizer) emitEOF() {
	t.emit(Token{Type: EOFToken})
}

// NextToken runs the state machine until it has a token to return.
func (t *Tokenizer) NextToken() Token {
	for len(t.pending) == 0 {
		if !t.step() {
			t.emitEOF()
		}
	}
	tok := t.pending[0]
	t.pending = t.pending[1:]
	return tok
}

// step executes one iteration of the tokenizer. It returns false once
// end-of-input has been reached and fully drained.
func (t *Tokenizer) step() bool {
	if t.pos > len(t.input) {
		return false
	}

	switch t.state {
	case stateData:
		return t.stepData()
	case statePLAINTEXT:
		return t.stepPlaintext()
	case stateRCDATA:
		return t.stepRCDATA()
	case stateRAWTEXT:
		return t.stepRAWTEXT()
	case stateScriptData:
		return t.stepScriptData()
	case stateScriptDataEscaped:
		return t.stepScriptDataEscaped()
	case stateScriptDataDoubleEscaped:
		return t.stepScriptDataDoubleEscaped()
	case stateTagOpen:
		return t.stepTagOpen()
	case stateEndTagOpen:
		return t.stepEndTagOpen()
	case stateTagName:
		return t.stepTagName()
	case stateRCDATALessThanSign:
		return t.stepLessThanSignGeneric(stateRCDATA, &t.state, stateRCDATAEndTagOpen)
	case stateRCDATAEndTagOpen:
		return t.stepEndTagOpenGeneric(stateRCDATA, stateRCDATAEndTagName)
	case stateRCDATAEndTagName:
		return t.stepEndTagNameGeneric(stateRCDATA)
	case stateRAWTEXTLessThanSign:
		return t.stepLessThanSignGeneric(stateRAWTEXT, &t.state, stateRAWTEXTEndTagOpen)
	case stateRAWTEXTEndTagOpen:
		return t.stepEndTagOpenGeneric(stateRAWTEXT, stateRAWTEXTEndTagName)
	case stateRAWTEXTEndTagName:
		return t.stepEndTagNameGeneric(stateRAWTEXT)
	case stateScriptDataLessThanSign:
		return t.stepScriptDataLessThanSign()
	case stateScriptDataEndTagOpen:
		return t.stepEndTagOpenGeneric(stateScriptData, stateScriptDataEndTagName)
	case stateScriptDataEndTagName:
		return t.stepEndTagNameGeneric(stateScriptData)
	case stateScriptDataEscapeStart:
		return t.stepScriptDataEscapeStart()
	case stateScriptDataEscapeStartDash:
		return t.stepScriptDataEscapeStartDash()
	case stateScriptDataEscapedDash:
		return t.stepScriptDataEscapedDash()
	case stateScriptDataEscapedDashDash:
		return t.stepScriptDataEscapedDashDash()
	case stateScriptDataEscapedLessThanSign:
		return t.stepScriptDataEscapedLessThanSign()
	case stateScriptDataEscapedEndTagOpen:
		return t.stepEndTagOpenGeneric(stateScriptDataEscaped, stateScriptDataEscapedEndTagName)
	case stateScriptDataEscapedEndTagName:
		return t.stepEndTagNameGeneric(stateScriptDataEscaped)
	case stateBeforeAttributeName:
		return t.stepBeforeAttributeName()
	case stateAttributeName:
		return t.stepAttributeName()
	case stateAfterAttributeName:
		return t.stepAfterAttributeName()
	case stateBeforeAttributeValue:
		return t.stepBeforeAttributeValue()
	case stateAttributeValueDoubleQuoted:
		return t.stepAttributeValueQuoted('"')
	case stateAttributeValueSingleQuoted:
		return t.stepAttributeValueQuoted('\'')
	case stateAttributeValueUnquoted:
		return t.stepAttributeValueUnquoted()
	case stateAfterAttributeValueQuoted:
		return t.stepAfterAttributeValueQuoted()
	case stateSelfClosingStartTag:
		return t.stepSelfClosingStartTag()
	case stateBogusComment:
		return t.stepBogusComment()
	case stateMarkupDeclarationOpen:
		return t.stepMarkupDeclarationOpen()
	case stateCommentStart:
		return t.stepCommentStart()
	case stateCommentStartDash:
		return t.stepCommentStartDash()
	case stateComment:
		return t.stepComment()
	case stateCommentLessThanSign:
		return t.stepCommentLessThanSign()
	case stateCommentEndDash:
		return t.stepCommentEndDash()
	case stateCommentEnd:
		return t.stepCommentEnd()
	case stateCommentEndBang:
		return t.stepCommentEndBang()
	case stateDoctype:
		return t.stepDoctype()
	case stateBeforeDoctypeName:
		return t.stepBeforeDoctypeName()
	case stateDoctypeName:
		return t.stepDoctypeName()
	case stateAfterDoctypeName:
		return t.stepAfterDoctypeName()
	case stateAfterDoctypePublicKeyword:
		return t.stepAfterDoctypePublicKeyword()
	case stateBeforeDoctypePublicIdentifier:
		return t.stepBeforeDoctypeIdentifier('"', '\'', &t.currentToken.PublicIdentifier, &t.currentToken.PublicIdentifierSet, stateDoctypePublicIdentifierDoubleQuoted, stateDoctypePublicIdentifierSingleQuoted, stateAfterDoctypePublicIdentifier)
	case stateDoctypePublicIdentifierDoubleQuoted:
		return t.stepDoctypeIdentifierQuoted('"', &t.currentToken.PublicIdentifier, stateAfterDoctypePublicIdentifier)
	case stateDoctypePublicIdentifierSingleQuoted:
		return t.stepDoctypeIdentifierQuoted('\'', &t.currentToken.PublicIdentifier, stateAfterDoctypePublicIdentifier)
	case stateAfterDoctypePublicIdentifier:
		return t.stepAfterDoctypePublicIdentifier()
	case stateBetweenDoctypePublicAndSystemIdentifiers:
		return t.stepBetweenDoctypePublicAndSystemIdentifiers()
	case stateAfterDoctypeSystemKeyword:
		return t.stepAfterDoctypeSystemKeyword()
	case stateBeforeDoctypeSystemIdentifier:
		return t.stepBeforeDoctypeIdentifier('"', '\'', &t.currentToken.SystemIdentifier, &t.currentToken.SystemIdentifierSet, stateDoctypeSystemIdentifierDoubleQuoted, stateDoctypeSystemIdentifierSingleQuoted, stateAfterDoctypeSystemIdentifier)
	case stateDoctypeSystemIdentifierDoubleQuoted:
		return t.stepDoctypeIdentifierQuoted('"', &t.currentToken.SystemIdentifier, stateAfterDoctypeSystemIdentifier)
	case stateDoctypeSystemIdentifierSingleQuoted:
		return t.stepDoctypeIdentifierQuoted('\'', &t.currentToken.SystemIdentifier, stateAfterDoctypeSystemIdentifier)
	case stateAfterDoctypeSystemIdentifier:
		return t.stepAfterDoctypeSystemIdentifier()
	case stateBogusDoctype:
		return t.stepBogusDoctype()
	case stateCharacterReference:
		return t.stepCharacterReference()
	case stateNamedCharacterReference:
		return t.stepNamedCharacterReference()
	case stateAmbiguousAmpersand:
		return t.stepAmbiguousAmpersand()
	case stateNumericCharacterReference:
		return t.stepNumericCharacterReference()
	case stateHexadecimalCharacterReferenceStart:
		return t.stepHexadecimalCharacterReferenceStart()
	case stateDecimalCharacterReferenceStart:
		return t.stepDecimalCharacterReferenceStart()
	case stateHexadecimalCharacterReference:
		return t.stepHexadecimalCharacterReference()
	case stateDecimalCharacterReference:
		return t.stepDecimalCharacterReference()
	case stateNumericCharacterReferenceEnd:
		return t.stepNumericCharacterReferenceEnd()
	default:
		return false
	}
}

func (t *Tokenizer) stepData() bool {
	r := t.next()
	switch r {
	case eof:
		return false
	case '&':
		t.returnState = stateData
		t.state = stateCharacterReference
	case '<':
		t.state = stateTagOpen
	default:
		t.emitChar(r)
	}
	return true
}

func (t *Tokenizer) stepPlaintext() bool {
	r := t.next()
	if r == eof {
		return false
	}
	t.emitChar(r)
	return true
}

func (t *Tokenizer) stepRCDATA() bool {
	r := t.next()
	switch r {
	case eof:
		return false
	case '&':
		t.returnState = stateRCDATA
		t.state = stateCharacterReference
	case '<':
		t.state = stateRCDATALessThanSign
	default:
		t.emitChar(r)
	}
	return true
}

func (t *Tokenizer) stepRAWTEXT() bool {
	r := t.next()
	switch r {
	case eof:
		return false
	case '<':
		t.state = stateRAWTEXTLessThanSign
	default:
		t.emitChar(r)
	}
	return true
}

func (t *Tokenizer) stepScriptData() bool {
	r := t.next()
	switch r {
	case eof:
		return false
	case '<':
		t.state = stateScriptDataLessThanSign
	default:
		t.emitChar(r)
	}
	return true
}

func (t *Tokenizer) stepScriptDataEscaped() bool {
	r := t.next()
	switch r {
	case eof:
		return false
	case '-':
		t.emitChar(r)
		t.state = stateScriptDataEscapedDash
	case '<':
		t.state = stateScriptDataEscapedLessThanSign
	default:
		t.emitChar(r)
	}
	return true
}

func (t *Tokenizer) stepScriptDataDoubleEscaped() bool {
	r := t.next()
	switch r {
	case eof:
		return false
	case '-':
		t.emitChar(r)
	case '<':
		t.emitChar(r)
		t.state = stateScriptDataEscapedLessThanSign
	default:
		t.emitChar(r)
	}
	return true
}

func (t *Tokenizer) stepScriptDataEscapeStart() bool {
	if t.peek() == '-' {
		t.next()
		t.emitChar('-')
		t.state = stateScriptDataEscapeStartDash
		return true
	}
	t.state = stateScriptData
	return true
}

func (t *Tokenizer) stepScriptDataEscapeStartDash() bool {
	if t.peek() == '-' {
		t.next()
		t.emitChar('-')
		t.state = stateScriptDataEscapedDashDash
		return true
	}
	t.state = stateScriptData
	return true
}

func (t *Tokenizer) stepScriptDataEscapedDash() bool {
	r := t.next()
	switch r {
	case eof:
		return false
	case '-':
		t.emitChar(r)
		t.state = stateScriptDataEscapedDashDash
	case '<':
		t.state = stateScriptDataEscapedLessThanSign
	default:
		t.emitChar(r)
		t.state = stateScriptDataEscaped
	}
	return true
}

func (t *Tokenizer) stepScriptDataEscapedDashDash() bool {
	r := t.next()
	switch r {
	case eof:
		return false
	case '-':
		t.emitChar(r)
	case '<':
		t.state = stateScriptDataEscapedLessThanSign
	case '>':
		t.emitChar(r)
		t.state = stateScriptData
	default:
		t.emitChar(r)
		t.state = stateScriptDataEscaped
	}
	return true
}

func (t *Tokenizer) stepScriptDataLessThanSign() bool {
	switch t.peek() {
	case '/':
		t.next()
		t.tempBuffer = nil
		t.state = stateScriptDataEndTagOpen
	case '!':
		t.next()
		t.emitChar('<')
		t.emitChar('!')
		t.state = stateScriptDataEscapeStart
	default:
		t.emitChar('<')
		t.state = stateScriptData
	}
	return true
}

func (t *Tokenizer) stepScriptDataEscapedLessThanSign() bool {
	switch t.peek() {
	case '/':
		t.next()
		t.tempBuffer = nil
		t.state = stateScriptDataEscapedEndTagOpen
	default:
		if isASCIIAlpha(t.peek()) {
			t.tempBuffer = nil
			t.emitChar('<')
			t.state = stateScriptDataDoubleEscaped
			return true
		}
		t.emitChar('<')
		t.state = stateScriptDataEscaped
	}
	return true
}

// stepLessThanSignGeneric implements the "<" handling shared by RCDATA
// and RAWTEXT: a following "/" starts an end tag attempt, anything else
// falls back to emitting "<" and returning to contentState.
func (t *Tokenizer) stepLessThanSignGeneric(contentState state, cur *state, endTagOpenState state) bool {
	if t.peek() == '/' {
		t.next()
		t.tempBuffer = nil
		*cur = endTagOpenState
		return true
	}
	t.emitChar('<')
	*cur = contentState
	return true
}

func (t *Tokenizer) stepEndTagOpenGeneric(contentState, endTagNameState state) bool {
	if isASCIIAlpha(t.peek()) {
		t.startNewTag(EndTagToken)
		t.state = endTagNameState
		return true
	}
	t.emitChar('<')
	t.emitChar('/')
	t.state = contentState
	return true
}

func (t *Tokenizer) isAppropriateEndTag() bool {
	return t.lastStartTagName != "" && t.currentToken.TagName == t.lastStartTagName
}

func (t *Tokenizer) stepEndTagNameGeneric(contentState state) bool {
	r := t.peek()
	switch {
	case isWhitespace(r) && t.isAppropriateEndTag():
		t.next()
		t.state = stateBeforeAttributeName
		return true
	case r == '/' && t.isAppropriateEndTag():
		t.next()
		t.state = stateSelfClosingStartTag
		return true
	case r == '>' && t.isAppropriateEndTag():
		t.next()
		t.emitCurrentTag()
		t.state = stateData
		return true
	case isASCIIAlpha(r):
		t.next()
		t.tempBuffer = append(t.tempBuffer, r)
		t.appendTagName(toASCIILower(r))
		return true
	default:
		t.emitChar('<')
		t.emitChar('/')
		for _, c := range t.tempBuffer {
			t.emitChar(c)
		}
		t.state = contentState
		return true
	}
}

func (t *Tokenizer) stepTagOpen() bool {
	r := t.peek()
	switch {
	case r == '!':
		t.next()
		t.state = stateMarkupDeclarationOpen
	case r == '/':
		t.next()
		t.state = stateEndTagOpen
	case isASCIIAlpha(r):
		t.startNewTag(StartTagToken)
		t.state = stateTagName
	case r == '?':
		t.errorf("unexpected-question-mark-instead-of-tag-name")
		t.startNewTag(CommentToken)
		t.state = stateBogusComment
	case r == eof:
		t.errorf("eof-before-tag-name")
		t.emitChar('<')
		return false
	default:
		t.errorf("invalid-first-character-of-tag-name")
		t.emitChar('<')
		t.state = stateData
	}
	return true
}

func (t *Tokenizer) stepEndTagOpen() bool {
	r := t.peek()
	switch {
	case isASCIIAlpha(r):
		t.startNewTag(EndTagToken)
		t.state = stateTagName
	case r == '>':
		t.next()
		t.errorf("missing-end-tag-name")
		t.state = stateData
	case r == eof:
		t.errorf("eof-before-tag-name")
		t.emitChar('<')
		t.emitChar('/')
		return false
	default:
		t.errorf("invalid-first-character-of-tag-name")
		t.startNewTag(CommentToken)
		t.state = stateBogusComment
	}
	return true
}

func (t *Tokenizer) stepTagName() bool {
	r := t.next()
	switch {
	case isWhitespace(r):
		t.state = stateBeforeAttributeName
	case r == '/':
		t.state = stateSelfClosingStartTag
	case r == '>':
		t.emitCurrentTag()
		t.state = stateData
	case isASCIIUpper(r):
		t.appendTagName(toASCIILower(r))
	case r == eof:
		t.errorf("eof-in-tag")
		return false
	default:
		t.appendTagName(r)
	}
	return true
}

func (t *Tokenizer) stepBeforeAttributeName() bool {
	r := t.peek()
	switch {
	case isWhitespace(r):
		t.next()
	case r == '/' || r == '>' || r == eof:
		t.state = stateAfterAttributeName
	case r == '=':
		t.next()
		t.errorf("unexpected-equals-sign-before-attribute-name")
		t.startAttribute()
		t.currentAttrName.WriteRune(r)
		t.state = stateAttributeName
	default:
		t.startAttribute()
		t.state = stateAttributeName
	}
	return true
}

func (t *Tokenizer) stepAttributeName() bool {
	r := t.next()
	switch {
	case isWhitespace(r) || r == '/' || r == '>' || r == eof:
		t.reconsume()
		t.state = stateAfterAttributeName
	case r == '=':
		t.state = stateBeforeAttributeValue
	case isASCIIUpper(r):
		t.currentAttrName.WriteRune(toASCIILower(r))
	case r == '"' || r == '\'' || r == '<':
		t.errorf("unexpected-character-in-attribute-name")
		t.currentAttrName.WriteRune(r)
	default:
		t.currentAttrName.WriteRune(r)
	}
	return true
}

func (t *Tokenizer) stepAfterAttributeName() bool {
	r := t.peek()
	switch {
	case isWhitespace(r):
		t.next()
	case r == '/':
		t.next()
		t.state = stateSelfClosingStartTag
	case r == '=':
		t.next()
		t.state = stateBeforeAttributeValue
	case r == '>':
		t.next()
		t.emitCurrentTag()
		t.state = stateData
	case r == eof:
		t.errorf("eof-in-tag")
		return false
	default:
		t.startAttribute()
		t.state = stateAttributeName
	}
	return true
}

func (t *Tokenizer) stepBeforeAttributeValue() bool {
	r := t.peek()
	switch {
	case isWhitespace(r):
		t.next()
	case r == '"':
		t.next()
		t.state = stateAttributeValueDoubleQuoted
	case r == '\'':
		t.next()
		t.state = stateAttributeValueSingleQuoted
	case r == '>':
		t.next()
		t.errorf("missing-attribute-value")
		t.emitCurrentTag()
		t.state = stateData
	default:
		t.state = stateAttributeValueUnquoted
	}
	return true
}

func (t *Tokenizer) stepAttributeValueQuoted(quote rune) bool {
	r := t.next()
	switch r {
	case quote:
		t.state = stateAfterAttributeValueQuoted
	case '&':
		t.returnState = t.state
		t.state = stateCharacterReference
	case eof:
		t.errorf("eof-in-tag")
		return false
	default:
		t.currentAttrVal.WriteRune(r)
	}
	return true
}

func (t *Tokenizer) stepAttributeValueUnquoted() bool {
	r := t.next()
	switch {
	case isWhitespace(r):
		t.state = stateBeforeAttributeName
	case r == '&':
		t.returnState = stateAttributeValueUnquoted
		t.state = stateCharacterReference
	case r == '>':
		t.emitCurrentTag()
		t.state = stateData
	case r == eof:
		t.errorf("eof-in-tag")
		return false
	default:
		t.currentAttrVal.WriteRune(r)
	}
	return true
}

func (t *Tokenizer) stepAfterAttributeValueQuoted() bool {
	r := t.peek()
	switch {
	case isWhitespace(r):
		t.next()
		t.state = stateBeforeAttributeName
	case r == '/':
		t.next()
		t.state = stateSelfClosingStartTag
	case r == '>':
		t.next()
		t.emitCurrentTag()
		t.state = stateData
	case r == eof:
		t.errorf("eof-in-tag")
		return false
	default:
		t.errorf("missing-whitespace-between-attributes")
		t.state = stateBeforeAttributeName
	}
	return true
}

func (t *Tokenizer) stepSelfClosingStartTag() bool {
	r := t.peek()
	switch {
	case r == '>':
		t.next()
		t.currentToken.SelfClosing = true
		t.emitCurrentTag()
		t.state = stateData
	case r == eof:
		t.errorf("eof-in-tag")
		return false
	default:
		t.errorf("unexpected-solidus-in-tag")
		t.state = stateBeforeAttributeName
	}
	return true
}

func (t *Tokenizer) stepBogusComment() bool {
	r := t.next()
	switch r {
	case '>':
		t.emit(Token{Type: CommentToken, CommentData: t.currentToken.CommentData})
		t.state = stateData
	case eof:
		t.emit(Token{Type: CommentToken, CommentData: t.currentToken.CommentData})
		return false
	case 0:
		t.currentToken.CommentData += "�"
	default:
		t.currentToken.CommentData += string(r)
	}
	return true
}

func (t *Tokenizer) stepMarkupDeclarationOpen() bool {
	if t.matchAndConsume("--") {
		t.currentToken = Token{Type: CommentToken}
		t.state = stateCommentStart
		return true
	}
	if t.matchAndConsumeFold("DOCTYPE") {
		t.state = stateDoctype
		return true
	}
	if t.matchAndConsume("[CDATA[") {
		// Outside foreign content, a CDATA section is always bogus.
		t.errorf("cdata-in-html-content")
		t.currentToken = Token{Type: CommentToken, CommentData: "[CDATA["}
		t.state = stateBogusComment
		return true
	}
	t.errorf("incorrectly-opened-comment")
	t.currentToken = Token{Type: CommentToken}
	t.state = stateBogusComment
	return true
}

func (t *Tokenizer) matchAndConsume(s string) bool {
	for i, r := range []rune(s) {
		if t.peekN(i) != r {
			return false
		}
	}
	for range []rune(s) {
		t.next()
	}
	return true
}

func (t *Tokenizer) matchAndConsumeFold(s string) bool {
	for i, r := range []rune(s) {
		got := t.peekN(i)
		if toASCIILower(got) != toASCIILower(r) {
			return false
		}
	}
	for range []rune(s) {
		t.next()
	}
	return true
}

func (t *Tokenizer) stepCommentStart() bool {
	switch t.peek() {
	case '-':
		t.next()
		t.state = stateCommentStartDash
	case '>':
		t.next()
		t.errorf("abrupt-closing-of-empty-comment")
		t.emit(Token{Type: CommentToken, CommentData: t.currentToken.CommentData})
		t.state = stateData
	default:
		t.state = stateComment
	}
	return true
}

func (t *Tokenizer) stepCommentStartDash() bool {
	switch t.peek() {
	case '-':
		t.next()
		t.state = stateCommentEnd
	case '>':
		t.next()
		t.errorf("abrupt-closing-of-empty-comment")
		t.emit(Token{Type: CommentToken, CommentData: t.currentToken.CommentData})
		t.state = stateData
	case eof:
		t.errorf("eof-in-comment")
		t.emit(Token{Type: CommentToken, CommentData: t.currentToken.CommentData})
		return false
	default:
		t.currentToken.CommentData += "-"
		t.state = stateComment
	}
	return true
}

func (t *Tokenizer) stepComment() bool {
	r := t.next()
	switch r {
	case '<':
		t.currentToken.CommentData += "<"
		t.state = stateCommentLessThanSign
	case '-':
		t.state = stateCommentEndDash
	case eof:
		t.errorf("eof-in-comment")
		t.emit(Token{Type: CommentToken, CommentData: t.currentToken.CommentData})
		return false
	case 0:
		t.currentToken.CommentData += "�"
	default:
		t.currentToken.CommentData += string(r)
	}
	return true
}

func (t *Tokenizer) stepCommentLessThanSign() bool {
	switch t.peek() {
	case '!':
		t.next()
		t.currentToken.CommentData += "!"
		t.state = stateCommentEndDash
	case '<':
		t.next()
		t.currentToken.CommentData += "<"
	default:
		t.state = stateComment
	}
	return true
}

func (t *Tokenizer) stepCommentEndDash() bool {
	switch t.peek() {
	case '-':
		t.next()
		t.state = stateCommentEnd
	case eof:
		t.errorf("eof-in-comment")
		t.emit(Token{Type: CommentToken, CommentData: t.currentToken.CommentData})
		return false
	default:
		t.currentToken.CommentData += "-"
		t.state = stateComment
	}
	return true
}

func (t *Tokenizer) stepCommentEnd() bool {
	switch t.peek() {
	case '>':
		t.next()
		t.emit(Token{Type: CommentToken, CommentData: t.currentToken.CommentData})
		t.state = stateData
	case '!':
		t.next()
		t.state = stateCommentEndBang
	case '-':
		t.next()
		t.currentToken.CommentData += "-"
	case eof:
		t.errorf("eof-in-comment")
		t.emit(Token{Type: CommentToken, CommentData: t.currentToken.CommentData})
		return false
	default:
		t.currentToken.CommentData += "--"
		t.state = stateComment
	}
	return true
}

func (t *Tokenizer) stepCommentEndBang() bool {
	switch t.peek() {
	case '-':
		t.next()
		t.currentToken.CommentData += "--!"
		t.state = stateCommentEndDash
	case '>':
		t.next()
		t.errorf("incorrectly-closed-comment")
		t.emit(Token{Type: CommentToken, CommentData: t.currentToken.CommentData})
		t.state = stateData
	case eof:
		t.errorf("eof-in-comment")
		t.emit(Token{Type: CommentToken, CommentData: t.currentToken.CommentData})
		return false
	default:
		t.currentToken.CommentData += "--!"
		t.state = stateComment
	}
	return true
}

func (t *Tokenizer) stepDoctype() bool {
	r := t.peek()
	switch {
	case isWhitespace(r):
		t.next()
		t.state = stateBeforeDoctypeName
	case r == '>':
		t.state = stateBeforeDoctypeName
	case r == eof:
		t.errorf("eof-in-doctype")
		t.emit(Token{Type: DoctypeToken, ForceQuirks: true})
		return false
	default:
		t.errorf("missing-whitespace-before-doctype-name")
		t.state = stateBeforeDoctypeName
	}
	return true
}

func (t *Tokenizer) stepBeforeDoctypeName() bool {
	r := t.peek()
	switch {
	case isWhitespace(r):
		t.next()
	case isASCIIUpper(r):
		t.next()
		t.currentToken = Token{Type: DoctypeToken, DoctypeName: string(toASCIILower(r)), DoctypeNameSet: true}
		t.state = stateDoctypeName
	case r == '>':
		t.next()
		t.errorf("missing-doctype-name")
		t.emit(Token{Type: DoctypeToken, ForceQuirks: true})
		t.state = stateData
	case r == eof:
		t.errorf("eof-in-doctype")
		t.emit(Token{Type: DoctypeToken, ForceQuirks: true})
		return false
	default:
		t.next()
		t.currentToken = Token{Type: DoctypeToken, DoctypeName: string(r), DoctypeNameSet: true}
		t.state = stateDoctypeName
	}
	return true
}

func (t *Tokenizer) stepDoctypeName() bool {
	r := t.next()
	switch {
	case isWhitespace(r):
		t.state = stateAfterDoctypeName
	case r == '>':
		t.emit(t.currentToken)
		t.state = stateData
	case isASCIIUpper(r):
		t.currentToken.DoctypeName += string(toASCIILower(r))
	case r == eof:
		t.errorf("eof-in-doctype")
		t.currentToken.ForceQuirks = true
		t.emit(t.currentToken)
		return false
	default:
		t.currentToken.DoctypeName += string(r)
	}
	return true
}

func (t *Tokenizer) stepAfterDoctypeName() bool {
	if isWhitespace(t.peek()) {
		t.next()
		return true
	}
	switch {
	case t.peek() == '>':
		t.next()
		t.emit(t.currentToken)
		t.state = stateData
	case t.peek() == eof:
		t.errorf("eof-in-doctype")
		t.currentToken.ForceQuirks = true
		t.emit(t.currentToken)
		return false
	case t.matchAndConsumeFold("PUBLIC"):
		t.state = stateAfterDoctypePublicKeyword
	case t.matchAndConsumeFold("SYSTEM"):
		t.state = stateAfterDoctypeSystemKeyword
	default:
		t.errorf("invalid-character-sequence-after-doctype-name")
		t.currentToken.ForceQuirks = true
		t.state = stateBogusDoctype
	}
	return true
}

func (t *Tokenizer) stepAfterDoctypePublicKeyword() bool {
	r := t.peek()
	switch {
	case isWhitespace(r):
		t.next()
		t.state = stateBeforeDoctypePublicIdentifier
	case r == '"' || r == '\'':
		t.errorf("missing-whitespace-after-doctype-public-keyword")
		t.state = stateBeforeDoctypePublicIdentifier
	case r == '>':
		t.next()
		t.errorf("missing-doctype-public-identifier")
		t.currentToken.ForceQuirks = true
		t.emit(t.currentToken)
		t.state = stateData
	case r == eof:
		t.errorf("eof-in-doctype")
		t.currentToken.ForceQuirks = true
		t.emit(t.currentToken)
		return false
	default:
		t.errorf("missing-quote-before-doctype-public-identifier")
		t.currentToken.ForceQuirks = true
		t.state = stateBogusDoctype
	}
	return true
}

func (t *Tokenizer) stepBeforeDoctypeIdentifier(dq, sq rune, field *string, fieldSet *bool, toDouble, toSingle, emptyTarget state) bool {
	r := t.peek()
	switch {
	case isWhitespace(r):
		t.next()
	case r == dq:
		t.next()
		*field = ""
		*fieldSet = true
		t.state = toDouble
	case r == sq:
		t.next()
		*field = ""
		*fieldSet = true
		t.state = toSingle
	case r == '>':
		t.next()
		t.errorf("missing-doctype-public-identifier")
		t.currentToken.ForceQuirks = true
		t.emit(t.currentToken)
		t.state = stateData
	case r == eof:
		t.errorf("eof-in-doctype")
		t.currentToken.ForceQuirks = true
		t.emit(t.currentToken)
		return false
	default:
		t.errorf("missing-quote-before-doctype-identifier")
		t.currentToken.ForceQuirks = true
		t.state = stateBogusDoctype
	}
	return true
}

func (t *Tokenizer) stepDoctypeIdentifierQuoted(quote rune, field *string, next state) bool {
	r := t.next()
	switch r {
	case quote:
		t.state = next
	case '>':
		t.errorf("abrupt-doctype-public-identifier")
		t.currentToken.ForceQuirks = true
		t.emit(t.currentToken)
		t.state = stateData
	case eof:
		t.errorf("eof-in-doctype")
		t.currentToken.ForceQuirks = true
		t.emit(t.currentToken)
		return false
	case 0:
		*field += "�"
	default:
		*field += string(r)
	}
	return true
}

func (t *Tokenizer) stepAfterDoctypePublicIdentifier() bool {
	r := t.peek()
	switch {
	case isWhitespace(r):
		t.next()
		t.state = stateBetweenDoctypePublicAndSystemIdentifiers
	case r == '>':
		t.next()
		t.emit(t.currentToken)
		t.state = stateData
	case r == '"' || r == '\'':
		t.errorf("missing-whitespace-between-doctype-public-and-system-identifiers")
		t.next()
		t.currentToken.SystemIdentifier = ""
		t.currentToken.SystemIdentifierSet = true
		if r == '"' {
			t.state = stateDoctypeSystemIdentifierDoubleQuoted
		} else {
			t.state = stateDoctypeSystemIdentifierSingleQuoted
		}
	case r == eof:
		t.errorf("eof-in-doctype")
		t.currentToken.ForceQuirks = true
		t.emit(t.currentToken)
		return false
	default:
		t.errorf("missing-quote-before-doctype-system-identifier")
		t.currentToken.ForceQuirks = true
		t.state = stateBogusDoctype
	}
	return true
}

func (t *Tokenizer) stepBetweenDoctypePublicAndSystemIdentifiers() bool {
	r := t.peek()
	switch {
	case isWhitespace(r):
		t.next()
	case r == '>':
		t.next()
		t.emit(t.currentToken)
		t.state = stateData
	case r == '"':
		t.next()
		t.currentToken.SystemIdentifier = ""
		t.currentToken.SystemIdentifierSet = true
		t.state = stateDoctypeSystemIdentifierDoubleQuoted
	case r == '\'':
		t.next()
		t.currentToken.SystemIdentifier = ""
		t.currentToken.SystemIdentifierSet = true
		t.state = stateDoctypeSystemIdentifierSingleQuoted
	case r == eof:
		t.errorf("eof-in-doctype")
		t.currentToken.ForceQuirks = true
		t.emit(t.currentToken)
		return false
	default:
		t.errorf("missing-quote-before-doctype-system-identifier")
		t.currentToken.ForceQuirks = true
		t.state = stateBogusDoctype
	}
	return true
}

func (t *Tokenizer) stepAfterDoctypeSystemKeyword() bool {
	r := t.peek()
	switch {
	case isWhitespace(r):
		t.next()
		t.state = stateBeforeDoctypeSystemIdentifier
	case r == '"' || r == '\'':
		t.errorf("missing-whitespace-after-doctype-system-keyword")
		t.state = stateBeforeDoctypeSystemIdentifier
	case r == '>':
		t.next()
		t.errorf("missing-doctype-system-identifier")
		t.currentToken.ForceQuirks = true
		t.emit(t.currentToken)
		t.state = stateData
	case r == eof:
		t.errorf("eof-in-doctype")
		t.currentToken.ForceQuirks = true
		t.emit(t.currentToken)
		return false
	default:
		t.errorf("missing-quote-before-doctype-system-identifier")
		t.currentToken.ForceQuirks = true
		t.state = stateBogusDoctype
	}
	return true
}

func (t *Tokenizer) stepAfterDoctypeSystemIdentifier() bool {
	r := t.peek()
	switch {
	case isWhitespace(r):
		t.next()
	case r == '>':
		t.next()
		t.emit(t.currentToken)
		t.state = stateData
	case r == eof:
		t.errorf("eof-in-doctype")
		t.currentToken.ForceQuirks = true
		t.emit(t.currentToken)
		return false
	default:
		t.errorf("unexpected-character-after-doctype-system-identifier")
		t.state = stateBogusDoctype
	}
	return true
}

func (t *Tokenizer) stepBogusDoctype() bool {
	r := t.next()
	switch r {
	case '>':
		t.emit(t.currentToken)
		t.state = stateData
	case eof:
		t.emit(t.currentToken)
		return false
	}
	return true
}

// stepCharacterReference implements the entry point for both named and
// numeric character references, used from Data/RCDATA and from quoted
// and unquoted attribute values via returnState.
func (t *Tokenizer) stepCharacterReference() bool {
	t.tempBuffer = []rune{'&'}
	r := t.peek()
	switch {
	case isASCIIAlpha(r):
		t.state = stateNamedCharacterReference
	case r == '#':
		t.next()
		t.tempBuffer = append(t.tempBuffer, '#')
		t.state = stateNumericCharacterReference
	default:
		t.flushTempBufferAsCharactersOrAttribute()
		t.state = t.returnState
	}
	return true
}

func (t *Tokenizer) stepNamedCharacterReference() bool {
	// Gather the longest run of name characters available, then find the
	// longest matching reference name among them (longest-match-first).
	start := t.pos
	for isASCIIAlpha(t.peek()) || isASCIIDigit(t.peek()) {
		t.pos++
	}
	if t.peek() == ';' {
		t.pos++
	}
	candidate := string(t.input[start:t.pos])

	matchLen, value, ok := matchLongestNamedReference(candidate)
	if !ok {
		t.pos = start
		t.state = stateAmbiguousAmpersand
		return true
	}
	consumed := candidate[:matchLen]
	t.pos = start + len([]rune(consumed))
	t.tempBuffer = append(t.tempBuffer, []rune(consumed)...)

	inAttr := t.returnState == stateAttributeValueDoubleQuoted ||
		t.returnState == stateAttributeValueSingleQuoted ||
		t.returnState == stateAttributeValueUnquoted

	// https://html.spec.whatwg.org/multipage/parsing.html#named-character-reference-state
	// If the character reference was consumed as part of an attribute and
	// the last character matched is not ";", and the next input character
	// is "=" or an ASCII alphanumeric, flush the code points consumed as
	// a character reference as-is and switch back to returnState instead
	// of substituting, so `href="&notin=x"` keeps its literal ampersand.
	next := t.peek()
	if inAttr && !strings.HasSuffix(consumed, ";") && (next == '=' || isASCIIAlpha(next) || isASCIIDigit(next)) {
		t.flushTempBufferAsCharactersOrAttribute()
		t.state = t.returnState
		return true
	}

	if !strings.HasSuffix(consumed, ";") {
		t.errorf("missing-semicolon-after-character-reference")
	}

	if inAttr {
		t.currentAttrVal.WriteString(value)
	} else {
		for _, c := range value {
			t.emitChar(c)
		}
	}
	t.state = t.returnState
	return true
}

func (t *Tokenizer) stepAmbiguousAmpersand() bool {
	r := t.peek()
	switch {
	case isASCIIAlpha(r) || isASCIIDigit(r):
		t.next()
		t.appendCharRefOutput(r)
	case r == ';':
		t.next()
		t.errorf("unknown-named-character-reference")
		t.state = t.returnState
	default:
		t.state = t.returnState
	}
	return true
}

func (t *Tokenizer) appendCharRefOutput(r rune) {
	inAttr := t.returnState == stateAttributeValueDoubleQuoted ||
		t.returnState == stateAttributeValueSingleQuoted ||
		t.returnState == stateAttributeValueUnquoted
	if inAttr {
		t.currentAttrVal.WriteRune(r)
	} else {
		t.emitChar(r)
	}
}

func (t *Tokenizer) flushTempBufferAsCharactersOrAttribute() {
	inAttr := t.returnState == stateAttributeValueDoubleQuoted ||
		t.returnState == stateAttributeValueSingleQuoted ||
		t.returnState == stateAttributeValueUnquoted
	for _, c := range t.tempBuffer {
		if inAttr {
			t.currentAttrVal.WriteRune(c)
		} else {
			t.emitChar(c)
		}
	}
}

func (t *Tokenizer) stepNumericCharacterReference() bool {
	t.charRefCode = 0
	switch t.peek() {
	case 'x', 'X':
		t.next()
		t.tempBuffer = append(t.tempBuffer, 'x')
		t.state = stateHexadecimalCharacterReferenceStart
	default:
		t.state = stateDecimalCharacterReferenceStart
	}
	return true
}

func (t *Tokenizer) stepHexadecimalCharacterReferenceStart() bool {
	if isASCIIHexDigit(t.peek()) {
		t.state = stateHexadecimalCharacterReference
		return true
	}
	t.errorf("absence-of-digits-in-numeric-character-reference")
	t.flushTempBufferAsCharactersOrAttribute()
	t.state = t.returnState
	return true
}

func (t *Tokenizer) stepDecimalCharacterReferenceStart() bool {
	if isASCIIDigit(t.peek()) {
		t.state = stateDecimalCharacterReference
		return true
	}
	t.errorf("absence-of-digits-in-numeric-character-reference")
	t.flushTempBufferAsCharactersOrAttribute()
	t.state = t.returnState
	return true
}

func (t *Tokenizer) stepHexadecimalCharacterReference() bool {
	r := t.peek()
	switch {
	case isASCIIHexDigit(r):
		t.next()
		t.charRefCode = t.charRefCode*16 + int64(hexDigitValue(r))
	case r == ';':
		t.next()
		t.state = stateNumericCharacterReferenceEnd
	default:
		t.errorf("missing-semicolon-after-character-reference")
		t.state = stateNumericCharacterReferenceEnd
	}
	return true
}

func (t *Tokenizer) stepDecimalCharacterReference() bool {
	r := t.peek()
	switch {
	case isASCIIDigit(r):
		t.next()
		t.charRefCode = t.charRefCode*10 + int64(r-'0')
	case r == ';':
		t.next()
		t.state = stateNumericCharacterReferenceEnd
	default:
		t.errorf("missing-semicolon-after-character-reference")
		t.state = stateNumericCharacterReferenceEnd
	}
	return true
}

func hexDigitValue(r rune) int64 {
	switch {
	case r >= '0' && r <= '9':
		return int64(r - '0')
	case r >= 'a' && r <= 'f':
		return int64(r-'a') + 10
	default:
		return int64(r-'A') + 10
	}
}

// numericReferenceReplacements covers the Windows-1252 fixups required
// for numeric character references landing in the C1 control range
// (0x80-0x9F), per
// https://html.spec.whatwg.org/multipage/parsing.html#numeric-character-reference-end-state.
var numericReferenceReplacements = map[int64]rune{
	0x80: '€', 0x82: '‚', 0x83: 'ƒ', 0x84: '„',
	0x85: '…', 0x86: '†', 0x87: '‡', 0x88: 'ˆ',
	0x89: '‰', 0x8A: 'Š', 0x8B: '‹', 0x8C: 'Œ',
	0x8E: 'Ž', 0x91: '‘', 0x92: '’', 0x93: '“',
	0x94: '”', 0x95: '•', 0x96: '–', 0x97: '—',
	0x98: '˜', 0x99: '™', 0x9A: 'š', 0x9B: '›',
	0x9C: 'œ', 0x9E: 'ž', 0x9F: 'Ÿ',
}

func (t *Tokenizer) stepNumericCharacterReferenceEnd() bool {
	code := t.charRefCode
	switch {
	case code == 0:
		t.errorf("null-character-reference")
		code = 0xFFFD
	case code > 0x10FFFF:
		t.errorf("character-reference-outside-unicode-range")
		code = 0xFFFD
	case code >= 0xD800 && code <= 0xDFFF:
		t.errorf("surrogate-character-reference")
		code = 0xFFFD
	default:
		if repl, ok := numericReferenceReplacements[code]; ok {
			t.errorf("control-character-reference")
			code = int64(repl)
		} else if (code >= 0x01 && code <= 0x08) || code == 0x0B || (code >= 0x0D && code <= 0x1F) || (code >= 0x7F && code <= 0x9F) {
			t.errorf("control-character-reference")
		}
	}
	t.appendCharRefOutput(rune(code))
	t.state = t.returnState
	return true
}
