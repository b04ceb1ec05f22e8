// Package html implements an HTML tokenizer and tree constructor
// following the WHATWG HTML parsing algorithm.
//
// https://html.spec.whatwg.org/multipage/parsing.html
package html

import "golang.org/x/net/html/atom"

// TokenType identifies which of the six token kinds a Token is.
type TokenType int

const (
	DoctypeToken TokenType = iota
	StartTagToken
	EndTagToken
	CommentToken
	CharacterToken
	EOFToken
)

func (t TokenType) String() string {
	switch t {
	case DoctypeToken:
		return "DOCTYPE"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case CommentToken:
		return "Comment"
	case CharacterToken:
		return "Character"
	case EOFToken:
		return "EOF"
	default:
		return "Unknown"
	}
}

// Attribute is a single name/value pair collected on a start or end tag.
type Attribute struct {
	Name  string
	Value string
}

// Token is a tagged union over the six HTML token kinds. Which fields are
// meaningful depends on Type; Go has no sum types, so every kind's fields
// live on one struct and callers switch on Type before reading them.
type Token struct {
	Type TokenType

	// Doctype
	DoctypeName          string
	DoctypeNameSet       bool
	PublicIdentifier     string
	PublicIdentifierSet  bool
	SystemIdentifier     string
	SystemIdentifierSet  bool
	ForceQuirks          bool

	// StartTag / EndTag
	TagName                string
	SelfClosing            bool
	SelfClosingAcknowledged bool
	Attributes              []Attribute

	// Comment
	CommentData string

	// Character
	Char rune
}

// TagAtom looks up the well-known atom for a start/end tag's name, or the
// zero atom if the tag name isn't one of the predefined HTML elements.
func (t *Token) TagAtom() atom.Atom {
	return atom.Lookup([]byte(t.TagName))
}

// AttributeValue returns the value of the named attribute on a start tag,
// and whether it was present.
func (t *Token) AttributeValue(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
