package html

import (
	"strings"

	"github.com/basalthq/webcore/dom"
	"golang.org/x/net/html/atom"
)

// StackOfOpenElements is the tree constructor's stack of open elements:
// https://html.spec.whatwg.org/multipage/parsing.html#the-stack-of-open-elements
type StackOfOpenElements struct {
	elements []*dom.Node
}

// Push adds n to the top of the stack.
func (s *StackOfOpenElements) Push(n *dom.Node) {
	s.elements = append(s.elements, n)
}

// Pop removes and returns the top of the stack.
func (s *StackOfOpenElements) Pop() *dom.Node {
	if len(s.elements) == 0 {
		return nil
	}
	top := s.elements[len(s.elements)-1]
	s.elements = s.elements[:len(s.elements)-1]
	return top
}

// Current returns the current node: the top of the stack, or nil if
// empty.
func (s *StackOfOpenElements) Current() *dom.Node {
	if len(s.elements) == 0 {
		return nil
	}
	return s.elements[len(s.elements)-1]
}

// Len reports how many elements are on the stack.
func (s *StackOfOpenElements) Len() int { return len(s.elements) }

// At returns the element at index i, counting from the bottom (0 is the
// root, usually <html>).
func (s *StackOfOpenElements) At(i int) *dom.Node { return s.elements[i] }

// Contains reports whether n is anywhere on the stack.
func (s *StackOfOpenElements) Contains(n *dom.Node) bool {
	for _, e := range s.elements {
		if e == n {
			return true
		}
	}
	return false
}

// ContainsTag reports whether any element on the stack has the given
// (HTML-namespace, lowercase) local tag name.
func (s *StackOfOpenElements) ContainsTag(tagName string) bool {
	for _, e := range s.elements {
		if tagNameOf(e) == tagName {
			return true
		}
	}
	return false
}

// indexOf returns the index of n on the stack, or -1.
func (s *StackOfOpenElements) indexOf(n *dom.Node) int {
	for i, e := range s.elements {
		if e == n {
			return i
		}
	}
	return -1
}

// Remove deletes the first occurrence of n from the stack, wherever it
// is (used by the adoption agency algorithm).
func (s *StackOfOpenElements) Remove(n *dom.Node) {
	for i, e := range s.elements {
		if e == n {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			return
		}
	}
}

// InsertAfter inserts n on the stack immediately above ref.
func (s *StackOfOpenElements) InsertAfter(ref, n *dom.Node) {
	for i, e := range s.elements {
		if e == ref {
			s.elements = append(s.elements, nil)
			copy(s.elements[i+2:], s.elements[i+1:])
			s.elements[i+1] = n
			return
		}
	}
	s.Push(n)
}

// PopUntil pops elements off the stack (inclusive) until one whose local
// name is in tagNames has been popped.
func (s *StackOfOpenElements) PopUntil(tagNames ...string) {
	for len(s.elements) > 0 {
		popped := s.Pop()
		name := tagNameOf(popped)
		for _, tn := range tagNames {
			if name == tn {
				return
			}
		}
	}
}

// PopUntilElement pops elements off the stack (inclusive) until target
// itself has been popped.
func (s *StackOfOpenElements) PopUntilElement(target *dom.Node) {
	for len(s.elements) > 0 {
		if s.Pop() == target {
			return
		}
	}
}

func tagNameOf(n *dom.Node) string {
	if n == nil || n.NodeType() != dom.ElementNode {
		return ""
	}
	return (*dom.Element)(n).LocalName()
}

// defaultScopeTags is the set fixed by "the stack of open elements"'s
// generic "has an element in scope" algorithm's list of scope-ending
// element types, expressed by HTML local name for the HTML namespace
// (MathML/SVG scope boundaries do not apply since this module never
// constructs foreign-content subtrees).
var defaultScopeTags = map[string]bool{
	"applet": true, "caption": true, "html": true, "table": true,
	"td": true, "th": true, "marquee": true, "object": true,
	"template": true,
}

// hasElementInScopeWithList implements the generic "has an element in
// the specific scope" algorithm for an arbitrary list of target tag
// names, given extraScopeTags that additionally terminate the scope walk
// (e.g. <ul>/<ol> for list-item scope).
func (s *StackOfOpenElements) hasElementInScopeWithList(targets map[string]bool, extraScopeTags map[string]bool) bool {
	for i := len(s.elements) - 1; i >= 0; i-- {
		name := tagNameOf(s.elements[i])
		if targets[name] {
			return true
		}
		if defaultScopeTags[name] || extraScopeTags[name] {
			return false
		}
	}
	return false
}

// HasElementInScope implements "has an element in scope" for a single
// tag name.
func (s *StackOfOpenElements) HasElementInScope(tagName string) bool {
	return s.hasElementInScopeWithList(map[string]bool{tagName: true}, nil)
}

// HasAnyElementInScope implements "has an element in scope" for any of
// several tag names at once.
func (s *StackOfOpenElements) HasAnyElementInScope(tagNames ...string) bool {
	targets := make(map[string]bool, len(tagNames))
	for _, tn := range tagNames {
		targets[tn] = true
	}
	return s.hasElementInScopeWithList(targets, nil)
}

// HasElementInListItemScope implements "has an element in list item
// scope".
func (s *StackOfOpenElements) HasElementInListItemScope(tagName string) bool {
	return s.hasElementInScopeWithList(map[string]bool{tagName: true}, map[string]bool{"ol": true, "ul": true})
}

// HasElementInButtonScope implements "has an element in button scope".
func (s *StackOfOpenElements) HasElementInButtonScope(tagName string) bool {
	return s.hasElementInScopeWithList(map[string]bool{tagName: true}, map[string]bool{"button": true})
}

// HasElementInTableScope implements "has an element in table scope".
func (s *StackOfOpenElements) HasElementInTableScope(tagName string) bool {
	scopeTags := map[string]bool{"html": true, "table": true, "template": true}
	for i := len(s.elements) - 1; i >= 0; i-- {
		name := tagNameOf(s.elements[i])
		if name == tagName {
			return true
		}
		if scopeTags[name] {
			return false
		}
	}
	return false
}

// HasElementInSelectScope implements "has an element in select scope":
// every element except <optgroup> and <option> terminates the search.
func (s *StackOfOpenElements) HasElementInSelectScope(tagName string) bool {
	for i := len(s.elements) - 1; i >= 0; i-- {
		name := tagNameOf(s.elements[i])
		if name == tagName {
			return true
		}
		if name != "optgroup" && name != "option" {
			return false
		}
	}
	return false
}

// specialAtoms is the "special" category of elements from
// https://html.spec.whatwg.org/multipage/parsing.html#special, less
// search, which is not in the set. It is used by the
// <li>/<dd>/<dt> start-tag walks, the "any other end tag" walk, and the
// adoption agency algorithm's furthest-block search. Keyed by well-known
// atom for fast membership tests; a name without a predefined atom is
// never special.
var specialAtoms = map[atom.Atom]bool{
	atom.Address: true, atom.Applet: true, atom.Area: true, atom.Article: true,
	atom.Aside: true, atom.Base: true, atom.Basefont: true, atom.Bgsound: true,
	atom.Blockquote: true, atom.Body: true, atom.Br: true, atom.Button: true,
	atom.Caption: true, atom.Center: true, atom.Col: true, atom.Colgroup: true,
	atom.Dd: true, atom.Details: true, atom.Dir: true, atom.Div: true,
	atom.Dl: true, atom.Dt: true, atom.Embed: true, atom.Fieldset: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.Form: true,
	atom.Frame: true, atom.Frameset: true, atom.H1: true, atom.H2: true,
	atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Head: true, atom.Header: true, atom.Hgroup: true, atom.Hr: true,
	atom.Html: true, atom.Iframe: true, atom.Img: true, atom.Input: true,
	atom.Keygen: true, atom.Li: true, atom.Link: true, atom.Listing: true, atom.Main: true,
	atom.Marquee: true, atom.Menu: true, atom.Meta: true, atom.Nav: true,
	atom.Noembed: true, atom.Noframes: true, atom.Noscript: true, atom.Object: true,
	atom.Ol: true, atom.P: true, atom.Param: true, atom.Plaintext: true,
	atom.Pre: true, atom.Script: true, atom.Section: true, atom.Select: true,
	atom.Source: true, atom.Style: true, atom.Summary: true, atom.Table: true,
	atom.Tbody: true, atom.Td: true, atom.Template: true, atom.Textarea: true,
	atom.Tfoot: true, atom.Th: true, atom.Thead: true, atom.Title: true,
	atom.Tr: true, atom.Track: true, atom.Ul: true, atom.Wbr: true,
	atom.Xmp: true,
}

// isSpecialTag reports whether the named HTML element is in the special
// category.
func isSpecialTag(tagName string) bool {
	if a := atom.Lookup([]byte(tagName)); a != 0 {
		return specialAtoms[a]
	}
	return false
}

// voidElements is the set of elements the tree constructor never pushes
// a closing requirement for, per
// https://html.spec.whatwg.org/multipage/syntax.html#void-elements.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

func isVoidElement(tagName string) bool {
	return voidElements[strings.ToLower(tagName)]
}

// ClearBackToTableContext implements "clear the stack back to a table
// context": pop until the current node is table, template, or html.
func (s *StackOfOpenElements) ClearBackToTableContext() {
	s.clearBackTo(map[string]bool{"table": true, "template": true, "html": true})
}

// ClearBackToTableBodyContext implements "clear the stack back to a
// table body context".
func (s *StackOfOpenElements) ClearBackToTableBodyContext() {
	s.clearBackTo(map[string]bool{
		"tbody": true, "tfoot": true, "thead": true,
		"template": true, "html": true,
	})
}

// ClearBackToTableRowContext implements "clear the stack back to a
// table row context".
func (s *StackOfOpenElements) ClearBackToTableRowContext() {
	s.clearBackTo(map[string]bool{"tr": true, "template": true, "html": true})
}

func (s *StackOfOpenElements) clearBackTo(stopTags map[string]bool) {
	for len(s.elements) > 0 && !stopTags[tagNameOf(s.Current())] {
		s.Pop()
	}
}
