package html

import "github.com/basalthq/webcore/dom"

// formattingMarker is a sentinel entry in the list of active formatting
// elements marking a scope boundary (inserted when opening <template>,
// <applet>/<marquee>/<object>, table cells, and captions), per
// https://html.spec.whatwg.org/multipage/parsing.html#list-of-active-formatting-elements.
type formattingMarker struct{}

// formattingEntry is one slot in the list of active formatting elements:
// either a marker, or an element together with the start tag token that
// created it (needed to recreate an equivalent element during
// reconstruction).
type formattingEntry struct {
	marker  bool
	element *dom.Node
	token   Token
}

// ActiveFormattingElements is the tree constructor's list of active
// formatting elements.
type ActiveFormattingElements struct {
	entries []formattingEntry
}

// PushMarker appends a scope marker.
func (a *ActiveFormattingElements) PushMarker() {
	a.entries = append(a.entries, formattingEntry{marker: true})
}

// ClearToLastMarker implements "clear the list of active formatting
// elements up to the last marker".
func (a *ActiveFormattingElements) ClearToLastMarker() {
	for len(a.entries) > 0 {
		last := a.entries[len(a.entries)-1]
		a.entries = a.entries[:len(a.entries)-1]
		if last.marker {
			return
		}
	}
}

// Push appends element, created by tok, to the list, first applying the
// Noah's Ark clause: if there are already three elements with the same
// tag name and attribute set since the last marker, the
// earliest of them is removed.
func (a *ActiveFormattingElements) Push(element *dom.Node, tok Token) {
	a.applyNoahsArk(element, tok)
	a.entries = append(a.entries, formattingEntry{element: element, token: tok})
}

func (a *ActiveFormattingElements) applyNoahsArk(element *dom.Node, tok Token) {
	matchCount := 0
	matchIdx := -1
	for i := len(a.entries) - 1; i >= 0; i-- {
		e := a.entries[i]
		if e.marker {
			break
		}
		if formattingElementsEquivalent(e, formattingEntry{element: element, token: tok}) {
			matchCount++
			matchIdx = i
			if matchCount == 3 {
				a.entries = append(a.entries[:matchIdx], a.entries[matchIdx+1:]...)
				return
			}
		}
	}
}

func formattingElementsEquivalent(a, b formattingEntry) bool {
	if a.token.TagName != b.token.TagName {
		return false
	}
	if len(a.token.Attributes) != len(b.token.Attributes) {
		return false
	}
	for _, attr := range a.token.Attributes {
		val, ok := b.token.AttributeValue(attr.Name)
		if !ok || val != attr.Value {
			return false
		}
	}
	return true
}

// Contains reports whether element is in the list (not counting
// markers).
func (a *ActiveFormattingElements) Contains(element *dom.Node) bool {
	for _, e := range a.entries {
		if !e.marker && e.element == element {
			return true
		}
	}
	return false
}

// Remove deletes element's entry from the list, if present.
func (a *ActiveFormattingElements) Remove(element *dom.Node) {
	for i, e := range a.entries {
		if !e.marker && e.element == element {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			return
		}
	}
}

// InsertAfter inserts a new entry for element/tok immediately after the
// entry for ref, used by the adoption agency algorithm to relocate a
// bookmark.
func (a *ActiveFormattingElements) InsertAfter(ref, element *dom.Node, tok Token) {
	for i, e := range a.entries {
		if !e.marker && e.element == ref {
			entry := formattingEntry{element: element, token: tok}
			a.entries = append(a.entries, formattingEntry{})
			copy(a.entries[i+2:], a.entries[i+1:])
			a.entries[i+1] = entry
			return
		}
	}
	a.entries = append(a.entries, formattingEntry{element: element, token: tok})
}

// Len reports the number of entries, including markers.
func (a *ActiveFormattingElements) Len() int { return len(a.entries) }

// IndexOf returns the index of element's entry, or -1.
func (a *ActiveFormattingElements) IndexOf(element *dom.Node) int {
	for i, e := range a.entries {
		if !e.marker && e.element == element {
			return i
		}
	}
	return -1
}

// ElementAt returns the element at index i (nil for a marker slot;
// callers check via IsMarkerAt first).
func (a *ActiveFormattingElements) ElementAt(i int) *dom.Node { return a.entries[i].element }

// TokenAt returns the token that created the element at index i.
func (a *ActiveFormattingElements) TokenAt(i int) Token { return a.entries[i].token }

// IsMarkerAt reports whether index i holds a scope marker.
func (a *ActiveFormattingElements) IsMarkerAt(i int) bool { return a.entries[i].marker }

// SetElementAt replaces the element (keeping the same token) at index i,
// used by the adoption agency algorithm's "replace the entry... in the
// list" step.
func (a *ActiveFormattingElements) SetElementAt(i int, element *dom.Node) {
	a.entries[i].element = element
}
