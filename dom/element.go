package dom

import "strings"

// Attr is an attribute of an element: a name/value pair. Names are
// ASCII-lowercased on append for HTML-namespace elements; this module
// does not model Attr as a tree participant (no owner/parent links)
// since nothing in this package's scope needs attribute nodes to be
// independently addressable.
type Attr struct {
	Name  string
	Value string
}

// elementData holds the fields specific to Element nodes.
type elementData struct {
	localName    string
	namespaceURI string
	tagName      string // NodeName(): uppercased local name for HTML-namespace elements
	attributes   []Attr
}

// Element is a Node known to be of ElementNode type. The conversion from
// *Node is a plain type pun, the same aliasing pattern used by Document,
// Text, Comment, and the other per-type node views in this package.
type Element Node

// AsNode returns the underlying *Node.
func (e *Element) AsNode() *Node { return (*Node)(e) }

// NodeType always returns ElementNode.
func (e *Element) NodeType() NodeType { return ElementNode }

// NodeName returns the element's tag name (uppercased for HTML-namespace
// elements, as produced by Document.CreateElement).
func (e *Element) NodeName() string { return e.nodeName }

// TagName returns the same value as NodeName.
func (e *Element) TagName() string { return e.element.tagName }

// LocalName returns the element's local name, always lowercase for
// elements created by the HTML tokenizer/tree constructor.
func (e *Element) LocalName() string { return e.element.localName }

// NamespaceURI returns the element's namespace.
func (e *Element) NamespaceURI() string { return e.element.namespaceURI }

// ParentNode returns the element's parent node.
func (e *Element) ParentNode() *Node { return e.AsNode().ParentNode() }

// ChildNodes returns the element's children.
func (e *Element) ChildNodes() []*Node { return e.AsNode().ChildNodes() }

func (e *Element) isHTMLElement() bool {
	return e.element.namespaceURI == HTMLNamespace || e.element.namespaceURI == ""
}

// attributeName folds name to the stored casing: lowercase for
// HTML-namespace elements, verbatim otherwise (foreign content such as
// SVG/MathML preserves attribute case).
func (e *Element) attributeName(name string) string {
	if e.isHTMLElement() {
		return strings.ToLower(name)
	}
	return name
}

// GetAttribute returns the named attribute's value, or "" if absent.
func (e *Element) GetAttribute(name string) string {
	name = e.attributeName(name)
	for _, a := range e.element.attributes {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttribute reports whether the named attribute is present.
func (e *Element) HasAttribute(name string) bool {
	name = e.attributeName(name)
	for _, a := range e.element.attributes {
		if a.Name == name {
			return true
		}
	}
	return false
}

// SetAttribute sets (or replaces) the named attribute's value. The name
// is case-folded to lower case on append for HTML-namespace elements; an
// existing attribute keeps its position.
func (e *Element) SetAttribute(name, value string) {
	name = e.attributeName(name)
	for i, a := range e.element.attributes {
		if a.Name == name {
			e.element.attributes[i].Value = value
			return
		}
	}
	e.element.attributes = append(e.element.attributes, Attr{Name: name, Value: value})
}

// RemoveAttribute removes the named attribute, if present.
func (e *Element) RemoveAttribute(name string) {
	name = e.attributeName(name)
	for i, a := range e.element.attributes {
		if a.Name == name {
			e.element.attributes = append(e.element.attributes[:i], e.element.attributes[i+1:]...)
			return
		}
	}
}

// Attributes returns the element's attributes in insertion order. Callers
// must not mutate the returned slice.
func (e *Element) Attributes() []Attr { return e.element.attributes }

// TextContent returns the concatenated character data of this subtree.
func (e *Element) TextContent() string { return e.AsNode().TextContent() }
