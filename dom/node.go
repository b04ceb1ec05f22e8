// Package dom provides the DOM node arena consumed by the HTML tree
// constructor and, for <style> contents, the CSS parser.
//
// https://dom.spec.whatwg.org/
package dom

import "strings"

// HTMLNamespace is the namespace URI for HTML elements.
const HTMLNamespace = "http://www.w3.org/1999/xhtml"

// Node is the base type for every node in a document tree. Which of the
// type-specific data fields is populated is determined by nodeType; the
// zero value of the others is simply unused.
//
// children is the single source of truth for tree shape: it is the
// ordered, strongly-owned list of a node's children. firstChild/lastChild
// and each child's prevSibling/nextSibling/parent are observational
// caches that the Arena's mutation primitives recompute after every
// structural change; nothing else is allowed to touch them directly.
type Node struct {
	nodeType NodeType
	nodeName string
	value    string // Text/Comment/CDataSection/ProcessingInstruction data

	ownerDoc *Document
	parent   *Node
	children []*Node

	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	element  *elementData
	doctype  *doctypeData
	document *documentData
	pi       *piData

	arena *Arena // non-nil only for Document nodes
}

// NodeType reports which variant this node is.
func (n *Node) NodeType() NodeType { return n.nodeType }

// NodeName returns the node's name: the uppercased tag name for elements,
// "#text", "#comment", "#document", "#document-fragment", "#cdata-section",
// or the DOCTYPE name for document types.
func (n *Node) NodeName() string { return n.nodeName }

// NodeValue returns the character data for Text/Comment/CDataSection/
// ProcessingInstruction nodes, and the empty string otherwise.
func (n *Node) NodeValue() string { return n.value }

// SetNodeValue replaces the character data of Text/Comment/CDataSection/
// ProcessingInstruction nodes. It is a no-op for every other node type.
func (n *Node) SetNodeValue(v string) {
	switch n.nodeType {
	case TextNode, CommentNode, CDATASectionNode, ProcessingInstructionNode:
		n.value = v
	}
}

// OwnerDocument returns the Document this node belongs to, or nil for
// Document nodes themselves.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// ParentNode returns this node's parent, or nil for roots.
func (n *Node) ParentNode() *Node { return n.parent }

// ParentElement returns the parent if it is an Element, else nil.
func (n *Node) ParentElement() *Element {
	if n.parent != nil && n.parent.nodeType == ElementNode {
		return (*Element)(n.parent)
	}
	return nil
}

// ChildNodes returns the ordered, live slice of children. Callers must not
// mutate the returned slice; use the Arena's structural primitives instead.
func (n *Node) ChildNodes() []*Node { return n.children }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node { return n.lastChild }

// PreviousSibling returns the preceding sibling, or nil.
func (n *Node) PreviousSibling() *Node { return n.prevSibling }

// NextSibling returns the following sibling, or nil.
func (n *Node) NextSibling() *Node { return n.nextSibling }

// HasChildNodes reports whether this node has at least one child.
func (n *Node) HasChildNodes() bool { return len(n.children) > 0 }

// Contains reports whether other is this node or a descendant of it.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// isInclusiveAncestor reports whether candidate is n or an ancestor of n.
// Used by the Arena to reject cycle-forming inserts.
func (n *Node) isInclusiveAncestor(candidate *Node) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == candidate {
			return true
		}
	}
	return false
}

// GetRootNode walks parent pointers to the top of the tree containing n.
func (n *Node) GetRootNode() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// TextContent concatenates the character data of this subtree, per the DOM
// textContent algorithm (Document and DocumentType nodes yield "").
func (n *Node) TextContent() string {
	switch n.nodeType {
	case DocumentNode, DocumentTypeNode:
		return ""
	case TextNode, CommentNode, ProcessingInstructionNode, CDATASectionNode:
		return n.value
	default:
		var sb strings.Builder
		n.collectTextContent(&sb)
		return sb.String()
	}
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	for _, child := range n.children {
		switch child.nodeType {
		case TextNode, CDATASectionNode:
			sb.WriteString(child.value)
		case ElementNode, DocumentFragmentNode:
			child.collectTextContent(sb)
		}
	}
}

// CloneNode copies this node. If deep is true, descendants are cloned too.
// The clone starts out detached (no parent) and keeps the same owner
// document; Arena.Adopt can retarget it afterward.
func (n *Node) CloneNode(deep bool) *Node {
	clone := n.shallowClone()
	if deep {
		for _, child := range n.children {
			childClone := child.CloneNode(true)
			childClone.parent = clone
			clone.children = append(clone.children, childClone)
		}
		recomputeSiblingLinks(clone)
	}
	return clone
}

func (n *Node) shallowClone() *Node {
	clone := &Node{
		nodeType: n.nodeType,
		nodeName: n.nodeName,
		value:    n.value,
		ownerDoc: n.ownerDoc,
	}
	switch n.nodeType {
	case ElementNode:
		src := n.element
		attrs := make([]Attr, len(src.attributes))
		copy(attrs, src.attributes)
		clone.element = &elementData{
			localName:    src.localName,
			namespaceURI: src.namespaceURI,
			tagName:      src.tagName,
			attributes:   attrs,
		}
	case DocumentTypeNode:
		d := *n.doctype
		clone.doctype = &d
	case ProcessingInstructionNode:
		p := *n.pi
		clone.pi = &p
	case DocumentNode:
		clone.ownerDoc = (*Document)(clone)
		if n.document != nil {
			doc := *n.document
			clone.document = &doc
		}
	}
	return clone
}

// recomputeSiblingLinks rebuilds firstChild/lastChild and every child's
// parent/prevSibling/nextSibling from parent.children, the single source
// of truth for tree shape.
func recomputeSiblingLinks(parent *Node) {
	parent.firstChild = nil
	parent.lastChild = nil
	var prev *Node
	for _, child := range parent.children {
		child.parent = parent
		child.prevSibling = prev
		if prev != nil {
			prev.nextSibling = child
		} else {
			parent.firstChild = child
		}
		prev = child
	}
	if prev != nil {
		prev.nextSibling = nil
	}
	parent.lastChild = prev
}
