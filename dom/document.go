package dom

import "strings"

// documentData holds the fields specific to Document nodes.
type documentData struct {
	contentType     string
	documentElement *Node
}

// Document is a Node known to be of DocumentNode type, and the entry
// point for allocating every other node in its tree via its Arena.
type Document Node

// NewDocument creates an empty Document backed by a fresh Arena. Every
// node that ends up in this document's tree is allocated through
// doc.Arena or one of the CreateXxx convenience constructors below,
// which call it internally.
func NewDocument() *Document {
	n := &Node{nodeType: DocumentNode, nodeName: "#document"}
	n.document = &documentData{contentType: "text/html"}
	n.arena = NewArena()
	doc := (*Document)(n)
	n.ownerDoc = doc
	doc.Arena().Allocate(n)
	return doc
}

// Arena returns the Arena that owns this document's nodes.
func (d *Document) Arena() *Arena { return d.arena }

// AsNode returns the underlying *Node.
func (d *Document) AsNode() *Node { return (*Node)(d) }

// NodeType always returns DocumentNode.
func (d *Document) NodeType() NodeType { return DocumentNode }

// ChildNodes returns the document's children (DocumentType, the document
// element, and any top-level comments).
func (d *Document) ChildNodes() []*Node { return d.AsNode().ChildNodes() }

// DocumentElement returns the root element (usually <html>), or nil.
func (d *Document) DocumentElement() *Element {
	if d.document.documentElement == nil {
		return nil
	}
	return (*Element)(d.document.documentElement)
}

// ContentType returns the document's MIME type.
func (d *Document) ContentType() string { return d.document.contentType }

func newElementData(localName, namespaceURI string) *elementData {
	tagName := localName
	if namespaceURI == HTMLNamespace || namespaceURI == "" {
		tagName = strings.ToUpper(localName)
	}
	return &elementData{localName: localName, namespaceURI: namespaceURI, tagName: tagName}
}

// CreateElement creates an Element in the HTML namespace, local-named
// localName. Tag names are lowercased on creation by the tree
// constructor before this is called; CreateElement itself preserves
// whatever casing it is given for NodeName/LocalName/TagName consistency.
func (d *Document) CreateElement(localName string) *Element {
	return d.CreateElementNS(HTMLNamespace, localName)
}

// CreateElementNS creates an Element in the given namespace.
func (d *Document) CreateElementNS(namespaceURI, localName string) *Element {
	n := &Node{nodeType: ElementNode, ownerDoc: d}
	n.element = newElementData(localName, namespaceURI)
	n.nodeName = n.element.tagName
	d.Arena().Allocate(n)
	return (*Element)(n)
}

// CreateTextNode creates a detached Text node holding data.
func (d *Document) CreateTextNode(data string) *Text {
	n := &Node{nodeType: TextNode, nodeName: "#text", ownerDoc: d, value: data}
	d.Arena().Allocate(n)
	return (*Text)(n)
}

// CreateComment creates a detached Comment node holding data.
func (d *Document) CreateComment(data string) *Comment {
	n := &Node{nodeType: CommentNode, nodeName: "#comment", ownerDoc: d, value: data}
	d.Arena().Allocate(n)
	return (*Comment)(n)
}

// CreateCDATASection creates a detached CDATASection node holding data.
func (d *Document) CreateCDATASection(data string) *CDataSection {
	n := &Node{nodeType: CDATASectionNode, nodeName: "#cdata-section", ownerDoc: d, value: data}
	d.Arena().Allocate(n)
	return (*CDataSection)(n)
}

// CreateProcessingInstruction creates a detached ProcessingInstruction
// node with the given target and data.
func (d *Document) CreateProcessingInstruction(target, data string) *ProcessingInstruction {
	n := &Node{nodeType: ProcessingInstructionNode, nodeName: target, ownerDoc: d, value: data}
	n.pi = &piData{target: target}
	d.Arena().Allocate(n)
	return (*ProcessingInstruction)(n)
}

// CreateDocumentType creates a detached DocumentType node.
func (d *Document) CreateDocumentType(name, publicID, systemID string) *DocumentType {
	n := &Node{nodeType: DocumentTypeNode, nodeName: name, ownerDoc: d}
	n.doctype = &doctypeData{name: name, publicID: publicID, systemID: systemID}
	d.Arena().Allocate(n)
	return (*DocumentType)(n)
}

// CreateDocumentFragment creates a detached, empty DocumentFragment.
func (d *Document) CreateDocumentFragment() *DocumentFragment {
	n := &Node{nodeType: DocumentFragmentNode, nodeName: "#document-fragment", ownerDoc: d}
	d.Arena().Allocate(n)
	return (*DocumentFragment)(n)
}

// SetDocumentElement records n as the document element once it has been
// appended to the document; called by the HTML tree constructor right
// after inserting the root <html> element.
func (d *Document) SetDocumentElement(n *Node) {
	d.document.documentElement = n
}
