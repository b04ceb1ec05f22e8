package dom

// doctypeData holds the fields specific to DocumentType nodes.
type doctypeData struct {
	name     string
	publicID string
	systemID string
}

// DocumentType is a Node known to be of DocumentTypeNode type.
type DocumentType Node

// AsNode returns the underlying *Node.
func (d *DocumentType) AsNode() *Node { return (*Node)(d) }

// NodeType always returns DocumentTypeNode.
func (d *DocumentType) NodeType() NodeType { return DocumentTypeNode }

// Name returns the DOCTYPE's name (e.g. "html").
func (d *DocumentType) Name() string { return d.doctype.name }

// PublicID returns the DOCTYPE's public identifier, or "" if absent.
func (d *DocumentType) PublicID() string { return d.doctype.publicID }

// SystemID returns the DOCTYPE's system identifier, or "" if absent.
func (d *DocumentType) SystemID() string { return d.doctype.systemID }
