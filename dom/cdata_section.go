package dom

// CDataSection is a Node known to be of CDATASectionNode type. Nothing in
// this module's HTML parsing path produces CDATA sections (the tokenizer
// treats the CDATA markup declaration as a bogus comment outside foreign
// content), but the type is modeled for DOM-shape completeness.
type CDataSection Node

// AsNode returns the underlying *Node.
func (c *CDataSection) AsNode() *Node { return (*Node)(c) }

// NodeType always returns CDATASectionNode.
func (c *CDataSection) NodeType() NodeType { return CDATASectionNode }

// Data returns the section's character data.
func (c *CDataSection) Data() string { return c.value }

// SetData replaces the section's character data.
func (c *CDataSection) SetData(v string) { c.value = v }
