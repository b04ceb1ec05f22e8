package dom

// DocumentFragment is a Node known to be of DocumentFragmentNode type.
// Fragment-parsing context is out of scope for this module, so
// DocumentFragment exists only as a Node variant and as the backing node
// for <template> content in a future extension; nothing in this module
// currently allocates one outside of tests.
type DocumentFragment Node

// AsNode returns the underlying *Node.
func (f *DocumentFragment) AsNode() *Node { return (*Node)(f) }

// NodeType always returns DocumentFragmentNode.
func (f *DocumentFragment) NodeType() NodeType { return DocumentFragmentNode }

// ChildNodes returns the fragment's children.
func (f *DocumentFragment) ChildNodes() []*Node { return f.AsNode().ChildNodes() }
