package dom

// Comment is a Node known to be of CommentNode type.
type Comment Node

// AsNode returns the underlying *Node.
func (c *Comment) AsNode() *Node { return (*Node)(c) }

// NodeType always returns CommentNode.
func (c *Comment) NodeType() NodeType { return CommentNode }

// Data returns the comment's character data.
func (c *Comment) Data() string { return c.value }

// SetData replaces the comment's character data.
func (c *Comment) SetData(v string) { c.value = v }
