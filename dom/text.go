package dom

// Text is a Node known to be of TextNode type.
type Text Node

// AsNode returns the underlying *Node.
func (t *Text) AsNode() *Node { return (*Node)(t) }

// NodeType always returns TextNode.
func (t *Text) NodeType() NodeType { return TextNode }

// Data returns the text's character data.
func (t *Text) Data() string { return t.value }

// SetData replaces the text's character data.
func (t *Text) SetData(v string) { t.value = v }

// AppendData appends v to the text's character data. The HTML tree
// constructor uses this to coalesce adjacent character tokens into a
// single Text node instead of allocating one Text node per token.
func (t *Text) AppendData(v string) { t.value += v }
