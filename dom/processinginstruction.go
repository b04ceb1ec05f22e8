package dom

// piData holds the fields specific to ProcessingInstruction nodes.
type piData struct {
	target string
}

// ProcessingInstruction is a Node known to be of ProcessingInstructionNode
// type.
type ProcessingInstruction Node

// AsNode returns the underlying *Node.
func (p *ProcessingInstruction) AsNode() *Node { return (*Node)(p) }

// NodeType always returns ProcessingInstructionNode.
func (p *ProcessingInstruction) NodeType() NodeType { return ProcessingInstructionNode }

// Target returns the processing instruction's target.
func (p *ProcessingInstruction) Target() string { return p.pi.target }

// Data returns the processing instruction's character data.
func (p *ProcessingInstruction) Data() string { return p.value }

// SetData replaces the processing instruction's character data.
func (p *ProcessingInstruction) SetData(v string) { p.value = v }
