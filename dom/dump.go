package dom

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented tree representation of n and its descendants to
// w. It is a debug aid for the command-line driver, not a serializer: it
// carries no attribute styling, whitespace normalization, or layout
// geometry.
func Dump(w io.Writer, n *Node) {
	dump(w, n, 0)
}

func dump(w io.Writer, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.nodeType {
	case DocumentNode:
		fmt.Fprintf(w, "%s#document\n", indent)
	case DocumentTypeNode:
		fmt.Fprintf(w, "%s<!DOCTYPE %s", indent, n.doctype.name)
		if n.doctype.publicID != "" || n.doctype.systemID != "" {
			fmt.Fprintf(w, " %q %q", n.doctype.publicID, n.doctype.systemID)
		}
		fmt.Fprint(w, ">\n")
	case ElementNode:
		fmt.Fprintf(w, "%s<%s", indent, strings.ToLower(n.element.localName))
		for _, a := range n.element.attributes {
			fmt.Fprintf(w, " %s=%q", a.Name, a.Value)
		}
		fmt.Fprint(w, ">\n")
	case TextNode:
		fmt.Fprintf(w, "%s%q\n", indent, n.value)
	case CommentNode:
		fmt.Fprintf(w, "%s<!-- %s -->\n", indent, n.value)
	case CDATASectionNode:
		fmt.Fprintf(w, "%s<![CDATA[%s]]>\n", indent, n.value)
	case ProcessingInstructionNode:
		fmt.Fprintf(w, "%s<?%s %s?>\n", indent, n.pi.target, n.value)
	case DocumentFragmentNode:
		fmt.Fprintf(w, "%s#document-fragment\n", indent)
	}
	for _, child := range n.children {
		dump(w, child, depth+1)
	}
}
