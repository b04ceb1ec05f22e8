package css

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented, human-readable rendering of a stylesheet to w.
// It exists for the command-line driver; it is not a CSS serializer.
func Dump(w io.Writer, sheet *StyleSheet) {
	for _, rule := range sheet.Rules {
		dumpRule(w, rule, 0)
	}
}

func dumpRule(w io.Writer, rule interface{}, depth int) {
	indent := strings.Repeat("  ", depth)
	switch r := rule.(type) {
	case QualifiedRule:
		fmt.Fprintf(w, "%sRule %s\n", indent, componentValuesString(r.Prelude))
		if r.Block != nil {
			dumpBlockDeclarations(w, r.Block, depth+1)
		}
	case AtRule:
		fmt.Fprintf(w, "%s@%s %s\n", indent, r.Name, componentValuesString(r.Prelude))
		if r.Block != nil {
			dumpBlockDeclarations(w, r.Block, depth+1)
		}
	}
}

func dumpBlockDeclarations(w io.Writer, block *SimpleBlock, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, item := range ParseAListOfDeclarationsFromTokens(block.Tokens) {
		switch d := item.(type) {
		case Declaration:
			suffix := ""
			if d.Important {
				suffix = " !important"
			}
			fmt.Fprintf(w, "%s%s: %s%s\n", indent, d.Name, d.OriginalText, suffix)
		case AtRule:
			dumpRule(w, d, depth)
		}
	}
}

func componentValuesString(values []ComponentValue) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(v.String())
	}
	return sb.String()
}
