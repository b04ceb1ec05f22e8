// Command htmlcss parses an HTML or CSS file and prints its parsed tree.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/basalthq/webcore/css"
	"github.com/basalthq/webcore/diag"
	"github.com/basalthq/webcore/dom"
	"github.com/basalthq/webcore/html"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <file.html|file.css>\n", os.Args[0])
		os.Exit(1)
	}

	path := os.Args[1]
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		os.Exit(1)
	}

	switch {
	case strings.HasSuffix(path, ".html"):
		runHTML(string(data))
	case strings.HasSuffix(path, ".css"):
		runCSS(string(data))
	default:
		fmt.Fprintf(os.Stderr, "Error: %s must end in .html or .css\n", path)
		os.Exit(1)
	}
}

func runHTML(input string) {
	sink := diag.NewStderr(os.Getenv("TOKENIZER_LOGGING") != "")
	document := html.Parse(input, sink)
	dom.Dump(os.Stdout, document.AsNode())
}

func runCSS(input string) {
	sink := diag.NewStderr(os.Getenv("CSS_TOKENIZER_LOGGING") != "")
	sheet := css.ParseAStylesheet(input, sink)
	css.Dump(os.Stdout, sheet)
}
