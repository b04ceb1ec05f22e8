package html

import (
	"strings"
	"testing"

	"github.com/basalthq/webcore/dom"
)

// findElement returns the first descendant element (document order,
// inclusive of n itself) with the given lowercase tag name.
func findElement(n *dom.Node, tagName string) *dom.Node {
	if n.NodeType() == dom.ElementNode && (*dom.Element)(n).LocalName() == tagName {
		return n
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if found := findElement(c, tagName); found != nil {
			return found
		}
	}
	return nil
}

// dumpTags renders an element subtree as a flat "<tag>...</tag>" string,
// ignoring attributes, for structural comparisons in tests.
func dumpTags(n *dom.Node) string {
	var sb strings.Builder
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		switch n.NodeType() {
		case dom.ElementNode:
			tag := (*dom.Element)(n).LocalName()
			sb.WriteString("<" + tag + ">")
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c)
			}
			sb.WriteString("</" + tag + ">")
		case dom.TextNode:
			sb.WriteString(n.NodeValue())
		}
	}
	walk(n)
	return sb.String()
}

func TestParseBasicDocument(t *testing.T) {
	doc := Parse("<!DOCTYPE html><html><head></head><body>hi</body></html>", nil)

	html := doc.DocumentElement()
	if html == nil || html.LocalName() != "html" {
		t.Fatalf("DocumentElement() = %v, want <html>", html)
	}

	body := findElement(doc.AsNode(), "body")
	if body == nil {
		t.Fatal("no <body> found")
	}
	text := body.FirstChild()
	if text == nil || text.NodeType() != dom.TextNode || text.NodeValue() != "hi" {
		t.Fatalf("body's first child = %+v, want Text \"hi\"", text)
	}
}

func TestParseImpliedHeadAndBody(t *testing.T) {
	doc := Parse("<p>no doctype, no head, no body tags</p>", nil)

	html := doc.DocumentElement()
	if html == nil || html.LocalName() != "html" {
		t.Fatalf("DocumentElement() = %v, want implied <html>", html)
	}
	if findElement(doc.AsNode(), "head") == nil {
		t.Error("expected an implied <head> element")
	}
	body := findElement(doc.AsNode(), "body")
	if body == nil {
		t.Fatal("expected an implied <body> element")
	}
	if findElement(body, "p") == nil {
		t.Error("expected <p> to land inside the implied body")
	}
}

func TestParseTitleDecodesEntitiesAsRCDATA(t *testing.T) {
	doc := Parse("<title>&amp;&lt;x&gt;</title>", nil)

	title := findElement(doc.AsNode(), "title")
	if title == nil {
		t.Fatal("no <title> found")
	}
	if title.ChildNodes() == nil || len(title.ChildNodes()) != 1 {
		t.Fatalf("title children = %v, want exactly one Text node", title.ChildNodes())
	}
	text := title.FirstChild()
	if text.NodeType() != dom.TextNode {
		t.Fatalf("title's child type = %v, want TextNode", text.NodeType())
	}
	if got, want := text.NodeValue(), "&<x>"; got != want {
		t.Errorf("title text = %q, want %q", got, want)
	}
}

func TestParseSelfClosingVoidElementAcknowledged(t *testing.T) {
	tok := NewTokenizer(`<img src="x" /> <br>`, nil)
	first := tok.NextToken()
	if first.Type != StartTagToken || first.TagName != "img" {
		t.Fatalf("first token = %+v, want start tag img", first)
	}
	if !first.SelfClosing {
		t.Fatal("img token SelfClosing = false, want true")
	}

	doc := Parse(`<img src="x" /> <br>`, nil)
	img := findElement(doc.AsNode(), "img")
	if img == nil {
		t.Fatal("no <img> found in parsed tree")
	}
	if len(img.ChildNodes()) != 0 {
		t.Errorf("img has %d children, want 0 (void element)", len(img.ChildNodes()))
	}
	if findElement(doc.AsNode(), "br") == nil {
		t.Error("no <br> found in parsed tree")
	}
}

// TestParseReconstructsMisnestedFormattingElements covers a <p> whose
// <b> and <i> formatting elements are still open when </p> arrives: the
// end tag closes them along with the <p>, and the following text
// reconstructs the active formatting elements as fresh <b><i> copies.
//
// https://html.spec.whatwg.org/multipage/parsing.html#reconstruct-the-active-formatting-elements
func TestParseReconstructsMisnestedFormattingElements(t *testing.T) {
	doc := Parse("<body><p>a<b>b<i>c</p>d", nil)

	body := findElement(doc.AsNode(), "body")
	if body == nil {
		t.Fatal("no <body> found")
	}

	got := dumpTags(body)
	want := "<p>a<b>b<i>c</i></b></p><b><i>d</i></b>"
	if got != want {
		t.Errorf("body structure = %q, want %q", got, want)
	}
}

func TestParseMismatchedTableContentFostersText(t *testing.T) {
	doc := Parse("<table>foo<tr><td>bar</td></tr></table>", nil)

	body := findElement(doc.AsNode(), "body")
	if body == nil {
		t.Fatal("no <body> found")
	}

	table := findElement(body, "table")
	if table == nil {
		t.Fatal("no <table> found")
	}

	// "foo" is foster-parented to just before <table>, as a child of
	// <body>, not as a child of <table>.
	foundFooBeforeTable := false
	for c := body.FirstChild(); c != nil; c = c.NextSibling() {
		if c == table {
			break
		}
		if c.NodeType() == dom.TextNode && strings.Contains(c.NodeValue(), "foo") {
			foundFooBeforeTable = true
		}
	}
	if !foundFooBeforeTable {
		t.Error("expected foster-parented text \"foo\" as a sibling of <table> within <body>")
	}

	td := findElement(table, "td")
	if td == nil || td.FirstChild() == nil || td.FirstChild().NodeValue() != "bar" {
		t.Errorf("<td> contents = %+v, want Text \"bar\"", td)
	}
}

func TestParseEmptyInputProducesHTMLHeadBodySkeleton(t *testing.T) {
	doc := Parse("", nil)

	html := doc.DocumentElement()
	if html == nil || html.LocalName() != "html" {
		t.Fatalf("DocumentElement() = %v, want implied <html> even for empty input", html)
	}
	if findElement(doc.AsNode(), "head") == nil {
		t.Error("expected an implied <head> for empty input")
	}
	if findElement(doc.AsNode(), "body") == nil {
		t.Error("expected an implied <body> for empty input")
	}
}

func TestParseCommentBecomesCommentNode(t *testing.T) {
	doc := Parse("<!--top level--><p><!--inside--></p>", nil)

	var topLevelComment *dom.Node
	for c := doc.AsNode().FirstChild(); c != nil; c = c.NextSibling() {
		if c.NodeType() == dom.CommentNode {
			topLevelComment = c
		}
	}
	if topLevelComment == nil || topLevelComment.NodeValue() != "top level" {
		t.Errorf("top-level comment = %+v, want Comment \"top level\"", topLevelComment)
	}

	p := findElement(doc.AsNode(), "p")
	if p == nil {
		t.Fatal("no <p> found")
	}
	inner := p.FirstChild()
	if inner == nil || inner.NodeType() != dom.CommentNode || inner.NodeValue() != "inside" {
		t.Errorf("p's first child = %+v, want Comment \"inside\"", inner)
	}
}

func TestParseAttributesArePreservedOnElements(t *testing.T) {
	doc := Parse(`<div id="main" class="a b"></div>`, nil)

	div := findElement(doc.AsNode(), "div")
	if div == nil {
		t.Fatal("no <div> found")
	}
	el := (*dom.Element)(div)
	if got := el.GetAttribute("id"); got != "main" {
		t.Errorf(`id attribute = %q, want "main"`, got)
	}
	if got := el.GetAttribute("class"); got != "a b" {
		t.Errorf(`class attribute = %q, want "a b"`, got)
	}
}

func TestParseTagNamesAreASCIILowercased(t *testing.T) {
	doc := Parse("<DIV><SPAN>x</SPAN></DIV>", nil)

	if findElement(doc.AsNode(), "div") == nil {
		t.Error("expected uppercase DIV to be tokenized/inserted as lowercase div")
	}
	if findElement(doc.AsNode(), "span") == nil {
		t.Error("expected uppercase SPAN to be tokenized/inserted as lowercase span")
	}
}
