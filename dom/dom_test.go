package dom

import "testing"

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc.NodeType() != DocumentNode {
		t.Fatalf("NodeType() = %v, want DocumentNode", doc.NodeType())
	}
	if doc.DocumentElement() != nil {
		t.Fatalf("DocumentElement() = %v, want nil on an empty document", doc.DocumentElement())
	}
	if got := doc.Arena().AllocatedCount(); got != 1 {
		t.Fatalf("AllocatedCount() = %d, want 1 (the document itself)", got)
	}
}

func TestDocumentCreateElement(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	if el.NodeType() != ElementNode {
		t.Fatalf("NodeType() = %v, want ElementNode", el.NodeType())
	}
	if got, want := el.TagName(), "DIV"; got != want {
		t.Errorf("TagName() = %q, want %q", got, want)
	}
	if got, want := el.LocalName(), "div"; got != want {
		t.Errorf("LocalName() = %q, want %q", got, want)
	}
	if got, want := el.NamespaceURI(), HTMLNamespace; got != want {
		t.Errorf("NamespaceURI() = %q, want %q", got, want)
	}
	if el.AsNode().OwnerDocument() != doc {
		t.Errorf("OwnerDocument() did not return the creating document")
	}
}

func TestDocumentCreateTextNode(t *testing.T) {
	doc := NewDocument()
	txt := doc.CreateTextNode("hello")
	if txt.NodeType() != TextNode {
		t.Fatalf("NodeType() = %v, want TextNode", txt.NodeType())
	}
	if got, want := txt.Data(), "hello"; got != want {
		t.Errorf("Data() = %q, want %q", got, want)
	}
	txt.AppendData(" world")
	if got, want := txt.Data(), "hello world"; got != want {
		t.Errorf("after AppendData, Data() = %q, want %q", got, want)
	}
}

func TestDocumentCreateComment(t *testing.T) {
	doc := NewDocument()
	c := doc.CreateComment("note")
	if c.NodeType() != CommentNode {
		t.Fatalf("NodeType() = %v, want CommentNode", c.NodeType())
	}
	if got, want := c.Data(), "note"; got != want {
		t.Errorf("Data() = %q, want %q", got, want)
	}
}

func TestDocumentCreateDocumentType(t *testing.T) {
	doc := NewDocument()
	dt := doc.CreateDocumentType("html", "", "")
	if got, want := dt.Name(), "html"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
	if dt.PublicID() != "" || dt.SystemID() != "" {
		t.Errorf("expected empty public/system identifiers for a bare <!DOCTYPE html>")
	}
}

func TestArenaAppendAndSiblingLinks(t *testing.T) {
	doc := NewDocument()
	html := doc.CreateElement("html")
	if err := doc.Arena().Append(html.AsNode(), doc.AsNode()); err != nil {
		t.Fatalf("Append(html, doc) error: %v", err)
	}
	doc.SetDocumentElement(html.AsNode())

	head := doc.CreateElement("head")
	body := doc.CreateElement("body")
	if err := doc.Arena().Append(head.AsNode(), html.AsNode()); err != nil {
		t.Fatalf("Append(head, html) error: %v", err)
	}
	if err := doc.Arena().Append(body.AsNode(), html.AsNode()); err != nil {
		t.Fatalf("Append(body, html) error: %v", err)
	}

	if got := html.AsNode().ChildNodes(); len(got) != 2 {
		t.Fatalf("html has %d children, want 2", len(got))
	}
	if head.AsNode().NextSibling() != body.AsNode() {
		t.Errorf("head.NextSibling() did not return body")
	}
	if body.AsNode().PreviousSibling() != head.AsNode() {
		t.Errorf("body.PreviousSibling() did not return head")
	}
	if html.AsNode().FirstChild() != head.AsNode() {
		t.Errorf("html.FirstChild() did not return head")
	}
	if html.AsNode().LastChild() != body.AsNode() {
		t.Errorf("html.LastChild() did not return body")
	}
	if doc.DocumentElement() != html {
		t.Errorf("DocumentElement() did not return html")
	}
}

func TestArenaInsertBefore(t *testing.T) {
	doc := NewDocument()
	ul := doc.CreateElement("ul")
	doc.Arena().Append(ul.AsNode(), doc.AsNode())

	first := doc.CreateElement("li")
	second := doc.CreateElement("li")
	doc.Arena().Append(second.AsNode(), ul.AsNode())
	if err := doc.Arena().InsertBefore(first.AsNode(), ul.AsNode(), second.AsNode()); err != nil {
		t.Fatalf("InsertBefore error: %v", err)
	}

	children := ul.AsNode().ChildNodes()
	if len(children) != 2 || children[0] != first.AsNode() || children[1] != second.AsNode() {
		t.Fatalf("unexpected child order after InsertBefore: %v", children)
	}
}

func TestArenaRemove(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	doc.Arena().Append(div.AsNode(), doc.AsNode())
	span := doc.CreateElement("span")
	doc.Arena().Append(span.AsNode(), div.AsNode())

	doc.Arena().Remove(span.AsNode())
	if span.AsNode().ParentNode() != nil {
		t.Errorf("ParentNode() after Remove = %v, want nil", span.AsNode().ParentNode())
	}
	if len(div.AsNode().ChildNodes()) != 0 {
		t.Errorf("div still has children after removing its only child")
	}
}

func TestArenaInsertBeforeRejectsCycle(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	doc.Arena().Append(div.AsNode(), doc.AsNode())
	child := doc.CreateElement("span")
	doc.Arena().Append(child.AsNode(), div.AsNode())

	if err := doc.Arena().InsertBefore(div.AsNode(), child.AsNode(), nil); err == nil {
		t.Fatalf("expected an error inserting an ancestor into its own descendant")
	}
}

func TestArenaAdoptAcrossDocuments(t *testing.T) {
	docA := NewDocument()
	docB := NewDocument()

	el := docA.CreateElement("p")
	docA.Arena().Append(el.AsNode(), docA.AsNode())

	docB.Arena().Append(el.AsNode(), docB.AsNode())
	if el.AsNode().OwnerDocument() != docB {
		t.Errorf("OwnerDocument() after cross-document append = %v, want docB", el.AsNode().OwnerDocument())
	}
	if len(docA.AsNode().ChildNodes()) != 0 {
		t.Errorf("docA still lists the adopted element as a child")
	}
}

func TestElementAttributes(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("input")

	el.SetAttribute("TYPE", "text")
	if !el.HasAttribute("type") {
		t.Errorf("HasAttribute(%q) = false, want true after SetAttribute(%q, ...)", "type", "TYPE")
	}
	if got, want := el.GetAttribute("type"), "text"; got != want {
		t.Errorf("GetAttribute(%q) = %q, want %q", "type", got, want)
	}

	el.SetAttribute("type", "checkbox")
	if got := len(el.Attributes()); got != 1 {
		t.Fatalf("Attributes() has %d entries after overwrite, want 1", got)
	}
	if got, want := el.GetAttribute("type"), "checkbox"; got != want {
		t.Errorf("GetAttribute(%q) after overwrite = %q, want %q", "type", got, want)
	}

	el.RemoveAttribute("TYPE")
	if el.HasAttribute("type") {
		t.Errorf("HasAttribute(%q) = true after RemoveAttribute, want false", "type")
	}
}

func TestNodeTextContent(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	doc.Arena().Append(div.AsNode(), doc.AsNode())
	doc.Arena().Append(doc.CreateTextNode("foo ").AsNode(), div.AsNode())

	span := doc.CreateElement("span")
	doc.Arena().Append(span.AsNode(), div.AsNode())
	doc.Arena().Append(doc.CreateTextNode("bar").AsNode(), span.AsNode())

	if got, want := div.AsNode().TextContent(), "foo bar"; got != want {
		t.Errorf("TextContent() = %q, want %q", got, want)
	}
}

func TestNodeCloneNodeDeep(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	div.SetAttribute("class", "box")
	doc.Arena().Append(div.AsNode(), doc.AsNode())
	doc.Arena().Append(doc.CreateTextNode("hi").AsNode(), div.AsNode())

	clone := div.AsNode().CloneNode(true)
	if clone == div.AsNode() {
		t.Fatalf("CloneNode returned the same node")
	}
	if clone.ParentNode() != nil {
		t.Errorf("clone.ParentNode() = %v, want nil (clones start detached)", clone.ParentNode())
	}
	if got, want := (*Element)(clone).GetAttribute("class"), "box"; got != want {
		t.Errorf("clone attribute class = %q, want %q", got, want)
	}
	if len(clone.ChildNodes()) != 1 || clone.ChildNodes()[0].NodeValue() != "hi" {
		t.Errorf("deep clone did not copy the text child")
	}
}

func TestNodeContains(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	doc.Arena().Append(div.AsNode(), doc.AsNode())
	span := doc.CreateElement("span")
	doc.Arena().Append(span.AsNode(), div.AsNode())

	if !div.AsNode().Contains(span.AsNode()) {
		t.Errorf("div.Contains(span) = false, want true")
	}
	if span.AsNode().Contains(div.AsNode()) {
		t.Errorf("span.Contains(div) = true, want false")
	}
}
