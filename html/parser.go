package html

import (
	"github.com/basalthq/webcore/diag"
	"github.com/basalthq/webcore/dom"
)

// InsertionMode names one of the tree construction stages from
// https://html.spec.whatwg.org/multipage/parsing.html#the-insertion-mode.
type InsertionMode int

const (
	Initial InsertionMode = iota
	BeforeHtml
	BeforeHead
	InHead
	InHeadNoscript
	AfterHead
	InBody
	Text
	InTable
	InTableText
	InCaption
	InColumnGroup
	InTableBody
	InRow
	InCell
	InSelect
	InSelectInTable
	InTemplate
	AfterBody
	InFrameset
	AfterFrameset
	AfterAfterBody
	AfterAfterFrameset
)

// Parser is the HTML tree constructor: it drives a Tokenizer and builds
// a dom.Document, following
// https://html.spec.whatwg.org/multipage/parsing.html#tree-construction.
type Parser struct {
	tokenizer *Tokenizer
	doc       *dom.Document

	openElements StackOfOpenElements
	afe          ActiveFormattingElements

	insertionMode         InsertionMode
	originalInsertionMode InsertionMode
	templateModeStack     []InsertionMode

	headElementPointer *dom.Node
	formElementPointer *dom.Node

	framesetOK      bool
	fosterParenting bool
	pendingTableText []rune

	sink diag.Sink

	done bool
}

// Parse tokenizes and parses input as a full HTML document, returning
// the resulting dom.Document. Diagnostics are reported to sink; pass
// diag.Discard to ignore them.
func Parse(input string, sink diag.Sink) *dom.Document {
	if sink == nil {
		sink = diag.Discard
	}
	p := &Parser{
		tokenizer:     NewTokenizer(input, sink),
		doc:           dom.NewDocument(),
		insertionMode: Initial,
		framesetOK:    true,
		sink:          sink,
	}
	p.run()
	return p.doc
}

func (p *Parser) run() {
	for !p.done {
		tok := p.tokenizer.NextToken()
		p.dispatch(tok)
		if tok.Type == EOFToken {
			p.done = true
		}
	}
}

func (p *Parser) reportTree(message string) {
	p.sink.Report(diag.Error{Kind: diag.TreeConstructionError, Message: message})
}

// currentNode returns the element the tree constructor is currently
// inserting into: the top of the stack of open elements.
func (p *Parser) currentNode() *dom.Node {
	return p.openElements.Current()
}

func (p *Parser) currentNodeIsHTML(tagNames ...string) bool {
	cur := p.currentNode()
	if cur == nil {
		return false
	}
	name := tagNameOf(cur)
	for _, tn := range tagNames {
		if name == tn {
			return true
		}
	}
	return false
}

// dispatch implements "the rules for processing tokens" plus the tree
// construction dispatcher's foreign-content carve-out. Foreign content
// is out of scope for this module (no SVG/MathML subtree construction),
// so every token is processed by HTML insertion-mode rules.
func (p *Parser) dispatch(tok Token) {
	switch p.insertionMode {
	case Initial:
		p.inInitial(tok)
	case BeforeHtml:
		p.inBeforeHtml(tok)
	case BeforeHead:
		p.inBeforeHead(tok)
	case InHead:
		p.inHead(tok)
	case InHeadNoscript:
		p.inHeadNoscript(tok)
	case AfterHead:
		p.inAfterHead(tok)
	case InBody:
		p.inBody(tok)
	case Text:
		p.inText(tok)
	case InTable:
		p.inTable(tok)
	case InTableText:
		p.inTableText(tok)
	case InCaption:
		p.inCaption(tok)
	case InColumnGroup:
		p.inColumnGroup(tok)
	case InTableBody:
		p.inTableBody(tok)
	case InRow:
		p.inRow(tok)
	case InCell:
		p.inCell(tok)
	case InSelect:
		p.inSelect(tok)
	case InSelectInTable:
		p.inSelectInTable(tok)
	case InTemplate:
		p.inTemplate(tok)
	case AfterBody:
		p.inAfterBody(tok)
	case InFrameset:
		p.inFrameset(tok)
	case AfterFrameset:
		p.inAfterFrameset(tok)
	case AfterAfterBody:
		p.inAfterAfterBody(tok)
	case AfterAfterFrameset:
		p.inAfterAfterFrameset(tok)
	}
}

// --- insertion primitives -------------------------------------------------

// appropriatePlaceForInsertingNode implements
// https://html.spec.whatwg.org/multipage/parsing.html#appropriate-place-for-inserting-a-node.
// Foster parenting (triggered by stray content inside <table> before a
// <td>/<th>/<caption> exists) relocates the insertion point to just
// before the table itself.
func (p *Parser) appropriatePlaceForInsertingNode() (parent *dom.Node, before *dom.Node) {
	target := p.currentNode()
	if !p.fosterParenting || !currentNodeNeedsFosterParenting(target) {
		return target, nil
	}
	var lastTable *dom.Node
	for i := p.openElements.Len() - 1; i >= 0; i-- {
		if tagNameOf(p.openElements.At(i)) == "table" {
			lastTable = p.openElements.At(i)
			break
		}
	}
	if lastTable == nil {
		return p.openElements.At(0), nil
	}
	if tableParent := lastTable.ParentNode(); tableParent != nil {
		return tableParent, lastTable
	}
	// No parent yet (table not yet inserted into the document): foster
	// into the element directly below it on the stack instead.
	for i := 0; i < p.openElements.Len(); i++ {
		if p.openElements.At(i) == lastTable && i > 0 {
			return p.openElements.At(i - 1), nil
		}
	}
	return p.openElements.At(0), nil
}

func currentNodeNeedsFosterParenting(n *dom.Node) bool {
	switch tagNameOf(n) {
	case "table", "tbody", "tfoot", "thead", "tr":
		return true
	}
	return false
}

func (p *Parser) insertElementForToken(tok Token, namespace string) *dom.Node {
	el := p.doc.CreateElementNS(namespace, tok.TagName)
	for _, a := range tok.Attributes {
		el.SetAttribute(a.Name, a.Value)
	}
	parent, before := p.appropriatePlaceForInsertingNode()
	if parent != nil {
		if err := p.doc.Arena().InsertBefore(el.AsNode(), parent, before); err != nil {
			p.reportTree(err.Error())
		}
	}
	p.openElements.Push(el.AsNode())
	if parent == p.doc.AsNode() {
		p.doc.SetDocumentElement(el.AsNode())
	}
	return el.AsNode()
}

func (p *Parser) insertHTMLElement(tok Token) *dom.Node {
	return p.insertElementForToken(tok, dom.HTMLNamespace)
}

// insertCharacter implements "insert a character", coalescing into the
// last child Text node when possible rather than allocating a new one
// per character token.
func (p *Parser) insertCharacter(c rune) {
	parent, before := p.appropriatePlaceForInsertingNode()
	if parent == nil {
		return
	}
	var prevSibling *dom.Node
	if before != nil {
		prevSibling = before.PreviousSibling()
	} else {
		prevSibling = parent.LastChild()
	}
	if prevSibling != nil && prevSibling.NodeType() == dom.TextNode {
		(*dom.Text)(prevSibling).AppendData(string(c))
		return
	}
	txt := p.doc.CreateTextNode(string(c))
	if err := p.doc.Arena().InsertBefore(txt.AsNode(), parent, before); err != nil {
		p.reportTree(err.Error())
	}
}

func (p *Parser) insertComment(tok Token) {
	p.insertCommentInto(tok, nil)
}

func (p *Parser) insertCommentInto(tok Token, target *dom.Node) {
	var parent, before *dom.Node
	if target != nil {
		parent = target
	} else {
		parent, before = p.appropriatePlaceForInsertingNode()
	}
	if parent == nil {
		return
	}
	c := p.doc.CreateComment(tok.CommentData)
	if err := p.doc.Arena().InsertBefore(c.AsNode(), parent, before); err != nil {
		p.reportTree(err.Error())
	}
}

// reconstructActiveFormattingElements implements
// https://html.spec.whatwg.org/multipage/parsing.html#reconstruct-the-active-formatting-elements.
func (p *Parser) reconstructActiveFormattingElements() {
	if p.afe.Len() == 0 {
		return
	}
	last := p.afe.Len() - 1
	if p.afe.IsMarkerAt(last) || p.openElements.Contains(p.afe.ElementAt(last)) {
		return
	}
	entryIndex := last
	for entryIndex > 0 {
		entryIndex--
		if p.afe.IsMarkerAt(entryIndex) || p.openElements.Contains(p.afe.ElementAt(entryIndex)) {
			entryIndex++
			break
		}
	}
	for entryIndex <= last {
		if p.afe.IsMarkerAt(entryIndex) {
			entryIndex++
			continue
		}
		tok := p.afe.TokenAt(entryIndex)
		newElement := p.insertHTMLElement(tok)
		p.afe.SetElementAt(entryIndex, newElement)
		entryIndex++
	}
}

// generateImpliedEndTags implements
// https://html.spec.whatwg.org/multipage/parsing.html#generate-implied-end-tags,
// popping elements off the stack of open elements whose local name is in
// the implied-end-tag set, except for except (pass "" to exclude none).
func (p *Parser) generateImpliedEndTags(except string) {
	impliedEndTags := map[string]bool{
		"dd": true, "dt": true, "li": true, "optgroup": true,
		"option": true, "p": true, "rb": true, "rp": true,
		"rt": true, "rtc": true,
	}
	for {
		cur := p.currentNode()
		name := tagNameOf(cur)
		if name == "" || name == except || !impliedEndTags[name] {
			return
		}
		p.openElements.Pop()
	}
}

// generateAllImpliedEndTagsThoroughly is the stricter variant used before
// popping a <template>.
func (p *Parser) generateAllImpliedEndTagsThoroughly() {
	impliedEndTags := map[string]bool{
		"caption": true, "colgroup": true, "dd": true, "dt": true,
		"li": true, "optgroup": true, "option": true, "p": true,
		"rb": true, "rp": true, "rt": true, "rtc": true,
		"tbody": true, "td": true, "tfoot": true, "th": true,
		"thead": true, "tr": true,
	}
	for {
		name := tagNameOf(p.currentNode())
		if name == "" || !impliedEndTags[name] {
			return
		}
		p.openElements.Pop()
	}
}

// resetInsertionModeAppropriately implements
// https://html.spec.whatwg.org/multipage/parsing.html#reset-the-insertion-mode-appropriately.
func (p *Parser) resetInsertionModeAppropriately() {
	for i := p.openElements.Len() - 1; i >= 0; i-- {
		node := p.openElements.At(i)
		last := i == 0
		name := tagNameOf(node)
		switch name {
		case "select":
			for j := i; j > 0; j-- {
				ancestor := tagNameOf(p.openElements.At(j - 1))
				if ancestor == "table" {
					p.insertionMode = InSelectInTable
					return
				}
			}
			p.insertionMode = InSelect
			return
		case "td", "th":
			if !last {
				p.insertionMode = InCell
				return
			}
		case "tr":
			p.insertionMode = InRow
			return
		case "tbody", "thead", "tfoot":
			p.insertionMode = InTableBody
			return
		case "caption":
			p.insertionMode = InCaption
			return
		case "colgroup":
			p.insertionMode = InColumnGroup
			return
		case "table":
			p.insertionMode = InTable
			return
		case "template":
			if len(p.templateModeStack) > 0 {
				p.insertionMode = p.templateModeStack[len(p.templateModeStack)-1]
				return
			}
		case "head":
			if !last {
				p.insertionMode = InHead
				return
			}
		case "body":
			p.insertionMode = InBody
			return
		case "frameset":
			p.insertionMode = InFrameset
			return
		case "html":
			if p.headElementPointer == nil {
				p.insertionMode = BeforeHead
			} else {
				p.insertionMode = AfterHead
			}
			return
		}
		if last {
			p.insertionMode = InBody
			return
		}
	}
}

func isParserWhitespace(c rune) bool {
	switch c {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

// acknowledgeSelfClosing sets SelfClosingAcknowledged on a void
// element's start tag (e.g. <br/>, <img/>). The flag is set on the
// insertion-mode handler's own copy of the token and nothing reads it
// afterwards: an unacknowledged self-closing start tag is not reported as
// a parse error, except in the math/svg start-tag case, which reports
// "non-void-html-element-start-tag-with-trailing-solidus" itself.
func acknowledgeSelfClosing(tok *Token) {
	tok.SelfClosingAcknowledged = true
}
