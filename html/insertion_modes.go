package html

import (
	"github.com/basalthq/webcore/dom"
)

// inInitial implements "the initial insertion mode":
// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
func (p *Parser) inInitial(tok Token) {
	switch tok.Type {
	case CharacterToken:
		if isParserWhitespace(tok.Char) {
			return
		}
	case CommentToken:
		p.insertCommentInto(tok, p.doc.AsNode())
		return
	case DoctypeToken:
		name := ""
		if tok.DoctypeNameSet {
			name = tok.DoctypeName
		}
		dt := p.doc.CreateDocumentType(name, tok.PublicIdentifier, tok.SystemIdentifier)
		if err := p.doc.Arena().Append(dt.AsNode(), p.doc.AsNode()); err != nil {
			p.reportTree(err.Error())
		}
		p.insertionMode = BeforeHtml
		return
	}
	p.reportTree("expected doctype")
	p.insertionMode = BeforeHtml
	p.dispatch(tok)
}

// inBeforeHtml implements "the before html insertion mode".
func (p *Parser) inBeforeHtml(tok Token) {
	switch tok.Type {
	case DoctypeToken:
		p.reportTree("unexpected doctype")
		return
	case CommentToken:
		p.insertCommentInto(tok, p.doc.AsNode())
		return
	case CharacterToken:
		if isParserWhitespace(tok.Char) {
			return
		}
	case StartTagToken:
		if tok.TagName == "html" {
			el := p.doc.CreateElementNS(dom.HTMLNamespace, tok.TagName)
			for _, a := range tok.Attributes {
				el.SetAttribute(a.Name, a.Value)
			}
			if err := p.doc.Arena().Append(el.AsNode(), p.doc.AsNode()); err != nil {
				p.reportTree(err.Error())
			}
			p.doc.SetDocumentElement(el.AsNode())
			p.openElements.Push(el.AsNode())
			p.insertionMode = BeforeHead
			return
		}
	case EndTagToken:
		switch tok.TagName {
		case "head", "body", "html", "br":
		default:
			p.reportTree("unexpected end tag before html")
			return
		}
	}
	p.insertImpliedHTMLElement()
	p.insertionMode = BeforeHead
	p.dispatch(tok)
}

func (p *Parser) insertImpliedHTMLElement() {
	el := p.doc.CreateElementNS(dom.HTMLNamespace, "html")
	if err := p.doc.Arena().Append(el.AsNode(), p.doc.AsNode()); err != nil {
		p.reportTree(err.Error())
	}
	p.doc.SetDocumentElement(el.AsNode())
	p.openElements.Push(el.AsNode())
}

// inBeforeHead implements "the before head insertion mode".
func (p *Parser) inBeforeHead(tok Token) {
	switch tok.Type {
	case CharacterToken:
		if isParserWhitespace(tok.Char) {
			return
		}
	case CommentToken:
		p.insertComment(tok)
		return
	case DoctypeToken:
		p.reportTree("unexpected doctype")
		return
	case StartTagToken:
		switch tok.TagName {
		case "html":
			p.inBody(tok)
			return
		case "head":
			head := p.insertHTMLElement(tok)
			p.headElementPointer = head
			p.insertionMode = InHead
			return
		}
	case EndTagToken:
		switch tok.TagName {
		case "head", "body", "html", "br":
		default:
			p.reportTree("unexpected end tag before head")
			return
		}
	}
	head := p.insertHTMLElement(Token{Type: StartTagToken, TagName: "head"})
	p.headElementPointer = head
	p.insertionMode = InHead
	p.dispatch(tok)
}

// inHead implements "the in head insertion mode".
func (p *Parser) inHead(tok Token) {
	switch tok.Type {
	case CharacterToken:
		if isParserWhitespace(tok.Char) {
			p.insertCharacter(tok.Char)
			return
		}
	case CommentToken:
		p.insertComment(tok)
		return
	case DoctypeToken:
		p.reportTree("unexpected doctype")
		return
	case StartTagToken:
		switch tok.TagName {
		case "html":
			p.inBody(tok)
			return
		case "base", "basefont", "bgsound", "link", "meta":
			p.insertHTMLElement(tok)
			p.openElements.Pop()
			acknowledgeSelfClosing(&tok)
			return
		case "title":
			p.parseRCDATAElement(tok)
			return
		case "noscript":
			// Scripting is modeled as disabled: per spec this enters the
			// "in head noscript" mode expecting further head content, not
			// raw text; scripting-disabled rendering is out of scope so
			// it is parsed as ordinary children instead of RAWTEXT.
			p.insertHTMLElement(tok)
			p.insertionMode = InHeadNoscript
			return
		case "noframes", "style":
			p.parseRAWTEXTElement(tok)
			return
		case "script":
			p.insertScriptElement(tok)
			return
		case "template":
			p.insertHTMLElement(tok)
			p.afe.PushMarker()
			p.framesetOK = false
			p.insertionMode = InTemplate
			p.templateModeStack = append(p.templateModeStack, InTemplate)
			return
		case "head":
			p.reportTree("unexpected start tag head")
			return
		}
	case EndTagToken:
		switch tok.TagName {
		case "head":
			p.openElements.Pop()
			p.insertionMode = AfterHead
			return
		case "body", "html", "br":
		case "template":
			p.endTemplateTag()
			return
		default:
			p.reportTree("unexpected end tag in head")
			return
		}
	}
	p.openElements.Pop()
	p.insertionMode = AfterHead
	p.dispatch(tok)
}

func (p *Parser) endTemplateTag() {
	if !p.openElements.ContainsTag("template") {
		p.reportTree("unmatched </template>")
		return
	}
	p.generateAllImpliedEndTagsThoroughly()
	p.openElements.PopUntil("template")
	p.afe.ClearToLastMarker()
	if len(p.templateModeStack) > 0 {
		p.templateModeStack = p.templateModeStack[:len(p.templateModeStack)-1]
	}
	p.resetInsertionModeAppropriately()
}

func (p *Parser) parseRCDATAElement(tok Token) {
	p.insertHTMLElement(tok)
	p.tokenizer.SetState(RCDATAState)
	p.tokenizer.SetLastStartTagName(tok.TagName)
	p.originalInsertionMode = p.insertionMode
	p.insertionMode = Text
}

func (p *Parser) parseRAWTEXTElement(tok Token) {
	p.insertHTMLElement(tok)
	p.tokenizer.SetState(RAWTEXTState)
	p.tokenizer.SetLastStartTagName(tok.TagName)
	p.originalInsertionMode = p.insertionMode
	p.insertionMode = Text
}

func (p *Parser) insertScriptElement(tok Token) {
	p.insertHTMLElement(tok)
	p.tokenizer.SetState(ScriptDataState)
	p.tokenizer.SetLastStartTagName(tok.TagName)
	p.originalInsertionMode = p.insertionMode
	p.insertionMode = Text
}

// inHeadNoscript implements "the in head noscript insertion mode".
func (p *Parser) inHeadNoscript(tok Token) {
	switch tok.Type {
	case DoctypeToken:
		p.reportTree("unexpected doctype")
		return
	case StartTagToken:
		switch tok.TagName {
		case "html":
			p.inBody(tok)
			return
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			p.inHead(tok)
			return
		case "head", "noscript":
			p.reportTree("unexpected start tag in head noscript")
			return
		}
	case EndTagToken:
		switch tok.TagName {
		case "noscript":
			p.openElements.Pop()
			p.insertionMode = InHead
			return
		case "br":
		default:
			p.reportTree("unexpected end tag in head noscript")
			return
		}
	case CharacterToken:
		if isParserWhitespace(tok.Char) {
			p.inHead(tok)
			return
		}
	case CommentToken:
		p.inHead(tok)
		return
	}
	p.reportTree("unexpected token in head noscript")
	p.openElements.Pop()
	p.insertionMode = InHead
	p.dispatch(tok)
}

// inAfterHead implements "the after head insertion mode".
func (p *Parser) inAfterHead(tok Token) {
	switch tok.Type {
	case CharacterToken:
		if isParserWhitespace(tok.Char) {
			p.insertCharacter(tok.Char)
			return
		}
	case CommentToken:
		p.insertComment(tok)
		return
	case DoctypeToken:
		p.reportTree("unexpected doctype")
		return
	case StartTagToken:
		switch tok.TagName {
		case "html":
			p.inBody(tok)
			return
		case "body":
			p.insertHTMLElement(tok)
			p.framesetOK = false
			p.insertionMode = InBody
			return
		case "frameset":
			p.insertHTMLElement(tok)
			p.insertionMode = InFrameset
			return
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script",
			"style", "template", "title":
			p.reportTree("head content after head closed")
			if p.headElementPointer != nil {
				p.openElements.Push(p.headElementPointer)
			}
			p.inHead(tok)
			if p.headElementPointer != nil {
				p.openElements.Remove(p.headElementPointer)
			}
			return
		case "head":
			p.reportTree("unexpected start tag head")
			return
		}
	case EndTagToken:
		switch tok.TagName {
		case "template":
			p.inHead(tok)
			return
		case "body", "html", "br":
		default:
			p.reportTree("unexpected end tag after head")
			return
		}
	}
	p.insertHTMLElement(Token{Type: StartTagToken, TagName: "body"})
	p.insertionMode = InBody
	p.dispatch(tok)
}

// inText implements "the text insertion mode", used for RCDATA/RAWTEXT/
// script-data content.
func (p *Parser) inText(tok Token) {
	switch tok.Type {
	case CharacterToken:
		p.insertCharacter(tok.Char)
		return
	case EOFToken:
		p.reportTree("unexpected eof in text")
		p.openElements.Pop()
		p.insertionMode = p.originalInsertionMode
		p.dispatch(tok)
		return
	case EndTagToken:
		p.openElements.Pop()
		p.insertionMode = p.originalInsertionMode
		return
	}
}

// closePElementIfInButtonScope implements the repeated "if the stack of
// open elements has a p element in button scope, close a p element" step.
func (p *Parser) closePElementIfInButtonScope() {
	if p.openElements.HasElementInButtonScope("p") {
		p.closePElement()
	}
}

func (p *Parser) closePElement() {
	p.generateImpliedEndTags("p")
	if tagNameOf(p.currentNode()) != "p" {
		p.reportTree("expected current node p")
	}
	p.openElements.PopUntil("p")
}

// inBody implements "the in body insertion mode", the largest and most
// frequently exercised insertion mode.
func (p *Parser) inBody(tok Token) {
	switch tok.Type {
	case CharacterToken:
		if tok.Char == 0 {
			p.reportTree("unexpected null character")
			return
		}
		p.reconstructActiveFormattingElements()
		p.insertCharacter(tok.Char)
		if !isParserWhitespace(tok.Char) {
			p.framesetOK = false
		}
		return
	case CommentToken:
		p.insertComment(tok)
		return
	case DoctypeToken:
		p.reportTree("unexpected doctype")
		return
	case EOFToken:
		if len(p.templateModeStack) > 0 {
			p.inTemplate(tok)
			return
		}
		p.done = true
		return
	case StartTagToken:
		p.inBodyStartTag(tok)
		return
	case EndTagToken:
		p.inBodyEndTag(tok)
		return
	}
}

func (p *Parser) inBodyStartTag(tok Token) {
	switch tok.TagName {
	case "html":
		p.reportTree("unexpected start tag html")
		if p.openElements.Len() > 0 && !p.openElements.ContainsTag("template") {
			root := (*dom.Element)(p.openElements.At(0))
			for _, a := range tok.Attributes {
				if !root.HasAttribute(a.Name) {
					root.SetAttribute(a.Name, a.Value)
				}
			}
		}
		return
	case "base", "basefont", "bgsound", "link", "meta", "noframes", "script",
		"style", "template", "title":
		p.inHead(tok)
		return
	case "body":
		p.reportTree("unexpected start tag body")
		return
	case "frameset":
		p.reportTree("unexpected start tag frameset")
		return
	case "address", "article", "aside", "blockquote", "center", "details",
		"dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure",
		"footer", "header", "hgroup", "main", "menu", "nav", "ol", "p",
		"section", "summary", "ul":
		p.closePElementIfInButtonScope()
		p.insertHTMLElement(tok)
		return
	case "h1", "h2", "h3", "h4", "h5", "h6":
		p.closePElementIfInButtonScope()
		if name := tagNameOf(p.currentNode()); name == "h1" || name == "h2" || name == "h3" ||
			name == "h4" || name == "h5" || name == "h6" {
			p.openElements.Pop()
		}
		p.insertHTMLElement(tok)
		return
	case "pre", "listing":
		p.closePElementIfInButtonScope()
		p.insertHTMLElement(tok)
		p.framesetOK = false
		return
	case "form":
		if p.formElementPointer != nil && !p.openElements.ContainsTag("template") {
			p.reportTree("nested form")
			return
		}
		p.closePElementIfInButtonScope()
		el := p.insertHTMLElement(tok)
		if !p.openElements.ContainsTag("template") {
			p.formElementPointer = el
		}
		return
	case "li":
		p.framesetOK = false
		for i := p.openElements.Len() - 1; i >= 0; i-- {
			node := p.openElements.At(i)
			name := tagNameOf(node)
			if name == "li" {
				p.generateImpliedEndTags("li")
				p.openElements.PopUntil("li")
				break
			}
			if isSpecialTag(name) && name != "address" && name != "div" && name != "p" {
				break
			}
		}
		p.closePElementIfInButtonScope()
		p.insertHTMLElement(tok)
		return
	case "dd", "dt":
		p.framesetOK = false
		for i := p.openElements.Len() - 1; i >= 0; i-- {
			node := p.openElements.At(i)
			name := tagNameOf(node)
			if name == "dd" || name == "dt" {
				p.generateImpliedEndTags(name)
				p.openElements.PopUntil(name)
				break
			}
			if isSpecialTag(name) && name != "address" && name != "div" && name != "p" {
				break
			}
		}
		p.closePElementIfInButtonScope()
		p.insertHTMLElement(tok)
		return
	case "plaintext":
		p.closePElementIfInButtonScope()
		p.insertHTMLElement(tok)
		p.tokenizer.SetState(PLAINTEXTState)
		return
	case "button":
		if p.openElements.HasElementInScope("button") {
			p.reportTree("nested button")
			p.generateImpliedEndTags("")
			p.openElements.PopUntil("button")
		}
		p.reconstructActiveFormattingElements()
		p.insertHTMLElement(tok)
		p.framesetOK = false
		return
	case "a":
		if idx := p.afe.IndexOf(p.lastAFEWithTag("a")); idx != -1 {
			element := p.afe.ElementAt(idx)
			p.reportTree("unexpected start tag a")
			p.runAdoptionAgency("a")
			p.afe.Remove(element)
			p.openElements.Remove(element)
		}
		p.reconstructActiveFormattingElements()
		el := p.insertHTMLElement(tok)
		p.afe.Push(el, tok)
		return
	case "b", "big", "code", "em", "font", "i", "s", "small", "strike",
		"strong", "tt", "u":
		p.reconstructActiveFormattingElements()
		el := p.insertHTMLElement(tok)
		p.afe.Push(el, tok)
		return
	case "nobr":
		p.reconstructActiveFormattingElements()
		if p.openElements.HasElementInScope("nobr") {
			p.reportTree("nested nobr")
			p.runAdoptionAgency("nobr")
			p.reconstructActiveFormattingElements()
		}
		el := p.insertHTMLElement(tok)
		p.afe.Push(el, tok)
		return
	case "applet", "marquee", "object":
		p.reconstructActiveFormattingElements()
		p.insertHTMLElement(tok)
		p.afe.PushMarker()
		p.framesetOK = false
		return
	case "table":
		p.closePElementIfInButtonScope()
		p.insertHTMLElement(tok)
		p.framesetOK = false
		p.insertionMode = InTable
		return
	case "area", "br", "embed", "img", "keygen", "wbr":
		p.reconstructActiveFormattingElements()
		p.insertHTMLElement(tok)
		p.openElements.Pop()
		acknowledgeSelfClosing(&tok)
		p.framesetOK = false
		return
	case "input":
		p.reconstructActiveFormattingElements()
		p.insertHTMLElement(tok)
		p.openElements.Pop()
		acknowledgeSelfClosing(&tok)
		typeAttr, _ := tok.AttributeValue("type")
		if !equalASCIIFold(typeAttr, "hidden") {
			p.framesetOK = false
		}
		return
	case "param", "source", "track":
		p.insertHTMLElement(tok)
		p.openElements.Pop()
		acknowledgeSelfClosing(&tok)
		return
	case "hr":
		p.closePElementIfInButtonScope()
		p.insertHTMLElement(tok)
		p.openElements.Pop()
		acknowledgeSelfClosing(&tok)
		p.framesetOK = false
		return
	case "image":
		p.reportTree("unexpected start tag image")
		tok.TagName = "img"
		p.inBodyStartTag(tok)
		return
	case "textarea":
		p.insertHTMLElement(tok)
		p.tokenizer.SetState(RCDATAState)
		p.tokenizer.SetLastStartTagName(tok.TagName)
		// A newline directly after the start tag is not dropped: this
		// tokenizer has no look-ahead for it, so the newline stays in the
		// textarea's content.
		p.framesetOK = false
		p.originalInsertionMode = p.insertionMode
		p.insertionMode = Text
		return
	case "xmp":
		p.closePElementIfInButtonScope()
		p.reconstructActiveFormattingElements()
		p.framesetOK = false
		p.parseRAWTEXTElement(tok)
		return
	case "iframe":
		p.framesetOK = false
		p.parseRAWTEXTElement(tok)
		return
	case "noembed":
		p.parseRAWTEXTElement(tok)
		return
	case "select":
		p.reconstructActiveFormattingElements()
		p.insertHTMLElement(tok)
		p.framesetOK = false
		switch p.insertionMode {
		case InTable, InCaption, InTableBody, InRow, InCell:
			p.insertionMode = InSelectInTable
		default:
			p.insertionMode = InSelect
		}
		return
	case "optgroup", "option":
		if tagNameOf(p.currentNode()) == "option" {
			p.openElements.Pop()
		}
		p.reconstructActiveFormattingElements()
		p.insertHTMLElement(tok)
		return
	case "rb", "rtc":
		if p.openElements.HasElementInScope("ruby") {
			p.generateImpliedEndTags("")
		}
		p.insertHTMLElement(tok)
		return
	case "rp", "rt":
		if p.openElements.HasElementInScope("ruby") {
			p.generateImpliedEndTags("rtc")
		}
		p.insertHTMLElement(tok)
		return
	case "math", "svg":
		// Foreign content subtrees are out of scope: math/svg elements are
		// inserted as ordinary HTML-namespace elements rather than
		// switching to MathML/SVG parsing rules.
		p.reconstructActiveFormattingElements()
		p.insertHTMLElement(tok)
		if tok.SelfClosing {
			if isVoidElement(tok.TagName) {
				p.openElements.Pop()
				acknowledgeSelfClosing(&tok)
			} else {
				p.reportTree("non-void-html-element-start-tag-with-trailing-solidus")
			}
		}
		return
	case "caption", "col", "colgroup", "frame", "head", "tbody", "td",
		"tfoot", "th", "thead", "tr":
		p.reportTree("unexpected start tag in body")
		return
	}
	p.reconstructActiveFormattingElements()
	p.insertHTMLElement(tok)
}

func (p *Parser) lastAFEWithTag(tagName string) *dom.Node {
	for i := p.afe.Len() - 1; i >= 0; i-- {
		if p.afe.IsMarkerAt(i) {
			return nil
		}
		if tagNameOf(p.afe.ElementAt(i)) == tagName {
			return p.afe.ElementAt(i)
		}
	}
	return nil
}

func equalASCIIFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func (p *Parser) inBodyEndTag(tok Token) {
	switch tok.TagName {
	case "template":
		p.endTemplateTag()
		return
	case "body":
		if !p.openElements.HasElementInScope("body") {
			p.reportTree("unmatched end tag body")
			return
		}
		p.insertionMode = AfterBody
		return
	case "html":
		if !p.openElements.HasElementInScope("body") {
			p.reportTree("unmatched end tag html")
			return
		}
		p.insertionMode = AfterBody
		p.dispatch(tok)
		return
	case "address", "article", "aside", "blockquote", "button", "center",
		"details", "dialog", "dir", "div", "dl", "fieldset", "figcaption",
		"figure", "footer", "header", "hgroup", "listing", "main", "menu",
		"nav", "ol", "pre", "section", "summary", "ul":
		if !p.openElements.HasElementInScope(tok.TagName) {
			p.reportTree("unmatched end tag")
			return
		}
		p.generateImpliedEndTags("")
		if tagNameOf(p.currentNode()) != tok.TagName {
			p.reportTree("mismatched end tag")
		}
		p.openElements.PopUntil(tok.TagName)
		return
	case "form":
		if !p.openElements.ContainsTag("template") {
			form := p.formElementPointer
			p.formElementPointer = nil
			if form == nil || !p.openElements.HasElementInScope("form") {
				p.reportTree("unmatched end tag form")
				return
			}
			p.generateImpliedEndTags("")
			if p.currentNode() != form {
				p.reportTree("mismatched end tag form")
			}
			p.openElements.Remove(form)
			return
		}
		if !p.openElements.HasElementInScope("form") {
			p.reportTree("unmatched end tag form")
			return
		}
		p.generateImpliedEndTags("")
		if tagNameOf(p.currentNode()) != "form" {
			p.reportTree("mismatched end tag form")
		}
		p.openElements.PopUntil("form")
		return
	case "p":
		if !p.openElements.HasElementInButtonScope("p") {
			p.reportTree("unmatched end tag p")
			el := p.insertHTMLElement(Token{Type: StartTagToken, TagName: "p"})
			_ = el
		}
		p.closePElement()
		return
	case "li":
		if !p.openElements.HasElementInListItemScope("li") {
			p.reportTree("unmatched end tag li")
			return
		}
		p.generateImpliedEndTags("li")
		if tagNameOf(p.currentNode()) != "li" {
			p.reportTree("mismatched end tag li")
		}
		p.openElements.PopUntil("li")
		return
	case "dd", "dt":
		if !p.openElements.HasElementInScope(tok.TagName) {
			p.reportTree("unmatched end tag")
			return
		}
		p.generateImpliedEndTags(tok.TagName)
		if tagNameOf(p.currentNode()) != tok.TagName {
			p.reportTree("mismatched end tag")
		}
		p.openElements.PopUntil(tok.TagName)
		return
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if !p.openElements.HasAnyElementInScope("h1", "h2", "h3", "h4", "h5", "h6") {
			p.reportTree("unmatched end tag heading")
			return
		}
		p.generateImpliedEndTags("")
		if tagNameOf(p.currentNode()) != tok.TagName {
			p.reportTree("mismatched end tag heading")
		}
		p.openElements.PopUntil("h1", "h2", "h3", "h4", "h5", "h6")
		return
	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small",
		"strike", "strong", "tt", "u":
		p.runAdoptionAgency(tok.TagName)
		return
	case "applet", "marquee", "object":
		if !p.openElements.HasElementInScope(tok.TagName) {
			p.reportTree("unmatched end tag")
			return
		}
		p.generateImpliedEndTags("")
		if tagNameOf(p.currentNode()) != tok.TagName {
			p.reportTree("mismatched end tag")
		}
		p.openElements.PopUntil(tok.TagName)
		p.afe.ClearToLastMarker()
		return
	case "br":
		p.reportTree("unexpected end tag br")
		p.reconstructActiveFormattingElements()
		p.insertHTMLElement(Token{Type: StartTagToken, TagName: "br"})
		p.openElements.Pop()
		p.framesetOK = false
		return
	}
	// "Any other end tag" clause: walk the stack looking for a matching
	// element, closing implied end tags along the way.
	for i := p.openElements.Len() - 1; i >= 0; i-- {
		node := p.openElements.At(i)
		name := tagNameOf(node)
		if name == tok.TagName {
			p.generateImpliedEndTags(tok.TagName)
			if p.currentNode() != node {
				p.reportTree("mismatched end tag")
			}
			p.openElements.PopUntilElement(node)
			return
		}
		if isSpecialTag(name) {
			p.reportTree("unmatched end tag")
			return
		}
	}
}

// inTable implements "the in table insertion mode".
func (p *Parser) inTable(tok Token) {
	switch tok.Type {
	case CharacterToken:
		if p.currentNodeIsHTML("table", "tbody", "tfoot", "thead", "tr") {
			p.pendingTableText = nil
			p.originalInsertionMode = p.insertionMode
			p.insertionMode = InTableText
			p.dispatch(tok)
			return
		}
	case CommentToken:
		p.insertComment(tok)
		return
	case DoctypeToken:
		p.reportTree("unexpected doctype in table")
		return
	case StartTagToken:
		switch tok.TagName {
		case "caption":
			p.openElements.ClearBackToTableContext()
			p.afe.PushMarker()
			p.insertHTMLElement(tok)
			p.insertionMode = InCaption
			return
		case "colgroup":
			p.openElements.ClearBackToTableContext()
			p.insertHTMLElement(tok)
			p.insertionMode = InColumnGroup
			return
		case "col":
			p.openElements.ClearBackToTableContext()
			p.insertHTMLElement(Token{Type: StartTagToken, TagName: "colgroup"})
			p.insertionMode = InColumnGroup
			p.dispatch(tok)
			return
		case "tbody", "tfoot", "thead":
			p.openElements.ClearBackToTableContext()
			p.insertHTMLElement(tok)
			p.insertionMode = InTableBody
			return
		case "td", "th", "tr":
			p.openElements.ClearBackToTableContext()
			p.insertHTMLElement(Token{Type: StartTagToken, TagName: "tbody"})
			p.insertionMode = InTableBody
			p.dispatch(tok)
			return
		case "table":
			p.reportTree("nested table start tag")
			if !p.openElements.HasElementInTableScope("table") {
				return
			}
			p.openElements.PopUntil("table")
			p.resetInsertionModeAppropriately()
			p.dispatch(tok)
			return
		case "style", "script", "template":
			p.inHead(tok)
			return
		case "input":
			typeAttr, _ := tok.AttributeValue("type")
			if !equalASCIIFold(typeAttr, "hidden") {
				break
			}
			p.reportTree("unexpected input in table")
			p.insertHTMLElement(tok)
			p.openElements.Pop()
			acknowledgeSelfClosing(&tok)
			return
		case "form":
			p.reportTree("unexpected form in table")
			if p.formElementPointer != nil || p.openElements.ContainsTag("template") {
				return
			}
			el := p.insertHTMLElement(tok)
			p.formElementPointer = el
			p.openElements.Pop()
			return
		}
	case EndTagToken:
		switch tok.TagName {
		case "table":
			if !p.openElements.HasElementInTableScope("table") {
				p.reportTree("unmatched end tag table")
				return
			}
			p.openElements.PopUntil("table")
			p.resetInsertionModeAppropriately()
			return
		case "body", "caption", "col", "colgroup", "html", "tbody", "td",
			"tfoot", "th", "thead", "tr":
			p.reportTree("unexpected end tag in table")
			return
		case "template":
			p.inHead(tok)
			return
		}
	case EOFToken:
		p.inBody(tok)
		return
	}
	p.reportTree("unexpected content in table triggers foster parenting")
	p.fosterParenting = true
	p.inBody(tok)
	p.fosterParenting = false
}

// inTableText implements "the in table text insertion mode": character
// tokens are buffered so an all-whitespace run can be inserted directly
// and a run containing non-whitespace can be reprocessed with foster
// parenting as a batch.
func (p *Parser) inTableText(tok Token) {
	if tok.Type == CharacterToken && tok.Char != 0 {
		p.pendingTableText = append(p.pendingTableText, tok.Char)
		return
	}
	anyNonWhitespace := false
	for _, c := range p.pendingTableText {
		if !isParserWhitespace(c) {
			anyNonWhitespace = true
			break
		}
	}
	if anyNonWhitespace {
		p.fosterParenting = true
		for _, c := range p.pendingTableText {
			p.reconstructActiveFormattingElements()
			p.insertCharacter(c)
			p.framesetOK = false
		}
		p.fosterParenting = false
	} else {
		for _, c := range p.pendingTableText {
			p.insertCharacter(c)
		}
	}
	p.pendingTableText = nil
	p.insertionMode = p.originalInsertionMode
	p.dispatch(tok)
}

// inCaption implements "the in caption insertion mode".
func (p *Parser) inCaption(tok Token) {
	switch tok.Type {
	case StartTagToken:
		switch tok.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th",
			"thead", "tr":
			p.closeCaptionIfPossible()
			p.dispatch(tok)
			return
		}
	case EndTagToken:
		switch tok.TagName {
		case "caption":
			p.closeCaptionIfPossible()
			return
		case "table":
			p.closeCaptionIfPossible()
			p.dispatch(tok)
			return
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot",
			"th", "thead", "tr":
			p.reportTree("unexpected end tag in caption")
			return
		}
	}
	p.inBody(tok)
}

func (p *Parser) closeCaptionIfPossible() {
	if !p.openElements.HasElementInTableScope("caption") {
		p.reportTree("unmatched end tag caption")
		return
	}
	p.generateImpliedEndTags("")
	if tagNameOf(p.currentNode()) != "caption" {
		p.reportTree("mismatched end tag caption")
	}
	p.openElements.PopUntil("caption")
	p.afe.ClearToLastMarker()
	p.insertionMode = InTable
}

// inColumnGroup implements "the in column group insertion mode".
func (p *Parser) inColumnGroup(tok Token) {
	switch tok.Type {
	case CharacterToken:
		if isParserWhitespace(tok.Char) {
			p.insertCharacter(tok.Char)
			return
		}
	case CommentToken:
		p.insertComment(tok)
		return
	case DoctypeToken:
		p.reportTree("unexpected doctype in column group")
		return
	case StartTagToken:
		switch tok.TagName {
		case "html":
			p.inBody(tok)
			return
		case "col":
			p.insertHTMLElement(tok)
			p.openElements.Pop()
			acknowledgeSelfClosing(&tok)
			return
		case "template":
			p.inHead(tok)
			return
		}
	case EndTagToken:
		switch tok.TagName {
		case "colgroup":
			if tagNameOf(p.currentNode()) != "colgroup" {
				p.reportTree("unmatched end tag colgroup")
				return
			}
			p.openElements.Pop()
			p.insertionMode = InTable
			return
		case "col":
			p.reportTree("unexpected end tag col")
			return
		case "template":
			p.inHead(tok)
			return
		}
	case EOFToken:
		p.inBody(tok)
		return
	}
	if tagNameOf(p.currentNode()) != "colgroup" {
		p.reportTree("unexpected token in column group")
		return
	}
	p.openElements.Pop()
	p.insertionMode = InTable
	p.dispatch(tok)
}

// inTableBody implements "the in table body insertion mode".
func (p *Parser) inTableBody(tok Token) {
	switch tok.Type {
	case StartTagToken:
		switch tok.TagName {
		case "tr":
			p.openElements.ClearBackToTableBodyContext()
			p.insertHTMLElement(tok)
			p.insertionMode = InRow
			return
		case "th", "td":
			p.reportTree("unexpected cell start tag in table body")
			p.openElements.ClearBackToTableBodyContext()
			p.insertHTMLElement(Token{Type: StartTagToken, TagName: "tr"})
			p.insertionMode = InRow
			p.dispatch(tok)
			return
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if !p.openElements.HasAnyElementInScope("tbody", "thead", "tfoot") {
				p.reportTree("unmatched context in table body")
				return
			}
			p.openElements.ClearBackToTableBodyContext()
			p.openElements.Pop()
			p.insertionMode = InTable
			p.dispatch(tok)
			return
		}
	case EndTagToken:
		switch tok.TagName {
		case "tbody", "tfoot", "thead":
			if !p.openElements.ContainsTag(tok.TagName) {
				p.reportTree("unmatched end tag in table body")
				return
			}
			p.openElements.ClearBackToTableBodyContext()
			p.openElements.Pop()
			p.insertionMode = InTable
			return
		case "table":
			if !p.openElements.HasAnyElementInScope("tbody", "thead", "tfoot") {
				p.reportTree("unmatched end tag table")
				return
			}
			p.openElements.ClearBackToTableBodyContext()
			p.openElements.Pop()
			p.insertionMode = InTable
			p.dispatch(tok)
			return
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			p.reportTree("unexpected end tag in table body")
			return
		}
	}
	p.inTable(tok)
}

// inRow implements "the in row insertion mode".
func (p *Parser) inRow(tok Token) {
	switch tok.Type {
	case StartTagToken:
		switch tok.TagName {
		case "th", "td":
			p.openElements.ClearBackToTableRowContext()
			p.insertHTMLElement(tok)
			p.insertionMode = InCell
			p.afe.PushMarker()
			return
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !p.openElements.HasElementInTableScope("tr") {
				p.reportTree("unmatched context in row")
				return
			}
			p.openElements.ClearBackToTableRowContext()
			p.openElements.Pop()
			p.insertionMode = InTableBody
			p.dispatch(tok)
			return
		}
	case EndTagToken:
		switch tok.TagName {
		case "tr":
			if !p.openElements.HasElementInTableScope("tr") {
				p.reportTree("unmatched end tag tr")
				return
			}
			p.openElements.ClearBackToTableRowContext()
			p.openElements.Pop()
			p.insertionMode = InTableBody
			return
		case "table":
			if !p.openElements.HasElementInTableScope("tr") {
				p.reportTree("unmatched end tag table")
				return
			}
			p.openElements.ClearBackToTableRowContext()
			p.openElements.Pop()
			p.insertionMode = InTableBody
			p.dispatch(tok)
			return
		case "tbody", "tfoot", "thead":
			if !p.openElements.ContainsTag(tok.TagName) || !p.openElements.HasElementInTableScope("tr") {
				p.reportTree("unmatched end tag in row")
				return
			}
			p.openElements.ClearBackToTableRowContext()
			p.openElements.Pop()
			p.insertionMode = InTableBody
			p.dispatch(tok)
			return
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			p.reportTree("unexpected end tag in row")
			return
		}
	}
	p.inTable(tok)
}

// inCell implements "the in cell insertion mode".
func (p *Parser) inCell(tok Token) {
	switch tok.Type {
	case StartTagToken:
		switch tok.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th",
			"thead", "tr":
			p.closeCellIfPossible()
			p.dispatch(tok)
			return
		}
	case EndTagToken:
		switch tok.TagName {
		case "td", "th":
			if !p.openElements.HasElementInTableScope(tok.TagName) {
				p.reportTree("unmatched end tag cell")
				return
			}
			p.generateImpliedEndTags("")
			if tagNameOf(p.currentNode()) != tok.TagName {
				p.reportTree("mismatched end tag cell")
			}
			p.openElements.PopUntil(tok.TagName)
			p.afe.ClearToLastMarker()
			p.insertionMode = InRow
			return
		case "body", "caption", "col", "colgroup", "html":
			p.reportTree("unexpected end tag in cell")
			return
		case "table", "tbody", "tfoot", "thead", "tr":
			if !p.openElements.HasElementInTableScope(tok.TagName) {
				p.reportTree("unmatched end tag in cell")
				return
			}
			p.closeCellIfPossible()
			p.dispatch(tok)
			return
		}
	}
	p.inBody(tok)
}

func (p *Parser) closeCellIfPossible() {
	var cell string
	if p.openElements.HasElementInTableScope("td") {
		cell = "td"
	} else if p.openElements.HasElementInTableScope("th") {
		cell = "th"
	} else {
		p.reportTree("no open cell to close")
		return
	}
	p.generateImpliedEndTags("")
	p.openElements.PopUntil(cell)
	p.afe.ClearToLastMarker()
	p.insertionMode = InRow
}

// inSelect implements "the in select insertion mode".
func (p *Parser) inSelect(tok Token) {
	switch tok.Type {
	case CharacterToken:
		if tok.Char == 0 {
			p.reportTree("unexpected null character in select")
			return
		}
		p.insertCharacter(tok.Char)
		return
	case CommentToken:
		p.insertComment(tok)
		return
	case DoctypeToken:
		p.reportTree("unexpected doctype in select")
		return
	case EOFToken:
		p.inBody(tok)
		return
	case StartTagToken:
		switch tok.TagName {
		case "html":
			p.inBody(tok)
			return
		case "option":
			if tagNameOf(p.currentNode()) == "option" {
				p.openElements.Pop()
			}
			p.insertHTMLElement(tok)
			return
		case "optgroup":
			if tagNameOf(p.currentNode()) == "option" {
				p.openElements.Pop()
			}
			if tagNameOf(p.currentNode()) == "optgroup" {
				p.openElements.Pop()
			}
			p.insertHTMLElement(tok)
			return
		case "select":
			p.reportTree("nested select start tag")
			if !p.openElements.HasElementInSelectScope("select") {
				return
			}
			p.openElements.PopUntil("select")
			p.resetInsertionModeAppropriately()
			return
		case "input", "keygen", "textarea":
			p.reportTree("unexpected start tag in select")
			if !p.openElements.HasElementInSelectScope("select") {
				return
			}
			p.openElements.PopUntil("select")
			p.resetInsertionModeAppropriately()
			p.dispatch(tok)
			return
		case "script", "template":
			p.inHead(tok)
			return
		}
	case EndTagToken:
		switch tok.TagName {
		case "optgroup":
			if tagNameOf(p.currentNode()) == "option" && p.openElements.Len() > 1 &&
				tagNameOf(p.openElements.At(p.openElements.Len()-2)) == "optgroup" {
				p.openElements.Pop()
			}
			if tagNameOf(p.currentNode()) == "optgroup" {
				p.openElements.Pop()
			} else {
				p.reportTree("unmatched end tag optgroup")
			}
			return
		case "option":
			if tagNameOf(p.currentNode()) == "option" {
				p.openElements.Pop()
			} else {
				p.reportTree("unmatched end tag option")
			}
			return
		case "select":
			if !p.openElements.HasElementInSelectScope("select") {
				p.reportTree("unmatched end tag select")
				return
			}
			p.openElements.PopUntil("select")
			p.resetInsertionModeAppropriately()
			return
		case "template":
			p.inHead(tok)
			return
		}
	}
	p.reportTree("unexpected token in select")
}

// inSelectInTable implements "the in select in table insertion mode".
func (p *Parser) inSelectInTable(tok Token) {
	switch tok.Type {
	case StartTagToken:
		switch tok.TagName {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			p.reportTree("unexpected start tag in select-in-table")
			p.openElements.PopUntil("select")
			p.resetInsertionModeAppropriately()
			p.dispatch(tok)
			return
		}
	case EndTagToken:
		switch tok.TagName {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			p.reportTree("unexpected end tag in select-in-table")
			if !p.openElements.HasElementInTableScope(tok.TagName) {
				return
			}
			p.openElements.PopUntil("select")
			p.resetInsertionModeAppropriately()
			p.dispatch(tok)
			return
		}
	}
	p.inSelect(tok)
}

// inTemplate implements "the in template insertion mode".
func (p *Parser) inTemplate(tok Token) {
	switch tok.Type {
	case CharacterToken, CommentToken, DoctypeToken:
		p.inBody(tok)
		return
	case StartTagToken:
		switch tok.TagName {
		case "base", "basefont", "bgsound", "link", "meta", "noframes",
			"script", "style", "template", "title":
			p.inHead(tok)
			return
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			p.switchTemplateMode(InTable, tok)
			return
		case "col":
			p.switchTemplateMode(InColumnGroup, tok)
			return
		case "tr":
			p.switchTemplateMode(InTableBody, tok)
			return
		case "td", "th":
			p.switchTemplateMode(InRow, tok)
			return
		}
		p.switchTemplateMode(InBody, tok)
		return
	case EndTagToken:
		if tok.TagName == "template" {
			p.endTemplateTag()
			return
		}
		p.reportTree("unexpected end tag in template")
		return
	case EOFToken:
		if !p.openElements.ContainsTag("template") {
			p.done = true
			return
		}
		p.reportTree("unexpected eof in template")
		p.generateAllImpliedEndTagsThoroughly()
		p.openElements.PopUntil("template")
		p.afe.ClearToLastMarker()
		if len(p.templateModeStack) > 0 {
			p.templateModeStack = p.templateModeStack[:len(p.templateModeStack)-1]
		}
		p.resetInsertionModeAppropriately()
		p.dispatch(tok)
		return
	}
}

func (p *Parser) switchTemplateMode(mode InsertionMode, tok Token) {
	if len(p.templateModeStack) > 0 {
		p.templateModeStack[len(p.templateModeStack)-1] = mode
	}
	p.insertionMode = mode
	p.dispatch(tok)
}

// inAfterBody implements "the after body insertion mode".
func (p *Parser) inAfterBody(tok Token) {
	switch tok.Type {
	case CharacterToken:
		if isParserWhitespace(tok.Char) {
			p.inBody(tok)
			return
		}
	case CommentToken:
		p.insertCommentInto(tok, p.openElements.At(0))
		return
	case DoctypeToken:
		p.reportTree("unexpected doctype after body")
		return
	case StartTagToken:
		if tok.TagName == "html" {
			p.inBody(tok)
			return
		}
	case EndTagToken:
		if tok.TagName == "html" {
			p.insertionMode = AfterAfterBody
			return
		}
	case EOFToken:
		p.done = true
		return
	}
	p.reportTree("unexpected token after body")
	p.insertionMode = InBody
	p.dispatch(tok)
}

// inFrameset implements "the in frameset insertion mode".
func (p *Parser) inFrameset(tok Token) {
	switch tok.Type {
	case CharacterToken:
		if isParserWhitespace(tok.Char) {
			p.insertCharacter(tok.Char)
			return
		}
	case CommentToken:
		p.insertComment(tok)
		return
	case DoctypeToken:
		p.reportTree("unexpected doctype in frameset")
		return
	case StartTagToken:
		switch tok.TagName {
		case "html":
			p.inBody(tok)
			return
		case "frameset":
			p.insertHTMLElement(tok)
			return
		case "frame":
			p.insertHTMLElement(tok)
			p.openElements.Pop()
			acknowledgeSelfClosing(&tok)
			return
		case "noframes":
			p.inHead(tok)
			return
		}
	case EndTagToken:
		if tok.TagName == "frameset" {
			if p.openElements.Len() == 1 {
				p.reportTree("unexpected end tag frameset at root")
				return
			}
			p.openElements.Pop()
			if tagNameOf(p.currentNode()) != "frameset" {
				p.insertionMode = AfterFrameset
			}
			return
		}
	case EOFToken:
		p.done = true
		return
	}
	p.reportTree("unexpected token in frameset")
}

// inAfterFrameset implements "the after frameset insertion mode".
func (p *Parser) inAfterFrameset(tok Token) {
	switch tok.Type {
	case CharacterToken:
		if isParserWhitespace(tok.Char) {
			p.insertCharacter(tok.Char)
			return
		}
	case CommentToken:
		p.insertComment(tok)
		return
	case DoctypeToken:
		p.reportTree("unexpected doctype after frameset")
		return
	case StartTagToken:
		switch tok.TagName {
		case "html":
			p.inBody(tok)
			return
		case "noframes":
			p.inHead(tok)
			return
		}
	case EndTagToken:
		if tok.TagName == "html" {
			p.insertionMode = AfterAfterFrameset
			return
		}
	case EOFToken:
		p.done = true
		return
	}
	p.reportTree("unexpected token after frameset")
}

// inAfterAfterBody implements "the after after body insertion mode".
func (p *Parser) inAfterAfterBody(tok Token) {
	switch tok.Type {
	case CommentToken:
		p.insertCommentInto(tok, p.doc.AsNode())
		return
	case DoctypeToken:
		p.inBody(tok)
		return
	case CharacterToken:
		if isParserWhitespace(tok.Char) {
			p.inBody(tok)
			return
		}
	case StartTagToken:
		if tok.TagName == "html" {
			p.inBody(tok)
			return
		}
	case EOFToken:
		p.done = true
		return
	}
	p.reportTree("unexpected token after after body")
	p.insertionMode = InBody
	p.dispatch(tok)
}

// inAfterAfterFrameset implements "the after after frameset insertion
// mode".
func (p *Parser) inAfterAfterFrameset(tok Token) {
	switch tok.Type {
	case CommentToken:
		p.insertCommentInto(tok, p.doc.AsNode())
		return
	case DoctypeToken:
		p.inBody(tok)
		return
	case CharacterToken:
		if isParserWhitespace(tok.Char) {
			p.inBody(tok)
			return
		}
	case StartTagToken:
		switch tok.TagName {
		case "html":
			p.inBody(tok)
			return
		case "noframes":
			p.inHead(tok)
			return
		}
	case EOFToken:
		p.done = true
		return
	}
	p.reportTree("unexpected token after after frameset")
}
