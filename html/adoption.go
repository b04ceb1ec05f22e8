package html

import "github.com/basalthq/webcore/dom"

// runAdoptionAgency implements the adoption agency algorithm for the end
// tag named subject:
// https://html.spec.whatwg.org/multipage/parsing.html#adoption-agency-algorithm
func (p *Parser) runAdoptionAgency(subject string) {
	if tagNameOf(p.currentNode()) == subject && p.afe.IndexOf(p.currentNode()) == -1 {
		p.openElements.Pop()
		return
	}

	for outer := 0; outer < 8; outer++ {
		formattingElement := p.findFormattingElement(subject)
		if formattingElement == nil {
			p.inBodyEndTagAnyOther(subject)
			return
		}
		feIndex := p.openElements.indexOf(formattingElement)
		if feIndex == -1 {
			p.reportTree("adoption agency: formatting element not on stack")
			p.afe.Remove(formattingElement)
			return
		}
		if !p.openElements.HasElementInScope(tagNameOf(formattingElement)) {
			p.reportTree("adoption agency: formatting element not in scope")
			return
		}
		if p.currentNode() != formattingElement {
			p.reportTree("adoption agency: formatting element not current node")
		}

		furthestBlock := p.findFurthestBlock(feIndex)
		if furthestBlock == nil {
			p.openElements.PopUntilElement(formattingElement)
			p.afe.Remove(formattingElement)
			return
		}

		commonAncestor := p.openElements.At(feIndex - 1)
		bookmark := p.afe.IndexOf(formattingElement)

		node := furthestBlock
		lastNode := furthestBlock
		nodeIndex := p.openElements.indexOf(node)

		for innerLoop := 0; ; innerLoop++ {
			nodeIndex--
			if nodeIndex < 0 {
				break
			}
			node = p.openElements.At(nodeIndex)
			if node == formattingElement {
				break
			}
			afeIdx := p.afe.IndexOf(node)
			if innerLoop >= 3 && afeIdx != -1 {
				p.afe.Remove(node)
				afeIdx = -1
			}
			if afeIdx == -1 {
				p.openElements.Remove(node)
				continue
			}
			clone := p.cloneFormattingElement(node)
			p.afe.SetElementAt(afeIdx, clone)
			p.replaceOnStack(node, clone)
			node = clone
			if lastNode == furthestBlock {
				bookmark = p.afe.IndexOf(clone) + 1
			}
			p.detachFromParent(lastNode)
			p.appendChild(node, lastNode)
			lastNode = node
		}

		p.detachFromParent(lastNode)
		parent, before := p.fosterOrOrdinaryInsertionPoint(commonAncestor)
		if parent != nil {
			if err := p.doc.Arena().InsertBefore(lastNode, parent, before); err != nil {
				p.reportTree(err.Error())
			}
		}

		clone := p.cloneFormattingElement(formattingElement)
		p.moveAllChildren(furthestBlock, clone)
		if err := p.doc.Arena().Append(clone, furthestBlock); err != nil {
			p.reportTree(err.Error())
		}

		p.afe.Remove(formattingElement)
		if bookmark < 0 || bookmark > p.afe.Len() {
			bookmark = p.afe.Len()
		}
		p.afe.InsertAfter(p.elementBeforeBookmark(bookmark), clone, p.tokenForElement(formattingElement))

		p.openElements.Remove(formattingElement)
		p.openElements.InsertAfter(furthestBlock, clone)
	}
}

// findFormattingElement implements step 4 ("identify the formatting
// element"): the last element in the list of active formatting elements,
// below the last marker, whose tag name matches subject.
func (p *Parser) findFormattingElement(subject string) *dom.Node {
	for i := p.afe.Len() - 1; i >= 0; i-- {
		if p.afe.IsMarkerAt(i) {
			return nil
		}
		if tagNameOf(p.afe.ElementAt(i)) == subject {
			return p.afe.ElementAt(i)
		}
	}
	return nil
}

// findFurthestBlock implements step 7: the topmost (lowest index) element
// above feIndex on the stack that is in the special category.
func (p *Parser) findFurthestBlock(feIndex int) *dom.Node {
	var furthest *dom.Node
	for i := feIndex + 1; i < p.openElements.Len(); i++ {
		if isSpecialTag(tagNameOf(p.openElements.At(i))) {
			furthest = p.openElements.At(i)
			break
		}
	}
	return furthest
}

func (p *Parser) cloneFormattingElement(n *dom.Node) *dom.Node {
	el := (*dom.Element)(n)
	clone := p.doc.CreateElementNS(el.NamespaceURI(), el.LocalName())
	for _, a := range el.Attributes() {
		clone.SetAttribute(a.Name, a.Value)
	}
	return clone.AsNode()
}

func (p *Parser) replaceOnStack(old, replacement *dom.Node) {
	for i := 0; i < p.openElements.Len(); i++ {
		if p.openElements.At(i) == old {
			p.openElements.elements[i] = replacement
			return
		}
	}
}

func (p *Parser) detachFromParent(n *dom.Node) {
	if n.ParentNode() != nil {
		p.doc.Arena().Remove(n)
	}
}

func (p *Parser) appendChild(parent, child *dom.Node) {
	if err := p.doc.Arena().Append(child, parent); err != nil {
		p.reportTree(err.Error())
	}
}

func (p *Parser) moveAllChildren(from, to *dom.Node) {
	for _, child := range append([]*dom.Node{}, from.ChildNodes()...) {
		if err := p.doc.Arena().Append(child, to); err != nil {
			p.reportTree(err.Error())
		}
	}
}

// fosterOrOrdinaryInsertionPoint implements step 13's "insert lastNode at
// the appropriate place for inserting a node, with commonAncestor as the
// override target".
func (p *Parser) fosterOrOrdinaryInsertionPoint(commonAncestor *dom.Node) (parent, before *dom.Node) {
	if p.fosterParenting && currentNodeNeedsFosterParenting(commonAncestor) {
		for i := p.openElements.Len() - 1; i >= 0; i-- {
			if tagNameOf(p.openElements.At(i)) == "table" {
				table := p.openElements.At(i)
				if tp := table.ParentNode(); tp != nil {
					return tp, table
				}
				if i > 0 {
					return p.openElements.At(i - 1), nil
				}
			}
		}
		return p.openElements.At(0), nil
	}
	return commonAncestor, nil
}

func (p *Parser) elementBeforeBookmark(bookmark int) *dom.Node {
	if bookmark <= 0 || bookmark > p.afe.Len() {
		return nil
	}
	idx := bookmark - 1
	if idx < 0 || p.afe.IsMarkerAt(idx) {
		return nil
	}
	return p.afe.ElementAt(idx)
}

func (p *Parser) tokenForElement(n *dom.Node) Token {
	el := (*dom.Element)(n)
	attrs := make([]Attribute, 0, len(el.Attributes()))
	for _, a := range el.Attributes() {
		attrs = append(attrs, Attribute{Name: a.Name, Value: a.Value})
	}
	return Token{Type: StartTagToken, TagName: el.LocalName(), Attributes: attrs}
}

// inBodyEndTagAnyOther runs the "any other end tag" clause of the in body
// insertion mode, used when the adoption agency algorithm finds no
// matching formatting element.
func (p *Parser) inBodyEndTagAnyOther(tagName string) {
	for i := p.openElements.Len() - 1; i >= 0; i-- {
		node := p.openElements.At(i)
		name := tagNameOf(node)
		if name == tagName {
			p.generateImpliedEndTags(tagName)
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
