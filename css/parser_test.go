package css

import (
	"strings"
	"testing"

	"github.com/basalthq/webcore/diag"
)

func TestParseAStylesheetSimpleRule(t *testing.T) {
	sheet := ParseAStylesheet("body { color: red; margin: 0 }", diag.Discard)
	if len(sheet.Rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(sheet.Rules))
	}
	rule, ok := sheet.Rules[0].(QualifiedRule)
	if !ok {
		t.Fatalf("rule is %T, want QualifiedRule", sheet.Rules[0])
	}
	if rule.Block == nil {
		t.Fatalf("rule has no block")
	}

	decls := ParseAListOfDeclarationsFromTokens(rule.Block.Tokens)
	if len(decls) != 2 {
		t.Fatalf("got %d declarations, want 2", len(decls))
	}
	color, ok := decls[0].(Declaration)
	if !ok || color.Name != "color" {
		t.Fatalf("first declaration = %+v, want name color", decls[0])
	}
	if color.Important {
		t.Errorf("color declaration marked !important, want false")
	}
}

func TestParseDeclarationImportant(t *testing.T) {
	decls := ParseAListOfDeclarations("color: red !important; margin: 0", diag.Discard)
	if len(decls) != 2 {
		t.Fatalf("got %d declarations, want 2", len(decls))
	}
	color := decls[0].(Declaration)
	if !color.Important {
		t.Errorf("color.Important = false, want true")
	}
	margin := decls[1].(Declaration)
	if margin.Important {
		t.Errorf("margin.Important = true, want false")
	}
}

func TestParseDeclarationImportantWithWhitespace(t *testing.T) {
	decls := ParseAListOfDeclarations("color: red !  important", diag.Discard)
	if len(decls) != 1 {
		t.Fatalf("got %d declarations, want 1", len(decls))
	}
	color := decls[0].(Declaration)
	if !color.Important {
		t.Errorf("color.Important = false, want true for '! important' with interior whitespace")
	}
}

func TestParseCustomPropertyPreservesOriginalText(t *testing.T) {
	decls := ParseAListOfDeclarations("--main-color: #336699", diag.Discard)
	if len(decls) != 1 {
		t.Fatalf("got %d declarations, want 1", len(decls))
	}
	d := decls[0].(Declaration)
	if !d.IsCustomProperty() {
		t.Errorf("IsCustomProperty() = false for %q, want true", d.Name)
	}
	if d.OriginalText != "#336699" {
		t.Errorf("OriginalText = %q, want %q", d.OriginalText, "#336699")
	}
}

func TestParseVarFunctionReference(t *testing.T) {
	decls := ParseAListOfDeclarations("color: var(--main-color, blue)", diag.Discard)
	if len(decls) != 1 {
		t.Fatalf("got %d declarations, want 1", len(decls))
	}
	d := decls[0].(Declaration)
	if len(d.Value) != 1 {
		t.Fatalf("got %d component values, want 1 (the var() function)", len(d.Value))
	}
	fn, ok := d.Value[0].(Function)
	if !ok {
		t.Fatalf("value is %T, want Function", d.Value[0])
	}
	if fn.Name != "var" {
		t.Errorf("function name = %q, want %q", fn.Name, "var")
	}
}

func TestTokenStreamMarkRestore(t *testing.T) {
	s := NewTokenStream("a b c", diag.Discard)
	s.Mark()
	first := s.ConsumeToken()
	if first.Type != TokenIdent || first.Value != "a" {
		t.Fatalf("first token = %+v, want ident a", first)
	}
	s.RestoreMark()
	replay := s.ConsumeToken()
	if replay.Type != TokenIdent || replay.Value != "a" {
		t.Fatalf("after RestoreMark, token = %+v, want ident a again", replay)
	}
}

func TestConsumeQualifiedRuleReturnsNilOnEOF(t *testing.T) {
	s := NewTokenStream("body", diag.Discard)
	rule := consumeQualifiedRule(s)
	if rule != nil {
		t.Fatalf("expected nil for a qualified rule with no block, got %+v", rule)
	}
}

func TestParseAStylesheetTwoRulesWithImportantAndComment(t *testing.T) {
	sheet := ParseAStylesheet("a { color: red !important; } /*c*/ b{font-size:10px}", diag.Discard)
	if len(sheet.Rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(sheet.Rules))
	}

	rule1, ok := sheet.Rules[0].(QualifiedRule)
	if !ok {
		t.Fatalf("rule 1 is %T, want QualifiedRule", sheet.Rules[0])
	}
	foundIdentA := false
	for _, cv := range rule1.Prelude {
		if pt, ok := cv.(PreservedToken); ok && pt.Token.Type == TokenIdent && pt.Token.Value == "a" {
			foundIdentA = true
		}
	}
	if !foundIdentA {
		t.Errorf("rule 1 prelude = %+v, want an Ident(a)", rule1.Prelude)
	}
	decls1 := ParseAListOfDeclarationsFromTokens(rule1.Block.Tokens)
	if len(decls1) != 1 {
		t.Fatalf("rule 1 has %d declarations, want 1", len(decls1))
	}
	color := decls1[0].(Declaration)
	if color.Name != "color" || !color.Important {
		t.Errorf("rule 1 declaration = %+v, want name=color important=true", color)
	}
	foundIdentRed := false
	for _, cv := range color.Value {
		if pt, ok := cv.(PreservedToken); ok && pt.Token.Type == TokenIdent && pt.Token.Value == "red" {
			foundIdentRed = true
		}
	}
	if !foundIdentRed {
		t.Errorf("color value = %+v, want an Ident(red)", color.Value)
	}

	rule2, ok := sheet.Rules[1].(QualifiedRule)
	if !ok {
		t.Fatalf("rule 2 is %T, want QualifiedRule", sheet.Rules[1])
	}
	decls2 := ParseAListOfDeclarationsFromTokens(rule2.Block.Tokens)
	if len(decls2) != 1 {
		t.Fatalf("rule 2 has %d declarations, want 1", len(decls2))
	}
	fontSize := decls2[0].(Declaration)
	if fontSize.Name != "font-size" || fontSize.Important {
		t.Errorf("rule 2 declaration = %+v, want name=font-size important=false", fontSize)
	}
	foundDimension := false
	for _, cv := range fontSize.Value {
		if pt, ok := cv.(PreservedToken); ok && pt.Token.Type == TokenDimension &&
			pt.Token.NumValue == 10 && pt.Token.NumType == NumberInteger && pt.Token.Unit == "px" {
			foundDimension = true
		}
	}
	if !foundDimension {
		t.Errorf("font-size value = %+v, want Dimension{10, Integer, px}", fontSize.Value)
	}
}

func TestParseAStylesheetCustomPropertyAndVarReference(t *testing.T) {
	sheet := ParseAStylesheet(".x { --my-var: 1 2 3; color: var(--my-var); }", diag.Discard)
	if len(sheet.Rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(sheet.Rules))
	}
	rule := sheet.Rules[0].(QualifiedRule)
	decls := ParseAListOfDeclarationsFromTokens(rule.Block.Tokens)
	if len(decls) != 2 {
		t.Fatalf("got %d declarations, want 2", len(decls))
	}

	myVar := decls[0].(Declaration)
	if myVar.Name != "--my-var" {
		t.Fatalf("first declaration name = %q, want --my-var", myVar.Name)
	}
	if strings.TrimSpace(myVar.OriginalText) != "1 2 3" {
		t.Errorf("OriginalText = %q, want \"1 2 3\"", myVar.OriginalText)
	}

	color := decls[1].(Declaration)
	if color.Name != "color" {
		t.Fatalf("second declaration name = %q, want color", color.Name)
	}
	if len(color.Value) != 1 {
		t.Fatalf("color.Value = %+v, want exactly one component value", color.Value)
	}
	fn, ok := color.Value[0].(Function)
	if !ok || fn.Name != "var" {
		t.Fatalf("color.Value[0] = %+v, want Function{Name: \"var\"}", color.Value[0])
	}
	foundCustomIdent := false
	for _, v := range fn.Values {
		if pt, ok := v.(PreservedToken); ok && pt.Token.Type == TokenIdent && pt.Token.Value == "--my-var" {
			foundCustomIdent = true
		}
	}
	if !foundCustomIdent {
		t.Errorf("var() arguments = %+v, want Ident(--my-var)", fn.Values)
	}
}
