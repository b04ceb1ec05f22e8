package html

import "testing"

func collectTokens(t *testing.T, input string) []Token {
	t.Helper()
	tok := NewTokenizer(input, nil)
	var tokens []Token
	for {
		tk := tok.NextToken()
		tokens = append(tokens, tk)
		if tk.Type == EOFToken {
			return tokens
		}
	}
}

func TestTokenizerSimpleStartAndEndTag(t *testing.T) {
	tokens := collectTokens(t, "<p>hi</p>")
	if tokens[0].Type != StartTagToken || tokens[0].TagName != "p" {
		t.Fatalf("tokens[0] = %+v, want start tag p", tokens[0])
	}
	if tokens[1].Type != CharacterToken || tokens[1].Char != 'h' {
		t.Fatalf("tokens[1] = %+v, want character h", tokens[1])
	}
	if tokens[2].Type != CharacterToken || tokens[2].Char != 'i' {
		t.Fatalf("tokens[2] = %+v, want character i", tokens[2])
	}
	if tokens[3].Type != EndTagToken || tokens[3].TagName != "p" {
		t.Fatalf("tokens[3] = %+v, want end tag p", tokens[3])
	}
}

func TestTokenizerAttributes(t *testing.T) {
	tokens := collectTokens(t, `<img src="x.png" alt='a dog'>`)
	tag := tokens[0]
	if tag.Type != StartTagToken || tag.TagName != "img" {
		t.Fatalf("tag = %+v, want start tag img", tag)
	}
	src, ok := tag.AttributeValue("src")
	if !ok || src != "x.png" {
		t.Errorf("src = %q, %v, want x.png, true", src, ok)
	}
	alt, ok := tag.AttributeValue("alt")
	if !ok || alt != "a dog" {
		t.Errorf("alt = %q, %v, want \"a dog\", true", alt, ok)
	}
}

func TestTokenizerSelfClosingFlag(t *testing.T) {
	tokens := collectTokens(t, `<br/>`)
	if !tokens[0].SelfClosing {
		t.Errorf("SelfClosing = false, want true")
	}
}

func TestTokenizerDoctype(t *testing.T) {
	tokens := collectTokens(t, "<!DOCTYPE html>")
	dt := tokens[0]
	if dt.Type != DoctypeToken {
		t.Fatalf("tokens[0].Type = %v, want DoctypeToken", dt.Type)
	}
	if !dt.DoctypeNameSet || dt.DoctypeName != "html" {
		t.Errorf("DoctypeName = %q, set=%v, want html, true", dt.DoctypeName, dt.DoctypeNameSet)
	}
}

func TestTokenizerComment(t *testing.T) {
	tokens := collectTokens(t, "<!-- hello -->")
	if tokens[0].Type != CommentToken || tokens[0].CommentData != " hello " {
		t.Fatalf("tokens[0] = %+v, want comment ' hello '", tokens[0])
	}
}

func TestTokenizerNamedCharacterReferenceInData(t *testing.T) {
	tokens := collectTokens(t, "a&amp;b")
	var chars []rune
	for _, tk := range tokens {
		if tk.Type == CharacterToken {
			chars = append(chars, tk.Char)
		}
	}
	got := string(chars)
	if got != "a&b" {
		t.Fatalf("decoded characters = %q, want %q", got, "a&b")
	}
}

func TestTokenizerNumericCharacterReference(t *testing.T) {
	tokens := collectTokens(t, "&#65;&#x42;")
	var chars []rune
	for _, tk := range tokens {
		if tk.Type == CharacterToken {
			chars = append(chars, tk.Char)
		}
	}
	if string(chars) != "AB" {
		t.Fatalf("decoded characters = %q, want AB", string(chars))
	}
}

func TestTokenizerRCDATAStateDecodesEntitiesButNotTags(t *testing.T) {
	tok := NewTokenizer("&amp;<b>x</title>", nil)
	tok.SetState(RCDATAState)
	tok.SetLastStartTagName("title")

	first := tok.NextToken()
	if first.Type != CharacterToken || first.Char != '&' {
		t.Fatalf("first = %+v, want character &", first)
	}

	var chars []rune
	tk := tok.NextToken()
	for tk.Type == CharacterToken {
		chars = append(chars, tk.Char)
		tk = tok.NextToken()
	}
	if string(chars) != "<b>x" {
		t.Fatalf("RCDATA body = %q, want \"<b>x\" (literal angle brackets)", string(chars))
	}
	if tk.Type != EndTagToken || tk.TagName != "title" {
		t.Fatalf("closing token = %+v, want end tag title", tk)
	}
}

func TestTokenizerRAWTEXTDoesNotDecodeEntities(t *testing.T) {
	tok := NewTokenizer("&amp;</style>", nil)
	tok.SetState(RAWTEXTState)
	tok.SetLastStartTagName("style")

	var chars []rune
	tk := tok.NextToken()
	for tk.Type == CharacterToken {
		chars = append(chars, tk.Char)
		tk = tok.NextToken()
	}
	if string(chars) != "&amp;" {
		t.Fatalf("RAWTEXT body = %q, want literal \"&amp;\"", string(chars))
	}
}

func TestTokenizerBogusCommentOnUnknownMarkupDeclaration(t *testing.T) {
	tokens := collectTokens(t, "<!weird>")
	if tokens[0].Type != CommentToken {
		t.Fatalf("tokens[0].Type = %v, want CommentToken (bogus comment)", tokens[0].Type)
	}
	if tokens[0].CommentData != "weird" {
		t.Errorf("CommentData = %q, want %q", tokens[0].CommentData, "weird")
	}
}

func TestTokenizerEndTagWithAttributesIsParseErrorButTokenized(t *testing.T) {
	tokens := collectTokens(t, `</p class="x">`)
	if tokens[0].Type != EndTagToken || tokens[0].TagName != "p" {
		t.Fatalf("tokens[0] = %+v, want end tag p", tokens[0])
	}
}

func TestTokenizerEOFTerminates(t *testing.T) {
	tok := NewTokenizer("", nil)
	tk := tok.NextToken()
	if tk.Type != EOFToken {
		t.Fatalf("NextToken() on empty input = %+v, want EOFToken", tk)
	}
	again := tok.NextToken()
	if again.Type != EOFToken {
		t.Fatalf("second NextToken() after EOF = %+v, want EOFToken again", again)
	}
}
