package scanner

import (
	"testing"

	"github.com/corewell/yamljson/token"
)

func allTokens(t *testing.T, input string) []*token.Token {
	t.Helper()
	s := New(input)
	var toks []*token.Token
	for {
		tok, err := s.Next(false)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if tok == nil {
			return toks
		}
		toks = append(toks, tok)
		if tok.Kind == token.Key {
			s.SkipColon()
		}
	}
}

func TestScanSimpleMapping(t *testing.T) {
	toks := allTokens(t, "a: 1\nb: two\n")
	if len(toks) != 4 {
		t.Fatalf("got %d tokens, want 4: %+v", len(toks), toks)
	}
	if toks[0].Kind != token.Key || toks[0].Text != "a" {
		t.Fatalf("tok0 = %+v", toks[0])
	}
	if toks[1].Kind != token.Value || toks[1].Text != "1" {
		t.Fatalf("tok1 = %+v", toks[1])
	}
	if toks[2].Text != "b" || toks[3].Text != "two" {
		t.Fatalf("toks = %+v", toks)
	}
}

func TestScanCollectionItem(t *testing.T) {
	toks := allTokens(t, "- x\n- y\n")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2: %+v", len(toks), toks)
	}
	for _, tok := range toks {
		if !tok.IsCollectionItem {
			t.Fatalf("expected collection item, got %+v", tok)
		}
	}
	if toks[0].Text != "x" || toks[1].Text != "y" {
		t.Fatalf("toks = %+v", toks)
	}
}

func TestScanAnchorAndAlias(t *testing.T) {
	toks := allTokens(t, "a: &x 1\nb: *x\n")
	if toks[1].AnchorName != "x" {
		t.Fatalf("expected anchor x, got %+v", toks[1])
	}
	if toks[3].AliasName != "x" {
		t.Fatalf("expected alias x, got %+v", toks[3])
	}
}

func TestScanQuotedScalar(t *testing.T) {
	toks := allTokens(t, `a: "hello world"`+"\n")
	if toks[1].Text != "hello world" || !toks[1].IsLiteral {
		t.Fatalf("tok1 = %+v", toks[1])
	}
}

func TestScanSingleQuoteEscape(t *testing.T) {
	toks := allTokens(t, "a: 'it''s'\n")
	if toks[1].Text != "it's" {
		t.Fatalf("tok1.Text = %q, want it's", toks[1].Text)
	}
}

func TestScanLiteralBlock(t *testing.T) {
	toks := allTokens(t, "a: |\n  line one\n  line two\nb: 2\n")
	if toks[1].Block != token.Literal {
		t.Fatalf("tok1.Block = %v, want Literal", toks[1].Block)
	}
	want := "line one\x00\x01line two\x00\x01"
	if toks[1].Text != want {
		t.Fatalf("tok1.Text = %q, want %q", toks[1].Text, want)
	}
	if toks[2].Text != "b" || toks[3].Text != "2" {
		t.Fatalf("following mapping entry not resumed correctly: %+v %+v", toks[2], toks[3])
	}
}

func TestScanMultiLinePlainScalar(t *testing.T) {
	toks := allTokens(t, "a: one\n  two\nb: 2\n")
	if toks[1].Text != "one two" {
		t.Fatalf("tok1.Text = %q, want %q", toks[1].Text, "one two")
	}
	if toks[2].Text != "b" || toks[3].Text != "2" {
		t.Fatalf("following mapping entry not resumed correctly: %+v %+v", toks[2], toks[3])
	}
}

func TestScanTrailingBlankLineNotFolded(t *testing.T) {
	toks := allTokens(t, "a: 1\n\n")
	if toks[1].Text != "1" {
		t.Fatalf("tok1.Text = %q, want %q (no trailing placeholder newline)", toks[1].Text, "1")
	}
}

func TestScanExplicitTag(t *testing.T) {
	toks := allTokens(t, "a: !!str 1\n")
	if toks[1].Tag != "!!str" || toks[1].Text != "1" {
		t.Fatalf("tok1 = %+v", toks[1])
	}
}

func TestScanUnknownTagErrors(t *testing.T) {
	s := New("a: !!bogus 1\n")
	if _, err := s.Next(false); err != nil {
		t.Fatalf("unexpected error on key token: %v", err)
	}
	s.SkipColon()
	if _, err := s.Next(false); err == nil {
		t.Fatal("expected an error for an unrecognized tag")
	}
}

func TestScanAliasWithValueErrors(t *testing.T) {
	s := New("a: *x extra\n")
	if _, err := s.Next(false); err != nil {
		t.Fatalf("unexpected error on key token: %v", err)
	}
	s.SkipColon()
	if _, err := s.Next(false); err == nil {
		t.Fatal("expected an error for an alias carrying a trailing value")
	}
}

func TestScanCollectionItemInFlowErrors(t *testing.T) {
	s := New("[1, - x, 2]\n")
	if _, err := s.Next(true); err != nil {
		t.Fatalf("unexpected error on '[': %v", err)
	}
	if _, err := s.Next(true); err != nil {
		t.Fatalf("unexpected error on '1': %v", err)
	}
	if _, err := s.Next(true); err != nil {
		t.Fatalf("unexpected error on ',': %v", err)
	}
	if _, err := s.Next(true); err == nil {
		t.Fatal("expected an error for a '- ' collection marker inside a flow sequence")
	}
}

func TestScanInlineFlow(t *testing.T) {
	s := New("[1, 2, 3]\n")
	var got []string
	for {
		tok, err := s.Next(true)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if tok == nil {
			break
		}
		got = append(got, tok.Text)
	}
	want := []string{"[", "1", ",", "2", ",", "3", "]"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
