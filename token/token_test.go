package token_test

import (
	"testing"

	"github.com/corewell/yamljson/token"
)

func TestNew(t *testing.T) {
	pos := token.Position{Line: 3, Column: 5}
	tok := token.New("value", "raw", pos)
	if tok.Kind != token.Value {
		t.Fatalf("Kind = %v, want Value", tok.Kind)
	}
	if tok.Text != "value" || tok.Origin != "raw" {
		t.Fatalf("Text/Origin = %q/%q, want value/raw", tok.Text, tok.Origin)
	}
	if tok.Position != pos {
		t.Fatalf("Position = %v, want %v", tok.Position, pos)
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Key:     "Key",
		token.Value:   "Value",
		token.Unknown: "Unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestPositionString(t *testing.T) {
	p := token.Position{Line: 10, Column: 2}
	if got, want := p.String(), "10:2"; got != want {
		t.Fatalf("Position.String() = %q, want %q", got, want)
	}
}

func TestBlockStyleAndChompConstants(t *testing.T) {
	if token.Literal != '|' {
		t.Fatalf("Literal = %q, want '|'", byte(token.Literal))
	}
	if token.Folded != '>' {
		t.Fatalf("Folded = %q, want '>'", byte(token.Folded))
	}
	if token.Strip != '-' || token.Keep != '+' || token.Clip != 0 {
		t.Fatal("Chomp constants do not match their YAML modifier characters")
	}
}
