package parser

import (
	"testing"

	"github.com/corewell/yamljson/ast"
)

func kinds(list ast.List) []ast.Kind {
	out := make([]ast.Kind, len(list))
	for i, e := range list {
		out[i] = e.Kind
	}
	return out
}

func TestParseSimpleMapping(t *testing.T) {
	list, err := Parse("a: 1\nb: two\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("got %d elements, want 4: %+v", len(list), list)
	}
	if list[0].Kind != ast.MapOpen || list[3].Kind != ast.MapClose {
		t.Fatalf("expected MapOpen/MapClose bracketing, got %+v", kinds(list))
	}
	if list[1].Key != "a" || list[1].Value != "1" || list[1].Indent != 1 {
		t.Fatalf("entry a = %+v", list[1])
	}
	if list[2].Key != "b" || list[2].Value != "two" || list[2].Indent != 1 {
		t.Fatalf("entry b = %+v", list[2])
	}
}

func TestParseNestedMapping(t *testing.T) {
	list, err := Parse("a:\n  b: 1\n  c: 2\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []ast.Kind{ast.MapOpen, ast.MapOpen, ast.Entry, ast.Entry, ast.MapClose, ast.MapClose}
	got := kinds(list)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if list[1].Key != "a" || !list[1].HasKey {
		t.Fatalf("nested MapOpen should carry key a: %+v", list[1])
	}
	if list[2].Key != "b" || list[2].Value != "1" || list[2].Indent != 2 {
		t.Fatalf("entry b = %+v", list[2])
	}
	if list[3].Key != "c" || list[3].Value != "2" {
		t.Fatalf("entry c = %+v", list[3])
	}
}

func TestParseBlockSequence(t *testing.T) {
	list, err := Parse("- a\n- b\n- c\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if list[0].Kind != ast.SeqOpen || list[4].Kind != ast.SeqClose {
		t.Fatalf("expected SeqOpen/SeqClose, got %+v", kinds(list))
	}
	for i, want := range []string{"a", "b", "c"} {
		e := list[i+1]
		if e.Kind != ast.Entry || e.Value != want || e.Indent != 1 {
			t.Fatalf("item %d = %+v, want value %q at indent 1", i, e, want)
		}
	}
}

func TestParseSequenceOfInlineMappings(t *testing.T) {
	list, err := Parse("- name: a\n  age: 1\n- name: b\n  age: 2\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []ast.Kind{
		ast.SeqOpen,
		ast.MapOpen, ast.Entry, ast.Entry, ast.MapClose,
		ast.MapOpen, ast.Entry, ast.Entry, ast.MapClose,
		ast.SeqClose,
	}
	got := kinds(list)
	if len(got) != len(want) {
		t.Fatalf("got %d elements %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d: got %v, want %v (%+v)", i, got[i], want[i], list)
		}
	}
	if list[2].Key != "name" || list[2].Value != "a" {
		t.Fatalf("entry name/a = %+v", list[2])
	}
	if list[3].Key != "age" || list[3].Value != "1" {
		t.Fatalf("entry age/1 = %+v", list[3])
	}
}

func TestParseNestedSequence(t *testing.T) {
	list, err := Parse("a:\n  - 1\n  - 2\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []ast.Kind{ast.MapOpen, ast.SeqOpen, ast.Entry, ast.Entry, ast.SeqClose, ast.MapClose}
	got := kinds(list)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if list[1].Key != "a" || !list[1].HasKey {
		t.Fatalf("SeqOpen should carry key a: %+v", list[1])
	}
}

func TestParseFlowSequence(t *testing.T) {
	list, err := Parse("nums: [1, 2, 3]\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []ast.Kind{ast.MapOpen, ast.SeqOpen, ast.Entry, ast.Entry, ast.Entry, ast.SeqClose, ast.MapClose}
	got := kinds(list)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, val := range []string{"1", "2", "3"} {
		if list[2+i].Value != val {
			t.Fatalf("flow item %d = %+v, want %q", i, list[2+i], val)
		}
	}
}

func TestParseAliasProducesUnresolvedEntry(t *testing.T) {
	list, err := Parse("a: &x 1\nb: *x\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var found bool
	for _, e := range list {
		if e.Key == "b" {
			found = true
			if e.Alias != "x" {
				t.Fatalf("entry b = %+v, want Alias x", e)
			}
		}
	}
	if !found {
		t.Fatal("entry b not found")
	}
}

func TestParseDuplicateKeyErrors(t *testing.T) {
	_, err := Parse("a: 1\na: 2\n")
	if err == nil {
		t.Fatal("expected duplicated key error")
	}
}

func TestParseNullValue(t *testing.T) {
	list, err := Parse("a:\nb: 1\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if list[1].Key != "a" || list[1].Value != "" || list[1].HasKey != true {
		t.Fatalf("entry a = %+v, want empty null value", list[1])
	}
	if list[2].Key != "b" || list[2].Value != "1" {
		t.Fatalf("entry b = %+v", list[2])
	}
}
