package printer

import "testing"

func TestPrintSnippetUncolored(t *testing.T) {
	lines := []string{"a: 1", "b: 2", "c: 3"}
	p := &Printer{Context: 1}
	got := p.PrintSnippet(lines, 2, 4, false)
	if got == "" {
		t.Fatal("expected non-empty snippet")
	}
	for _, want := range []string{"a: 1", "> ", "b: 2", "c: 3", "^"} {
		if !contains(got, want) {
			t.Fatalf("snippet %q missing %q", got, want)
		}
	}
}

func TestPrintSnippetOutOfRange(t *testing.T) {
	p := &Printer{}
	if got := p.PrintSnippet([]string{"a"}, 5, 0, false); got != "" {
		t.Fatalf("expected empty snippet, got %q", got)
	}
}

func contains(haystack, needle string) bool {
	return len(haystack) >= len(needle) && indexOf(haystack, needle) >= 0
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
