package yamljson_test

import (
	"testing"

	"github.com/corewell/yamljson"
	"github.com/google/go-cmp/cmp"
)

func mustJSON(t *testing.T, src string, opts ...yamljson.Option) string {
	t.Helper()
	out, err := yamljson.YAMLToJSONText(src, opts...)
	if err != nil {
		t.Fatalf("YAMLToJSONText(%q): %v", src, err)
	}
	return out
}

func TestBooleansAndYesNo(t *testing.T) {
	got := mustJSON(t, "a: true\nb: yes\nc: no\n", yamljson.WithJSONIndent(0))
	want := `{"a": true, "b": true, "c": false}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLiteralVsFoldedBlock(t *testing.T) {
	got := mustJSON(t, "a: |\n  one\n  two\nb: >\n  one\n  two\n", yamljson.WithJSONIndent(0))
	want := `{"a": "one\ntwo\n", "b": "one two\n"}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAnchorAndAliasOnScalar(t *testing.T) {
	got := mustJSON(t, "base: &x 42\nother: *x\n", yamljson.WithJSONIndent(0))
	want := `{"base": 42, "other": 42}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMergeWithLocalOverride(t *testing.T) {
	got := mustJSON(t, "defaults: &d\n  a: 1\n  b: 2\nitem:\n  <<: *d\n  b: 99\n", yamljson.WithJSONIndent(0))
	want := `{"defaults": {"a": 1, "b": 2}, "item": {"a": 1, "b": 99}}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInlineFlowSequenceWithNullsAndKeys(t *testing.T) {
	got := mustJSON(t, "arr: [1, , {k: v}, 3]\n", yamljson.WithJSONIndent(0))
	want := `{"arr": [1, null, {"k": "v"}, 3]}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBinaryTag(t *testing.T) {
	got := mustJSON(t, "icon: !!binary SGk=\n", yamljson.WithJSONIndent(0))
	want := `{"icon": [72, 105]}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTagOverrideForcesString(t *testing.T) {
	got := mustJSON(t, "v: !!str 123\n", yamljson.WithJSONIndent(0))
	want := `{"v": "123"}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestYAMLToJSONValueDecodesTree(t *testing.T) {
	v, err := yamljson.YAMLToJSONValue("a:\n  b: 1\n  c: [1, 2]\n")
	if err != nil {
		t.Fatalf("YAMLToJSONValue: %v", err)
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		t.Fatalf("top-level value is %T, want map[string]interface{}", v)
	}
	a, ok := m["a"].(map[string]interface{})
	if !ok {
		t.Fatalf("a is %T, want map[string]interface{}", m["a"])
	}
	c, ok := a["c"].([]interface{})
	if !ok || len(c) != 2 {
		t.Fatalf("c = %+v, want a 2-element slice", a["c"])
	}
}

func TestJSONRoundTrip(t *testing.T) {
	v, err := yamljson.YAMLToJSONValue("name: app\nreplicas: 3\nenabled: true\ntags: [a, b]\n")
	if err != nil {
		t.Fatalf("YAMLToJSONValue: %v", err)
	}
	yamlText, err := yamljson.JSONToYAMLText(v)
	if err != nil {
		t.Fatalf("JSONToYAMLText: %v", err)
	}
	v2, err := yamljson.YAMLToJSONValue(yamlText)
	if err != nil {
		t.Fatalf("YAMLToJSONValue round trip: %v", err)
	}
	if diff := cmp.Diff(v, v2); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicateKeyIsRejectedByDefault(t *testing.T) {
	if _, err := yamljson.YAMLToJSONText("a: 1\na: 2\n"); err == nil {
		t.Fatal("expected duplicate key error")
	} else if !yamljson.IsDuplicateKey(err) {
		t.Fatalf("err = %v, want IsDuplicateKey", err)
	}
}

func TestAllowDuplicateKeysOption(t *testing.T) {
	if _, err := yamljson.YAMLToJSONText("a: 1\na: 2\n", yamljson.WithAllowDuplicateKeys(true)); err != nil {
		t.Fatalf("unexpected error with duplicates allowed: %v", err)
	}
}

func TestAnchorNotFoundError(t *testing.T) {
	_, err := yamljson.YAMLToJSONText("a: *missing\n")
	if err == nil || !yamljson.IsAnchorNotFound(err) {
		t.Fatalf("err = %v, want IsAnchorNotFound", err)
	}
}

func TestIndentOptionProducesPrettyJSON(t *testing.T) {
	got, err := yamljson.YAMLToJSONText("a: 1\n", yamljson.WithJSONIndent(2))
	if err != nil {
		t.Fatalf("YAMLToJSONText: %v", err)
	}
	want := "{\n  \"a\": 1\n}"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMergeKeyNameOption(t *testing.T) {
	got := mustJSON(t, "d: &x\n  a: 1\nc:\n  $merge: *x\n", yamljson.WithJSONIndent(0), yamljson.WithMergeKeyName("$merge"))
	want := `{"d": {"a": 1}, "c": {"a": 1}}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
