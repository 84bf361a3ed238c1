package yamljson_test

import (
	"testing"

	"github.com/corewell/yamljson"
)

// FuzzYAMLToJSONText checks that the converter never panics on arbitrary
// input: it either returns JSON text or a well-formed error, never both
// a zero-value result and a nil error.
func FuzzYAMLToJSONText(f *testing.F) {
	seeds := []string{
		"a: 1\n",
		"a: [1, , {k: v}, 3]\n",
		"a: &x 1\nb: *x\n",
		"a:\n  <<: *missing\n",
		"a: |\n  one\n  two\n",
		"a: !!binary not-base64\n",
		"0::",
		"{0",
		"*-0",
		">\n>",
		"a:\n  - 1\n  -  2\n",
		"",
		"a: &x\n  b: *x\n",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		out, err := yamljson.YAMLToJSONText(src)
		if err == nil && out == "" && src != "" {
			t.Errorf("empty result with nil error for input %q", src)
		}
	})
}

// FuzzJSONTextToYAMLText exercises the auxiliary direction the same way.
func FuzzJSONTextToYAMLText(f *testing.F) {
	seeds := []string{
		`null`,
		`{}`,
		`[]`,
		`{"a":1,"b":[1,2,3]}`,
		`"line one\nline two\n"`,
		`3.14`,
		`"` + string(make([]byte, 90)) + `"`,
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		out, err := yamljson.JSONTextToYAMLText(src)
		if err != nil {
			t.Skip("not a JSON value this converter accepts")
		}
		if _, err := yamljson.YAMLToJSONValue(out); err != nil {
			t.Errorf("round trip produced YAML that fails to re-parse: %v\nyaml:\n%s", err, out)
		}
	})
}
