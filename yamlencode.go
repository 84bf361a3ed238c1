package yamljson

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// encodeYAML walks a generic JSON-shaped Go value - the auxiliary
// direction spec.md §6 describes as a straightforward tree walk,
// unlike the tokenizer/parser core - and renders it as YAML text.
func encodeYAML(v interface{}, cfg *config) (string, error) {
	var b strings.Builder
	if err := encodeValue(&b, v, 0, cfg); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

func encodeValue(b *strings.Builder, v interface{}, depth int, cfg *config) error {
	switch t := v.(type) {
	case nil:
		b.WriteString("null\n")
	case bool:
		switch {
		case cfg.YesNoBool && t:
			b.WriteString("yes\n")
		case cfg.YesNoBool && !t:
			b.WriteString("no\n")
		case t:
			b.WriteString("true\n")
		default:
			b.WriteString("false\n")
		}
	case json.Number:
		b.WriteString(t.String())
		b.WriteString("\n")
	case float64:
		b.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
		b.WriteString("\n")
	case int:
		fmt.Fprintf(b, "%d\n", t)
	case int64:
		fmt.Fprintf(b, "%d\n", t)
	case string:
		writeScalarString(b, t, depth, cfg)
	case map[string]interface{}:
		return encodeMapping(b, t, depth, cfg)
	case []interface{}:
		return encodeSequence(b, t, depth, cfg)
	default:
		return fmt.Errorf("yamljson: unsupported value type %T", v)
	}
	return nil
}

func encodeMapping(b *strings.Builder, m map[string]interface{}, depth int, cfg *config) error {
	if len(m) == 0 {
		b.WriteString("{}\n")
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pad := strings.Repeat(" ", depth*cfg.YAMLIndent)
	for _, k := range keys {
		b.WriteString(pad)
		b.WriteString(yamlKey(k))
		b.WriteString(":")
		if err := writeNestedOrInline(b, m[k], depth, cfg); err != nil {
			return err
		}
	}
	return nil
}

func encodeSequence(b *strings.Builder, items []interface{}, depth int, cfg *config) error {
	if len(items) == 0 {
		b.WriteString("[]\n")
		return nil
	}
	pad := strings.Repeat(" ", depth*cfg.YAMLIndent)
	for _, item := range items {
		b.WriteString(pad)
		b.WriteString("-")
		// A block scalar may not follow "- ", so a string that
		// writeScalarString would render as a "|" or ">" block is written
		// double-quoted instead.
		if s, ok := item.(string); ok && (strings.Contains(s, "\n") || len(s) > 80) {
			jb, _ := json.Marshal(s)
			b.WriteString(" ")
			b.Write(jb)
			b.WriteString("\n")
			continue
		}
		if err := writeNestedOrInline(b, item, depth, cfg); err != nil {
			return err
		}
	}
	return nil
}

// writeNestedOrInline writes what follows a mapping's "key:" or a
// sequence's "-": an inline scalar on the same line, "{}"/"[]" for an
// empty container, or a newline followed by a nested indented block.
func writeNestedOrInline(b *strings.Builder, v interface{}, depth int, cfg *config) error {
	switch t := v.(type) {
	case map[string]interface{}:
		if len(t) == 0 {
			b.WriteString(" {}\n")
			return nil
		}
		b.WriteString("\n")
		return encodeValue(b, t, depth+1, cfg)
	case []interface{}:
		if len(t) == 0 {
			b.WriteString(" []\n")
			return nil
		}
		b.WriteString("\n")
		return encodeValue(b, t, depth+1, cfg)
	default:
		b.WriteString(" ")
		return encodeValue(b, v, depth, cfg)
	}
}

func yamlKey(k string) string {
	// The scanner also rejects a plain key starting with ',' or '-'.
	if needsQuoting(k) || strings.HasPrefix(k, ",") || strings.HasPrefix(k, "-") {
		jb, _ := json.Marshal(k)
		return string(jb)
	}
	return k
}

// needsQuoting reports whether a bare scalar would be misread as
// something other than the literal string s - a boolean/null keyword,
// a number, or text carrying an indicator character with YAML meaning.
func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	switch strings.ToLower(s) {
	case "null", "~", "true", "false", "yes", "no":
		return true
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	if strings.TrimSpace(s) != s {
		return true
	}
	if strings.HasPrefix(s, "- ") || strings.HasPrefix(s, "? ") {
		return true
	}
	return strings.ContainsAny(s, ":#{}[]&*!|>'\"%@`")
}

func writeScalarString(b *strings.Builder, s string, depth int, cfg *config) {
	switch {
	case strings.Contains(s, "\n"):
		writeLiteralBlock(b, s, depth, cfg)
	case len(s) > 80:
		writeFoldedBlock(b, s, depth, cfg)
	default:
		if needsQuoting(s) {
			jb, _ := json.Marshal(s)
			b.Write(jb)
		} else {
			b.WriteString(s)
		}
		b.WriteString("\n")
	}
}

// writeLiteralBlock renders s as a "|" block scalar, one source line per
// "\n"-delimited line, clip-chomped (a single trailing newline, matching
// the default the tokenizer itself applies on read).
func writeLiteralBlock(b *strings.Builder, s string, depth int, cfg *config) {
	b.WriteString("|\n")
	pad := strings.Repeat(" ", (depth+1)*cfg.YAMLIndent)
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for _, line := range lines {
		b.WriteString(pad)
		b.WriteString(line)
		b.WriteString("\n")
	}
}

// writeFoldedBlock renders a long single-line string as a ">-" block,
// re-wrapped at whitespace boundaries so a round-trip through the
// tokenizer's folding rejoins it with single spaces; the strip chomp
// keeps the read-back value free of a trailing newline.
func writeFoldedBlock(b *strings.Builder, s string, depth int, cfg *config) {
	b.WriteString(">-\n")
	pad := strings.Repeat(" ", (depth+1)*cfg.YAMLIndent)
	words := strings.Fields(s)
	line := ""
	flush := func() {
		if line == "" {
			return
		}
		b.WriteString(pad)
		b.WriteString(line)
		b.WriteString("\n")
		line = ""
	}
	for _, w := range words {
		switch {
		case line == "":
			line = w
		case len(line)+1+len(w) <= 80:
			line += " " + w
		default:
			flush()
			line = w
		}
	}
	flush()
}
