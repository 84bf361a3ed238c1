package yamljson

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/corewell/yamljson/ast"
	ierrors "github.com/corewell/yamljson/internal/errors"
	"github.com/corewell/yamljson/internal/fold"
	"github.com/corewell/yamljson/token"
)

// timestampLayouts are tried in order when inferring or validating a
// "!!timestamp" scalar; spec.md §4.5 only requires ISO-8601 and the
// common "YYYY-MM-DD [HH:MM:SS[.f]][Z]" shape.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func tokenAt(el *ast.Element) *token.Token {
	return &token.Token{Position: token.Position{Line: el.Line}}
}

func parseBool(v string, yesNo bool) (bool, bool) {
	switch strings.ToLower(v) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	if yesNo {
		switch strings.ToLower(v) {
		case "yes":
			return true, true
		case "no":
			return false, true
		}
	}
	return false, false
}

func parseTimestamp(v string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// inferValue classifies an untagged scalar per the table in spec.md
// §4.5: null, boolean, integer, float, timestamp, else string.
func inferValue(v string, cfg *config) interface{} {
	if v == "" || strings.EqualFold(v, "null") {
		return nil
	}
	if b, ok := parseBool(v, cfg.YesNoBool); ok {
		return b
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	if ts, ok := parseTimestamp(v); ok {
		return ts.UTC().Format(time.RFC3339)
	}
	return v
}

// classify computes the emitted value of a non-bracket element from its
// (value, literal, tag), per spec.md §4.5.
func classify(el *ast.Element, cfg *config) (interface{}, error) {
	v := fold.Expand(el.Value)

	if el.Literal {
		if cfg.StrictTags && el.Tag != "" && el.Tag != "!!str" {
			return nil, ierrors.New(ierrors.ValueIncompatibleWithTag, tokenAt(el), el.Tag)
		}
		return v, nil
	}

	switch el.Tag {
	case "":
		return inferValue(v, cfg), nil
	case "!!null":
		return nil, nil
	case "!!str":
		return v, nil
	case "!!bool":
		if b, ok := parseBool(v, cfg.YesNoBool); ok {
			return b, nil
		}
		if !cfg.StrictTags {
			return v, nil
		}
		return nil, ierrors.New(ierrors.ValueIncompatibleWithTag, tokenAt(el), el.Tag)
	case "!!int":
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, nil
		}
		if !cfg.StrictTags {
			return v, nil
		}
		return nil, ierrors.New(ierrors.ValueIncompatibleWithTag, tokenAt(el), el.Tag)
	case "!!float":
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, nil
		}
		// A float tag accepts an integer-shaped value (spec.md §4.5).
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return float64(n), nil
		}
		if !cfg.StrictTags {
			return v, nil
		}
		return nil, ierrors.New(ierrors.ValueIncompatibleWithTag, tokenAt(el), el.Tag)
	case "!!timestamp":
		if ts, ok := parseTimestamp(v); ok {
			return ts.UTC().Format(time.RFC3339), nil
		}
		if !cfg.StrictTags {
			return v, nil
		}
		return nil, ierrors.New(ierrors.ValueIncompatibleWithTag, tokenAt(el), el.Tag)
	case "!!binary":
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(v))
		if err != nil {
			return nil, ierrors.New(ierrors.ValueIncompatibleWithTag, tokenAt(el), "invalid base64")
		}
		return data, nil
	default:
		return nil, ierrors.New(ierrors.UnknownTag, tokenAt(el), el.Tag)
	}
}

func writeScalar(b *strings.Builder, v interface{}) error {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		if t {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case int64:
		b.WriteString(strconv.FormatInt(t, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
	case string:
		jb, err := json.Marshal(t)
		if err != nil {
			return err
		}
		b.Write(jb)
	case []byte:
		b.WriteByte('[')
		for i, by := range t {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Itoa(int(by)))
		}
		b.WriteByte(']')
	}
	return nil
}

// containerFrame tracks, for one open bracket, whether a sibling has
// already been written (so the emitter knows when a comma is due).
type containerFrame struct {
	kind  ast.Kind
	first bool
}

// emitJSON walks the fully resolved flat list and renders it as JSON
// text, per spec.md §4.5's closing paragraph: openers/closers begin and
// end an indented block, each key/value line is indented by
// indent*spaces_per_level, and this is the only place the internal
// newline placeholder becomes a real "\n" (inside classify via
// fold.Expand).
func emitJSON(list ast.List, cfg *config) (string, error) {
	if len(list) == 0 {
		return "null", nil
	}

	pretty := cfg.JSONIndent > 0
	pad := strings.Repeat(" ", cfg.JSONIndent)

	var b strings.Builder
	var stack []*containerFrame

	sep := func() {
		if len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		if !top.first {
			b.WriteByte(',')
			if !pretty {
				b.WriteByte(' ')
			}
		}
		top.first = false
	}
	newline := func() {
		if pretty && b.Len() > 0 {
			b.WriteByte('\n')
		}
	}
	indent := func(depth int) {
		if pretty {
			b.WriteString(strings.Repeat(pad, depth))
		}
	}
	writeKey := func(el *ast.Element) error {
		if !el.HasKey {
			return nil
		}
		kb, err := json.Marshal(el.Key)
		if err != nil {
			return err
		}
		b.Write(kb)
		b.WriteString(": ")
		return nil
	}

	for _, el := range list {
		switch {
		case el.Kind.IsOpener():
			sep()
			newline()
			indent(el.Indent)
			if err := writeKey(el); err != nil {
				return "", err
			}
			if el.Kind == ast.MapOpen {
				b.WriteByte('{')
			} else {
				b.WriteByte('[')
			}
			stack = append(stack, &containerFrame{kind: el.Kind, first: true})

		case el.Kind.IsCloser():
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !top.first {
				newline()
				indent(el.Indent)
			}
			if el.Kind == ast.MapClose {
				b.WriteByte('}')
			} else {
				b.WriteByte(']')
			}

		default:
			sep()
			newline()
			indent(el.Indent)
			if err := writeKey(el); err != nil {
				return "", err
			}
			if el.Tag == "!!map" && el.Value == "" {
				b.WriteString("{}")
				continue
			}
			if el.Tag == "!!seq" && el.Value == "" {
				b.WriteString("[]")
				continue
			}
			val, err := classify(el, cfg)
			if err != nil {
				return "", err
			}
			if err := writeScalar(&b, val); err != nil {
				return "", err
			}
		}
	}
	return b.String(), nil
}
