// Package yamljson converts between a useful subset of YAML and JSON for
// small-to-medium configuration documents. The hard core is YAML → JSON
// (indentation-sensitive tokenization, anchors/aliases, merge keys,
// explicit type tags); JSON → YAML is a straightforward tree walk.
package yamljson

import (
	"bytes"
	"encoding/json"

	"github.com/corewell/yamljson/ast"
	"github.com/corewell/yamljson/parser"
	"github.com/corewell/yamljson/resolve"
)

// YAMLToJSONText parses YAML source and renders it as JSON text.
func YAMLToJSONText(source string, opts ...Option) (string, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return "", err
	}
	list, err := parseYAML(source, cfg)
	if err != nil {
		return "", err
	}
	return emitJSON(list, cfg)
}

// YAMLToJSONValue parses YAML source and decodes it into a generic Go
// value (map[string]interface{}, []interface{}, string, json.Number,
// bool, or nil), by first rendering JSON text and then re-parsing it -
// the JSON parser is an external collaborator spec.md treats as out of
// scope for the core itself.
func YAMLToJSONValue(source string, opts ...Option) (interface{}, error) {
	text, err := YAMLToJSONText(source, opts...)
	if err != nil {
		return nil, err
	}
	return decodeJSON(text)
}

func parseYAML(source string, cfg *config) (ast.List, error) {
	p := parser.New(source)
	p.AllowDuplicateKeys = cfg.AllowDuplicateKeys
	l, err := p.Parse()
	if err != nil {
		return nil, err
	}
	return resolve.Resolve(l, cfg.MergeKeyName)
}

func decodeJSON(text string) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// JSONToYAMLText walks a generic Go value - as produced by
// YAMLToJSONValue or by encoding/json.Unmarshal into interface{} - and
// renders it as YAML text.
func JSONToYAMLText(value interface{}, opts ...Option) (string, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return "", err
	}
	return encodeYAML(value, cfg)
}

// JSONTextToYAMLText is the text-in-text-out overload of JSONToYAMLText:
// it first decodes jsonText the same way YAMLToJSONValue decodes its
// intermediate JSON text (numbers as json.Number).
func JSONTextToYAMLText(jsonText string, opts ...Option) (string, error) {
	v, err := decodeJSON(jsonText)
	if err != nil {
		return "", err
	}
	return JSONToYAMLText(v, opts...)
}
