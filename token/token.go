// Package token defines the lexical tokens produced by the scanner while
// reading a YAML document, and the position information used to report
// errors against the original source.
package token

import "fmt"

// Kind classifies a Token the way the structural parser needs to see it:
// either as a mapping key or as a value (a scalar, or one of the flow
// punctuation characters '[', ']', ',', '{', '}').
type Kind int

const (
	// Unknown is the zero value; never produced by the scanner.
	Unknown Kind = iota
	// Key is a mapping key scalar, always followed by ':'.
	Key
	// Value is a scalar, or a flow-sequence delimiter ('[', ']', ',', '{', '}').
	Value
)

func (k Kind) String() string {
	switch k {
	case Key:
		return "Key"
	case Value:
		return "Value"
	default:
		return "Unknown"
	}
}

// BlockStyle identifies a block scalar introducer.
type BlockStyle byte

const (
	// NoBlockStyle means the token is not a block scalar.
	NoBlockStyle BlockStyle = 0
	// Literal is introduced by '|': every line kept verbatim.
	Literal BlockStyle = '|'
	// Folded is introduced by '>': lines joined with spaces unless more
	// indented than the block's base indent.
	Folded BlockStyle = '>'
)

// Chomp identifies the trailing-newline policy of a block scalar.
type Chomp byte

const (
	// Clip is the default: exactly one trailing newline is kept.
	Clip Chomp = 0
	// Strip ('-') removes every trailing newline.
	Strip Chomp = '-'
	// Keep ('+') preserves every trailing blank line.
	Keep Chomp = '+'
)

// Position locates a Token in the original source, 1-indexed.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is the unit returned by the scanner package and consumed by the
// structural parser. It carries every piece of per-token metadata the
// parser needs to decide how to classify and store the scalar: its
// quoting, its anchor/alias name, its explicit tag, and - when the token
// started a "- " collection item - the indentation contributed by that
// marker.
type Token struct {
	Kind Kind
	// Text is the fully processed scalar text (folded, de-indented,
	// quote-unescaped) still carrying the internal newline placeholder
	// (see internal/fold), or, for flow punctuation, one of "[", "]", ",",
	// "{", "}".
	Text string
	// Origin is the raw source text backing this token, as passed to New.
	// The scanner leaves it empty, and no error rendering reads it.
	Origin string
	// Tag is the explicit "!!xxx" tag attached to this value, if any.
	Tag string
	// AnchorName is non-empty when this token defines "&name".
	AnchorName string
	// AliasName is non-empty when this token is a "*name" reference.
	AliasName string
	// IsLiteral is true when the scalar came from a quoted string or a
	// '|'/'>' block scalar; such scalars are never type-coerced.
	IsLiteral bool
	// IsCollectionItem is true when this value began a "- " entry.
	IsCollectionItem bool
	// CollectionIndent is the column (count of leading spaces) at which
	// the item's content starts: the line's indent plus the width of the
	// "- " marker and any further spaces before the content. Valid only
	// when IsCollectionItem is true.
	CollectionIndent int
	// Block is non-zero when this was introduced by '|' or '>'.
	Block BlockStyle
	// ChompMode records a trailing '+'/'-' chomp indicator on a block
	// scalar introducer.
	ChompMode Chomp
	Position  Position
}

// New creates a Value token for plain scalar text. Most construction in
// the scanner goes through composite literals; New exists for the common
// case of a bare scalar, mirroring how callers build one-off tokens in
// tests.
func New(text, origin string, pos Position) *Token {
	return &Token{Kind: Value, Text: text, Origin: origin, Position: pos}
}
