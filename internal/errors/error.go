// Package errors implements the single fault kind every stage of the
// yaml-to-json pipeline raises: a SyntaxError carrying a message
// template, the offending token, and (via the token's position) a
// 1-based source line number. It mirrors the teacher's split between a
// lightweight syntax fault and a stack-trace-carrying wrap error, both
// built on golang.org/x/xerrors.
package errors

import (
	"fmt"

	"github.com/corewell/yamljson/token"
	"golang.org/x/xerrors"
)

// Kind identifies one condition from the parser's error taxonomy. Every
// Kind maps to exactly one message template; library callers compare
// against these with Is (see the top-level yamljson package) rather than
// matching message strings.
type Kind int

const (
	Unknown Kind = iota

	// Structural
	CollectionItemError
	InvalidArray
	InvalidIndentation
	UnclosedArray
	UnclosedLiteral
	UnconsumedContent

	// Keys
	EmptyKey
	DoubleKey
	ExpectedKey
	DuplicatedKey
	InvalidInitialChar

	// Anchors / aliases
	InvalidName
	DuplicateAnchor
	AnchorNotFound
	RecursiveAlias
	AliasWithValue
	AliasOnKey

	// Merges
	MergeInArray
	MergeInCollection
	MergeOnScalar
	InvalidMerge

	// Tags
	UnknownTag
	ValueIncompatibleWithTag

	// Blocks
	InvalidBlockModifier
	BlockModifierOnCollectionItem
)

var templates = map[Kind]string{
	CollectionItemError: "malformed collection item",
	InvalidArray:        "invalid inline array",
	InvalidIndentation:  "invalid indentation",
	UnclosedArray:       "unclosed inline array",
	UnclosedLiteral:     "unclosed quoted literal",
	UnconsumedContent:   "unconsumed content after document",

	EmptyKey:           "empty key",
	DoubleKey:          "key followed by a second colon",
	ExpectedKey:        "expected a mapping key",
	DuplicatedKey:      "duplicated key",
	InvalidInitialChar: "invalid character starting a key",

	InvalidName:      "invalid anchor or alias name",
	DuplicateAnchor:  "duplicate anchor name",
	AnchorNotFound:   "anchor not found",
	RecursiveAlias:   "recursive alias",
	AliasWithValue:   "alias carries a value",
	AliasOnKey:       "anchor or alias attached to a key",

	MergeInArray:      "merge key inside a block sequence",
	MergeInCollection: "merge key inside a flow sequence",
	MergeOnScalar:     "merge key references a scalar anchor",
	InvalidMerge:      "merge key without an alias",

	UnknownTag:               "unknown tag",
	ValueIncompatibleWithTag: "value incompatible with tag",

	InvalidBlockModifier:          "invalid block scalar modifier",
	BlockModifierOnCollectionItem: "block scalar modifier on collection item",
}

// String returns the default message template for k.
func (k Kind) String() string {
	if s, ok := templates[k]; ok {
		return s
	}
	return "unknown error"
}

// SyntaxError is the single fault kind raised anywhere in the scan/parse/
// resolve/emit pipeline. It always carries the Kind of condition and the
// token (and therefore the line) where it was detected.
type SyntaxError struct {
	kind   Kind
	detail string
	token  *token.Token
	frame  xerrors.Frame
}

// New creates a SyntaxError for kind at tok. detail, if non-empty, is
// appended to the Kind's message template (e.g. the offending name).
func New(kind Kind, tok *token.Token, detail string) *SyntaxError {
	return &SyntaxError{kind: kind, detail: detail, token: tok, frame: xerrors.Caller(1)}
}

// Kind returns the taxonomy entry this error belongs to.
func (e *SyntaxError) Kind() Kind { return e.kind }

// Token returns the token the error was raised against.
func (e *SyntaxError) Token() *token.Token { return e.token }

// Line returns the 1-based source line the error was raised against, or
// 0 if no token is attached.
func (e *SyntaxError) Line() int {
	if e.token == nil {
		return 0
	}
	return e.token.Position.Line
}

// Error implements the error interface with a plain, uncolored rendering;
// colorized rendering with a source snippet lives in the top-level
// yamljson package, which has access to the printer package.
func (e *SyntaxError) Error() string {
	msg := e.kind.String()
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	line := e.Line()
	if line == 0 {
		return fmt.Sprintf("yaml: %s", msg)
	}
	return fmt.Sprintf("yaml: line %d: %s", line, msg)
}

// FormatError implements xerrors.Formatter, printing a stack frame under
// "%+v".
func (e *SyntaxError) FormatError(p xerrors.Printer) error {
	p.Print(e.Error())
	if p.Detail() {
		e.frame.Format(p)
	}
	return nil
}

// Format implements fmt.Formatter via xerrors.FormatError.
func (e *SyntaxError) Format(f fmt.State, verb rune) {
	xerrors.FormatError(e, f, verb)
}

// Is supports errors.Is/xerrors.Is against a bare Kind sentinel produced
// by KindError below.
func (e *SyntaxError) Is(target error) bool {
	ke, ok := target.(kindSentinel)
	return ok && ke.kind == e.kind
}

// kindSentinel lets the top-level package build comparable sentinels
// ("ErrAnchorNotFound") for every Kind without duplicating the taxonomy.
type kindSentinel struct{ kind Kind }

func (k kindSentinel) Error() string { return k.kind.String() }

// KindError returns the sentinel error value used for errors.Is(err,
// KindError(AnchorNotFound)) style checks.
func KindError(kind Kind) error { return kindSentinel{kind: kind} }

// Wrapf wraps err with a formatted message and a captured stack frame,
// for faults raised outside the taxonomy above (e.g. an unexpected
// internal invariant violation).
func Wrapf(err error, msg string, args ...interface{}) error {
	return &wrapError{err: xerrors.Errorf(msg, args...), next: err, frame: xerrors.Caller(1)}
}

type wrapError struct {
	err   error
	next  error
	frame xerrors.Frame
}

func (e *wrapError) Error() string { return e.err.Error() + ": " + e.next.Error() }

func (e *wrapError) Unwrap() error { return e.next }

func (e *wrapError) FormatError(p xerrors.Printer) error {
	p.Print(e.err)
	if p.Detail() {
		e.frame.Format(p)
	}
	return e.next
}

func (e *wrapError) Format(f fmt.State, verb rune) {
	xerrors.FormatError(e, f, verb)
}
