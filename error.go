package yamljson

import (
	"strings"

	ierrors "github.com/corewell/yamljson/internal/errors"
	"github.com/corewell/yamljson/printer"
	"golang.org/x/xerrors"
)

// SyntaxError is the fault every stage of the conversion pipeline raises:
// a taxonomy Kind, an optional detail string, and the source line it was
// detected at. Recover one from an error with AsSyntaxError.
type SyntaxError = ierrors.SyntaxError

// Sentinel errors for the taxonomy entries callers most often need to
// branch on. Compare with errors.Is, e.g. errors.Is(err, ErrAnchorNotFound).
var (
	ErrAnchorNotFound  = ierrors.KindError(ierrors.AnchorNotFound)
	ErrDuplicateAnchor = ierrors.KindError(ierrors.DuplicateAnchor)
	ErrRecursiveAlias  = ierrors.KindError(ierrors.RecursiveAlias)
	ErrMergeOnScalar   = ierrors.KindError(ierrors.MergeOnScalar)
	ErrUnknownTag      = ierrors.KindError(ierrors.UnknownTag)
	ErrDuplicateKey    = ierrors.KindError(ierrors.DuplicatedKey)
	ErrUnclosedArray   = ierrors.KindError(ierrors.UnclosedArray)
	ErrUnclosedLiteral = ierrors.KindError(ierrors.UnclosedLiteral)
	ErrInvalidMerge    = ierrors.KindError(ierrors.InvalidMerge)
)

// IsAnchorNotFound reports whether err is (or wraps) an anchor-not-found
// fault.
func IsAnchorNotFound(err error) bool { return xerrors.Is(err, ErrAnchorNotFound) }

// IsDuplicateAnchor reports whether err is (or wraps) a duplicate-anchor
// fault.
func IsDuplicateAnchor(err error) bool { return xerrors.Is(err, ErrDuplicateAnchor) }

// IsRecursiveAlias reports whether err is (or wraps) a recursive-alias
// fault.
func IsRecursiveAlias(err error) bool { return xerrors.Is(err, ErrRecursiveAlias) }

// IsDuplicateKey reports whether err is (or wraps) a duplicated-key
// fault.
func IsDuplicateKey(err error) bool { return xerrors.Is(err, ErrDuplicateKey) }

// AsSyntaxError recovers the *SyntaxError behind err, if any, the way
// callers that want the offending line number should use rather than
// string-matching Error().
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	if xerrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// FormatError renders err for display: plain text for an ordinary error,
// or - for a SyntaxError - its message plus a colorized, line-numbered
// snippet of source when source is non-empty.
func FormatError(err error, colored bool, source string) string {
	if err == nil {
		return ""
	}
	se, ok := AsSyntaxError(err)
	if !ok {
		return err.Error()
	}
	var p printer.Printer
	msg := p.PrintErrorMessage(se.Error(), colored)
	if source == "" || se.Line() == 0 {
		return msg
	}
	lines := strings.Split(source, "\n")
	snippet := p.PrintSnippet(lines, se.Line(), 0, colored)
	if snippet == "" {
		return msg
	}
	return msg + "\n" + snippet
}
