// Package scanner implements the tokenizer described in spec §4.1: given
// a line-addressable source and a (row, indent) cursor, it returns the
// next logical token — classified as a mapping Key or a Value — folding
// multi-line scalars, quoted literals, block scalars, and inline-array
// punctuation along the way.
package scanner

import (
	"strconv"
	"strings"

	ierrors "github.com/corewell/yamljson/internal/errors"
	"github.com/corewell/yamljson/internal/fold"
	"github.com/corewell/yamljson/internal/source"
	"github.com/corewell/yamljson/token"
)

var tagNames = []string{
	"!!map", "!!seq", "!!str", "!!null", "!!bool", "!!int", "!!float", "!!binary", "!!timestamp",
}

// Scanner is the tokenizer's cursor: the lines it reads from, the row it
// will read next, and any remainder carried over from a previous call on
// the same physical line.
type Scanner struct {
	lines     *source.Lines
	row       int // next unconsumed row
	curRow    int // row the current remainder was read from
	indent    int // indent of curRow
	remainder string
	col       int // 1-based column where remainder currently starts
}

// New creates a Scanner over input.
func New(input string) *Scanner {
	return &Scanner{lines: source.New(input)}
}

// Lines exposes the underlying line source, e.g. for error-snippet
// rendering.
func (s *Scanner) Lines() *source.Lines { return s.lines }

func (s *Scanner) pos() token.Position {
	return token.Position{Line: source.LineNumber(s.curRow), Column: s.col}
}

func syntaxErr(kind ierrors.Kind, pos token.Position, detail string) error {
	tok := &token.Token{Position: pos}
	return ierrors.New(kind, tok, detail)
}

func stripTrailingComment(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '#' && (i == 0 || s[i-1] == ' ' || s[i-1] == '\t') {
			return strings.TrimRight(s[:i], " \t")
		}
	}
	return s
}

func (s *Scanner) ensureContent() {
	if s.remainder != "" {
		return
	}
	for s.row < s.lines.Len() {
		if s.lines.IsBlank(s.row) || s.lines.IsComment(s.row) {
			s.row++
			continue
		}
		s.curRow = s.row
		s.indent = s.lines.IndentOf(s.row)
		line := stripTrailingComment(s.lines.Row(s.row)[s.indent:])
		s.row++
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.remainder = line
		s.col = s.indent + 1
		return
	}
	s.remainder = ""
}

func (s *Scanner) advance(n int) {
	s.remainder = s.remainder[n:]
	s.col += n
}

func (s *Scanner) skipInlineSpace() {
	i := 0
	for i < len(s.remainder) && (s.remainder[i] == ' ' || s.remainder[i] == '\t') {
		i++
	}
	s.advance(i)
}

// SkipColon drops a leading ':' (and one following space) from the
// carried remainder. The parser calls this after consuming a Key token
// and before asking for the value that follows it on the same line.
func (s *Scanner) SkipColon() {
	if strings.HasPrefix(s.remainder, ":") {
		s.advance(1)
	}
	s.skipInlineSpace()
}

// AtEOF reports whether the scanner has no more tokens.
func (s *Scanner) AtEOF() bool {
	s.ensureContent()
	return s.remainder == ""
}

// Peek returns the first non-space byte of the pending remainder without
// consuming anything, or 0 at EOF. Used by the parser to decide whether
// the next token is worth asking for (e.g. distinguishing an outdent
// from more content at the current indent).
func (s *Scanner) Peek() (b byte, indent int, ok bool) {
	s.ensureContent()
	if s.remainder == "" {
		return 0, 0, false
	}
	return s.remainder[0], s.indent, true
}

func stripTag(s string) (tag, rest string, err error) {
	if !strings.HasPrefix(s, "!!") {
		return "", s, nil
	}
	for _, t := range tagNames {
		if strings.HasPrefix(s, t) {
			after := s[len(t):]
			if after == "" || after[0] == ' ' {
				return t, after, nil
			}
		}
	}
	return "", s, ierrors.New(ierrors.UnknownTag, nil, s)
}

func isIdentChar(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	if name[0] >= '0' && name[0] <= '9' {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isIdentChar(name[i]) {
			return false
		}
	}
	return true
}

func splitName(s string) (name, rest string) {
	i := 0
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func findColon(s string) (int, bool) {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == ':' && s[i+1] == ' ' {
			return i, true
		}
	}
	trimmed := strings.TrimRight(s, " ")
	if len(trimmed) > 0 && trimmed[len(trimmed)-1] == ':' {
		return len(trimmed) - 1, true
	}
	return 0, false
}

func findFlowTerm(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ',', ']', '[', '{', '}':
			return i
		}
	}
	return len(s)
}

func validateKeyText(s string, pos token.Position) error {
	if s == "" {
		return syntaxErr(ierrors.EmptyKey, pos, "")
	}
	switch s[0] {
	case '[', ',', ']', '-', '&', '*', '|', '>':
		return syntaxErr(ierrors.InvalidInitialChar, pos, s)
	}
	if strings.Contains(s, ":") {
		return syntaxErr(ierrors.DoubleKey, pos, s)
	}
	return nil
}

// PeekIsKey reports, without consuming anything, whether the pending
// remainder would tokenize as a mapping Key rather than a Value. The
// parser uses this to decide between a block mapping and a block
// sequence or bare scalar at the top of a container.
func (s *Scanner) PeekIsKey() bool {
	s.ensureContent()
	if s.remainder == "" {
		return false
	}
	_, rest, err := stripTag(s.remainder)
	if err != nil {
		rest = s.remainder
	}
	rest = strings.TrimLeft(rest, " \t")
	if rest == "-" || strings.HasPrefix(rest, "- ") {
		return false
	}
	if len(rest) > 0 && (rest[0] == '&' || rest[0] == '*') {
		return false
	}
	_, isKey := findColon(rest)
	return isKey
}

// Next returns the next token, or (nil, nil) at EOF. inFlow changes the
// termination rules for plain scalars and enables the ']'/',' delimiter
// recognition described in spec §4.1 step 3. Next freely advances past
// blank and comment lines to reach the next token, which is correct when
// the caller already knows (e.g. via Peek) that more content follows.
func (s *Scanner) Next(inFlow bool) (*token.Token, error) {
	s.ensureContent()
	return s.nextFrom(inFlow)
}

// NextInline is like Next but never crosses onto a following source
// line: it returns (nil, nil) when nothing remains on the line the
// cursor is already positioned on. The parser uses this right after a
// key's ':' or a "- " marker to tell a same-line value apart from one
// that belongs entirely to the following, possibly unrelated, line (a
// null value followed by a sibling key, for instance).
func (s *Scanner) NextInline(inFlow bool) (*token.Token, error) {
	if s.remainder == "" {
		return nil, nil
	}
	return s.nextFrom(inFlow)
}

func (s *Scanner) nextFrom(inFlow bool) (*token.Token, error) {
	if s.remainder == "" {
		return nil, nil
	}

	pos := s.pos()
	tag, rest, err := stripTag(s.remainder)
	if err != nil {
		return nil, err
	}
	if tag != "" {
		s.advance(len(s.remainder) - len(rest))
		s.skipInlineSpace()
		pos = s.pos()
	}

	if inFlow {
		// Space before an opening bracket belongs to no scalar: skip past
		// it so the bracket itself, not an empty capture ending at it, is
		// what the rest of this function sees. Space before a separator
		// or closing bracket is left alone - scanPlain's empty capture
		// ending there is exactly how a missing element between commas
		// becomes null.
		i := 0
		for i < len(s.remainder) && (s.remainder[i] == ' ' || s.remainder[i] == '\t') {
			i++
		}
		if i > 0 && i < len(s.remainder) && (s.remainder[i] == '[' || s.remainder[i] == '{') {
			s.advance(i)
			pos = s.pos()
		}
	}
	if s.remainder == "" {
		return &token.Token{Kind: token.Value, Tag: tag, Position: pos}, nil
	}

	if s.remainder[0] == '[' || (inFlow && strings.ContainsRune("]{},", rune(s.remainder[0]))) {
		ch := s.remainder[0]
		s.advance(1)
		return &token.Token{Kind: token.Value, Text: string(ch), Tag: tag, Position: pos}, nil
	}

	if inFlow {
		trimmed := strings.TrimLeft(s.remainder, " \t")
		if trimmed == "-" || strings.HasPrefix(trimmed, "- ") {
			return nil, syntaxErr(ierrors.CollectionItemError, pos, "")
		}
	}

	collectionItem := false
	collectionIndent := 0
	if !inFlow {
		switch {
		case s.remainder == "-":
			collectionItem = true
			collectionIndent = s.indent + 1
			s.advance(1)
		case strings.HasPrefix(s.remainder, "- "):
			width := 1
			for width < len(s.remainder) && s.remainder[width] == ' ' {
				width++
			}
			collectionItem = true
			collectionIndent = s.indent + width
			s.advance(width)
		case strings.HasPrefix(s.remainder, "<<"):
			// merge key handled as an ordinary key below; no special casing needed here.
		}
		if collectionItem && s.remainder == "" {
			return &token.Token{Kind: token.Value, IsCollectionItem: true, CollectionIndent: collectionIndent, Tag: tag, Position: pos}, nil
		}
		if collectionItem && len(s.remainder) > 0 && (s.remainder[0] == '|' || s.remainder[0] == '>') {
			return nil, syntaxErr(ierrors.BlockModifierOnCollectionItem, pos, "")
		}
	}

	if len(s.remainder) > 0 && (s.remainder[0] == '&' || s.remainder[0] == '*') {
		return s.scanAnchorOrAlias(tag, collectionItem, collectionIndent, pos, inFlow)
	}

	return s.scanValue(inFlow, tag, collectionItem, collectionIndent, pos)
}

func (s *Scanner) scanAnchorOrAlias(tag string, collectionItem bool, collectionIndent int, pos token.Position, inFlow bool) (*token.Token, error) {
	isAnchor := s.remainder[0] == '&'
	rest := s.remainder[1:]
	if strings.HasPrefix(rest, " ") {
		return nil, syntaxErr(ierrors.InvalidName, pos, "")
	}
	name, tail := splitName(rest)
	if !validIdentifier(name) {
		return nil, syntaxErr(ierrors.InvalidName, pos, name)
	}
	s.advance(1 + len(name))
	s.skipInlineSpace()
	_ = tail

	followedByColon := len(s.remainder) >= 1 && s.remainder[0] == ':' &&
		(len(s.remainder) == 1 || s.remainder[1] == ' ')
	if followedByColon {
		return nil, syntaxErr(ierrors.AliasOnKey, pos, name)
	}

	if !isAnchor {
		trailingOK := s.remainder == "" || s.remainder[0] == '#' ||
			(inFlow && (s.remainder[0] == ',' || s.remainder[0] == ']'))
		if !trailingOK {
			return nil, syntaxErr(ierrors.AliasWithValue, pos, name)
		}
		return &token.Token{
			Kind: token.Value, AliasName: name, Tag: tag,
			IsCollectionItem: collectionItem, CollectionIndent: collectionIndent, Position: pos,
		}, nil
	}

	if s.remainder == "" {
		return &token.Token{
			Kind: token.Value, AnchorName: name, Tag: tag,
			IsCollectionItem: collectionItem, CollectionIndent: collectionIndent, Position: pos,
		}, nil
	}
	valTok, err := s.scanValue(inFlow, tag, collectionItem, collectionIndent, pos)
	if err != nil {
		return nil, err
	}
	valTok.AnchorName = name
	return valTok, nil
}

func (s *Scanner) scanValue(inFlow bool, tag string, collectionItem bool, collectionIndent int, pos token.Position) (*token.Token, error) {
	if s.remainder == "" {
		return &token.Token{Kind: token.Value, Tag: tag, IsCollectionItem: collectionItem, CollectionIndent: collectionIndent, Position: pos}, nil
	}
	switch s.remainder[0] {
	case '|', '>':
		return s.scanBlock(tag, collectionItem, collectionIndent, pos)
	case '"':
		return s.scanQuoted('"', tag, collectionItem, collectionIndent, pos)
	case '\'':
		return s.scanQuoted('\'', tag, collectionItem, collectionIndent, pos)
	default:
		return s.scanPlain(inFlow, tag, collectionItem, collectionIndent, pos)
	}
}

func (s *Scanner) scanBlock(tag string, collectionItem bool, collectionIndent int, pos token.Position) (*token.Token, error) {
	style := s.remainder[0]
	s.advance(1)
	var chomp byte
	if s.remainder != "" && (s.remainder[0] == '+' || s.remainder[0] == '-') {
		chomp = s.remainder[0]
		s.advance(1)
	}
	s.skipInlineSpace()
	if s.remainder != "" {
		return nil, syntaxErr(ierrors.InvalidBlockModifier, pos, s.remainder)
	}

	baseIndent := s.indent
	var tail []string
	for s.row < s.lines.Len() {
		if s.lines.IsBlank(s.row) {
			tail = append(tail, "")
			s.row++
			continue
		}
		if s.lines.IndentOf(s.row) <= baseIndent {
			break
		}
		tail = append(tail, s.lines.Row(s.row))
		s.row++
	}

	var text string
	if style == '|' {
		text = fold.Literal(tail)
	} else {
		text = fold.Folded(tail)
	}
	text = fold.Chomp(text, chomp)
	s.remainder = ""

	return &token.Token{
		Kind: token.Value, Text: text, Tag: tag, IsLiteral: true,
		IsCollectionItem: collectionItem, CollectionIndent: collectionIndent,
		Block: token.BlockStyle(style), ChompMode: token.Chomp(chomp), Position: pos,
	}, nil
}

func scanQuotedLine(line string, q byte) (found bool, before, after string) {
	i := 0
	for i < len(line) {
		c := line[i]
		if q == '"' && c == '\\' && i+1 < len(line) {
			i += 2
			continue
		}
		if c == q {
			if q == '\'' && i+1 < len(line) && line[i+1] == '\'' {
				i += 2
				continue
			}
			return true, line[:i], line[i+1:]
		}
		i++
	}
	return false, line, ""
}

func unescapeLine(raw string, q byte) string {
	if q == '\'' {
		return strings.ReplaceAll(raw, "''", "'")
	}
	var b strings.Builder
	i := 0
	for i < len(raw) {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) {
			if raw[i+1] == 'u' && i+6 <= len(raw) {
				if r, err := strconv.ParseUint(raw[i+2:i+6], 16, 32); err == nil {
					b.WriteRune(rune(r))
					i += 6
					continue
				}
			}
			switch raw[i+1] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case '0':
				b.WriteByte(0)
			default:
				b.WriteByte(raw[i+1])
			}
			i += 2
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

func (s *Scanner) scanQuoted(q byte, tag string, collectionItem bool, collectionIndent int, pos token.Position) (*token.Token, error) {
	found, before, after := scanQuotedLine(s.remainder[1:], q)
	if found {
		text := unescapeLine(before, q)
		s.advance(len(s.remainder) - len(after))
		return &token.Token{
			Kind: token.Value, Text: text, Tag: tag, IsLiteral: true,
			IsCollectionItem: collectionItem, CollectionIndent: collectionIndent, Position: pos,
		}, nil
	}

	buf := []string{unescapeLine(before, q)}
	row := s.row
	for {
		if row >= s.lines.Len() {
			return nil, syntaxErr(ierrors.UnclosedLiteral, pos, "")
		}
		line := s.lines.Row(row)
		found, before2, after2 := scanQuotedLine(line, q)
		row++
		if found {
			buf = append(buf, unescapeLine(before2, q))
			text := fold.Quoted(buf[0], buf[1:], q == '"')
			s.row = row
			s.curRow = row - 1
			s.indent = s.lines.IndentOf(s.curRow)
			s.remainder = after2
			s.col = len(line) - len(after2) + 1
			return &token.Token{
				Kind: token.Value, Text: text, Tag: tag, IsLiteral: true,
				IsCollectionItem: collectionItem, CollectionIndent: collectionIndent, Position: pos,
			}, nil
		}
		buf = append(buf, unescapeLine(line, q))
	}
}

func (s *Scanner) scanPlain(inFlow bool, tag string, collectionItem bool, collectionIndent int, pos token.Position) (*token.Token, error) {
	first := s.remainder

	if inFlow {
		termIdx := findFlowTerm(first)
		if colonIdx, isKey := findColon(first); isKey && colonIdx < termIdx {
			keyText := strings.TrimSpace(first[:colonIdx])
			s.advance(colonIdx)
			if err := validateKeyText(keyText, pos); err != nil {
				return nil, err
			}
			return &token.Token{Kind: token.Key, Text: keyText, Tag: tag, Position: pos}, nil
		}
		text := strings.TrimSpace(first[:termIdx])
		s.advance(termIdx)
		return &token.Token{Kind: token.Value, Text: text, Tag: tag, Position: pos}, nil
	}

	if idx, isKey := findColon(first); isKey {
		keyText := strings.TrimSpace(first[:idx])
		s.advance(idx)
		if err := validateKeyText(keyText, pos); err != nil {
			return nil, err
		}
		return &token.Token{
			Kind: token.Key, Text: keyText, Tag: tag,
			IsCollectionItem: collectionItem, CollectionIndent: collectionIndent, Position: pos,
		}, nil
	}

	baseIndent := s.indent
	var tail []string
	row := s.row
	for row < s.lines.Len() {
		if s.lines.IsComment(row) {
			break
		}
		if s.lines.IsBlank(row) {
			tail = append(tail, "")
			row++
			continue
		}
		if s.lines.IndentOf(row) <= baseIndent {
			break
		}
		line := stripTrailingComment(s.lines.Row(row))
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "-" || strings.HasPrefix(trimmed, "- ") {
			break
		}
		if _, isKeyLine := findColon(trimmed); isKeyLine {
			break
		}
		tail = append(tail, line)
		row++
	}

	startRow := s.row
	for len(tail) > 0 && tail[len(tail)-1] == "" {
		tail = tail[:len(tail)-1]
	}
	text := fold.Plain(strings.TrimSpace(first), tail)
	if row == startRow {
		// The lookahead made no progress (not even over trailing blank
		// lines): this is a single-line scalar.
		s.advance(len(s.remainder))
	} else {
		s.row = row
		s.remainder = ""
	}
	return &token.Token{
		Kind: token.Value, Text: text, Tag: tag,
		IsCollectionItem: collectionItem, CollectionIndent: collectionIndent, Position: pos,
	}, nil
}
