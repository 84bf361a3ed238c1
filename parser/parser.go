// Package parser implements the structural parser from spec §4.2: it
// consumes tokens from the scanner and builds the flat ast.List,
// dispatching on indentation to recognize block mappings, block
// sequences, and inline flow sequences, and nesting them in any
// combination.
package parser

import (
	"github.com/corewell/yamljson/ast"
	ierrors "github.com/corewell/yamljson/internal/errors"
	"github.com/corewell/yamljson/scanner"
	"github.com/corewell/yamljson/token"
)

// Parser turns a YAML document into a flat ast.List.
type Parser struct {
	scan *scanner.Scanner
	list ast.List

	// AllowDuplicateKeys disables the DuplicatedKey check in block
	// mappings. When true, later occurrences simply appear later in the
	// flat list rather than replacing or being rejected; the emitter
	// writes every occurrence, so the JSON text repeats the key.
	AllowDuplicateKeys bool
}

// New creates a Parser over input.
func New(input string) *Parser {
	return &Parser{scan: scanner.New(input)}
}

// Parse runs New(input).Parse().
func Parse(input string) (ast.List, error) {
	return New(input).Parse()
}

func errAt(kind ierrors.Kind, pos token.Position, detail string) error {
	return ierrors.New(kind, &token.Token{Position: pos}, detail)
}

// Parse returns the flat element list for the whole document. An empty
// document yields an empty list, which the emitter renders as JSON null.
func (p *Parser) Parse() (ast.List, error) {
	if p.scan.AtEOF() {
		return ast.List{}, nil
	}

	b, col, _ := p.scan.Peek()
	switch {
	case b == '[':
		tok, err := p.scan.Next(false)
		if err != nil {
			return nil, err
		}
		p.open(ast.SeqOpen, "", false, tok, 0)
		if err := p.parseFlowSeq(1); err != nil {
			return nil, err
		}
		p.close(ast.SeqClose, 0)

	case b == '-':
		p.list = append(p.list, &ast.Element{Kind: ast.SeqOpen, Indent: 0})
		if err := p.parseSequence(1, col); err != nil {
			return nil, err
		}
		p.list = append(p.list, &ast.Element{Kind: ast.SeqClose, Indent: 0})

	case p.scan.PeekIsKey():
		p.list = append(p.list, &ast.Element{Kind: ast.MapOpen, Indent: 0})
		if err := p.parseMapping(1, col); err != nil {
			return nil, err
		}
		p.list = append(p.list, &ast.Element{Kind: ast.MapClose, Indent: 0})

	default:
		tok, err := p.scan.Next(false)
		if err != nil {
			return nil, err
		}
		if tok != nil {
			p.list = append(p.list, &ast.Element{
				Kind: ast.Entry, Value: tok.Text, Literal: tok.IsLiteral,
				Anchor: tok.AnchorName, Alias: tok.AliasName, Tag: tok.Tag,
				Indent: 0, Line: tok.Position.Line,
			})
		}
	}

	if !p.scan.AtEOF() {
		return nil, errAt(ierrors.UnconsumedContent, token.Position{}, "")
	}
	return p.list, nil
}

func (p *Parser) open(kind ast.Kind, key string, hasKey bool, tok *token.Token, depth int) {
	p.list = append(p.list, &ast.Element{
		Kind: kind, Key: key, HasKey: hasKey,
		Anchor: tok.AnchorName, Tag: tok.Tag, Indent: depth, Line: tok.Position.Line,
	})
}

func (p *Parser) close(kind ast.Kind, depth int) {
	p.list = append(p.list, &ast.Element{Kind: kind, Indent: depth})
}

// parseMapping reads zero or more "key: value" entries whose key sits at
// column col, stopping at the first line that outdents past col.
func (p *Parser) parseMapping(depth int, col int) error {
	seen := map[string]bool{}
	for {
		_, ind, ok := p.scan.Peek()
		if !ok {
			return nil
		}
		if ind < col {
			return nil
		}
		if ind > col {
			pos := token.Position{}
			if tok, err := p.scan.Next(false); err == nil && tok != nil {
				pos = tok.Position
			}
			return errAt(ierrors.InvalidIndentation, pos, "")
		}
		if !p.scan.PeekIsKey() {
			return errAt(ierrors.ExpectedKey, token.Position{}, "")
		}
		keyTok, err := p.scan.Next(false)
		if err != nil {
			return err
		}
		if keyTok == nil {
			return nil
		}
		if seen[keyTok.Text] && !p.AllowDuplicateKeys {
			return errAt(ierrors.DuplicatedKey, keyTok.Position, keyTok.Text)
		}
		seen[keyTok.Text] = true

		p.scan.SkipColon()
		valTok, err := p.scan.NextInline(false)
		if err != nil {
			return err
		}
		if valTok == nil {
			if err := p.parseAbsentValue(depth, keyTok.Text, true, col, keyTok.Position.Line); err != nil {
				return err
			}
			continue
		}
		if err := p.parseValue(valTok, depth, keyTok.Text, true, col); err != nil {
			return err
		}
	}
}

// parseAbsentValue handles a key (or collection item) whose ':' / '-' was
// the last thing on its line: it looks ahead to decide between a nested
// block container on the following lines and a plain null value.
func (p *Parser) parseAbsentValue(depth int, key string, hasKey bool, ownCol int, line int) error {
	b, ind, ok := p.scan.Peek()
	if !ok || ind <= ownCol {
		p.list = append(p.list, &ast.Element{Kind: ast.Entry, Key: key, HasKey: hasKey, Indent: depth, Line: line})
		return nil
	}
	if b == '-' {
		p.list = append(p.list, &ast.Element{Kind: ast.SeqOpen, Key: key, HasKey: hasKey, Indent: depth, Line: line})
		if err := p.parseSequence(depth+1, ind); err != nil {
			return err
		}
		p.close(ast.SeqClose, depth)
		return nil
	}
	if p.scan.PeekIsKey() {
		p.list = append(p.list, &ast.Element{Kind: ast.MapOpen, Key: key, HasKey: hasKey, Indent: depth, Line: line})
		if err := p.parseMapping(depth+1, ind); err != nil {
			return err
		}
		p.close(ast.MapClose, depth)
		return nil
	}
	nextTok, err := p.scan.Next(false)
	if err != nil {
		return err
	}
	if nextTok == nil {
		p.list = append(p.list, &ast.Element{Kind: ast.Entry, Key: key, HasKey: hasKey, Indent: depth, Line: line})
		return nil
	}
	p.list = append(p.list, &ast.Element{
		Kind: ast.Entry, Key: key, HasKey: hasKey, Value: nextTok.Text, Literal: nextTok.IsLiteral,
		Anchor: nextTok.AnchorName, Tag: nextTok.Tag, Indent: depth, Line: nextTok.Position.Line,
	})
	return nil
}

// parseSequence reads zero or more "- item" entries whose dash sits at
// column col, stopping at the first line that outdents past col or is
// not itself a sequence item.
func (p *Parser) parseSequence(depth int, col int) error {
	for {
		b, ind, ok := p.scan.Peek()
		if !ok {
			return nil
		}
		if ind < col {
			return nil
		}
		if ind > col {
			pos := token.Position{}
			if tok, err := p.scan.Next(false); err == nil && tok != nil {
				pos = tok.Position
			}
			return errAt(ierrors.InvalidIndentation, pos, "")
		}
		if b != '-' {
			return nil
		}
		tok, err := p.scan.Next(false)
		if err != nil {
			return err
		}
		if tok == nil {
			return nil
		}

		if tok.Kind == token.Key {
			// "- key: value": the dash introduces a mapping inline, whose
			// first key is this token.
			p.open(ast.MapOpen, "", false, tok, depth)
			p.scan.SkipColon()
			valTok, err := p.scan.NextInline(false)
			if err != nil {
				return err
			}
			if valTok == nil {
				if err := p.parseAbsentValue(depth+1, tok.Text, true, tok.CollectionIndent, tok.Position.Line); err != nil {
					return err
				}
			} else if err := p.parseValue(valTok, depth+1, tok.Text, true, tok.CollectionIndent); err != nil {
				return err
			}
			if err := p.parseMapping(depth+1, tok.CollectionIndent); err != nil {
				return err
			}
			p.close(ast.MapClose, depth)
			continue
		}

		if err := p.parseValue(tok, depth, "", false, col); err != nil {
			return err
		}
	}
}

// parseValue turns an already-fetched value-position token (a mapping
// value or a sequence item) into one or more ast.Elements at depth,
// recursing into a nested block container when tok carries no content
// of its own - meaning the value lives entirely on the following lines.
func (p *Parser) parseValue(tok *token.Token, depth int, key string, hasKey bool, ownCol int) error {
	switch {
	case tok.Text == "[":
		p.open(ast.SeqOpen, key, hasKey, tok, depth)
		if err := p.parseFlowSeq(depth + 1); err != nil {
			return err
		}
		p.close(ast.SeqClose, depth)
		return nil

	case tok.AliasName != "":
		p.list = append(p.list, &ast.Element{
			Kind: ast.Entry, Key: key, HasKey: hasKey, Alias: tok.AliasName,
			Indent: depth, Line: tok.Position.Line,
		})
		return nil

	case tok.IsLiteral || tok.Text != "":
		// A quoted or block scalar (IsLiteral) is always a complete,
		// terminal value even when its text is empty (""); a non-literal
		// token only lands here when it actually carries text.
		p.list = append(p.list, &ast.Element{
			Kind: ast.Entry, Key: key, HasKey: hasKey, Value: tok.Text, Literal: tok.IsLiteral,
			Anchor: tok.AnchorName, Tag: tok.Tag, Indent: depth, Line: tok.Position.Line,
		})
		return nil

	default:
		// tok carries no inline text: an anchor or tag on it (if any)
		// belongs to whatever follows - a nested container, a plain
		// scalar continuation, or nothing at all (a null value).
		b, ind, ok := p.scan.Peek()
		if !ok || ind <= ownCol {
			p.list = append(p.list, &ast.Element{
				Kind: ast.Entry, Key: key, HasKey: hasKey, Anchor: tok.AnchorName, Tag: tok.Tag,
				Indent: depth, Line: tok.Position.Line,
			})
			return nil
		}
		if b == '-' {
			p.open(ast.SeqOpen, key, hasKey, tok, depth)
			if err := p.parseSequence(depth+1, ind); err != nil {
				return err
			}
			p.close(ast.SeqClose, depth)
			return nil
		}
		if p.scan.PeekIsKey() {
			p.open(ast.MapOpen, key, hasKey, tok, depth)
			if err := p.parseMapping(depth+1, ind); err != nil {
				return err
			}
			p.close(ast.MapClose, depth)
			return nil
		}
		// Plain scalar written entirely on the following line(s).
		nextTok, err := p.scan.Next(false)
		if err != nil {
			return err
		}
		if nextTok == nil {
			p.list = append(p.list, &ast.Element{
				Kind: ast.Entry, Key: key, HasKey: hasKey, Anchor: tok.AnchorName, Tag: tok.Tag,
				Indent: depth, Line: tok.Position.Line,
			})
			return nil
		}
		p.list = append(p.list, &ast.Element{
			Kind: ast.Entry, Key: key, HasKey: hasKey, Value: nextTok.Text, Literal: nextTok.IsLiteral,
			Anchor: tok.AnchorName, Tag: tok.Tag, Indent: depth, Line: nextTok.Position.Line,
		})
		return nil
	}
}

// parseFlowMapEntry handles the one carve-out spec §4.2.3 makes from its
// flow-mapping non-goal: a bare "key: value" pair wrapped in "{ }" as an
// element of a flow sequence, read as a single-pair mapping at one
// deeper indent than the sequence item itself.
func (p *Parser) parseFlowMapEntry(open *token.Token, depth int) error {
	p.open(ast.MapOpen, "", false, open, depth)

	keyTok, err := p.scan.Next(true)
	if err != nil {
		return err
	}
	if keyTok == nil || keyTok.Kind != token.Key {
		return errAt(ierrors.InvalidArray, open.Position, "")
	}
	p.scan.SkipColon()

	valTok, err := p.scan.NextInline(true)
	if err != nil {
		return err
	}
	if valTok == nil {
		p.list = append(p.list, &ast.Element{Kind: ast.Entry, Key: keyTok.Text, HasKey: true, Indent: depth + 1, Line: keyTok.Position.Line})
	} else if err := p.parseValue(valTok, depth+1, keyTok.Text, true, keyTok.Position.Column); err != nil {
		return err
	}

	closeTok, err := p.scan.Next(true)
	if err != nil {
		return err
	}
	if closeTok == nil || closeTok.Text != "}" {
		return errAt(ierrors.InvalidArray, open.Position, "")
	}
	p.close(ast.MapClose, depth)
	return nil
}

// parseFlowSeq reads the comma-separated body of an inline "[...]"
// sequence, already past its opening bracket, up to and including its
// closing "]".
func (p *Parser) parseFlowSeq(depth int) error {
	expectValue := true
	for {
		tok, err := p.scan.Next(true)
		if err != nil {
			return err
		}
		if tok == nil {
			return errAt(ierrors.UnclosedArray, token.Position{}, "")
		}
		switch tok.Text {
		case "]":
			return nil
		case ",":
			if expectValue {
				return errAt(ierrors.InvalidArray, tok.Position, "")
			}
			expectValue = true
			continue
		case "[":
			p.open(ast.SeqOpen, "", false, tok, depth)
			if err := p.parseFlowSeq(depth + 1); err != nil {
				return err
			}
			p.close(ast.SeqClose, depth)
			expectValue = false
			continue
		case "{":
			if err := p.parseFlowMapEntry(tok, depth); err != nil {
				return err
			}
			expectValue = false
			continue
		}
		if tok.AliasName != "" {
			p.list = append(p.list, &ast.Element{Kind: ast.Entry, Alias: tok.AliasName, Indent: depth, Line: tok.Position.Line})
		} else {
			p.list = append(p.list, &ast.Element{
				Kind: ast.Entry, Value: tok.Text, Literal: tok.IsLiteral,
				Anchor: tok.AnchorName, Tag: tok.Tag, Indent: depth, Line: tok.Position.Line,
			})
		}
		expectValue = false
	}
}
