// Package resolve turns the parser's flat ast.List, in which aliases and
// merge keys are still unresolved references, into a fully self-contained
// list ready for emission: spec §4.3 splices anchor subtrees in at every
// alias site, and spec §4.4 expands "<<" merge keys into their enclosing
// mapping with local keys winning over merged ones.
package resolve

import (
	"github.com/corewell/yamljson/ast"
	ierrors "github.com/corewell/yamljson/internal/errors"
	"github.com/corewell/yamljson/token"
)

// MergeKeyName is the YAML-standard merge key, which Resolve uses when
// it is given an empty merge key name. The top-level option layer can
// pass a different name.
const MergeKeyName = "<<"

type anchorRange struct {
	start, end int // end == start for a scalar anchor, else the matching closer
}

// Resolve splices alias references and expands merge keys in list,
// returning a new, fully self-contained list. list is not mutated.
func Resolve(list ast.List, mergeKey string) (ast.List, error) {
	if mergeKey == "" {
		mergeKey = MergeKeyName
	}
	anchors, err := collectAnchors(list)
	if err != nil {
		return nil, err
	}
	if err := validateAliasOrder(list, anchors); err != nil {
		return nil, err
	}
	list, err = resolveMerges(list, anchors, mergeKey)
	if err != nil {
		return nil, err
	}
	// Merge expansion can shift every index after the merge point, so the
	// anchor table is rebuilt before the alias pass runs over the result.
	anchors, err = collectAnchors(list)
	if err != nil {
		return nil, err
	}
	return resolveAliases(list, anchors)
}

func tokenAt(el *ast.Element) *token.Token {
	return &token.Token{Position: token.Position{Line: el.Line}}
}

func collectAnchors(list ast.List) (map[string]anchorRange, error) {
	anchors := map[string]anchorRange{}
	for i, el := range list {
		if el.Anchor == "" {
			continue
		}
		if _, dup := anchors[el.Anchor]; dup {
			return nil, ierrors.New(ierrors.DuplicateAnchor, tokenAt(el), el.Anchor)
		}
		end := i
		if el.Kind.IsOpener() {
			end = list.MatchingCloser(i)
			if end == -1 {
				return nil, ierrors.New(ierrors.InvalidIndentation, tokenAt(el), "unterminated anchored container")
			}
		}
		anchors[el.Anchor] = anchorRange{start: i, end: end}
	}
	return anchors, nil
}

// validateAliasOrder enforces spec.md §3.3's anchor-before-alias rule:
// an alias may only reference an anchor that appears earlier in source
// order. It walks list once, before any merge or alias expansion runs,
// so every index in anchors still lines up with list's own indices -
// including an alias that sits inside another anchor's own body (an
// alias-of-an-alias), since that body is still the original, unspliced
// source text at this point.
func validateAliasOrder(list ast.List, anchors map[string]anchorRange) error {
	for i, el := range list {
		if el.Kind != ast.Entry || el.Alias == "" {
			continue
		}
		rng, ok := anchors[el.Alias]
		if !ok {
			return ierrors.New(ierrors.AnchorNotFound, tokenAt(el), el.Alias)
		}
		if rng.start >= i {
			return ierrors.New(ierrors.AnchorNotFound, tokenAt(el), el.Alias)
		}
	}
	return nil
}

// resolveAliases replaces every Entry carrying an unresolved Alias with
// either a copy of the anchor's scalar or a re-indented copy of its whole
// opener..closer run. It iterates to a fixed point so that an alias
// sitting inside another anchor's own subtree - an alias of an alias -
// still resolves, and reports RecursiveAlias if an anchor's own body
// refers back to itself.
func resolveAliases(list ast.List, anchors map[string]anchorRange) (ast.List, error) {
	for pass := 0; pass <= len(list); pass++ {
		out, changed, err := resolveAliasPass(list, anchors)
		if err != nil {
			return nil, err
		}
		if !changed {
			return out, nil
		}
		list = out
	}
	return nil, ierrors.New(ierrors.RecursiveAlias, nil, "")
}

func resolveAliasPass(list ast.List, anchors map[string]anchorRange) (ast.List, bool, error) {
	var out ast.List
	changed := false
	for i := 0; i < len(list); i++ {
		el := list[i]
		if el.Kind != ast.Entry || el.Alias == "" {
			out = append(out, el)
			continue
		}
		rng, ok := anchors[el.Alias]
		if !ok {
			return nil, false, ierrors.New(ierrors.AnchorNotFound, tokenAt(el), el.Alias)
		}
		if i >= rng.start && i <= rng.end {
			return nil, false, ierrors.New(ierrors.RecursiveAlias, tokenAt(el), el.Alias)
		}
		src := list[rng.start]
		if !src.Kind.IsOpener() {
			cp := *el
			cp.Alias = ""
			cp.Value = src.Value
			cp.Literal = src.Literal
			cp.Tag = src.Tag
			out = append(out, &cp)
			changed = true
			continue
		}
		srcDepth := src.Indent
		for k := rng.start; k <= rng.end; k++ {
			cp := *list[k]
			cp.Indent = cp.Indent - srcDepth + el.Indent
			if k == rng.start {
				cp.Key = el.Key
				cp.HasKey = el.HasKey
				cp.Anchor = ""
			}
			out = append(out, &cp)
		}
		changed = true
	}
	return out, changed, nil
}

// resolveMerges expands every "<<: *anchor" entry into its enclosing
// mapping. A key the enclosing mapping defines explicitly - anywhere in
// the mapping, not only before the merge key - always wins; the merge
// source's entire subtree for that key is dropped rather than just its
// scalar.
func resolveMerges(list ast.List, anchors map[string]anchorRange, mergeKey string) (ast.List, error) {
	var out ast.List
	for i := 0; i < len(list); i++ {
		el := list[i]
		if el.Kind != ast.Entry || !el.HasKey || el.Key != mergeKey {
			out = append(out, el)
			continue
		}

		parentOpen := findParentOpen(list, i, el.Indent)
		if parentOpen < 0 || list[parentOpen].Kind != ast.MapOpen {
			return nil, ierrors.New(ierrors.MergeInArray, tokenAt(el), "")
		}
		if el.Alias == "" {
			return nil, ierrors.New(ierrors.InvalidMerge, tokenAt(el), "")
		}
		rng, ok := anchors[el.Alias]
		if !ok {
			return nil, ierrors.New(ierrors.AnchorNotFound, tokenAt(el), el.Alias)
		}
		if !list[rng.start].Kind.IsOpener() || list[rng.start].Kind != ast.MapOpen {
			return nil, ierrors.New(ierrors.MergeOnScalar, tokenAt(el), el.Alias)
		}

		siblings := siblingKeySet(list, parentOpen, mergeKey)
		merged := mergeChildren(list, rng, siblings, el.Indent)
		out = append(out, merged...)
	}
	return out, nil
}

// findParentOpen returns the index of the opener directly enclosing the
// element at childIndex, or -1 if childIndex is at the document root.
func findParentOpen(list ast.List, childIndex int, childIndent int) int {
	for j := childIndex - 1; j >= 0; j-- {
		if list[j].Kind.IsOpener() && list[j].Indent == childIndent-1 {
			if list.MatchingCloser(j) >= childIndex {
				return j
			}
		}
	}
	return -1
}

// siblingKeySet collects every key the mapping opened at parentOpen
// defines explicitly, other than the merge key itself.
func siblingKeySet(list ast.List, parentOpen int, mergeKey string) map[string]bool {
	set := map[string]bool{}
	parentClose := list.MatchingCloser(parentOpen)
	childIndent := list[parentOpen].Indent + 1
	for i := parentOpen + 1; i < parentClose; i++ {
		el := list[i]
		if el.Indent == childIndent && el.HasKey && el.Key != mergeKey {
			set[el.Key] = true
		}
	}
	return set
}

// mergeChildren copies the direct children of the mapping anchored at
// rng into the enclosing mapping at targetIndent, skipping any child
// whose key the enclosing mapping already defines.
func mergeChildren(list ast.List, rng anchorRange, siblings map[string]bool, targetIndent int) ast.List {
	var out ast.List
	srcDepth := list[rng.start].Indent
	i := rng.start + 1
	for i < rng.end {
		child := list[i]
		end := i
		if child.Kind.IsOpener() {
			end = list.MatchingCloser(i)
		}
		if child.HasKey && siblings[child.Key] {
			i = end + 1
			continue
		}
		for k := i; k <= end; k++ {
			cp := *list[k]
			cp.Indent = cp.Indent - srcDepth - 1 + targetIndent
			out = append(out, &cp)
		}
		i = end + 1
	}
	return out
}
