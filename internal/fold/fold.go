// Package fold implements the multiline scalar folding rules from spec
// §4.1: plain, folded (">") and literal ("|") joining, chomp modifiers,
// and left-margin removal. It also owns the internal newline placeholder
// that lets the scanner and resolvers carry a logical line break through
// left-margin trimming without it being mistaken for a real '\n' in the
// lines it is still slicing.
package fold

import "strings"

// NL is the internal placeholder for a logical newline inside a scalar
// still being processed. It is expanded to an actual "\n" only by
// Expand, which the emitter calls immediately before JSON-escaping a
// scalar's final text.
const NL = "\x00\x01"

// Expand replaces every placeholder with a real newline.
func Expand(s string) string {
	return strings.ReplaceAll(s, NL, "\n")
}

// DeIndent removes the minimum common leading-space count across the
// non-blank lines of tail, clipping shorter blank lines entirely. tail
// holds the continuation lines of a multi-line scalar (everything after
// the first, which was already positioned by the scanner's own cursor).
func DeIndent(tail []string) []string {
	min := -1
	for _, l := range tail {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := leadingSpaces(l)
		if min == -1 || n < min {
			min = n
		}
	}
	if min <= 0 {
		return tail
	}
	out := make([]string, len(tail))
	for i, l := range tail {
		if len(l) < min {
			out[i] = ""
			continue
		}
		out[i] = l[min:]
	}
	return out
}

func leadingSpaces(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

// Plain folds a plain (unquoted) multi-line scalar: consecutive non-empty
// lines join with a single space after left-trimming; each blank line
// contributes one placeholder newline.
func Plain(first string, tail []string) string {
	tail = DeIndent(tail)
	var b strings.Builder
	b.WriteString(strings.TrimSpace(first))
	prevBlank := first == ""
	for _, l := range tail {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" {
			b.WriteString(NL)
			prevBlank = true
			continue
		}
		if b.Len() > 0 && !prevBlank {
			b.WriteString(" ")
		}
		b.WriteString(trimmed)
		prevBlank = false
	}
	return b.String()
}

// Folded implements ">" folding: like Plain, except a line that (after
// DeIndent) still carries leading indentation is kept on its own line
// with a hard placeholder break rather than joined to its neighbors.
func Folded(tail []string) string {
	tail = DeIndent(tail)
	var b strings.Builder
	prevBlank := true
	prevMoreIndented := false
	for i, l := range tail {
		if strings.TrimSpace(l) == "" {
			b.WriteString(NL)
			prevBlank = true
			prevMoreIndented = false
			continue
		}
		moreIndented := leadingSpaces(l) > 0
		if i > 0 && !prevBlank {
			if moreIndented || prevMoreIndented {
				b.WriteString(NL)
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString(strings.TrimRight(l, " "))
		prevBlank = false
		prevMoreIndented = moreIndented
	}
	return b.String()
}

// Literal implements "|" folding: every captured line is kept verbatim
// (trailing spaces included) and terminated by a placeholder newline.
func Literal(tail []string) string {
	tail = DeIndent(tail)
	var b strings.Builder
	for _, l := range tail {
		b.WriteString(l)
		b.WriteString(NL)
	}
	return b.String()
}

// Quoted folds a quoted scalar's captured lines: tail is DeIndented and
// joined like Plain, except double-quoted scalars (preserveEdges) keep
// leading and trailing blank lines instead of trimming them.
func Quoted(first string, tail []string, preserveEdges bool) string {
	tail = DeIndent(tail)
	lines := append([]string{first}, tail...)
	if !preserveEdges {
		start := 0
		for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
			start++
		}
		end := len(lines)
		for end > start && strings.TrimSpace(lines[end-1]) == "" {
			end--
		}
		lines = lines[start:end]
	}
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.TrimSpace(lines[0]))
	prevBlank := strings.TrimSpace(lines[0]) == ""
	for _, l := range lines[1:] {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" {
			b.WriteString(NL)
			prevBlank = true
			continue
		}
		if b.Len() > 0 && !prevBlank {
			b.WriteString(" ")
		}
		b.WriteString(trimmed)
		prevBlank = false
	}
	return b.String()
}

// Chomp applies the trailing-newline policy: Clip keeps exactly one
// trailing placeholder newline, Strip removes every trailing one, Keep
// leaves the text untouched. TrimRight's cutset is the two placeholder
// bytes individually, which is safe here because neither byte occurs in
// processed scalar text except as part of NL.
func Chomp(s string, mode byte) string {
	switch mode {
	case '-':
		return strings.TrimRight(s, NL)
	case '+':
		return s
	default:
		trimmed := strings.TrimRight(s, NL)
		return trimmed + NL
	}
}
