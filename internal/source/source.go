// Package source provides the line-addressable text source the scanner
// reads from. The entire input is split and held in memory as an indexable
// slice of lines; this module never streams (see spec Non-goals).
package source

import "strings"

// Lines is an ordered, 0-indexed, random-access sequence of text lines.
type Lines struct {
	rows []string
}

// New splits input into Lines on '\n', stripping a trailing '\r' from each
// row so CRLF input behaves the same as LF input.
func New(input string) *Lines {
	rows := strings.Split(input, "\n")
	for i, r := range rows {
		rows[i] = strings.TrimSuffix(r, "\r")
	}
	return &Lines{rows: rows}
}

// Len returns the number of rows.
func (l *Lines) Len() int {
	return len(l.rows)
}

// Row returns the raw text of row i, or "" when i is out of range.
func (l *Lines) Row(i int) string {
	if i < 0 || i >= len(l.rows) {
		return ""
	}
	return l.rows[i]
}

// LineNumber converts a 0-indexed row to the 1-based line number used in
// error messages and flat-element records.
func LineNumber(row int) int {
	return row + 1
}

// IndentOf returns the count of leading spaces on row i.
func (l *Lines) IndentOf(i int) int {
	row := l.Row(i)
	n := 0
	for n < len(row) && row[n] == ' ' {
		n++
	}
	return n
}

// IsBlank reports whether row i is empty or all whitespace.
func (l *Lines) IsBlank(i int) bool {
	return strings.TrimSpace(l.Row(i)) == ""
}

// IsComment reports whether row i, trimmed of leading indentation, starts
// a comment ('#' to end of line).
func (l *Lines) IsComment(i int) bool {
	trimmed := strings.TrimLeft(l.Row(i), " ")
	return strings.HasPrefix(trimmed, "#")
}
