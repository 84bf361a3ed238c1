// Package printer renders a colorized, line-numbered snippet of YAML
// source around a given line, for use by yamljson.FormatError (which the
// demo CLI calls for --highlight). Adapted from the teacher's token-stream printer, simplified
// to work from the flat []string line source this module already holds
// in memory rather than a linked list of tokens.
package printer

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Printer renders a window of source lines around a target line.
type Printer struct {
	// Context is how many lines of surrounding context to show on each
	// side of the target line. Defaults to 2 when zero.
	Context int
}

func (p *Printer) context() int {
	if p.Context <= 0 {
		return 2
	}
	return p.Context
}

// PrintErrorMessage renders msg in bold red when colored is true.
func (p *Printer) PrintErrorMessage(msg string, colored bool) string {
	if !colored {
		return msg
	}
	return color.New(color.FgHiRed, color.Bold).Sprint(msg)
}

// PrintSnippet renders lines[line-1] (1-based) plus surrounding context,
// with a right-aligned line-number gutter and the target line marked with
// a leading "> ". column, if > 0, adds a caret line under the target.
func (p *Printer) PrintSnippet(lines []string, line, column int, colored bool) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	ctx := p.context()
	start := line - ctx
	if start < 1 {
		start = 1
	}
	end := line + ctx
	if end > len(lines) {
		end = len(lines)
	}

	gutter := color.New(color.Bold, color.FgHiWhite)
	var b strings.Builder
	for n := start; n <= end; n++ {
		marker := "  "
		if n == line {
			marker = "> "
		}
		header := fmt.Sprintf("%s%3d | ", marker, n)
		if colored {
			header = gutter.Sprint(header)
		}
		fmt.Fprintf(&b, "%s%s\n", header, lines[n-1])
		if n == line && column > 0 {
			pad := strings.Repeat(" ", len(marker)+6+column-1)
			caret := pad + "^"
			if colored {
				caret = color.New(color.FgHiRed).Sprint(caret)
			}
			fmt.Fprintln(&b, caret)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
