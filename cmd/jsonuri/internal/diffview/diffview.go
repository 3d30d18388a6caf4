// Package diffview renders line diffs between two serialized documents for
// terminal output.
package diffview

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Kind classifies a diff line.
type Kind int

const (
	Same Kind = iota
	Added
	Removed
)

// Line is one line of a diff, without its trailing newline.
type Line struct {
	Kind Kind
	Text string
}

// Lines computes a line-level diff from before to after.
func Lines(before, after string) []Line {
	dmp := diffpatch.New()
	a, b, table := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	var lines []Line
	for _, d := range diffs {
		kind := Same
		switch d.Type {
		case diffpatch.DiffInsert:
			kind = Added
		case diffpatch.DiffDelete:
			kind = Removed
		}
		for _, text := range splitLines(d.Text) {
			lines = append(lines, Line{Kind: kind, Text: text})
		}
	}
	return lines
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Changed reports whether any line differs.
func Changed(lines []Line) bool {
	for _, l := range lines {
		if l.Kind != Same {
			return true
		}
	}
	return false
}

// Printer writes diffs in unified-like form: "+" for added lines, "-" for
// removed lines and " " for context.
type Printer struct {
	w       io.Writer
	added   *color.Color
	removed *color.Color
}

// NewPrinter creates a Printer writing to w. Colors are used only when
// colored is true.
func NewPrinter(w io.Writer, colored bool) *Printer {
	p := &Printer{
		w:       w,
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
	}
	if colored {
		p.added.EnableColor()
		p.removed.EnableColor()
	} else {
		p.added.DisableColor()
		p.removed.DisableColor()
	}
	return p
}

// Print writes the diff from before to after under the given header.
// Nothing is written when the two are identical.
func (p *Printer) Print(header string, before, after []byte) error {
	lines := Lines(string(before), string(after))
	if !Changed(lines) {
		return nil
	}

	if _, err := fmt.Fprintf(p.w, "--- %s\n+++ %s\n", header, header); err != nil {
		return err
	}
	for _, l := range lines {
		var err error
		switch l.Kind {
		case Added:
			_, err = p.added.Fprintln(p.w, "+"+l.Text)
		case Removed:
			_, err = p.removed.Fprintln(p.w, "-"+l.Text)
		default:
			_, err = fmt.Fprintln(p.w, " "+l.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// IsTerminal reports whether f is attached to a terminal, in which case
// colored output is appropriate.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
