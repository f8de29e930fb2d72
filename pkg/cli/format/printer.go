package format

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes styled lines to a writer. Color is a property of the
// printer, so two printers on different writers never interfere.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter returns a printer writing to w.
func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// ColorEnabled reports whether the printer emits escape codes.
func (p *Printer) ColorEnabled() bool {
	return p.color
}

// Paint styles text according to the printer's color setting.
func (p *Printer) Paint(style Style, text string) string {
	return Paint(style, text, p.color)
}

// Line prints a formatted line in one style.
func (p *Printer) Line(style Style, format string, a ...interface{}) {
	fmt.Fprintln(p.w, p.Paint(style, fmt.Sprintf(format, a...)))
}

// Status prints a styled lead followed by a plain detail, e.g. a marker and
// key in color with its description uncolored.
func (p *Printer) Status(style Style, lead, detail string) {
	if detail == "" {
		fmt.Fprintln(p.w, p.Paint(style, lead))
		return
	}
	fmt.Fprintf(p.w, "%s - %s\n", p.Paint(style, lead), detail)
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}

// Rule prints a horizontal rule of n runes.
func (p *Printer) Rule(style Style, r string, n int) {
	fmt.Fprintln(p.w, p.Paint(style, strings.Repeat(r, n)))
}

// Bullets prints each item prefixed with "• ".
func (p *Printer) Bullets(style Style, items ...string) {
	for _, item := range items {
		fmt.Fprintln(p.w, p.Paint(style, "• "+item))
	}
}
