package format

import (
	"fmt"
	"regexp"

	"github.com/pterm/pterm"
)

var ansiRegex = regexp.MustCompile("\x1b\\[[0-9;]*m")

// StripANSI removes color escape sequences from s.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// Table renders rows with pterm, the first row being the header. Escape
// codes are stripped when the printer is not colored.
func (p *Printer) Table(rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	table := pterm.DefaultTable.
		WithHasHeader(true).
		WithHeaderStyle(pterm.NewStyle(pterm.FgCyan, pterm.Bold)).
		WithData(rows)

	out, err := table.Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	if !p.color {
		out = StripANSI(out)
	}
	_, err = fmt.Fprintln(p.w, out)
	return err
}
