package format

import (
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Style names a terminal text style.
type Style int

const (
	Plain Style = iota
	Bold
	Success
	Warning
	Failure
	Info
	Header
	Accent
	Muted
)

var styleAttributes = map[Style][]color.Attribute{
	Bold:    {color.Bold},
	Success: {color.FgGreen},
	Warning: {color.FgYellow},
	Failure: {color.FgRed},
	Info:    {color.FgBlue},
	Header:  {color.FgCyan},
	Accent:  {color.FgMagenta},
	Muted:   {color.FgWhite},
}

// Paint renders text in the given style. It holds no state: whether escape
// codes are emitted is decided by enabled alone, never by fatih/color's
// package-level NoColor switch.
func Paint(style Style, text string, enabled bool) string {
	attrs, ok := styleAttributes[style]
	if !enabled || !ok {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

// ColorEnabled decides whether output written to w should be colored.
// NO_COLOR and ENVCTL_NO_COLOR disable color, ENVCTL_FORCE_COLOR forces it,
// otherwise w must be a terminal.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("ENVCTL_NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("ENVCTL_FORCE_COLOR"); ok {
		return true
	}

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}

	// Classic Windows consoles only understand ANSI under these hosts
	if runtime.GOOS == "windows" {
		_, hasAnsicon := os.LookupEnv("ANSICON")
		_, hasWT := os.LookupEnv("WT_SESSION")
		return hasAnsicon || hasWT
	}
	return true
}
