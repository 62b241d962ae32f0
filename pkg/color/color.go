// Package color paints console labels for terminal output.
package color

import (
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/kazz187/techconsole/internal/vocab"
)

// Enabled reports whether w should receive ANSI escapes. NO_COLOR and a
// non-terminal writer disable colour; FORCE_COLOR overrides both.
func Enabled(w io.Writer) bool {
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func attributes(s vocab.Severity) []color.Attribute {
	switch s {
	case vocab.SeverityError:
		return []color.Attribute{color.FgRed, color.Bold}
	case vocab.SeverityWarning:
		return []color.Attribute{color.FgYellow}
	case vocab.SeveritySuccess:
		return []color.Attribute{color.FgGreen}
	case vocab.SeverityInfo:
		return []color.Attribute{color.FgBlue}
	case vocab.SeverityProcessing:
		return []color.Attribute{color.FgCyan}
	default:
		return nil
	}
}

// Painter colours text by severity. The zero value prints plain text.
type Painter struct {
	enabled bool
}

func NewPainter(w io.Writer) Painter {
	return Painter{enabled: Enabled(w)}
}

// Severity wraps text in the colour of s.
func (p Painter) Severity(s vocab.Severity, text string) string {
	attrs := attributes(s)
	if !p.enabled || len(attrs) == 0 {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

// Label paints a vocabulary label.
func (p Painter) Label(l vocab.Label) string {
	return p.Severity(l.Severity, l.Text)
}

// Bold is used for headings.
func (p Painter) Bold(text string) string {
	if !p.enabled {
		return text
	}
	c := color.New(color.Bold)
	c.EnableColor()
	return c.Sprint(text)
}
