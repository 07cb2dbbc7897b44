package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"iona/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.Faint)
)

// Renderer writes human-readable diagnostics. Colors follow the Colors flag;
// callers decide based on terminal detection.
type Renderer struct {
	Files  *source.FileSet
	Colors bool
}

// Render writes every diagnostic in the bag to w, sorted and deduplicated.
func (r *Renderer) Render(w io.Writer, bag *Bag) {
	bag.Sort()
	bag.Dedup()
	width := 0
	for _, d := range bag.Items() {
		if lw := runewidth.StringWidth(r.label(d)); lw > width {
			width = lw
		}
	}
	for _, d := range bag.Items() {
		label := r.label(d)
		pad := width - runewidth.StringWidth(label)
		fmt.Fprintf(w, "%s[%s]%s %s\n", r.paint(d.Severity, label), d.Code, spaces(pad), d.Message)
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s\n", r.paintNote("note:"), n.Msg)
		}
	}
}

func (r *Renderer) label(d Diagnostic) string {
	path := ""
	if r.Files != nil {
		path = r.Files.Path(d.Primary.File)
	}
	if path == "" {
		return d.Severity.String()
	}
	return fmt.Sprintf("%s: %s", d.Severity, path)
}

func (r *Renderer) paint(sev Severity, s string) string {
	if !r.Colors {
		return s
	}
	switch sev {
	case SevError:
		return errorColor.Sprint(s)
	case SevWarning:
		return warningColor.Sprint(s)
	default:
		return infoColor.Sprint(s)
	}
}

func (r *Renderer) paintNote(s string) string {
	if !r.Colors {
		return s
	}
	return noteColor.Sprint(s)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = ' '
	}
	return string(buf)
}
