// Package ui renders bulkmv's operator-facing output on the diagnostic
// stream: styled rename lines, prompts and terminal clearing.
package ui

import (
	"io"

	"github.com/arthur-debert/bulkmv/pkg/types"
	"github.com/arthur-debert/bulkmv/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Painter applies the semantic styles for one output stream.
type Painter struct {
	renderer *lipgloss.Renderer
	format   Format
}

// NewPainter creates a painter for w. FormatAuto is resolved against w.
func NewPainter(format Format, w io.Writer) *Painter {
	format = format.Resolve(w)

	renderer := lipgloss.NewRenderer(w)
	if format == FormatText {
		renderer.SetColorProfile(termenv.Ascii)
	} else if renderer.ColorProfile() == termenv.Ascii {
		// Forced terminal output on a pipe still gets colors
		renderer.SetColorProfile(termenv.ANSI256)
	}

	return &Painter{renderer: renderer, format: format}
}

// Format returns the resolved format.
func (p *Painter) Format() Format {
	return p.format
}

// Paint renders s with the named style.
func (p *Painter) Paint(style, s string) string {
	return styles.GetStyle(style).Renderer(p.renderer).Render(s)
}

// Pair renders "old -> new".
func (p *Painter) Pair(pair types.RenamePair) string {
	return p.Paint("OldPath", pair.Old.String()) +
		p.Paint("Arrow", " -> ") +
		p.Paint("NewPath", pair.New.String())
}

// ClearScreen clears w and homes the cursor when w is a terminal. It is a
// no-op on anything else.
func ClearScreen(w io.Writer) {
	if !IsTerminal(w) {
		return
	}
	termenv.NewOutput(w).ClearScreen()
}
