package topics

import (
	"os"

	"github.com/arthur-debert/bulkmv/pkg/ui"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
)

// GlamourRenderer renders markdown topics with glamour, following the same
// output format choice as the rest of the CLI. Other topics pass through.
type GlamourRenderer struct {
	// Format is read on every render, so it can follow a --format flag that
	// is parsed after the renderer is built. Nil means ui.FormatAuto.
	Format func() ui.Format
	// Width wraps rendered text; 0 keeps glamour's default
	Width int
}

// NewGlamourRenderer creates a markdown renderer bound to a format source
func NewGlamourRenderer(format func() ui.Format) *GlamourRenderer {
	return &GlamourRenderer{Format: format}
}

// Style returns the glamour style for the current format. Auto is resolved
// against stdout, where topics are printed.
func (r *GlamourRenderer) Style() string {
	format := ui.FormatAuto
	if r.Format != nil {
		format = r.Format()
	}
	if format.Resolve(os.Stdout) == ui.FormatTerminal {
		return styles.DarkStyle
	}
	return styles.NoTTYStyle
}

// Render converts markdown topics; on any glamour error the raw text is kept
func (r *GlamourRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}

	style := r.Style()
	options := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if style == styles.NoTTYStyle {
		options = append(options, glamour.WithColorProfile(termenv.Ascii))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
