package ui

import (
	"fmt"

	"github.com/arthur-debert/bulkmv/pkg/types"
	"github.com/pterm/pterm"
)

// Summary renders the one-line result of a batch.
func (p *Painter) Summary(outcome types.Outcome) string {
	total := outcome.Attempted()
	msg := fmt.Sprintf("Renamed %d of %d", len(outcome.Succeeded), total)
	if len(outcome.Failed) > 0 {
		msg += fmt.Sprintf(", %d failed", len(outcome.Failed))
	}

	if p.format == FormatText {
		return msg
	}
	if len(outcome.Failed) > 0 {
		return fmt.Sprintf("%s %s", pterm.Warning.Prefix.Text, pterm.Warning.MessageStyle.Sprint(msg))
	}
	return fmt.Sprintf("%s %s", pterm.Success.Prefix.Text, pterm.Success.MessageStyle.Sprint(msg))
}

// Error renders a command error for the diagnostic stream.
func (p *Painter) Error(err error) string {
	if err == nil {
		return ""
	}

	text := err.Error()

	if p.format == FormatText {
		return "Error: " + text
	}
	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, p.Paint("Error", text))
}
