package renderer

import (
	"log/slog"

	"github.com/charmbracelet/glamour"
)

// Terminal renders markdown for display in a terminal, with styles that
// follow the terminal background. The markdown is returned unchanged if it
// cannot be rendered.
func Terminal(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		slog.Warn("cannot create markdown renderer", "error", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		slog.Warn("cannot render markdown", "error", err)
		return md
	}
	return out
}
