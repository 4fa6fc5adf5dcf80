// Package renderer turns positions into markdown views.
//
// Views are plain structs built by the NewXxx functions, and rendered through
// the text/template files embedded in this package.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/positions"
)

//go:embed *.md
var templates embed.FS

var funcs = template.FuncMap{
	"amount": formatQuantity,
	"money":  formatMoney,
	"signed": formatSigned,
	"cell":   escapeCell,
}

// RenderPositions renders the positions table with its total and page counter.
func RenderPositions(v *Positions) string {
	partials := map[string]string{
		"positions_total": "positions_total.md",
	}
	return renderTemplate("positions", "positions.md", partials, v)
}

// RenderPosition renders a position header, its figures and a page of its
// orders.
func RenderPosition(v *Position) string {
	partials := map[string]string{
		"position_summary": "position_summary.md",
		"position_orders":  "position_orders.md",
	}
	return renderTemplate("position", "position.md", partials, v)
}

// RenderPositionSummary renders the single row table of a position.
func RenderPositionSummary(v *PositionRow) string {
	return renderTemplate("position_summary", "position_summary.md", nil, v)
}

// RenderOrder renders the single row table of an order.
func RenderOrder(v *OrderRow) string {
	return renderTemplate("order", "order.md", nil, v)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

func formatQuantity(q positions.Quantity) string {
	return positions.Round(q.Decimal()).String()
}

// formatMoney prints the rounded value after the currency symbol, like -$25.
func formatMoney(m positions.Money) string {
	d := positions.Round(m.Decimal())
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + positions.CurrencySymbol(m.Currency()) + d.Abs().String()
}

// formatSigned is formatMoney with an explicit + for positive values.
func formatSigned(m positions.Money) string {
	if positions.Round(m.Decimal()).IsPositive() {
		return "+" + formatMoney(m)
	}
	return formatMoney(m)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
