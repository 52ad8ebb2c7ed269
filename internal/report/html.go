package report

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"cashflow/internal/currency"
)

//go:embed templates/*.html
var templatesFS embed.FS

// RenderMonthHTML renders a monthly statement as a standalone HTML
// document suitable for PDF conversion or printing.
func RenderMonthHTML(st MonthStatement, format currency.Formatter, code string) (string, error) {
	return renderHTML("month.html", st, format, code)
}

// RenderYearHTML renders the yearly roll-up as a standalone HTML document.
func RenderYearHTML(st YearStatement, format currency.Formatter, code string) (string, error) {
	return renderHTML("year.html", st, format, code)
}

func renderHTML(name string, data any, format currency.Formatter, code string) (string, error) {
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"money": func(amount float64) string { return format(amount, code) },
	}).ParseFS(templatesFS, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}

	var sb strings.Builder
	if err := tmpl.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return sb.String(), nil
}
