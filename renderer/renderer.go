// Package renderer formats rentroll reports, statements and lease schedules
// as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.md
var templateFS embed.FS

var templates, _ = fs.Sub(templateFS, "templates")

var funcs = template.FuncMap{
	"area":   func(v int) string { return humanize.Comma(int64(v)) },
	"amount": func(v float64) string { return humanize.FormatFloat("#,###.##", v) },
	"pct":    func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
}

// RenderReport renders an analytics report to markdown.
func RenderReport(r *Report) string {
	partials := map[string]string{
		"report_summary": "report_summary.md",
		"report_trend":   "report_trend.md",
	}
	return renderTemplate("report", "report.md", partials, r)
}

// RenderStatement renders a resident statement to markdown.
func RenderStatement(s *Statement) string {
	partials := map[string]string{
		"statement_charges": "statement_charges.md",
	}
	// An empty file name results in an empty template.
	if len(s.Payments) > 0 {
		partials["statement_payments"] = "statement_payments.md"
	} else {
		partials["statement_payments"] = ""
	}
	return renderTemplate("statement", "statement.md", partials, s)
}

// RenderLease renders a lease schedule to markdown.
func RenderLease(l *Lease) string {
	return renderTemplate("lease", "lease.md", nil, l)
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
		var content []byte
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
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
