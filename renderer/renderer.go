package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderOptions holds configuration for rendering a statement report.
type RenderOptions struct {
	SkipTransactions bool // Do not render the activity tables.
}

// RenderReport renders the Report struct to a markdown string.
func RenderReport(r *Report, opts RenderOptions) string {
	partials := map[string]string{
		"report_title":      "report_title.md",
		"report_bank":       "report_bank.md",
		"report_investment": "report_investment.md",
		"report_securities": "report_securities.md",
	}
	// An empty file name results in an empty template.
	if !opts.SkipTransactions {
		partials["report_activity"] = "report_activity.md"
	} else {
		partials["report_activity"] = ""
	}
	return renderTemplate("report", "report.md", partials, r)
}

// funcs are the helpers available to every template.
var funcs = template.FuncMap{
	// cell escapes the pipes of a table cell.
	"cell": func(s string) string { return strings.ReplaceAll(s, "|", `\|`) },
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
