package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templates embed.FS

var page = template.Must(template.ParseFS(templates, "templates/report.html"))

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ToHTML converts a markdown document to an HTML fragment.
func ToHTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("cannot convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// HTML writes a standalone HTML page made of a markdown report and an SVG chart.
//
// The chart is inserted right after the report's title.
func HTML(w io.Writer, report string, svg []byte) error {
	body, err := ToHTML(report)
	if err != nil {
		return err
	}
	head, rest, found := bytes.Cut([]byte(body), []byte("</h1>"))
	data := struct {
		Title template.HTML
		Chart template.HTML
		Body  template.HTML
	}{
		Title: template.HTML(head) + "</h1>",
		Chart: template.HTML(svg),
		Body:  template.HTML(rest),
	}
	if !found {
		data.Title, data.Body = "", body
	}
	return page.Execute(w, data)
}
