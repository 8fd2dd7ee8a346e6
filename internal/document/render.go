package document

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts Markdown to an HTML fragment. Raw HTML in the source is
// omitted.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 0.25rem 0.75rem; }
code { font-size: 0.9em; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// Page wraps an HTML fragment in a standalone document.
func Page(w io.Writer, title, body string) error {
	return pageTemplate.Execute(w, struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body)})
}

// AgreementTitle is the heading used for rendered agreements.
const AgreementTitle = "Founding Contributor Engagement Agreement"
