package export

import (
	"bytes"
	"html/template"

	"leadlens/api/internal/view"
)

var leadsTemplate = template.Must(template.New("leads").Funcs(template.FuncMap{
	// Card fields come out of the projection already escaped.
	"safe": func(s string) template.HTML { return template.HTML(s) },
}).Parse(leadsTemplateText))

// TemplateData holds the data for the printable lead list.
type TemplateData struct {
	Title   string
	Query   string
	Cards   []view.Card
	Summary string
}

// RenderLeadsHTML renders the printable lead list. Card text arrives
// pre-escaped from the projection, so the template marks it safe rather than
// escaping twice.
func RenderLeadsHTML(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := leadsTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const leadsTemplateText = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.5; max-width: 800px; margin: 2rem auto; }
    h1 { border-bottom: 2px solid #333; padding-bottom: 0.5rem; }
    .summary { color: #666; font-size: 0.9em; margin-bottom: 1.5rem; }
    .card { border: 1px solid #ddd; border-radius: 6px; padding: 1rem; margin: 0.75rem 0; page-break-inside: avoid; }
    .card h2 { margin: 0 0 0.25rem; font-size: 1.1em; }
    .card .address { color: #444; }
    .card .fav { color: #b8860b; font-weight: bold; }
    .card .meta { color: #666; font-size: 0.85em; margin-top: 0.5rem; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  {{if .Summary}}<div class="summary">{{.Summary}}</div>{{end}}
  {{range .Cards}}
  <div class="card">
    <h2>{{safe .Name}}{{if .Favorite}} <span class="fav">&#9733;</span>{{end}}</h2>
    <div class="address">{{safe .Address}}</div>
    {{if .Description}}<p>{{safe .Description}}</p>{{end}}
    <div class="meta">
      {{if .Phone}}{{safe .Phone}}{{end}}
      {{if .Website}} &middot; {{safe .Website}}{{end}}
      {{if .Rating}} &middot; rated {{safe .Rating}}{{end}}
    </div>
  </div>
  {{end}}
</body>
</html>`
