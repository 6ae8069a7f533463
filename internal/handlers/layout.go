package handlers

import (
	"net/http"

	"github.com/floranaubry/dev2-interweb-site/internal/compose"
	"github.com/floranaubry/dev2-interweb-site/internal/seo"

	"html/template"
)

type layoutData struct {
	Lang string
	Meta seo.Meta
	Page *compose.Page
}

// The layout applies the page-scope theme overrides on its wrapper element.
// Section-scope overrides were already applied inline by the renderer.
var layoutTmpl = template.Must(template.New("layout").Parse(`<!doctype html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Meta.Title}}</title>
<meta name="description" content="{{.Meta.Description}}">
{{if .Meta.Noindex}}<meta name="robots" content="noindex">
{{end}}<link rel="canonical" href="{{.Meta.Canonical}}">
{{range .Meta.Alternates}}<link rel="alternate" hreflang="{{.Locale}}" href="{{.Href}}">
{{end}}{{range .Page.Stylesheets}}<link rel="stylesheet" href="{{.}}">
{{end}}</head>
<body>
<div class="theme-scope"{{with .Page.ThemeStyle}} style="{{.}}"{{end}}>
{{.Page.Header}}
<main>
{{range .Page.Sections}}{{.}}
{{end}}</main>
{{.Page.Footer}}
</div>
</body>
</html>
`))

func writeLayout(w http.ResponseWriter, data layoutData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = layoutTmpl.Execute(w, data)
}
