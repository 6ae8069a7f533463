package blocks

import "github.com/floranaubry/dev2-interweb-site/internal/schema"

func navLinksSchema() schema.Schema {
	return schema.Array(schema.Object().
		Field("label", schema.String().NonEmpty()).
		Field("href", schema.String().NonEmpty())).Optional()
}

func shellDefinitions() []definition {
	return []definition{
		{
			id: "header.main",
			resolve: mustTemplate("header.main", `<header class="site-header">
<a class="site-name" href="/">{{.siteName}}</a>
{{with .links}}<nav><ul>
{{range .}}<li><a href="{{.href}}">{{.label}}</a></li>
{{end}}</ul></nav>{{end}}
</header>`),
			schema: schema.Object().
				Field("siteName", schema.String().NonEmpty()).
				Field("links", navLinksSchema()),
			fixtures: []map[string]any{
				{"siteName": "Interweb", "links": []any{
					map[string]any{"label": "About", "href": "/p/about"},
				}},
			},
		},
		{
			id: "header.minimal",
			resolve: mustTemplate("header.minimal", `<header class="site-header site-header-minimal">
<a class="site-name" href="/">{{.siteName}}</a>
</header>`),
			schema: schema.Object().
				Field("siteName", schema.String().NonEmpty()),
			fixtures: []map[string]any{
				{"siteName": "Interweb"},
			},
		},
		{
			id: "footer.main",
			resolve: mustTemplate("footer.main", `<footer class="site-footer">
{{with .links}}<nav><ul>
{{range .}}<li><a href="{{.href}}">{{.label}}</a></li>
{{end}}</ul></nav>{{end}}
<p class="copyright">{{.copyright}}</p>
</footer>`),
			schema: schema.Object().
				Field("copyright", schema.String().NonEmpty()).
				Field("links", navLinksSchema()),
			fixtures: []map[string]any{
				{"copyright": "© Interweb", "links": []any{
					map[string]any{"label": "Imprint", "href": "/p/imprint"},
				}},
			},
		},
		{
			id: "footer.compact",
			resolve: mustTemplate("footer.compact", `<footer class="site-footer site-footer-compact">
<p class="copyright">{{.copyright}}</p>
</footer>`),
			schema: schema.Object().
				Field("copyright", schema.String().NonEmpty()),
			fixtures: []map[string]any{
				{"copyright": "© Interweb"},
			},
		},
	}
}
