package blocks

import "github.com/floranaubry/dev2-interweb-site/internal/schema"

func ctaSchema() schema.Schema {
	return schema.Object().
		Field("label", schema.String().NonEmpty()).
		Field("href", schema.String().NonEmpty()).
		Optional()
}

func sectionDefinitions() []definition {
	return []definition{
		{
			id: "hero.split",
			resolve: mustTemplate("hero.split", `<div class="hero hero-split hero-align-{{.align}}">
<div class="hero-copy">
<h1>{{.title}}</h1>
{{with .subtitle}}<p class="hero-subtitle">{{.}}</p>{{end}}
{{with .cta}}<a class="button" href="{{.href}}">{{.label}}</a>{{end}}
</div>
{{with .image}}<img class="hero-image" src="{{.}}" alt="">{{end}}
</div>`),
			schema: schema.Object().
				Field("title", schema.String().NonEmpty()).
				Field("subtitle", schema.String().Optional()).
				Field("image", schema.String().Optional()).
				Field("cta", ctaSchema()).
				Field("align", schema.Enum("left", "right").Default("left")),
			fixtures: []map[string]any{
				{"title": "Build pages from data", "subtitle": "Declare, validate, render.", "align": "left"},
				{"title": "Side by side", "image": "/assets/img/hero.png", "cta": map[string]any{"label": "Start", "href": "/p/start"}, "align": "right"},
			},
		},
		{
			id: "hero.banner",
			resolve: mustTemplate("hero.banner", `<div class="hero hero-banner"{{with .backgroundImage}} style="background-image: url('{{.}}')"{{end}}>
<h1>{{.title}}</h1>
{{with .tagline}}<p class="hero-tagline">{{.}}</p>{{end}}
</div>`),
			schema: schema.Object().
				Field("title", schema.String().NonEmpty()).
				Field("tagline", schema.String().Optional()).
				Field("backgroundImage", schema.String().Optional()),
			fixtures: []map[string]any{
				{"title": "Welcome"},
				{"title": "Full bleed", "tagline": "Edge to edge", "backgroundImage": "/assets/img/banner.jpg"},
			},
		},
		{
			id: "feature.grid",
			resolve: mustTemplate("feature.grid", `<div class="feature-grid" style="--columns: {{.columns}}">
{{with .title}}<h2>{{.}}</h2>{{end}}
<ul>
{{range .items}}<li>
{{with .icon}}<span class="feature-icon">{{.}}</span>{{end}}
<h3>{{.title}}</h3>
{{with .body}}<p>{{.}}</p>{{end}}
</li>
{{end}}</ul>
</div>`),
			schema: schema.Object().
				Field("title", schema.String().Optional()).
				Field("columns", schema.Int().Min(1).Default(3)).
				Field("items", schema.Array(schema.Object().
					Field("title", schema.String().NonEmpty()).
					Field("body", schema.String().Optional()).
					Field("icon", schema.String().Optional())).NonEmpty()),
			fixtures: []map[string]any{
				{"title": "Why us", "items": []any{
					map[string]any{"title": "Fast", "body": "Renders in one pass."},
					map[string]any{"title": "Typed", "body": "Every block is validated."},
					map[string]any{"title": "Themed", "icon": "🎨"},
				}},
			},
		},
		{
			id: "cta.banner",
			resolve: mustTemplate("cta.banner", `<div class="cta-banner cta-tone-{{.tone}}">
<h2>{{.title}}</h2>
<a class="button" href="{{.buttonHref}}">{{.buttonLabel}}</a>
</div>`),
			schema: schema.Object().
				Field("title", schema.String().NonEmpty()).
				Field("buttonLabel", schema.String().NonEmpty()).
				Field("buttonHref", schema.String().NonEmpty()).
				Field("tone", schema.Enum("light", "dark").Default("light")),
			fixtures: []map[string]any{
				{"title": "Ready when you are", "buttonLabel": "Get started", "buttonHref": "/p/start", "tone": "dark"},
			},
		},
		{
			id: "faq.list",
			resolve: mustTemplate("faq.list", `<div class="faq-list">
<h2>{{.title}}</h2>
{{range .items}}<details>
<summary>{{.question}}</summary>
<p>{{.answer}}</p>
</details>
{{end}}</div>`),
			schema: schema.Object().
				Field("title", schema.String().Default("FAQ")).
				Field("items", schema.Array(schema.Object().
					Field("question", schema.String().NonEmpty()).
					Field("answer", schema.String().NonEmpty())).NonEmpty()),
			fixtures: []map[string]any{
				{"items": []any{
					map[string]any{"question": "Is it fast?", "answer": "Yes."},
				}},
			},
		},
		{
			id: "logo.strip",
			resolve: mustTemplate("logo.strip", `<div class="logo-strip">
{{with .title}}<p class="logo-strip-title">{{.}}</p>{{end}}
<ul>
{{range .logos}}<li><img src="{{.src}}" alt="{{.alt}}"></li>
{{end}}</ul>
</div>`),
			schema: schema.Object().
				Field("title", schema.String().Optional()).
				Field("logos", schema.Array(schema.Object().
					Field("src", schema.String().NonEmpty()).
					Field("alt", schema.String().Default(""))).NonEmpty()),
			fixtures: []map[string]any{
				{"title": "Trusted by", "logos": []any{
					map[string]any{"src": "/assets/logos/acme.svg", "alt": "Acme"},
				}},
			},
		},
		{
			id:      "richtext.prose",
			resolve: proseResolver(),
			schema: schema.Object().
				Field("markdown", schema.String().NonEmpty()),
			fixtures: []map[string]any{
				{"markdown": "## Heading\n\nSome **bold** prose with a [link](/p/about)."},
			},
		},
	}
}
