// Package blocks is the built-in component library: every section and shell
// the site can declare, each paired with its props schema and example
// fixtures. Registration happens once at startup through RegisterAll.
package blocks

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/floranaubry/dev2-interweb-site/internal/registry"
	"github.com/floranaubry/dev2-interweb-site/internal/schema"
)

// templated adapts a parsed html/template to registry.Component. Props arrive
// coerced by the gate, so templates can rely on declared fields and defaults.
type templated struct {
	tmpl *template.Template
}

func mustTemplate(id, text string) registry.Resolver {
	tmpl := template.Must(template.New(id).Parse(text))
	comp := &templated{tmpl: tmpl}
	return func() registry.Component { return comp }
}

func (t *templated) Render(_ context.Context, props map[string]any) (template.HTML, error) {
	var b strings.Builder
	if err := t.tmpl.Execute(&b, props); err != nil {
		return "", fmt.Errorf("execute %s: %w", t.tmpl.Name(), err)
	}
	return template.HTML(b.String()), nil
}

type definition struct {
	id       string
	resolve  registry.Resolver
	schema   schema.Schema
	fixtures []map[string]any
}

// RegisterAll populates both registries with the built-in library.
func RegisterAll(sections *registry.Sections, shells *registry.Shells) {
	for _, def := range sectionDefinitions() {
		sections.Register(def.id, def.resolve, def.schema, def.fixtures)
	}
	for _, def := range shellDefinitions() {
		shells.Register(def.id, def.resolve, def.schema, def.fixtures)
	}
}
