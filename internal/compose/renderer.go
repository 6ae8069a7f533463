package compose

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/floranaubry/dev2-interweb-site/internal/page"
	"github.com/floranaubry/dev2-interweb-site/internal/platform/requestctx"
	"github.com/floranaubry/dev2-interweb-site/internal/registry"
	"github.com/floranaubry/dev2-interweb-site/internal/schema"
)

// FailureShape classifies why a block could not render. Development tooling
// presents each shape distinctly.
type FailureShape int

const (
	// ShapeNotFound means the id has no registry entry at all.
	ShapeNotFound FailureShape = iota
	// ShapeInvalidProps means the schema rejected the raw props.
	ShapeInvalidProps
	// ShapeUnresolvable means a schema exists but component resolution
	// returned nothing.
	ShapeUnresolvable
	// ShapeRenderFailed means the component itself returned an error.
	ShapeRenderFailed
	// ShapeSlotMismatch means a shell id was asked to render into a slot
	// its prefix does not belong to.
	ShapeSlotMismatch
)

func (s FailureShape) String() string {
	switch s {
	case ShapeNotFound:
		return "not found"
	case ShapeInvalidProps:
		return "invalid props"
	case ShapeUnresolvable:
		return "unresolvable component"
	case ShapeRenderFailed:
		return "render failed"
	case ShapeSlotMismatch:
		return "slot mismatch"
	default:
		return "unknown"
	}
}

// BlockError reports a single block failure with enough structure for both
// the inline development diagnostic and the production log line.
type BlockError struct {
	Block  string
	Shape  FailureShape
	Issues schema.Issues
	Err    error
}

func (e *BlockError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("block %s: %s: %v", e.Block, e.Shape, e.Err)
	}
	if len(e.Issues) > 0 {
		return fmt.Sprintf("block %s: %s: %s", e.Block, e.Shape, e.Issues.Flat())
	}
	return fmt.Sprintf("block %s: %s", e.Block, e.Shape)
}

func (e *BlockError) Unwrap() error { return e.Err }

// Page is the fully composed output handed to the layout template.
// ThemeVars holds the page-scope overrides; the layout applies them on its
// theme wrapper, never the section renderer, so the two override scopes stay
// independently inheritable.
type Page struct {
	Def         *page.PageDef
	Header      template.HTML
	Footer      template.HTML
	Sections    []template.HTML
	Stylesheets []string
	ThemeVars   map[string]string
}

// ThemeStyle renders the page-scope overrides as an inline style value with
// deterministic key order.
func (p *Page) ThemeStyle() template.CSS {
	return styleDeclarations(p.ThemeVars)
}

// Renderer composes validated page definitions into markup.
type Renderer struct {
	sections *registry.Sections
	shells   *registry.Shells
	packs    *registry.Packs
	action   FailureAction
}

// NewRenderer wires the renderer against the given registries with the
// failure action chosen for this process.
func NewRenderer(sections *registry.Sections, shells *registry.Shells, packs *registry.Packs, action FailureAction) *Renderer {
	return &Renderer{sections: sections, shells: shells, packs: packs, action: action}
}

// Render walks the page's shells and sections, validates every block through
// the registries, and dispatches to the registered components. Under
// ActionWarn a failing block becomes an inline diagnostic and composition
// continues; under the fail actions the first failure aborts the whole page.
func (r *Renderer) Render(ctx context.Context, def *page.PageDef) (*Page, error) {
	logger := requestctx.Logger(ctx)

	out := &Page{
		Def:       def,
		ThemeVars: ResolveOverrides(def.ThemeOverrides, "page", logger),
	}

	seenPacks := map[string]bool{}
	addPack := func(key string) {
		if key == "" || seenPacks[key] {
			return
		}
		href, ok := r.packs.ResolveHref(key)
		if !ok {
			logger.Warn("pack has no stylesheet resource", zap.String("pack", key))
			return
		}
		seenPacks[key] = true
		out.Stylesheets = append(out.Stylesheets, href)
	}
	addPack(def.PackKey)

	for _, slot := range []page.Slot{page.SlotHeader, page.SlotFooter} {
		ref := def.Shell(slot)
		if ref == nil {
			continue
		}
		html, err := r.renderShell(ctx, slot, ref)
		if err != nil {
			handled, herr := r.failBlock(ctx, err, ref.Props)
			if herr != nil {
				return nil, herr
			}
			html = handled
		}
		switch slot {
		case page.SlotHeader:
			out.Header = html
		case page.SlotFooter:
			out.Footer = html
		}
	}

	for _, section := range def.Sections {
		addPack(effectivePack(section, def))
		html, err := r.renderSection(ctx, section)
		if err != nil {
			handled, herr := r.failBlock(ctx, err, section.Props)
			if herr != nil {
				return nil, herr
			}
			html = handled
		}
		out.Sections = append(out.Sections, html)
	}

	return out, nil
}

func effectivePack(section page.SectionDef, def *page.PageDef) string {
	if section.Pack != "" {
		return section.Pack
	}
	return def.PackKey
}

func (r *Renderer) renderSection(ctx context.Context, section page.SectionDef) (template.HTML, error) {
	logger := requestctx.Logger(ctx)

	html, err := r.renderBlock(ctx, r.sections, section.ID, section.Props)
	if err != nil {
		return "", err
	}

	overrides := ResolveOverrides(section.Overrides, section.ID, logger)
	return wrapSection(section.ID, overrides, html), nil
}

// renderShell re-checks the slot prefix even though the loader already did.
// A PageDef built without going through the loader must not smuggle a footer
// into the header slot.
func (r *Renderer) renderShell(ctx context.Context, slot page.Slot, ref *page.ShellRef) (template.HTML, error) {
	if !page.IsValidSlot(ref.ID, slot) {
		return "", &BlockError{
			Block: ref.ID,
			Shape: ShapeSlotMismatch,
			Issues: schema.Issues{{
				Message: fmt.Sprintf("%s does not belong to the %s slot", ref.ID, slot),
			}},
		}
	}
	return r.renderBlock(ctx, r.shells, ref.ID, ref.Props)
}

// blockRegistry is the per-block surface shared by sections and shells.
type blockRegistry interface {
	SchemaLookup
	Has(id string) bool
	Component(id string) registry.Component
}

func (r *Renderer) renderBlock(ctx context.Context, reg blockRegistry, id string, props map[string]any) (template.HTML, error) {
	if !reg.Has(id) {
		return "", &BlockError{Block: id, Shape: ShapeNotFound, Issues: schema.Issues{{Message: fmt.Sprintf("%s not found in registry", id)}}}
	}

	result := ValidateBlock(reg, id, anyMap(props))
	if !result.OK {
		return "", &BlockError{Block: id, Shape: ShapeInvalidProps, Issues: result.Issues}
	}

	comp := reg.Component(id)
	if comp == nil {
		return "", &BlockError{Block: id, Shape: ShapeUnresolvable}
	}

	coerced, _ := result.Data.(map[string]any)
	html, err := comp.Render(ctx, coerced)
	if err != nil {
		return "", &BlockError{Block: id, Shape: ShapeRenderFailed, Err: err}
	}
	return html, nil
}

// failBlock applies the failure action to a block error. Under ActionWarn it
// returns the inline diagnostic markup; otherwise it returns the error to
// abort the page.
func (r *Renderer) failBlock(ctx context.Context, err error, rawProps map[string]any) (template.HTML, error) {
	logger := requestctx.Logger(ctx)

	blockErr, ok := err.(*BlockError)
	if !ok {
		blockErr = &BlockError{Block: "unknown", Shape: ShapeRenderFailed, Err: err}
	}

	logger.Warn("block failed validation or render",
		zap.String("block", blockErr.Block),
		zap.String("shape", blockErr.Shape.String()),
		zap.String("detail", blockErr.Issues.Flat()),
		zap.Error(blockErr.Err),
	)

	if r.action == ActionWarn {
		return diagnosticBlock(blockErr, rawProps), nil
	}
	return "", blockErr
}

var diagnosticTmpl = template.Must(template.New("diagnostic").Parse(`<div class="block-diagnostic" data-block="{{.Block}}" data-shape="{{.Shape}}">
<strong>{{.Block}}</strong> &mdash; {{.Shape}}
{{if .Issues}}<ul>{{range .Issues}}<li>{{if .Path}}<code>{{.Path}}</code>: {{end}}{{.Message}}</li>{{end}}</ul>{{end}}
{{if .Err}}<p>{{.Err}}</p>{{end}}
{{if .RawProps}}<details><summary>received props</summary><pre>{{.RawProps}}</pre></details>{{end}}
</div>`))

func diagnosticBlock(err *BlockError, rawProps map[string]any) template.HTML {
	data := struct {
		Block    string
		Shape    string
		Issues   schema.Issues
		Err      error
		RawProps string
	}{
		Block:  err.Block,
		Shape:  err.Shape.String(),
		Issues: err.Issues,
		Err:    err.Err,
	}
	if len(rawProps) > 0 {
		if encoded, jerr := json.MarshalIndent(rawProps, "", "  "); jerr == nil {
			data.RawProps = string(encoded)
		}
	}

	var b strings.Builder
	if terr := diagnosticTmpl.Execute(&b, data); terr != nil {
		return template.HTML("<!-- diagnostic render failed -->")
	}
	return template.HTML(b.String())
}

func wrapSection(id string, overrides map[string]string, inner template.HTML) template.HTML {
	var b strings.Builder
	b.WriteString(`<section data-block="`)
	template.HTMLEscape(&b, []byte(id))
	b.WriteString(`"`)
	if style := styleDeclarations(overrides); style != "" {
		b.WriteString(` style="`)
		template.HTMLEscape(&b, []byte(style))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(string(inner))
	b.WriteString("</section>")
	return template.HTML(b.String())
}

func styleDeclarations(vars map[string]string) template.CSS {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+vars[k])
	}
	return template.CSS(strings.Join(parts, "; "))
}

func anyMap(props map[string]any) any {
	if props == nil {
		return map[string]any{}
	}
	return props
}
