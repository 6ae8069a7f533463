package blocks

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/floranaubry/dev2-interweb-site/internal/registry"
)

// prose converts authored markdown to sanitized HTML. The sanitizer runs
// after conversion so raw HTML embedded in the markdown cannot escape it.
type prose struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func proseResolver() registry.Resolver {
	comp := &prose{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: bluemonday.UGCPolicy(),
	}
	return func() registry.Component { return comp }
}

func (p *prose) Render(_ context.Context, props map[string]any) (template.HTML, error) {
	markdown, _ := props["markdown"].(string)

	var buf bytes.Buffer
	if err := p.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	safe := p.policy.SanitizeBytes(buf.Bytes())
	return template.HTML(`<div class="prose">` + string(safe) + `</div>`), nil
}
