package page

import (
	"fmt"
	"strings"

	"github.com/floranaubry/dev2-interweb-site/internal/schema"
)

// Validator performs the whole-page schema check at the VALIDATED stage of
// the loader. The pack key set is injected at construction so the validator
// stays a pure function of its inputs.
type Validator struct {
	body schema.Schema
}

// NewValidator builds a page validator closed over the given pack keys.
func NewValidator(packKeys []string) *Validator {
	sectionSchema := schema.Object().
		Field("id", schema.String().NonEmpty()).
		Field("pack", schema.Enum(packKeys...).Optional()).
		Field("props", schema.Map(schema.Any()).Optional()).
		Field("overrides", schema.Map(schema.String()).Optional())

	body := schema.Object().
		Field("kind", schema.Enum(KindStrings()...)).
		Field("slug", schema.String().Optional()).
		Field("packKey", schema.Enum(packKeys...).Optional()).
		Field("themeOverrides", schema.Map(schema.String()).Optional()).
		Field("seo", schema.Object().
			Field("title", schema.String().NonEmpty()).
			Field("description", schema.String().NonEmpty()).
			Field("image", schema.String().Optional()).
			Field("noindex", schema.Bool().Optional())).
		Field("sections", schema.Array(sectionSchema).NonEmpty())

	return &Validator{body: body}
}

// Validate checks a normalised raw document and decodes it into a PageDef.
// The shell slots are checked by hand because the slot prefix rule is a
// cross-field invariant, not a shape: each slot must be null or an object
// whose id carries that slot's prefix.
func (v *Validator) Validate(doc map[string]any) (*PageDef, schema.Issues) {
	result := v.body.Validate(doc)
	issues := result.Issues

	header, headerIssues := validateShellSlot(doc, SlotHeader)
	footer, footerIssues := validateShellSlot(doc, SlotFooter)
	issues = append(issues, headerIssues...)
	issues = append(issues, footerIssues...)

	if len(issues) > 0 {
		return nil, issues
	}

	data := result.Data.(map[string]any)
	def := &PageDef{
		Kind:     Kind(data["kind"].(string)),
		Header:   header,
		Footer:   footer,
		Sections: decodeSections(data["sections"].([]any)),
	}
	if slug, declared := data["slug"].(string); declared {
		def.Slug = slug
	}
	if pack, declared := data["packKey"].(string); declared {
		def.PackKey = pack
	}
	if overrides, declared := data["themeOverrides"].(map[string]any); declared {
		def.ThemeOverrides = toStringMap(overrides)
	}

	seo := data["seo"].(map[string]any)
	def.SEO = SEO{
		Title:       seo["title"].(string),
		Description: seo["description"].(string),
	}
	if image, declared := seo["image"].(string); declared {
		def.SEO.Image = image
	}
	if noindex, declared := seo["noindex"].(bool); declared {
		def.SEO.Noindex = noindex
	}

	return def, nil
}

// validateShellSlot checks one slot of the normalised shell block. Absence
// and explicit null both produce a nil ref; only a well-formed object with a
// matching slot prefix produces a ShellRef.
func validateShellSlot(doc map[string]any, slot Slot) (*ShellRef, schema.Issues) {
	shell, declared := doc["shell"].(map[string]any)
	if !declared {
		return nil, nil
	}
	raw, present := shell[string(slot)]
	if !present || raw == nil {
		return nil, nil
	}

	path := "shell." + string(slot)
	obj, isMap := raw.(map[string]any)
	if !isMap {
		return nil, schema.Issues{{Path: path, Message: fmt.Sprintf("expected object or null, got %T", raw)}}
	}
	id, isString := obj["id"].(string)
	if !isString || strings.TrimSpace(id) == "" {
		return nil, schema.Issues{{Path: path + ".id", Message: "required"}}
	}
	if !IsValidSlot(id, slot) {
		return nil, schema.Issues{{
			Path:    path + ".id",
			Message: fmt.Sprintf("shell id %q does not belong to the %s slot", id, slot),
		}}
	}

	props, isMap := obj["props"].(map[string]any)
	if !isMap {
		props = map[string]any{}
	}
	return &ShellRef{ID: id, Props: props}, nil
}

func decodeSections(items []any) []SectionDef {
	sections := make([]SectionDef, 0, len(items))
	for _, item := range items {
		m := item.(map[string]any)
		section := SectionDef{ID: m["id"].(string)}
		if pack, declared := m["pack"].(string); declared {
			section.Pack = pack
		}
		if props, declared := m["props"].(map[string]any); declared {
			section.Props = props
		} else {
			section.Props = map[string]any{}
		}
		if overrides, declared := m["overrides"].(map[string]any); declared {
			section.Overrides = toStringMap(overrides)
		}
		sections = append(sections, section)
	}
	return sections
}

func toStringMap(m map[string]any) map[string]string {
	out := make(map[string]string, len(m))
	for key, value := range m {
		if s, isString := value.(string); isString {
			out[key] = s
		}
	}
	return out
}
