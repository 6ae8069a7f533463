// Package guard is the batch validation layer run by CI before merge. The
// same conditions the runtime registries merely warn about are fatal here:
// if the guard passes, production cannot drift from the registries.
package guard

import (
	"context"
	"fmt"
	"sort"

	"github.com/floranaubry/dev2-interweb-site/internal/loader"
	"github.com/floranaubry/dev2-interweb-site/internal/page"
	"github.com/floranaubry/dev2-interweb-site/internal/registry"
)

// Problem is one guard finding. Subject names the offending entry or
// content path.
type Problem struct {
	Subject string
	Message string
}

func (p Problem) String() string {
	return p.Subject + ": " + p.Message
}

func problemf(subject, format string, args ...any) Problem {
	return Problem{Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// CheckRegistries verifies that every registered block is complete: a
// resolvable component, a schema, and at least one fixture that its own
// schema accepts. Shell ids must carry a valid slot prefix.
func CheckRegistries(sections *registry.Sections, shells *registry.Shells) []Problem {
	var problems []Problem

	for _, entry := range sections.ListAll() {
		problems = append(problems, checkEntry("section "+entry.ID, entry)...)
	}
	for _, shell := range shells.ListAll() {
		subject := "shell " + shell.ID
		if _, ok := page.ExpectedSlot(shell.ID); !ok {
			problems = append(problems, problemf(subject, "id has no header. or footer. prefix"))
		}
		problems = append(problems, checkEntry(subject, shell.Entry)...)
	}
	return problems
}

func checkEntry(subject string, entry registry.Entry) []Problem {
	var problems []Problem

	if entry.Schema == nil {
		problems = append(problems, problemf(subject, "no schema registered"))
	}
	if entry.Resolve == nil || entry.Resolve() == nil {
		problems = append(problems, problemf(subject, "component is unresolvable"))
	}
	if len(entry.Fixtures) == 0 {
		problems = append(problems, problemf(subject, "no fixtures registered"))
		return problems
	}
	if entry.Schema == nil {
		return problems
	}
	for i, fixture := range entry.Fixtures {
		if result := entry.Schema.Validate(fixture); !result.OK {
			problems = append(problems, problemf(subject, "fixture %d rejected by own schema: %s", i, result.Issues.Flat()))
		}
	}
	return problems
}

// CheckContent walks every stored page document and validates each declared
// section id, shell reference, pack key, and override key against the
// registries. It also flags an explicit seo.noindex=false on a never-indexed
// kind, which the loader would silently override.
func CheckContent(ctx context.Context, store loader.Store, sections *registry.Sections, shells *registry.Shells, packs *registry.Packs) ([]Problem, error) {
	var problems []Problem

	var paths []string
	for _, kind := range page.Kinds() {
		kindPaths, err := store.ListPaths(ctx, string(kind)+"/")
		if err != nil {
			return nil, fmt.Errorf("list %s pages: %w", kind, err)
		}
		paths = append(paths, kindPaths...)
	}
	sort.Strings(paths)

	for _, path := range paths {
		doc, err := store.FetchByPath(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", path, err)
		}
		problems = append(problems, checkDocument(path, doc, sections, shells, packs)...)
	}
	return problems, nil
}

func checkDocument(path string, doc map[string]any, sections *registry.Sections, shells *registry.Shells, packs *registry.Packs) []Problem {
	var problems []Problem

	kind, _ := doc["kind"].(string)
	if !page.Kind(kind).Valid() {
		problems = append(problems, problemf(path, "unknown kind %q", kind))
	}

	if packKey, declared := doc["packKey"].(string); declared && !packs.Has(packKey) {
		problems = append(problems, problemf(path, "unknown pack %q", packKey))
	}
	problems = append(problems, checkOverrideKeys(path, "themeOverrides", doc["themeOverrides"])...)

	if page.Kind(kind).IsPrivate() {
		if seoDoc, _ := doc["seo"].(map[string]any); seoDoc != nil {
			if noindex, declared := seoDoc["noindex"].(bool); declared && !noindex {
				problems = append(problems, problemf(path, "seo.noindex=false on kind %q is overridden at load time, likely a mistake", kind))
			}
		}
	}

	if shell, _ := doc["shell"].(map[string]any); shell != nil {
		for _, slot := range []page.Slot{page.SlotHeader, page.SlotFooter} {
			problems = append(problems, checkShellRef(path, slot, shell[string(slot)], shells)...)
		}
	}

	sectionList, _ := doc["sections"].([]any)
	if len(sectionList) == 0 {
		problems = append(problems, problemf(path, "sections is empty"))
	}
	for i, raw := range sectionList {
		section, _ := raw.(map[string]any)
		if section == nil {
			problems = append(problems, problemf(path, "sections.%d is not an object", i))
			continue
		}
		id, _ := section["id"].(string)
		subject := fmt.Sprintf("%s sections.%d", path, i)
		if !sections.Has(id) {
			problems = append(problems, problemf(subject, "section id %q not registered", id))
		}
		if packKey, declared := section["pack"].(string); declared && !packs.Has(packKey) {
			problems = append(problems, problemf(subject, "unknown pack %q", packKey))
		}
		problems = append(problems, checkOverrideKeys(subject, "overrides", section["overrides"])...)
	}

	return problems
}

func checkShellRef(path string, slot page.Slot, raw any, shells *registry.Shells) []Problem {
	if raw == nil {
		return nil
	}
	subject := fmt.Sprintf("%s shell.%s", path, slot)

	var id string
	switch v := raw.(type) {
	case string:
		id = v
	case map[string]any:
		id, _ = v["id"].(string)
	default:
		return []Problem{problemf(subject, "unsupported shape %T", raw)}
	}

	var problems []Problem
	if !page.IsValidSlot(id, slot) {
		problems = append(problems, problemf(subject, "shell id %q does not belong in slot %s", id, slot))
	}
	if !shells.Has(id) {
		problems = append(problems, problemf(subject, "shell id %q not registered", id))
	}
	return problems
}

func checkOverrideKeys(subject, field string, raw any) []Problem {
	overrides, _ := raw.(map[string]any)
	if overrides == nil {
		return nil
	}
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var problems []Problem
	for _, key := range keys {
		if len(key) < len(page.OverridePrefix) || key[:len(page.OverridePrefix)] != page.OverridePrefix {
			problems = append(problems, problemf(subject, "%s key %q lacks the -- prefix", field, key))
		}
	}
	return problems
}
