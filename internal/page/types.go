// Package page defines the validated in-memory representation of one
// composed page and the rules that shape it: kind policy, shell slot
// constraints, legacy shape normalisation, and the whole-page schema.
package page

import (
	"sort"
	"strings"
)

// Kind is the page's indexing and visibility category.
type Kind string

const (
	// KindSite is the public, indexed marketing site.
	KindSite Kind = "site"
	// KindPrivate is a private preview page, never indexed.
	KindPrivate Kind = "p"
	// KindDemo is a client showcase page, never indexed.
	KindDemo Kind = "demo"
)

// Kinds lists every valid kind in stable order.
func Kinds() []Kind { return []Kind{KindDemo, KindPrivate, KindSite} }

// KindStrings returns the valid kinds as plain strings, sorted.
func KindStrings() []string {
	out := make([]string, 0, len(Kinds()))
	for _, k := range Kinds() {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}

// IsPrivate reports whether pages of this kind must never be indexed.
func (k Kind) IsPrivate() bool {
	return k == KindPrivate || k == KindDemo
}

// Valid reports whether the kind is a member of the closed kind set.
func (k Kind) Valid() bool {
	switch k {
	case KindSite, KindPrivate, KindDemo:
		return true
	}
	return false
}

// Slot is one of the two fixed shell positions.
type Slot string

const (
	SlotHeader Slot = "header"
	SlotFooter Slot = "footer"
)

// OverridePrefix is the mandatory two-character prefix for theme override
// keys at page and section scope.
const OverridePrefix = "--"

// SEO carries the page's metadata. Title and Description are mandatory and
// non-empty after validation.
type SEO struct {
	Title       string
	Description string
	Image       string
	Noindex     bool
}

// ShellRef is one declared header or footer instance. The ID must carry the
// slot prefix ("header." or "footer."); that invariant is enforced at
// authoring time, load time, and render time independently.
type ShellRef struct {
	ID    string
	Props map[string]any
}

// SectionDef is one declared content block. ID is a registry lookup key of
// the form "<family>.<variant>", not a unique instance id: the same id may
// appear several times in one page.
type SectionDef struct {
	ID        string
	Pack      string
	Props     map[string]any
	Overrides map[string]string
}

// PageDef is the validated page definition produced by the loader and treated
// as immutable for the duration of a render.
type PageDef struct {
	Kind           Kind
	Slug           string
	PackKey        string
	ThemeOverrides map[string]string
	SEO            SEO
	Header         *ShellRef
	Footer         *ShellRef
	Sections       []SectionDef
}

// Shell returns the declared shell for the given slot, nil when the slot is
// empty.
func (p *PageDef) Shell(slot Slot) *ShellRef {
	if slot == SlotHeader {
		return p.Header
	}
	return p.Footer
}

// ExpectedSlot inspects a shell id's namespace prefix and returns the slot it
// belongs to, or false when neither prefix matches (malformed id).
func ExpectedSlot(shellID string) (Slot, bool) {
	switch {
	case strings.HasPrefix(shellID, string(SlotHeader)+"."):
		return SlotHeader, true
	case strings.HasPrefix(shellID, string(SlotFooter)+"."):
		return SlotFooter, true
	}
	return "", false
}

// IsValidSlot reports whether the shell id may be rendered into the given
// slot. Valid iff the id starts with "<slot>.".
func IsValidSlot(shellID string, slot Slot) bool {
	return strings.HasPrefix(shellID, string(slot)+".")
}
