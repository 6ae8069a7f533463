// Package catalog exports a machine-readable description of the block
// registries: simplified schema shapes, fixtures, and the closed pack list.
// The export is content-addressed so CI can detect drift between source and
// the committed artifact without being tripped up by the timestamp.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/floranaubry/dev2-interweb-site/internal/page"
	"github.com/floranaubry/dev2-interweb-site/internal/registry"
	"github.com/floranaubry/dev2-interweb-site/internal/schema"
)

// SectionDoc describes one registered section.
type SectionDoc struct {
	Schema   schema.Shape     `json:"schema"`
	Fixtures []map[string]any `json:"fixtures"`
}

// ShellDoc describes one registered shell, including its derived slot.
type ShellDoc struct {
	Slot     page.Slot        `json:"slot"`
	Schema   schema.Shape     `json:"schema"`
	Fixtures []map[string]any `json:"fixtures"`
}

// Document is the full catalog artifact.
type Document struct {
	GeneratedAt string                `json:"generatedAt"`
	Hash        string                `json:"hash"`
	Sections    map[string]SectionDoc `json:"sections"`
	Shells      map[string]ShellDoc   `json:"shells"`
	Packs       []string              `json:"packs"`
}

// Export snapshots the registries into a Document. The hash covers
// everything except GeneratedAt and the hash field itself.
func Export(sections *registry.Sections, shells *registry.Shells, packs *registry.Packs) (*Document, error) {
	doc := &Document{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Sections:    map[string]SectionDoc{},
		Shells:      map[string]ShellDoc{},
		Packs:       packs.Keys(),
	}

	for _, entry := range sections.ListAll() {
		doc.Sections[entry.ID] = SectionDoc{
			Schema:   entry.Schema.Describe(),
			Fixtures: entry.Fixtures,
		}
	}
	for _, shell := range shells.ListAll() {
		doc.Shells[shell.ID] = ShellDoc{
			Slot:     shell.Slot,
			Schema:   shell.Schema.Describe(),
			Fixtures: shell.Fixtures,
		}
	}

	hash, err := contentHash(doc)
	if err != nil {
		return nil, err
	}
	doc.Hash = hash
	return doc, nil
}

// JSON serialises the document with stable formatting.
func (d *Document) JSON() ([]byte, error) {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	return append(out, '\n'), nil
}

// HashOf extracts the content hash recorded in a committed artifact.
func HashOf(artifact []byte) (string, error) {
	var committed struct {
		Hash string `json:"hash"`
	}
	if err := json.Unmarshal(artifact, &committed); err != nil {
		return "", fmt.Errorf("parse catalog artifact: %w", err)
	}
	return committed.Hash, nil
}

// contentHash hashes the document with the volatile fields zeroed, so two
// exports of identical registries always agree.
func contentHash(d *Document) (string, error) {
	stable := *d
	stable.GeneratedAt = ""
	stable.Hash = ""

	payload, err := json.Marshal(stable)
	if err != nil {
		return "", fmt.Errorf("hash catalog: %w", err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
