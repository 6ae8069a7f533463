// Package compose turns a validated page definition into markup by resolving
// each declared block against the section and shell registries.
package compose

import (
	"fmt"

	"github.com/floranaubry/dev2-interweb-site/internal/schema"
)

// SchemaLookup is the narrow registry surface the validation gate needs.
// Both the section and shell registries satisfy it.
type SchemaLookup interface {
	Schema(id string) schema.Schema
}

// ValidateBlock looks up the schema for id and validates raw against it.
// An unknown id fails with the same result shape as a props mismatch, since
// both mean the block cannot safely render.
func ValidateBlock(registry SchemaLookup, id string, raw any) schema.Result {
	s := registry.Schema(id)
	if s == nil {
		return schema.Result{Issues: schema.Issues{{Message: fmt.Sprintf("%s not found in registry", id)}}}
	}
	return s.Validate(raw)
}
