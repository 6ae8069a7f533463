package page

import (
	"go.uber.org/zap"
)

// NormalizeShellValue coerces the two accepted legacy shell shapes into the
// canonical one. Authored documents historically declared shells either as a
// bare id string or as the canonical {id, props} object; both collapse to the
// object shape here so that nothing past this boundary sees a string shell.
//
// Returns (value, true) when the slot carries a usable shape:
//   - bare string  -> {id: s, props: {}}
//   - object shape -> object, props defaulted to {}
//   - explicit nil -> nil (render nothing, preserved as explicit)
//
// Anything else is dropped (false): validation then treats the slot as
// omitted, which collapses to null.
func NormalizeShellValue(raw any, slot Slot, logger *zap.Logger) (any, bool) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch v := raw.(type) {
	case nil:
		return nil, true
	case string:
		return map[string]any{"id": v, "props": map[string]any{}}, true
	case map[string]any:
		out := make(map[string]any, 2)
		out["id"] = v["id"]
		if props, isMap := v["props"].(map[string]any); isMap {
			out["props"] = props
		} else {
			out["props"] = map[string]any{}
		}
		return out, true
	default:
		logger.Warn("dropping shell with unsupported shape",
			zap.String("slot", string(slot)),
			zap.Any("value", raw))
		return nil, false
	}
}

// NormalizeDocument rewrites the shell block of a raw page document in place
// of a copy, applying NormalizeShellValue per slot. The input document is not
// mutated.
func NormalizeDocument(doc map[string]any, logger *zap.Logger) map[string]any {
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		out[key] = value
	}

	rawShell, present := doc["shell"]
	if !present {
		return out
	}
	shellMap, isMap := rawShell.(map[string]any)
	if !isMap {
		if logger != nil {
			logger.Warn("dropping shell block with unsupported shape", zap.Any("value", rawShell))
		}
		delete(out, "shell")
		return out
	}

	normalized := make(map[string]any, 2)
	for _, slot := range []Slot{SlotHeader, SlotFooter} {
		raw, declared := shellMap[string(slot)]
		if !declared {
			continue
		}
		value, usable := NormalizeShellValue(raw, slot, logger)
		if usable {
			normalized[string(slot)] = value
		}
	}
	out["shell"] = normalized
	return out
}
