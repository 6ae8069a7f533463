package compose

import (
	"go.uber.org/zap"

	"github.com/floranaubry/dev2-interweb-site/internal/page"
)

// ResolveOverrides filters raw theme overrides down to keys carrying the
// CSS custom-property prefix. Rejected keys are logged with the owning block
// id and dropped. Returns nil when nothing survives.
//
// Page-scope and section-scope overrides must be resolved by their own
// callers. The page theme wrapper applies page-scope values and the section
// renderer applies section-scope values, so a page-level override is never
// applied twice and the closest scope wins through normal CSS inheritance.
func ResolveOverrides(raw map[string]string, blockID string, logger *zap.Logger) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	kept := make(map[string]string, len(raw))
	for key, value := range raw {
		if len(key) < len(page.OverridePrefix) || key[:len(page.OverridePrefix)] != page.OverridePrefix {
			logger.Warn("dropping theme override without css variable prefix",
				zap.String("key", key),
				zap.String("block", blockID),
			)
			continue
		}
		kept[key] = value
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
