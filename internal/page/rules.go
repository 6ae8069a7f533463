package page

import (
	"go.uber.org/zap"
)

// ForceNoindex resolves the effective no-index flag for a page. Private kinds
// are never indexed: an explicitly declared false is overridden, not honoured.
// The authoring-time guard flags that situation as a likely mistake; here it
// is corrected silently.
func ForceNoindex(kind Kind, declared bool) bool {
	if kind.IsPrivate() {
		return true
	}
	return declared
}

// ApplyBusinessRules runs the derived rule pass over a freshly validated
// PageDef: forced no-index for private kinds and, when strictPrivateShells is
// enabled, the force-nulling of shells on private pages.
func ApplyBusinessRules(def *PageDef, strictPrivateShells bool, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	def.SEO.Noindex = ForceNoindex(def.Kind, def.SEO.Noindex)

	if strictPrivateShells && def.Kind.IsPrivate() {
		if def.Header != nil || def.Footer != nil {
			logger.Warn("nulling shells on private page kind",
				zap.String("kind", string(def.Kind)),
				zap.String("slug", def.Slug))
		}
		def.Header = nil
		def.Footer = nil
	}
}
