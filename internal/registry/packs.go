package registry

import (
	"sort"

	"go.uber.org/zap"
)

// Packs is the closed set of theme pack keys, each resolving deterministically
// to a stylesheet resource path. Unknown keys are gated here: lookups fail
// rather than fabricate a href.
type Packs struct {
	hrefs map[string]string
}

// NewPacks constructs the pack registry. Keys mapped to an empty href are
// flagged and dropped: a pack without a stylesheet resource is unusable.
func NewPacks(hrefs map[string]string, logger *zap.Logger) *Packs {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make(map[string]string, len(hrefs))
	for key, href := range hrefs {
		if href == "" {
			logger.Warn("pack registered without stylesheet resource", zap.String("pack", key))
			continue
		}
		out[key] = href
	}
	return &Packs{hrefs: out}
}

// Has reports whether the key is a member of the closed pack set.
func (p *Packs) Has(key string) bool {
	_, exists := p.hrefs[key]
	return exists
}

// ResolveHref returns the stylesheet location for a pack key. No I/O.
func (p *Packs) ResolveHref(key string) (string, bool) {
	href, exists := p.hrefs[key]
	return href, exists
}

// Keys returns the pack keys in sorted order.
func (p *Packs) Keys() []string {
	keys := make([]string, 0, len(p.hrefs))
	for key := range p.hrefs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
