package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/floranaubry/dev2-interweb-site/internal/platform/httpx"
	"github.com/floranaubry/dev2-interweb-site/internal/platform/requestctx"
	"github.com/floranaubry/dev2-interweb-site/internal/sitemap"
)

// SitemapHandlers serves sitemap.xml and robots.txt.
type SitemapHandlers struct {
	generator *sitemap.Generator
}

// NewSitemapHandlers wires the sitemap endpoints.
func NewSitemapHandlers(g *sitemap.Generator) *SitemapHandlers {
	return &SitemapHandlers{generator: g}
}

// Sitemap responds with the cached sitemap document.
func (h *SitemapHandlers) Sitemap(w http.ResponseWriter, r *http.Request) {
	body, err := h.generator.XML(r.Context())
	if err != nil {
		requestctx.Logger(r.Context()).Error("sitemap generation failed", zap.Error(err))
		httpx.WritePage(r.Context(), w, httpx.NewError("sitemap_failed", "Sitemap unavailable.", http.StatusInternalServerError), false)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}

// Robots responds with robots.txt.
func (h *SitemapHandlers) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(h.generator.Robots())
}
