package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/floranaubry/dev2-interweb-site/internal/compose"
	"github.com/floranaubry/dev2-interweb-site/internal/loader"
	"github.com/floranaubry/dev2-interweb-site/internal/page"
	"github.com/floranaubry/dev2-interweb-site/internal/platform/config"
	"github.com/floranaubry/dev2-interweb-site/internal/platform/httpx"
	"github.com/floranaubry/dev2-interweb-site/internal/platform/observability"
	"github.com/floranaubry/dev2-interweb-site/internal/platform/requestctx"
	"github.com/floranaubry/dev2-interweb-site/internal/seo"
)

// PageHandlers serves the content pages.
type PageHandlers struct {
	loader   *loader.Loader
	renderer *compose.Renderer
	seo      *seo.Builder
	env      config.Environment
}

// NewPageHandlers wires the page-serving pipeline.
func NewPageHandlers(l *loader.Loader, renderer *compose.Renderer, builder *seo.Builder, env config.Environment) *PageHandlers {
	return &PageHandlers{loader: l, renderer: renderer, seo: builder, env: env}
}

// Mount registers the routes for one locale. Static segments win over the
// slug parameter, so /p/ and /demo/ never collide with site slugs.
func (h *PageHandlers) Mount(r chi.Router, locale string) {
	r.Get("/", h.serve(page.KindSite, locale, true))
	r.Get("/p/{slug}", h.serve(page.KindPrivate, locale, false))
	r.Get("/demo/{slug}", h.serve(page.KindDemo, locale, false))
	r.Get("/{slug}", h.serve(page.KindSite, locale, false))
}

func (h *PageHandlers) serve(kind page.Kind, locale string, index bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := loader.WithMemo(r.Context())
		logger := requestctx.Logger(ctx)

		slug := ""
		if !index {
			slug = chi.URLParam(r, "slug")
		}

		ctx, span := observability.StartPageSpan(ctx, string(kind), slug, locale)
		defer span.End()

		def, err := h.loader.Load(ctx, kind, slug, locale)
		if err != nil {
			h.writeLoadError(w, r, err)
			return
		}

		rendered, err := h.renderer.Render(ctx, def)
		if err != nil {
			logger.Error("page render aborted", zap.Error(err))
			h.writeRenderError(w, r, err)
			return
		}

		meta, err := h.seo.Build(ctx, h.loader.Exists, def, locale)
		if err != nil {
			logger.Error("seo metadata failed", zap.Error(err))
			h.writeRenderError(w, r, err)
			return
		}

		writeLayout(w, layoutData{Meta: meta, Page: rendered, Lang: locale})
	}
}

func (h *PageHandlers) writeLoadError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	if errors.Is(err, loader.ErrNotFound) {
		httpx.WritePage(ctx, w, httpx.NewError("page_not_found", "No page at this address.", http.StatusNotFound), false)
		return
	}

	var verr *loader.ValidationError
	if errors.As(err, &verr) {
		e := httpx.NewError("page_invalid", "This page failed validation.", http.StatusInternalServerError)
		if h.env.IsDevelopment() {
			e = e.WithDetail(verr.Issues.Error())
		}
		httpx.WritePage(ctx, w, e, h.env.IsDevelopment())
		return
	}

	requestctx.Logger(ctx).Error("page load failed", zap.Error(err))
	httpx.WritePage(ctx, w, httpx.NewError("internal_server_error", "Something went wrong.", http.StatusInternalServerError), false)
}

func (h *PageHandlers) writeRenderError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	e := httpx.NewError("render_failed", "This page could not be rendered.", http.StatusInternalServerError)

	var blockErr *compose.BlockError
	if h.env.IsDevelopment() && errors.As(err, &blockErr) {
		e = e.WithDetail(blockErr.Error())
	}
	httpx.WritePage(ctx, w, e, h.env.IsDevelopment())
}
