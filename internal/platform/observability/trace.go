package observability

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/floranaubry/dev2-interweb-site/internal/platform/requestctx"
)

var tracer = otel.Tracer("github.com/floranaubry/dev2-interweb-site/internal/platform/observability")

// TraceMiddleware starts a server span per request and stores its identifiers
// on the request context so logs and error envelopes can reference them.
func TraceMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				))
			defer span.End()

			spanCtx := span.SpanContext()
			ctx = requestctx.WithTrace(ctx, requestctx.TraceInfo{
				TraceID: spanCtx.TraceID().String(),
				SpanID:  spanCtx.SpanID().String(),
				Sampled: spanCtx.IsSampled(),
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StartPageSpan opens a child span covering the load and composition of one
// page, annotated with the page identity.
func StartPageSpan(ctx context.Context, kind, slug, locale string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "page.compose",
		trace.WithAttributes(
			attribute.String("page.kind", kind),
			attribute.String("page.slug", slug),
			attribute.String("page.locale", locale),
		))
}
