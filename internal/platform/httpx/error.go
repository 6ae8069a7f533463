// Package httpx holds shared HTTP response helpers for the site server.
package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/floranaubry/dev2-interweb-site/internal/platform/requestctx"
)

// Error represents the canonical error payload produced by the server.
// JSON endpoints serialise it directly; page routes render it as HTML.
type Error struct {
	Code      string
	Message   string
	Status    int
	RequestID string
	TraceID   string
	Detail    string
}

// NewError constructs a new Error with the provided parameters.
func NewError(code, message string, status int) Error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return Error{
		Code:    sanitize(code, 80),
		Message: sanitize(message, 512),
		Status:  status,
	}
}

// WithDetail attaches a developer-facing detail string. Detail is only ever
// surfaced in development responses.
func (e Error) WithDetail(detail string) Error {
	e.Detail = sanitize(detail, 2048)
	return e
}

// WriteJSON writes the structured error as JSON to the provided response writer.
func WriteJSON(ctx context.Context, w http.ResponseWriter, err Error) {
	status := err.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}

	requestID := err.RequestID
	if requestID == "" {
		requestID = sanitize(middleware.GetReqID(ctx), 80)
	}
	traceID := err.TraceID
	if traceID == "" {
		traceID = sanitize(requestctx.TraceID(ctx), 64)
	}

	payload := map[string]any{
		"error":   err.Code,
		"message": err.Message,
		"status":  status,
	}
	if requestID != "" {
		payload["request_id"] = requestID
	}
	if traceID != "" {
		payload["trace_id"] = traceID
	}
	if err.Detail != "" {
		payload["detail"] = err.Detail
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

var errorPage = template.Must(template.New("error").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Status}} {{.Title}}</title></head>
<body>
<main style="max-width:40rem;margin:4rem auto;font-family:system-ui,sans-serif">
<h1>{{.Status}} {{.Title}}</h1>
<p>{{.Message}}</p>
{{if .Detail}}<pre style="white-space:pre-wrap;background:#f4f4f4;padding:1rem">{{.Detail}}</pre>{{end}}
</main>
</body>
</html>
`))

// WritePage renders the error as a minimal standalone HTML page. Detail is
// included only when includeDetail is set, which callers gate on the
// environment.
func WritePage(ctx context.Context, w http.ResponseWriter, err Error, includeDetail bool) {
	status := err.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}

	data := struct {
		Status  int
		Title   string
		Message string
		Detail  string
	}{
		Status:  status,
		Title:   http.StatusText(status),
		Message: err.Message,
	}
	if includeDetail {
		data.Detail = err.Detail
		if traceID := requestctx.TraceID(ctx); traceID != "" {
			if data.Detail != "" {
				data.Detail += "\n"
			}
			data.Detail += fmt.Sprintf("trace: %s", traceID)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = errorPage.Execute(w, data)
}

func sanitize(value string, limit int) string {
	if limit <= 0 {
		limit = 256
	}
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.TrimSpace(value)
	if len(value) > limit {
		value = value[:limit]
	}
	return value
}
