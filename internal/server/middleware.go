package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey int

const ctxKeyOutcome ctxKey = iota

// Outcomes recorded by the SPA handlers for the request log.
const (
	servedAsset    = "asset"
	servedFallback = "fallback"
	servedRedirect = "redirect"
	servedError    = "error"
)

// outcome is filled in by whichever handler answered the request.
type outcome struct {
	servedBy string
	file     string
}

// recordOutcome is a no-op when the request didn't pass through the
// request logger.
func recordOutcome(r *http.Request, servedBy, file string) {
	if o, ok := r.Context().Value(ctxKeyOutcome).(*outcome); ok {
		o.servedBy = servedBy
		o.file = file
	}
}

// newRequestLogger logs one line per request, including which part of
// the asset/fallback chain produced the response.
func newRequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			o := &outcome{}
			r = r.WithContext(context.WithValue(r.Context(), ctxKeyOutcome, o))

			defer func() {
				attrs := []any{
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"served_by", o.servedBy,
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				}
				if o.file != "" {
					attrs = append(attrs, "file", o.file)
				}
				logger.Info("http request", attrs...)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
