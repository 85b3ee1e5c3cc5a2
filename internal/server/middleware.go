package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/bluefish/pkg/observability"
)

// logRequests logs each request once it completes and reports it to the
// HTTP hooks. Handlers find a request-scoped logger in the context.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		logger := s.logger.With("request_id", middleware.GetReqID(r.Context()))
		ctx := log.WithContext(r.Context(), logger)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, duration)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", duration)
	})
}
