// Package server exposes the render pipeline over HTTP.
//
//	GET  /healthz                      liveness and build info
//	POST /render?format=svg            render a document (svg, png, pdf, json, dot)
//	POST /snapshot                     lay a document out and return the scenegraph
//
// The request body is the document. Its syntax comes from the syntax query
// parameter or the Content-Type header and defaults to JSON. Errors are
// returned as {"code": ..., "message": ...} with a status derived from the
// error code.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/bluefish/internal/config"
	"github.com/matzehuels/bluefish/pkg/buildinfo"
	"github.com/matzehuels/bluefish/pkg/errors"
	bfio "github.com/matzehuels/bluefish/pkg/io"
	"github.com/matzehuels/bluefish/pkg/pipeline"
	"github.com/matzehuels/bluefish/pkg/render"
)

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	cfg    *config.Config
	logger *log.Logger
	router chi.Router
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, cfg *config.Config, logger *log.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, cfg: cfg, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)
	r.Post("/snapshot", s.handleSnapshot)
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = string(render.FormatSVG)
	}
	f, err := render.ParseFormat(format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.run(w, r, f)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, render.FormatJSON)
}

func (s *Server) run(w http.ResponseWriter, r *http.Request, format render.Format) {
	opts, err := s.options(r, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Cache", map[bool]string{true: "hit", false: "miss"}[result.CacheHit])
	if !result.CacheHit {
		w.Header().Set("X-Layout-Passes", strconv.Itoa(result.Stats.Passes))
		w.Header().Set("X-Layout-Rejections", strconv.Itoa(result.Stats.Rejections))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[string(format)])
}

// options builds pipeline options from the request body and query.
func (s *Server) options(r *http.Request, format render.Format) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Formats:    []string{string(format)},
		MaxPasses:  s.cfg.Layout.MaxPasses,
		Background: s.cfg.Render.Background,
		Scale:      s.cfg.Render.Scale,
		Logger:     log.FromContext(r.Context()),
	}

	syntax, err := requestSyntax(r)
	if err != nil {
		return opts, err
	}
	opts.Syntax = syntax

	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, s.cfg.Server.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return opts, errors.New(errors.ErrCodeInvalidInput, "document larger than %d bytes", tooLarge.Limit)
		}
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	opts.Source = body

	if v := q.Get("background"); v != "" {
		opts.Background = v
	}
	for name, dst := range map[string]*bool{"bounds": &opts.Bounds, "detailed": &opts.Detailed, "refresh": &opts.Refresh} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean (got %q)", name, v)
			}
			*dst = b
		}
	}
	if v := q.Get("max_passes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "max_passes must be a positive integer (got %q)", v)
		}
		opts.MaxPasses = n
	}
	return opts, nil
}

func requestSyntax(r *http.Request) (bfio.Syntax, error) {
	if v := r.URL.Query().Get("syntax"); v != "" {
		return bfio.ParseSyntax(v)
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		return bfio.SyntaxFromContentType(ct)
	}
	return bfio.JSON, nil
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
