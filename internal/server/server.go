// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes resume screening over HTTP.
//
// A screening request uploads the job description and resumes as a multipart
// form. Uploads live in a temporary directory for the duration of the request
// and nothing is kept afterwards.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/resume-screener/internal/extract"
	"github.com/pdiddy/resume-screener/internal/logger"
	"github.com/pdiddy/resume-screener/internal/roles"
	"github.com/pdiddy/resume-screener/internal/screen"
	"github.com/pdiddy/resume-screener/pkg/types"
)

const (
	defaultAddr            = ":8080"
	defaultReadTimeout     = 30 * time.Second
	defaultWriteTimeout    = 2 * time.Minute
	defaultShutdownTimeout = 10 * time.Second
	defaultMaxUploadBytes  = 32 << 20
)

// Server handles screening requests.
type Server struct {
	screener   *screen.Screener
	extractor  extract.Extractor
	classifier *roles.Classifier
	cfg        types.ServerConfig
	report     types.ReportConfig
	onError    types.FailurePolicy
	log        *zap.Logger
}

// New returns a Server. Zero-valued server settings take defaults.
func New(cfg types.Config, screener *screen.Screener, ext extract.Extractor, classifier *roles.Classifier, log *zap.Logger) *Server {
	sc := cfg.Server
	if sc.Addr == "" {
		sc.Addr = defaultAddr
	}
	if sc.ReadTimeout <= 0 {
		sc.ReadTimeout = defaultReadTimeout
	}
	if sc.WriteTimeout <= 0 {
		sc.WriteTimeout = defaultWriteTimeout
	}
	if sc.ShutdownTimeout <= 0 {
		sc.ShutdownTimeout = defaultShutdownTimeout
	}
	if sc.MaxUploadBytes <= 0 {
		sc.MaxUploadBytes = defaultMaxUploadBytes
	}
	if classifier == nil {
		classifier = roles.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		screener:   screener,
		extractor:  ext,
		classifier: classifier,
		cfg:        sc,
		report:     cfg.Report,
		onError:    cfg.Extraction.OnError,
		log:        log,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.log))
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(BearerAuthMiddleware(s.cfg.APIKeys))
	r.Use(MetricsMiddleware())

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Post("/screen", s.handleScreen)
		r.Get("/roles", s.handleRoles)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP server",
			zap.String("addr", s.cfg.Addr),
			zap.String("normalizer", string(s.screener.Strategy())),
			zap.Bool("auth", len(s.cfg.APIKeys) > 0),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.log.Info("server stopped gracefully")
	return nil
}

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// jsonRecoverer returns a JSON 500 instead of a plain text stacktrace.
func jsonRecoverer(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Error("panic recovered", zap.Any("panic", rvr), zap.Stack("stacktrace"))
					writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger emits one log line per request and puts a request-scoped
// logger in the context.
func requestLogger(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLog := log.With(zap.String("request_id", requestID))
			ctx := logger.ContextWithLogger(r.Context(), reqLog)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLog.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.Int64("content_length", r.ContentLength),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
