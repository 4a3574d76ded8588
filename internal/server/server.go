package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Tomas-vilte/issuegate/internal/domain/models"
	"github.com/Tomas-vilte/issuegate/internal/domain/ports"
	appErrors "github.com/Tomas-vilte/issuegate/internal/errors"
	"github.com/Tomas-vilte/issuegate/internal/logger"
	"github.com/Tomas-vilte/issuegate/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	maxRequestBytes = 1 << 20
	shutdownTimeout = 10 * time.Second
)

type (
	// ValidateRequest is the body of POST /v1/validate.
	ValidateRequest = models.Commit

	ValidateResponse struct {
		Accepted bool                       `json:"accepted"`
		Verdict  models.VerdictKind         `json:"verdict"`
		Policy   string                     `json:"policy,omitempty"`
		Messages []models.ValidationMessage `json:"messages"`
	}

	errorResponse struct {
		Error string `json:"error"`
	}
)

type Server struct {
	validator ports.CommitValidator
	metrics   *metrics.Metrics
	router    chi.Router
}

func New(validator ports.CommitValidator, m *metrics.Metrics) *Server {
	if m == nil {
		m = metrics.New()
	}
	s := &Server{validator: validator, metrics: m}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "validation server listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return appErrors.ErrServerStart.WithError(err).WithContext("address", addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		logger.Info(ctx, "shutting down validation server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if missing := missingFields(req); len(missing) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing required fields: " + strings.Join(missing, ", ")})
		return
	}

	start := time.Now()
	verdict := s.validator.Check(r.Context(), req)
	s.metrics.ObserveVerdict(verdict, time.Since(start))

	status := http.StatusOK
	if verdict.IsRejected() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, ValidateResponse{
		Accepted: !verdict.IsRejected(),
		Verdict:  verdict.Kind,
		Policy:   verdict.Policy.String(),
		Messages: verdict.Messages,
	})
}

func missingFields(req ValidateRequest) []string {
	var missing []string
	if req.Repository == "" {
		missing = append(missing, "repository")
	}
	if req.Ref == "" {
		missing = append(missing, "ref")
	}
	if req.ID == "" {
		missing = append(missing, "commit_id")
	}
	return missing
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// requestLogger puts a request-scoped logger in the context and logs every response.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.With(r.Context(), "request_id", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.Debug(ctx, "request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
