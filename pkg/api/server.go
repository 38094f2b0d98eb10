// Package api exposes the resolution pipeline over HTTP.
//
// The API is a thin wrapper: it validates input, delegates to the same
// resolver the CLI uses, and serializes the result. Endpoints:
//
//	GET  /healthz      liveness probe
//	POST /v1/resolve   {"dir": "/abs/workspace"} -> {"paths": [...]}
//
// Every request carries a generated request ID, echoed in the X-Request-ID
// response header and attached to log lines.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/depclose/depclose/pkg/buildinfo"
	"github.com/depclose/depclose/pkg/errors"
)

// Resolver computes a workspace's production dependency closure.
// *resolve.Resolver satisfies this.
type Resolver interface {
	Resolve(ctx context.Context, workspace string) ([]string, error)
}

// Server handles HTTP requests for dependency resolution.
type Server struct {
	resolver Resolver
	logger   *log.Logger
}

// NewServer creates a Server delegating to the given resolver.
// A nil logger falls back to log.Default().
func NewServer(resolver Resolver, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{resolver: resolver, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/resolve", s.handleResolve)

	return r
}

type ctxKey int

const requestIDKey ctxKey = 0

// requestID tags each request with a UUID for log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

type resolveRequest struct {
	Dir string `json:"dir"`
}

type resolveResponse struct {
	Dir   string   `json:"dir"`
	Paths []string `json:"paths"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With("request_id", requestIDFrom(r.Context()))

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, logger, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	if err := errors.ValidateWorkspaceDir(req.Dir); err != nil {
		s.writeError(w, logger, err)
		return
	}

	logger.Info("resolving workspace", "dir", req.Dir)
	paths, err := s.resolver.Resolve(r.Context(), req.Dir)
	if err != nil {
		s.writeError(w, logger, err)
		return
	}

	logger.Info("resolved workspace", "dir", req.Dir, "paths", len(paths))
	if paths == nil {
		paths = []string{}
	}
	writeJSON(w, http.StatusOK, resolveResponse{Dir: req.Dir, Paths: paths})
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "code", code, "err", err)
	} else {
		logger.Warn("request rejected", "code", code, "err", err)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeSourceUnavailable, errors.ErrCodeTreeParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
