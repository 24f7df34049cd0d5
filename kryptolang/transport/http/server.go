// Package http serves and calls the kryptolang collaborator services over
// HTTP with JSON bodies.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/TheusHen/kryptolang/kryptolang/logging"
	"github.com/TheusHen/kryptolang/kryptolang/protocol"
	"github.com/TheusHen/kryptolang/kryptolang/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes served by NewHandler.
const (
	RouteParse   = "/parser/parse"
	RouteLexicon = "/lexicon/generate"
	RouteGrammar = "/grammar/analyze"
	RouteCipher  = "/crypto/process"
	RouteProcess = "/process"
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)

// maxBodyBytes matches the QUIC frame limit.
const maxBodyBytes = protocol.MaxFramePayload

type Server struct {
	collab  service.Collaborators
	gateway *service.Gateway
	metrics *Metrics
	logger  *slog.Logger
}

// NewHandler routes the collaborator calls to collab and /process to gateway.
// A nil gateway leaves /process unrouted. Metrics are registered on reg; a nil
// reg gets a private registry.
func NewHandler(collab service.Collaborators, gateway *service.Gateway, reg *prometheus.Registry, logger *slog.Logger) http.Handler {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &Server{
		collab:  collab,
		gateway: gateway,
		metrics: NewMetrics(reg),
		logger:  logging.OrNop(logger),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestIDs)
	r.Use(s.metrics.instrument)

	r.Get(RouteHealth, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle(RouteMetrics, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Post(RouteParse, handle(s, collab.Parse))
	r.Post(RouteLexicon, handle(s, collab.GenerateLexicon))
	r.Post(RouteGrammar, handle(s, collab.AnalyzeGrammar))
	r.Post(RouteCipher, handle(s, s.cipher))
	if gateway != nil {
		r.Post(RouteProcess, handle(s, s.process))
	}
	return r
}

func (s *Server) cipher(ctx context.Context, req protocol.CipherRequest) (protocol.CipherResponse, error) {
	resp, err := s.collab.Cipher(ctx, req)
	if err == nil {
		s.metrics.observeCipher(req.Operation, resp.Result)
	}
	return resp, err
}

func (s *Server) process(ctx context.Context, req protocol.ProcessRequest) (protocol.CipherResponse, error) {
	resp, err := s.gateway.Process(ctx, req)
	if err == nil {
		s.metrics.observeCipher(req.Operation, resp.Result)
	}
	return resp, err
}

func handle[Req, Resp any](s *Server, fn func(context.Context, Req) (Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
		resp, err := fn(r.Context(), req)
		if err != nil {
			s.writeError(w, r, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		s.logger.Debug("request served", "path", r.URL.Path, "request_id", RequestID(r.Context()))
	}
}

func statusFor(err error) int {
	if errors.Is(err, service.ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, code int, err error) {
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
	} else {
		s.logger.Warn("request rejected", "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
	}
	writeJSON(w, code, protocol.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
