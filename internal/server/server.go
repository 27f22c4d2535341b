// Package server exposes the comparison engine over HTTP.
//
//	POST /compare   {"left": "...", "right": "...", "options": {...}}
//	GET  /healthz
//
// A successful comparison answers 200 with the textdiff.Result as JSON. A
// document that fails structured-mode parsing answers 422 with
// {"error": "..."} naming the side.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/kalafut/textdiff"
	"github.com/kalafut/textdiff/internal/config"
)

// ErrBusy is returned when no comparison slot frees up before the request gives up.
var ErrBusy = errors.New("server busy")

// CompareRequest is the body of POST /compare.
type CompareRequest struct {
	Left    string           `json:"left"`
	Right   string           `json:"right"`
	Options textdiff.Options `json:"options"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server handles comparison requests. Comparisons run in their own goroutine
// bound to the request; if the client goes away the result is discarded.
type Server struct {
	cfg    config.Config
	logger *zap.Logger
	slots  *semaphore.Weighted
	mux    *http.ServeMux
}

func New(cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger,
		slots:  semaphore.NewWeighted(cfg.Server.MaxConcurrent),
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /compare", s.handleCompare)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set("X-Request-ID", id)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	start := time.Now()
	s.mux.ServeHTTP(rec, r)

	s.logger.Info("request",
		zap.String("request_id", id),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("duration", time.Since(start)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)

	var req CompareRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	ctx := r.Context()
	if t := s.cfg.Server.CompareTimeout; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	res, err := s.Compare(ctx, req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, textdiff.ErrMalformedStructuredInput):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrBusy):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: "comparison timed out"})
	case errors.Is(err, context.Canceled):
		// The client is gone; nobody will read a response.
		s.logger.Debug("comparison abandoned", zap.Error(err))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

// Compare runs one comparison as an abortable unit. The engine itself cannot
// be interrupted, so on cancellation the caller returns immediately and the
// finished result is dropped.
func (s *Server) Compare(ctx context.Context, req CompareRequest) (*textdiff.Result, error) {
	if err := s.slots.Acquire(ctx, 1); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrBusy
		}
		return nil, err
	}

	type outcome struct {
		res *textdiff.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		defer s.slots.Release(1)
		opts := append(s.cfg.Compare.FuncOptions(), textdiff.WithLogger(s.logger))
		res, err := textdiff.Run(req.Left, req.Right, req.Options, opts...)
		done <- outcome{res, err}
	}()

	select {
	case out := <-done:
		return out.res, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
