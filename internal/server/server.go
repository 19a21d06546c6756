// Package server serves the JSON tools over HTTP.
//
//	POST /tool    execute a tool call
//	GET  /schema  tool schema for agent registration
//	GET  /health  liveness check
//	GET  /metrics Prometheus metrics
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/njchilds90/hyperreal/mcptool"
)

const (
	maxBodyBytes    = 1 << 20 // 1 MiB
	shutdownTimeout = 5 * time.Second

	// RequestIDHeader is echoed on every response. A client-supplied value
	// is kept, otherwise a UUID is generated.
	RequestIDHeader = "X-Request-ID"
)

type Config struct {
	Addr string `mapstructure:"addr"`
}

type Server struct {
	cfg      Config
	log      *logrus.Logger
	metrics  *metrics
	handler  http.Handler
	dispatch func(context.Context, mcptool.ToolRequest) mcptool.ToolResponse
}

func New(cfg Config, log *logrus.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	s := &Server{cfg: cfg, log: log, metrics: newMetrics(), dispatch: mcptool.HandleToolCallContext}

	mux := http.NewServeMux()
	mux.Handle("/tool", s.route("tool", http.HandlerFunc(s.handleTool)))
	mux.Handle("/schema", s.route("schema", http.HandlerFunc(s.handleSchema)))
	mux.Handle("/health", s.route("health", http.HandlerFunc(s.handleHealth)))
	mux.Handle("/metrics", s.route("metrics",
		promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))
	s.handler = mux
	return s
}

func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.cfg.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.log.WithField("address", ln.Addr().String()).Info("hyperreal server listening")
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(ln)
	}()

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "serve")
		}
		return nil
	case <-ctx.Done():
		s.log.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "graceful shutdown")
		}
		s.log.Info("HTTP server shutdown completed")
		return nil
	}
}

// route tags the request with an ID, times it and logs it.
func (s *Server) route(name string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r)

		elapsed := time.Since(start)
		s.metrics.duration.WithLabelValues(name).Observe(elapsed.Seconds())
		s.log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     r.Method,
			"route":      name,
			"duration":   elapsed,
		}).Debug("request handled")
	})
}

// writeJSON encodes v fully before writing the header. Encoding failures
// become a 500.
func writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return errors.Wrap(err, "encode response")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	tool := "unknown"
	defer func() {
		if rec := recover(); rec != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": w.Header().Get(RequestIDHeader),
				"panic":      rec,
				"stack":      string(debug.Stack()),
			}).Error("panic in /tool")
			s.metrics.toolCalls.WithLabelValues(tool, outcomePanic).Inc()
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req mcptool.ToolRequest
	if err := dec.Decode(&req); err != nil {
		s.metrics.toolCalls.WithLabelValues(tool, outcomeBadRequest).Inc()
		_ = writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if dec.More() {
		s.metrics.toolCalls.WithLabelValues(tool, outcomeBadRequest).Inc()
		_ = writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
		return
	}
	if mcptool.Known(req.Tool) {
		tool = req.Tool
	}

	resp := s.dispatch(r.Context(), req)
	outcome := outcomeOK
	if resp.Error != "" {
		outcome = outcomeToolError
		s.log.WithFields(logrus.Fields{
			"request_id": w.Header().Get(RequestIDHeader),
			"tool":       req.Tool,
		}).WithError(errors.New(resp.Error)).Debug("tool call failed")
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": w.Header().Get(RequestIDHeader),
			"tool":       req.Tool,
		}).WithError(err).Error("writing tool response")
		outcome = outcomeEncodeError
	}
	s.metrics.toolCalls.WithLabelValues(tool, outcome).Inc()
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, mcptool.ToolSpec())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
