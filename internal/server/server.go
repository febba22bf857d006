package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/abrunet/asynclab/internal/format"
	"github.com/abrunet/asynclab/internal/logging"
	"github.com/abrunet/asynclab/internal/sysmon"
)

// Config holds the server's runtime settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// BaseDelay scales the simulated work of notification jobs.
	BaseDelay time.Duration
	// DataDir is where uploaded files are saved.
	DataDir string
	// MaxJobs bounds concurrently running background jobs.
	MaxJobs int
}

// Server serves the demonstration HTTP endpoints.
type Server struct {
	config   Config
	logger   logging.Logger
	metrics  *Metrics
	security SecurityConfig
	jobs     *JobRunner
}

// New assembles a server. The jobs submitted by handlers inherit ctx; the
// caller cancels it to stop accepting and drain.
func New(ctx context.Context, config Config, logger logging.Logger) *Server {
	metrics := NewMetrics()
	return &Server{
		config:   config,
		logger:   logger,
		metrics:  metrics,
		security: DefaultSecurityConfig(),
		jobs:     NewJobRunner(ctx, config.MaxJobs, logger, metrics),
	}
}

// Handler builds the routed handler with metrics and security middleware
// applied to every endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/notify", s.route(s.handleNotify))
	mux.HandleFunc("/files", s.route(s.handleFiles))
	mux.HandleFunc("/healthz", s.route(s.handleHealthz))
	mux.HandleFunc("/metrics", s.route(s.handleMetrics))
	return mux
}

func (s *Server) route(next http.HandlerFunc) http.HandlerFunc {
	return s.metricsMiddleware(SecurityMiddleware(s.security, next))
}

// metricsMiddleware tracks in-flight requests and per-path counters.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		start := time.Now()
		defer func() {
			s.metrics.DecrementActiveRequests()
			s.metrics.ObserveRequest(r.URL.Path, r.Method, time.Since(start))
		}()
		next(w, r)
	}
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully and drains outstanding background jobs.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", logging.String("addr", s.config.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	s.logger.Info("draining background jobs", logging.Int("pending", int(s.jobs.Pending())))
	s.jobs.Wait()
	return nil
}

type notifyRequest struct {
	Message string `json:"message"`
}

// handleNotify accepts a notification and returns immediately; delivery
// happens in two background jobs of one and two units of simulated work.
func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r)
		return
	}

	var req notifyRequest
	if r.Body != nil {
		// An empty or absent body is fine; only malformed JSON is rejected.
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil && err != io.EOF {
			s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed JSON body"})
			return
		}
	}
	if req.Message == "" {
		req.Message = "ping"
	}

	for i := 1; i <= 2; i++ {
		units := i
		s.jobs.Submit("notify", func(ctx context.Context) error {
			timer := time.NewTimer(time.Duration(units) * s.config.BaseDelay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return ctx.Err()
			}
			s.logger.Info("notification delivered",
				logging.String("message", req.Message),
				logging.Int("units", units))
			return nil
		})
	}

	s.writeJSON(w, http.StatusAccepted, map[string]any{
		"status": "accepted",
		"jobs":   2,
	})
}

// handleFiles accepts a multipart upload and saves it in the background,
// responding before the write happens.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.security.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing multipart field \"file\""})
		return
	}
	defer file.Close()

	// The request body is gone once the handler returns, so the content
	// is captured now and only the disk write is deferred.
	data, err := io.ReadAll(file)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading upload"})
		return
	}

	name := filepath.Base(header.Filename)
	if name == "." || name == string(filepath.Separator) {
		name = "upload"
	}
	dest := filepath.Join(s.config.DataDir, "uploads", name)

	s.jobs.Submit("save-file", func(ctx context.Context) error {
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("creating upload directory: %w", err)
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return fmt.Errorf("saving %s: %w", name, err)
		}
		s.logger.Info("upload saved",
			logging.String("file", name),
			logging.Int("bytes", len(data)))
		return nil
	})

	s.writeJSON(w, http.StatusAccepted, map[string]any{
		"status": "accepted",
		"file":   name,
		"bytes":  len(data),
	})
}

// handleHealthz reports liveness plus a resource snapshot.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	sys := sysmon.Sample()

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"goroutines":      runtime.NumGoroutine(),
		"heap_alloc":      format.FormatBytes(ms.HeapAlloc),
		"pending_jobs":    s.jobs.Pending(),
		"sys_cpu_percent": sys.CPUPercent,
		"sys_mem_percent": sys.MemPercent,
	})
}

// handleMetrics serves Prometheus metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("method not allowed",
		logging.String("method", r.Method),
		logging.String("path", r.URL.Path))
	s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encoding response", err)
	}
}
