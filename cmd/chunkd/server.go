// cmd/chunkd/server.go
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/FairForge/cdcchunker/internal/chunker"
	"github.com/FairForge/cdcchunker/internal/common"
	"github.com/FairForge/cdcchunker/internal/config"
	"github.com/FairForge/cdcchunker/internal/sink"
)

// Server is the demo HTTP surface around internal/chunker: one route
// chunks an uploaded body with the configured algorithm, another exposes
// the Prometheus registry every chunk pipeline reports into.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	router  chi.Router
	reg     *prometheus.Registry
	metrics *sink.MetricsCollector

	httpServer *http.Server
}

// chunkRecord is the JSON shape returned per emitted chunk.
type chunkRecord struct {
	Offset int64  `json:"offset"`
	Length int    `json:"length"`
	SHA256 string `json:"sha256"`
}

// NewServer wires a Server around cfg, logging with logger and registering
// chunking metrics against its own registry (never the global default, so
// a second Server in the same process — e.g. in tests — doesn't panic on
// duplicate metric registration).
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	reg := prometheus.NewRegistry()
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		router:  chi.NewRouter(),
		reg:     reg,
		metrics: sink.NewMetricsCollector(reg),
	}

	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)

	s.router.Post("/v1/chunk", s.handleChunk)
	s.router.Get("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}).ServeHTTP)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// Start blocks serving HTTP until the server is shut down.
func (s *Server) Start() error {
	s.logger.Info("chunkd listening", zap.Int("port", s.cfg.Server.Port))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// requestIDMiddleware assigns every request a uuid, echoes it back in the
// X-Request-Id header, and threads it through the request context.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := common.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs each request's outcome at completion, tagged with
// its request ID.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request completed",
			zap.String("request_id", common.GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)))
	})
}

// handleChunk streams the request body through the configured chunker and
// responds with the JSON chunk sequence produced.
func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	requestID := common.GetRequestID(r.Context())

	algo := chunker.Algorithm(s.cfg.Chunker.Algorithm)
	if algo == "" {
		algo = chunker.Default()
	}
	if tag := r.URL.Query().Get("algorithm"); tag != "" {
		algo = chunker.Algorithm(tag)
	}

	strategy, err := chunker.NewStrategy(algo)
	if err != nil {
		s.logger.Warn("rejected chunk request: bad algorithm",
			zap.String("request_id", requestID), zap.String("algorithm", string(algo)))
		http.Error(w, fmt.Sprintf("unknown algorithm %q", algo), http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	// Chunks are collected uncompressed (the Compress option is not applied
	// here), so the response is always reported in terms of original chunk
	// bytes.
	mem := sink.NewMemorySink()
	metricsSink := s.metrics.Wrap(mem, string(algo))

	capacity := s.cfg.Chunker.BufferCapacityOverride
	if capacity <= 0 {
		capacity = chunker.Cap
	}
	c := chunker.NewWithCapacity(metricsSink, strategy, capacity)
	for written := 0; written < len(body); {
		n, werr := c.Write(body[written:])
		if werr != nil {
			s.logger.Error("chunking failed", zap.String("request_id", requestID), zap.Error(werr))
			http.Error(w, "chunking failed", http.StatusInternalServerError)
			return
		}
		written += n
		if n == 0 {
			break
		}
	}
	if err := c.Flush(); err != nil {
		s.logger.Error("chunk flush failed", zap.String("request_id", requestID), zap.Error(err))
		http.Error(w, "chunking failed", http.StatusInternalServerError)
		return
	}

	records := make([]chunkRecord, 0, len(mem.Chunks))
	var offset int64
	for _, chunk := range mem.Chunks {
		sum := sha256.Sum256(chunk)
		records = append(records, chunkRecord{
			Offset: offset,
			Length: len(chunk),
			SHA256: hex.EncodeToString(sum[:]),
		})
		offset += int64(len(chunk))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		s.logger.Error("failed to encode response", zap.String("request_id", requestID), zap.Error(err))
	}
}
