package http

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	metrics "github.com/aescanero/textcase/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the HTTP API server
type Server struct {
	router  *gin.Engine
	server  *http.Server
	metrics *metrics.Collector
	logger  *zap.Logger

	// allowed maps each routed path to its methods; written only while
	// routes are registered
	allowed map[string][]string
}

// Config holds HTTP server configuration
type Config struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// MetricsEnabled exposes Gatherer on /metrics
	MetricsEnabled bool
	Metrics        *metrics.Collector
	Gatherer       prometheus.Gatherer

	Logger *zap.Logger
}

// StreamHandler serves the websocket uppercase stream
type StreamHandler interface {
	HandleUppercaseStream(*gin.Context)
}

// NewServer creates a new HTTP server with its route table
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	collector := cfg.Metrics
	if collector == nil {
		collector = metrics.NewCollectorWithRegistry(prometheus.NewRegistry())
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(logger))
	router.Use(requestMetrics(collector))

	s := &Server{
		router:  router,
		metrics: collector,
		logger:  logger,
		allowed: make(map[string][]string),
	}

	router.NoRoute(handleNoRoute)
	router.NoMethod(s.handleNoMethod)

	s.setupRoutes()

	if cfg.MetricsEnabled {
		gatherer := cfg.Gatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		s.handle("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})), http.MethodGet)
	}

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes() {
	s.handle("/", s.handleIndex, http.MethodGet, http.MethodHead)

	// Text is read from the query string for every method
	s.handle("/uppercase", s.handleUppercase, http.MethodGet, http.MethodHead, http.MethodPost)

	s.router.OPTIONS("/", s.handleOptions)
	s.router.OPTIONS("/uppercase", s.handleOptions)
	s.allow("/", http.MethodOptions)
	s.allow("/uppercase", http.MethodOptions)

	// Health check
	s.handle("/health", s.handleHealth, http.MethodGet)
}

// handle registers h for path under each method
func (s *Server) handle(path string, h gin.HandlerFunc, methods ...string) {
	for _, method := range methods {
		s.router.Handle(method, path, h)
	}
	s.allow(path, methods...)
}

func (s *Server) allow(path string, methods ...string) {
	s.allowed[path] = append(s.allowed[path], methods...)
	sort.Strings(s.allowed[path])
}

// allowHeader returns the Allow value for path, or "" if path is not routed
func (s *Server) allowHeader(path string) string {
	return strings.Join(s.allowed[path], ", ")
}

// SetupWebSocket adds the streaming uppercase endpoint
func (s *Server) SetupWebSocket(handler StreamHandler) {
	s.handle("/uppercase/ws", handler.HandleUppercaseStream, http.MethodGet)
}

// Handler returns the root handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}
