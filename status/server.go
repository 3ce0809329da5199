package status

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/netutil"
)

const (
	maxConnections  = 8
	shutdownTimeout = 2 * time.Second
)

// Server exposes Metrics over HTTP at /metrics
type Server struct {
	addr    string
	metrics *Metrics
	logger  *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	srv      *http.Server
	done     chan struct{}
}

// NewServer creates a metrics server bound to addr on Init
func NewServer(addr string, m *Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{addr: addr, metrics: m, logger: logger.With("component", "metrics")}
}

// Name implements service.Service
func (s *Server) Name() string { return "metrics" }

// Dependencies implements service.Service
func (s *Server) Dependencies() []string { return nil }

// Init binds the listener so address errors surface at startup
func (s *Server) Init(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("metrics listen %s: %w", s.addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))

	s.mu.Lock()
	s.listener = netutil.LimitListener(ln, maxConnections)
	s.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	s.mu.Unlock()
	return nil
}

// Addr returns the bound address, useful when configured with port 0
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Start serves in a background goroutine
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil {
		return errors.New("metrics server not initialized")
	}
	if s.done != nil {
		return nil
	}

	s.done = make(chan struct{})
	srv, ln, done := s.srv, s.listener, s.done
	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server stopped", "error", err)
		}
	}()
	s.logger.Info("metrics server listening", "addr", ln.Addr().String())
	return nil
}

// Stop shuts the server down; safe to call repeatedly
func (s *Server) Stop() error {
	s.mu.Lock()
	srv, ln, done := s.srv, s.listener, s.done
	s.srv, s.done = nil, nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	if done == nil {
		// Initialized but never started
		return ln.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(ctx)
	<-done
	return err
}
