// Package server wires together the codec, store, and dispatcher into a
// running TCP service, plus an optional admin HTTP endpoint for health
// checks and Prometheus scraping.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/marmos91/respkv/internal/dispatch"
	"github.com/marmos91/respkv/internal/logger"
	"github.com/marmos91/respkv/internal/store"
	"github.com/marmos91/respkv/pkg/metrics"
)

// Config holds the addresses and feature toggles a Server is constructed
// with. It is a plain value independent of pkg/config's file/env loading.
type Config struct {
	// Addr is the TCP address the RESP server listens on, e.g. ":6379".
	Addr string

	// MetricsEnabled toggles the admin HTTP server.
	MetricsEnabled bool

	// AdminAddr is the admin HTTP server's listen address, e.g. ":9090".
	// Only used when MetricsEnabled is true.
	AdminAddr string

	// Registry is the Prometheus registry /metrics serves from. Required
	// when MetricsEnabled is true.
	Registry *prometheus.Registry
}

// Server owns the TCP listener, the admin HTTP server, and the shared
// store all accepted connections dispatch against.
type Server struct {
	config     Config
	store      *store.Store
	metrics    metrics.CommandMetrics
	dispatcher *dispatch.Dispatcher

	listener   net.Listener
	adminHTTP  *http.Server
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	activeConn int32
	connMu     sync.Mutex
}

// New builds a Server over the given store. m may be nil to disable
// metrics recording.
func New(cfg Config, s *store.Store, m metrics.CommandMetrics) *Server {
	return &Server{
		config:     cfg,
		store:      s,
		metrics:    m,
		dispatcher: dispatch.New(s, m),
		shutdown:   make(chan struct{}),
	}
}

// Serve starts the TCP listener (and, if configured, the admin HTTP
// server) and blocks until ctx is cancelled, Stop is called, or either
// server fails.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Addr, err)
	}
	s.listener = listener

	logger.Info("respkv server listening", "address", listener.Addr().String())

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return s.acceptLoop(groupCtx)
	})

	if s.config.MetricsEnabled {
		s.adminHTTP = s.buildAdminServer()
		group.Go(func() error {
			return s.serveAdmin()
		})
	}

	group.Go(func() error {
		select {
		case <-groupCtx.Done():
			s.Stop()
			return nil
		case <-s.shutdown:
			return nil
		}
	})

	err = group.Wait()
	s.wg.Wait()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// acceptLoop accepts connections until the listener is closed, handling
// each on its own tracked goroutine.
func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		s.wg.Add(1)
		go func(c net.Conn) {
			defer s.wg.Done()
			s.handleConnection(ctx, c)
		}(conn)
	}
}

// buildAdminServer constructs the chi-routed admin HTTP server.
func (s *Server) buildAdminServer() *http.Server {
	mux := chi.NewRouter()
	mux.Get("/healthz", s.handleHealthz)
	if s.config.Registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
	}

	return &http.Server{
		Addr:              s.config.AdminAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.listener == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) serveAdmin() error {
	logger.Info("respkv admin endpoint listening", "address", s.config.AdminAddr)
	if err := s.adminHTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the TCP listener and admin HTTP server. It
// is idempotent and safe to call from any goroutine, including more than
// once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.shutdown)
		if s.listener != nil {
			_ = s.listener.Close()
		}
		if s.adminHTTP != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.adminHTTP.Shutdown(ctx)
		}
	})
}

// Addr returns the TCP listener's bound address, or empty string if the
// server has not started listening yet.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) trackConnectionOpened() {
	s.connMu.Lock()
	s.activeConn++
	count := s.activeConn
	s.connMu.Unlock()
	if s.metrics != nil {
		s.metrics.RecordConnectionAccepted()
		s.metrics.SetActiveConnections(count)
	}
}

func (s *Server) trackConnectionClosed() {
	s.connMu.Lock()
	s.activeConn--
	count := s.activeConn
	s.connMu.Unlock()
	if s.metrics != nil {
		s.metrics.RecordConnectionClosed()
		s.metrics.SetActiveConnections(count)
	}
}
