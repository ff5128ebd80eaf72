// Package server wires the facade HTTP surface to its ledger and transaction
// log backends.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	ledgerv1 "github.com/louisbranch/txfacade/api/ledger/v1"
	txlogv1 "github.com/louisbranch/txfacade/api/txlog/v1"
	platformgrpc "github.com/louisbranch/txfacade/internal/platform/grpc"
	"github.com/louisbranch/txfacade/internal/platform/timeouts"
	httpapi "github.com/louisbranch/txfacade/internal/services/facade/api/http"
	"github.com/louisbranch/txfacade/internal/services/facade/domain"
	"github.com/louisbranch/txfacade/internal/services/facade/events"
	gogrpc "google.golang.org/grpc"
)

// Config defines the inputs for the facade process.
type Config struct {
	HTTPAddr          string
	LedgerAddr        string
	LogAddr           string
	GRPCDialTimeout   time.Duration
	BackendTimeout    time.Duration
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	// Events receives dispatch outcomes. Nil disables publishing.
	Events events.Publisher
}

// Server hosts the facade HTTP process.
type Server struct {
	listener        net.Listener
	httpServer      *http.Server
	shutdownTimeout time.Duration
	ledgerConn      *gogrpc.ClientConn
	logConn         *gogrpc.ClientConn
	service         *domain.Service
}

// NewServer dials both backends and binds the HTTP listener.
//
// A backend that is not SERVING within the dial timeout does not block
// startup: the facade falls back to a lazily connecting client so requests
// degrade until the backend appears.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	ledgerAddr := strings.TrimSpace(config.LedgerAddr)
	if ledgerAddr == "" {
		return nil, errors.New("ledger address is required")
	}
	logAddr := strings.TrimSpace(config.LogAddr)
	if logAddr == "" {
		return nil, errors.New("log address is required")
	}
	if config.ReadHeaderTimeout <= 0 {
		config.ReadHeaderTimeout = timeouts.ReadHeader
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = timeouts.Shutdown
	}
	if config.GRPCDialTimeout <= 0 {
		config.GRPCDialTimeout = timeouts.GRPCDial
	}
	if config.BackendTimeout < 0 {
		config.BackendTimeout = 0
	}

	ledgerConn, err := dialBackend(ctx, "ledger", ledgerAddr, config.GRPCDialTimeout)
	if err != nil {
		return nil, err
	}
	logConn, err := dialBackend(ctx, "txlog", logAddr, config.GRPCDialTimeout)
	if err != nil {
		closeConn("ledger", ledgerConn)
		return nil, err
	}

	listener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		closeConn("ledger", ledgerConn)
		closeConn("txlog", logConn)
		return nil, fmt.Errorf("listen on %s: %w", httpAddr, err)
	}

	service := domain.NewService(
		ledgerGateway{client: ledgerv1.NewLedgerServiceClient(ledgerConn)},
		logGateway{client: txlogv1.NewTransactionLogServiceClient(logConn)},
		domain.Config{
			CallTimeout: config.BackendTimeout,
			Events:      config.Events,
		},
	)

	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           httpapi.NewHandler(service),
			ReadHeaderTimeout: config.ReadHeaderTimeout,
		},
		shutdownTimeout: config.ShutdownTimeout,
		ledgerConn:      ledgerConn,
		logConn:         logConn,
		service:         service,
	}, nil
}

// Addr returns the HTTP listener address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a facade server until the context ends.
func Run(ctx context.Context, config Config) error {
	server, err := NewServer(ctx, config)
	if err != nil {
		return fmt.Errorf("init facade server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve facade: %w", err)
	}
	return nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("facade server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("facade server listening on %s", s.listener.Addr())
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases backend connections and the listener.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	closeConn("ledger", s.ledgerConn)
	closeConn("txlog", s.logConn)
}

func dialBackend(ctx context.Context, name, addr string, dialTimeout time.Duration) (*gogrpc.ClientConn, error) {
	conn, err := platformgrpc.DialBackend(ctx, name, addr, dialTimeout, log.Printf)
	if err == nil {
		return conn, nil
	}
	log.Printf("%v; continuing with lazy connection", err)
	return platformgrpc.NewLazyClient(addr)
}

func closeConn(name string, conn *gogrpc.ClientConn) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil {
		log.Printf("close %s gRPC connection: %v", name, err)
	}
}
