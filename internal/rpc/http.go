package rpc

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/service"
)

// HTTPConfig selects the endpoints of the HTTP listener
type HTTPConfig struct {
	Address         string
	EnableWebsocket bool
	EnableMetrics   bool
}

// HTTPServer serves JSON-RPC on /, the websocket on /ws and metrics on
// /metrics.
type HTTPServer struct {
	config HTTPConfig
	rpc    *Server
	ws     *WebSocketServer
	server *http.Server
	log    *slog.Logger
}

// NewHTTPServer builds the listener around rpc. hub feeds the websocket.
func NewHTTPServer(cfg HTTPConfig, rpc *Server, hub *service.Hub) *HTTPServer {
	s := &HTTPServer{config: cfg, rpc: rpc, log: rpc.log}
	s.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(hub),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routing handler.
func (s *HTTPServer) Handler(hub *service.Hub) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", s.rpc)
	if s.config.EnableWebsocket {
		if s.ws == nil {
			s.ws = NewWebSocketServer(s.rpc, hub)
		}
		mux.Handle("/ws", s.ws)
	}
	if s.config.EnableMetrics {
		mux.Handle("/metrics", promhttp.Handler())
	}
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down within
// shutdownTimeout.
func (s *HTTPServer) ListenAndServe(ctx context.Context, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve is ListenAndServe on an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	s.log.Info("rpc listening", "address", ln.Addr().String(),
		"websocket", s.config.EnableWebsocket, "metrics", s.config.EnableMetrics)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if s.ws != nil {
		s.ws.CloseAll()
	}
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("rpc stopped")
	return nil
}
