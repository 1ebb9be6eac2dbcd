// Package httpserver owns the web-server lifecycle. The entry point and
// component tests construct a Server, start it and shut it down; there is
// no ambient global connection handle.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"

	"go.uber.org/zap"
)

type Server struct {
	httpServer *http.Server
	addr       string
	logger     *zap.Logger
}

// New prepares a server for the given address. Pass an address with port 0
// (or an empty port) to let the OS choose one; Start reports the bound
// address.
func New(addr string, handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{Handler: handler},
		addr:       addr,
		logger:     logger,
	}
}

// Start binds the listener and serves in the background. It returns the
// bound address so tests binding port 0 can find the server.
func (s *Server) Start() (net.Addr, error) {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, err
	}

	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", listener.Addr().String()))
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server failed", zap.Error(err))
		}
	}()

	return listener.Addr(), nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
