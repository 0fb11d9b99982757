package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"
)

// ErrNotListening is returned by Serve when Listen has not succeeded.
var ErrNotListening = errors.New("server is not listening")

// Options configures a Server.
type Options struct {
	Name   string
	Addr   string
	Notice string // appended to the startup line when non-empty

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server owns one listener and one http.Server for the life of the process.
type Server struct {
	opts   Options
	logger *log.Logger
	http   *http.Server

	mu sync.Mutex
	ln net.Listener
}

// New builds a Server. A nil logger falls back to log.Default().
func New(opts Options, handler http.Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	return &Server{
		opts:   opts,
		logger: logger,
		http: &http.Server{
			Addr:         opts.Addr,
			Handler:      handler,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
			IdleTimeout:  opts.IdleTimeout,

			// OPTIONS * reaches the handler like any other request target.
			DisableGeneralOptionsHandler: true,
		},
	}
}

// Listen binds the TCP listener and logs the startup line.
// It binds at most once.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln != nil {
		return fmt.Errorf("listen %s: already bound", s.opts.Addr)
	}

	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	s.ln = ln

	line := fmt.Sprintf("%s listening on %s", s.opts.Name, displayAddr(s.opts.Addr, ln.Addr()))
	if s.opts.Notice != "" {
		line += " (" + s.opts.Notice + ")"
	}
	s.logger.Println(line)

	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve blocks serving requests on the bound listener.
// It returns nil after Shutdown.
func (s *Server) Serve() error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	if ln == nil {
		return ErrNotListening
	}

	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
// The listener is released even if Serve never ran.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)

	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	if ln != nil {
		if cerr := ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
			err = cerr
		}
	}
	return err
}

// Run binds, serves, and shuts down gracefully once ctx is done.
// shutdownTimeout bounds the drain of in-flight requests.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	if err := s.Listen(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return <-errCh
}

// displayAddr keeps the configured host name (e.g. localhost:8060) unless the
// port was chosen by the kernel.
func displayAddr(configured string, bound net.Addr) string {
	if _, port, err := net.SplitHostPort(configured); err == nil && port != "0" && port != "" {
		return configured
	}
	return bound.String()
}
