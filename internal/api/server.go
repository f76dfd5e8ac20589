package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 2 * time.Minute
	drainTimeout      = 10 * time.Second
)

// Server wraps http.Server with the forum API's timeouts and a signal-driven
// shutdown that drains in-flight requests before exiting.
type Server struct {
	*http.Server
}

func NewServer(addr string, router *http.ServeMux) *Server {
	return &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
		},
	}
}

// StartWithGracefulShutdown blocks until the listener fails or a termination
// signal arrives. On a signal, in-flight requests get drainTimeout to finish
// before the server is closed outright.
func (s *Server) StartWithGracefulShutdown() {
	listenErr := make(chan error, 1)

	go func() {
		log.Printf("Forum API listening on %s", s.Addr)
		listenErr <- s.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}

	case sig := <-stop:
		log.Printf("Received %s, draining in-flight requests", sig)

		ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			log.Printf("Drain did not finish within %v: %v", drainTimeout, err)
			if err := s.Close(); err != nil {
				log.Printf("Forced close failed: %v", err)
			}
		}

		log.Println("Server stopped")
	}
}
