package server

import (
	"context"
	"net/http"

	"freight/internal/carrier"
	"freight/internal/configuration"
)

// Server encapsulates the HTTP server of the application, providing controlled startup and shutdown.
type Server struct {
	server *http.Server
}

// ListenAndServe starts the HTTP server and begins listening on the configured address.
// If server is stopped via Shutdown, method returns http.ErrServerClosed.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server, letting active requests complete within the
// deadline of ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// NewServer creates a server exposing the API v1 routes with the timeouts and body limit
// of cfg. Header size is limited to 10 KiB.
func NewServer(
	cfg configuration.ServerConfig,
	offerService OfferService,
	scoring ScoringConfigurator,
	carriers carrier.Provider,
) *Server {
	router := NewApiV1Router(offerService, scoring, carriers, cfg.MaxBodyBytes)
	s := Server{&http.Server{
		Addr:           cfg.Address,
		Handler:        router.Mux(),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxHeaderBytes: 1024 * 10,
	}}

	return &s
}
