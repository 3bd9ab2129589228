package web

import (
	"gostays/config"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// NewServer creates and configures the RWeb server
func NewServer(cfg config.ServerConfig) *rweb.Server {
	return newServer(rweb.ServerOptions{
		Address: cfg.Address,
		Verbose: cfg.Verbose,
	})
}

// NewTestServer builds a server from raw options so tests can pick a dynamic
// port and wait on a ReadyChan.
func NewTestServer(opts rweb.ServerOptions) *rweb.Server {
	return newServer(opts)
}

func newServer(opts rweb.ServerOptions) *rweb.Server {
	s := rweb.NewServer(opts)

	// Apply middleware
	s.Use(rweb.RequestInfo)          // Logs request info
	s.Use(CorsMiddleware)            // Custom CORS middleware
	s.Use(SessionMiddleware)         // Search session resolution
	s.Use(SecurityHeadersMiddleware) // Security headers
	s.Use(LoggingMiddleware)         // Request logging

	setupRoutes(s)

	// Serve static files using embedded FS
	SetupStaticFiles(s)

	return s
}

// Run starts the server
func Run(s *rweb.Server, address string) error {
	logger.Info("GoStays server starting", "address", address)
	return s.Run()
}
