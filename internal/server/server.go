// Package server exposes the MCP server over HTTP for remote clients:
// a chi router with request logging, CORS, a health endpoint, and the
// streamable-HTTP MCP handler mounted at /mcp.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for the HTTP transport.
type Server struct {
	mcpHandler http.Handler
	log        *slog.Logger
	router     chi.Router
}

// New creates a Server wrapping the given streamable MCP handler.
func New(mcpHandler http.Handler, log *slog.Logger) *Server {
	s := &Server{
		mcpHandler: mcpHandler,
		log:        log,
		router:     chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	s.router.Mount("/mcp", s.mcpHandler)
}
