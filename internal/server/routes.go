package server

import (
	"net/http"

	"github.com/apifuse/apifuse/internal/handler"
	"github.com/apifuse/apifuse/internal/middleware"
	"github.com/apifuse/apifuse/internal/protocol"
	"github.com/apifuse/apifuse/internal/registry"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func (s *Server) setupRoutes(reg *registry.Registry, rpc *protocol.Handler) http.Handler {
	cfg := s.cfg

	healthH := handler.NewHealthHandler(reg)
	toolsH := handler.NewToolsHandler(reg)
	rpcH := handler.NewRPCHandler(rpc)

	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(chiMiddleware.RealIP)

	// Public routes
	r.Get("/health", healthH.Health)
	r.Get("/", healthH.Health)

	if cfg.EnableAuth && cfg.APIKey == "" {
		log.Warn().Msg("WARNING: auth enabled but MCP_API_KEY not set - tool routes will be served unauthenticated")
	}

	r.Group(func(r chi.Router) {
		if cfg.EnableAuth && cfg.APIKey != "" {
			r.Use(middleware.Auth(cfg.APIKey, cfg.APIKeyHeader))
		}

		r.Get("/tools", toolsH.List)
		r.Post("/tools/{tool_name}", toolsH.Invoke)
		r.Post("/mcp", rpcH.Serve)
	})

	return r
}
