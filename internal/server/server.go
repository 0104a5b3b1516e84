package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/apifuse/apifuse/internal/config"
	"github.com/apifuse/apifuse/internal/protocol"
	"github.com/apifuse/apifuse/internal/registry"
	"github.com/rs/zerolog/log"
)

type Server struct {
	cfg  *config.Config
	http *http.Server
}

func New(cfg *config.Config, reg *registry.Registry, rpc *protocol.Handler) *Server {
	s := &Server{cfg: cfg}

	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.setupRoutes(reg, rpc),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.http.Addr).Msg("http transport listening")
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("graceful shutdown initiated")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
