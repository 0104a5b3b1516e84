package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/apifuse/apifuse/internal/config"
	"github.com/apifuse/apifuse/internal/protocol"
	"github.com/apifuse/apifuse/internal/registry"
	"github.com/apifuse/apifuse/internal/server"
	"github.com/apifuse/apifuse/internal/service"
	"github.com/apifuse/apifuse/internal/stdio"
	"github.com/apifuse/apifuse/internal/tools"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	serverName    = "apifuse"
	serverVersion = "1.0.0"
)

func main() {
	// Logs always go to stderr: in stdio mode stdout carries protocol
	// frames and must never be mixed with diagnostics.
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		os.Exit(1)
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	reg := buildRegistry(cfg)

	log.Info().
		Str("mode", string(cfg.Mode)).
		Strs("tools", reg.Names()).
		Msg("server initialized")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rpc := protocol.NewHandler(reg, serverName, serverVersion)

	g, ctx := errgroup.WithContext(ctx)
	if cfg.HTTPEnabled() {
		srv := server.New(cfg, reg, rpc)
		g.Go(func() error { return srv.Run(ctx) })
	}
	if cfg.StdioEnabled() {
		std := stdio.NewServer(rpc, os.Stdin, os.Stdout)
		g.Go(func() error { return std.Run(ctx) })
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("server terminated")
		os.Exit(1)
	}
	log.Info().Msg("shutdown complete")
}

// buildRegistry registers only the capabilities whose provider credential is
// present, so discovery always reflects invokable tools. Missing keys are
// logged and the tool is simply absent.
func buildRegistry(cfg *config.Config) *registry.Registry {
	reg := registry.New()
	timeout := cfg.ProviderTimeout()

	if cfg.OpenWeatherAPIKey != "" {
		weatherSvc := service.NewWeatherService(cfg.OpenWeatherAPIKey, timeout)
		reg.Register(tools.WeatherTool(weatherSvc))
	} else {
		log.Warn().Msg("weather tool not registered - missing OpenWeatherMap API key")
	}

	if cfg.NewsAPIKey != "" {
		newsSvc := service.NewNewsService(cfg.NewsAPIKey, timeout)
		reg.Register(tools.NewsTool(newsSvc))
	} else {
		log.Warn().Msg("news tool not registered - missing News API key")
	}

	if cfg.AlphaVantageAPIKey != "" {
		stockSvc := service.NewStockService(cfg.AlphaVantageAPIKey, timeout)
		reg.Register(tools.StockQuoteTool(stockSvc))
		reg.Register(tools.StockSearchTool(stockSvc))
	} else {
		log.Warn().Msg("stock tools not registered - missing Alpha Vantage API key")
	}

	return reg
}
