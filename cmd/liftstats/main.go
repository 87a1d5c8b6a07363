// Command liftstats runs the training-analytics MCP server, either over
// stdio (for local MCP clients) or over HTTP (optionally on a tailnet).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/liftstats/internal/api"
	"github.com/claude/liftstats/internal/config"
	liftmcp "github.com/claude/liftstats/internal/mcp"
	httpserver "github.com/claude/liftstats/internal/server"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	transport := flag.String("transport", "stdio", "MCP transport [stdio | http]")
	flag.Parse()

	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	logLevel := slog.LevelInfo
	if *transport == "stdio" {
		// stdout carries the MCP protocol in stdio mode
		logLevel = slog.LevelWarn
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	log.Info("liftstats starting", "version", Version, "transport", *transport)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	cache := api.NewTTLCache(time.Duration(cfg.Cache.TTLSeconds) * time.Second)
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Key, cache, log)

	srv := liftmcp.New(client, Version, log)

	switch *transport {
	case "stdio":
		if err := mcpserver.ServeStdio(srv); err != nil {
			log.Error("stdio server error", "error", err)
			os.Exit(1)
		}
	case "http":
		runHTTP(cfg, srv, log)
	default:
		log.Error("unknown transport", "transport", *transport)
		os.Exit(1)
	}
}

func runHTTP(cfg *config.Config, srv *mcpserver.MCPServer, log *slog.Logger) {
	streamable := mcpserver.NewStreamableHTTPServer(srv)
	handler := httpserver.New(streamable, log)

	var listener net.Listener
	var err error

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr)
	}

	httpSrv := &http.Server{Handler: handler}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
