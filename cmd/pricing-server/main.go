// Command pricing-server serves the product pricing tools over MCP.
//
// Configuration comes from the PRICING_* environment variables; see the
// config package for the full surface.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pricingworks/pricing-mcp-go/bridge"
	"github.com/pricingworks/pricing-mcp-go/catalog/postgresengine"
	"github.com/pricingworks/pricing-mcp-go/config"
	"github.com/pricingworks/pricing-mcp-go/mcpserver"
	"github.com/pricingworks/pricing-mcp-go/oteladapters"
	"github.com/pricingworks/pricing-mcp-go/tools"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("pricing-server failed: %v", err)
	}
}

func run() error {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		return cfgErr
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	pricingBridge, bridgeErr := bridge.New(
		tools.Startup(cfg, postgresengine.WithContextualLogger(logger)),
		bridge.WithQueueCapacity(cfg.QueueCapacity),
		bridge.WithContextualLogger(logger),
	)
	if bridgeErr != nil {
		return bridgeErr
	}

	// Start the worker runtime and the connection pool up front so an
	// unreachable database is reported before the server starts listening.
	if readyErr := pricingBridge.EnsureReady(); readyErr != nil {
		return readyErr
	}

	srv := mcpserver.New(ctx, pricingBridge, &mcpserver.Config{
		Host: cfg.MCPHost,
		Port: cfg.MCPPort,
	})

	serverErrors := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "serving pricing tools", "address", srv.GetAddress())
		serverErrors <- srv.Start()
	}()

	select {
	case serveErr := <-serverErrors:
		return serveErr

	case sig := <-sigChan:
		logger.InfoContext(ctx, "shutting down", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		return srv.Shutdown(shutdownCtx)
	}
}
