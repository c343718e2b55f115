package mcpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "pricing-mcp"
	serverVersion = "0.1.0"

	// DefaultMCPPort is the default port for the MCP server.
	DefaultMCPPort = "7466"
)

// Config holds the configuration for the MCP server.
type Config struct {
	Host string
	Port string
}

// Server serves the pricing tools over the MCP streamable HTTP transport.
type Server struct {
	config     *Config
	mcpServer  *server.MCPServer
	httpServer *http.Server
	handler    *Handler
}

// New creates a new pricing MCP server on top of the given bridge.
func New(ctx context.Context, caller ToolCaller, config *Config) *Server {
	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)

	handler := NewHandler(caller)
	registerTools(mcpServer, handler)

	addr := fmt.Sprintf("%s:%s", config.Host, config.Port)
	streamableServer := server.NewStreamableHTTPServer(
		mcpServer,
		server.WithEndpointPath("/mcp"),
		server.WithHTTPContextFunc(func(_ context.Context, _ *http.Request) context.Context {
			return ctx
		}),
	)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           streamableServer,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
	}

	return &Server{
		config:     config,
		mcpServer:  mcpServer,
		httpServer: httpServer,
		handler:    handler,
	}
}

// Start starts the MCP server and blocks until it stops.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP side of the MCP server. The bridge
// worker has no drain protocol and keeps running until the process exits.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// GetAddress returns the server address.
func (s *Server) GetAddress() string {
	return fmt.Sprintf("http://%s:%s/mcp", s.config.Host, s.config.Port)
}

// registerTools registers the pricing tools with the MCP server.
func registerTools(mcpServer *server.MCPServer, handler *Handler) {
	mcpServer.AddTool(mcp.Tool{
		Name:        "get_product_price",
		Description: "Get the price of a product by ID",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"product_id": map[string]interface{}{
					"type":        "integer",
					"description": "The ID of the product",
				},
			},
			Required: []string{"product_id"},
		},
	}, handler.GetProductPrice)

	mcpServer.AddTool(mcp.Tool{
		Name:        "search_products",
		Description: "Search for products by name pattern",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The search query (case-insensitive substring)",
				},
			},
			Required: []string{"query"},
		},
	}, handler.SearchProducts)
}
