// Package mcpserver exposes the pricing operations as MCP tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pricingworks/pricing-mcp-go/bridge"
	"github.com/pricingworks/pricing-mcp-go/tools"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// ToolCaller is the bridge surface the MCP handlers depend on.
// *bridge.Bridge satisfies it.
type ToolCaller interface {
	Call(ctx context.Context, op bridge.Operation, payload []byte) ([]byte, error)
}

// Handler handles MCP tool requests for the pricing operations.
type Handler struct {
	caller ToolCaller
}

// NewHandler creates a new pricing tool handler.
func NewHandler(caller ToolCaller) *Handler {
	return &Handler{caller: caller}
}

// GetProductPrice fetches one product by id through the bridge.
func (h *Handler) GetProductPrice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.callThroughBridge(ctx, tools.OpGetProductPrice, request)
}

// SearchProducts searches products by name through the bridge.
func (h *Handler) SearchProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.callThroughBridge(ctx, tools.OpSearchProducts, request)
}

// callThroughBridge forwards the raw tool arguments to the worker runtime and
// wraps the outcome as a structured result or a flat tool-error string.
func (h *Handler) callThroughBridge(
	ctx context.Context,
	op bridge.Operation,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {

	payload, marshalErr := jsonCodec.Marshal(request.GetArguments())
	if marshalErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse arguments: %v", marshalErr)), nil
	}

	response, callErr := h.caller.Call(ctx, op, payload)
	if callErr != nil {
		return mcp.NewToolResultError(callErr.Error()), nil
	}

	return mcp.NewToolResultStructuredOnly(json.RawMessage(response)), nil
}
