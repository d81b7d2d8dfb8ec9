package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/lexis/internal/config"
	"github.com/hpungsan/lexis/internal/errors"
	"github.com/hpungsan/lexis/internal/filter"
	"github.com/hpungsan/lexis/internal/ops"
	"github.com/hpungsan/lexis/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store store.Store
	cfg   *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st store.Store, cfg *config.Config) *Handlers {
	return &Handlers{store: st, cfg: cfg}
}

// FilterNaturalRequest represents the arguments for string_filter_natural.
type FilterNaturalRequest struct {
	Query string `json:"query"`
}

// HandleCreate handles the string_create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Create(ctx, h.store, h.cfg, ops.CreateInput{Args: req.GetArguments()})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleGet handles the string_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := ops.ValueFromArgs(req.GetArguments())
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Get(ctx, h.store, ops.GetInput{Value: value})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleDelete handles the string_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := ops.ValueFromArgs(req.GetArguments())
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Delete(ctx, h.store, ops.DeleteInput{Value: value})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleList handles the string_list tool call. Arguments share the
// filter.Spec JSON shape.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spec, err := decode[filter.Spec](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.List(ctx, h.store, ops.ListInput{Filters: spec})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleFilterNatural handles the string_filter_natural tool call.
func (h *Handlers) HandleFilterNatural(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FilterNaturalRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.FilterNatural(ctx, h.store, ops.FilterNaturalInput{Query: input.Query})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleAnalyze handles the string_analyze tool call.
func (h *Handlers) HandleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := ops.ValueFromArgs(req.GetArguments())
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Analyze(h.cfg, ops.AnalyzeInput{Value: value})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are never exposed.
func errorResult(err error) *mcp.CallToolResult {
	lErr := errors.As(err)

	errorObj := map[string]any{
		"code":    lErr.Code,
		"message": lErr.Message,
		"status":  lErr.Status,
	}
	if lErr.Code != errors.ErrInternal && len(lErr.Details) > 0 {
		errorObj["details"] = lErr.Details
	}

	content, _ := json.Marshal(map[string]any{"error": errorObj})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
