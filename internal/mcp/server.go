package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sitelens/sitelens-mcp-server/internal/guide"
	"github.com/sitelens/sitelens-mcp-server/internal/protocol"
	"github.com/sitelens/sitelens-mcp-server/internal/version"
)

const protocolVersion = "2024-11-05"

// Server handles MCP JSON-RPC requests against a toolbox.
type Server struct {
	toolbox *Toolbox
}

// NewServer wires a toolbox into an MCP server.
func NewServer(tb *Toolbox) *Server {
	return &Server{toolbox: tb}
}

// Handle routes a single request. Protocol-level faults come back as
// JSON-RPC errors; tool-level faults come back as successful responses
// carrying an error envelope.
func (s *Server) Handle(ctx context.Context, req protocol.Request) protocol.Response {
	if err := validateJSONRPC(req); err != nil {
		return errorResponse(req.ID, err)
	}

	switch req.Method {
	case "initialize":
		return okResponse(req.ID, map[string]any{
			"protocolVersion": protocolVersion,
			"serverInfo": map[string]string{
				"name":    "sitelens-mcp-server",
				"version": version.Get().Version,
			},
			"capabilities": map[string]any{
				"tools":   map[string]any{},
				"prompts": map[string]any{},
			},
		})
	case "ping":
		return okResponse(req.ID, map[string]any{})
	case "tools/list":
		return okResponse(req.ID, protocol.ListResult{Tools: s.toolbox.Describe()})
	case "tools/call":
		var params protocol.CallParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, &protocol.ResponseError{Code: -32602, Message: "invalid params"})
		}
		if params.Name == "" {
			return errorResponse(req.ID, &protocol.ResponseError{Code: -32602, Message: "tool name required"})
		}
		return okResponse(req.ID, s.toolbox.Call(ctx, params.Name, params.Args))
	case "prompts/list":
		return okResponse(req.ID, protocol.PromptListResult{Prompts: guide.Prompts()})
	case "prompts/get":
		var params protocol.PromptGetParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, &protocol.ResponseError{Code: -32602, Message: "invalid params"})
		}
		result, ok := guide.Get(params.Name)
		if !ok {
			return errorResponse(req.ID, &protocol.ResponseError{Code: -32602, Message: fmt.Sprintf("unknown prompt: %s", params.Name)})
		}
		return okResponse(req.ID, result)
	default:
		return errorResponse(req.ID, &protocol.ResponseError{Code: -32601, Message: "method not found"})
	}
}

func okResponse(id any, result any) protocol.Response {
	return protocol.Response{JSONRPC: "2.0", ID: normalizeID(id), Result: result}
}

func errorResponse(id any, err *protocol.ResponseError) protocol.Response {
	return protocol.Response{JSONRPC: "2.0", ID: normalizeID(id), Error: err}
}

func validateJSONRPC(req protocol.Request) *protocol.ResponseError {
	if req.JSONRPC != "" && req.JSONRPC != "2.0" {
		return &protocol.ResponseError{Code: -32600, Message: "invalid jsonrpc version"}
	}
	return nil
}

func normalizeID(id any) any {
	if id == nil {
		return "0"
	}
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return v
	case int, int32, int64, uint32, uint64:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
