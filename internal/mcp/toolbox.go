package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sitelens/sitelens-mcp-server/internal/protocol"
)

// Tool defines the behavior of a single MCP tool. Invoke returns an error
// for any recoverable failure; translation into the MCP error envelope
// happens in exactly one place, Toolbox.Call.
type Tool interface {
	Descriptor() protocol.ToolDescriptor
	Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, error)
}

// Toolbox stores and dispatches tools by name.
type Toolbox struct {
	tools map[string]Tool
	names []string
}

// NewToolbox constructs a toolbox with the provided tools.
func NewToolbox(tools ...Tool) *Toolbox {
	m := make(map[string]Tool, len(tools))
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		desc := t.Descriptor()
		m[desc.Name] = t
		names = append(names, desc.Name)
	}
	sort.Strings(names)
	return &Toolbox{tools: m, names: names}
}

// Describe returns all tool descriptors in name order.
func (tb *Toolbox) Describe() []protocol.ToolDescriptor {
	list := make([]protocol.ToolDescriptor, 0, len(tb.names))
	for _, name := range tb.names {
		list = append(list, tb.tools[name].Descriptor())
	}
	return list
}

// Call invokes a named tool. A recoverable failure, including an unknown
// tool name, becomes an error envelope rather than a JSON-RPC error, so
// the calling model sees the message as tool output.
func (tb *Toolbox) Call(ctx context.Context, name string, args json.RawMessage) protocol.CallResult {
	tool, ok := tb.tools[name]
	if !ok {
		return protocol.ErrorResult(fmt.Sprintf("Unknown tool: %s", name))
	}
	result, err := tool.Invoke(ctx, args)
	if err != nil {
		return protocol.ErrorResult(err.Error())
	}
	return result
}
