package tools

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/sitelens/sitelens-mcp-server/internal/client"
	"github.com/sitelens/sitelens-mcp-server/internal/protocol"
	"github.com/sitelens/sitelens-mcp-server/internal/report"
)

// userFlowsTool reports detected multi-step navigation flows.
type userFlowsTool struct {
	api *client.Client
}

// UserFlows constructs the get_user_flows tool.
func UserFlows(api *client.Client) *userFlowsTool {
	return &userFlowsTool{api: api}
}

func (t *userFlowsTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name: "get_user_flows",
		Description: `Get the navigation flows detected across sessions: multi-step paths visitors commonly take, with per-flow session counts, conversion rates and per-step drop-off.

Use this tool when the user asks how visitors move through the app, where they drop off, or which journeys convert.`,
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"limit":       {Type: "integer", Minimum: minimum(0), Default: float64(10), Description: "Maximum number of flows to return"},
				"category":    {Type: "string", Description: "Restrict to flows in this category, e.g. \"checkout\""},
				"minSessions": {Type: "integer", Minimum: minimum(0), Description: "Only flows observed in at least this many sessions"},
			},
		},
	}
}

type userFlowsArgs struct {
	Limit       int    `json:"limit"`
	Category    string `json:"category"`
	MinSessions int    `json:"minSessions"`
}

func (t *userFlowsTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, error) {
	var args userFlowsArgs
	if err := parseArgs(t.Descriptor(), raw, &args); err != nil {
		return protocol.CallResult{}, err
	}

	q := url.Values{}
	setInt(q, "limit", args.Limit)
	setStr(q, "category", args.Category)
	setInt(q, "minSessions", args.MinSessions)

	data, err := t.api.Fetch(ctx, "/api/mcp/flows", &client.Options{Query: q})
	if err != nil {
		return protocol.CallResult{}, err
	}
	return protocol.TextResult(report.UserFlows(data)), nil
}
