package tools

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/sitelens/sitelens-mcp-server/internal/client"
	"github.com/sitelens/sitelens-mcp-server/internal/protocol"
	"github.com/sitelens/sitelens-mcp-server/internal/report"
)

// visitorDetailTool reports a single visitor's profile and activity.
type visitorDetailTool struct {
	api *client.Client
}

// VisitorDetail constructs the get_visitor_detail tool.
func VisitorDetail(api *client.Client) *visitorDetailTool {
	return &visitorDetailTool{api: api}
}

func (t *visitorDetailTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name: "get_visitor_detail",
		Description: `Get the full profile of a single visitor: country, first and last seen dates, activity stats, recent sessions, and an AI-generated behaviour summary when one is available.

Use this tool after get_visitors, when the user wants to understand one specific visitor.`,
		InputSchema: &protocol.JSONSchema{
			Type:     "object",
			Required: []string{"visitorId"},
			Properties: map[string]protocol.JSONSchema{
				"visitorId": {Type: "string", Description: "Identifier of the visitor, as returned by get_visitors"},
			},
		},
	}
}

type visitorDetailArgs struct {
	VisitorId string `json:"visitorId"`
}

func (t *visitorDetailTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, error) {
	var args visitorDetailArgs
	if err := parseArgs(t.Descriptor(), raw, &args); err != nil {
		return protocol.CallResult{}, err
	}

	data, err := t.api.Fetch(ctx, "/api/mcp/visitors/"+url.PathEscape(args.VisitorId), nil)
	if err != nil {
		return protocol.CallResult{}, err
	}
	return protocol.TextResult(report.VisitorDetail(data)), nil
}
