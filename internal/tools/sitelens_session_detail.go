package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sitelens/sitelens-mcp-server/internal/client"
	"github.com/sitelens/sitelens-mcp-server/internal/protocol"
	"github.com/sitelens/sitelens-mcp-server/internal/report"
)

// sessionDetailTool replays a single session's recorded event timeline.
type sessionDetailTool struct {
	api *client.Client
}

// SessionDetail constructs the get_session_detail tool.
func SessionDetail(api *client.Client) *sessionDetailTool {
	return &sessionDetailTool{api: api}
}

func (t *sessionDetailTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name: "get_session_detail",
		Description: `Get the full event timeline of a single session: page views, clicks, form submissions, scroll depth and web vitals, in chronological order with timestamps.

Use this tool after get_sessions, when the user wants to replay what one visitor actually did.`,
		InputSchema: &protocol.JSONSchema{
			Type:     "object",
			Required: []string{"sessionId"},
			Properties: map[string]protocol.JSONSchema{
				"sessionId": {Type: "integer", Description: "Numeric identifier of the session, as returned by get_sessions"},
			},
		},
	}
}

type sessionDetailArgs struct {
	SessionId int `json:"sessionId"`
}

func (t *sessionDetailTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, error) {
	var args sessionDetailArgs
	if err := parseArgs(t.Descriptor(), raw, &args); err != nil {
		return protocol.CallResult{}, err
	}

	data, err := t.api.Fetch(ctx, fmt.Sprintf("/api/mcp/sessions/%d", args.SessionId), nil)
	if err != nil {
		return protocol.CallResult{}, err
	}
	return protocol.TextResult(report.SessionDetail(data)), nil
}
