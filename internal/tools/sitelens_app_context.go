package tools

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/sitelens/sitelens-mcp-server/internal/client"
	"github.com/sitelens/sitelens-mcp-server/internal/protocol"
	"github.com/sitelens/sitelens-mcp-server/internal/report"
)

// appContextTool reports app-wide traffic, audience and performance stats.
type appContextTool struct {
	api *client.Client
}

// AppContext constructs the get_app_context tool.
func AppContext(api *client.Client) *appContextTool {
	return &appContextTool{api: api}
}

func (t *appContextTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name: "get_app_context",
		Description: `Get an app-wide analytics overview: total views, visitors and sessions, bounce rate, a per-period breakdown, top pages, top referrers, and audience splits by country, device, browser and operating system.

Use this tool when the user asks about overall traffic, where visitors come from, or how the app as a whole is doing.`,
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"periodType": {Type: "string", Enum: []string{"day", "week"}, Default: "day", Description: "Granularity of the per-period breakdown"},
				"limit":      {Type: "integer", Minimum: minimum(0), Default: float64(7), Description: "Number of periods to include in the breakdown"},
			},
		},
	}
}

type appContextArgs struct {
	PeriodType string `json:"periodType"`
	Limit      int    `json:"limit"`
}

func (t *appContextTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, error) {
	var args appContextArgs
	if err := parseArgs(t.Descriptor(), raw, &args); err != nil {
		return protocol.CallResult{}, err
	}

	q := url.Values{}
	setStr(q, "periodType", args.PeriodType)
	setInt(q, "limit", args.Limit)

	data, err := t.api.Fetch(ctx, "/api/mcp/app-context", &client.Options{Query: q})
	if err != nil {
		return protocol.CallResult{}, err
	}
	return protocol.TextResult(report.AppContext(data)), nil
}
