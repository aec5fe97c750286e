package tools

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/sitelens/sitelens-mcp-server/internal/client"
	"github.com/sitelens/sitelens-mcp-server/internal/protocol"
	"github.com/sitelens/sitelens-mcp-server/internal/report"
)

// pageContextTool reports on a single page: stats, performance, flows,
// AI insights, and tracked elements.
type pageContextTool struct {
	api *client.Client
}

// PageContext constructs the get_page_context tool.
func PageContext(api *client.Client) *pageContextTool {
	return &pageContextTool{api: api}
}

func (t *pageContextTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name: "get_page_context",
		Description: `Get a full analytics report for a single page: traffic statistics, entry/exit/bounce rates, recent per-period breakdown, web vitals, user flows through the page, AI insights, and tracked elements.

Use this tool when the user asks about a specific page's performance, traffic, or behavior.`,
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"pagePath":   {Type: "string", Description: "Page path, e.g. /products/shoes"},
				"startDate":  {Type: "string", Description: "Start of the date range (YYYY-MM-DD)"},
				"endDate":    {Type: "string", Description: "End of the date range (YYYY-MM-DD)"},
				"periodType": {Type: "string", Enum: []string{"day", "week"}, Default: "day", Description: "Granularity of the period breakdown"},
			},
			Required: []string{"pagePath"},
		},
	}
}

type pageContextArgs struct {
	PagePath   string `json:"pagePath"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	PeriodType string `json:"periodType"`
}

func (t *pageContextTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, error) {
	var args pageContextArgs
	if err := parseArgs(t.Descriptor(), raw, &args); err != nil {
		return protocol.CallResult{}, err
	}

	q := url.Values{}
	setStr(q, "startDate", args.StartDate)
	setStr(q, "endDate", args.EndDate)
	setStr(q, "periodType", args.PeriodType)

	// PathEscape keeps a leading-slash page path a single segment.
	data, err := t.api.Fetch(ctx, "/api/mcp/pages/"+url.PathEscape(args.PagePath), &client.Options{Query: q})
	if err != nil {
		return protocol.CallResult{}, err
	}
	return protocol.TextResult(report.PageContext(data)), nil
}
