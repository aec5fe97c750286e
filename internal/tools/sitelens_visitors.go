package tools

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/sitelens/sitelens-mcp-server/internal/client"
	"github.com/sitelens/sitelens-mcp-server/internal/protocol"
	"github.com/sitelens/sitelens-mcp-server/internal/report"
)

// visitorsTool lists visitors with filtering and pagination.
type visitorsTool struct {
	api *client.Client
}

// Visitors constructs the get_visitors tool.
func Visitors(api *client.Client) *visitorsTool {
	return &visitorsTool{api: api}
}

func (t *visitorsTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name: "get_visitors",
		Description: `List visitors of the app with their country, session count, engagement trend and sentiment. Supports filtering by segment, date range, engagement trend and sentiment, plus free-text search and offset pagination.

Use this tool to find visitors matching a profile before drilling into one with get_visitor_detail.`,
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"limit":            {Type: "integer", Minimum: minimum(0), Default: float64(20), Description: "Maximum number of visitors to return"},
				"offset":           {Type: "integer", Minimum: minimum(0), Default: float64(0), Description: "Number of visitors to skip, for pagination"},
				"segmentId":        {Type: "string", Description: "Restrict to visitors in this segment"},
				"search":           {Type: "string", Description: "Free-text search over visitor attributes"},
				"startDate":        {Type: "string", Description: "Only visitors active on or after this date, YYYY-MM-DD"},
				"endDate":          {Type: "string", Description: "Only visitors active on or before this date, YYYY-MM-DD"},
				"engagementTrend":  {Type: "string", Enum: []string{"increasing", "stable", "decreasing"}, Description: "Filter by engagement trend"},
				"overallSentiment": {Type: "string", Enum: []string{"positive", "neutral", "negative"}, Description: "Filter by overall sentiment"},
			},
		},
	}
}

type visitorsArgs struct {
	Limit            int    `json:"limit"`
	Offset           int    `json:"offset"`
	SegmentId        string `json:"segmentId"`
	Search           string `json:"search"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	EngagementTrend  string `json:"engagementTrend"`
	OverallSentiment string `json:"overallSentiment"`
}

func (t *visitorsTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, error) {
	var args visitorsArgs
	if err := parseArgs(t.Descriptor(), raw, &args); err != nil {
		return protocol.CallResult{}, err
	}

	q := url.Values{}
	setInt(q, "limit", args.Limit)
	setInt(q, "offset", args.Offset)
	setStr(q, "segmentId", args.SegmentId)
	setStr(q, "search", args.Search)
	setStr(q, "startDate", args.StartDate)
	setStr(q, "endDate", args.EndDate)
	setStr(q, "engagementTrend", args.EngagementTrend)
	setStr(q, "overallSentiment", args.OverallSentiment)

	data, err := t.api.Fetch(ctx, "/api/mcp/visitors", &client.Options{Query: q})
	if err != nil {
		return protocol.CallResult{}, err
	}
	return protocol.TextResult(report.Visitors(data)), nil
}
