package tools

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/sitelens/sitelens-mcp-server/internal/client"
	"github.com/sitelens/sitelens-mcp-server/internal/protocol"
	"github.com/sitelens/sitelens-mcp-server/internal/report"
)

// sessionsTool lists sessions with filtering and pagination.
type sessionsTool struct {
	api *client.Client
}

// Sessions constructs the get_sessions tool.
func Sessions(api *client.Client) *sessionsTool {
	return &sessionsTool{api: api}
}

func (t *sessionsTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name: "get_sessions",
		Description: `List recorded sessions with their visitor, start time, duration, event count, pages visited and sentiment. Supports filtering by visitor, sentiment, date range, duration, event count and page path, plus free-text search and offset pagination.

Use this tool to find sessions matching a pattern before drilling into one with get_session_detail.`,
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"limit":          {Type: "integer", Minimum: minimum(0), Default: float64(20), Description: "Maximum number of sessions to return"},
				"offset":         {Type: "integer", Minimum: minimum(0), Default: float64(0), Description: "Number of sessions to skip, for pagination"},
				"visitorId":      {Type: "string", Description: "Only sessions of this visitor"},
				"sentiment":      {Type: "string", Enum: []string{"positive", "neutral", "negative"}, Description: "Filter by session sentiment"},
				"startDate":      {Type: "string", Description: "Only sessions started on or after this date, YYYY-MM-DD"},
				"endDate":        {Type: "string", Description: "Only sessions started on or before this date, YYYY-MM-DD"},
				"search":         {Type: "string", Description: "Free-text search over session attributes"},
				"minDuration":    {Type: "integer", Minimum: minimum(0), Description: "Minimum session duration in seconds"},
				"maxDuration":    {Type: "integer", Minimum: minimum(0), Description: "Maximum session duration in seconds"},
				"minEventsCount": {Type: "integer", Minimum: minimum(0), Description: "Minimum number of recorded events"},
				"maxEventsCount": {Type: "integer", Minimum: minimum(0), Description: "Maximum number of recorded events"},
				"pagePath":       {Type: "string", Description: "Only sessions that visited this page path"},
			},
		},
	}
}

type sessionsArgs struct {
	Limit          int    `json:"limit"`
	Offset         int    `json:"offset"`
	VisitorId      string `json:"visitorId"`
	Sentiment      string `json:"sentiment"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	Search         string `json:"search"`
	MinDuration    int    `json:"minDuration"`
	MaxDuration    int    `json:"maxDuration"`
	MinEventsCount int    `json:"minEventsCount"`
	MaxEventsCount int    `json:"maxEventsCount"`
	PagePath       string `json:"pagePath"`
}

func (t *sessionsTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, error) {
	var args sessionsArgs
	if err := parseArgs(t.Descriptor(), raw, &args); err != nil {
		return protocol.CallResult{}, err
	}

	q := url.Values{}
	setInt(q, "limit", args.Limit)
	setInt(q, "offset", args.Offset)
	setStr(q, "visitorId", args.VisitorId)
	setStr(q, "sentiment", args.Sentiment)
	setStr(q, "startDate", args.StartDate)
	setStr(q, "endDate", args.EndDate)
	setStr(q, "search", args.Search)
	setInt(q, "minDuration", args.MinDuration)
	setInt(q, "maxDuration", args.MaxDuration)
	setInt(q, "minEventsCount", args.MinEventsCount)
	setInt(q, "maxEventsCount", args.MaxEventsCount)
	setStr(q, "pagePath", args.PagePath)

	data, err := t.api.Fetch(ctx, "/api/mcp/sessions", &client.Options{Query: q})
	if err != nil {
		return protocol.CallResult{}, err
	}
	return protocol.TextResult(report.Sessions(data)), nil
}
