package tools

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/sitelens/sitelens-mcp-server/internal/client"
	"github.com/sitelens/sitelens-mcp-server/internal/protocol"
	"github.com/sitelens/sitelens-mcp-server/internal/report"
)

// listPagesTool lists tracked pages with their headline traffic numbers.
type listPagesTool struct {
	api *client.Client
}

// ListPages constructs the list_pages tool.
func ListPages(api *client.Client) *listPagesTool {
	return &listPagesTool{api: api}
}

func (t *listPagesTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name: "list_pages",
		Description: `List the tracked pages of the app with views and visitor counts. Supports a search filter on path and title.

Use this tool to discover which pages exist before drilling into one with get_page_context.`,
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"limit":  {Type: "integer", Minimum: minimum(0), Default: float64(20), Description: "Maximum number of pages to return"},
				"search": {Type: "string", Description: "Filter pages by path or title substring"},
			},
		},
	}
}

type listPagesArgs struct {
	Limit  int    `json:"limit"`
	Search string `json:"search"`
}

func (t *listPagesTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, error) {
	var args listPagesArgs
	if err := parseArgs(t.Descriptor(), raw, &args); err != nil {
		return protocol.CallResult{}, err
	}

	q := url.Values{}
	setInt(q, "limit", args.Limit)
	setStr(q, "search", args.Search)

	data, err := t.api.Fetch(ctx, "/api/mcp/pages", &client.Options{Query: q})
	if err != nil {
		return protocol.CallResult{}, err
	}
	return protocol.TextResult(report.PagesList(data)), nil
}
