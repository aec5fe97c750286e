package tools

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/sitelens/sitelens-mcp-server/internal/client"
	"github.com/sitelens/sitelens-mcp-server/internal/protocol"
	"github.com/sitelens/sitelens-mcp-server/internal/report"
)

// elementContextTool reports interaction stats for a tracked UI element.
type elementContextTool struct {
	api *client.Client
}

// ElementContext constructs the get_element_context tool.
func ElementContext(api *client.Client) *elementContextTool {
	return &elementContextTool{api: api}
}

func (t *elementContextTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name: "get_element_context",
		Description: `Get click and interaction statistics for a tracked UI element, such as a button or link. Identify the element by its visible label or its DOM id; at least one of the two is required. Optionally narrow the match to a single page.

Use this tool when the user asks how often an element is clicked, who interacts with it, or how its usage has changed over time.`,
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"elementLabel": {Type: "string", Description: "Visible label text of the element, e.g. \"Sign up\""},
				"elementId":    {Type: "string", Description: "DOM id of the element"},
				"pagePath":     {Type: "string", Description: "Restrict the match to elements on this page path"},
			},
		},
	}
}

type elementContextArgs struct {
	ElementLabel string `json:"elementLabel"`
	ElementId    string `json:"elementId"`
	PagePath     string `json:"pagePath"`
}

func (t *elementContextTool) Invoke(ctx context.Context, raw json.RawMessage) (protocol.CallResult, error) {
	var args elementContextArgs
	if err := parseArgs(t.Descriptor(), raw, &args); err != nil {
		return protocol.CallResult{}, err
	}
	// The schema cannot express "one of", so the check lives here, before
	// any network round trip.
	if args.ElementLabel == "" && args.ElementId == "" {
		return protocol.CallResult{}, errors.New("either elementLabel or elementId is required")
	}

	q := url.Values{}
	setStr(q, "elementLabel", args.ElementLabel)
	setStr(q, "elementId", args.ElementId)
	setStr(q, "pagePath", args.PagePath)

	data, err := t.api.Fetch(ctx, "/api/mcp/elements", &client.Options{Query: q})
	if err != nil {
		return protocol.CallResult{}, err
	}
	return protocol.TextResult(report.ElementContext(data)), nil
}
