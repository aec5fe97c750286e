// Package guide holds the static prompt content the server advertises over
// prompts/list and prompts/get.
package guide

import "github.com/sitelens/sitelens-mcp-server/internal/protocol"

// analyticsGuide walks a model through the intended tool workflow.
const analyticsGuide = `You are connected to Sitelens, a web analytics platform, through an MCP server that exposes read-only reporting tools.

How the tools fit together:
- get_app_context gives the big picture: total traffic, top pages, referrers, and audience splits by country, device, browser and OS. Start here for broad questions.
- list_pages discovers which pages are tracked; get_page_context then gives a full report for one page, including web vitals, user flows and tracked elements.
- get_element_context reports clicks on a specific button or link. Identify it by label or DOM id.
- get_visitors and get_visitor_detail cover who is using the app; get_sessions and get_session_detail replay what a single visit actually did, event by event.
- get_user_flows shows the multi-step journeys visitors take and where they drop off.

Conventions:
- Dates are YYYY-MM-DD. Every report ends with a data-retention note; do not ask for data older than the stated retention window.
- Listings are truncated with "...and N more"; raise the limit or paginate with offset when you need more.
- All tools are read-only. Nothing you call can modify the tracked app.

Suggested approach for an open question like "how is the app doing?": call get_app_context first, then drill into the top page with get_page_context, and close with get_user_flows for conversion context.`

// Prompts lists the available prompt descriptors.
func Prompts() []protocol.PromptDescriptor {
	return []protocol.PromptDescriptor{
		{
			Name:        "analytics_guide",
			Description: "How to explore Sitelens analytics with the available tools.",
		},
	}
}

// Get resolves a prompt by name.
func Get(name string) (protocol.PromptGetResult, bool) {
	if name != "analytics_guide" {
		return protocol.PromptGetResult{}, false
	}
	return protocol.PromptGetResult{
		Description: "How to explore Sitelens analytics with the available tools.",
		Messages: []protocol.PromptMessage{
			{
				Role:    "user",
				Content: protocol.ContentPart{Type: "text", Text: analyticsGuide},
			},
		},
	}, true
}
