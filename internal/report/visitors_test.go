package report

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVisitors_Listing(t *testing.T) {
	data := map[string]any{
		"total":  float64(42),
		"offset": float64(0),
		"visitors": []any{
			map[string]any{"id": "v_1", "country": "Germany", "sessionCount": float64(5), "engagementTrend": "increasing", "overallSentiment": "positive", "lastSeen": "2026-08-20"},
			map[string]any{"id": "v_2"},
		},
	}
	out := Visitors(data)
	require.Contains(t, out, "# Visitors (42 total, showing 2)")
	require.Contains(t, out, "- v_1 | Germany | 5 sessions | engagement increasing | sentiment positive | last seen 2026-08-20")
	require.Contains(t, out, "- v_2\n")
	require.Contains(t, out, "...and 40 more")
}

func TestVisitors_OffsetAdjustsRemaining(t *testing.T) {
	data := map[string]any{
		"total":    float64(10),
		"offset":   float64(8),
		"visitors": []any{map[string]any{"id": "v_9"}, map[string]any{"id": "v_10"}},
	}
	out := Visitors(data)
	require.NotContains(t, out, "more")
}

func TestVisitors_Empty(t *testing.T) {
	out := Visitors(map[string]any{})
	require.Contains(t, out, "No visitors matched.")
}

func TestVisitorDetail_Full(t *testing.T) {
	data := map[string]any{
		"visitor": map[string]any{
			"id": "v_abc", "country": "France", "firstSeen": "2026-07-01", "lastSeen": "2026-08-20",
			"engagementTrend": "stable", "overallSentiment": "neutral",
		},
		"stats": map[string]any{"sessionCount": float64(12), "pageViews": float64(90), "avgSessionDuration": float64(95)},
		"recentSessions": []any{
			map[string]any{"id": float64(77), "startedAt": "2026-08-19T09:00:00Z", "duration": float64(60), "eventsCount": float64(14)},
		},
		"aiSummary": "Frequent returner, mostly browses pricing.",
	}
	out := VisitorDetail(data)
	require.Contains(t, out, "# Visitor: v_abc")
	require.Contains(t, out, "- Engagement trend: stable")
	require.Contains(t, out, "- Sessions: 12")
	require.Contains(t, out, "- Avg session duration: 1m 35s")
	require.Contains(t, out, "- Session 77 | 2026-08-19T09:00:00Z | 1m 0s | 14 events")
	require.Contains(t, out, "Frequent returner, mostly browses pricing.")
}

func TestVisitorDetail_Sparse(t *testing.T) {
	out := VisitorDetail(map[string]any{})
	require.Contains(t, out, "# Visitor: N/A")
	require.Contains(t, out, "- Country: N/A")
	require.NotContains(t, out, "## Activity")
	require.NotContains(t, out, "## AI summary")
}
