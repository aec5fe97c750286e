package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElementContext_Empty(t *testing.T) {
	out := ElementContext(map[string]any{})
	require.Contains(t, out, "No matching elements found.")
}

func TestElementContext_Block(t *testing.T) {
	data := map[string]any{
		"elements": []any{
			map[string]any{
				"label": "Buy now", "id": "buy-btn", "type": "button", "pagePath": "/products/shoes",
				"totalClicks": float64(420), "uniqueVisitors": float64(180),
				"stats": []any{
					map[string]any{"date": "2026-08-01", "clicks": float64(30), "visitors": float64(22)},
				},
			},
		},
	}
	out := ElementContext(data)
	require.Contains(t, out, `## "Buy now" #buy-btn`)
	require.Contains(t, out, "- Type: button")
	require.Contains(t, out, "- Page: /products/shoes")
	require.Contains(t, out, "- Total clicks: 420")
	require.Contains(t, out, "2026-08-01: 30 clicks, 22 visitors")
}

func TestElementContext_PeriodRowsCapAt7(t *testing.T) {
	var stats []any
	for i := 1; i <= 12; i++ {
		stats = append(stats, map[string]any{"date": fmt.Sprintf("2026-08-%02d", i), "clicks": float64(i)})
	}
	data := map[string]any{
		"elements": []any{map[string]any{"label": "Nav", "stats": stats}},
	}
	out := ElementContext(data)
	require.Contains(t, out, "2026-08-07:")
	require.NotContains(t, out, "2026-08-08:")
	require.Contains(t, out, "...and 5 more")
}

func TestElementContext_SparseElement(t *testing.T) {
	data := map[string]any{"elements": []any{map[string]any{}}}
	out := ElementContext(data)
	require.Contains(t, out, `## "N/A"`)
	require.Contains(t, out, "- Type: N/A")
	require.Contains(t, out, "- Total clicks: 0")
}
