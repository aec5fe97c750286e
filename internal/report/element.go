package report

import (
	"fmt"
	"strings"
)

// ElementContext renders the /api/mcp/elements payload: one block per
// matched element with identity, totals, and recent period rows.
func ElementContext(data map[string]any) string {
	return render(
		elementBlocks(data),
		retentionNotice(data),
	)
}

func elementBlocks(data map[string]any) string {
	elements := listAt(data, "elements")
	if len(elements) == 0 {
		return "# Element Report\nNo matching elements found."
	}

	b := &strings.Builder{}
	fmt.Fprintf(b, "# Element Report (%d matched)\n", len(elements))
	for _, e := range elements {
		b.WriteString("\n")
		b.WriteString(elementBlock(e))
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func elementBlock(e map[string]any) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "## %q", strOr(e, "label", na))
	if id, ok := str(e, "id"); ok && id != "" {
		fmt.Fprintf(b, " #%s", id)
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "- Type: %s\n", strOr(e, "type", na))
	fmt.Fprintf(b, "- Page: %s\n", strOr(e, "pagePath", na))
	fmt.Fprintf(b, "- Total clicks: %s\n", fmtNum(numOr(e, "totalClicks", 0)))
	fmt.Fprintf(b, "- Unique visitors: %s\n", fmtNum(numOr(e, "uniqueVisitors", 0)))

	stats := listAt(e, "stats")
	if len(stats) > 0 {
		rows, more := capped(stats, dailyLimit)
		b.WriteString("Recent periods:\n")
		for _, s := range rows {
			fmt.Fprintf(b, "  %s: %s clicks, %s visitors\n",
				strOr(s, "date", "?"),
				fmtNum(numOr(s, "clicks", 0)),
				fmtNum(numOr(s, "visitors", 0)))
		}
		if more != "" {
			b.WriteString("  " + more + "\n")
		}
	}
	return b.String()
}
