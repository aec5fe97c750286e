package report

import (
	"fmt"
	"strings"
)

// AppContext renders the /api/mcp/app-context payload: app-wide summary,
// daily breakdown, ranked top lists, and optional AI insights. Ranked lists
// come pre-sorted from the backend; ties keep their input order.
func AppContext(data map[string]any) string {
	return render(
		appHeader(data),
		appSummary(data),
		appBreakdown(data),
		rankedList(data, "topPages", "Top pages", "path"),
		rankedList(data, "topReferrers", "Top referrers", "name"),
		rankedList(data, "countries", "Countries", "name"),
		rankedList(data, "devices", "Devices", "name"),
		rankedList(data, "browsers", "Browsers", "name"),
		rankedList(data, "os", "Operating systems", "name"),
		aiInsights(data),
		retentionNotice(data),
	)
}

func appHeader(data map[string]any) string {
	app := mapAt(data, "app")
	name := strOr(app, "name", "Application")
	b := &strings.Builder{}
	fmt.Fprintf(b, "# App Report: %s\n", name)
	if domain, ok := str(app, "domain"); ok && domain != "" {
		fmt.Fprintf(b, "Domain: %s\n", domain)
	}
	return b.String()
}

func appSummary(data map[string]any) string {
	stats := listAt(data, "stats")
	if len(stats) == 0 {
		return "## Summary\nNo statistics available for this period."
	}

	var views, visitors, sessions, bounces float64
	var durSum float64
	var durN int
	for _, s := range stats {
		views += numOr(s, "views", 0)
		visitors += numOr(s, "visitors", 0)
		sessions += numOr(s, "sessions", 0)
		bounces += numOr(s, "bounces", 0)
		if v, ok := num(s, "avgSessionDuration"); ok {
			durSum += v
			durN++
		}
	}

	b := &strings.Builder{}
	fmt.Fprintf(b, "## Summary (%d periods)\n", len(stats))
	fmt.Fprintf(b, "- Views: %s\n", fmtNum(views))
	fmt.Fprintf(b, "- Unique visitors: %s\n", fmtNum(visitors))
	fmt.Fprintf(b, "- Sessions: %s\n", fmtNum(sessions))
	fmt.Fprintf(b, "- Bounce rate: %s%%\n", pct(bounces, sessions))
	if durN > 0 {
		fmt.Fprintf(b, "- Avg session duration: %s\n", fmtDuration(durSum/float64(durN)))
	} else {
		fmt.Fprintf(b, "- Avg session duration: %s\n", na)
	}
	return b.String()
}

func appBreakdown(data map[string]any) string {
	stats := listAt(data, "stats")
	if len(stats) == 0 {
		return ""
	}
	rows, more := capped(stats, dailyLimit)
	b := &strings.Builder{}
	b.WriteString("## Recent activity\n")
	for _, s := range rows {
		fmt.Fprintf(b, "%s: %s views, %s visitors, %s sessions\n",
			strOr(s, "date", "?"),
			fmtNum(numOr(s, "views", 0)),
			fmtNum(numOr(s, "visitors", 0)),
			fmtNum(numOr(s, "sessions", 0)))
	}
	if more != "" {
		b.WriteString(more + "\n")
	}
	return b.String()
}

// rankedList renders a pre-ranked name/count list capped at topLimit.
func rankedList(data map[string]any, key, heading, nameKey string) string {
	items := listAt(data, key)
	if len(items) == 0 {
		return ""
	}
	rows, more := capped(items, topLimit)
	b := &strings.Builder{}
	fmt.Fprintf(b, "## %s\n", heading)
	for _, it := range rows {
		name := strOr(it, nameKey, "")
		if name == "" {
			name = strOr(it, "name", na)
		}
		fmt.Fprintf(b, "- %s: %s\n", name, fmtNum(numOr(it, "count", 0)))
	}
	if more != "" {
		b.WriteString(more + "\n")
	}
	return b.String()
}
