package report

import (
	"fmt"
	"strings"
)

// PageContext renders the /api/mcp/pages/{path} payload. Section order is
// fixed: header, summary, recent breakdown, performance, flows, AI insights,
// elements, retention notice.
func PageContext(data map[string]any) string {
	return render(
		pageHeader(data),
		pageSummary(data),
		pageBreakdown(data),
		performanceSection(mapAt(data, "performance")),
		pageFlows(data),
		aiInsights(data),
		pageElements(data),
		retentionNotice(data),
	)
}

func pageHeader(data map[string]any) string {
	page := mapAt(data, "page")
	path := strOr(page, "path", na)
	b := &strings.Builder{}
	fmt.Fprintf(b, "# Page Report: %s\n", path)
	if title, ok := str(page, "title"); ok && title != "" {
		fmt.Fprintf(b, "Title: %s\n", title)
	}
	return b.String()
}

func pageSummary(data map[string]any) string {
	stats := listAt(data, "stats")
	if len(stats) == 0 {
		return "## Summary\nNo statistics available for this period."
	}

	var views, visitors, entries, exits, bounces float64
	var timeSum, scrollSum float64
	var timeN, scrollN int
	for _, s := range stats {
		views += numOr(s, "views", 0)
		visitors += numOr(s, "visitors", 0)
		entries += numOr(s, "entries", 0)
		exits += numOr(s, "exits", 0)
		bounces += numOr(s, "bounces", 0)
		if v, ok := num(s, "avgTimeOnPage"); ok {
			timeSum += v
			timeN++
		}
		if v, ok := num(s, "scrollDepth"); ok {
			scrollSum += v
			scrollN++
		}
	}

	b := &strings.Builder{}
	fmt.Fprintf(b, "## Summary (%d periods)\n", len(stats))
	fmt.Fprintf(b, "- Views: %s\n", fmtNum(views))
	fmt.Fprintf(b, "- Unique visitors: %s\n", fmtNum(visitors))
	fmt.Fprintf(b, "- Entries: %s (entry rate %s%%)\n", fmtNum(entries), pct(entries, views))
	fmt.Fprintf(b, "- Exits: %s (exit rate %s%%)\n", fmtNum(exits), pct(exits, views))
	fmt.Fprintf(b, "- Bounces: %s (bounce rate %s%%)\n", fmtNum(bounces), pct(bounces, entries))
	if timeN > 0 {
		fmt.Fprintf(b, "- Avg time on page: %s\n", fmtDuration(timeSum/float64(timeN)))
	} else {
		fmt.Fprintf(b, "- Avg time on page: %s\n", na)
	}
	if scrollN > 0 {
		fmt.Fprintf(b, "- Avg scroll depth: %s%%\n", fmtRate(scrollSum/float64(scrollN)))
	}
	return b.String()
}

func pageBreakdown(data map[string]any) string {
	stats := listAt(data, "stats")
	if len(stats) == 0 {
		return ""
	}

	rows, more := capped(stats, dailyLimit)
	b := &strings.Builder{}
	b.WriteString("## Recent activity\n")
	for _, s := range rows {
		fmt.Fprintf(b, "%s: %s views, %s visitors, %s bounces\n",
			strOr(s, "date", "?"),
			fmtNum(numOr(s, "views", 0)),
			fmtNum(numOr(s, "visitors", 0)),
			fmtNum(numOr(s, "bounces", 0)))
	}
	if more != "" {
		b.WriteString(more + "\n")
	}
	return b.String()
}

// performanceSection renders web vitals. CLS is a unitless ratio; every other
// vital is a millisecond measurement.
func performanceSection(perf map[string]any) string {
	if perf == nil {
		return ""
	}
	b := &strings.Builder{}
	b.WriteString("## Performance\n")
	wrote := false
	for _, vital := range []struct {
		key   string
		label string
	}{
		{"lcp", "LCP"},
		{"cls", "CLS"},
		{"inp", "INP"},
		{"fcp", "FCP"},
		{"ttfb", "TTFB"},
	} {
		v, ok := num(perf, vital.key)
		if !ok {
			continue
		}
		if vital.label == "CLS" {
			fmt.Fprintf(b, "- CLS: %s\n", fmtCLS(v))
		} else {
			fmt.Fprintf(b, "- %s: %s\n", vital.label, fmtMillis(v))
		}
		wrote = true
	}
	if !wrote {
		return ""
	}
	return b.String()
}

func pageFlows(data map[string]any) string {
	flows := listAt(data, "flows")
	if len(flows) == 0 {
		return ""
	}
	b := &strings.Builder{}
	b.WriteString("## User flows through this page\n")
	for _, f := range flows {
		fmt.Fprintf(b, "- %s: %s sessions\n", strOr(f, "name", na), fmtNum(numOr(f, "sessions", 0)))
	}
	return b.String()
}

func aiInsights(data map[string]any) string {
	insights := mapAt(data, "aiInsights")
	if insights == nil {
		return ""
	}
	summary, ok := str(insights, "summary")
	if !ok || summary == "" {
		return ""
	}
	b := &strings.Builder{}
	b.WriteString("## AI insights\n")
	b.WriteString(summary + "\n")
	if sentiment, ok := str(insights, "sentiment"); ok && sentiment != "" {
		fmt.Fprintf(b, "Sentiment: %s\n", sentiment)
	}
	return b.String()
}

func pageElements(data map[string]any) string {
	elements := listAt(data, "elements")
	if len(elements) == 0 {
		return "## Elements\nNo tracked elements on this page."
	}
	rows, more := capped(elements, elementsLimit)
	b := &strings.Builder{}
	fmt.Fprintf(b, "## Elements (%d)\n", len(elements))
	for _, e := range rows {
		fmt.Fprintf(b, "- %q (%s): %s clicks\n",
			strOr(e, "label", na),
			strOr(e, "type", "element"),
			fmtNum(numOr(e, "clicks", 0)))
	}
	if more != "" {
		b.WriteString(more + "\n")
	}
	return b.String()
}
