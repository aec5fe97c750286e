package report

import (
	"fmt"
	"strings"
)

// VisitorDetail renders the /api/mcp/visitors/{id} payload: profile, stats,
// recent sessions, and an optional AI summary.
func VisitorDetail(data map[string]any) string {
	return render(
		visitorProfile(data),
		visitorStats(data),
		visitorSessions(data),
		visitorAISummary(data),
		retentionNotice(data),
	)
}

func visitorProfile(data map[string]any) string {
	v := mapAt(data, "visitor")
	b := &strings.Builder{}
	fmt.Fprintf(b, "# Visitor: %s\n", strOr(v, "id", na))
	fmt.Fprintf(b, "- Country: %s\n", strOr(v, "country", na))
	fmt.Fprintf(b, "- First seen: %s\n", strOr(v, "firstSeen", na))
	fmt.Fprintf(b, "- Last seen: %s\n", strOr(v, "lastSeen", na))
	if trend, ok := str(v, "engagementTrend"); ok && trend != "" {
		fmt.Fprintf(b, "- Engagement trend: %s\n", trend)
	}
	if sentiment, ok := str(v, "overallSentiment"); ok && sentiment != "" {
		fmt.Fprintf(b, "- Overall sentiment: %s\n", sentiment)
	}
	return b.String()
}

func visitorStats(data map[string]any) string {
	stats := mapAt(data, "stats")
	if stats == nil {
		return ""
	}
	b := &strings.Builder{}
	b.WriteString("## Activity\n")
	fmt.Fprintf(b, "- Sessions: %s\n", fmtNum(numOr(stats, "sessionCount", 0)))
	fmt.Fprintf(b, "- Page views: %s\n", fmtNum(numOr(stats, "pageViews", 0)))
	if v, ok := num(stats, "totalDuration"); ok {
		fmt.Fprintf(b, "- Total time: %s\n", fmtDuration(v))
	}
	if v, ok := num(stats, "avgSessionDuration"); ok {
		fmt.Fprintf(b, "- Avg session duration: %s\n", fmtDuration(v))
	}
	return b.String()
}

func visitorSessions(data map[string]any) string {
	sessions := listAt(data, "recentSessions")
	if len(sessions) == 0 {
		return ""
	}
	b := &strings.Builder{}
	b.WriteString("## Recent sessions\n")
	for _, s := range sessions {
		b.WriteString(sessionLine(s))
	}
	return b.String()
}

func visitorAISummary(data map[string]any) string {
	summary, ok := str(data, "aiSummary")
	if !ok || summary == "" {
		return ""
	}
	return "## AI summary\n" + summary + "\n"
}
