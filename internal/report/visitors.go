package report

import (
	"fmt"
	"strings"
)

// Visitors renders the /api/mcp/visitors listing payload.
func Visitors(data map[string]any) string {
	return render(
		visitorsListing(data),
		retentionNotice(data),
	)
}

func visitorsListing(data map[string]any) string {
	visitors := listAt(data, "visitors")
	b := &strings.Builder{}
	if total, ok := num(data, "total"); ok {
		fmt.Fprintf(b, "# Visitors (%s total, showing %d)\n", fmtNum(total), len(visitors))
	} else {
		fmt.Fprintf(b, "# Visitors (%d)\n", len(visitors))
	}
	if len(visitors) == 0 {
		b.WriteString("No visitors matched.\n")
		return b.String()
	}
	for _, v := range visitors {
		b.WriteString(visitorLine(v))
	}
	if total, ok := num(data, "total"); ok && int(total) > len(visitors) {
		offset := int(numOr(data, "offset", 0))
		remaining := int(total) - offset - len(visitors)
		if remaining > 0 {
			fmt.Fprintf(b, "...and %d more\n", remaining)
		}
	}
	return b.String()
}

func visitorLine(v map[string]any) string {
	parts := []string{fmt.Sprintf("- %s", strOr(v, "id", na))}
	if country, ok := str(v, "country"); ok && country != "" {
		parts = append(parts, country)
	}
	if sessions, ok := num(v, "sessionCount"); ok {
		parts = append(parts, fmt.Sprintf("%s sessions", fmtNum(sessions)))
	}
	if trend, ok := str(v, "engagementTrend"); ok && trend != "" {
		parts = append(parts, "engagement "+trend)
	}
	if sentiment, ok := str(v, "overallSentiment"); ok && sentiment != "" {
		parts = append(parts, "sentiment "+sentiment)
	}
	if lastSeen, ok := str(v, "lastSeen"); ok && lastSeen != "" {
		parts = append(parts, "last seen "+lastSeen)
	}
	return strings.Join(parts, " | ") + "\n"
}
