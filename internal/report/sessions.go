package report

import (
	"fmt"
	"strings"
)

// Sessions renders the /api/mcp/sessions listing payload.
func Sessions(data map[string]any) string {
	return render(
		sessionsListing(data),
		retentionNotice(data),
	)
}

func sessionsListing(data map[string]any) string {
	sessions := listAt(data, "sessions")
	b := &strings.Builder{}
	if total, ok := num(data, "total"); ok {
		fmt.Fprintf(b, "# Sessions (%s total, showing %d)\n", fmtNum(total), len(sessions))
	} else {
		fmt.Fprintf(b, "# Sessions (%d)\n", len(sessions))
	}
	if len(sessions) == 0 {
		b.WriteString("No sessions matched.\n")
		return b.String()
	}
	for _, s := range sessions {
		b.WriteString(sessionLine(s))
	}
	if total, ok := num(data, "total"); ok && int(total) > len(sessions) {
		offset := int(numOr(data, "offset", 0))
		remaining := int(total) - offset - len(sessions)
		if remaining > 0 {
			fmt.Fprintf(b, "...and %d more\n", remaining)
		}
	}
	return b.String()
}

// sessionLine renders one session row; shared with the visitor detail report.
func sessionLine(s map[string]any) string {
	id := na
	if v, ok := num(s, "id"); ok {
		id = fmtNum(v)
	} else if v, ok := str(s, "id"); ok {
		id = v
	}
	parts := []string{fmt.Sprintf("- Session %s", id)}
	if visitorID, ok := str(s, "visitorId"); ok && visitorID != "" {
		parts = append(parts, "visitor "+visitorID)
	}
	if startedAt, ok := str(s, "startedAt"); ok && startedAt != "" {
		parts = append(parts, startedAt)
	}
	if v, ok := num(s, "duration"); ok {
		parts = append(parts, fmtDuration(v))
	}
	if v, ok := num(s, "eventsCount"); ok {
		parts = append(parts, fmt.Sprintf("%s events", fmtNum(v)))
	}
	if v, ok := num(s, "pages"); ok {
		parts = append(parts, fmt.Sprintf("%s pages", fmtNum(v)))
	}
	if sentiment, ok := str(s, "sentiment"); ok && sentiment != "" {
		parts = append(parts, "sentiment "+sentiment)
	}
	return strings.Join(parts, " | ") + "\n"
}
