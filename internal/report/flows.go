package report

import (
	"fmt"
	"strings"
)

// UserFlows renders the /api/mcp/flows payload: detected user journeys with
// their funnel steps and drop-off data. Flows and steps keep the backend's
// order; equal session counts are not re-sorted.
func UserFlows(data map[string]any) string {
	return render(
		flowsListing(data),
		retentionNotice(data),
	)
}

func flowsListing(data map[string]any) string {
	flows := listAt(data, "flows")
	if len(flows) == 0 {
		return "# User Flows\nNo flows detected."
	}

	b := &strings.Builder{}
	if total, ok := num(data, "total"); ok {
		fmt.Fprintf(b, "# User Flows (%s detected, showing %d)\n", fmtNum(total), len(flows))
	} else {
		fmt.Fprintf(b, "# User Flows (%d detected)\n", len(flows))
	}
	for i, f := range flows {
		b.WriteString("\n")
		b.WriteString(flowBlock(i+1, f))
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func flowBlock(rank int, f map[string]any) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "## %d. %s", rank, strOr(f, "name", na))
	if category, ok := str(f, "category"); ok && category != "" {
		fmt.Fprintf(b, " [%s]", category)
	}
	b.WriteString("\n")

	details := []string{fmt.Sprintf("Sessions: %s", fmtNum(numOr(f, "sessions", 0)))}
	if rate, ok := num(f, "conversionRate"); ok {
		details = append(details, fmt.Sprintf("Conversion: %s%%", fmtRate(rate)))
	}
	b.WriteString(strings.Join(details, " | ") + "\n")

	steps := listAt(f, "steps")
	if len(steps) > 0 {
		b.WriteString("Steps:\n")
		for i, s := range steps {
			line := fmt.Sprintf("  %d. %s (%s sessions", i+1, strOr(s, "path", na), fmtNum(numOr(s, "sessions", 0)))
			if dropOff, ok := num(s, "dropOff"); ok {
				line += fmt.Sprintf(", %s%% drop-off", fmtRate(dropOff))
			}
			line += ")"
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
