package report

import (
	"fmt"
	"strings"
)

// SessionDetail renders the /api/mcp/sessions/{id} payload: session header
// plus a chronological event timeline. Known event kinds get a bespoke
// single-line rendering; anything else dumps its raw data inline.
func SessionDetail(data map[string]any) string {
	return render(
		sessionHeader(data),
		sessionEvents(data),
		retentionNotice(data),
	)
}

func sessionHeader(data map[string]any) string {
	s := mapAt(data, "session")
	id := na
	if v, ok := num(s, "id"); ok {
		id = fmtNum(v)
	}
	b := &strings.Builder{}
	fmt.Fprintf(b, "# Session %s\n", id)
	fmt.Fprintf(b, "- Visitor: %s\n", strOr(s, "visitorId", na))
	fmt.Fprintf(b, "- Started: %s\n", strOr(s, "startedAt", na))
	if v, ok := num(s, "duration"); ok {
		fmt.Fprintf(b, "- Duration: %s\n", fmtDuration(v))
	} else {
		fmt.Fprintf(b, "- Duration: %s\n", na)
	}
	if device, ok := str(s, "device"); ok && device != "" {
		fmt.Fprintf(b, "- Device: %s\n", device)
	}
	if browser, ok := str(s, "browser"); ok && browser != "" {
		fmt.Fprintf(b, "- Browser: %s\n", browser)
	}
	if country, ok := str(s, "country"); ok && country != "" {
		fmt.Fprintf(b, "- Country: %s\n", country)
	}
	if sentiment, ok := str(s, "sentiment"); ok && sentiment != "" {
		fmt.Fprintf(b, "- Sentiment: %s\n", sentiment)
	}
	return b.String()
}

func sessionEvents(data map[string]any) string {
	events := listAt(data, "events")
	if len(events) == 0 {
		return "## Events\nNo events recorded."
	}
	b := &strings.Builder{}
	fmt.Fprintf(b, "## Events (%d)\n", len(events))
	for _, e := range events {
		b.WriteString(eventLine(e) + "\n")
	}
	return b.String()
}

func eventLine(e map[string]any) string {
	d := mapAt(e, "data")
	line := renderEventData(strOr(e, "type", "unknown"), d)
	if ts, ok := str(e, "timestamp"); ok && ts != "" {
		return fmt.Sprintf("[%s] %s", ts, line)
	}
	return line
}

func renderEventData(kind string, d map[string]any) string {
	switch kind {
	case "page_view":
		line := "Page view: " + strOr(d, "path", na)
		if title, ok := str(d, "title"); ok && title != "" {
			line += fmt.Sprintf(" (%s)", title)
		}
		return line
	case "click":
		line := fmt.Sprintf("Click: %q", strOr(d, "label", na))
		if tag, ok := str(d, "tagName"); ok && tag != "" {
			line += fmt.Sprintf(" <%s>", tag)
		}
		if id, ok := str(d, "id"); ok && id != "" {
			line += " #" + id
		}
		if href, ok := str(d, "href"); ok && href != "" {
			line += " -> " + href
		}
		return line
	case "form_submit":
		line := "Form submit: " + strOr(d, "form", na)
		if success, ok := d["success"].(bool); ok {
			if success {
				line += " (success)"
			} else {
				line += " (failed)"
			}
		}
		return line
	case "scroll":
		if depth, ok := num(d, "depth"); ok {
			return fmt.Sprintf("Scroll depth: %s%%", fmtRate(depth))
		}
		return "Scroll depth: " + na
	case "web_vital":
		metric := strOr(d, "metric", na)
		v, ok := num(d, "value")
		if !ok {
			return "Web vital: " + metric
		}
		// CLS is the one unitless vital; everything else is milliseconds.
		if strings.EqualFold(metric, "CLS") {
			return fmt.Sprintf("Web vital: %s %s", metric, fmtCLS(v))
		}
		return fmt.Sprintf("Web vital: %s %s", metric, fmtMillis(v))
	default:
		return fmt.Sprintf("%s: %s", kind, rawJSON(d))
	}
}
