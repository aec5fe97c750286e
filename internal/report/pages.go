package report

import (
	"fmt"
	"strings"
)

// PagesList renders the /api/mcp/pages listing payload.
func PagesList(data map[string]any) string {
	return render(
		pagesListing(data),
		retentionNotice(data),
	)
}

func pagesListing(data map[string]any) string {
	pages := listAt(data, "pages")
	b := &strings.Builder{}
	if total, ok := num(data, "total"); ok {
		fmt.Fprintf(b, "# Pages (%s total)\n", fmtNum(total))
	} else {
		fmt.Fprintf(b, "# Pages (%d)\n", len(pages))
	}
	if len(pages) == 0 {
		b.WriteString("No pages matched.\n")
		return b.String()
	}
	for _, p := range pages {
		line := fmt.Sprintf("- %s: %s views, %s visitors",
			strOr(p, "path", na),
			fmtNum(numOr(p, "views", 0)),
			fmtNum(numOr(p, "visitors", 0)))
		if title, ok := str(p, "title"); ok && title != "" {
			line += fmt.Sprintf(" (%s)", title)
		}
		b.WriteString(line + "\n")
	}
	if total, ok := num(data, "total"); ok && int(total) > len(pages) {
		fmt.Fprintf(b, "...and %d more\n", int(total)-len(pages))
	}
	return b.String()
}
