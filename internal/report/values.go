// Package report renders decoded Sitelens API payloads into plain-text
// reports. Formatters are pure: same payload in, byte-identical text out.
// The backend schema is loosely specified, so every field access here is an
// optional read with a fallback; a formatter never fails on sparse data.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	topLimit      = 5  // top pages / referrers / countries / devices / browsers / OS
	dailyLimit    = 7  // daily breakdowns and per-element period rows
	elementsLimit = 20 // elements listed per page
)

const na = "N/A"

func str(m map[string]any, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m[key].(string)
	return v, ok
}

func strOr(m map[string]any, key, fallback string) string {
	if v, ok := str(m, key); ok && v != "" {
		return v
	}
	return fallback
}

func num(m map[string]any, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m[key].(float64)
	return v, ok
}

func numOr(m map[string]any, key string, fallback float64) float64 {
	if v, ok := num(m, key); ok {
		return v
	}
	return fallback
}

func mapAt(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	v, _ := m[key].(map[string]any)
	return v
}

// listAt returns the object elements of an array field, skipping anything
// that is not an object.
func listAt(m map[string]any, key string) []map[string]any {
	if m == nil {
		return nil
	}
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, e := range raw {
		if em, ok := e.(map[string]any); ok {
			out = append(out, em)
		}
	}
	return out
}

// fmtNum renders a count-like value without a trailing ".0".
func fmtNum(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// pct computes 100*numer/denom rounded to one decimal place. A zero
// denominator renders as "0", never NaN.
func pct(numer, denom float64) string {
	if denom == 0 {
		return "0"
	}
	return fmtRate(100 * numer / denom)
}

// fmtRate renders an already-computed percentage to one decimal place,
// dropping the decimal when it is zero.
func fmtRate(v float64) string {
	rounded := math.Round(v*10) / 10
	if rounded == math.Trunc(rounded) {
		return strconv.FormatInt(int64(rounded), 10)
	}
	return strconv.FormatFloat(rounded, 'f', 1, 64)
}

// fmtMillis renders a web-vital measurement in milliseconds. CLS is the one
// unitless vital and is handled by the caller.
func fmtMillis(v float64) string {
	return fmtNum(math.Round(v)) + "ms"
}

// fmtCLS renders a cumulative layout shift score as a 3-decimal ratio.
func fmtCLS(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// fmtDuration renders seconds as a compact human duration.
func fmtDuration(seconds float64) string {
	s := int64(math.Round(seconds))
	if s < 0 {
		s = 0
	}
	switch {
	case s < 60:
		return fmt.Sprintf("%ds", s)
	case s < 3600:
		return fmt.Sprintf("%dm %ds", s/60, s%60)
	default:
		return fmt.Sprintf("%dh %dm", s/3600, (s%3600)/60)
	}
}

// capped returns at most limit items plus a trailing "...and N more" marker
// when items were cut. Data is never dropped silently.
func capped[T any](items []T, limit int) ([]T, string) {
	if len(items) <= limit {
		return items, ""
	}
	return items[:limit], fmt.Sprintf("...and %d more", len(items)-limit)
}

// retentionNotice renders the backend's data-retention marker verbatim as a
// trailing notice. It applies to every report type.
func retentionNotice(data map[string]any) string {
	ret := mapAt(data, "_dataRetention")
	if ret == nil {
		return ""
	}
	days, ok := num(ret, "days")
	if !ok {
		return ""
	}
	return fmt.Sprintf("Note: your plan retains data for %s days; older data is not included in this report.", fmtNum(days))
}

// render joins non-empty sections with a blank line. Section order is fixed
// by the caller's argument order.
func render(sections ...string) string {
	var parts []string
	for _, s := range sections {
		s = strings.TrimRight(s, "\n")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// rawJSON renders a value as compact JSON for fallback dumps. Map keys are
// sorted by encoding/json, keeping output deterministic.
func rawJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return na
	}
	return string(b)
}
