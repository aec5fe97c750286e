package report

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPct_ZeroDenominator(t *testing.T) {
	require.Equal(t, "0", pct(0, 0))
	require.Equal(t, "0", pct(5, 0))
}

func TestPct_Rounding(t *testing.T) {
	require.Equal(t, "33.3", pct(1, 3))
	require.Equal(t, "50", pct(1, 2))
	require.Equal(t, "100", pct(7, 7))
}

func TestCapped(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	kept, more := capped(items, 5)
	require.Len(t, kept, 5)
	require.Equal(t, "...and 3 more", more)

	kept, more = capped(items, 8)
	require.Len(t, kept, 8)
	require.Empty(t, more)
}

func TestFmtDuration(t *testing.T) {
	require.Equal(t, "45s", fmtDuration(45))
	require.Equal(t, "1m 32s", fmtDuration(92))
	require.Equal(t, "1h 1m", fmtDuration(3660))
	require.Equal(t, "0s", fmtDuration(-5))
}

func TestFmtNum(t *testing.T) {
	require.Equal(t, "12", fmtNum(12))
	require.Equal(t, "12.5", fmtNum(12.5))
}

func TestRetentionNotice(t *testing.T) {
	require.Empty(t, retentionNotice(map[string]any{}))
	require.Empty(t, retentionNotice(map[string]any{"_dataRetention": map[string]any{}}))

	notice := retentionNotice(map[string]any{"_dataRetention": map[string]any{"days": float64(30)}})
	require.Contains(t, notice, "30 days")
}

func TestListAt_SkipsNonObjects(t *testing.T) {
	m := map[string]any{"xs": []any{map[string]any{"a": float64(1)}, "junk", float64(3)}}
	require.Len(t, listAt(m, "xs"), 1)
	require.Nil(t, listAt(m, "missing"))
	require.Nil(t, listAt(nil, "xs"))
}
